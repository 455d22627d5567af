package main

// flags.go parses the airtrace-inspect command line the way
// cmd/arena-cache-inspect structures its own options type: a single struct
// populated by the standard flag package, validated once in parseFlags
// rather than scattered across main.
//
// © 2025 arena-cache authors. MIT License.

import (
	"errors"
	"flag"
	"fmt"
	"os"
)

type options struct {
	cacheDir   string
	shard      uint
	chipName   string
	recordPath string
	jsonOutput bool
	version    bool
}

var version = "dev"

func parseFlags() (*options, error) {
	fs := flag.NewFlagSet("airtrace-inspect", flag.ContinueOnError)
	opts := &options{}

	fs.StringVar(&opts.cacheDir, "cache-dir", "", "Badger directory backing the trace memoization cache (required)")
	fs.UintVar(&opts.shard, "shard", 0, "shard index to inspect")
	fs.StringVar(&opts.chipName, "chip", "", "chip name: EdDecompress, WeierstrassDecompress_secp256k1, WeierstrassDecompress_bls12381, Bls12381FpSub (required)")
	fs.StringVar(&opts.recordPath, "record", "", "path to a JSON-encoded ExecutionRecord to regenerate from on cache miss (optional)")
	fs.BoolVar(&opts.jsonOutput, "json", false, "print stats as JSON instead of text")
	fs.BoolVar(&opts.version, "version", false, "print version and exit")

	if err := fs.Parse(os.Args[1:]); err != nil {
		return nil, err
	}
	if opts.version {
		return opts, nil
	}
	if opts.cacheDir == "" {
		return nil, errors.New("airtrace-inspect: -cache-dir is required")
	}
	if opts.chipName == "" {
		return nil, errors.New("airtrace-inspect: -chip is required")
	}
	return opts, nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "airtrace-inspect:", err)
	os.Exit(1)
}
