package main

// chips.go maps a chip's Name() back to a constructible chip.MachineAir, the
// inverse of each chip's own Name() method, so the CLI can regenerate a
// trace for a cache miss without the caller wiring up the chip objects
// themselves.
//
// © 2025 arena-cache authors. MIT License.

import (
	"fmt"

	"github.com/zkfabric/airtrace/chip"
	"github.com/zkfabric/airtrace/chip/eddecompress"
	"github.com/zkfabric/airtrace/chip/fieldsub"
	"github.com/zkfabric/airtrace/chip/weierstrass"
	"github.com/zkfabric/airtrace/internal/fieldparams"
)

func resolveChip(name string) (chip.MachineAir, error) {
	switch name {
	case "EdDecompress":
		return eddecompress.New(), nil
	case "WeierstrassDecompress_secp256k1":
		return weierstrass.New(fieldparams.CurveSecp256k1), nil
	case "WeierstrassDecompress_bls12381":
		return weierstrass.New(fieldparams.CurveBLS12381G1), nil
	case "Bls12381FpSub":
		return fieldsub.New(), nil
	default:
		return nil, fmt.Errorf("airtrace-inspect: unknown chip %q", name)
	}
}
