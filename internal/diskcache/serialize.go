package diskcache

// serialize.go turns an Entry into a flat byte blob for Badger storage and
// back. The format is deliberately simple (fixed-width fields, no varint
// packing) since these blobs are written once per (shard, chip) and read
// rarely — this is a memoization cache, not a hot-path wire protocol.
//
// © 2025 arena-cache authors. MIT License.

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/zkfabric/airtrace/chip"
	"github.com/zkfabric/airtrace/internal/babybear"
	"github.com/zkfabric/airtrace/record"
)

func encodeEntry(e *Entry) ([]byte, error) {
	var buf bytes.Buffer

	width := uint32(e.Matrix.Width())
	numRows := uint32(e.Matrix.NumRows())
	if err := binary.Write(&buf, binary.BigEndian, width); err != nil {
		return nil, err
	}
	if err := binary.Write(&buf, binary.BigEndian, numRows); err != nil {
		return nil, err
	}
	for r := 0; r < int(numRows); r++ {
		for _, v := range e.Matrix.Row(r) {
			if err := binary.Write(&buf, binary.BigEndian, uint32(v)); err != nil {
				return nil, err
			}
		}
	}

	groups := e.ByteLookups.Ordered()
	if err := binary.Write(&buf, binary.BigEndian, uint32(len(groups))); err != nil {
		return nil, err
	}
	for _, g := range groups {
		if err := binary.Write(&buf, binary.BigEndian, uint32(g.Shard)); err != nil {
			return nil, err
		}
		if err := binary.Write(&buf, binary.BigEndian, uint32(len(g.Events))); err != nil {
			return nil, err
		}
		for ev, mult := range g.Events {
			fields := []byte{uint8(ev.Op), ev.B1, ev.B2, ev.C1, ev.C2}
			if _, err := buf.Write(fields); err != nil {
				return nil, err
			}
			if err := binary.Write(&buf, binary.BigEndian, mult); err != nil {
				return nil, err
			}
		}
	}

	return buf.Bytes(), nil
}

func decodeEntry(blob []byte) (*Entry, error) {
	r := bytes.NewReader(blob)

	var width, numRows uint32
	if err := binary.Read(r, binary.BigEndian, &width); err != nil {
		return nil, fmt.Errorf("width: %w", err)
	}
	if err := binary.Read(r, binary.BigEndian, &numRows); err != nil {
		return nil, fmt.Errorf("num_rows: %w", err)
	}

	m := chip.NewRowMajorMatrix(int(width))
	row := make([]babybear.Element, width)
	for i := uint32(0); i < numRows; i++ {
		for j := uint32(0); j < width; j++ {
			var v uint32
			if err := binary.Read(r, binary.BigEndian, &v); err != nil {
				return nil, fmt.Errorf("row %d col %d: %w", i, j, err)
			}
			row[j] = babybear.Element(v)
		}
		m.AppendRow(row)
	}

	lookups := record.NewByteLookupMap()
	var numGroups uint32
	if err := binary.Read(r, binary.BigEndian, &numGroups); err != nil {
		return nil, fmt.Errorf("num_groups: %w", err)
	}
	for i := uint32(0); i < numGroups; i++ {
		var shard, numEvents uint32
		if err := binary.Read(r, binary.BigEndian, &shard); err != nil {
			return nil, fmt.Errorf("group %d shard: %w", i, err)
		}
		if err := binary.Read(r, binary.BigEndian, &numEvents); err != nil {
			return nil, fmt.Errorf("group %d num_events: %w", i, err)
		}
		shardKey := record.Shard(shard)
		events := make(map[record.ByteLookupEvent]uint64, numEvents)
		lookups[shardKey] = events
		for j := uint32(0); j < numEvents; j++ {
			fields := make([]byte, 5)
			if _, err := io.ReadFull(r, fields); err != nil {
				return nil, fmt.Errorf("group %d event %d fields: %w", i, j, err)
			}
			var mult uint64
			if err := binary.Read(r, binary.BigEndian, &mult); err != nil {
				return nil, fmt.Errorf("group %d event %d multiplicity: %w", i, j, err)
			}
			ev := record.ByteLookupEvent{
				Shard: shardKey,
				Op:    record.ByteOpcode(fields[0]),
				B1:    fields[1], B2: fields[2], C1: fields[3], C2: fields[4],
			}
			events[ev] = mult
		}
	}

	return &Entry{Matrix: m, ByteLookups: lookups}, nil
}
