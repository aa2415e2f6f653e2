package persist

import (
	"encoding/binary"
	"fmt"

	"github.com/pierrec/lz4/v4"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/docbolt/docbolt/pkg/domain"
)

// Record format tags. Every durable value starts with one tag byte; lz4
// records follow it with the uncompressed payload length so decode can
// size its buffer exactly.
const (
	formatRaw byte = 0x00
	formatLZ4 byte = 0x01
)

// compressMinSize is the smallest payload worth compressing; tiny records
// expand under lz4 block framing.
const compressMinSize = 64

// Codec serializes documents for durable storage: msgpack, optionally
// wrapped in lz4 block compression.
type Codec struct {
	compress bool
}

// NewCodec creates a codec. With compress enabled, payloads above the
// size threshold are stored lz4-compressed; decode always handles both
// forms, so the option can change between runs.
func NewCodec(compress bool) *Codec {
	return &Codec{compress: compress}
}

// Encode serializes a document into its durable record form.
func (c *Codec) Encode(doc domain.Document) ([]byte, error) {
	payload, err := msgpack.Marshal(map[string]interface{}(doc))
	if err != nil {
		return nil, fmt.Errorf("failed to encode MessagePack: %w", err)
	}

	if !c.compress || len(payload) < compressMinSize {
		return append([]byte{formatRaw}, payload...), nil
	}

	compressed := make([]byte, lz4.CompressBlockBound(len(payload)))
	var hashTable [1 << 16]int
	n, err := lz4.CompressBlock(payload, compressed, hashTable[:])
	if err != nil || n == 0 || n >= len(payload) {
		// Incompressible; store raw.
		return append([]byte{formatRaw}, payload...), nil
	}

	record := make([]byte, 0, 5+n)
	record = append(record, formatLZ4)
	record = binary.LittleEndian.AppendUint32(record, uint32(len(payload)))
	record = append(record, compressed[:n]...)
	return record, nil
}

// Decode deserializes a durable record back into a document.
func (c *Codec) Decode(record []byte) (domain.Document, error) {
	if len(record) == 0 {
		return nil, fmt.Errorf("empty record")
	}

	var payload []byte
	switch record[0] {
	case formatRaw:
		payload = record[1:]
	case formatLZ4:
		if len(record) < 5 {
			return nil, fmt.Errorf("truncated lz4 record")
		}
		size := binary.LittleEndian.Uint32(record[1:5])
		payload = make([]byte, size)
		n, err := lz4.UncompressBlock(record[5:], payload)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress record: %w", err)
		}
		payload = payload[:n]
	default:
		return nil, fmt.Errorf("unknown record format 0x%02x", record[0])
	}

	var doc domain.Document
	if err := msgpack.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode MessagePack: %w", err)
	}
	return doc, nil
}
