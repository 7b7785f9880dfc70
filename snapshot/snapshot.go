// Package snapshot reads and writes self-describing record blobs.
//
// Layout (little endian):
//
//	magic "DPRS" | version u8 | compression u8 | codec name len u8 | codec name
//	| uncompressed size u32 | payload size u32 | payload crc32 u32 | payload
//
// The payload is a []record.Document encoded with the named codec and then
// compressed.
package snapshot

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"

	"github.com/hupe1980/dataprovider/codec"
	"github.com/hupe1980/dataprovider/record"
)

const (
	magic   = "DPRS"
	version = 1

	fixedHeaderSize = len(magic) + 3
	sizesSize       = 12
)

// ErrCorrupt is returned when a blob is not a valid snapshot.
var ErrCorrupt = errors.New("corrupt snapshot")

// Options configures Encode.
type Options struct {
	// Codec encodes the documents. Defaults to codec.Default.
	Codec codec.Codec
	// Compression is applied to the encoded payload.
	Compression Compression
}

// Header describes an encoded snapshot.
type Header struct {
	Version          uint8
	Compression      Compression
	Codec            string
	UncompressedSize uint32
	PayloadSize      uint32
}

// Encode serializes docs into a snapshot blob.
func Encode(docs []record.Document, optFns ...func(*Options)) ([]byte, error) {
	opts := Options{Codec: codec.Default, Compression: CompressionZSTD}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Codec == nil {
		opts.Codec = codec.Default
	}
	name := opts.Codec.Name()
	if len(name) > 255 {
		return nil, fmt.Errorf("codec name too long: %q", name)
	}

	if docs == nil {
		docs = []record.Document{}
	}
	raw, err := opts.Codec.Marshal(docs)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	payload, used, err := compress(raw, opts.Compression)
	if err != nil {
		return nil, fmt.Errorf("compress snapshot: %w", err)
	}

	out := make([]byte, 0, fixedHeaderSize+len(name)+sizesSize+len(payload))
	out = append(out, magic...)
	out = append(out, version, byte(used), byte(len(name)))
	out = append(out, name...)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(raw)))
	out = binary.LittleEndian.AppendUint32(out, uint32(len(payload)))
	out = binary.LittleEndian.AppendUint32(out, crc32.ChecksumIEEE(payload))
	out = append(out, payload...)
	return out, nil
}

// ReadHeader parses and validates the header of a snapshot blob. It returns
// the header and the payload.
func ReadHeader(data []byte) (Header, []byte, error) {
	if len(data) < fixedHeaderSize || string(data[:len(magic)]) != magic {
		return Header{}, nil, fmt.Errorf("%w: bad magic", ErrCorrupt)
	}

	h := Header{
		Version:     data[4],
		Compression: Compression(data[5]),
	}
	if h.Version != version {
		return Header{}, nil, fmt.Errorf("%w: unsupported version %d", ErrCorrupt, h.Version)
	}

	nameLen := int(data[6])
	rest := data[fixedHeaderSize:]
	if len(rest) < nameLen+sizesSize {
		return Header{}, nil, fmt.Errorf("%w: truncated header", ErrCorrupt)
	}
	h.Codec = string(rest[:nameLen])
	rest = rest[nameLen:]

	h.UncompressedSize = binary.LittleEndian.Uint32(rest[0:])
	h.PayloadSize = binary.LittleEndian.Uint32(rest[4:])
	sum := binary.LittleEndian.Uint32(rest[8:])
	rest = rest[sizesSize:]

	if uint32(len(rest)) != h.PayloadSize {
		return Header{}, nil, fmt.Errorf("%w: payload size %d, want %d", ErrCorrupt, len(rest), h.PayloadSize)
	}
	if crc32.ChecksumIEEE(rest) != sum {
		return Header{}, nil, fmt.Errorf("%w: checksum mismatch", ErrCorrupt)
	}
	return h, rest, nil
}

// Decode parses a snapshot blob back into documents.
func Decode(data []byte) ([]record.Document, error) {
	h, payload, err := ReadHeader(data)
	if err != nil {
		return nil, err
	}

	c, ok := codec.ByName(h.Codec)
	if !ok {
		return nil, fmt.Errorf("%w: unknown codec %q", ErrCorrupt, h.Codec)
	}

	raw, err := decompress(payload, h.Compression, h.UncompressedSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	var docs []record.Document
	if err := c.Unmarshal(raw, &docs); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return docs, nil
}
