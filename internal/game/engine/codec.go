package engine

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/crypto/blake2b"
)

// ErrCorruptSave is returned by Decode for blobs that fail the header,
// checksum or decompression checks.
var ErrCorruptSave = errors.New("engine: corrupt save")

// saveMagic prefixes every encoded save.
var saveMagic = []byte("TOMB")

const (
	codecVersion = 1
	headerLen    = 4 + 1 + blake2b.Size256
)

var (
	zstdEncoder = mustZstd(zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault)))
	zstdDecoder = mustZstd(zstd.NewReader(nil, zstd.WithDecoderConcurrency(0)))
)

// mustZstd panics when a zstd codec cannot be built; the options are fixed,
// so an error here is a programming error.
func mustZstd[T any](codec T, err error) T {
	if err != nil {
		panic(fmt.Sprintf("engine: building zstd codec: %v", err))
	}
	return codec
}

// Encode serialises s as a save blob: the magic, a codec version byte, the
// BLAKE2b-256 sum of the payload, then the zstd-compressed JSON payload.
func Encode(s *Snapshot) ([]byte, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("engine: encoding snapshot: %w", err)
	}
	payload := zstdEncoder.EncodeAll(raw, nil)
	sum := blake2b.Sum256(payload)

	out := make([]byte, 0, headerLen+len(payload))
	out = append(out, saveMagic...)
	out = append(out, codecVersion)
	out = append(out, sum[:]...)
	return append(out, payload...), nil
}

// Decode reverses Encode.
//
// Postcondition: returns an error wrapping ErrCorruptSave for any blob
// Encode could not have produced.
func Decode(blob []byte) (*Snapshot, error) {
	if len(blob) < headerLen || !bytes.Equal(blob[:4], saveMagic) {
		return nil, fmt.Errorf("%w: bad header", ErrCorruptSave)
	}
	if v := blob[4]; v != codecVersion {
		return nil, fmt.Errorf("%w: unsupported codec version %d", ErrCorruptSave, v)
	}
	payload := blob[headerLen:]
	sum := blake2b.Sum256(payload)
	if !bytes.Equal(sum[:], blob[5:headerLen]) {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrCorruptSave)
	}
	raw, err := zstdDecoder.DecodeAll(payload, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSave, err)
	}
	var s Snapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSave, err)
	}
	return &s, nil
}

// Save encodes the engine's current state.
func (e *Engine) Save() ([]byte, error) {
	return Encode(e.Snapshot())
}

// Load decodes blob and restores an Engine from it.
func Load(blob []byte, deps Deps) (*Engine, error) {
	s, err := Decode(blob)
	if err != nil {
		return nil, err
	}
	return Restore(s, deps)
}
