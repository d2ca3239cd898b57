// Package signature loads the literal byte pattern whose presence in a
// file marks it as infected.
package signature

import (
	"errors"
	"fmt"
	"os"
)

// ErrEmpty is returned when a signature source contains no bytes.
// An empty signature would trivially match everything, so the run is
// rejected before any scanning starts.
var ErrEmpty = errors.New("signature is empty")

// Signature is an immutable literal byte sequence, length >= 1.
// It is shared read-only by all workers for the lifetime of a run.
type Signature []byte

// New validates raw bytes as a signature. The input is copied so the
// caller cannot mutate the shared pattern afterwards.
func New(data []byte) (Signature, error) {
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	sig := make(Signature, len(data))
	copy(sig, data)
	return sig, nil
}

// Load reads a signature file fully into memory.
// The file must exist, be readable, and be non-empty.
func Load(path string) (Signature, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading signature file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("signature path %s is not a regular file", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading signature file: %w", err)
	}

	sig, err := New(data)
	if err != nil {
		return nil, fmt.Errorf("signature file %s: %w", path, err)
	}
	return sig, nil
}

// Len returns the signature length in bytes.
func (s Signature) Len() int {
	return len(s)
}
