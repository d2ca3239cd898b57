// Package matcher implements a buffered, sliding-window literal
// substring search. It never loads the whole source into memory: peak
// usage is one chunk plus a carried overlap, independent of file size.
package matcher

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/threatline/sigscan/pkg/signature"
)

const (
	// DefaultChunkSize is the minimum read size per iteration.
	DefaultChunkSize = 4096

	// DefaultSlack is the headroom added on top of the signature
	// length when the signature is larger than the chunk floor.
	DefaultSlack = 1024
)

// Config tunes chunk sizing. Zero values select the defaults.
type Config struct {
	// ChunkSize is the floor for the per-read chunk in bytes.
	ChunkSize int

	// Slack is extra chunk headroom beyond the signature length,
	// so the chunk is always comfortably larger than the pattern.
	Slack int
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		ChunkSize: DefaultChunkSize,
		Slack:     DefaultSlack,
	}
}

// Matcher searches byte sources for a single literal signature.
// Safe for concurrent use: all state is immutable after construction
// and the working buffer is allocated per call.
type Matcher struct {
	sig     signature.Signature
	chunk   int // effective chunk size, >= max(ChunkSize, len(sig)+Slack)
	overlap int // len(sig)-1 bytes carried between windows
}

// New builds a matcher for the given signature.
func New(sig signature.Signature, cfg Config) (*Matcher, error) {
	if sig.Len() == 0 {
		return nil, fmt.Errorf("creating matcher: %w", signature.ErrEmpty)
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultChunkSize
	}
	if cfg.Slack <= 0 {
		cfg.Slack = DefaultSlack
	}

	chunk := cfg.ChunkSize
	if min := sig.Len() + cfg.Slack; chunk < min {
		chunk = min
	}

	return &Matcher{
		sig:     sig,
		chunk:   chunk,
		overlap: sig.Len() - 1,
	}, nil
}

// ChunkSize returns the effective per-read chunk size in bytes.
func (m *Matcher) ChunkSize() int {
	return m.chunk
}

// Reader reports whether the signature occurs anywhere in r.
//
// Each iteration carries the last overlap bytes of the previous window
// to the front of the buffer and reads up to one chunk of fresh bytes
// behind them, so a match straddling any chunk boundary still falls
// inside a single search window. A short read marks the final chunk.
func (m *Matcher) Reader(r io.Reader) (bool, error) {
	buf := make([]byte, m.overlap+m.chunk)
	carry := 0

	for {
		n, err := io.ReadFull(r, buf[carry:carry+m.chunk])
		window := buf[:carry+n]

		if bytes.Contains(window, m.sig) {
			return true, nil
		}

		switch err {
		case nil:
		case io.EOF, io.ErrUnexpectedEOF:
			// Final chunk already searched.
			return false, nil
		default:
			return false, err
		}

		carry = m.overlap
		if len(window) < carry {
			carry = len(window)
		}
		copy(buf, window[len(window)-carry:])
	}
}

// File opens path and searches it with Reader. Open and read errors
// are returned so the caller can record a per-file failure.
func (m *Matcher) File(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	return m.Reader(f)
}

// Bytes searches an in-memory buffer through the same windowed path.
func (m *Matcher) Bytes(content []byte) bool {
	found, _ := m.Reader(bytes.NewReader(content))
	return found
}
