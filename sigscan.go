// Package sigscan detects a fixed byte signature inside ELF binaries
// under a directory tree, using bounded memory per file and a fixed
// pool of parallel workers.
//
// # Basic Usage
//
// Create a scanner for a signature and run it over a tree:
//
//	scanner, err := sigscan.NewScanner("/usr/local", []byte("crypty"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	summary, records, err := scanner.Run(context.Background())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, rec := range records {
//	    if rec.Outcome == sigscan.OutcomeInfected {
//	        fmt.Printf("infected: %s\n", rec.Path)
//	    }
//	}
//	fmt.Printf("%d files scanned, %d infected\n", summary.Total, summary.Infected)
package sigscan

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/threatline/sigscan/pkg/enum"
	"github.com/threatline/sigscan/pkg/matcher"
	"github.com/threatline/sigscan/pkg/scanner"
	"github.com/threatline/sigscan/pkg/signature"
	"github.com/threatline/sigscan/pkg/types"
)

// Re-export commonly used types for convenience.
// Users can import just "github.com/threatline/sigscan" without subpackages.
type (
	// Record is the per-file scan result.
	Record = types.Record

	// Outcome classifies a per-file result.
	Outcome = types.Outcome

	// Summary aggregates per-outcome counts for a run.
	Summary = types.Summary

	// Signature is the literal byte pattern searched for.
	Signature = signature.Signature
)

// Re-export outcome constants.
const (
	OutcomeInfected   = types.OutcomeInfected
	OutcomeClean      = types.OutcomeClean
	OutcomeIneligible = types.OutcomeIneligible
	OutcomeError      = types.OutcomeError
)

// LoadSignature reads a signature file fully into memory and rejects
// empty sources.
func LoadSignature(path string) (Signature, error) {
	return signature.Load(path)
}

// Scanner scans a directory tree for one signature.
type Scanner struct {
	core *scanner.Core
}

// Option configures a Scanner.
type Option func(*scanner.Config)

// WithWorkers sets the worker pool size. Default is the number of
// available CPUs.
func WithWorkers(n int) Option {
	return func(c *scanner.Config) {
		c.Workers = n
	}
}

// WithChunkSize sets the matcher's per-read chunk floor in bytes.
func WithChunkSize(size int) Option {
	return func(c *scanner.Config) {
		c.Matcher.ChunkSize = size
	}
}

// WithEnumConfig overrides enumeration behavior (hidden files,
// symlinks, size cap, ignore file). The root is always taken from
// NewScanner.
func WithEnumConfig(cfg enum.Config) Option {
	return func(c *scanner.Config) {
		c.Enum = cfg
	}
}

// WithLogger attaches a logger for debug output.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *scanner.Config) {
		c.Logger = logger
	}
}

// NewScanner creates a Scanner for the given root and raw signature
// bytes. An empty signature is rejected here, before any scanning.
func NewScanner(root string, sig []byte, opts ...Option) (*Scanner, error) {
	validated, err := signature.New(sig)
	if err != nil {
		return nil, err
	}

	cfg := scanner.Config{
		Root:      root,
		Signature: validated,
		Matcher:   matcher.DefaultConfig(),
		Logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	core, err := scanner.New(cfg)
	if err != nil {
		return nil, err
	}
	return &Scanner{core: core}, nil
}

// Run scans the tree and returns the aggregated outcome records once
// all workers have drained.
func (s *Scanner) Run(ctx context.Context) (*Summary, []Record, error) {
	return s.core.Run(ctx)
}
