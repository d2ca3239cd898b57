// Package scanner orchestrates a run: it enumerates candidate files,
// fans one scan unit per file out to a fixed worker pool, and funnels
// every outcome through a synchronized sink.
package scanner

import (
	"context"
	"fmt"
	"runtime"

	"github.com/rs/zerolog"

	"github.com/threatline/sigscan/pkg/classifier"
	"github.com/threatline/sigscan/pkg/enum"
	"github.com/threatline/sigscan/pkg/matcher"
	"github.com/threatline/sigscan/pkg/pool"
	"github.com/threatline/sigscan/pkg/signature"
	"github.com/threatline/sigscan/pkg/sink"
	"github.com/threatline/sigscan/pkg/types"
)

// Config for a scan run.
type Config struct {
	// Root is the directory tree to scan.
	Root string

	// Signature is the literal byte pattern to search for.
	Signature signature.Signature

	// Workers is the pool size (0 = available CPUs).
	Workers int

	// Matcher tunes chunk sizing.
	Matcher matcher.Config

	// Enum tunes enumeration. Enum.Root is derived from Root.
	Enum enum.Config

	// Logger for debug output (default: no-op).
	Logger zerolog.Logger
}

// Core runs scans. Construct with New; a Core is safe to reuse for
// sequential runs but a single Run owns its pool and sink.
type Core struct {
	cfg     Config
	matcher *matcher.Matcher
	log     zerolog.Logger
}

// New validates the configuration and builds the shared matcher.
// An empty signature is a configuration error: the run is rejected
// here, before any scanning starts.
func New(cfg Config) (*Core, error) {
	if cfg.Root == "" {
		return nil, fmt.Errorf("scan root is required")
	}

	m, err := matcher.New(cfg.Signature, cfg.Matcher)
	if err != nil {
		return nil, err
	}

	if cfg.Workers < 1 {
		cfg.Workers = runtime.NumCPU()
	}
	cfg.Enum.Root = cfg.Root

	return &Core{
		cfg:     cfg,
		matcher: m,
		log:     cfg.Logger,
	}, nil
}

// Run enumerates the tree, scans every candidate file in parallel,
// and returns the aggregated records once the pool has drained.
//
// The calling goroutine is the sole producer: it blocks only on the
// final pool shutdown, never on individual scans. Traversal failure
// is fatal; per-file failures become error records and the run
// continues.
func (c *Core) Run(ctx context.Context) (*types.Summary, []types.Record, error) {
	results := sink.NewMemory()

	p := pool.New(c.cfg.Workers, pool.WithPanicHandler(func(r any) {
		c.log.Error().Any("panic", r).Msg("scan unit panicked")
	}))

	c.log.Debug().
		Str("root", c.cfg.Root).
		Int("workers", c.cfg.Workers).
		Int("chunk_size", c.matcher.ChunkSize()).
		Msg("scan starting")

	enumerator := enum.NewFilesystemEnumerator(c.cfg.Enum)
	err := enumerator.Enumerate(ctx, func(path string) error {
		return p.Submit(func() {
			c.scanUnit(path, results)
		})
	})

	// Drain in-flight units before deciding the run's fate: even a
	// failed traversal must not leak workers.
	p.Shutdown()

	if err != nil {
		return nil, nil, fmt.Errorf("traversing %s: %w", c.cfg.Root, err)
	}

	records := results.Snapshot()
	summary := types.Summarize(records)

	c.log.Debug().
		Int("total", summary.Total).
		Int("infected", summary.Infected).
		Int("errors", summary.Errors).
		Msg("scan complete")

	return &summary, records, nil
}

// scanUnit classifies then matches a single file and emits exactly
// one record. Every failure stays local to this unit.
func (c *Core) scanUnit(path string, out sink.Sink) {
	eligible, err := classifier.IsEligible(path)
	if err != nil {
		c.log.Debug().Err(err).Str("path", path).Msg("classify failed")
		out.Record(types.Record{Path: path, Outcome: types.OutcomeError, Detail: err.Error()})
		return
	}
	if !eligible {
		out.Record(types.Record{Path: path, Outcome: types.OutcomeIneligible})
		return
	}

	found, err := c.matcher.File(path)
	if err != nil {
		c.log.Debug().Err(err).Str("path", path).Msg("scan failed")
		out.Record(types.Record{Path: path, Outcome: types.OutcomeError, Detail: err.Error()})
		return
	}

	if found {
		out.Record(types.Record{Path: path, Outcome: types.OutcomeInfected})
	} else {
		out.Record(types.Record{Path: path, Outcome: types.OutcomeClean})
	}
}
