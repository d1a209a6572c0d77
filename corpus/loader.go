package corpus

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/policymatch/core"
)

// Report is the outcome of one corpus load.
type Report struct {
	// Records holds the loaded records, grouped by source in configuration order.
	Records []*core.PolicyRecord
	// Loaded names the sources that were read successfully.
	Loaded []string
	// Failed maps the name of each failed source to its error.
	Failed map[string]error
}

// Loader reads a corpus from several sources concurrently.
type Loader struct {
	sources []Source
	pool    *ants.Pool
	logger  *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader) error

// WithLoaderLogger sets a custom logger.
// Default is slog.Default().
func WithLoaderLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) error {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger
		return nil
	}
}

// WithConcurrency sets how many sources are read at the same time.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithConcurrency(size int) LoaderOption {
	return func(l *Loader) error {
		if size < 1 {
			size = 1
		}
		if l.pool != nil {
			l.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		l.pool = pool
		return nil
	}
}

// NewLoader creates a Loader over sources.
func NewLoader(sources []Source, opts ...LoaderOption) (*Loader, error) {
	if len(sources) == 0 {
		return nil, ErrNoSources
	}

	size := runtime.NumCPU() / 2
	if size < 1 {
		size = 1
	}
	pool, err := ants.NewPool(size)
	if err != nil {
		return nil, err
	}

	l := &Loader{
		sources: sources,
		pool:    pool,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(l); err != nil {
			l.Release()
			return nil, err
		}
	}
	l.logger = l.logger.With("component", "corpus-loader")
	return l, nil
}

// Load reads every source. A failing source is logged and skipped; Load only
// returns an error when ctx is done before the sources finish.
func (l *Loader) Load(ctx context.Context) (*Report, error) {
	type outcome struct {
		records []*core.PolicyRecord
		err     error
	}
	outcomes := make([]outcome, len(l.sources))

	var wg sync.WaitGroup
	for i, src := range l.sources {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					outcomes[i].err = fmt.Errorf("panic: %v", r)
				}
			}()
			records, err := src.Load(ctx)
			outcomes[i] = outcome{records: records, err: err}
		}
		if err := l.pool.Submit(task); err != nil {
			outcomes[i].err = err
			wg.Done()
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report := &Report{Failed: make(map[string]error)}
	for i, src := range l.sources {
		o := outcomes[i]
		if o.err != nil {
			err := fmt.Errorf("%w: %s: %w", ErrSourceFailed, src.Name(), o.err)
			report.Failed[src.Name()] = err
			l.logger.Warn("skipping corpus source", "source", src.Name(), "err", o.err)
			continue
		}
		kept := 0
		for _, r := range o.records {
			if r == nil {
				continue
			}
			report.Records = append(report.Records, normalizeRecord(r))
			kept++
		}
		report.Loaded = append(report.Loaded, src.Name())
		l.logger.Debug("loaded corpus source", "source", src.Name(), "records", kept)
	}

	l.logger.Info("corpus loaded",
		"records", len(report.Records),
		"sources", len(report.Loaded),
		"failed", len(report.Failed))
	return report, nil
}

// LoadCorpus returns only the records of a Load.
func (l *Loader) LoadCorpus(ctx context.Context) ([]*core.PolicyRecord, error) {
	report, err := l.Load(ctx)
	if err != nil {
		return nil, err
	}
	return report.Records, nil
}

// Release releases the loader's worker pool.
func (l *Loader) Release() {
	if l.pool != nil {
		l.pool.Release()
	}
}

func normalizeRecord(r *core.PolicyRecord) *core.PolicyRecord {
	c := Clone(r)
	c.ServiceName = Normalize(c.ServiceName)
	c.AgencyName = Normalize(c.AgencyName)
	c.TargetDescription = Normalize(c.TargetDescription)
	c.SupportContent = Normalize(c.SupportContent)
	c.ApplicationMethod = Normalize(c.ApplicationMethod)
	return c
}
