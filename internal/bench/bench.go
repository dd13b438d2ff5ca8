// Package bench measures the cost of the linear-scan container across a
// number of independent trials. Trials run concurrently on a worker pool,
// but each trial creates and owns its own container.
package bench

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/amp-labs/dict/dict"
	"github.com/amp-labs/dict/logger"
	"github.com/amp-labs/dict/should"
	"github.com/google/uuid"
)

var (
	ErrInvalidConfig = errors.New("invalid bench config")
	ErrMismatch      = errors.New("container returned unexpected data")
)

// KeyMode selects how trial keys are generated.
type KeyMode string

const (
	KeysSequential KeyMode = "seq"
	KeysUUID       KeyMode = "uuid"
)

// Config describes a benchmark run.
type Config struct {
	Entries int
	Trials  int
	Workers int
	Keys    KeyMode
}

// Validate checks that the config describes a runnable benchmark.
func (c Config) Validate() error {
	switch {
	case c.Entries < 1:
		return fmt.Errorf("%w: need at least one entry", ErrInvalidConfig)
	case c.Trials < 1:
		return fmt.Errorf("%w: need at least one trial", ErrInvalidConfig)
	case c.Workers < 1:
		return fmt.Errorf("%w: need at least one worker", ErrInvalidConfig)
	case c.Keys != KeysSequential && c.Keys != KeysUUID:
		return fmt.Errorf("%w: unknown key mode %q", ErrInvalidConfig, c.Keys)
	}

	return nil
}

// Result holds per-phase timings of one trial.
type Result struct {
	Trial     int
	Entries   int
	Insert    time.Duration
	Lookup    time.Duration
	Enumerate time.Duration
	Remove    time.Duration
	Clear     time.Duration
}

// Total is the sum of all phases.
func (r Result) Total() time.Duration {
	return r.Insert + r.Lookup + r.Enumerate + r.Remove + r.Clear
}

// Run executes cfg.Trials trials on a pool of cfg.Workers workers and returns
// their results in trial order. Options are applied to every trial's container.
func Run(ctx context.Context, cfg Config, opts ...dict.Option) ([]Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pool := pond.NewResultPool[Result](cfg.Workers, pond.WithContext(ctx))
	defer pool.StopAndWait()

	group := pool.NewGroup()

	for trial := range cfg.Trials {
		group.SubmitErr(func() (Result, error) {
			return runTrial(ctx, trial, cfg, opts)
		})
	}

	results, err := group.Wait()
	if err != nil {
		return nil, err
	}

	return results, nil
}

// TrialName is the container name used by the given trial, so concurrent
// trials report under separate metric series.
func TrialName(trial int) string {
	return "bench-" + strconv.Itoa(trial)
}

func keysFor(cfg Config) []string {
	keys := make([]string, cfg.Entries)

	for i := range keys {
		if cfg.Keys == KeysUUID {
			keys[i] = uuid.NewString()
		} else {
			keys[i] = "key" + strconv.Itoa(i)
		}
	}

	return keys
}

func runTrial(ctx context.Context, trial int, cfg Config, opts []dict.Option) (Result, error) {
	log := logger.Get(logger.With(ctx, "trial", trial))
	result := Result{Trial: trial, Entries: cfg.Entries}
	keys := keysFor(cfg)

	d := dict.New[string, int](append(slices.Clone(opts), dict.WithName(TrialName(trial)))...)

	defer should.Free(d, "failed to free bench container")

	phases := []struct {
		name string
		dst  *time.Duration
		run  func() error
	}{
		{"insert", &result.Insert, func() error { return insertAll(d, keys) }},
		{"lookup", &result.Lookup, func() error { return lookupAll(d, keys) }},
		{"enumerate", &result.Enumerate, func() error { return enumerateAll(d, len(keys)) }},
		{"remove", &result.Remove, func() error { return removeEven(d, keys) }},
		{"clear", &result.Clear, d.Clear},
	}

	for _, phase := range phases {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		start := time.Now()

		if err := phase.run(); err != nil {
			return result, fmt.Errorf("trial %d %s: %w", trial, phase.name, err)
		}

		*phase.dst = time.Since(start)
	}

	log.Debug("bench trial finished", "entries", cfg.Entries, "total", result.Total())

	return result, nil
}

func insertAll(d *dict.Dict[string, int], keys []string) error {
	for i, key := range keys {
		if err := d.Set(key, i); err != nil {
			return err
		}
	}

	if d.Size() != len(keys) {
		return fmt.Errorf("%w: size %d after inserting %d keys", ErrMismatch, d.Size(), len(keys))
	}

	return nil
}

func lookupAll(d *dict.Dict[string, int], keys []string) error {
	for i, key := range keys {
		v, err := d.Get(key)
		if err != nil {
			return err
		}

		if v != i {
			return fmt.Errorf("%w: %s = %d, want %d", ErrMismatch, key, v, i)
		}
	}

	return nil
}

func enumerateAll(d *dict.Dict[string, int], want int) error {
	visits := 0

	if err := d.Enum(func(*dict.Dict[string, int], string, int) bool {
		visits++

		return false
	}); err != nil {
		return err
	}

	if visits != want {
		return fmt.Errorf("%w: visited %d of %d entries", ErrMismatch, visits, want)
	}

	return nil
}

func removeEven(d *dict.Dict[string, int], keys []string) error {
	for i := 0; i < len(keys); i += 2 {
		v, err := d.Remove(keys[i])
		if err != nil {
			return err
		}

		if v != i {
			return fmt.Errorf("%w: removed %s = %d, want %d", ErrMismatch, keys[i], v, i)
		}
	}

	return nil
}
