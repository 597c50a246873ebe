// Package sweep stress-tests the codec by corrupting an encoded message in
// many ways and checking what the decoder makes of each case.
package sweep

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"

	"github.com/Davincible/rscodec/pkg/rs"
	"golang.org/x/sync/errgroup"
)

// Outcome classifies a single decode attempt.
type Outcome int

const (
	Recovered    Outcome = iota // decoded to the original message
	Detected                    // decoder reported ErrUncorrectable
	Miscorrected                // decoded without error to a different message
)

func (o Outcome) String() string {
	switch o {
	case Recovered:
		return "recovered"
	case Detected:
		return "detected"
	case Miscorrected:
		return "miscorrected"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Options configures a sweep.
type Options struct {
	Nsym int
	// Errors is the number of corrupted bytes per trial. With Errors == 1
	// and Samples == 0 every bit of every byte is flipped once.
	Errors  int
	Samples int
	Workers int
	Seed    int64
	// Progress, if set, is called once per finished trial.
	Progress func()
}

// Trial is one corruption pattern.
type Trial struct {
	Positions []int
	Deltas    []byte
}

// Failure records a trial within capacity that did not recover.
type Failure struct {
	Trial   Trial
	Outcome Outcome
}

// Report summarizes a sweep.
type Report struct {
	Codeword     []byte
	Nsym         int
	Errors       int
	Trials       int
	Recovered    int
	Detected     int
	Miscorrected int
	// Failures lists trials with at most nsym/2 errors that were not
	// recovered. It is always empty for a correct decoder.
	Failures []Failure
}

// WithinCapacity reports whether the swept error count is guaranteed
// correctable.
func (r *Report) WithinCapacity() bool {
	return r.Errors <= rs.Capacity(r.Nsym)
}

// Trials builds the corruption patterns for a codeword of length n.
func Trials(n int, opts Options) ([]Trial, error) {
	if opts.Errors < 1 || opts.Errors > n {
		return nil, fmt.Errorf("errors per trial must be between 1 and %d, got %d", n, opts.Errors)
	}

	if opts.Errors == 1 && opts.Samples == 0 {
		trials := make([]Trial, 0, n*8)
		for pos := 0; pos < n; pos++ {
			for bit := 0; bit < 8; bit++ {
				trials = append(trials, Trial{
					Positions: []int{pos},
					Deltas:    []byte{1 << bit},
				})
			}
		}
		return trials, nil
	}

	if opts.Samples < 1 {
		return nil, fmt.Errorf("samples must be positive for %d errors per trial", opts.Errors)
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	trials := make([]Trial, opts.Samples)
	for i := range trials {
		positions := rng.Perm(n)[:opts.Errors]
		deltas := make([]byte, opts.Errors)
		for j := range deltas {
			deltas[j] = byte(1 + rng.Intn(255))
		}
		trials[i] = Trial{Positions: positions, Deltas: deltas}
	}
	return trials, nil
}

// Apply returns a corrupted copy of codeword.
func (t Trial) Apply(codeword []byte) []byte {
	out := append([]byte(nil), codeword...)
	for i, pos := range t.Positions {
		out[pos] ^= t.Deltas[i]
	}
	return out
}

// Run encodes message and decodes every trial concurrently.
func Run(ctx context.Context, message []byte, opts Options) (*Report, error) {
	codeword, err := rs.Encode(message, opts.Nsym)
	if err != nil {
		return nil, err
	}

	trials, err := Trials(len(codeword), opts)
	if err != nil {
		return nil, err
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	report := &Report{
		Codeword: codeword,
		Nsym:     opts.Nsym,
		Errors:   opts.Errors,
		Trials:   len(trials),
	}
	var (
		counts   [3]atomic.Int64
		mu       sync.Mutex
		failures []Failure
	)
	within := report.WithinCapacity()

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	for _, trial := range trials {
		if egCtx.Err() != nil {
			break
		}
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}

			outcome, decodeErr := classify(message, trial.Apply(codeword), opts.Nsym)
			if decodeErr != nil {
				return decodeErr
			}
			counts[outcome].Add(1)

			if within && outcome != Recovered {
				mu.Lock()
				failures = append(failures, Failure{Trial: trial, Outcome: outcome})
				mu.Unlock()
			}
			if opts.Progress != nil {
				opts.Progress()
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report.Recovered = int(counts[Recovered].Load())
	report.Detected = int(counts[Detected].Load())
	report.Miscorrected = int(counts[Miscorrected].Load())
	report.Failures = failures
	return report, nil
}

// classify decodes one corrupted codeword. Errors other than
// ErrUncorrectable are returned since they indicate a broken decoder.
func classify(message, corrupted []byte, nsym int) (Outcome, error) {
	got, err := rs.Decode(corrupted, nsym)
	switch {
	case errors.Is(err, rs.ErrUncorrectable):
		return Detected, nil
	case err != nil:
		return 0, fmt.Errorf("decode: %w", err)
	case bytes.Equal(got, message):
		return Recovered, nil
	default:
		return Miscorrected, nil
	}
}
