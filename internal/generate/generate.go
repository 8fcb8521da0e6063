// Package generate orchestrates the fixture pipeline: ensure the identifier
// cache, sample each requested entity kind, render the lookup tests, and
// write the output file in one atomic step.
package generate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/leoschwarz/mbtestgen/internal/catalog"
	"github.com/leoschwarz/mbtestgen/internal/mbids"
	"github.com/leoschwarz/mbtestgen/internal/render"
	"github.com/leoschwarz/mbtestgen/internal/sample"
	"github.com/leoschwarz/mbtestgen/pkg/logger"
	"github.com/leoschwarz/mbtestgen/pkg/safeio"
)

// ErrFragmentCollision means two distinct MBIDs of one kind collapsed to the
// same test-name fragment after hyphen removal.
var ErrFragmentCollision = errors.New("test name fragment collision")

// Options configures one generation run.
type Options struct {
	Kinds     []catalog.Kind
	Num       int
	Seed      int64
	Output    string
	UserAgent string
	Refresh   bool
}

// Result reports what a successful run produced.
type Result struct {
	Output  string
	Cases   int
	PerKind map[string]int
}

// Run executes the pipeline. Nothing is written unless every requested kind
// was sampled and rendered successfully.
func Run(ctx context.Context, store *mbids.Store, opts Options) (*Result, error) {
	if len(opts.Kinds) == 0 {
		return nil, errors.New("no entity kinds requested")
	}

	if err := store.Ensure(ctx, opts.Refresh); err != nil {
		return nil, err
	}

	sampler := sample.New(opts.Seed)

	var out strings.Builder
	preamble, err := render.Preamble(opts.UserAgent)
	if err != nil {
		return nil, err
	}
	out.WriteString(preamble)

	result := &Result{
		Output:  opts.Output,
		PerKind: make(map[string]int, len(opts.Kinds)),
	}

	for _, kind := range opts.Kinds {
		ids, err := store.List(kind)
		if err != nil {
			return nil, err
		}

		picked, err := sampler.Pick(ids, opts.Num)
		if err != nil {
			return nil, fmt.Errorf("sampling %s: %w", kind.Name, err)
		}
		if err := mbids.Validate(kind, picked); err != nil {
			return nil, err
		}

		fragments := make(map[string]string, len(picked))
		for _, mbid := range picked {
			fragment := render.Fragment(kind, mbid)
			if prev, dup := fragments[fragment]; dup {
				return nil, fmt.Errorf("%w: %s and %s both map to %s",
					ErrFragmentCollision, prev, mbid, fragment)
			}
			fragments[fragment] = mbid

			block, err := render.TestCase(kind, mbid)
			if err != nil {
				return nil, err
			}
			out.WriteString(block)
		}

		result.PerKind[kind.Name] = len(picked)
		result.Cases += len(picked)
		logger.Debug("rendered test cases",
			logger.String("kind", kind.Name), logger.Int("cases", len(picked)))
	}

	if err := safeio.WriteFileAtomic(opts.Output, []byte(out.String()), 0o644); err != nil {
		return nil, err
	}

	logger.Info("fixture file written",
		logger.String("output", opts.Output), logger.Int("cases", result.Cases))
	return result, nil
}
