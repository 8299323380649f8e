// Package pipeline decodes and partitions many method bodies concurrently.
package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog"

	"ilflow/internal/blocks"
	"ilflow/internal/cil"
	"ilflow/internal/ilfmt"
)

// Method is one raw method body to process.
type Method struct {
	Name string
	Data []byte
}

// Result is the outcome for one method. Body and Tree are nil when Err is
// set; Diags may be non-empty either way.
type Result struct {
	Name  string
	Body  *cil.MethodBody
	Tree  *blocks.MethodBlocks
	Diags []ilfmt.Diag
	Err   error
}

// Options controls a batch run.
type Options struct {
	Mode            ilfmt.Mode
	Workers         int  // pool size; 0 = runtime.NumCPU()
	MaxInstructions int  // per-method decode cap; 0 = ilfmt default
	Verify          bool // re-check tree invariants after parsing
	Logger          *zerolog.Logger
}

func (o Options) workers(n int) int {
	w := o.Workers
	if w <= 0 {
		w = runtime.NumCPU()
	}
	if w > n {
		w = n
	}
	if w < 1 {
		w = 1
	}
	return w
}

func (o Options) logger() zerolog.Logger {
	if o.Logger == nil {
		return zerolog.Nop()
	}
	return *o.Logger
}

// Run processes methods on a fixed-size worker pool. Results are returned in
// input order. In strict mode the error aggregates every failed method; in
// best-effort mode failures are logged and only recorded in the results.
// Cancellation is checked before each method.
func Run(ctx context.Context, methods []Method, opts Options) ([]Result, error) {
	log := opts.logger()
	results := make([]Result, len(methods))
	if len(methods) == 0 {
		return results, nil
	}

	pool, err := ants.NewPool(opts.workers(len(methods)))
	if err != nil {
		return nil, fmt.Errorf("pipeline: create pool: %w", err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i := range methods {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			results[i] = process(ctx, methods[i], opts)
		}
		if err := pool.Submit(task); err != nil {
			wg.Done()
			results[i] = Result{Name: methods[i].Name, Err: fmt.Errorf("pipeline: submit: %w", err)}
		}
	}
	wg.Wait()

	var merr *multierror.Error
	for _, r := range results {
		if r.Err == nil {
			st := r.Tree.Stats()
			log.Debug().
				Str("method", r.Name).
				Int("blocks", st.Blocks).
				Int("tries", st.Tries).
				Int("diags", len(r.Diags)).
				Msg("parsed")
			continue
		}
		if opts.Mode == ilfmt.ModeStrict {
			merr = multierror.Append(merr, fmt.Errorf("%s: %w", r.Name, r.Err))
			continue
		}
		log.Warn().
			Str("method", r.Name).
			Err(r.Err).
			Int("diags", len(r.Diags)).
			Msg("method skipped")
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, merr.ErrorOrNil()
}

func process(ctx context.Context, m Method, opts Options) Result {
	r := Result{Name: m.Name}
	if err := ctx.Err(); err != nil {
		r.Err = err
		return r
	}

	body, diags, err := ilfmt.ReadMethodBody(m.Data, ilfmt.Options{
		Mode:            opts.Mode,
		MaxInstructions: opts.MaxInstructions,
	})
	if diags != nil {
		r.Diags = diags.Items()
	}
	if err != nil {
		r.Err = err
		return r
	}

	tree, err := body.Blocks()
	if err != nil {
		r.Err = err
		return r
	}
	if opts.Verify {
		if err := tree.Verify(); err != nil {
			r.Err = err
			return r
		}
	}
	r.Body, r.Tree = body, tree
	return r
}
