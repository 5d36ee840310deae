// Package batch runs draft synthesis over many conversational inputs.
package batch

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"sync/atomic"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/prospect-intel/internal/model"
	"github.com/sells-group/prospect-intel/internal/synth"
)

// maxLineBytes bounds a single JSONL record; research narratives run long.
const maxLineBytes = 4 * 1024 * 1024

// Result pairs a synthesized draft with its input position and any
// validation errors.
type Result struct {
	Index  int                 `json:"index"`
	Draft  model.ResearchDraft `json:"draft"`
	Errors map[string]string   `json:"errors,omitempty"`
}

// Valid reports whether the draft passed validation.
func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

// ReadInputs loads draft inputs from a JSONL file, one object per line.
// Blank lines are skipped.
func ReadInputs(path string) ([]model.DraftInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "batch: open %s", path)
	}
	defer f.Close()

	var inputs []model.DraftInput
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var input model.DraftInput
		if err := json.Unmarshal(raw, &input); err != nil {
			return nil, eris.Wrapf(err, "batch: parse %s line %d", path, line)
		}
		inputs = append(inputs, input)
	}
	if err := scanner.Err(); err != nil {
		return nil, eris.Wrapf(err, "batch: read %s", path)
	}
	return inputs, nil
}

// Run synthesizes and validates every input concurrently, up to concurrency
// workers. Individual validation failures never abort the batch; they come
// back as Results with a populated error map. Results keep input order.
func Run(ctx context.Context, inputs []model.DraftInput, opts synth.Options, concurrency int) ([]Result, error) {
	if len(inputs) == 0 {
		return nil, nil
	}
	if concurrency <= 0 {
		concurrency = 1
	}

	zap.L().Info("processing batch",
		zap.Int("inputs", len(inputs)),
		zap.Int("concurrency", concurrency),
	)

	results := make([]Result, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var valid, invalid, clarifications atomic.Int64

	for i, input := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return eris.Wrap(err, "batch: cancelled")
			}

			draft := synth.Synthesize(input, opts)
			errs := synth.ValidateDraft(&draft)
			results[i] = Result{Index: i, Draft: draft, Errors: errs}

			switch {
			case draft.IsClarification():
				clarifications.Add(1)
			case len(errs) == 0:
				valid.Add(1)
			default:
				invalid.Add(1)
				zap.L().Debug("draft failed validation",
					zap.String("subject", draft.Subject),
					zap.Int("errors", len(errs)),
				)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "batch: run")
	}

	zap.L().Info("batch complete",
		zap.Int64("valid", valid.Load()),
		zap.Int64("invalid", invalid.Load()),
		zap.Int64("clarifications", clarifications.Load()),
	)
	return results, nil
}
