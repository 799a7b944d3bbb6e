package gauge

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Outcome pairs a metric name with its accumulated result
type Outcome struct {
	Name   string
	Result Result
}

// Evaluator runs a fixed set of metrics over a whole dataset. Batches
// are fanned out to workers; each worker owns cloned metrics and its own
// partial-result chain, so no Result is ever touched by two goroutines.
// Worker partials are folded at the end - Combine being associative and
// commutative makes the fold order irrelevant.
type Evaluator struct {
	metrics []Metric
	cfg     EvalConfig
}

func NewEvaluator(metrics []Metric, cfg EvalConfig) (*Evaluator, error) {
	if len(metrics) == 0 {
		return nil, errorf("at least one metric is required")
	}
	if err := ValidateEvalConfig(cfg); err != nil {
		return nil, err
	}
	return &Evaluator{metrics: metrics, cfg: cfg}, nil
}

// Run scores predictions against targets batch by batch and returns one
// Outcome per metric, in metric order. Predictions must be
// [samples, classes]; targets must squeeze to one label per row.
// Cancelling ctx aborts outstanding batches; Apply and Combine
// themselves stay synchronous.
func (e *Evaluator) Run(ctx context.Context, predictions, targets *Tensor) ([]Outcome, error) {
	if predictions.Rank() != 2 {
		return nil, &EvalError{
			Kind:     ErrInvalidArgument,
			Op:       "Run",
			PredInfo: ScanTensor(predictions),
			Expected: "[samples, classes] predictions",
			Cause:    fmt.Sprintf("rank %d predictions are not supported", predictions.Rank()),
		}
	}
	samples := predictions.Shape()[0]
	tgt := targets.Squeeze()
	if tgt.Rank() != 1 || tgt.Size() != samples {
		return nil, &EvalError{
			Kind:       ErrInvalidArgument,
			Op:         "Run",
			TargetInfo: ScanTensor(targets),
			Expected:   fmt.Sprintf("%d class labels", samples),
			Cause:      fmt.Sprintf("targets hold %d labels after squeezing", tgt.Size()),
		}
	}

	numBatches := (samples + e.cfg.BatchSize - 1) / e.cfg.BatchSize
	workers := minInt(e.cfg.Workers, numBatches)

	batches := make(chan int)
	partials := make(chan []Result, workers)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(batches)
		for b := 0; b < numBatches; b++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			select {
			case batches <- b:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			metrics := make([]Metric, len(e.metrics))
			for i, m := range e.metrics {
				metrics[i] = m.Clone()
			}
			totals := make([]Result, len(metrics))
			for b := range batches {
				start := b * e.cfg.BatchSize
				predBatch := getBatch(predictions, start, e.cfg.BatchSize)
				tgtBatch := getBatch(tgt, start, e.cfg.BatchSize)
				for i, m := range metrics {
					r, err := m.Apply(SingleTensor(predBatch), SingleTensor(tgtBatch))
					if err != nil {
						return err
					}
					if totals[i] == nil {
						totals[i] = r
						continue
					}
					if _, err := totals[i].Combine(r); err != nil {
						return err
					}
				}
			}
			partials <- totals
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	close(partials)

	outcomes := make([]Outcome, len(e.metrics))
	for i, m := range e.metrics {
		outcomes[i] = Outcome{Name: m.Name()}
	}
	for totals := range partials {
		for i, r := range totals {
			if r == nil {
				continue
			}
			if outcomes[i].Result == nil {
				outcomes[i].Result = r
				continue
			}
			if _, err := outcomes[i].Result.Combine(r); err != nil {
				return nil, err
			}
		}
	}
	return outcomes, nil
}
