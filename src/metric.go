package gauge

import "fmt"

// Metric scores one batch of predictions against targets. Metrics carry
// configuration only - no accumulation state - so a single instance is
// deterministic across calls and reusable for every batch and epoch.
type Metric interface {
	// Apply scores a single batch and returns a fresh Result covering
	// that batch only, never combined with prior state.
	Apply(output, target Activity) (Result, error)
	// Clone returns a deep copy with no shared mutable state, safe to
	// run on another goroutine.
	Clone() Metric
	// Name identifies the metric in reports
	Name() string
}

// unwrapPair extracts the single-tensor payloads of one batch
func unwrapPair(metric string, output, target Activity) (*Tensor, *Tensor, error) {
	pred, err := output.Tensor()
	if err != nil {
		return nil, nil, &EvalError{
			Kind:     ErrInvalidArgument,
			Metric:   metric,
			Op:       "Apply",
			Expected: "single-tensor predictions",
			Cause:    "prediction payload is not a single tensor",
		}
	}
	tgt, err := target.Tensor()
	if err != nil {
		return nil, nil, &EvalError{
			Kind:     ErrInvalidArgument,
			Metric:   metric,
			Op:       "Apply",
			Expected: "single-tensor targets",
			Cause:    "target payload is not a single tensor",
		}
	}
	return pred, tgt, nil
}

// classLabels squeezes target and checks it holds exactly n labels
func classLabels(metric string, target *Tensor, n int) ([]float32, error) {
	sq := target.Squeeze()
	if sq.Rank() != 1 || sq.Size() != n {
		return nil, &EvalError{
			Kind:       ErrInvalidArgument,
			Metric:     metric,
			Op:         "Apply",
			TargetInfo: ScanTensor(target),
			Expected:   fmt.Sprintf("%d class labels", n),
			Cause:      fmt.Sprintf("targets hold %d labels after squeezing", sq.Size()),
		}
	}
	return sq.data, nil
}

// errBadRank rejects predictions that are neither rank 1 nor rank 2
func errBadRank(metric string, pred *Tensor) error {
	return &EvalError{
		Kind:     ErrInvalidArgument,
		Metric:   metric,
		Op:       "Apply",
		PredInfo: ScanTensor(pred),
		Expected: "rank 1 or 2 predictions",
		Cause:    fmt.Sprintf("rank %d predictions are not supported", pred.Rank()),
	}
}
