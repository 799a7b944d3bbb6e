package gauge

import "fmt"

// Result is a partial evaluation outcome covering one or more batches.
// A Metric produces a fresh Result per batch; the caller folds partials
// together with Combine. Combine is associative and commutative with
// respect to the final (score, count) pair, so batches, workers and
// epochs may be merged in any order or tree shape.
type Result interface {
	// Result returns the reduced (score, count) view without mutating
	// state. It is idempotent and callable at any point during
	// accumulation. Reading a zero-count accumulator fails with
	// ErrDivisionByZero.
	Result() (float32, int, error)
	// Combine folds other into the receiver and returns the receiver.
	// other must be the same variant and is never mutated or retained.
	// On a variant mismatch the receiver is left untouched and
	// ErrTypeMismatch is returned.
	Combine(other Result) (Result, error)
	// Clone returns a deep copy sharing no state with the receiver
	Clone() Result
	// String renders the variant name and raw numerator/count state
	String() string
}

// AccuracyResult accumulates correct-prediction counts. The zero value
// is a valid fold identity; it cannot be read until at least one batch
// has been combined in.
type AccuracyResult struct {
	Correct int
	Count   int
}

func (r *AccuracyResult) Result() (float32, int, error) {
	if r.Count == 0 {
		return 0, 0, &EvalError{
			Kind:  ErrDivisionByZero,
			Op:    "Result",
			Cause: "accuracy read on a zero-count accumulator",
		}
	}
	return float32(r.Correct) / float32(r.Count), r.Count, nil
}

func (r *AccuracyResult) Combine(other Result) (Result, error) {
	o, ok := other.(*AccuracyResult)
	if !ok {
		return nil, &EvalError{
			Kind:     ErrTypeMismatch,
			Op:       "Combine",
			Expected: "*AccuracyResult",
			Cause:    fmt.Sprintf("cannot combine accuracy with %T", other),
		}
	}
	r.Correct += o.Correct
	r.Count += o.Count
	return r, nil
}

func (r *AccuracyResult) Clone() Result {
	c := *r
	return &c
}

func (r *AccuracyResult) String() string {
	return fmt.Sprintf("accuracy: %d/%d", r.Correct, r.Count)
}

// LossResult accumulates scalar losses. Count is the number of scoring
// invocations, not samples: each loss is already a batch reduction, so
// the accumulated mean is a mean of batch means. The zero value is a
// valid fold identity.
type LossResult struct {
	Loss  float32
	Count int
}

// Result returns the raw (loss sum, invocation count) pair. Callers
// divide Loss by Count for the running mean.
func (r *LossResult) Result() (float32, int, error) {
	if r.Count == 0 {
		return 0, 0, &EvalError{
			Kind:  ErrDivisionByZero,
			Op:    "Result",
			Cause: "loss read on a zero-count accumulator",
		}
	}
	return r.Loss, r.Count, nil
}

func (r *LossResult) Combine(other Result) (Result, error) {
	o, ok := other.(*LossResult)
	if !ok {
		return nil, &EvalError{
			Kind:     ErrTypeMismatch,
			Op:       "Combine",
			Expected: "*LossResult",
			Cause:    fmt.Sprintf("cannot combine loss with %T", other),
		}
	}
	r.Loss += o.Loss
	r.Count += o.Count
	return r, nil
}

func (r *LossResult) Clone() Result {
	c := *r
	return &c
}

func (r *LossResult) String() string {
	return fmt.Sprintf("loss: %g/%d", r.Loss, r.Count)
}
