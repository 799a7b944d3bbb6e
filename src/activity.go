package gauge

type activityKind int

const (
	kindTensor activityKind = iota
	kindBundle
)

// Activity is the payload handed to a metric: either a single tensor or
// a bundle of tensors. The bundle form exists for callers whose models
// emit multiple heads; every metric in this package scores the
// single-tensor case only and rejects bundles with ErrInvalidArgument.
type Activity struct {
	kind   activityKind
	tensor *Tensor
	bundle []*Tensor
}

// SingleTensor wraps one tensor as a metric payload
func SingleTensor(t *Tensor) Activity {
	return Activity{kind: kindTensor, tensor: t}
}

// TensorBundle wraps multiple tensors as a metric payload
func TensorBundle(tensors ...*Tensor) Activity {
	return Activity{kind: kindBundle, bundle: tensors}
}

// IsBundle reports whether the payload holds multiple tensors
func (a Activity) IsBundle() bool {
	return a.kind == kindBundle
}

// Bundle returns the bundled tensors, nil for a single-tensor payload
func (a Activity) Bundle() []*Tensor {
	if a.kind != kindBundle {
		return nil
	}
	return a.bundle
}

// Tensor unwraps the single-tensor case
func (a Activity) Tensor() (*Tensor, error) {
	if a.kind != kindTensor {
		return nil, &EvalError{
			Kind:     ErrInvalidArgument,
			Op:       "Tensor",
			Expected: "single tensor",
			Cause:    "payload is a tensor bundle",
		}
	}
	if a.tensor == nil {
		return nil, &EvalError{
			Kind:     ErrInvalidArgument,
			Op:       "Tensor",
			Expected: "single tensor",
			Cause:    "payload holds no tensor",
		}
	}
	return a.tensor, nil
}
