package gauge

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chewxy/math32"
)

// Error kinds, matched with errors.Is
var (
	// ErrInvalidArgument reports inputs that violate a metric's contract:
	// unsupported rank, wrong label count, too few classes for top-k, or
	// a bundle payload where a single tensor is required.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrTypeMismatch reports a Combine between different Result variants.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrDivisionByZero reports a Result read on a zero-count accumulator.
	ErrDivisionByZero = errors.New("division by zero")
)

// TensorInfo captures tensor state for error reporting
type TensorInfo struct {
	Shape    []int
	Size     int
	NaNCount int
	InfCount int
	MinValue float32
	MaxValue float32
}

// Format returns a compact string representation
func (t *TensorInfo) Format() string {
	s := fmt.Sprintf("%v size=%d", t.Shape, t.Size)
	if t.NaNCount > 0 || t.InfCount > 0 {
		s += fmt.Sprintf(" (corrupt: %d NaN, %d Inf)", t.NaNCount, t.InfCount)
	}
	return s
}

// EvalError is the standard error type for gauge
type EvalError struct {
	Kind       error       // ErrInvalidArgument, ErrTypeMismatch or ErrDivisionByZero
	Metric     string      // metric name, or "" when not raised by a metric
	Op         string      // "Apply", "Combine", "Result", "Run"
	PredInfo   *TensorInfo // nil if not relevant
	TargetInfo *TensorInfo // nil if not relevant
	Expected   string      // what was expected
	Cause      string      // human-readable cause
}

// Error implements the error interface
func (e *EvalError) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "gauge: %s in %s", e.Kind, e.Op)
	if e.Metric != "" {
		fmt.Fprintf(&b, " (%s)", e.Metric)
	}
	b.WriteString("\n")

	if e.PredInfo != nil {
		fmt.Fprintf(&b, "  predictions: %s\n", e.PredInfo.Format())
	}
	if e.TargetInfo != nil {
		fmt.Fprintf(&b, "  targets:     %s\n", e.TargetInfo.Format())
	}
	if e.Expected != "" {
		fmt.Fprintf(&b, "  expected:    %s\n", e.Expected)
	}
	fmt.Fprintf(&b, "  cause:       %s", e.Cause)

	return b.String()
}

// Unwrap exposes the error kind for errors.Is
func (e *EvalError) Unwrap() error {
	return e.Kind
}

// ScanTensor collects shape and NaN/Inf stats for error reporting
func ScanTensor(t *Tensor) *TensorInfo {
	if t == nil {
		return nil
	}

	info := &TensorInfo{
		Shape:    t.Shape(),
		Size:     len(t.data),
		MinValue: math32.Inf(1),
		MaxValue: math32.Inf(-1),
	}

	for _, v := range t.data {
		if math32.IsNaN(v) {
			info.NaNCount++
		} else if math32.IsInf(v, 0) {
			info.InfCount++
		} else {
			if v < info.MinValue {
				info.MinValue = v
			}
			if v > info.MaxValue {
				info.MaxValue = v
			}
		}
	}

	// Handle empty or all-corrupt tensors
	if math32.IsInf(info.MinValue, 1) {
		info.MinValue = 0
	}
	if math32.IsInf(info.MaxValue, -1) {
		info.MaxValue = 0
	}

	return info
}
