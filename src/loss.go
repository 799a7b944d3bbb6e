package gauge

import (
	"fmt"

	"github.com/chewxy/math32"
)

const lossEps = 1e-15

// ScoreFunc reduces one batch of predictions and targets to a scalar
// loss. Implementations must be stateless and deterministic.
type ScoreFunc func(pred, target *Tensor) (float32, error)

// LossMetric wraps a scoring function. Each Apply scores the full batch
// once and yields LossResult{loss, 1}: the count tracks scoring
// invocations rather than samples, because the scalar is already a
// batch reduction and the accumulated mean must be a mean of batch
// means.
type LossMetric struct {
	Score ScoreFunc
}

type LossConfig struct {
	// Score reduces a batch to a scalar. Nil selects NLLScore.
	Score ScoreFunc
}

func Loss(config LossConfig) Metric {
	score := config.Score
	if score == nil {
		score = NLLScore
	}
	return &LossMetric{Score: score}
}

func (m *LossMetric) Name() string { return "loss" }

func (m *LossMetric) Clone() Metric {
	c := *m
	return &c
}

func (m *LossMetric) Apply(output, target Activity) (Result, error) {
	pred, tgt, err := unwrapPair(m.Name(), output, target)
	if err != nil {
		return nil, err
	}
	loss, err := m.Score(pred, tgt)
	if err != nil {
		return nil, err
	}
	return &LossResult{Loss: loss, Count: 1}, nil
}

// NLLScore - mean negative log-likelihood of the 1-based target class
// under the predicted distribution. Predictions are probabilities
// ([batch, classes] or a single [classes] sample); targets squeeze to
// one label per row.
func NLLScore(pred, target *Tensor) (float32, error) {
	var batch, classes int
	switch pred.Rank() {
	case 1:
		batch, classes = 1, pred.Shape()[0]
	case 2:
		batch, classes = pred.Shape()[0], pred.Shape()[1]
	default:
		return 0, errBadRank("loss", pred)
	}

	labels, err := classLabels("loss", target, batch)
	if err != nil {
		return 0, err
	}

	sum := float32(0)
	for i := 0; i < batch; i++ {
		label := int(labels[i])
		if label < 1 || label > classes {
			return 0, &EvalError{
				Kind:       ErrInvalidArgument,
				Metric:     "loss",
				Op:         "Apply",
				TargetInfo: ScanTensor(target),
				Expected:   fmt.Sprintf("labels in [1, %d]", classes),
				Cause:      fmt.Sprintf("row %d has label %d", i, label),
			}
		}
		p := math32.Max(pred.data[i*classes+label-1], lossEps)
		sum -= math32.Log(p)
	}
	return sum / float32(batch), nil
}

// CrossEntropyScore - mean cross entropy against one-hot or soft
// targets shaped like the predictions
func CrossEntropyScore(pred, target *Tensor) (float32, error) {
	if pred.Rank() != 1 && pred.Rank() != 2 {
		return 0, errBadRank("loss", pred)
	}
	if err := sameSize("loss", pred, target); err != nil {
		return 0, err
	}

	classes := pred.Shape()[pred.Rank()-1]
	samples := pred.Size() / classes

	sum := float32(0)
	for i := range pred.data {
		p := math32.Max(pred.data[i], lossEps)
		sum -= target.data[i] * math32.Log(p)
	}
	return sum / float32(samples), nil
}

// MSEScore - mean squared error over all elements
func MSEScore(pred, target *Tensor) (float32, error) {
	if pred.Rank() != 1 && pred.Rank() != 2 {
		return 0, errBadRank("loss", pred)
	}
	if err := sameSize("loss", pred, target); err != nil {
		return 0, err
	}

	sum := float32(0)
	for i := range pred.data {
		diff := pred.data[i] - target.data[i]
		sum += diff * diff
	}
	return sum / float32(pred.Size()), nil
}

func sameSize(metric string, pred, target *Tensor) error {
	if pred.Size() == target.Size() {
		return nil
	}
	return &EvalError{
		Kind:       ErrInvalidArgument,
		Metric:     metric,
		Op:         "Apply",
		PredInfo:   ScanTensor(pred),
		TargetInfo: ScanTensor(target),
		Expected:   "targets shaped like predictions",
		Cause:      fmt.Sprintf("size %d predictions vs size %d targets", pred.Size(), target.Size()),
	}
}
