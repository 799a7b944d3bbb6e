package gauge

import "fmt"

// TopKAccuracyMetric counts a sample as correct when its target label
// appears among the k highest-scored classes. Labels and emitted class
// indices are 1-based; ties break to the first occurrence (the argmax
// kernel's rule, not redefined here).
type TopKAccuracyMetric struct {
	K int
}

type TopKAccuracyConfig struct {
	K int
}

func TopKAccuracy(config TopKAccuracyConfig) Metric {
	return &TopKAccuracyMetric{K: config.K}
}

// Top1Accuracy - exact argmax match
func Top1Accuracy() Metric {
	return &TopKAccuracyMetric{K: 1}
}

// Top5Accuracy - target label among the five highest-scored classes
func Top5Accuracy() Metric {
	return &TopKAccuracyMetric{K: 5}
}

func (m *TopKAccuracyMetric) Name() string {
	return fmt.Sprintf("top%d_accuracy", m.K)
}

func (m *TopKAccuracyMetric) Clone() Metric {
	c := *m
	return &c
}

// Apply scores one batch. Predictions are [batch, classes] or a single
// [classes] sample; targets squeeze to one 1-based label per row.
func (m *TopKAccuracyMetric) Apply(output, target Activity) (Result, error) {
	pred, tgt, err := unwrapPair(m.Name(), output, target)
	if err != nil {
		return nil, err
	}

	var batch, classes int
	switch pred.Rank() {
	case 1:
		batch, classes = 1, pred.Shape()[0]
	case 2:
		batch, classes = pred.Shape()[0], pred.Shape()[1]
	default:
		return nil, errBadRank(m.Name(), pred)
	}

	if m.K < 1 || classes < m.K {
		return nil, &EvalError{
			Kind:     ErrInvalidArgument,
			Metric:   m.Name(),
			Op:       "Apply",
			PredInfo: ScanTensor(pred),
			Expected: fmt.Sprintf("at least %d classes", m.K),
			Cause:    fmt.Sprintf("top-%d over %d classes is undefined", m.K, classes),
		}
	}

	labels, err := classLabels(m.Name(), tgt, batch)
	if err != nil {
		return nil, err
	}

	correct := 0
	for i := 0; i < batch; i++ {
		label := int(labels[i])
		if m.K == 1 {
			if pred.MaxIndex(i) == label {
				correct++
			}
			continue
		}
		for _, idx := range pred.TopKIndices(i, m.K) {
			if idx == label {
				correct++
				break
			}
		}
	}
	return &AccuracyResult{Correct: correct, Count: batch}, nil
}
