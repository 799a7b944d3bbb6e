package gauge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func applyAccuracy(t *testing.T, m Metric, pred, tgt *Tensor) *AccuracyResult {
	t.Helper()
	r, err := m.Apply(SingleTensor(pred), SingleTensor(tgt))
	require.NoError(t, err)
	acc, ok := r.(*AccuracyResult)
	require.True(t, ok)
	return acc
}

func TestTop1AccuracyAllCorrect(t *testing.T) {
	pred, err := FromRows([][]float32{{0.1, 0.9}, {0.8, 0.2}})
	require.NoError(t, err)
	tgt, err := FromSlice([]float32{2, 1})
	require.NoError(t, err)

	r := applyAccuracy(t, Top1Accuracy(), pred, tgt)
	assert.Equal(t, &AccuracyResult{Correct: 2, Count: 2}, r)

	score, n, err := r.Result()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, float64(score), 1e-6)
	assert.Equal(t, 2, n)
}

func TestTop1AccuracyHalfCorrect(t *testing.T) {
	pred, err := FromRows([][]float32{{0.1, 0.9}, {0.7, 0.3}})
	require.NoError(t, err)
	tgt, err := FromSlice([]float32{1, 1})
	require.NoError(t, err)

	r := applyAccuracy(t, Top1Accuracy(), pred, tgt)
	score, n, err := r.Result()
	require.NoError(t, err)
	assert.InDelta(t, 0.5, float64(score), 1e-6)
	assert.Equal(t, 2, n)
}

func TestTop1AccuracyCountEqualsRows(t *testing.T) {
	rows := 7
	pred := NewTensor(rows, 4)
	tgt := NewTensor(rows)
	for i := 0; i < rows; i++ {
		pred.Set(float32(i%4)+1, i, i%4)
		tgt.Set(float32(i%4)+1, i)
	}
	r := applyAccuracy(t, Top1Accuracy(), pred, tgt)
	assert.Equal(t, rows, r.Count)
	assert.LessOrEqual(t, r.Correct, r.Count)
}

func TestTop1AccuracySqueezedTargets(t *testing.T) {
	pred, err := FromRows([][]float32{{0.1, 0.9}, {0.8, 0.2}})
	require.NoError(t, err)
	// [batch, 1] targets squeeze to one label per row
	tgt, err := FromSlice([]float32{2, 1}, 2, 1)
	require.NoError(t, err)

	r := applyAccuracy(t, Top1Accuracy(), pred, tgt)
	assert.Equal(t, &AccuracyResult{Correct: 2, Count: 2}, r)
}

func TestTop1AccuracySingleSample(t *testing.T) {
	pred, err := FromSlice([]float32{0.2, 0.5, 0.3})
	require.NoError(t, err)
	tgt, err := FromSlice([]float32{2})
	require.NoError(t, err)

	r := applyAccuracy(t, Top1Accuracy(), pred, tgt)
	assert.Equal(t, &AccuracyResult{Correct: 1, Count: 1}, r)
}

func TestTop1AccuracySingleSampleBadTargets(t *testing.T) {
	pred, err := FromSlice([]float32{0.2, 0.5, 0.3})
	require.NoError(t, err)
	tgt, err := FromSlice([]float32{2, 3})
	require.NoError(t, err)

	_, err = Top1Accuracy().Apply(SingleTensor(pred), SingleTensor(tgt))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestAccuracyRejectsBadRank(t *testing.T) {
	pred := NewTensor(2, 2, 2)
	tgt, err := FromSlice([]float32{1, 2})
	require.NoError(t, err)

	_, err = Top1Accuracy().Apply(SingleTensor(pred), SingleTensor(tgt))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = Top5Accuracy().Apply(SingleTensor(pred), SingleTensor(tgt))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestAccuracyRejectsBundle(t *testing.T) {
	pred, err := FromRows([][]float32{{0.1, 0.9}})
	require.NoError(t, err)
	tgt, err := FromSlice([]float32{2})
	require.NoError(t, err)

	_, err = Top1Accuracy().Apply(TensorBundle(pred, pred), SingleTensor(tgt))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = Top1Accuracy().Apply(SingleTensor(pred), TensorBundle(tgt))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestTop5AccuracyMembership(t *testing.T) {
	// Row 1: label 6 ranks 2nd - in the top 5 but not the argmax.
	// Row 2: label 1 ranks 6th - outside the top 5.
	pred, err := FromRows([][]float32{
		{0.05, 0.10, 0.15, 0.20, 0.25, 0.24},
		{0.01, 0.10, 0.15, 0.20, 0.25, 0.29},
	})
	require.NoError(t, err)
	tgt, err := FromSlice([]float32{6, 1})
	require.NoError(t, err)

	r := applyAccuracy(t, Top5Accuracy(), pred, tgt)
	assert.Equal(t, &AccuracyResult{Correct: 1, Count: 2}, r)
}

func TestTop5AccuracySingleSample(t *testing.T) {
	pred, err := FromSlice([]float32{0.05, 0.10, 0.15, 0.20, 0.25, 0.24})
	require.NoError(t, err)
	tgt, err := FromSlice([]float32{2})
	require.NoError(t, err)

	r := applyAccuracy(t, Top5Accuracy(), pred, tgt)
	assert.Equal(t, &AccuracyResult{Correct: 1, Count: 1}, r)
}

func TestTop5AccuracyTooFewClasses(t *testing.T) {
	pred, err := FromRows([][]float32{{0.1, 0.5, 0.4}})
	require.NoError(t, err)
	tgt, err := FromSlice([]float32{2})
	require.NoError(t, err)

	_, err = Top5Accuracy().Apply(SingleTensor(pred), SingleTensor(tgt))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestTop5DominatesTop1(t *testing.T) {
	pred, err := FromRows([][]float32{
		{0.30, 0.05, 0.20, 0.15, 0.10, 0.20},
		{0.05, 0.30, 0.20, 0.15, 0.10, 0.20},
		{0.20, 0.05, 0.30, 0.15, 0.10, 0.20},
		{0.10, 0.05, 0.20, 0.15, 0.30, 0.20},
	})
	require.NoError(t, err)
	tgt, err := FromSlice([]float32{1, 3, 2, 6})
	require.NoError(t, err)

	top1 := applyAccuracy(t, Top1Accuracy(), pred, tgt)
	top5 := applyAccuracy(t, Top5Accuracy(), pred, tgt)

	// Any sample correct under top-1 is correct under top-5
	assert.GreaterOrEqual(t, top5.Correct, top1.Correct)
	assert.Equal(t, top1.Count, top5.Count)
}

func TestTopKAccuracyConfig(t *testing.T) {
	pred, err := FromRows([][]float32{{0.4, 0.3, 0.2, 0.1}})
	require.NoError(t, err)
	tgt, err := FromSlice([]float32{2})
	require.NoError(t, err)

	r := applyAccuracy(t, TopKAccuracy(TopKAccuracyConfig{K: 2}), pred, tgt)
	assert.Equal(t, &AccuracyResult{Correct: 1, Count: 1}, r)

	_, err = TopKAccuracy(TopKAccuracyConfig{K: 0}).Apply(SingleTensor(pred), SingleTensor(tgt))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestAccuracyMetricStateless(t *testing.T) {
	pred, err := FromRows([][]float32{{0.1, 0.9}, {0.8, 0.2}})
	require.NoError(t, err)
	tgt, err := FromSlice([]float32{2, 1})
	require.NoError(t, err)

	m := Top1Accuracy()
	first := applyAccuracy(t, m, pred, tgt)
	second := applyAccuracy(t, m, pred, tgt)
	// Each Apply yields a fresh per-batch result, never combined state
	assert.Equal(t, first, second)
	assert.Equal(t, 2, second.Count)
}

func TestAccuracyMetricClone(t *testing.T) {
	m := Top5Accuracy()
	c := m.Clone()
	assert.Equal(t, m.Name(), c.Name())
	assert.NotSame(t, m, c)
}

func TestAccuracyNames(t *testing.T) {
	assert.Equal(t, "top1_accuracy", Top1Accuracy().Name())
	assert.Equal(t, "top5_accuracy", Top5Accuracy().Name())
	assert.Equal(t, "top3_accuracy", TopKAccuracy(TopKAccuracyConfig{K: 3}).Name())
}
