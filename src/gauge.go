// Package gauge scores model predictions against ground truth and
// accumulates the scores across batches, workers and epochs.
//
// Metrics are stateless: Apply scores one batch and returns a fresh
// Result for that batch only. Results are folded together with Combine,
// which is associative and commutative, so batch-level, worker-level and
// epoch-level aggregation all use the same mechanism:
//
//	top1 := gauge.Top1Accuracy()
//	total := &gauge.AccuracyResult{}
//
//	for _, b := range batches {
//		r, err := top1.Apply(gauge.SingleTensor(b.Pred), gauge.SingleTensor(b.Target))
//		if err != nil {
//			log.Fatal(err)
//		}
//		total.Combine(r)
//	}
//
//	score, n, err := total.Result()
//
// For parallel evaluation each worker owns a Clone of every metric and
// its own Result chain; cross-worker merging is the same Combine fold,
// in any order. The Evaluator type packages that pattern.
//
// Class indices are 1-based throughout: targets carry 1-based labels and
// the argmax/top-k kernels emit 1-based indices.
package gauge

// Version of the gauge library
const Version = "1.0.0"
