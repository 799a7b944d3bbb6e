package gauge

import "fmt"

// getBatch extracts rows [start, start+batchSize) from data
func getBatch(data *Tensor, start, batchSize int) *Tensor {
	totalSamples := data.shape[0]
	end := start + batchSize
	if end > totalSamples {
		end = totalSamples
	}
	actualBatch := end - start

	var batchShape []int
	if len(data.shape) == 1 {
		batchShape = []int{actualBatch}
	} else {
		batchShape = append([]int{actualBatch}, data.shape[1:]...)
	}

	batch := NewTensor(batchShape...)

	elementsPerSample := data.Size() / totalSamples
	copy(batch.data, data.data[start*elementsPerSample:end*elementsPerSample])

	return batch
}

// OneHotEncode converts 1-based class labels to one-hot rows. Labels
// must lie in [1, numClasses].
func OneHotEncode(labels []int, numClasses int) *Tensor {
	n := len(labels)
	out := NewTensor(n, numClasses)
	for i, label := range labels {
		out.data[i*numClasses+label-1] = 1.0
	}
	return out
}

// errorf creates a formatted error
func errorf(format string, args ...interface{}) error {
	return fmt.Errorf("gauge: "+format, args...)
}

// min returns the minimum of two ints
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
