package gauge

// Tensor is a row-major float32 container. The metrics in this package
// consume rank-1 tensors (one sample of class scores, or a vector of
// labels) and rank-2 tensors ([batch, classes] scores).
type Tensor struct {
	data   []float32
	shape  []int
	stride []int
}

// NewTensor allocates a zero-filled tensor of the given shape
func NewTensor(shape ...int) *Tensor {
	size := 1
	for _, s := range shape {
		if s <= 0 {
			s = 1 // Ensure non-zero size
		}
		size *= s
	}
	if size <= 0 {
		size = 1
	}
	stride := make([]int, len(shape))
	for i := len(shape) - 1; i >= 0; i-- {
		if i == len(shape)-1 {
			stride[i] = 1
		} else {
			stride[i] = stride[i+1] * shape[i+1]
		}
	}
	return &Tensor{
		data:   make([]float32, size),
		shape:  shape,
		stride: stride,
	}
}

// FromSlice builds a tensor around a copy of data. With no shape the
// result is rank-1 of length len(data).
func FromSlice(data []float32, shape ...int) (*Tensor, error) {
	if len(shape) == 0 {
		shape = []int{len(data)}
	}
	size := 1
	for _, s := range shape {
		size *= s
	}
	if size != len(data) {
		return nil, errorf("shape %v needs %d elements, got %d", shape, size, len(data))
	}
	t := NewTensor(shape...)
	copy(t.data, data)
	return t, nil
}

// FromRows builds a rank-2 tensor from equal-length rows
func FromRows(rows [][]float32) (*Tensor, error) {
	if len(rows) == 0 {
		return nil, errorf("FromRows requires at least one row")
	}
	cols := len(rows[0])
	t := NewTensor(len(rows), cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, errorf("row %d has %d elements, expected %d", i, len(row), cols)
		}
		copy(t.data[i*cols:], row)
	}
	return t, nil
}

// Rank returns the number of dimensions
func (t *Tensor) Rank() int {
	return len(t.shape)
}

// Shape returns a copy of the dimension sizes
func (t *Tensor) Shape() []int {
	s := make([]int, len(t.shape))
	copy(s, t.shape)
	return s
}

func (t *Tensor) Size() int {
	return len(t.data)
}

// At reads the element at the given indices - no bounds checking
func (t *Tensor) At(indices ...int) float32 {
	idx := 0
	for i, v := range indices {
		idx += v * t.stride[i]
	}
	return t.data[idx]
}

// Set writes the element at the given indices - no bounds checking
func (t *Tensor) Set(value float32, indices ...int) {
	idx := 0
	for i, v := range indices {
		idx += v * t.stride[i]
	}
	t.data[idx] = value
}

// Clone returns a deep copy sharing no state with the receiver
func (t *Tensor) Clone() *Tensor {
	nt := NewTensor(t.shape...)
	copy(nt.data, t.data)
	return nt
}

// Squeeze returns a tensor with all singleton dimensions removed. The
// result shares the underlying data; a scalar squeezes to shape [1].
func (t *Tensor) Squeeze() *Tensor {
	shape := make([]int, 0, len(t.shape))
	for _, s := range t.shape {
		if s != 1 {
			shape = append(shape, s)
		}
	}
	if len(shape) == 0 {
		shape = []int{1}
	}
	stride := make([]int, len(shape))
	for i := len(shape) - 1; i >= 0; i-- {
		if i == len(shape)-1 {
			stride[i] = 1
		} else {
			stride[i] = stride[i+1] * shape[i+1]
		}
	}
	return &Tensor{data: t.data, shape: shape, stride: stride}
}

// MaxIndex returns the 1-based index of the maximum value along the last
// axis of the given row. Ties break to the first occurrence. For rank-1
// tensors pass row 0.
func (t *Tensor) MaxIndex(row int) int {
	cols := t.shape[len(t.shape)-1]
	base := row * cols
	best := 0
	bestVal := t.data[base]
	for j := 1; j < cols; j++ {
		if t.data[base+j] > bestVal {
			bestVal = t.data[base+j]
			best = j
		}
	}
	return best + 1
}

// TopKIndices returns the 1-based indices of the k largest values along
// the last axis of the given row. Order among the k is unspecified;
// only set membership is meaningful. Requires k <= class count - callers
// validate before invoking.
func (t *Tensor) TopKIndices(row, k int) []int {
	cols := t.shape[len(t.shape)-1]
	base := row * cols

	indices := make([]int, cols)
	for j := 0; j < cols; j++ {
		indices[j] = j
	}
	// Partial selection sort: only the first k slots need to be ordered
	for i := 0; i < k && i < cols; i++ {
		maxIdx := i
		for j := i + 1; j < cols; j++ {
			if t.data[base+indices[j]] > t.data[base+indices[maxIdx]] {
				maxIdx = j
			}
		}
		indices[i], indices[maxIdx] = indices[maxIdx], indices[i]
	}

	top := make([]int, 0, k)
	for i := 0; i < k && i < cols; i++ {
		top = append(top, indices[i]+1)
	}
	return top
}
