package model

// Kernel is a square, non-negative, unit-sum discrete PSF. Data is row-major
// with Size rows of Size values. Kernels are purely local data; nothing is
// shared between calls.
type Kernel struct {
	Size int
	Data [][]float64
}

// Sum returns the total kernel weight. A well-formed kernel sums to 1.
func (k Kernel) Sum() float64 {
	total := 0.0
	for _, row := range k.Data {
		for _, v := range row {
			total += v
		}
	}
	return total
}

// Channel is a single sampled image plane, row-major, values in [0, 1] for
// image data but not restricted by the algorithms.
type Channel [][]float64

// NewChannel allocates a zeroed channel of the given dimensions.
func NewChannel(height, width int) Channel {
	ch := make(Channel, height)
	for i := range ch {
		ch[i] = make([]float64, width)
	}
	return ch
}

// Clone returns a deep copy of the channel.
func (c Channel) Clone() Channel {
	out := make(Channel, len(c))
	for i, row := range c {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

// Dims returns (height, width). An empty channel reports (0, 0).
func (c Channel) Dims() (int, int) {
	if len(c) == 0 {
		return 0, 0
	}
	return len(c), len(c[0])
}
