package sched

// RunningMean keeps an online average updated with avg += (x - avg) / n.
// The result depends on sample order and on the divisor passed with each
// sample.
type RunningMean struct {
	avg     float64
	samples []int64
}

// Add folds sample into the average with divisor n. n < 1 is treated as 1.
func (m *RunningMean) Add(sample int64, n int) {
	if n < 1 {
		n = 1
	}
	m.avg += (float64(sample) - m.avg) / float64(n)
	m.samples = append(m.samples, sample)
}

// Value returns the current average.
func (m *RunningMean) Value() float64 { return m.avg }

// Samples returns the raw samples in the order they were added.
func (m *RunningMean) Samples() []int64 {
	return append([]int64(nil), m.samples...)
}
