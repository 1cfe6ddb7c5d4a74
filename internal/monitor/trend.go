package monitor

import (
	"strings"
)

// trendSize is how many refreshes a count trend remembers.
const trendSize = 60

// sparklineBlocks are block characters for 8-level vertical resolution (lowest to highest).
var sparklineBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// countTrend keeps the socket counts of recent successful refreshes,
// oldest first.
type countTrend struct {
	samples []float64
}

func (t *countTrend) add(count int) {
	t.samples = append(t.samples, float64(count))
	if len(t.samples) > trendSize {
		t.samples = t.samples[len(t.samples)-trendSize:]
	}
}

// render draws the trend as a one-row sparkline at most width cells wide.
// Fewer samples than cells are drawn as-is; more are compressed.
func (t countTrend) render(width int) string {
	if len(t.samples) < 2 || width <= 0 {
		return ""
	}

	data := t.samples
	if len(data) > width {
		data = downsample(data, width)
	}

	lo, hi := bounds(data)
	top := len(sparklineBlocks) - 1

	var b strings.Builder
	for _, v := range data {
		idx := 0
		if hi > lo {
			idx = int((v - lo) / (hi - lo) * float64(top))
		}
		b.WriteRune(sparklineBlocks[min(max(idx, 0), top)])
	}
	return b.String()
}

func bounds(data []float64) (lo, hi float64) {
	lo, hi = data[0], data[0]
	for _, v := range data[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}

// downsample compresses data to size points, keeping the maximum of each
// bucket so spikes stay visible.
func downsample(data []float64, size int) []float64 {
	out := make([]float64, size)
	bucket := float64(len(data)) / float64(size)
	for i := range size {
		start := int(float64(i) * bucket)
		end := min(int(float64(i+1)*bucket), len(data))
		if start >= end {
			start = end - 1
		}
		peak := data[start]
		for _, v := range data[start+1 : end] {
			peak = max(peak, v)
		}
		out[i] = peak
	}
	return out
}
