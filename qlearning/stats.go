package qlearning

import "gonum.org/v1/gonum/stat"

// MovingAverage returns the mean of every full window of consecutive rewards. It is empty when
// there are fewer rewards than the window.
func MovingAverage(rewards []int, window int) []float64 {
	if window <= 0 || len(rewards) < window {
		return nil
	}

	values := toFloats(rewards)
	out := make([]float64, 0, len(values)-window+1)
	for i := 0; i+window <= len(values); i++ {
		out = append(out, stat.Mean(values[i:i+window], nil))
	}
	return out
}

func toFloats(values []int) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}
