// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// Float32ToInt16 converts a normalized sample to 16-bit PCM.
//
// The sample is clamped to [-1, 1] first, negative values are scaled by 32768
// and positive values by 32767, and the result is floored. NaN maps to 0.
func Float32ToInt16(x float32) int16 {
	if math.IsNaN(float64(x)) {
		return 0
	}

	// Clamp and scale
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	var v float64
	if x < 0 {
		v = float64(x) * 32768.0
	} else {
		v = float64(x) * 32767.0
	}

	v = math.Floor(v)
	if v < math.MinInt16 {
		return math.MinInt16
	}
	if v > math.MaxInt16 {
		return math.MaxInt16
	}

	return int16(v)
}

// ConvertChannel converts one channel of float32 samples into dst.
// It returns the number of samples converted, min(len(dst), len(src)).
func ConvertChannel(dst []int16, src []float32) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = Float32ToInt16(src[i])
	}

	return n
}

// Interleave16 converts planar channels into interleaved 16-bit PCM.
// Every channel is converted on its own; frames beyond the end of a short
// channel are written as silence.
func Interleave16(channels [][]float32, frames int) []int16 {
	numChannels := len(channels)
	out := make([]int16, frames*numChannels)

	for c, data := range channels {
		for i := range frames {
			if i >= len(data) {
				break
			}
			out[i*numChannels+c] = Float32ToInt16(data[i])
		}
	}

	return out
}
