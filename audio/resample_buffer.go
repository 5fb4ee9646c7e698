// SPDX-License-Identifier: EPL-2.0

package audio

import "math"

// lowPassAlpha is the coefficient of the one-pole filter applied before
// downsampling.
const lowPassAlpha float32 = 0.5

// ResampleBuffer converts buf to dstRate using Catmull-Rom interpolation on
// each channel. When downsampling, a one-pole low-pass filter runs first as a
// basic anti-aliasing step. buf is returned unchanged when the rates match.
func ResampleBuffer(buf *Buffer, dstRate int) (*Buffer, error) {
	if dstRate <= 0 {
		return nil, ErrInvalidSampleRate
	}
	if dstRate == buf.SampleRate() {
		return buf, nil
	}

	ratio := float64(buf.SampleRate()) / float64(dstRate)
	srcFrames := buf.Frames()

	outFrames := int(math.Round(float64(srcFrames) / ratio))
	if outFrames < 1 && srcFrames > 0 {
		outFrames = 1
	}

	out, err := NewBuffer(dstRate, buf.Channels(), outFrames)
	if err != nil {
		return nil, err
	}

	for c, src := range buf.data {
		if len(src) == 0 {
			continue
		}
		if ratio > 1 {
			src = lowPass(src)
		}

		dst := out.data[c]
		for i := range dst {
			pos := float64(i) * ratio
			idx := int(pos)
			frac := float32(pos - float64(idx))

			dst[i] = catmullRom(
				sampleAt(src, idx-1),
				sampleAt(src, idx),
				sampleAt(src, idx+1),
				sampleAt(src, idx+2),
				frac,
			)
		}
	}

	return out, nil
}

// catmullRom interpolates between p1 and p2 at fraction x in [0, 1], with
// p0 and p3 as the outer control points.
func catmullRom(p0, p1, p2, p3, x float32) float32 {
	a := -0.5*p0 + 1.5*p1 - 1.5*p2 + 0.5*p3
	b := p0 - 2.5*p1 + 2*p2 - 0.5*p3
	c := -0.5*p0 + 0.5*p2

	return ((a*x+b)*x+c)*x + p1
}

// sampleAt reads s[i], repeating the edge samples outside the slice.
func sampleAt(s []float32, i int) float32 {
	if i < 0 {
		return s[0]
	}
	if i >= len(s) {
		return s[len(s)-1]
	}
	return s[i]
}

func lowPass(src []float32) []float32 {
	out := make([]float32, len(src))
	state := src[0]
	for i, x := range src {
		// y[n] = alpha * x[n] + (1-alpha) * y[n-1]
		state = lowPassAlpha*x + (1-lowPassAlpha)*state
		out[i] = state
	}
	return out
}
