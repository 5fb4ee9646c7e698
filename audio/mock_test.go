// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"math"
)

// mockSource generates frames from waveform, interleaving channels.
type mockSource struct {
	rate     int
	channels int
	frames   int
	pos      int
	waveform func(frame, channel int) float32
}

func newMockSource(rate, channels, frames int, waveform func(frame, channel int) float32) *mockSource {
	return &mockSource{rate: rate, channels: channels, frames: frames, waveform: waveform}
}

func newSilentSource(rate, channels, frames int) *mockSource {
	return newMockSource(rate, channels, frames, func(int, int) float32 { return 0 })
}

func newSineSource(rate, channels, frames int, freq float64) *mockSource {
	return newMockSource(rate, channels, frames, func(i, _ int) float32 {
		return float32(math.Sin(2 * math.Pi * freq * float64(i) / float64(rate)))
	})
}

func (m *mockSource) SampleRate() int { return m.rate }
func (m *mockSource) Channels() int   { return m.channels }
func (m *mockSource) BufSize() int    { return 4096 }
func (m *mockSource) Close() error    { return nil }

func (m *mockSource) ReadSamples(dst []float32) (int, error) {
	if m.channels < 1 || m.pos >= m.frames {
		return 0, io.EOF
	}

	n := min(len(dst)/m.channels, m.frames-m.pos)
	for f := range n {
		for ch := range m.channels {
			dst[f*m.channels+ch] = m.waveform(m.pos+f, ch)
		}
	}
	m.pos += n

	if m.pos >= m.frames {
		return n * m.channels, io.EOF
	}
	return n * m.channels, nil
}
