// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
)

// Buffer is planar float32 audio owned by a single operation, such as the
// result of an offline render. Samples are nominally in [-1, 1].
type Buffer struct {
	sampleRate int
	data       [][]float32
}

// NewBuffer allocates a silent buffer of frames samples per channel.
func NewBuffer(sampleRate, channels, frames int) (*Buffer, error) {
	if sampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}
	if channels < 1 {
		return nil, ErrInvalidChannels
	}
	if frames < 0 {
		frames = 0
	}

	data := make([][]float32, channels)
	for c := range data {
		data[c] = make([]float32, frames)
	}

	return &Buffer{sampleRate: sampleRate, data: data}, nil
}

// BufferFromChannels wraps existing planar data without copying it.
func BufferFromChannels(sampleRate int, channels [][]float32) (*Buffer, error) {
	if sampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}
	if len(channels) < 1 {
		return nil, ErrInvalidChannels
	}
	for _, ch := range channels[1:] {
		if len(ch) != len(channels[0]) {
			return nil, ErrChannelLength
		}
	}

	return &Buffer{sampleRate: sampleRate, data: channels}, nil
}

func (b *Buffer) SampleRate() int { return b.sampleRate }
func (b *Buffer) Channels() int   { return len(b.data) }
func (b *Buffer) Frames() int     { return len(b.data[0]) }

// Duration in seconds.
func (b *Buffer) Duration() float64 {
	return float64(b.Frames()) / float64(b.sampleRate)
}

// Channel returns the samples of channel c. The slice is shared with the buffer.
func (b *Buffer) Channel(c int) []float32 { return b.data[c] }

// Planar returns all channels. The slices are shared with the buffer.
func (b *Buffer) Planar() [][]float32 { return b.data }

// Reader returns a Source streaming the buffer as interleaved samples.
func (b *Buffer) Reader() Source {
	return &bufferReader{buf: b}
}

type bufferReader struct {
	buf   *Buffer
	frame int
}

func (r *bufferReader) SampleRate() int { return r.buf.sampleRate }
func (r *bufferReader) Channels() int   { return r.buf.Channels() }
func (r *bufferReader) BufSize() int    { return 4096 }
func (r *bufferReader) Close() error    { return nil }

func (r *bufferReader) ReadSamples(dst []float32) (int, error) {
	channels := r.buf.Channels()
	if len(dst)%channels != 0 {
		return 0, ErrInvalidDstSize
	}

	remaining := r.buf.Frames() - r.frame
	if remaining <= 0 {
		return 0, io.EOF
	}

	frames := min(len(dst)/channels, remaining)
	for f := range frames {
		for c := range channels {
			dst[f*channels+c] = r.buf.data[c][r.frame+f]
		}
	}
	r.frame += frames

	if r.frame >= r.buf.Frames() {
		return frames * channels, io.EOF
	}

	return frames * channels, nil
}
