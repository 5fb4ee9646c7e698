// SPDX-License-Identifier: EPL-2.0

// Package audio provides the in-memory audio primitives of the trim engine.
//
// This package contains the core building blocks:
//   - Source interface for streaming decoded audio
//   - Registry mapping file extensions to format decoders
//   - Clip, the immutable decoded source of an editing session
//   - Buffer, planar audio owned by a single render or export
//   - ResampleBuffer for sample rate conversion
//
// # Source Interface
//
// Decoders in the formats/ packages return a Source:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Samples are interleaved float32 values in the range [-1.0, 1.0].
//
// # Decoding a Clip
//
// The registry picks a decoder from the file extension and drains it:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	clip, err := registry.DecodeClip("take.wav", file)
//	var decErr *audio.DecodeError
//	if errors.As(err, &decErr) {
//	    // nothing to render
//	}
//
// A Clip is read-only once built. It may be read concurrently by rendering
// and playback without synchronization.
//
// # Buffers
//
// A Buffer holds one sample slice per channel. Buffer.Reader streams it back
// as an interleaved Source, so buffers can be fed to anything that consumes
// a Source, including ReadClip.
//
// # Resampling
//
// ResampleBuffer converts a buffer to another rate with Catmull-Rom
// interpolation and a one-pole low-pass filter when downsampling:
//
//	out, err := audio.ResampleBuffer(buf, 48000)
package audio
