// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and writes WAV files.
//
// # Decoding
//
// Decoder reads integer PCM at 16, 24 or 32 bits through
// github.com/go-audio/wav, so files carrying LIST, fact or other chunks
// before the data chunk are accepted. Samples come out as interleaved
// float32 in [-1, 1]. Non-seekable readers are buffered in memory first.
//
// # Writing
//
// WriteWAV16 writes the canonical 44-byte RIFF/WAVE header followed by
// interleaved little-endian int16 samples:
//
//	samples := utils.Interleave16(buf.Planar(), buf.Frames())
//	err := wav.WriteWAV16(w, buf.SampleRate(), buf.Channels(), samples)
//
// ReadHeader parses that header back, which is handy for checking exports.
package wav
