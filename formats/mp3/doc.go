// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes and encodes MPEG Layer III audio.
//
// # Decoding
//
// Decoder wraps github.com/hajimehoshi/go-mp3. go-mp3 always produces
// 16-bit stereo, so the returned audio.Source reports two channels even
// for mono files.
//
// # Encoding
//
// Encoder drives an ffmpeg process built with libmp3lame. PCM goes in on
// stdin as s16le, MP3 comes back on stdout:
//
//	enc, err := mp3.NewEncoder(ctx, mp3.EncoderConfig{
//		SampleRate: 44100,
//		Channels:   2,
//		Bitrate:    128,
//	})
//	if err != nil {
//		return err
//	}
//	defer enc.Close()
//
//	for each frame {
//		b, err := enc.EncodeFrame(frame)
//		out = append(out, b...)
//	}
//	tail, err := enc.Flush()
//	out = append(out, tail...)
//
// Only mono and stereo at one of the Layer III sample rates are accepted;
// NearestRate picks the rate to resample to.
package mp3
