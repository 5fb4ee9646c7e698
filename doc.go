// SPDX-License-Identifier: EPL-2.0

// Package audtrim trims audio clips and exports the selection as a file.
//
// The engine is split into small packages:
//
//   - timeline maps pointer X positions to times and back, and formats MM:SS.
//   - region keeps the authoritative trim bounds of a clip and enforces the
//     minimum gap between the handles.
//   - gesture turns pointer-down/move/up sequences on a handle into region
//     updates.
//   - render copies the selected range of a decoded clip into its own buffer.
//   - export encodes that buffer as MP3 (ffmpeg/libmp3lame), falls back to
//     16-bit WAV when the encoder fails, and keeps one live artifact.
//   - editor ties them together for an interactive session.
//
// Decoding is done by formats/wav, formats/mp3, formats/vorbis and
// formats/aiff, registered by extension in formats.NewRegistry.
//
// # Quick Start
//
// Trim one file without a session:
//
//	a, err := audtrim.TrimFile(ctx, "interview.ogg", 12.5, 48)
//	if err != nil {
//		return err
//	}
//	os.WriteFile(a.Name, a.Data, 0o644) // mediakit_interview.mp3
//
// # Configuration
//
// config.Load reads AUDTRIM_MIN_GAP, AUDTRIM_MP3_BITRATE,
// AUDTRIM_FRAME_SIZE, AUDTRIM_FFMPEG_PATH, AUDTRIM_PRODUCT_TAG,
// AUDTRIM_DEFAULT_NAME and AUDTRIM_LOG_LEVEL. Pass the result with
// WithConfig or editor.WithConfig.
//
// # Thread Safety
//
// Clips are immutable once decoded and may be read concurrently. Sessions,
// controllers and exporters guard their own state.
package audtrim
