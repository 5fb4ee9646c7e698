// SPDX-License-Identifier: EPL-2.0

// Package export turns a trimmed range into a downloadable file.
//
// Encoding runs in two tiers. The compressed tier streams fixed-size frames
// (1152 samples per channel by default) into a FrameEncoder, normally
// ffmpeg/libmp3lame at 128 kbps, and concatenates the bytes it returns. If
// anything goes wrong there, including a panic or an empty result, the
// partial output is discarded, the failure is logged at warn level and the
// buffer is written as a 16-bit PCM WAV. Only when the WAV writer also
// fails does the caller see an *ExportFailedError.
//
// Exporter publishes results to a Store, which hands out blob: URLs backed
// by random UUIDs. A new export revokes the previous artifact before it
// starts, so at most one artifact is live; results overtaken by a newer
// export are dropped with ErrSuperseded.
//
// Files are named "<tag>_<original base name>.<mp3|wav>", for example
// mediakit_interview.mp3, with "audio" standing in for an unknown name.
package export
