// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile          = errors.New("not a WAV file")
	ErrNotPCM              = errors.New("only integer PCM WAV is supported")
	ErrUnsupportedBitDepth = errors.New("unsupported WAV bit depth")
	ErrShortHeader         = errors.New("WAV header too short")
	ErrInvalidChannels     = errors.New("WAV channel count must be at least 1")
	ErrInvalidSampleRate   = errors.New("WAV sample rate must be positive")
	ErrSampleCount         = errors.New("sample count is not a multiple of the channel count")
)
