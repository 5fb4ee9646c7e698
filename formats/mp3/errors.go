// SPDX-License-Identifier: EPL-2.0

package mp3

import "errors"

var (
	ErrEncoderUnavailable    = errors.New("mp3 encoder unavailable")
	ErrUnsupportedChannels   = errors.New("mp3 supports only mono or stereo")
	ErrUnsupportedSampleRate = errors.New("sample rate is not a Layer III rate")
	ErrInvalidBitrate        = errors.New("bitrate must be positive")
	ErrFrameShape            = errors.New("frame channel count or length mismatch")
	ErrEncoderClosed         = errors.New("mp3 encoder already flushed or closed")
)
