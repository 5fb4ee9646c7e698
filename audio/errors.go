// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDstSize    = errors.New("dst size must be multiple of channels")
	ErrInvalidSampleRate = errors.New("sample rate must be positive")
	ErrInvalidChannels   = errors.New("channel count must be at least 1")
	ErrChannelLength     = errors.New("channels must have equal length")
	ErrEmptySource       = errors.New("source produced no samples")
	ErrUnknownFormat     = errors.New("no decoder registered for format")
	ErrNoProgress        = errors.New("source returned no samples repeatedly")
)

// DecodeError reports that the source audio could not be turned into a Clip.
// There is no fallback for it: without a Clip there is nothing to render.
type DecodeError struct {
	Format string
	Name   string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("decode %s (%s): %v", e.Name, e.Format, e.Err)
	}
	return fmt.Sprintf("decode %s: %v", e.Format, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
