// SPDX-License-Identifier: EPL-2.0

package render

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRange = errors.New("render: invalid range")
	ErrSuperseded   = errors.New("render: superseded by a newer request")
	ErrNoClip       = errors.New("render: no clip loaded")
)

// InvalidRangeError is returned before any work is done when the requested
// range is empty, reversed, negative or not a number. It matches
// ErrInvalidRange with errors.Is.
type InvalidRangeError struct {
	Start float64
	End   float64
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("render: invalid range [%g, %g)", e.Start, e.End)
}

func (e *InvalidRangeError) Is(target error) bool {
	return target == ErrInvalidRange
}
