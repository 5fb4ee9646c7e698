// SPDX-License-Identifier: EPL-2.0

package gesture

import (
	"errors"
	"fmt"
)

// ErrGestureNoop marks a pointer event that was deliberately ignored.
// Listeners drop these silently.
var ErrGestureNoop = errors.New("gesture: no-op")

var (
	ErrNotDragging   = fmt.Errorf("%w: no active drag", ErrGestureNoop)
	ErrNoRegion      = fmt.Errorf("%w: library has no region", ErrGestureNoop)
	ErrUnknownHandle = errors.New("gesture: unknown handle")
)
