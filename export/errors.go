// SPDX-License-Identifier: EPL-2.0

package export

import (
	"errors"
	"fmt"
)

var (
	ErrEncoderUnavailable  = errors.New("export: compressed encoder unavailable")
	ErrUnsupportedChannels = errors.New("export: compressed tier supports at most two channels")
	ErrEmptyOutput         = errors.New("export: encoder produced no output")
	ErrNoBuffer            = errors.New("export: nothing to encode")
	ErrSuperseded          = errors.New("export: superseded by a newer export")
	ErrNoSource            = errors.New("export: no original source to offer")
)

// EncodeError is a failure of the compressed tier. It is logged and
// answered with the uncompressed tier, never shown to the user on its own.
type EncodeError struct {
	Format string
	Op     string
	Err    error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("export: %s %s: %v", e.Format, e.Op, e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// ExportFailedError means neither tier produced an artifact.
type ExportFailedError struct {
	Compressed   error
	Uncompressed error
}

func (e *ExportFailedError) Error() string {
	return fmt.Sprintf("export failed: compressed: %v; uncompressed: %v", e.Compressed, e.Uncompressed)
}

func (e *ExportFailedError) Unwrap() []error {
	var errs []error
	if e.Compressed != nil {
		errs = append(errs, e.Compressed)
	}
	if e.Uncompressed != nil {
		errs = append(errs, e.Uncompressed)
	}
	return errs
}
