// SPDX-License-Identifier: EPL-2.0

package editor

import "errors"

var (
	ErrNoClip        = errors.New("editor: no clip loaded")
	ErrNotExportable = errors.New("editor: trim region is empty")
	ErrClosed        = errors.New("editor: session closed")
	ErrNoWaveform    = errors.New("editor: waveform factory returned nil")
	ErrEmptyUpload   = errors.New("editor: upload is empty")
)
