// SPDX-License-Identifier: EPL-2.0

// Package render extracts the trimmed range of a clip into an independent
// buffer, offline and without resampling.
package render
