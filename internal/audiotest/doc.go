// SPDX-License-Identifier: EPL-2.0

// Package audiotest generates deterministic sources, clips and WAV uploads
// for tests.
package audiotest
