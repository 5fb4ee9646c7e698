// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"
)

const writeChunk = 8192

// WriteWAV16 writes a canonical 16-bit PCM WAV. samples are interleaved
// across channels.
func WriteWAV16(w io.Writer, sampleRate, channels int, samples []int16) error {
	if sampleRate <= 0 {
		return ErrInvalidSampleRate
	}
	if channels < 1 {
		return ErrInvalidChannels
	}
	if len(samples)%channels != 0 {
		return ErrSampleCount
	}

	if _, err := w.Write(NewHeader(sampleRate, channels, len(samples)).Bytes()); err != nil {
		return fmt.Errorf("write wav header: %w", err)
	}

	if len(samples) == 0 {
		return nil
	}

	buf := make([]byte, min(len(samples), writeChunk)*2)
	for i := 0; i < len(samples); i += writeChunk {
		chunk := samples[i:min(i+writeChunk, len(samples))]
		out := buf[:len(chunk)*2]

		for j, s := range chunk {
			binary.LittleEndian.PutUint16(out[j*2:], uint16(s))
		}

		if _, err := w.Write(out); err != nil {
			return fmt.Errorf("write wav data: %w", err)
		}
	}

	return nil
}
