// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// HeaderSize is the length of the canonical RIFF/WAVE header written by
// WriteWAV16: RIFF (12) + fmt (24) + data chunk header (8).
const HeaderSize = 44

// Header mirrors the fields of a canonical 44-byte PCM header.
type Header struct {
	RIFFSize      uint32
	AudioFormat   uint16
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	DataSize      uint32
}

// NewHeader describes a 16-bit PCM stream of samples interleaved values.
func NewHeader(sampleRate, channels, samples int) Header {
	const bits = 16
	blockAlign := uint16(channels * bits / 8)
	dataSize := uint32(samples * 2)

	return Header{
		RIFFSize:      36 + dataSize,
		AudioFormat:   formatPCM,
		Channels:      uint16(channels),
		SampleRate:    uint32(sampleRate),
		ByteRate:      uint32(sampleRate) * uint32(blockAlign),
		BlockAlign:    blockAlign,
		BitsPerSample: bits,
		DataSize:      dataSize,
	}
}

// Frames is the number of sample frames announced by the data chunk.
func (h Header) Frames() int {
	if h.BlockAlign == 0 {
		return 0
	}
	return int(h.DataSize) / int(h.BlockAlign)
}

func (h Header) Bytes() []byte {
	b := make([]byte, HeaderSize)

	copy(b[0:4], "RIFF")
	binary.LittleEndian.PutUint32(b[4:8], h.RIFFSize)
	copy(b[8:12], "WAVE")

	copy(b[12:16], "fmt ")
	binary.LittleEndian.PutUint32(b[16:20], 16)
	binary.LittleEndian.PutUint16(b[20:22], h.AudioFormat)
	binary.LittleEndian.PutUint16(b[22:24], h.Channels)
	binary.LittleEndian.PutUint32(b[24:28], h.SampleRate)
	binary.LittleEndian.PutUint32(b[28:32], h.ByteRate)
	binary.LittleEndian.PutUint16(b[32:34], h.BlockAlign)
	binary.LittleEndian.PutUint16(b[34:36], h.BitsPerSample)

	copy(b[36:40], "data")
	binary.LittleEndian.PutUint32(b[40:44], h.DataSize)

	return b
}

// ReadHeader parses a canonical 44-byte header. Files with extra chunks
// between fmt and data are not canonical; use Decoder for those.
func ReadHeader(r io.Reader) (Header, error) {
	b := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, b); err != nil {
		return Header{}, fmt.Errorf("%w: %w", ErrShortHeader, err)
	}

	if !bytes.Equal(b[0:4], []byte("RIFF")) || !bytes.Equal(b[8:12], []byte("WAVE")) {
		return Header{}, ErrNotWavFile
	}
	if !bytes.Equal(b[12:16], []byte("fmt ")) || !bytes.Equal(b[36:40], []byte("data")) {
		return Header{}, fmt.Errorf("%w: not a canonical layout", ErrNotWavFile)
	}

	return Header{
		RIFFSize:      binary.LittleEndian.Uint32(b[4:8]),
		AudioFormat:   binary.LittleEndian.Uint16(b[20:22]),
		Channels:      binary.LittleEndian.Uint16(b[22:24]),
		SampleRate:    binary.LittleEndian.Uint32(b[24:28]),
		ByteRate:      binary.LittleEndian.Uint32(b[28:32]),
		BlockAlign:    binary.LittleEndian.Uint16(b[32:34]),
		BitsPerSample: binary.LittleEndian.Uint16(b[34:36]),
		DataSize:      binary.LittleEndian.Uint32(b[40:44]),
	}, nil
}
