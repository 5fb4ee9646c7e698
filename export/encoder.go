// SPDX-License-Identifier: EPL-2.0

package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/ik5/audtrim/audio"
	"github.com/ik5/audtrim/config"
	"github.com/ik5/audtrim/formats/mp3"
	"github.com/ik5/audtrim/formats/wav"
	"github.com/ik5/audtrim/internal/logger"
	"github.com/ik5/audtrim/utils"
)

const (
	FormatMP3 = "mp3"
	FormatWAV = "wav"
)

// FrameEncoder is a streaming compressed encoder. Frames hold one slice per
// channel, all of equal length.
type FrameEncoder interface {
	EncodeFrame(frame [][]float32) ([]byte, error)
	Flush() ([]byte, error)
	Close() error
}

// EncoderFactory opens a FrameEncoder for one export.
type EncoderFactory func(ctx context.Context, channels, sampleRate, kbps int) (FrameEncoder, error)

// NewMP3Factory returns a factory backed by ffmpeg/libmp3lame.
func NewMP3Factory(ffmpegPath string, log *logger.Logger) EncoderFactory {
	return func(ctx context.Context, channels, sampleRate, kbps int) (FrameEncoder, error) {
		enc, err := mp3.NewEncoder(ctx, mp3.EncoderConfig{
			FFmpegPath: ffmpegPath,
			SampleRate: sampleRate,
			Channels:   channels,
			Bitrate:    kbps,
			Logger:     log,
		})
		if err != nil {
			if errors.Is(err, mp3.ErrEncoderUnavailable) {
				return nil, fmt.Errorf("%w: %w", ErrEncoderUnavailable, err)
			}
			return nil, err
		}
		return enc, nil
	}
}

// Result is an encoded buffer before it is published.
type Result struct {
	Data        []byte
	Format      string
	ContentType string
}

// Encoder turns a rendered buffer into file bytes. The compressed tier is
// tried first; any failure there is logged and the buffer is written as
// 16-bit WAV instead.
type Encoder struct {
	factory   EncoderFactory
	bitrate   int
	frameSize int
	log       *logger.Logger

	uncompressed func(*audio.Buffer) ([]byte, error)
}

type EncoderOption func(*Encoder)

func WithEncoderLogger(l *logger.Logger) EncoderOption {
	return func(e *Encoder) {
		if l != nil {
			e.log = l
		}
	}
}

// NewEncoder takes bitrate and frame size from cfg. A nil factory makes
// every export fall back to WAV.
func NewEncoder(cfg config.ExportConfig, factory EncoderFactory, opts ...EncoderOption) *Encoder {
	e := &Encoder{
		factory:   factory,
		bitrate:   cfg.Bitrate,
		frameSize: cfg.FrameSize,
		log:       logger.Discard(),
	}
	if e.bitrate <= 0 {
		e.bitrate = config.DefaultBitrate
	}
	if e.frameSize <= 0 {
		e.frameSize = config.DefaultFrameSize
	}
	e.uncompressed = e.encodeWAV
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Encode returns MP3 bytes, or WAV bytes when the compressed tier fails.
// ExportFailedError is returned only when both tiers fail. A cancelled
// ctx aborts without falling back.
func (e *Encoder) Encode(ctx context.Context, buf *audio.Buffer) (Result, error) {
	if buf == nil {
		return Result{}, ErrNoBuffer
	}

	data, err := e.encodeCompressed(ctx, buf)
	if err == nil {
		return Result{Data: data, Format: FormatMP3, ContentType: ContentTypeMP3}, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return Result{}, ctxErr
	}

	e.log.Warnf("export: compressed tier failed, writing wav: %v", err)

	data, werr := e.uncompressed(buf)
	if werr != nil {
		return Result{}, &ExportFailedError{Compressed: err, Uncompressed: werr}
	}

	return Result{Data: data, Format: FormatWAV, ContentType: ContentTypeWAV}, nil
}

func (e *Encoder) encodeCompressed(ctx context.Context, buf *audio.Buffer) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = &EncodeError{Format: FormatMP3, Op: "encode", Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	fail := func(op string, err error) ([]byte, error) {
		return nil, &EncodeError{Format: FormatMP3, Op: op, Err: err}
	}

	if e.factory == nil {
		return fail("open", ErrEncoderUnavailable)
	}
	channels := buf.Channels()
	if channels > 2 {
		return fail("open", fmt.Errorf("%w: %d", ErrUnsupportedChannels, channels))
	}

	src := buf
	if rate := buf.SampleRate(); !mp3.IsLegalRate(rate) {
		target := mp3.NearestRate(rate)
		e.log.Debugf("export: resampling %d Hz to %d Hz for mp3", rate, target)
		if src, err = audio.ResampleBuffer(buf, target); err != nil {
			return fail("resample", err)
		}
	}

	enc, err := e.factory(ctx, channels, src.SampleRate(), e.bitrate)
	if err != nil {
		return fail("open", err)
	}
	defer enc.Close()

	planar := src.Planar()
	frames := src.Frames()
	frame := make([][]float32, channels)

	for i := 0; i < frames; i += e.frameSize {
		if err := ctx.Err(); err != nil {
			return fail("encode", err)
		}

		end := min(i+e.frameSize, frames)
		for c := range frame {
			frame[c] = planar[c][i:end]
		}

		b, err := enc.EncodeFrame(frame)
		if err != nil {
			return fail("encode", err)
		}
		out = append(out, b...)
	}

	tail, err := enc.Flush()
	if err != nil {
		return fail("flush", err)
	}
	out = append(out, tail...)

	if len(out) == 0 {
		return fail("flush", ErrEmptyOutput)
	}

	return out, nil
}

func (e *Encoder) encodeWAV(buf *audio.Buffer) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = &EncodeError{Format: FormatWAV, Op: "write", Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	samples := utils.Interleave16(buf.Planar(), buf.Frames())

	var b bytes.Buffer
	b.Grow(wav.HeaderSize + len(samples)*2)
	if err := wav.WriteWAV16(&b, buf.SampleRate(), buf.Channels(), samples); err != nil {
		return nil, &EncodeError{Format: FormatWAV, Op: "write", Err: err}
	}

	return b.Bytes(), nil
}
