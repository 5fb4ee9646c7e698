// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/ik5/audtrim/internal/logger"
	"github.com/ik5/audtrim/utils"
)

const DefaultFFmpegPath = "ffmpeg"

type EncoderConfig struct {
	FFmpegPath string
	SampleRate int
	Channels   int
	// Bitrate in kbps.
	Bitrate int
	Logger  *logger.Logger
}

// Encoder streams PCM frames into an ffmpeg/libmp3lame process and collects
// the MP3 bytes it produces. An Encoder is single use: Flush or Close ends it.
type Encoder struct {
	cmd      *exec.Cmd
	stdin    io.WriteCloser
	channels int
	log      *logger.Logger

	mu  sync.Mutex
	out bytes.Buffer

	stderr   bytes.Buffer
	readDone chan struct{}
	readErr  error

	pcm   []byte
	ints  []int16
	ended bool
}

// NewEncoder starts ffmpeg. It fails with ErrEncoderUnavailable when the
// binary cannot be found or started.
func NewEncoder(ctx context.Context, cfg EncoderConfig) (*Encoder, error) {
	if cfg.Channels != 1 && cfg.Channels != 2 {
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupportedChannels, cfg.Channels)
	}
	if !IsLegalRate(cfg.SampleRate) {
		return nil, fmt.Errorf("%w: %d Hz", ErrUnsupportedSampleRate, cfg.SampleRate)
	}
	if cfg.Bitrate <= 0 {
		return nil, ErrInvalidBitrate
	}

	bin := cfg.FFmpegPath
	if bin == "" {
		bin = DefaultFFmpegPath
	}
	path, err := exec.LookPath(bin)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncoderUnavailable, err)
	}

	log := cfg.Logger
	if log == nil {
		log = logger.Discard()
	}

	cmd := exec.CommandContext(ctx, path,
		"-hide_banner",
		"-loglevel", "error",
		"-f", "s16le",
		"-ar", strconv.Itoa(cfg.SampleRate),
		"-ac", strconv.Itoa(cfg.Channels),
		"-i", "pipe:0",
		"-codec:a", "libmp3lame",
		"-b:a", strconv.Itoa(cfg.Bitrate)+"k",
		"-f", "mp3",
		"pipe:1",
	)

	e := &Encoder{
		cmd:      cmd,
		channels: cfg.Channels,
		log:      log,
		readDone: make(chan struct{}),
	}
	cmd.Stderr = &e.stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: stdin pipe: %w", ErrEncoderUnavailable, err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: stdout pipe: %w", ErrEncoderUnavailable, err)
	}
	e.stdin = stdin

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: start %s: %w", ErrEncoderUnavailable, path, err)
	}
	log.Debugf("mp3: started %s at %d Hz x %d, %d kbps", path, cfg.SampleRate, cfg.Channels, cfg.Bitrate)

	go e.drain(stdout)

	return e, nil
}

func (e *Encoder) drain(r io.Reader) {
	defer close(e.readDone)

	buf := make([]byte, 32*1024)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			e.mu.Lock()
			e.out.Write(buf[:n])
			e.mu.Unlock()
		}
		if err != nil {
			if err != io.EOF {
				e.readErr = err
			}
			return
		}
	}
}

// take returns and clears the bytes produced so far.
func (e *Encoder) take() []byte {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.out.Len() == 0 {
		return nil
	}
	b := bytes.Clone(e.out.Bytes())
	e.out.Reset()
	return b
}

// EncodeFrame converts one frame (one slice per channel, equal lengths) to
// int16 and writes it to the encoder. It returns whatever MP3 bytes the
// encoder has emitted since the previous call, which may be none.
func (e *Encoder) EncodeFrame(frame [][]float32) ([]byte, error) {
	if e.ended {
		return nil, ErrEncoderClosed
	}
	if len(frame) != e.channels {
		return nil, fmt.Errorf("%w: got %d channels, want %d", ErrFrameShape, len(frame), e.channels)
	}

	n := len(frame[0])
	for _, ch := range frame[1:] {
		if len(ch) != n {
			return nil, ErrFrameShape
		}
	}

	if cap(e.ints) < n {
		e.ints = make([]int16, n)
	}
	e.ints = e.ints[:n]
	if cap(e.pcm) < n*e.channels*2 {
		e.pcm = make([]byte, n*e.channels*2)
	}
	e.pcm = e.pcm[:n*e.channels*2]

	for c, ch := range frame {
		utils.ConvertChannel(e.ints, ch)
		for i, v := range e.ints {
			binary.LittleEndian.PutUint16(e.pcm[(i*e.channels+c)*2:], uint16(v))
		}
	}

	if _, err := e.stdin.Write(e.pcm); err != nil {
		return nil, fmt.Errorf("write pcm to encoder: %w", err)
	}

	return e.take(), nil
}

// Flush closes the input, waits for ffmpeg to finish and returns the
// remaining MP3 bytes.
func (e *Encoder) Flush() ([]byte, error) {
	if e.ended {
		return nil, ErrEncoderClosed
	}
	e.ended = true

	if err := e.stdin.Close(); err != nil {
		e.log.Debugf("mp3: close encoder stdin: %v", err)
	}

	<-e.readDone
	if err := e.cmd.Wait(); err != nil {
		return nil, fmt.Errorf("ffmpeg: %w: %s", err, strings.TrimSpace(e.stderr.String()))
	}
	if e.readErr != nil {
		return nil, fmt.Errorf("read encoder output: %w", e.readErr)
	}

	return e.take(), nil
}

// Close stops the process if Flush was not called. It is safe to call
// after Flush and more than once.
func (e *Encoder) Close() error {
	if e.ended {
		return nil
	}
	e.ended = true

	_ = e.stdin.Close()
	if e.cmd.Process != nil {
		_ = e.cmd.Process.Kill()
	}
	<-e.readDone
	_ = e.cmd.Wait()

	if msg := strings.TrimSpace(e.stderr.String()); msg != "" {
		e.log.Debugf("mp3: ffmpeg stderr: %s", msg)
	}
	return nil
}
