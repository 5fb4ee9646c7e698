// SPDX-License-Identifier: EPL-2.0

// Package config holds the tunables of the trim-and-export engine.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

// Defaults.
const (
	DefaultMinGap     = 0.1
	DefaultBitrate    = 128
	DefaultFrameSize  = 1152
	DefaultFFmpegPath = "ffmpeg"
	DefaultProductTag = "mediakit"
	DefaultBaseName   = "audio"
	DefaultLogLevel   = "info"
	environmentPrefix = "AUDTRIM_"
)

var (
	ErrInvalidMinGap    = errors.New("min gap must be positive")
	ErrInvalidBitrate   = errors.New("bitrate must be between 8 and 320 kbps")
	ErrInvalidFrameSize = errors.New("frame size must be positive")
	ErrEmptyProductTag  = errors.New("product tag must not be empty")
)

// Config holds all engine configuration.
type Config struct {
	// MinGap is the shortest trim region, in seconds.
	MinGap float64
	Export ExportConfig
	// LogLevel is one of debug, info, warn, error, none.
	LogLevel string
}

// ExportConfig controls artifact encoding and naming.
type ExportConfig struct {
	// Bitrate of the compressed tier in kbps.
	Bitrate int
	// FrameSize is the number of samples per channel handed to the
	// compressed encoder at a time.
	FrameSize  int
	FFmpegPath string
	// ProductTag prefixes every exported file name.
	ProductTag string
	// BaseName is used when the original upload name is unknown.
	BaseName string
}

// Default returns the built-in configuration without reading the environment.
func Default() *Config {
	return &Config{
		MinGap: DefaultMinGap,
		Export: ExportConfig{
			Bitrate:    DefaultBitrate,
			FrameSize:  DefaultFrameSize,
			FFmpegPath: DefaultFFmpegPath,
			ProductTag: DefaultProductTag,
			BaseName:   DefaultBaseName,
		},
		LogLevel: DefaultLogLevel,
	}
}

// Load reads configuration from AUDTRIM_* environment variables, falling back
// to the defaults for unset ones.
func Load() (*Config, error) {
	cfg := Default()

	var err error
	if cfg.MinGap, err = getEnvFloat("MIN_GAP", cfg.MinGap); err != nil {
		return nil, err
	}
	if cfg.Export.Bitrate, err = getEnvInt("MP3_BITRATE", cfg.Export.Bitrate); err != nil {
		return nil, err
	}
	if cfg.Export.FrameSize, err = getEnvInt("FRAME_SIZE", cfg.Export.FrameSize); err != nil {
		return nil, err
	}
	cfg.Export.FFmpegPath = getEnv("FFMPEG_PATH", cfg.Export.FFmpegPath)
	cfg.Export.ProductTag = getEnv("PRODUCT_TAG", cfg.Export.ProductTag)
	cfg.Export.BaseName = getEnv("DEFAULT_NAME", cfg.Export.BaseName)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if !(c.MinGap > 0) {
		return ErrInvalidMinGap
	}
	if c.Export.Bitrate < 8 || c.Export.Bitrate > 320 {
		return ErrInvalidBitrate
	}
	if c.Export.FrameSize <= 0 {
		return ErrInvalidFrameSize
	}
	if c.Export.ProductTag == "" {
		return ErrEmptyProductTag
	}
	return nil
}

// getEnv returns the value of the environment variable key, or defaultValue if unset.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(environmentPrefix + key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parsing %s%s: %w", environmentPrefix, key, err)
	}
	return v, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing %s%s: %w", environmentPrefix, key, err)
	}
	return v, nil
}
