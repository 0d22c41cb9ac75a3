package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the tunables of the buffer-load adjustment.
type Config struct {
	// logical frames per second of the timecodes (SCC counts 29.97 as 30)
	FrameRate int `yaml:"frame_rate"`

	// average decoder buffer fill cost per displayed character
	FramesPerChar float64 `yaml:"frames_per_char"`

	// Spacing
	MinCaptionSeconds       float64 `yaml:"min_caption_seconds"`
	MinGapSeconds           float64 `yaml:"min_gap_seconds"`
	LargeCaptionExtraFrames int     `yaml:"large_caption_extra_frames"`
	LargeCaptionChars       int     `yaml:"large_caption_chars"`

	// drop a clear event when the following caption would land too close to it
	AllowClearRemoval bool `yaml:"allow_clear_removal"`

	// write ';' before the frame field
	DropFrame bool `yaml:"drop_frame"`
}

// Default returns the values the adjuster was tuned with.
func Default() *Config {
	return &Config{
		FrameRate:               30,
		FramesPerChar:           0.8,
		MinCaptionSeconds:       1.0,
		MinGapSeconds:           2.0,
		LargeCaptionExtraFrames: 15,
		LargeCaptionChars:       32,
		AllowClearRemoval:       true,
		DropFrame:               true,
	}
}

// Load reads a YAML file over the defaults; keys absent from the file keep
// their default value. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}
