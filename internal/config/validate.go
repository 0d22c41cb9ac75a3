package config

import (
	"errors"
	"fmt"
	"math"
)

const (
	maxFrameRate = 60
	// longest offset that still fits in a timecode
	maxSeconds = 99 * 3600
)

// Validate checks that every tunable is usable by the adjuster.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config is nil")
	}

	var errs []error
	if c.FrameRate < 1 || c.FrameRate > maxFrameRate {
		errs = append(errs, fmt.Errorf("frame_rate must be between 1 and %d, got %d", maxFrameRate, c.FrameRate))
	}
	// a character never takes longer than a second to load
	if !finite(c.FramesPerChar) || c.FramesPerChar <= 0 || c.FramesPerChar > float64(c.FrameRate) {
		errs = append(errs, fmt.Errorf("frames_per_char must be positive and at most frame_rate, got %g", c.FramesPerChar))
	}
	if err := checkSeconds("min_caption_seconds", c.MinCaptionSeconds); err != nil {
		errs = append(errs, err)
	}
	if err := checkSeconds("min_gap_seconds", c.MinGapSeconds); err != nil {
		errs = append(errs, err)
	}
	if c.LargeCaptionExtraFrames < 0 {
		errs = append(errs, fmt.Errorf("large_caption_extra_frames must not be negative, got %d", c.LargeCaptionExtraFrames))
	}
	if c.LargeCaptionChars < 0 {
		errs = append(errs, fmt.Errorf("large_caption_chars must not be negative, got %d", c.LargeCaptionChars))
	}
	return errors.Join(errs...)
}

func checkSeconds(key string, v float64) error {
	if !finite(v) || v < 0 || v > maxSeconds {
		return fmt.Errorf("%s must be between 0 and %d, got %g", key, maxSeconds, v)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
