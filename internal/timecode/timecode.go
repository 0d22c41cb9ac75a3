package timecode

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

const (
	// logical frame rate used by SCC files (29.97 fps counted as 30)
	DefaultRate = 30

	MaxHours = 99
)

// ErrSyntax is returned when text does not look like HH:MM:SS:FF at all.
var ErrSyntax = errors.New("not a timecode")

// ErrNegativeFrames is returned by AddFrames for a negative frame count.
var ErrNegativeFrames = errors.New("negative frame count")

var timecodeRegex = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2})[:;](\d{2})$`)

// Timecode is a frame accurate HH:MM:SS:FF value.
//
// Rate is the logical frames per second; zero means DefaultRate.
// EDM marks the timecode of a display-clear event rather than a caption.
type Timecode struct {
	Hours   int
	Minutes int
	Seconds int
	Frames  int
	Rate    int
	EDM     bool
}

// OverflowError reports a field pushed past its representable limit.
type OverflowError struct {
	Field string
	Value int
	Max   int
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("timecode overflow: %s %d exceeds %d", e.Field, e.Value, e.Max)
}

// RangeError reports a field outside its valid range.
type RangeError struct {
	Field string
	Value int
	Max   int
}

func (e *RangeError) Error() string {
	if e.Value < 0 {
		return fmt.Sprintf("invalid timecode: %s %d is negative", e.Field, e.Value)
	}
	return fmt.Sprintf("invalid timecode: %s %d out of range (0-%d)", e.Field, e.Value, e.Max)
}

// Parse reads HH:MM:SS:FF or HH:MM:SS;FF. The frame delimiter is not kept.
func Parse(text string, rate int) (Timecode, error) {
	matches := timecodeRegex.FindStringSubmatch(text)
	if matches == nil {
		return Timecode{}, fmt.Errorf("%w: %q", ErrSyntax, text)
	}

	var fields [4]int
	for i := range fields {
		n, err := strconv.Atoi(matches[i+1])
		if err != nil {
			return Timecode{}, fmt.Errorf("%w: %q", ErrSyntax, text)
		}
		fields[i] = n
	}

	t := Timecode{
		Hours:   fields[0],
		Minutes: fields[1],
		Seconds: fields[2],
		Frames:  fields[3],
		Rate:    rate,
	}
	if err := t.Validate(); err != nil {
		return Timecode{}, err
	}
	return t, nil
}

// Validate checks every field against its range.
func (t Timecode) Validate() error {
	rate := t.rate()
	checks := []struct {
		field string
		value int
		max   int
	}{
		{"hours", t.Hours, MaxHours},
		{"minutes", t.Minutes, 59},
		{"seconds", t.Seconds, 59},
		{"frames", t.Frames, rate - 1},
	}
	for _, c := range checks {
		if c.value < 0 || c.value > c.max {
			return &RangeError{Field: c.field, Value: c.value, Max: c.max}
		}
	}
	return nil
}

func (t Timecode) rate() int {
	if t.Rate <= 0 {
		return DefaultRate
	}
	return t.Rate
}

// Format zero-pads all four fields. With dropFrame the frame field is
// preceded by ';' as in NTSC drop-frame notation.
func (t Timecode) Format(dropFrame bool) string {
	sep := ':'
	if dropFrame {
		sep = ';'
	}
	return fmt.Sprintf("%02d:%02d:%02d%c%02d", t.Hours, t.Minutes, t.Seconds, sep, t.Frames)
}

func (t Timecode) String() string {
	return t.Format(false)
}

// TotalFrames is the absolute frame count from 00:00:00:00.
func (t Timecode) TotalFrames() int {
	rate := t.rate()
	return ((t.Hours*60+t.Minutes)*60+t.Seconds)*rate + t.Frames
}

// FromFrames converts an absolute frame count back to a timecode.
func FromFrames(frames, rate int) (Timecode, error) {
	if rate <= 0 {
		rate = DefaultRate
	}
	if frames < 0 {
		return Timecode{}, &RangeError{Field: "frames", Value: frames}
	}

	framesPerMinute := rate * 60
	framesPerHour := framesPerMinute * 60

	t := Timecode{Rate: rate}
	t.Hours = frames / framesPerHour
	frames %= framesPerHour
	t.Minutes = frames / framesPerMinute
	frames %= framesPerMinute
	t.Seconds = frames / rate
	t.Frames = frames % rate

	if t.Hours > MaxHours {
		return Timecode{}, &OverflowError{Field: "hours", Value: t.Hours, Max: MaxHours}
	}
	return t, nil
}

// MaxFrames is the largest absolute frame count representable at rate.
func MaxFrames(rate int) int {
	if rate <= 0 {
		rate = DefaultRate
	}
	return (MaxHours+1)*3600*rate - 1
}

func (t Timecode) withFrames(frames int) (Timecode, error) {
	out, err := FromFrames(frames, t.rate())
	if err != nil {
		return Timecode{}, err
	}
	out.Rate = t.Rate
	out.EDM = t.EDM
	return out, nil
}

// AddFrames moves the timecode forward by n frames. Moving backwards goes
// through SubtractFrames so a clamp at zero is never hidden.
func (t Timecode) AddFrames(n int) (Timecode, error) {
	if n < 0 {
		return Timecode{}, fmt.Errorf("%w: %d", ErrNegativeFrames, n)
	}
	return t.withFrames(t.TotalFrames() + n)
}

// SubtractFrames moves the timecode back by n frames. The result never goes
// below zero; clamped reports whether it had to be pinned there.
func (t Timecode) SubtractFrames(n int) (out Timecode, clamped bool) {
	if n < 0 {
		n = 0
	}
	total := t.TotalFrames() - n
	if total < 0 {
		total = 0
		clamped = true
	}
	// cannot fail: 0 <= total <= t.TotalFrames()
	out, _ = t.withFrames(total)
	return out, clamped
}

// AddSeconds adds n seconds, carrying into minutes and hours.
func (t Timecode) AddSeconds(n int) (Timecode, error) {
	carry, rem := divmod(t.Seconds+n, 60)
	t.Seconds = rem
	return t.AddMinutes(carry)
}

// AddMinutes adds n minutes, carrying into hours.
func (t Timecode) AddMinutes(n int) (Timecode, error) {
	carry, rem := divmod(t.Minutes+n, 60)
	t.Minutes = rem
	return t.AddHours(carry)
}

// AddHours adds n hours. Going past MaxHours is an OverflowError.
func (t Timecode) AddHours(n int) (Timecode, error) {
	h := t.Hours + n
	if h > MaxHours {
		return Timecode{}, &OverflowError{Field: "hours", Value: h, Max: MaxHours}
	}
	if h < 0 {
		return Timecode{}, &RangeError{Field: "hours", Value: h, Max: MaxHours}
	}
	t.Hours = h
	return t, nil
}

// Before reports whether t is strictly earlier than u.
func (t Timecode) Before(u Timecode) bool {
	return t.TotalFrames() < u.TotalFrames()
}

// Duration converts the timecode to wall time at its logical rate.
func (t Timecode) Duration() time.Duration {
	return FramesToDuration(t.TotalFrames(), t.rate())
}

func FramesToDuration(frames, rate int) time.Duration {
	if rate <= 0 {
		rate = DefaultRate
	}
	return time.Duration(frames) * time.Second / time.Duration(rate)
}

// floored division so negative offsets borrow from the next unit
func divmod(v, base int) (int, int) {
	q, r := v/base, v%base
	if r < 0 {
		q--
		r += base
	}
	return q, r
}
