package adjust

import (
	"fmt"
	"math"

	"github.com/mgpai22/sccadjust/internal/config"
	"github.com/mgpai22/sccadjust/internal/timecode"
)

// Params are the spacing rules applied between consecutive events.
type Params struct {
	FrameRate               int
	MinCaptionSeconds       float64
	MinGapSeconds           float64
	LargeCaptionExtraFrames int
	LargeCaptionChars       int
	AllowClearRemoval       bool
}

func ParamsFromConfig(cfg *config.Config) Params {
	return Params{
		FrameRate:               cfg.FrameRate,
		MinCaptionSeconds:       cfg.MinCaptionSeconds,
		MinGapSeconds:           cfg.MinGapSeconds,
		LargeCaptionExtraFrames: cfg.LargeCaptionExtraFrames,
		LargeCaptionChars:       cfg.LargeCaptionChars,
		AllowClearRemoval:       cfg.AllowClearRemoval,
	}
}

// Previous is the last event kept in the output.
type Previous struct {
	Timecode timecode.Timecode
	// displayed characters of that event; zero for a clear
	CharCount int
}

// Decision describes how the adjusted timecode was chosen.
type Decision string

const (
	DecisionFirst        Decision = "first"
	DecisionShifted      Decision = "shifted"
	DecisionClamped      Decision = "clamped"
	DecisionClearRemoved Decision = "clear-removed"
)

// Result of adjusting one caption-display event.
type Result struct {
	Adjusted timecode.Timecode
	// frames actually moved earlier; may be less than the load estimate
	Shift          int
	RemovePrevious bool
	Decision       Decision
	// lower bound that applied; nil for the first event
	Limit *timecode.Timecode
	// the shifted timecode would have been negative and was pinned at zero
	Underflow bool
}

// Partial reports whether the full load compensation could not be applied.
func (r Result) Partial(loadFrames int) bool {
	return r.Shift != loadFrames
}

// Adjuster moves caption timecodes earlier by their buffer load time while
// keeping minimum spacing from the previous kept event.
type Adjuster struct {
	params Params
}

func New(params Params) *Adjuster {
	if params.FrameRate <= 0 {
		params.FrameRate = timecode.DefaultRate
	}
	return &Adjuster{params: params}
}

// Adjust computes the corrected timecode of a caption whose nominal display
// time is nominal and whose content needs loadFrames to buffer. prev is nil
// for the first event of a file.
func (a *Adjuster) Adjust(
	nominal timecode.Timecode,
	loadFrames int,
	prev *Previous,
) (Result, error) {
	candidate, underflow := nominal.SubtractFrames(loadFrames)
	candidate.EDM = false

	res := Result{
		Adjusted:  candidate,
		Decision:  DecisionFirst,
		Underflow: underflow,
	}

	if prev != nil {
		limit, err := a.Limit(*prev)
		if err != nil {
			return Result{}, err
		}
		res.Limit = &limit

		switch {
		case !candidate.Before(limit):
			res.Decision = DecisionShifted
		case a.clearRemovable(prev.Timecode):
			// the caption takes over the clear's slot with no gap
			res.Adjusted = prev.Timecode
			res.Adjusted.EDM = false
			res.RemovePrevious = true
			res.Decision = DecisionClearRemoved
		default:
			res.Adjusted = limit
			res.Adjusted.EDM = false
			res.Decision = DecisionClamped
		}
	}

	res.Shift = nominal.TotalFrames() - res.Adjusted.TotalFrames()
	if res.Shift < 0 {
		res.Shift = 0
	}
	return res, nil
}

// Limit returns the earliest timecode a caption may take after prev.
func (a *Adjuster) Limit(prev Previous) (timecode.Timecode, error) {
	if a.clearRemovable(prev.Timecode) {
		limit, err := addSeconds(prev.Timecode, a.params.MinGapSeconds, a.params.FrameRate)
		if err != nil {
			return timecode.Timecode{}, fmt.Errorf("failed to compute gap limit after %s: %w", prev.Timecode, err)
		}
		return limit, nil
	}

	limit, err := addSeconds(prev.Timecode, a.params.MinCaptionSeconds, a.params.FrameRate)
	if err != nil {
		return timecode.Timecode{}, fmt.Errorf("failed to compute caption limit after %s: %w", prev.Timecode, err)
	}
	// long captions need more time on screen to stay under caption-rate limits
	if prev.CharCount >= a.params.LargeCaptionChars {
		limit, err = limit.AddFrames(a.params.LargeCaptionExtraFrames)
		if err != nil {
			return timecode.Timecode{}, fmt.Errorf("failed to extend limit after %s: %w", prev.Timecode, err)
		}
	}
	return limit, nil
}

func (a *Adjuster) clearRemovable(prev timecode.Timecode) bool {
	return a.params.AllowClearRemoval && prev.EDM
}

// addSeconds adds whole seconds with carry and any fractional part as frames.
func addSeconds(tc timecode.Timecode, seconds float64, rate int) (timecode.Timecode, error) {
	if math.IsNaN(seconds) || seconds < 0 || seconds > (timecode.MaxHours+1)*3600 {
		return timecode.Timecode{}, fmt.Errorf("cannot add %g seconds", seconds)
	}
	whole := math.Floor(seconds)
	out, err := tc.AddSeconds(int(whole))
	if err != nil {
		return timecode.Timecode{}, err
	}
	frac := int(math.Round((seconds - whole) * float64(rate)))
	if frac == 0 {
		return out, nil
	}
	return out.AddFrames(frac)
}
