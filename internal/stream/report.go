package stream

import (
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mgpai22/sccadjust/internal/adjust"
	"github.com/mgpai22/sccadjust/internal/subtitle"
	"github.com/mgpai22/sccadjust/internal/timecode"
)

// how long the last caption of a preview stays up
const lastCaptionDuration = 3 * time.Second

// Event records what happened to one clear or caption line.
type Event struct {
	Line       int
	Kind       Kind
	Nominal    timecode.Timecode
	Adjusted   timecode.Timecode
	Chars      int
	LoadFrames int
	Shift      int
	Decision   adjust.Decision
	Retracted  bool
	Text       string
}

// Report summarises one run over a caption file.
type Report struct {
	Events []Event
	// timecodes of clear events removed from the output, in order
	Retracted      []timecode.Timecode
	MalformedLines []int
	PartialShifts  int
	MissingHeader  bool

	rate      int
	dropFrame bool
}

// Captions returns the caption events that made it into the output.
func (r *Report) Captions() []Event {
	var out []Event
	for _, ev := range r.Events {
		if ev.Kind == KindCaption && !ev.Retracted {
			out = append(out, ev)
		}
	}
	return out
}

// Preview builds a subtitle track from the kept captions, timed at the
// moment each caption is estimated to reach the screen.
func (r *Report) Preview() *subtitle.Subtitle {
	var kept []Event
	for _, ev := range r.Events {
		if !ev.Retracted {
			kept = append(kept, ev)
		}
	}

	onScreen := func(ev Event) time.Duration {
		if ev.Kind == KindClear {
			return ev.Adjusted.Duration()
		}
		return ev.Adjusted.Duration() + timecode.FramesToDuration(ev.LoadFrames, r.rate)
	}

	sub := &subtitle.Subtitle{Entries: []subtitle.Entry{}}
	for i, ev := range kept {
		if ev.Kind != KindCaption || ev.Text == "" {
			continue
		}
		start := onScreen(ev)
		end := start + lastCaptionDuration
		if i+1 < len(kept) {
			end = onScreen(kept[i+1])
		}
		if end <= start {
			end = start + timecode.FramesToDuration(1, r.rate)
		}
		sub.Entries = append(sub.Entries, subtitle.Entry{
			Index:     len(sub.Entries) + 1,
			StartTime: start,
			EndTime:   end,
			Text:      ev.Text,
		})
	}
	return sub
}

type yamlEvent struct {
	Line       int    `yaml:"line"`
	Kind       Kind   `yaml:"kind"`
	Nominal    string `yaml:"nominal"`
	Adjusted   string `yaml:"adjusted"`
	Chars      int    `yaml:"chars,omitempty"`
	LoadFrames int    `yaml:"load_frames,omitempty"`
	Shift      int    `yaml:"shift,omitempty"`
	Decision   string `yaml:"decision,omitempty"`
	Retracted  bool   `yaml:"retracted,omitempty"`
	Text       string `yaml:"text,omitempty"`
}

type yamlReport struct {
	Events          []yamlEvent `yaml:"events"`
	RetractedClears []string    `yaml:"retracted_clears"`
	MalformedLines  []int       `yaml:"malformed_lines,omitempty"`
	PartialShifts   int         `yaml:"partial_shifts"`
	MissingHeader   bool        `yaml:"missing_header,omitempty"`
}

// WriteYAML writes the report in the same timecode notation as the output file.
func (r *Report) WriteYAML(w io.Writer) error {
	out := yamlReport{
		Events:          make([]yamlEvent, 0, len(r.Events)),
		RetractedClears: make([]string, 0, len(r.Retracted)),
		MalformedLines:  r.MalformedLines,
		PartialShifts:   r.PartialShifts,
		MissingHeader:   r.MissingHeader,
	}
	for _, ev := range r.Events {
		out.Events = append(out.Events, yamlEvent{
			Line:       ev.Line,
			Kind:       ev.Kind,
			Nominal:    ev.Nominal.Format(r.dropFrame),
			Adjusted:   ev.Adjusted.Format(r.dropFrame),
			Chars:      ev.Chars,
			LoadFrames: ev.LoadFrames,
			Shift:      ev.Shift,
			Decision:   string(ev.Decision),
			Retracted:  ev.Retracted,
			Text:       ev.Text,
		})
	}
	for _, tc := range r.Retracted {
		out.RetractedClears = append(out.RetractedClears, tc.Format(r.dropFrame))
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return enc.Close()
}
