package stream

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/mgpai22/sccadjust/internal/adjust"
	"github.com/mgpai22/sccadjust/internal/caption"
	"github.com/mgpai22/sccadjust/internal/config"
	"github.com/mgpai22/sccadjust/internal/logging"
)

// Processor rewrites the timecodes of a caption file in a single pass.
type Processor struct {
	cfg       *config.Config
	estimator adjust.Estimator
	adjuster  *adjust.Adjuster
	logger    *logging.Logger
}

func NewProcessor(cfg *config.Config, logger *logging.Logger) *Processor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Processor{
		cfg:       cfg,
		estimator: adjust.NewEstimator(cfg.FramesPerChar),
		adjuster:  adjust.New(adjust.ParamsFromConfig(cfg)),
		logger:    logger,
	}
}

// run state carried from one line to the next
type pass struct {
	out    *undoBuffer
	report *Report
	prev   *adjust.Previous
	// index in report.Events of the last kept event
	prevEvent   int
	seenContent bool
}

// Process reads caption lines from r and writes the adjusted file to w.
// A fatal error is returned as a *LineError; whatever was written to w
// before it should be discarded.
func (p *Processor) Process(r io.Reader, w io.Writer) (*Report, error) {
	bw := bufio.NewWriter(w)
	st := &pass{
		out: newUndoBuffer(bw),
		report: &Report{
			Events:    []Event{},
			rate:      p.cfg.FrameRate,
			dropFrame: p.cfg.DropFrame,
		},
		prevEvent: -1,
	}

	br := bufio.NewReader(r)
	lineNum := 0
	for {
		raw, err := br.ReadString('\n')
		if len(raw) > 0 {
			lineNum++
			if herr := p.handleLine(st, lineNum, raw); herr != nil {
				return nil, &LineError{Line: lineNum, Err: herr}
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read input: %w", err)
		}
	}

	if err := st.out.Commit(); err != nil {
		return nil, err
	}
	if err := bw.Flush(); err != nil {
		return nil, fmt.Errorf("failed to write output: %w", err)
	}
	return st.report, nil
}

func (p *Processor) handleLine(st *pass, lineNum int, raw string) error {
	line, err := ParseLine(raw, p.cfg.FrameRate)
	if err != nil {
		return err
	}

	if line.Kind != KindBlank && !st.seenContent {
		st.seenContent = true
		if line.Kind != KindHeader {
			st.report.MissingHeader = true
			p.logger.Warnw("File does not start with the Scenarist header",
				"line", lineNum,
				"want", Header,
			)
		}
	}

	switch line.Kind {
	case KindClear:
		return p.handleClear(st, lineNum, line)
	case KindCaption:
		return p.handleCaption(st, lineNum, line)
	case KindMalformed:
		p.logger.Warnw("Line has no timecode, passing through",
			"line", lineNum,
			"text", line.Raw,
		)
		st.report.MalformedLines = append(st.report.MalformedLines, lineNum)
	}

	st.out.Write(raw)
	return nil
}

// clears pass through verbatim but become the previous event
func (p *Processor) handleClear(st *pass, lineNum int, line Line) error {
	if err := st.out.Commit(); err != nil {
		return err
	}
	st.out.Write(line.Raw)

	p.logger.Debugw("Clear",
		"line", lineNum,
		"timecode", line.Field,
	)

	st.prev = &adjust.Previous{Timecode: line.Timecode}
	st.report.Events = append(st.report.Events, Event{
		Line:     lineNum,
		Kind:     KindClear,
		Nominal:  line.Timecode,
		Adjusted: line.Timecode,
	})
	st.prevEvent = len(st.report.Events) - 1
	return nil
}

func (p *Processor) handleCaption(st *pass, lineNum int, line Line) error {
	chars, err := caption.CountCharacters(line.Tokens)
	if err != nil {
		return err
	}
	load := p.estimator.LoadFrames(chars)

	res, err := p.adjuster.Adjust(line.Timecode, load, st.prev)
	if err != nil {
		return err
	}

	p.logger.Debugw("Caption",
		"line", lineNum,
		"timecode", line.Field,
		"chars", chars,
		"load_frames", load,
		"adjusted", res.Adjusted.Format(p.cfg.DropFrame),
		"shift", res.Shift,
		"decision", res.Decision,
	)

	if res.Underflow {
		p.logger.Warnw("Adjusted timecode clamped at zero",
			"line", lineNum,
			"timecode", line.Field,
			"load_frames", load,
		)
	}
	if res.Partial(load) {
		st.report.PartialShifts++
		p.logger.Infow("Could not apply full buffer time",
			"line", lineNum,
			"load_frames", load,
			"actual_shift", res.Shift,
		)
	}

	if res.RemovePrevious {
		st.out.Retract()
		removed := st.prev.Timecode
		st.report.Retracted = append(st.report.Retracted, removed)
		if st.prevEvent >= 0 {
			st.report.Events[st.prevEvent].Retracted = true
		}
		p.logger.Infow("Removed clear before caption",
			"line", lineNum,
			"clear", removed.Format(p.cfg.DropFrame),
		)
	} else if err := st.out.Commit(); err != nil {
		return err
	}

	st.out.Write(line.Rewrite(res.Adjusted, p.cfg.DropFrame))

	st.prev = &adjust.Previous{Timecode: res.Adjusted, CharCount: chars}
	st.report.Events = append(st.report.Events, Event{
		Line:       lineNum,
		Kind:       KindCaption,
		Nominal:    line.Timecode,
		Adjusted:   res.Adjusted,
		Chars:      chars,
		LoadFrames: load,
		Shift:      res.Shift,
		Decision:   res.Decision,
		Text:       caption.DecodeText(line.Tokens),
	})
	st.prevEvent = len(st.report.Events) - 1
	return nil
}
