package stream

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mgpai22/sccadjust/internal/caption"
	"github.com/mgpai22/sccadjust/internal/timecode"
)

// Header is the first line of every Scenarist caption file.
const Header = "Scenarist_SCC V1.0"

// Kind classifies one input line.
type Kind string

const (
	KindBlank     Kind = "blank"
	KindHeader    Kind = "header"
	KindClear     Kind = "clear"
	KindCaption   Kind = "caption"
	KindMalformed Kind = "malformed"
)

// Line is one input line with its classification.
type Line struct {
	Raw      string // as read, line ending included
	Kind     Kind
	Field    string // leading timecode field as written
	Timecode timecode.Timecode
	Tokens   []string
}

// LineError ties a fatal error to its 1-based input line.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// ParseLine classifies raw. Only a well-formed timecode with out-of-range
// fields is an error; anything else unrecognised is KindMalformed.
func ParseLine(raw string, rate int) (Line, error) {
	l := Line{Raw: raw}

	body := strings.TrimRight(raw, "\r\n")
	trimmed := strings.TrimSpace(body)
	switch trimmed {
	case "":
		l.Kind = KindBlank
		return l, nil
	case Header:
		l.Kind = KindHeader
		return l, nil
	}

	fields := strings.Fields(body)
	tc, err := timecode.Parse(fields[0], rate)
	if errors.Is(err, timecode.ErrSyntax) || (err == nil && len(fields) < 2) {
		l.Kind = KindMalformed
		return l, nil
	}
	if err != nil {
		return Line{}, err
	}

	l.Field = fields[0]
	l.Timecode = tc
	l.Tokens = fields[1:]
	if caption.IsClear(l.Tokens) {
		l.Kind = KindClear
		l.Timecode.EDM = true
	} else {
		l.Kind = KindCaption
	}
	return l, nil
}

// Rewrite replaces the leading timecode field, keeping the rest of the line
// byte for byte.
func (l Line) Rewrite(tc timecode.Timecode, dropFrame bool) string {
	idx := strings.Index(l.Raw, l.Field)
	if l.Field == "" || idx < 0 {
		return l.Raw
	}
	return l.Raw[:idx] + tc.Format(dropFrame) + l.Raw[idx+len(l.Field):]
}
