package stream

import (
	"errors"
	"testing"

	"github.com/mgpai22/sccadjust/internal/timecode"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		kind   Kind
		tokens int
	}{
		{"blank", "\n", KindBlank, 0},
		{"whitespace only", " \t\r\n", KindBlank, 0},
		{"header", "Scenarist_SCC V1.0\r\n", KindHeader, 0},
		{"clear", "00:00:05:00\t942c 942c\n", KindClear, 2},
		{"clear upper case", "00:00:05;00 942C\n", KindClear, 1},
		{"caption", "00:00:01;00\t94ae 9420 9152 c8e5\n", KindCaption, 4},
		{"caption without newline", "00:00:01:00 94ae 9420 9152 c8e5", KindCaption, 4},
		{"text line", "some stray note\n", KindMalformed, 0},
		{"timecode only", "00:00:01:00\n", KindMalformed, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, err := ParseLine(tt.raw, timecode.DefaultRate)
			if err != nil {
				t.Fatalf("ParseLine error: %v", err)
			}
			if line.Kind != tt.kind {
				t.Errorf("kind = %s, want %s", line.Kind, tt.kind)
			}
			if len(line.Tokens) != tt.tokens {
				t.Errorf("tokens = %v, want %d", line.Tokens, tt.tokens)
			}
			if line.Kind == KindClear && !line.Timecode.EDM {
				t.Error("clear timecode not marked EDM")
			}
		})
	}
}

func TestParseLineRangeError(t *testing.T) {
	_, err := ParseLine("00:00:61:00\t942c\n", timecode.DefaultRate)
	var rangeErr *timecode.RangeError
	if !errors.As(err, &rangeErr) {
		t.Fatalf("error = %v, want *timecode.RangeError", err)
	}
}

func TestRewrite(t *testing.T) {
	line, err := ParseLine("00:00:01:00\t94ae 9420 9152 c8e5\r\n", timecode.DefaultRate)
	if err != nil {
		t.Fatalf("ParseLine error: %v", err)
	}
	tc, _ := line.Timecode.SubtractFrames(2)

	if got := line.Rewrite(tc, true); got != "00:00:00;28\t94ae 9420 9152 c8e5\r\n" {
		t.Errorf("Rewrite(drop) = %q", got)
	}
	if got := line.Rewrite(tc, false); got != "00:00:00:28\t94ae 9420 9152 c8e5\r\n" {
		t.Errorf("Rewrite(non-drop) = %q", got)
	}
}
