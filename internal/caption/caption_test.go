package caption

import (
	"errors"
	"strings"
	"testing"
)

func TestCountCharacters(t *testing.T) {
	tests := []struct {
		name   string
		tokens string
		want   int
	}{
		{
			name:   "duplicate text token counted once",
			tokens: "94ae 9420 9152 4865 6c6c 6c6c",
			want:   4,
		},
		{
			name:   "doubled control codes",
			tokens: "94ae 94ae 9420 9420 9452 9452 c8e5 ecec ef80 942f 942f",
			want:   5,
		},
		{
			name:   "filler bytes ignored",
			tokens: "94ae 9420 9470 8080 c880",
			want:   1,
		},
		{
			name:   "mid caption positioning counts zero",
			tokens: "94ae 9420 1340 c8e9 13e0 f4e8 e5f2 e580",
			want:   7,
		},
		{
			name:   "upper case tokens",
			tokens: "94AE 9420 9152 C8E5",
			want:   2,
		},
		{
			name:   "preamble only",
			tokens: "94ae 9420 9152 942f",
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CountCharacters(strings.Fields(tt.tokens))
			if err != nil {
				t.Fatalf("CountCharacters error: %v", err)
			}
			if got != tt.want {
				t.Errorf("CountCharacters(%q) = %d, want %d", tt.tokens, got, tt.want)
			}
		})
	}
}

func TestCountCharactersPreambleErrors(t *testing.T) {
	tests := []struct {
		name     string
		tokens   string
		position int
	}{
		{"missing ENM", "9420 9152 c8e5", 0},
		{"roll-up caption", "9425 9425 94ad c8e5", 0},
		{"missing RCL", "94ae 9152 c8e5", 1},
		{"text instead of PAC", "94ae 9420 c8e5", 2},
		{"truncated", "94ae 94ae 9420", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CountCharacters(strings.Fields(tt.tokens))
			var preambleErr *PreambleError
			if !errors.As(err, &preambleErr) {
				t.Fatalf("error = %v, want *PreambleError", err)
			}
			if preambleErr.Position != tt.position {
				t.Errorf("position = %d, want %d", preambleErr.Position, tt.position)
			}
		})
	}
}

func TestCountCharactersInvalidToken(t *testing.T) {
	for _, tokens := range []string{"94ae 9420 9152 c8e", "94ae 9420 9152 zzzz"} {
		_, err := CountCharacters(strings.Fields(tokens))
		var tokenErr *TokenError
		if !errors.As(err, &tokenErr) {
			t.Errorf("CountCharacters(%q) error = %v, want *TokenError", tokens, err)
		}
	}
}

func TestIsClear(t *testing.T) {
	if !IsClear([]string{"942c", "942c"}) {
		t.Error("942c should be a clear")
	}
	if !IsClear([]string{"942C"}) {
		t.Error("upper case 942C should be a clear")
	}
	if IsClear([]string{"94ae", "942c"}) || IsClear(nil) {
		t.Error("only a leading 942c is a clear")
	}
}

func TestDecodeText(t *testing.T) {
	tests := []struct {
		name   string
		tokens string
		want   string
	}{
		{"hello", "94ae 94ae 9420 9420 9452 9452 c8e5 ecec ef80 942f 942f", "Hello"},
		{"two rows", "94ae 9420 1340 c8e9 13e0 f4e8 e5f2 e580 942f", "Hi\nthere"},
		{"special characters", "94ae 9420 9152 2a5c 7e80", "áéñ"},
		{"mid-row code dropped", "94ae 9420 9152 c8e9 9120 ef80", "Hio"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeText(strings.Fields(tt.tokens)); got != tt.want {
				t.Errorf("DecodeText(%q) = %q, want %q", tt.tokens, got, tt.want)
			}
		})
	}
}
