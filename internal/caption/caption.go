package caption

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// CEA-608 command codes as they appear in Scenarist files, parity included.
const (
	Filler = "80"

	ENM = "94ae" // erase non-displayed memory
	RCL = "9420" // resume caption loading
	EOC = "942f" // end of caption
	EDM = "942c" // erase displayed memory
)

// first bytes of preamble address codes and other positioning commands
var pacFirstBytes = map[string]bool{
	"91": true,
	"92": true,
	"15": true,
	"16": true,
	"97": true,
	"10": true,
	"13": true,
	"94": true,
}

// PreambleError is returned when a pop-on caption does not start with
// ENM, RCL and a positioning code.
type PreambleError struct {
	Position int
	Token    string // empty when the caption ended early
	Want     string
}

func (e *PreambleError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("caption preamble truncated: missing %s at position %d", e.Want, e.Position)
	}
	return fmt.Sprintf("caption preamble mismatch at position %d: got %s, want %s", e.Position, e.Token, e.Want)
}

// TokenError is returned for a token that is not a 2-byte hex string.
type TokenError struct {
	Index int
	Token string
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("invalid caption token %q at position %d: want 4 hex digits", e.Token, e.Index)
}

// IsPositioning reports whether the token is a positioning command.
func IsPositioning(token string) bool {
	return len(token) >= 2 && pacFirstBytes[strings.ToLower(token[:2])]
}

// IsClear reports whether the token list starts with an erase displayed memory command.
func IsClear(tokens []string) bool {
	return len(tokens) > 0 && strings.ToLower(tokens[0]) == EDM
}

var preamble = []struct {
	want  string
	match func(string) bool
}{
	{ENM, func(tok string) bool { return tok == ENM }},
	{RCL, func(tok string) bool { return tok == RCL }},
	{"positioning code", IsPositioning},
}

// Normalize lower-cases the tokens and checks each one is a 2-byte hex value.
func Normalize(tokens []string) ([]string, error) {
	out := make([]string, 0, len(tokens))
	for i, tok := range tokens {
		tok = strings.ToLower(tok)
		if len(tok) != 4 {
			return nil, &TokenError{Index: i, Token: tok}
		}
		if _, err := hex.DecodeString(tok); err != nil {
			return nil, &TokenError{Index: i, Token: tok}
		}
		out = append(out, tok)
	}
	return out, nil
}

// CountCharacters validates a pop-on caption's preamble and returns the number
// of displayed characters in its command stream.
//
// A token immediately repeated is a transmission duplicate and is skipped.
// Positioning commands count zero; every other token counts each byte that is
// not filler.
func CountCharacters(tokens []string) (int, error) {
	tokens, err := Normalize(tokens)
	if err != nil {
		return 0, err
	}

	count := 0
	state := 0
	prev := ""
	for _, tok := range tokens {
		if tok == prev {
			continue
		}
		prev = tok

		if state < len(preamble) {
			if !preamble[state].match(tok) {
				return 0, &PreambleError{Position: state, Token: tok, Want: preamble[state].want}
			}
			state++
			continue
		}
		count += countToken(tok)
	}

	if state < len(preamble) {
		return 0, &PreambleError{Position: state, Want: preamble[state].want}
	}
	return count, nil
}

func countToken(tok string) int {
	if IsPositioning(tok) {
		return 0
	}
	n := 0
	for _, b := range []string{tok[0:2], tok[2:4]} {
		if b != Filler {
			n++
		}
	}
	return n
}
