package caption

import (
	"encoding/hex"
	"strings"
)

// basic North American character set differences from ASCII
var basicCharset = map[byte]rune{
	0x2a: 'á',
	0x5c: 'é',
	0x5e: 'í',
	0x5f: 'ó',
	0x60: 'ú',
	0x7b: 'ç',
	0x7c: '÷',
	0x7d: 'Ñ',
	0x7e: 'ñ',
	0x7f: '█',
}

// DecodeText renders the displayable text of a pop-on caption. It is an
// approximation for previews: only the basic character set is decoded,
// preamble address codes become line breaks and other commands are dropped.
// Tokens must already have passed CountCharacters.
func DecodeText(tokens []string) string {
	tokens, err := Normalize(tokens)
	if err != nil {
		return ""
	}

	var sb strings.Builder
	skipped := 0
	prev := ""
	for _, tok := range tokens {
		if tok == prev {
			continue
		}
		prev = tok
		if skipped < len(preamble) {
			skipped++
			continue
		}

		raw, _ := hex.DecodeString(tok)
		if IsPositioning(tok) {
			// row addresses have the second byte in 0x40-0x7f
			if raw[1]&0x7f >= 0x40 && sb.Len() > 0 && !strings.HasSuffix(sb.String(), "\n") {
				sb.WriteByte('\n')
			}
			continue
		}
		for _, b := range raw {
			b &= 0x7f // strip odd parity
			if b < 0x20 {
				continue
			}
			if r, ok := basicCharset[b]; ok {
				sb.WriteRune(r)
				continue
			}
			sb.WriteByte(b)
		}
	}
	return strings.TrimSpace(sb.String())
}
