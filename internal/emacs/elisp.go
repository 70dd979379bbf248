package emacs

import (
	"fmt"
	"strings"
)

// quoteString renders s as an elisp string literal. Backslashes and double
// quotes are escaped; newlines are kept escaped too so the generated form
// stays on one line.
func quoteString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// decodeString parses the printed representation emacsclient returns for a
// string result. "nil" decodes to the empty string, matching how elisp
// reports an absent value.
func decodeString(out string) (string, error) {
	out = strings.TrimSpace(out)
	if out == "nil" {
		return "", nil
	}
	if len(out) < 2 || out[0] != '"' || out[len(out)-1] != '"' {
		return "", fmt.Errorf("not a string result: %q", out)
	}
	body := out[1 : len(out)-1]
	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(body) {
			return "", fmt.Errorf("truncated escape in result: %q", out)
		}
		switch body[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		default:
			// \" and \\ and anything else print the escaped byte itself.
			b.WriteByte(body[i])
		}
	}
	return b.String(), nil
}
