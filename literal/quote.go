package literal

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

var simpleEscapes = map[byte]byte{
	'\\': '\\',
	'\'': '\'',
	'"':  '"',
	'a':  '\a',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'v':  '\v',
}

// requote rewrites every quoted string in s, in either quoting style, as a
// double-quoted string holding the decoded value. Text outside strings is
// copied unchanged.
func requote(s string) (string, error) {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		c := s[i]
		if c != '\'' && c != '"' {
			b.WriteByte(c)
			i++
			continue
		}
		val, n, err := unquote(s[i:])
		if err != nil {
			return "", errors.Wrapf(err, "string at offset %d", i)
		}
		b.WriteString(strconv.Quote(val))
		i += n
	}
	return b.String(), nil
}

// unquote decodes the string literal at the start of s and returns its value
// and the number of bytes it spans, closing quote included.
func unquote(s string) (string, int, error) {
	q := s[0]
	var b strings.Builder
	for i := 1; i < len(s); {
		c := s[i]
		switch {
		case c == q:
			return b.String(), i + 1, nil
		case c == '\n':
			return "", 0, errors.New("newline in string")
		case c != '\\':
			b.WriteByte(c)
			i++
		default:
			n, err := unescape(&b, s[i:])
			if err != nil {
				return "", 0, err
			}
			i += n
		}
	}
	return "", 0, errors.New("unterminated string")
}

// unescape decodes the escape sequence at the start of s into b. Unknown
// escapes are kept as written, backslash included.
func unescape(b *strings.Builder, s string) (int, error) {
	if len(s) < 2 {
		return 0, errors.New("trailing backslash")
	}
	c := s[1]
	if r, ok := simpleEscapes[c]; ok {
		b.WriteByte(r)
		return 2, nil
	}
	switch c {
	case '\n':
		return 2, nil
	case 'x':
		return hexEscape(b, s, 2)
	case 'u':
		return hexEscape(b, s, 4)
	case 'U':
		return hexEscape(b, s, 8)
	}
	if c >= '0' && c <= '7' {
		n := 1
		for n < 3 && 1+n < len(s) && s[1+n] >= '0' && s[1+n] <= '7' {
			n++
		}
		v, _ := strconv.ParseUint(s[1:1+n], 8, 32)
		b.WriteRune(rune(v))
		return 1 + n, nil
	}
	b.WriteByte('\\')
	return 1, nil
}

func hexEscape(b *strings.Builder, s string, digits int) (int, error) {
	if len(s) < 2+digits {
		return 0, errors.Errorf("truncated \\%c escape", s[1])
	}
	v, err := strconv.ParseUint(s[2:2+digits], 16, 32)
	if err != nil {
		return 0, errors.Errorf("invalid \\%c escape %q", s[1], s[:2+digits])
	}
	if !utf8.ValidRune(rune(v)) {
		return 0, errors.Errorf("escape %q is not a valid code point", s[:2+digits])
	}
	b.WriteRune(rune(v))
	return 2 + digits, nil
}
