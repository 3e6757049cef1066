package rtfmt

import (
	"strings"

	"github.com/clipperhouse/uax29/v2/graphemes"
	"github.com/mattn/go-runewidth"
)

// pad fills s out to width display columns. Widths are terminal display
// widths, so full-width characters count as two columns.
func pad(s string, width int, fill rune, align byte) string {
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	switch align {
	case '>':
		return strings.Repeat(string(fill), gap) + s
	case '^':
		left := gap / 2
		return strings.Repeat(string(fill), left) + s + strings.Repeat(string(fill), gap-left)
	default:
		return s + strings.Repeat(string(fill), gap)
	}
}

// zeroPad right-aligns s in width columns, filling with zeros after any sign
// and radix prefix so that "-0x2a" pads to "-0x002a", not "00-0x2a".
func zeroPad(s string, width int) string {
	sign := ""
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		sign, s = s[:1], s[1:]
	}
	prefix := ""
	for _, p := range [...]string{"0x", "0X", "0o", "0b"} {
		if strings.HasPrefix(s, p) {
			prefix, s = p, s[len(p):]
			break
		}
	}
	if gap := width - len(sign) - len(prefix) - runewidth.StringWidth(s); gap > 0 {
		s = strings.Repeat("0", gap) + s
	}
	return sign + prefix + s
}

// truncateGraphemes cuts s after n grapheme clusters, so a precision of 3
// never splits a combining sequence the way a byte or rune cut could.
func truncateGraphemes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	end := 0
	count := 0
	g := graphemes.FromString(s)
	for g.Next() {
		count++
		end += len(g.Value())
		if count == n {
			break
		}
	}
	if end >= len(s) {
		return s
	}
	return s[:end]
}
