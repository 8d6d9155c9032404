// column.go implements intra-line column marking.
//
// Separated from render.go because the boundary rules are subtle and tested
// on their own. Both the renderer and ColumnMarker share columnRange, so the
// HTML output and the sentinel form always agree on what gets marked.

package render

import "unicode/utf8"

// Sentinel prefixes used by NewColumnMarker.
const (
	openPrefix  = "OpEn"
	closePrefix = "ClOsE"
)

// ColumnMarker inserts Open and Close around a column range of a line.
type ColumnMarker struct {
	Open  string
	Close string
}

// NewColumnMarker returns a marker using the sentinel tokens "OpEn"+id and
// "ClOsE"+id.
func NewColumnMarker(id string) ColumnMarker {
	return ColumnMarker{Open: openPrefix + id, Close: closePrefix + id}
}

// Mark returns text with Open and Close inserted around columns
// [start, end] (1-based, inclusive, counted in characters). An end of 0
// extends the range to the end of the line. Out-of-range or inverted
// columns return text unchanged.
func (c ColumnMarker) Mark(text string, start, end int) string {
	from, to, ok := columnRange(utf8.RuneCountInString(text), start, end)
	if !ok {
		return text
	}
	before, marked, after := split(text, from, to)
	return before + c.Open + marked + c.Close + after
}

// columnRange converts 1-based inclusive columns into a half-open rune range
// [from, to) for a line of the given length.
//
//	start <= 0 or end < 0           -> no mark
//	start > length                  -> no mark
//	end != 0 and end < start        -> no mark
//	end > length                    -> no mark
//	end == 0 or end == length       -> start to end of line
//	otherwise                       -> start to end inclusive
func columnRange(length, start, end int) (from, to int, ok bool) {
	switch {
	case start <= 0 || end < 0:
		return 0, 0, false
	case start > length:
		return 0, 0, false
	case end != 0 && end < start:
		return 0, 0, false
	case end > length:
		return 0, 0, false
	case end == 0 || end == length:
		return start - 1, length, true
	default:
		return start - 1, end, true
	}
}

// split cuts text into three parts at rune offsets from and to. An invalid
// byte counts as one rune, matching utf8.RuneCountInString. The parts are
// slices of text, so concatenating them yields text byte for byte.
func split(text string, from, to int) (before, marked, after string) {
	lo, hi := len(text), len(text)
	for i, n := 0, 0; ; n++ {
		if n == from {
			lo = i
		}
		if n == to {
			hi = i
			break
		}
		if i >= len(text) {
			break
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	return text[:lo], text[lo:hi], text[hi:]
}
