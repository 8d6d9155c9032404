package render

import (
	"iter"
	"slices"
	"strings"
	"testing"

	"github.com/jpl-au/srcview/internal/marker"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"golang.org/x/net/html"
)

// hostile fragments mixed into generated source lines
var hostile = gen.OneConstOf(
	"<script>alert(1)</script>",
	`"><img src=x onerror=alert(1)>`,
	"</code></pre><script>",
	"&lt;script&gt;",
	"a < b && c > d",
	"it's \"quoted\"",
)

func sourceLines() gopter.Gen {
	return gen.SliceOf(gen.OneGenOf(gen.AlphaString(), hostile))
}

func seq(lines []string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for _, l := range lines {
			if !yield(l, nil) {
				return
			}
		}
	}
}

func buildMarker(start, span, col int, title string) marker.Marker {
	return marker.NewBuilder().
		LineStart(start).
		LineEnd(start + span).
		ColumnStart(col).
		Title(title).
		Description(title).
		Build()
}

// codeText parses out and concatenates the text of every <code> element.
func codeText(out string) (string, bool) {
	doc, err := html.Parse(strings.NewReader(out))
	if err != nil {
		return "", false
	}
	var b strings.Builder
	for n := range doc.Descendants() {
		if n.Type == html.ElementNode && n.Data == "code" {
			for c := range n.Descendants() {
				if c.Type == html.TextNode {
					b.WriteString(c.Data)
				}
			}
		}
	}
	return b.String(), true
}

func TestRenderProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)
	r := New(WithImageResolver(stubImages))

	// Property: no source text or title can produce a script tag
	properties.Property("no unescaped script", prop.ForAll(
		func(lines []string, start, span, col int, title string) bool {
			out := r.Render("x.html", seq(lines), buildMarker(start, span, col, title))
			return !strings.Contains(strings.ToLower(out), "<script")
		},
		sourceLines(),
		gen.IntRange(0, 12),
		gen.IntRange(0, 3),
		gen.IntRange(0, 8),
		hostile,
	))

	// Property: the text of the code blocks is the source
	properties.Property("code text equals source", prop.ForAll(
		func(lines []string, start, span, col int) bool {
			m := buildMarker(start, span, col, "title")
			got, ok := codeText(r.Render("x.java", seq(lines), m))
			if !ok {
				return false
			}
			return squash(got) == squash(strings.Join(lines, "\n"))
		},
		sourceLines(),
		gen.IntRange(0, 12),
		gen.IntRange(0, 3),
		gen.IntRange(0, 8),
	))

	// Property: at most one block is highlighted, and only with a marker
	properties.Property("single highlight block", prop.ForAll(
		func(lines []string, start, span int) bool {
			out := r.Render("x.c", seq(lines), buildMarker(start, span, 0, ""))
			n := strings.Count(out, " highlight ")
			if start == 0 {
				return n == 0 && strings.Count(out, "<code") == 1
			}
			return n == 1 && strings.Count(out, "<code") == 3
		},
		sourceLines(),
		gen.IntRange(0, 12),
		gen.IntRange(0, 3),
	))

	// Property: the column marker only inserts its tokens
	properties.Property("column marker preserves text", prop.ForAll(
		func(text string, start, end int) bool {
			cm := NewColumnMarker("MARK")
			marked := cm.Mark(text, start, end)
			stripped := strings.ReplaceAll(strings.ReplaceAll(marked, cm.Open, ""), cm.Close, "")
			return stripped == text
		},
		gen.AlphaString(),
		gen.IntRange(-3, 40),
		gen.IntRange(-3, 40),
	))

	// Property: arbitrary bytes, valid UTF-8 or not, survive marking
	properties.Property("column marker preserves bytes", prop.ForAll(
		func(raw []byte, start, end int) bool {
			text := string(raw)
			cm := NewColumnMarker("MARK")
			marked := cm.Mark(text, start, end)
			stripped := strings.ReplaceAll(strings.ReplaceAll(marked, cm.Open, ""), cm.Close, "")
			return stripped == text
		},
		gen.SliceOf(gen.UInt8Range(0x80, 0xff)),
		gen.IntRange(-3, 40),
		gen.IntRange(-3, 40),
	))

	properties.TestingRun(t)
}

func TestRenderProperties_Lines(t *testing.T) {
	// Sanity check for the generators above
	lines := []string{"<script>alert(1)</script>", "ok"}
	out := New().Render("x.html", seq(lines), marker.NewBuilder().Build())
	got, ok := codeText(out)
	if !ok || got != strings.Join(lines, "\n") {
		t.Errorf("codeText() = %q, %v", got, ok)
	}
	if !slices.Equal(lines, []string{"<script>alert(1)</script>", "ok"}) {
		t.Error("seq mutated its input")
	}
}
