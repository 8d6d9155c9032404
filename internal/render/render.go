// Package render converts source files into HTML fragments for the Prism
// client-side highlighter.
//
// The output is a <pre> holding one or three <code> blocks:
//
//	no marker:        <code>all lines</code>
//	line marker:      <code>before</code> [panel] <code highlight>marked</code> <code>after</code>
//
// Every source character is escaped, so source text can never produce a tag.
// Titles and descriptions are sanitised against a small whitelist. The panel
// with the title sits between code blocks, never inside one, so the text of
// all <code> elements is exactly the source.
//
// A Renderer holds no mutable state and may be shared between goroutines.
package render

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/jpl-au/srcview/internal/marker"
)

// CSS classes consumed by the Prism plugins and the viewer stylesheet.
const (
	classLineNumbers  = "line-numbers"
	classMatchBraces  = "match-braces"
	classHighlight    = "highlight"
	classCodeMark     = "code-mark"
	classPanel        = "analysis-panel"
	classTitle        = "analysis-title"
	classWarningTitle = "analysis-warning-title"
	classDetail       = "analysis-detail"
	classCollapse     = "collapse-panel"
	classIcon         = "icon-md"
)

// defaultMaxLineLength bounds a single scanned line when no limit is given.
const defaultMaxLineLength = 10 * 1024 * 1024

// ImageResolver maps an abstract icon reference to an image URL.
type ImageResolver interface {
	ImagePath(icon string) string
}

// ImageResolverFunc adapts a function to ImageResolver.
type ImageResolverFunc func(icon string) string

// ImagePath calls f(icon).
func (f ImageResolverFunc) ImagePath(icon string) string { return f(icon) }

// identity returns icon references unchanged.
var identity = ImageResolverFunc(func(icon string) string { return icon })

// Renderer renders source files with an optional marker overlay.
type Renderer struct {
	images ImageResolver
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithImageResolver sets the resolver used for marker icons.
func WithImageResolver(r ImageResolver) Option {
	return func(rd *Renderer) {
		if r != nil {
			rd.images = r
		}
	}
}

// New creates a Renderer. Without options icons are used as URLs verbatim.
func New(opts ...Option) *Renderer {
	r := &Renderer{images: identity}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render converts lines into HTML, marking the region described by m.
//
// lines is consumed once. If it yields an error, Render returns plain text
// holding the error message and its stack trace instead of HTML.
func (r *Renderer) Render(fileName string, lines iter.Seq2[string, error], m marker.Marker) string {
	var out strings.Builder
	lang := Language(fileName)

	var err error
	if m.HasLines() {
		err = r.renderMarked(&out, lang, lines, m)
	} else {
		err = renderPlain(&out, lang, lines)
	}
	if err != nil {
		err = errors.Wrapf(err, "reading %s", fileName)
		return fmt.Sprintf("%s\n%+v", err.Error(), err)
	}
	return out.String()
}

// RenderString renders an in-memory source text.
func (r *Renderer) RenderString(fileName, source string, m marker.Marker) string {
	return r.Render(fileName, Lines(strings.NewReader(source), 0), m)
}

func renderPlain(out *strings.Builder, lang string, lines iter.Seq2[string, error]) error {
	out.WriteString("<pre>")
	openCode(out, lang, false)
	first := true
	for line, err := range lines {
		if err != nil {
			return err
		}
		if !first {
			out.WriteByte('\n')
		}
		first = false
		out.WriteString(Escape(line))
	}
	out.WriteString("</code></pre>")
	return nil
}

// Block phases of a marked rendering.
const (
	phaseBefore = iota
	phaseMarked
	phaseAfter
)

func (r *Renderer) renderMarked(out *strings.Builder, lang string, lines iter.Seq2[string, error], m marker.Marker) error {
	start, end := m.LineStart(), m.LineEnd()
	// Columns only apply to a single marked line
	markColumns := !m.IsMultiLine() && m.ColumnStart() > 0

	phase := phaseBefore
	advance := func(to int) {
		for phase < to {
			out.WriteString("</code>")
			phase++
			if phase == phaseMarked {
				if m.HasPanel() {
					r.writePanel(out, m)
				}
				openCode(out, lang, true)
			} else {
				openCode(out, lang, false)
			}
		}
	}

	out.WriteString("<pre>")
	openCode(out, lang, false)

	n := 0
	for line, err := range lines {
		if err != nil {
			return err
		}
		n++
		switch {
		case n > end:
			advance(phaseAfter)
		case n >= start:
			advance(phaseMarked)
		}

		if phase == phaseMarked && markColumns {
			out.WriteString(markLine(line, m.ColumnStart(), m.ColumnEnd()))
		} else {
			out.WriteString(Escape(line))
		}
		out.WriteByte('\n')
	}

	// Short files still get all three blocks
	advance(phaseAfter)
	out.WriteString("</code></pre>")
	return nil
}

// openCode writes the opening tag of a code block.
func openCode(out *strings.Builder, lang string, highlight bool) {
	classes := "language-" + Escape(lang) + " " + classLineNumbers
	if highlight {
		classes += " " + classHighlight
	}
	classes += " " + classMatchBraces
	fmt.Fprintf(out, `<code class="%s">`, classes)
}

// markLine escapes line and wraps the marked columns in a code-mark span.
func markLine(line string, start, end int) string {
	from, to, ok := columnRange(utf8.RuneCountInString(line), start, end)
	if !ok {
		return Escape(line)
	}
	before, marked, after := split(line, from, to)
	return Escape(before) + `<span class="` + classCodeMark + `">` + Escape(marked) + "</span>" + Escape(after)
}

// writePanel writes the title table and, when present, the collapsible
// description.
func (r *Renderer) writePanel(out *strings.Builder, m marker.Marker) {
	fmt.Fprintf(out, `<table class="%s"><tr class="%s">`, classPanel, classTitle)
	if m.Icon() != "" {
		fmt.Fprintf(out, `<td><img src="%s" class="%s"></td>`, Escape(r.images.ImagePath(m.Icon())), classIcon)
	}
	fmt.Fprintf(out, `<td class="%s">%s</td></tr></table>`, classWarningTitle, Sanitize(m.Title()))

	if m.Description() != "" {
		fmt.Fprintf(out, `<div class="%s"><div class="%s">%s</div></div>`,
			classCollapse, classDetail, Sanitize(m.Description()))
	}
}

// Lines adapts r into a lazy, single-pass line sequence. Line terminators
// (\n or \r\n) are removed. maxLineLength bounds a single line; 0 selects
// a 10 MB default. A line longer than the limit ends the sequence with
// bufio.ErrTooLong.
func Lines(r io.Reader, maxLineLength int) iter.Seq2[string, error] {
	if maxLineLength <= 0 {
		maxLineLength = defaultMaxLineLength
	}
	// The scanner limit is the larger of max and the initial capacity
	initial := min(64*1024, maxLineLength)
	return func(yield func(string, error) bool) {
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, initial), maxLineLength)
		for scanner.Scan() {
			if !yield(scanner.Text(), nil) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			yield("", err)
		}
	}
}
