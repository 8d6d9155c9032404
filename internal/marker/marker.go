// Package marker describes the region of a source file to annotate.
//
// A Marker is immutable once built. Use the fluent Builder:
//
//	m := marker.NewBuilder().
//		LineStart(5).
//		ColumnStart(11).
//		ColumnEnd(25).
//		Title("Unnecessary move").
//		Build()
//
// Lines and columns are 1-based and inclusive. Zero means "unset": a zero
// LineStart disables the marker entirely (columns and the title panel are
// ignored), and a zero ColumnEnd extends the marked columns to the end of the
// line.
package marker

// Marker is an annotated region: a line range, an optional column range on a
// single line, and the title, description and icon shown beside it.
type Marker struct {
	lineStart   int
	lineEnd     int
	columnStart int
	columnEnd   int
	title       string
	description string
	icon        string
}

// LineStart returns the first marked line (0 = no marker).
func (m Marker) LineStart() int { return m.lineStart }

// LineEnd returns the last marked line. An end before the start is treated
// as the start, so single-line markers need only LineStart.
func (m Marker) LineEnd() int {
	if m.lineEnd < m.lineStart {
		return m.lineStart
	}
	return m.lineEnd
}

// ColumnStart returns the first marked column (0 = no column marking).
func (m Marker) ColumnStart() int { return m.columnStart }

// ColumnEnd returns the last marked column (0 = end of line).
func (m Marker) ColumnEnd() int { return m.columnEnd }

// Title returns the raw (unsanitised) title.
func (m Marker) Title() string { return m.title }

// Description returns the raw (unsanitised) description.
func (m Marker) Description() string { return m.description }

// Icon returns the abstract icon reference.
func (m Marker) Icon() string { return m.icon }

// HasLines reports whether the marker selects any line.
func (m Marker) HasLines() bool { return m.lineStart > 0 }

// IsMultiLine reports whether the marker spans more than one line.
func (m Marker) IsMultiLine() bool { return m.HasLines() && m.LineEnd() > m.lineStart }

// HasPanel reports whether a title panel should be shown for the marker.
func (m Marker) HasPanel() bool {
	return m.HasLines() && (m.title != "" || m.description != "" || m.icon != "")
}

// Builder constructs a Marker. Repeated setters overwrite earlier values.
// The zero value is ready to use.
type Builder struct {
	m Marker
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// LineStart sets the first marked line.
func (b *Builder) LineStart(n int) *Builder {
	b.m.lineStart = nonNegative(n)
	return b
}

// LineEnd sets the last marked line.
func (b *Builder) LineEnd(n int) *Builder {
	b.m.lineEnd = nonNegative(n)
	return b
}

// ColumnStart sets the first marked column.
func (b *Builder) ColumnStart(n int) *Builder {
	b.m.columnStart = nonNegative(n)
	return b
}

// ColumnEnd sets the last marked column.
func (b *Builder) ColumnEnd(n int) *Builder {
	b.m.columnEnd = nonNegative(n)
	return b
}

// Title sets the title. It may contain HTML; the renderer sanitises it.
func (b *Builder) Title(s string) *Builder {
	b.m.title = s
	return b
}

// Description sets the description. It may contain HTML; the renderer
// sanitises it.
func (b *Builder) Description(s string) *Builder {
	b.m.description = s
	return b
}

// Icon sets the icon reference resolved by the renderer's ImageResolver.
func (b *Builder) Icon(s string) *Builder {
	b.m.icon = s
	return b
}

// Build returns the Marker. The Builder may be reused afterwards without
// affecting markers already built.
func (b *Builder) Build() Marker {
	return b.m
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
