// Package lexer converts CSL source text into a stream of typed tokens.
package lexer

import "fmt"

// Position is a half-open, zero-based (line, column) location in source text.
type Position struct {
	Line   uint32
	Column uint32
}

// Less reports whether p sorts strictly before other.
func (p Position) Less(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Column < other.Column
}

// LessEqual reports whether p sorts at or before other.
func (p Position) LessEqual(other Position) bool {
	return p == other || p.Less(other)
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Region is a half-open [Start, End) span of source text.
type Region struct {
	Start Position
	End   Position
}

// Contains reports whether p falls within the region, end-exclusive.
func (r Region) Contains(p Position) bool {
	return r.Start.LessEqual(p) && p.Less(r.End)
}

// LineSpan is the number of lines the region crosses.
func (r Region) LineSpan() int {
	return int(r.End.Line) - int(r.Start.Line)
}

// ColSpan is the column delta between start and end, meaningful only when
// the region does not cross a line.
func (r Region) ColSpan() int {
	return int(r.End.Column) - int(r.Start.Column)
}

func (r Region) String() string {
	return fmt.Sprintf("%s-%s", r.Start, r.End)
}

// Join returns the smallest region covering both a and b.
func Join(a, b Region) Region {
	start, end := a.Start, a.End
	if b.Start.Less(start) {
		start = b.Start
	}
	if end.Less(b.End) {
		end = b.End
	}
	return Region{Start: start, End: end}
}
