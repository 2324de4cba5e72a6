// Package position provides source location tracking for the astroid
// analysis library. Every syntax node carries a Span so that lookup
// filtering and diagnostics can reason about source order.
package position

import (
	"fmt"
	"path/filepath"
)

// Position is a single point in a source file.
type Position struct {
	Filename string // source file name, may be empty for synthetic nodes
	Line     int    // 1-based line number
	Column   int    // 1-based column number
	Offset   int    // 0-based byte offset in the file
}

// IsValid reports whether the position refers to an actual source location.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0 && p.Offset >= 0
}

// Before reports whether p comes before other in source order.
// Positions in different files order by file name.
func (p Position) Before(other Position) bool {
	if p.Filename != other.Filename {
		return p.Filename < other.Filename
	}
	return p.Offset < other.Offset
}

// After reports whether p comes after other in source order.
func (p Position) After(other Position) bool {
	return other.Before(p)
}

func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", filepath.Base(p.Filename), p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span is a half-open range of source text: [Start, End).
type Span struct {
	Start Position
	End   Position
}

// IsValid reports whether the span covers an actual source range.
func (s Span) IsValid() bool {
	return s.Start.IsValid() && s.End.IsValid() &&
		s.Start.Filename == s.End.Filename &&
		s.Start.Offset <= s.End.Offset
}

// Contains reports whether the span contains the given position.
func (s Span) Contains(pos Position) bool {
	if s.Start.Filename != pos.Filename {
		return false
	}
	return s.Start.Offset <= pos.Offset && pos.Offset < s.End.Offset
}

// Encloses reports whether the span fully contains other.
func (s Span) Encloses(other Span) bool {
	if s.Start.Filename != other.Start.Filename {
		return false
	}
	return s.Start.Offset <= other.Start.Offset && other.End.Offset <= s.End.Offset
}

func (s Span) String() string {
	if s.Start.Line == s.End.Line {
		return fmt.Sprintf("%s-%d", s.Start.String(), s.End.Column)
	}
	return fmt.Sprintf("%s-%d:%d", s.Start.String(), s.End.Line, s.End.Column)
}
