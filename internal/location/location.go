// Package location models annotation feature extents: single contiguous
// intervals and compound (split) locations built from them.
package location

import "fmt"

// Strand marks which strand of the source record an interval lies on.
type Strand int8

const (
	// Unknown strand is treated as plus by consumers.
	Unknown Strand = 0
	// Plus is the forward strand.
	Plus Strand = 1
	// Minus is the reverse strand.
	Minus Strand = -1
)

// Effective returns the strand usable as a sort multiplier: Unknown maps to Plus.
func (s Strand) Effective() Strand {
	if s == 0 {
		return Plus
	}
	return s
}

// Location is an annotation extent: either a *Simple interval or a
// *Compound join of intervals. Every leaf reachable from a Compound must
// be Simple; exactly one level of nesting is supported.
type Location interface {
	// Len returns the total number of residues the location covers.
	Len() int
}

// Simple is a single contiguous interval on a source record.
// Coordinates are 1-based and inclusive.
type Simple struct {
	Start  int
	End    int
	Strand Strand
	// SeqID references a foreign source record when the interval lives on a
	// different record than its host feature. Empty for local intervals.
	SeqID string
}

// Len returns the interval length in residues.
func (l *Simple) Len() int {
	return l.End - l.Start + 1
}

func (l *Simple) String() string {
	s := fmt.Sprintf("%d..%d", l.Start, l.End)
	if l.Strand == Minus {
		s = "complement(" + s + ")"
	}
	if l.SeqID != "" {
		s = l.SeqID + ":" + s
	}
	return s
}

// Compound is an ordered set of locations representing a join/split.
type Compound struct {
	Parts []Location
}

// Len returns the sum of the part lengths.
func (c *Compound) Len() int {
	total := 0
	for _, p := range c.Parts {
		total += p.Len()
	}
	return total
}

// StructureError reports a location whose shape the splice engine cannot
// process: nesting deeper than one level, or an unrecognized location type.
type StructureError struct {
	Reason string
}

func (e *StructureError) Error() string {
	return "location structure: " + e.Reason
}
