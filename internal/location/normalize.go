package location

import (
	"fmt"
	"sort"
)

// Normalized is the ordered, strand-aware view of a location produced by
// Normalize.
type Normalized struct {
	// Parts holds the atomic sub-intervals in assembly order.
	Parts []*Simple
	// Nominal is the feature's nominal strand, taken from the first
	// sub-interval in input order.
	Nominal Strand
	// Mixed is set when sub-intervals disagree on strand. The sort is
	// abandoned in that case and Parts keeps the original input order.
	Mixed bool
	// Sorted reports whether Parts is in sorted (5'->3') order rather than
	// original input order.
	Sorted bool
}

// Normalize flattens a location into an ordered sequence of atomic
// sub-intervals.
//
// A Simple location yields a single-element result. A Compound location is
// flattened exactly one level; a Compound child is a StructureError. Unless
// preserveOrder is set, children are sorted by start * strand ascending so
// the result reads 5'->3' along the feature's strand. Sorting strand-mixed
// children by that single-strand key is meaningless, so a strand
// disagreement abandons the sort and keeps input order.
func Normalize(loc Location, preserveOrder bool) (*Normalized, error) {
	switch l := loc.(type) {
	case *Simple:
		return &Normalized{Parts: []*Simple{l}, Nominal: l.Strand, Sorted: !preserveOrder}, nil
	case *Compound:
		return normalizeCompound(l, preserveOrder)
	default:
		return nil, &StructureError{Reason: fmt.Sprintf("unrecognized location type %T", loc)}
	}
}

func normalizeCompound(c *Compound, preserveOrder bool) (*Normalized, error) {
	if len(c.Parts) == 0 {
		return nil, &StructureError{Reason: "compound location has no sub-intervals"}
	}

	parts := make([]*Simple, len(c.Parts))
	for i, p := range c.Parts {
		s, ok := p.(*Simple)
		if !ok {
			return nil, &StructureError{Reason: fmt.Sprintf("sub-interval %d is not atomic: nesting deeper than one level is unsupported", i)}
		}
		parts[i] = s
	}

	n := &Normalized{Parts: parts, Nominal: parts[0].Strand}
	if preserveOrder {
		return n, nil
	}

	for _, p := range parts[1:] {
		if p.Strand != n.Nominal {
			n.Mixed = true
			return n, nil
		}
	}

	sort.SliceStable(n.Parts, func(i, j int) bool {
		a := n.Parts[i].Start * int(n.Parts[i].Strand.Effective())
		b := n.Parts[j].Start * int(n.Parts[j].Strand.Effective())
		return a < b
	})
	n.Sorted = true
	return n, nil
}
