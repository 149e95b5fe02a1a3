// Package feature provides annotation feature capabilities and a generic
// implementation composed from them.
package feature

import (
	"spliceseq/internal/location"
	"spliceseq/internal/seq"
)

// Located is the capability of having an extent on a source record.
type Located interface {
	Location() location.Location
	SeqID() string
}

// Tagged is the capability of carrying qualifier tags (key/value pairs such
// as /gene="DRD4").
type Tagged interface {
	HasTag(name string) bool
	Tag(name string) []string
	AddTag(name, value string)
}

// Annotatable is the capability of exposing free-form annotations.
type Annotatable interface {
	Annotations() map[string][]string
}

// Generic is a concrete feature as produced by a format parser. It composes
// the Located and Tagged capabilities and optionally carries the whole
// sequence of its source record.
type Generic struct {
	// Key is the feature key from the annotation source (CDS, mRNA, gene).
	Key string
	// Loc is the feature's extent.
	Loc location.Location
	// Rec is the attached whole-record sequence, nil when the source had no
	// sequence section.
	Rec *seq.Record
	// ID is the identity of the source record the feature belongs to.
	ID string

	tags     map[string][]string
	tagOrder []string
	absolute bool
}

// NewGeneric creates a feature with absolute coordinate semantics.
func NewGeneric(key string, loc location.Location, rec *seq.Record, id string) *Generic {
	return &Generic{Key: key, Loc: loc, Rec: rec, ID: id, absolute: true}
}

// Location returns the feature's extent.
func (g *Generic) Location() location.Location { return g.Loc }

// SeqID returns the identity of the feature's source record.
func (g *Generic) SeqID() string { return g.ID }

// Record returns the attached whole-record sequence, or nil.
func (g *Generic) Record() *seq.Record { return g.Rec }

// Absolute reports whether the feature's coordinates are relative to the
// start of its source record.
func (g *Generic) Absolute() bool { return g.absolute }

// SetAbsolute marks the feature's coordinate semantics.
func (g *Generic) SetAbsolute(absolute bool) { g.absolute = absolute }

// HasTag reports whether the feature carries the named tag.
func (g *Generic) HasTag(name string) bool {
	_, ok := g.tags[name]
	return ok
}

// Tag returns all values of the named tag, or nil.
func (g *Generic) Tag(name string) []string {
	return g.tags[name]
}

// AddTag appends a value to the named tag.
func (g *Generic) AddTag(name, value string) {
	if g.tags == nil {
		g.tags = make(map[string][]string)
	}
	if _, ok := g.tags[name]; !ok {
		g.tagOrder = append(g.tagOrder, name)
	}
	g.tags[name] = append(g.tags[name], value)
}

// TagNames returns tag names in the order they were first added.
func (g *Generic) TagNames() []string {
	return g.tagOrder
}

// Annotations exposes the feature's tags as annotations.
func (g *Generic) Annotations() map[string][]string {
	return g.tags
}

// Length returns the number of residues the feature covers.
func (g *Generic) Length() int {
	if g.Loc == nil {
		return 0
	}
	return g.Loc.Len()
}
