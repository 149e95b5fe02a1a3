// Package splice assembles the effective sequence implied by a feature
// whose extent is a compound (split) location: a spliced transcript built
// from several exon intervals, possibly on different source records and
// different strands.
package splice

import (
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"spliceseq/internal/location"
	"spliceseq/internal/seq"
)

// SplicedSuffix marks a derived spliced product on the result's display id.
const SplicedSuffix = "_spliced"

// Placeholder is the unknown-residue character substituted for sequence
// segments that could not be resolved.
const Placeholder = 'N'

// Feature is what the splicer needs from an annotation feature. Format
// parsers provide richer types; the splicer consumes them read-only.
type Feature interface {
	Location() location.Location
	SeqID() string
	Record() *seq.Record
}

// Absoluter is implemented by features that can report whether their
// coordinates are relative to the start of their source record.
type Absoluter interface {
	Absolute() bool
}

// Splicer resolves spliced sequences from features with compound locations.
type Splicer struct {
	lookup        Lookup
	preserveOrder bool
	logger        *zap.Logger
}

// NewSplicer creates a splicer with no remote lookup capability.
func NewSplicer() *Splicer {
	return &Splicer{logger: zap.NewNop()}
}

// SetLookup supplies the capability used to resolve sub-intervals that
// reference a foreign source record.
func (s *Splicer) SetLookup(l Lookup) {
	s.lookup = l
}

// SetPreserveOrder configures the splicer to assemble sub-intervals in their
// original input order instead of sorting them 5'->3'.
func (s *Splicer) SetPreserveOrder(preserve bool) {
	s.preserveOrder = preserve
}

// SetLogger sets the logger for warning messages.
func (s *Splicer) SetLogger(l *zap.Logger) {
	s.logger = l
}

// Splice assembles the feature's spliced sequence. The returned record's
// display id is the host record's display id with the SplicedSuffix.
//
// Only structural problems abort: a compound location nested deeper than one
// level, an unrecognized location type, or a feature without an attached
// sequence. Everything else degrades into a best-effort sequence containing
// placeholder runs, reported through the returned warnings.
func (s *Splicer) Splice(f Feature) (*seq.Record, []Warning, error) {
	host := f.Record()
	if host == nil {
		return nil, nil, fmt.Errorf("feature on %s has no attached sequence", f.SeqID())
	}

	var warns []Warning
	if a, ok := f.(Absoluter); ok && !a.Absolute() {
		warns = s.warn(warns, Warning{
			Code:    CodeNotAbsolute,
			Message: fmt.Sprintf("feature on %s does not use absolute coordinates; result may be shifted", f.SeqID()),
		})
	}

	// Fast path: an atomic location needs no splicing at all.
	if l, ok := f.Location().(*location.Simple); ok {
		sub, err := host.Subsequence(l.Start, l.End)
		if err != nil {
			return nil, warns, err
		}
		if l.Strand == location.Minus {
			sub = seq.ReverseComplement(sub)
		}
		return &seq.Record{ID: host.ID + SplicedSuffix, Seq: sub}, warns, nil
	}

	norm, err := location.Normalize(f.Location(), s.preserveOrder)
	if err != nil {
		return nil, warns, err
	}
	if norm.Mixed {
		warns = s.warn(warns, Warning{
			Code:    CodeMixedStrand,
			Message: fmt.Sprintf("sub-intervals on %s have mixed strands; assembling in input order", f.SeqID()),
		})
	}

	lookup := s.lookup
	if lookup != nil {
		// One memoizing wrapper per splice operation: repeated references to
		// the same foreign record incur at most one fetch.
		lookup = newMemoLookup(lookup)
	}

	assembled := ""
	for _, part := range norm.Parts {
		if part.Strand != norm.Nominal {
			warns = s.warn(warns, Warning{
				Code:    CodeStrandMismatch,
				Message: fmt.Sprintf("sub-interval %s differs from nominal strand %d", part, norm.Nominal),
			})
		}

		raw, ws, err := s.resolve(part, f, host, lookup)
		warns = append(warns, ws...)
		if err != nil {
			return nil, warns, err
		}

		if part.Strand == location.Minus {
			rc := seq.ReverseComplement(raw)
			if norm.Sorted {
				assembled += rc
			} else {
				// Un-sorted reverse-strand exon lists are given 3'->5'; prepend
				// to re-thread the output 5'->3'.
				assembled = rc + assembled
			}
		} else {
			assembled += raw
		}
	}

	return &seq.Record{ID: host.ID + SplicedSuffix, Seq: assembled}, warns, nil
}

// reVersion matches a trailing version suffix on an accession (e.g. the
// ".1" in X77802.1). Version-qualified accessions are not always resolvable
// directly, so the version is stripped before lookup.
var reVersion = regexp.MustCompile(`\.\d+$`)

// resolve obtains the raw subsequence for one atomic sub-interval, from the
// host record or through the lookup capability for cross-record references.
func (s *Splicer) resolve(part *location.Simple, f Feature, host *seq.Record, lookup Lookup) (string, []Warning, error) {
	if part.SeqID == "" || part.SeqID == f.SeqID() || part.SeqID == host.ID {
		sub, err := host.Subsequence(part.Start, part.End)
		if err != nil {
			return "", nil, fmt.Errorf("sub-interval %s: %w", part, err)
		}
		return sub, nil, nil
	}

	var warns []Warning
	warns = s.warn(warns, Warning{
		Code:    CodeRecordMismatch,
		Message: fmt.Sprintf("sub-interval %s references a record other than host %s", part, f.SeqID()),
	})

	if lookup == nil {
		warns = s.warn(warns, Warning{
			Code:    CodeRemoteUnavailable,
			Message: fmt.Sprintf("cannot resolve remote location %s without a lookup capability", part),
		})
		return placeholder(part.Len()), warns, nil
	}

	accession := reVersion.ReplaceAllString(part.SeqID, "")
	rec, err := lookup.FetchByAccession(accession)
	if err == nil {
		var sub string
		sub, err = rec.Subsequence(part.Start, part.End)
		if err == nil {
			return sub, warns, nil
		}
	}

	// Placeholder of the sub-interval's own length, so the splice length
	// invariant holds.
	warns = s.warn(warns, Warning{
		Code:    CodeRemoteLookupFailed,
		Message: fmt.Sprintf("lookup of %s for sub-interval %s failed", accession, part),
		Err:     err,
	})
	return placeholder(part.Len()), warns, nil
}

func placeholder(n int) string {
	return strings.Repeat(string(Placeholder), n)
}

func (s *Splicer) warn(warns []Warning, w Warning) []Warning {
	s.logger.Warn(w.Message, zap.String("code", string(w.Code)), zap.Error(w.Err))
	return append(warns, w)
}
