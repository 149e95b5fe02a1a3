package splice

import "fmt"

// Code classifies a non-fatal observation made during splice assembly.
type Code string

const (
	// CodeMixedStrand: sub-intervals of a compound location disagree on
	// strand; sorting was abandoned in favor of input order.
	CodeMixedStrand Code = "mixed_strand"
	// CodeStrandMismatch: a sub-interval's strand differs from the feature's
	// nominal strand.
	CodeStrandMismatch Code = "strand_mismatch"
	// CodeRecordMismatch: a sub-interval references a source record other
	// than the feature's own.
	CodeRecordMismatch Code = "record_mismatch"
	// CodeRemoteUnavailable: a cross-record reference had no lookup
	// capability to resolve it; placeholder residues were substituted.
	CodeRemoteUnavailable Code = "remote_unavailable"
	// CodeRemoteLookupFailed: the lookup capability failed for a foreign
	// accession; placeholder residues were substituted.
	CodeRemoteLookupFailed Code = "remote_lookup_failed"
	// CodeNotAbsolute: the feature reports non-absolute coordinate
	// semantics; assembly proceeded on a best-effort basis.
	CodeNotAbsolute Code = "not_absolute"
)

// Warning is a non-fatal diagnostic recorded while assembling a spliced
// sequence. Assembly always continues past a warning; callers inspect the
// warning list to decide whether the degraded result is acceptable.
type Warning struct {
	Code    Code
	Message string
	// Err retains the underlying cause for lookup failures, nil otherwise.
	Err error
}

func (w Warning) String() string {
	if w.Err != nil {
		return fmt.Sprintf("%s: %s: %v", w.Code, w.Message, w.Err)
	}
	return fmt.Sprintf("%s: %s", w.Code, w.Message)
}
