// Package seq provides sequence records and residue-level operations.
package seq

import "fmt"

// Record is an identified sequence of residues.
type Record struct {
	ID   string // Display id (e.g., X77802)
	Desc string // Optional free-text description
	Seq  string // Residues, 5'->3'
}

// Len returns the number of residues in the record.
func (r *Record) Len() int {
	return len(r.Seq)
}

// DisplayID returns the record's display id.
func (r *Record) DisplayID() string {
	return r.ID
}

// WholeSequence returns the full residue string.
func (r *Record) WholeSequence() string {
	return r.Seq
}

// Subsequence returns the residues in [start, end], 1-based inclusive,
// as is convention for biological coordinates.
func (r *Record) Subsequence(start, end int) (string, error) {
	if start < 1 || end > len(r.Seq) || start > end {
		return "", &OutOfRangeError{Start: start, End: end, Len: len(r.Seq)}
	}
	return r.Seq[start-1 : end], nil
}

// OutOfRangeError reports a subsequence request outside record bounds.
type OutOfRangeError struct {
	Start int
	End   int
	Len   int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("subsequence %d..%d out of range for record of length %d", e.Start, e.End, e.Len)
}
