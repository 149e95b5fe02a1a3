package splice

import "spliceseq/internal/seq"

// Lookup fetches a whole sequence record by accession. It is the capability
// the resolver uses for sub-intervals that live on a foreign source record.
// Implementations may hit the network or a local store; the resolver treats
// the call as an opaque synchronous function.
type Lookup interface {
	FetchByAccession(accession string) (*seq.Record, error)
}

// LookupFunc adapts a plain function to the Lookup interface.
type LookupFunc func(accession string) (*seq.Record, error)

// FetchByAccession calls f.
func (f LookupFunc) FetchByAccession(accession string) (*seq.Record, error) {
	return f(accession)
}

// memoLookup memoizes fetches by accession for the duration of one splice
// operation, so repeated references to the same foreign record incur at most
// one fetch. Errors are memoized too: a failed accession is not retried
// within the same operation.
type memoLookup struct {
	next Lookup
	hits map[string]memoEntry
}

type memoEntry struct {
	rec *seq.Record
	err error
}

func newMemoLookup(next Lookup) *memoLookup {
	return &memoLookup{next: next, hits: make(map[string]memoEntry)}
}

func (m *memoLookup) FetchByAccession(accession string) (*seq.Record, error) {
	if e, ok := m.hits[accession]; ok {
		return e.rec, e.err
	}
	rec, err := m.next.FetchByAccession(accession)
	m.hits[accession] = memoEntry{rec: rec, err: err}
	return rec, err
}
