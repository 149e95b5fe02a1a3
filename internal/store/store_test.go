package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spliceseq/internal/seq"
	"spliceseq/internal/splice"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutGet(t *testing.T) {
	s := openTestStore(t)

	rec := &seq.Record{ID: "X77802", Desc: "some organism", Seq: "ACGTACGTAG"}
	require.NoError(t, s.Put("X77802", rec))

	got, err := s.Get("X77802")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, rec.Desc, got.Desc)
	assert.Equal(t, rec.Seq, got.Seq)
}

func TestGetMissingReturnsNil(t *testing.T) {
	s := openTestStore(t)

	got, err := s.Get("NOPE1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPutReplaces(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Put("X77802", &seq.Record{ID: "X77802", Seq: "AAAA"}))
	require.NoError(t, s.Put("X77802", &seq.Record{ID: "X77802", Seq: "CCCC"}))

	got, err := s.Get("X77802")
	require.NoError(t, err)
	assert.Equal(t, "CCCC", got.Seq)

	n, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "records.duckdb")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Put("X77802", &seq.Record{ID: "X77802", Seq: "ACGT"}))
	n, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCachingLookupFetchesOnceAndPersists(t *testing.T) {
	s := openTestStore(t)

	calls := 0
	next := splice.LookupFunc(func(accession string) (*seq.Record, error) {
		calls++
		return &seq.Record{ID: accession, Seq: "TTTTGGGG"}, nil
	})
	lookup := NewCachingLookup(s, next)

	rec, err := lookup.FetchByAccession("J00194")
	require.NoError(t, err)
	assert.Equal(t, "TTTTGGGG", rec.Seq)
	assert.Equal(t, 1, calls)

	// Second lookup answers from the store.
	rec, err = lookup.FetchByAccession("J00194")
	require.NoError(t, err)
	assert.Equal(t, "TTTTGGGG", rec.Seq)
	assert.Equal(t, 1, calls)

	n, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestCachingLookupPropagatesFetchErrors(t *testing.T) {
	s := openTestStore(t)

	cause := errors.New("record vanished")
	lookup := NewCachingLookup(s, splice.LookupFunc(func(string) (*seq.Record, error) {
		return nil, cause
	}))

	_, err := lookup.FetchByAccession("NOPE1")
	require.ErrorIs(t, err, cause)

	// Failures are not cached.
	n, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}
