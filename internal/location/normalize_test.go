package location

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAtomic(t *testing.T) {
	l := &Simple{Start: 5, End: 20, Strand: Minus}

	n, err := Normalize(l, false)
	require.NoError(t, err)
	require.Len(t, n.Parts, 1)
	assert.Same(t, l, n.Parts[0])
	assert.Equal(t, Minus, n.Nominal)
	assert.False(t, n.Mixed)
}

func TestNormalizeSortsPlusStrandByStart(t *testing.T) {
	c := &Compound{Parts: []Location{
		&Simple{Start: 200, End: 250, Strand: Plus},
		&Simple{Start: 1, End: 10, Strand: Plus},
		&Simple{Start: 50, End: 80, Strand: Plus},
	}}

	n, err := Normalize(c, false)
	require.NoError(t, err)
	require.Len(t, n.Parts, 3)
	assert.Equal(t, 1, n.Parts[0].Start)
	assert.Equal(t, 50, n.Parts[1].Start)
	assert.Equal(t, 200, n.Parts[2].Start)
	assert.Equal(t, Plus, n.Nominal)
	assert.True(t, n.Sorted)
}

func TestNormalizeSortsMinusStrandDescending(t *testing.T) {
	// Minus-strand children sort by start * -1 ascending, i.e. descending
	// genomic order, so the result reads 5'->3' along the feature's strand.
	c := &Compound{Parts: []Location{
		&Simple{Start: 10, End: 20, Strand: Minus},
		&Simple{Start: 50, End: 60, Strand: Minus},
	}}

	n, err := Normalize(c, false)
	require.NoError(t, err)
	require.Len(t, n.Parts, 2)
	assert.Equal(t, 50, n.Parts[0].Start)
	assert.Equal(t, 10, n.Parts[1].Start)
	assert.Equal(t, Minus, n.Nominal)
	assert.True(t, n.Sorted)
}

func TestNormalizeMixedStrandKeepsInputOrder(t *testing.T) {
	c := &Compound{Parts: []Location{
		&Simple{Start: 100, End: 120, Strand: Plus},
		&Simple{Start: 10, End: 20, Strand: Minus},
	}}

	n, err := Normalize(c, false)
	require.NoError(t, err)
	assert.True(t, n.Mixed)
	assert.False(t, n.Sorted)
	// Original input order preserved
	assert.Equal(t, 100, n.Parts[0].Start)
	assert.Equal(t, 10, n.Parts[1].Start)
	assert.Equal(t, Plus, n.Nominal)
}

func TestNormalizePreserveOrderSkipsSortAndMixedCheck(t *testing.T) {
	c := &Compound{Parts: []Location{
		&Simple{Start: 100, End: 120, Strand: Plus},
		&Simple{Start: 10, End: 20, Strand: Minus},
	}}

	n, err := Normalize(c, true)
	require.NoError(t, err)
	assert.False(t, n.Mixed)
	assert.False(t, n.Sorted)
	assert.Equal(t, 100, n.Parts[0].Start)
	assert.Equal(t, 10, n.Parts[1].Start)
}

func TestNormalizeUnknownStrandSortsAsPlus(t *testing.T) {
	c := &Compound{Parts: []Location{
		&Simple{Start: 30, End: 40, Strand: Unknown},
		&Simple{Start: 5, End: 10, Strand: Unknown},
	}}

	n, err := Normalize(c, false)
	require.NoError(t, err)
	assert.Equal(t, 5, n.Parts[0].Start)
	assert.Equal(t, 30, n.Parts[1].Start)
}

func TestNormalizeNestedCompoundFails(t *testing.T) {
	c := &Compound{Parts: []Location{
		&Simple{Start: 1, End: 10, Strand: Plus},
		&Compound{Parts: []Location{&Simple{Start: 20, End: 30, Strand: Plus}}},
	}}

	n, err := Normalize(c, false)
	assert.Nil(t, n)

	var se *StructureError
	require.True(t, errors.As(err, &se))
}

func TestNormalizeEmptyCompoundFails(t *testing.T) {
	_, err := Normalize(&Compound{}, false)

	var se *StructureError
	require.True(t, errors.As(err, &se))
}

func TestCompoundLen(t *testing.T) {
	c := &Compound{Parts: []Location{
		&Simple{Start: 1, End: 10},
		&Simple{Start: 20, End: 25},
	}}
	assert.Equal(t, 16, c.Len())
}
