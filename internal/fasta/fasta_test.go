package fasta

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spliceseq/internal/seq"
)

func TestParse(t *testing.T) {
	in := `>SYN1 synthetic construct one
ACGTACGTAG
CTAGCTAGGA
>SYN2
TTTTGGGG
`
	records, err := Parse(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "SYN1", records[0].ID)
	assert.Equal(t, "synthetic construct one", records[0].Desc)
	assert.Equal(t, "ACGTACGTAGCTAGCTAGGA", records[0].Seq)

	assert.Equal(t, "SYN2", records[1].ID)
	assert.Empty(t, records[1].Desc)
	assert.Equal(t, "TTTTGGGG", records[1].Seq)
}

func TestParseSkipsLeadingBlankLines(t *testing.T) {
	records, err := Parse(strings.NewReader("\n\n>SYN1\nACGT\n"))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "ACGT", records[0].Seq)
}

func TestParseRejectsHeaderlessSequence(t *testing.T) {
	_, err := Parse(strings.NewReader("ACGT\n"))
	require.Error(t, err)
}

func TestParseEmptyInput(t *testing.T) {
	records, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestWriterWrapsLines(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.SetWidth(10)

	err := w.Write(&seq.Record{ID: "SYN1", Desc: "wrapped", Seq: "ACGTACGTAGCTAGCTAGGATCCGG"})
	require.NoError(t, err)

	want := ">SYN1 wrapped\nACGTACGTAG\nCTAGCTAGGA\nTCCGG\n"
	assert.Equal(t, want, buf.String())
}

func TestWriterIgnoresNonPositiveWidth(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.SetWidth(0)

	err := w.Write(&seq.Record{ID: "SYN1", Seq: strings.Repeat("A", 80)})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Len(t, lines[1], DefaultWidth)
}

func TestRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	orig := &seq.Record{ID: "SYNREC_spliced", Desc: "CDS demoA", Seq: strings.Repeat("ACGTT", 30)}
	require.NoError(t, w.Write(orig))

	records, err := Parse(&buf)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, orig.ID, records[0].ID)
	assert.Equal(t, orig.Desc, records[0].Desc)
	assert.Equal(t, orig.Seq, records[0].Seq)
}
