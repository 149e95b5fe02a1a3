// Package fasta reads and writes FASTA-formatted sequence records.
package fasta

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"spliceseq/internal/seq"
)

// DefaultWidth is the residue count per output line.
const DefaultWidth = 70

// Parse reads all FASTA records from a reader.
func Parse(r io.Reader) ([]*seq.Record, error) {
	scanner := bufio.NewScanner(r)
	// Increase buffer size for long sequence lines.
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	var records []*seq.Record
	var current *seq.Record
	var body strings.Builder

	flush := func() {
		if current != nil {
			current.Seq = body.String()
			records = append(records, current)
		}
		body.Reset()
	}

	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, ">") {
			flush()
			header := strings.TrimPrefix(line, ">")
			id, desc := header, ""
			if idx := strings.IndexByte(header, ' '); idx >= 0 {
				id, desc = header[:idx], strings.TrimSpace(header[idx+1:])
			}
			current = &seq.Record{ID: id, Desc: desc}
			continue
		}
		if current == nil {
			if strings.TrimSpace(line) == "" {
				continue
			}
			return nil, fmt.Errorf("sequence data before first FASTA header")
		}
		body.WriteString(strings.TrimSpace(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan FASTA: %w", err)
	}
	flush()
	return records, nil
}

// ParseFile reads all FASTA records from a file, handling gzipped files.
func ParseFile(path string) ([]*seq.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open FASTA file: %w", err)
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}
	return Parse(reader)
}

// Writer writes FASTA records with wrapped sequence lines.
type Writer struct {
	w     io.Writer
	width int
}

// NewWriter creates a writer wrapping sequence lines at DefaultWidth.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, width: DefaultWidth}
}

// SetWidth sets the residue count per sequence line.
func (w *Writer) SetWidth(width int) {
	if width > 0 {
		w.width = width
	}
}

// Write writes one record.
func (w *Writer) Write(rec *seq.Record) error {
	header := ">" + rec.ID
	if rec.Desc != "" {
		header += " " + rec.Desc
	}
	if _, err := fmt.Fprintln(w.w, header); err != nil {
		return fmt.Errorf("write FASTA header: %w", err)
	}
	for i := 0; i < len(rec.Seq); i += w.width {
		end := i + w.width
		if end > len(rec.Seq) {
			end = len(rec.Seq)
		}
		if _, err := fmt.Fprintln(w.w, rec.Seq[i:end]); err != nil {
			return fmt.Errorf("write FASTA sequence: %w", err)
		}
	}
	return nil
}
