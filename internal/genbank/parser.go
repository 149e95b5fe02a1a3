// Package genbank reads GenBank flat files into sequence records and
// annotation features.
package genbank

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"spliceseq/internal/feature"
	"spliceseq/internal/seq"
)

// Document is one parsed GenBank record: the sequence plus its feature table.
type Document struct {
	Record   *seq.Record
	Features []*feature.Generic
}

// ParseFile parses the first GenBank record in a file. Gzipped files are
// handled transparently.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open GenBank file: %w", err)
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

// Feature table layout: the key occupies columns 6-20, the location starts
// at column 22, continuations and qualifiers are indented 21 spaces.
const (
	featureIndent   = "     "
	qualifierIndent = "                     "
)

// Parse parses a single GenBank record from a reader.
func Parse(r io.Reader) (*Document, error) {
	scanner := bufio.NewScanner(r)
	// Sequence sections can hold whole chromosomes.
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	doc := &Document{Record: &seq.Record{}}
	var rawFeatures []rawFeature
	var sequence strings.Builder

	section := ""
	line, ok := nextLine(scanner)
	for ok {
		switch {
		case strings.HasPrefix(line, "LOCUS"):
			cols := strings.Fields(line)
			if len(cols) < 2 {
				return nil, fmt.Errorf("malformed LOCUS line %q", line)
			}
			doc.Record.ID = cols[1]
			line, ok = nextLine(scanner)

		case strings.HasPrefix(line, "DEFINITION"):
			def := strings.TrimSpace(strings.TrimPrefix(line, "DEFINITION"))
			for line, ok = nextLine(scanner); ok && strings.HasPrefix(line, "            "); line, ok = nextLine(scanner) {
				def += " " + strings.TrimSpace(line)
			}
			doc.Record.Desc = strings.TrimSuffix(def, ".")

		case strings.HasPrefix(line, "FEATURES"):
			section = "FEATURES"
			line, ok = nextLine(scanner)

		case strings.HasPrefix(line, "ORIGIN"):
			section = "ORIGIN"
			line, ok = nextLine(scanner)

		case strings.HasPrefix(line, "//"):
			ok = false

		case section == "FEATURES" && strings.HasPrefix(line, featureIndent) && len(line) > 5 && line[5] != ' ':
			var rf rawFeature
			rf, line, ok = readFeature(scanner, line)
			rawFeatures = append(rawFeatures, rf)

		case section == "ORIGIN":
			for _, col := range strings.Fields(line) {
				if isAllDigits(col) {
					continue
				}
				sequence.WriteString(strings.ToUpper(col))
			}
			line, ok = nextLine(scanner)

		default:
			line, ok = nextLine(scanner)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan GenBank record: %w", err)
	}
	if doc.Record.ID == "" {
		return nil, fmt.Errorf("no LOCUS line found")
	}
	doc.Record.Seq = sequence.String()

	for _, rf := range rawFeatures {
		loc, err := ParseLocation(rf.location)
		if err != nil {
			return nil, fmt.Errorf("feature %s: %w", rf.key, err)
		}
		g := feature.NewGeneric(rf.key, loc, doc.Record, doc.Record.ID)
		for _, q := range rf.qualifiers {
			g.AddTag(q.name, q.value)
		}
		doc.Features = append(doc.Features, g)
	}
	return doc, nil
}

// FeaturesByKey returns the features carrying the given key (e.g. CDS).
func (d *Document) FeaturesByKey(key string) []*feature.Generic {
	var out []*feature.Generic
	for _, f := range d.Features {
		if f.Key == key {
			out = append(out, f)
		}
	}
	return out
}

type rawFeature struct {
	key        string
	location   string
	qualifiers []rawQualifier
}

type rawQualifier struct {
	name  string
	value string
}

// readFeature consumes one feature (key, location continuations, qualifiers)
// and returns the first line that is not part of it.
func readFeature(scanner *bufio.Scanner, first string) (rawFeature, string, bool) {
	rf := rawFeature{
		key: strings.TrimSpace(first[5:min(21, len(first))]),
	}
	if len(first) > 21 {
		rf.location = strings.TrimSpace(first[21:])
	}

	line, ok := nextLine(scanner)
	// Location continuations precede the first qualifier.
	for ok && strings.HasPrefix(line, qualifierIndent) && !strings.HasPrefix(strings.TrimSpace(line), "/") {
		rf.location += strings.TrimSpace(line)
		line, ok = nextLine(scanner)
	}

	for ok && strings.HasPrefix(line, qualifierIndent) {
		text := strings.TrimSpace(line)
		name := strings.TrimPrefix(text, "/")
		value := ""
		if idx := strings.Index(name, "="); idx >= 0 {
			value = name[idx+1:]
			name = name[:idx]
		}
		for line, ok = nextLine(scanner); ok && strings.HasPrefix(line, qualifierIndent); line, ok = nextLine(scanner) {
			cont := strings.TrimSpace(line)
			if strings.HasPrefix(cont, "/") {
				break
			}
			// Sequence-bearing qualifiers concatenate without spaces.
			if name == "translation" || name == "anticodon" {
				value += cont
			} else {
				value += " " + cont
			}
		}
		value = strings.Trim(value, `"`)
		rf.qualifiers = append(rf.qualifiers, rawQualifier{name: name, value: value})
	}
	return rf, line, ok
}

func nextLine(scanner *bufio.Scanner) (string, bool) {
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		return line, true
	}
	return "", false
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
