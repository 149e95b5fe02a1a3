package genbank

import (
	"fmt"
	"strconv"
	"strings"

	"spliceseq/internal/location"
)

// ParseLocation parses a GenBank feature location descriptor into a
// location value. Supported forms:
//
//	467..588                   interval
//	467                        single point
//	467^468                    site between two bases
//	<467..>588                 partial interval (markers ignored)
//	J00194.1:100..202          interval on a foreign record
//	complement(467..588)       minus strand
//	join(12..78,134..202)      compound location
//	order(12..78,134..202)     treated as join
//	complement(join(...))      minus-strand compound, parts reversed
//
// Nested joins are parsed as-is; the splice engine rejects them later.
func ParseLocation(s string) (location.Location, error) {
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return nil, fmt.Errorf("empty location")
	}
	return parseLocation(s)
}

func parseLocation(s string) (location.Location, error) {
	if inner, ok := stripOperator(s, "complement"); ok {
		loc, err := parseLocation(inner)
		if err != nil {
			return nil, err
		}
		return complement(loc), nil
	}
	for _, op := range []string{"join", "order"} {
		if inner, ok := stripOperator(s, op); ok {
			items, err := splitTopLevel(inner)
			if err != nil {
				return nil, fmt.Errorf("%s location %q: %w", op, s, err)
			}
			c := &location.Compound{}
			for _, item := range items {
				part, err := parseLocation(item)
				if err != nil {
					return nil, err
				}
				c.Parts = append(c.Parts, part)
			}
			return c, nil
		}
	}
	return parseInterval(s)
}

// stripOperator returns the argument of op(...) when s is exactly that form.
func stripOperator(s, op string) (string, bool) {
	if !strings.HasPrefix(s, op+"(") || !strings.HasSuffix(s, ")") {
		return "", false
	}
	inner := s[len(op)+1 : len(s)-1]
	// The trailing paren must close the operator's own paren, not an inner one.
	depth := 0
	for _, r := range inner {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return "", false
			}
		}
	}
	return inner, depth == 0
}

// splitTopLevel splits on commas outside parentheses.
func splitTopLevel(s string) ([]string, error) {
	var items []string
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced parentheses")
			}
		case ',':
			if depth == 0 {
				items = append(items, s[start:i])
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced parentheses")
	}
	items = append(items, s[start:])
	return items, nil
}

func parseInterval(s string) (*location.Simple, error) {
	l := &location.Simple{Strand: location.Plus}

	if idx := strings.Index(s, ":"); idx >= 0 {
		l.SeqID = s[:idx]
		s = s[idx+1:]
		if l.SeqID == "" {
			return nil, fmt.Errorf("interval %q has an empty record reference", s)
		}
	}

	var from, to string
	switch {
	case strings.Contains(s, ".."):
		parts := strings.SplitN(s, "..", 2)
		from, to = parts[0], parts[1]
	case strings.Contains(s, "^"):
		parts := strings.SplitN(s, "^", 2)
		from, to = parts[0], parts[1]
	default:
		from, to = s, s
	}

	start, err := parsePosition(from, "<")
	if err != nil {
		return nil, fmt.Errorf("interval %q: %w", s, err)
	}
	end, err := parsePosition(to, ">")
	if err != nil {
		return nil, fmt.Errorf("interval %q: %w", s, err)
	}
	if start < 1 || end < start {
		return nil, fmt.Errorf("interval %q is not a valid 1-based range", s)
	}
	l.Start, l.End = start, end
	return l, nil
}

func parsePosition(s, partialMark string) (int, error) {
	s = strings.TrimPrefix(s, partialMark)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("bad position %q", s)
	}
	return n, nil
}

// complement flips a location to the opposite strand. For a compound
// location every part is flipped and the part order reversed, matching the
// flat-file convention that complement(join(...)) lists parts 5'->3' on the
// plus strand.
func complement(loc location.Location) location.Location {
	switch l := loc.(type) {
	case *location.Simple:
		flipped := *l
		if l.Strand == location.Minus {
			flipped.Strand = location.Plus
		} else {
			flipped.Strand = location.Minus
		}
		return &flipped
	case *location.Compound:
		c := &location.Compound{Parts: make([]location.Location, len(l.Parts))}
		for i, p := range l.Parts {
			c.Parts[len(l.Parts)-1-i] = complement(p)
		}
		return c
	default:
		return loc
	}
}
