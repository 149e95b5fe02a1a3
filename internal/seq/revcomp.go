package seq

// ReverseComplement returns the reverse complement of a DNA sequence.
// Minus-strand intervals need their residues reverse complemented to
// read 5'->3' along the feature's strand.
func ReverseComplement(s string) string {
	n := len(s)
	// Stack-allocate for typical exon lengths (<=256 bases).
	var buf [256]byte
	var result []byte
	if n <= len(buf) {
		result = buf[:n]
	} else {
		result = make([]byte, n)
	}
	for i := 0; i < n; i++ {
		result[i] = Complement(s[n-1-i])
	}
	return string(result)
}

// Complement returns the complement of a single base.
func Complement(base byte) byte {
	switch base {
	case 'A':
		return 'T'
	case 'T':
		return 'A'
	case 'G':
		return 'C'
	case 'C':
		return 'G'
	case 'a':
		return 't'
	case 't':
		return 'a'
	case 'g':
		return 'c'
	case 'c':
		return 'g'
	default:
		return 'N'
	}
}
