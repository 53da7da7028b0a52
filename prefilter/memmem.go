package prefilter

import "bytes"

// Memmem searches for a single substring. It is never complete: the
// substring is only known to occur in every match.
type Memmem struct {
	needle  []byte
	rare    byte
	rareIdx int
}

// NewMemmem returns a prefilter for needle, which must not be empty.
func NewMemmem(needle []byte) *Memmem {
	rare, idx := rareByte(needle)
	return &Memmem{
		needle:  bytes.Clone(needle),
		rare:    rare,
		rareIdx: idx,
	}
}

// Needle returns the substring searched for.
func (p *Memmem) Needle() []byte {
	return p.needle
}

// Find implements Prefilter.
//
// Candidates for the needle's rarest byte are located with
// bytes.IndexByte and verified in place.
func (p *Memmem) Find(haystack []byte, start int) int {
	n := len(p.needle)
	if start < 0 || start+n > len(haystack) {
		return -1
	}
	if n == 1 {
		if i := bytes.IndexByte(haystack[start:], p.rare); i >= 0 {
			return start + i
		}
		return -1
	}

	for pos := start + p.rareIdx; pos < len(haystack); {
		i := bytes.IndexByte(haystack[pos:], p.rare)
		if i < 0 {
			return -1
		}
		pos += i
		at := pos - p.rareIdx
		if at+n > len(haystack) {
			return -1
		}
		if bytes.Equal(haystack[at:at+n], p.needle) {
			return at
		}
		pos++
	}
	return -1
}

// IsComplete implements Prefilter.
func (p *Memmem) IsComplete() bool {
	return false
}

// rareByte returns the byte of needle with the lowest rank and its index,
// preferring the first on ties.
func rareByte(needle []byte) (byte, int) {
	if len(needle) == 0 {
		return 0, 0
	}
	best, idx := needle[0], 0
	for i := 1; i < len(needle); i++ {
		if byteRank[needle[i]] < byteRank[best] {
			best, idx = needle[i], i
		}
	}
	return best, idx
}
