package syntax

// NumberGroups assigns capture ids to every OpParen node of re, left to
// right by opening parenthesis, starting at 1. It returns the number of
// groups numbered. Id 0 stays reserved for the whole-match group added by
// Unanchored.
func NumberGroups(re *Regexp) int {
	n := 0
	var walk func(*Regexp)
	walk = func(re *Regexp) {
		if re == nil {
			return
		}
		if re.Op == OpParen {
			n++
			re.Cap = n
		}
		walk(re.Left)
		walk(re.Right)
	}
	walk(re)
	return n
}

// Unanchored wraps re as Cat(NgStar(Dot), Paren(0, re)). Running the
// result anchored at offset 0 searches for the leftmost match of re
// anywhere in the input, and group 0 records where it was found.
func Unanchored(re *Regexp) *Regexp {
	return Cat(Star(false, Dot()), Paren(0, re))
}

// IsUnanchored reports whether re has the shape produced by Unanchored.
func IsUnanchored(re *Regexp) bool {
	if re == nil || re.Op != OpCat {
		return false
	}
	l, r := re.Left, re.Right
	return l.Op == OpStar && !l.Greedy && l.Left.Op == OpDot &&
		r.Op == OpParen && r.Cap == 0
}

// Anchored strips the wrapper added by Unanchored, returning re itself when
// it is not wrapped.
func Anchored(re *Regexp) *Regexp {
	if IsUnanchored(re) {
		return re.Right.Left
	}
	return re
}
