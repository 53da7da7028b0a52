package syntax

// Nullable reports whether re can match the empty string.
func (re *Regexp) Nullable() bool {
	if re == nil {
		return true
	}
	switch re.Op {
	case OpAlt:
		return re.Left.Nullable() || re.Right.Nullable()
	case OpCat:
		return re.Left.Nullable() && re.Right.Nullable()
	case OpLit, OpDot:
		return false
	case OpParen, OpPlus:
		return re.Left.Nullable()
	case OpQuest, OpStar:
		return true
	}
	return false
}

// HasEmptyLoop reports whether re contains a repetition whose body can
// match the empty string, such as (a*)* or (a?)+. Such a loop can be
// re-entered without consuming input, which the recursive matcher cannot
// terminate on.
func (re *Regexp) HasEmptyLoop() bool {
	if re == nil {
		return false
	}
	switch re.Op {
	case OpStar, OpPlus:
		if re.Left.Nullable() {
			return true
		}
	}
	return re.Left.HasEmptyLoop() || re.Right.HasEmptyLoop()
}
