package regexp

// FindSubmatchIndex searches input starting at start for the leftmost
// match of prog, returning a flat slice of 2*(NumGroups+1) rune offsets
// (match 0 first, then each capture group in order), with -1 marking an
// unset group. It returns nil if no match is found at or after start.
func (prog *Program) FindSubmatchIndex(input []rune, start int) []int {
	for pos := start; pos <= len(input); pos++ {
		caps := make([]int, 2*(prog.NumGroups+1))
		for i := range caps {
			caps[i] = -1
		}
		st := &matchState{input: input, caps: caps, ignoreCase: prog.IgnoreCase, multiline: prog.Multiline}
		matched := st.match(prog.Root, pos, func(end int) bool {
			caps[0], caps[1] = pos, end
			return true
		})
		if matched {
			return caps
		}
	}
	return nil
}

// Test reports whether prog matches anywhere in input at or after start.
func (prog *Program) Test(input []rune, start int) bool {
	return prog.FindSubmatchIndex(input, start) != nil
}

// BumpOneCodePoint implements the "bump one code point" rule used by
// global-flag lastIndex advancement and string-split when a match was
// empty, so the overall scan always makes forward progress.
func BumpOneCodePoint(pos int, input []rune) int {
	if pos >= len(input) {
		return pos + 1
	}
	return pos + 1
}
