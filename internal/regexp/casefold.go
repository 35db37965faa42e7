package regexp

// casefold covers the Latin/Greek/Cyrillic upper-lower pairs used by the
// "i" flag. foldRune returns a canonical lowercase form for comparison;
// ASCII and the three scripts above are handled explicitly rather than via
// full Unicode case folding, matching the engine's documented scope.
func foldRune(r rune) rune {
	switch {
	case r >= 'A' && r <= 'Z':
		return r + ('a' - 'A')
	case r >= 0x0391 && r <= 0x03A9: // Greek capital letters
		return r + 0x20
	case r >= 0x0410 && r <= 0x042F: // Cyrillic capital letters А-Я
		return r + 0x20
	case r >= 0x0400 && r <= 0x040F: // Cyrillic capital Ѐ-Џ
		return r + 0x50
	default:
		return r
	}
}

func foldEquals(a, b rune) bool {
	return a == b || foldRune(a) == foldRune(b)
}
