package sched

// Deck name patterns use the historical wildcard convention: '*' matches
// any run of characters and '?' matches exactly one. There are no
// character classes and no path semantics, so this is a purpose-built
// matcher rather than path.Match.

// HasWildcard reports whether the pattern contains wildcard characters.
func HasWildcard(pattern string) bool {
	for _, c := range pattern {
		if c == '*' || c == '?' {
			return true
		}
	}
	return false
}

// MatchPattern reports whether name matches the wildcard pattern.
func MatchPattern(pattern, name string) bool {
	return matchHere(pattern, name)
}

func matchHere(pattern, name string) bool {
	for len(pattern) > 0 {
		switch pattern[0] {
		case '*':
			// Collapse consecutive stars, then try every split point.
			for len(pattern) > 0 && pattern[0] == '*' {
				pattern = pattern[1:]
			}
			if len(pattern) == 0 {
				return true
			}
			for i := 0; i <= len(name); i++ {
				if matchHere(pattern, name[i:]) {
					return true
				}
			}
			return false
		case '?':
			if len(name) == 0 {
				return false
			}
			pattern, name = pattern[1:], name[1:]
		default:
			if len(name) == 0 || pattern[0] != name[0] {
				return false
			}
			pattern, name = pattern[1:], name[1:]
		}
	}
	return len(name) == 0
}

// matchNames resolves pattern against names, preserving the order of
// names (insertion order of the entities, not lexicographic). An exact
// pattern resolves to at most one element.
func matchNames(pattern string, names []string) []string {
	if !HasWildcard(pattern) {
		for _, name := range names {
			if name == pattern {
				return []string{name}
			}
		}
		return nil
	}
	var matched []string
	for _, name := range names {
		if MatchPattern(pattern, name) {
			matched = append(matched, name)
		}
	}
	return matched
}
