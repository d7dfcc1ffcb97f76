package parsing

import "strings"

// isWordByte reports whether b is part of a word for boundary checks.
// Vocabulary entries may contain '+', '#', '/', '&' and '.' (c++, ci/cd, fp&a,
// node.js), so those count as word bytes too.
func isWordByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	case b == '+' || b == '#' || b == '/' || b == '&' || b == '.':
		return true
	}
	return false
}

// ContainsPhrase reports whether phrase occurs in text on word boundaries.
// Both arguments are expected to be lowercased already. Substring matching
// alone is unsafe for short aliases ("ae", "sre"), which would otherwise fire
// inside unrelated words.
func ContainsPhrase(text, phrase string) bool {
	if phrase == "" {
		return false
	}
	for start := 0; ; {
		idx := strings.Index(text[start:], phrase)
		if idx < 0 {
			return false
		}
		idx += start
		end := idx + len(phrase)
		beforeOK := idx == 0 || !isWordByte(text[idx-1])
		afterOK := end == len(text) || !isWordByte(text[end])
		if beforeOK && afterOK {
			return true
		}
		start = idx + 1
		if start >= len(text) {
			return false
		}
	}
}
