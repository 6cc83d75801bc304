package app

import "encoding/json"

// ExtractJSONObject returns the first balanced {...} span in s that is valid JSON.
// Models often wrap the object in prose or code fences; braces inside JSON
// strings do not count towards balance. Runs in time linear in len(s).
func ExtractJSONObject(s string) (string, bool) {
	closing := matchBraces(s)
	for start := 0; start < len(s); start++ {
		end, ok := closing[start]
		if !ok {
			continue
		}
		if candidate := s[start : end+1]; json.Valid([]byte(candidate)) {
			return candidate, true
		}
		// Skip the whole invalid span rather than retrying its nested objects.
		start = end
	}
	return "", false
}

// matchBraces pairs every '{' with its closing '}' in one pass. Unmatched
// opening braces are absent from the result. Quotes only start a string
// while some brace is open, so apostrophes and quotes in surrounding prose
// do not hide the object.
func matchBraces(s string) map[int]int {
	closing := make(map[int]int)
	var open []int
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			if len(open) > 0 {
				inString = true
			}
		case '{':
			open = append(open, i)
		case '}':
			if n := len(open); n > 0 {
				closing[open[n-1]] = i
				open = open[:n-1]
			}
		}
	}
	return closing
}
