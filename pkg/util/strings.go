package util

// TrimString cuts s down to at most length runes, marking the cut with an ellipsis.
func TrimString(s string, length int) string {
	runes := []rune(s)
	if len(runes) <= length {
		return s
	}

	if length <= 1 {
		return string(runes[:length])
	}

	return string(runes[:length-1]) + "…"
}
