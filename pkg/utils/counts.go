package utils

import (
	"fmt"
	"strings"
)

// CountWords counts whitespace-separated words. Math notation such as
// $x^2$ counts as one word.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// FormatWordCount formats a word count for the status bar
func FormatWordCount(words int) string {
	switch {
	case words == 1:
		return "1 word"
	case words < 1000:
		return fmt.Sprintf("%d words", words)
	case words < 10000:
		return fmt.Sprintf("%.1fK words", float64(words)/1000)
	default:
		return fmt.Sprintf("%.0fK words", float64(words)/1000)
	}
}
