package tokenizer

import (
	"strings"
)

// CountWords counts whitespace-separated words.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// CountWordsAll sums CountWords over every fragment.
func CountWordsAll(fragments []string) int {
	n := 0
	for _, f := range fragments {
		n += CountWords(f)
	}
	return n
}
