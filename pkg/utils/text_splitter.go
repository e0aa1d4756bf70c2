package utils

import "strings"

// SplitText splits a long string into chunks of at most chunkSize runes with
// an overlap of up to 'overlap' runes between neighbours. Each chunk ends at
// the most natural boundary inside its window: paragraph break, then line
// break, then sentence end, then word gap, then a hard cut. Chunks are exact
// substrings of the input, so concatenating them minus the overlap regions
// reproduces the input.
func SplitText(text string, chunkSize int, overlap int) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}
	if chunkSize <= 0 {
		return []string{text}
	}
	if overlap < 0 {
		overlap = 0
	}

	runes := []rune(text)
	if len(runes) <= chunkSize {
		return []string{text}
	}

	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + chunkSize
		if end >= len(runes) {
			chunks = append(chunks, string(runes[start:]))
			break
		}

		cut := findCut(runes, start, end)
		chunks = append(chunks, string(runes[start:cut]))

		next := cut - overlap
		if next <= start {
			next = cut // fallback if overlap >= chunk length
		}
		start = next
	}

	return chunks
}

// findCut picks the end of the chunk starting at 'start' whose window closes
// at 'end'. Boundaries in the first half of the window are ignored so chunks
// never degenerate to a few runes.
func findCut(runes []rune, start, end int) int {
	floor := start + (end-start)/2

	// Paragraph break: cut after the blank line.
	for i := end - 2; i > floor; i-- {
		if runes[i] == '\n' && runes[i+1] == '\n' {
			return i + 2
		}
	}

	// Line break.
	for i := end - 1; i > floor; i-- {
		if runes[i] == '\n' {
			return i + 1
		}
	}

	// Sentence end followed by a space.
	for i := end - 2; i > floor; i-- {
		if isSentenceEnd(runes[i]) && runes[i+1] == ' ' {
			return i + 2
		}
	}

	// Word gap.
	for i := end - 1; i > floor; i-- {
		if runes[i] == ' ' {
			return i + 1
		}
	}

	return end
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
