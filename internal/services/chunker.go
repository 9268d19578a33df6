package services

import (
	"strings"
	"unicode/utf8"
)

const (
	defaultChunkSize    = 1000
	defaultChunkOverlap = 200
)

type TextChunker interface {
	ChunkText(text string, maxChunkSize int, overlap int) []string
}

type textChunker struct{}

func NewTextChunker() TextChunker {
	return &textChunker{}
}

// ChunkText groups the words of text into chunks of at most maxChunkSize
// runes. Each chunk after the first starts with up to overlap runes of
// whole words taken from the end of the previous one.
func (tc *textChunker) ChunkText(text string, maxChunkSize int, overlap int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = defaultChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxChunkSize {
		overlap = maxChunkSize / 4
	}

	var (
		chunks  []string
		current []string
		size    int
		fresh   int
	)

	flush := func() {
		if fresh == 0 {
			return
		}
		chunks = append(chunks, strings.Join(current, " "))
		current = tailWords(current, overlap)
		size = joinedLen(current)
		fresh = 0
	}

	for _, word := range strings.Fields(text) {
		for utf8.RuneCountInString(word) > maxChunkSize {
			flush()
			current, size = nil, 0
			head, rest := splitRunes(word, maxChunkSize)
			chunks = append(chunks, head)
			word = rest
		}

		wordLen := utf8.RuneCountInString(word)
		if len(current) > 0 && size+1+wordLen > maxChunkSize {
			flush()
			// The carried overlap must still leave room for the word.
			for len(current) > 0 && size+1+wordLen > maxChunkSize {
				current = current[1:]
				size = joinedLen(current)
			}
		}

		if len(current) > 0 {
			size++
		}
		current = append(current, word)
		size += wordLen
		fresh++
	}
	flush()

	return chunks
}

// tailWords returns the longest suffix of words whose joined length fits in n runes.
func tailWords(words []string, n int) []string {
	if n <= 0 {
		return nil
	}

	total := 0
	start := len(words)
	for i := len(words) - 1; i >= 0; i-- {
		l := utf8.RuneCountInString(words[i])
		if start < len(words) {
			l++
		}
		if total+l > n {
			break
		}
		total += l
		start = i
	}

	return append([]string(nil), words[start:]...)
}

func joinedLen(words []string) int {
	if len(words) == 0 {
		return 0
	}
	total := len(words) - 1
	for _, w := range words {
		total += utf8.RuneCountInString(w)
	}
	return total
}

func splitRunes(s string, n int) (string, string) {
	runes := []rune(s)
	return string(runes[:n]), string(runes[n:])
}
