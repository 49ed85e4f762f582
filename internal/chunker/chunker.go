// Package chunker splits document text into overlapping fixed-size segments.
package chunker

import (
	"fmt"
	"unicode"
)

// DefaultSize is the default number of runes per chunk.
const DefaultSize = 512

// DefaultOverlap is the default number of overlapping runes between
// consecutive chunks.
const DefaultOverlap = 50

// boundaryTolerance is how far past the nominal chunk end a chunk may run
// to avoid splitting mid-word.
const boundaryTolerance = 24

// Chunker splits text into overlapping fixed-size chunks. Chunk boundaries
// are measured in runes so multi-byte text (Turkish place names, for one)
// never splits inside a character.
type Chunker struct {
	size    int
	overlap int
}

// New creates a Chunker. Size must be positive and overlap must satisfy
// 0 <= overlap < size; anything else is a configuration error reported at
// startup, not per call.
func New(size, overlap int) (*Chunker, error) {
	if size <= 0 {
		return nil, fmt.Errorf("chunker: size must be positive, got %d", size)
	}
	if overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("chunker: overlap must be in [0, size), got overlap=%d size=%d", overlap, size)
	}
	return &Chunker{size: size, overlap: overlap}, nil
}

// Size returns the configured chunk size in runes.
func (c *Chunker) Size() int { return c.size }

// Overlap returns the configured overlap in runes.
func (c *Chunker) Overlap() int { return c.overlap }

// Process splits text into ordered chunks. Consecutive chunks share exactly
// the configured overlap, except where a chunk end was rounded forward to a
// word boundary (bounded by boundaryTolerance) and for the final chunk,
// which may be shorter. Chunking is deterministic: identical input always
// yields identical output. Stripping the leading overlap from every chunk
// after the first and concatenating reconstructs the input.
func (c *Chunker) Process(text string) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	if len(runes) <= c.size {
		return []string{text}
	}

	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + c.size
		if end >= len(runes) {
			chunks = append(chunks, string(runes[start:]))
			break
		}

		end = roundToBoundary(runes, end)
		chunks = append(chunks, string(runes[start:end]))

		if end >= len(runes) {
			break
		}
		start = end - c.overlap
	}
	return chunks
}

// roundToBoundary moves end forward to the nearest whitespace within
// boundaryTolerance runes, so words are not cut in half. If no boundary
// is found in range the hard cut stands.
func roundToBoundary(runes []rune, end int) int {
	if unicode.IsSpace(runes[end-1]) || unicode.IsSpace(runes[end]) {
		return end
	}
	limit := end + boundaryTolerance
	if limit > len(runes) {
		limit = len(runes)
	}
	for i := end; i < limit; i++ {
		if unicode.IsSpace(runes[i]) {
			return i
		}
	}
	return end
}
