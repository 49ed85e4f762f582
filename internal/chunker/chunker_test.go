package chunker

import (
	"strings"
	"testing"
)

func TestNewRejectsBadParameters(t *testing.T) {
	cases := []struct {
		name          string
		size, overlap int
	}{
		{"zero size", 0, 0},
		{"negative size", -1, 0},
		{"negative overlap", 100, -1},
		{"overlap equals size", 100, 100},
		{"overlap exceeds size", 100, 150},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.size, tc.overlap); err == nil {
				t.Errorf("New(%d, %d): expected error", tc.size, tc.overlap)
			}
		})
	}
}

func TestProcessSingleChunk(t *testing.T) {
	c, err := New(100, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// Content exactly chunk_size long with no overlap produces one chunk.
	text := strings.Repeat("a", 100)
	chunks := c.Process(text)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != text {
		t.Errorf("chunk does not match input")
	}
}

func TestProcessTwoChunksShareOverlap(t *testing.T) {
	const size, overlap = 100, 20
	c, err := New(size, overlap)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// Content of length 2*size - overlap splits into exactly two chunks.
	// Spaces at the cut points keep boundary rounding out of the picture.
	text := strings.Repeat("x", size-1) + " " + strings.Repeat("y", size-overlap)
	if len(text) != 2*size-overlap {
		t.Fatalf("test setup: text length %d, want %d", len(text), 2*size-overlap)
	}

	chunks := c.Process(text)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if got := chunks[0][len(chunks[0])-overlap:]; got != chunks[1][:overlap] {
		t.Errorf("chunks do not share %d overlapping characters", overlap)
	}
}

func TestProcessReconstruction(t *testing.T) {
	texts := []string{
		"GAP bölgesi tarihi ve kültürel zenginlikleriyle ünlüdür. Göbeklitepe, Balıklıgöl, Nemrut Dağı ve Harran başlıca duraklardır. " + strings.Repeat("Mezopotamya ovası boyunca uzanan rotalar gezginleri bekler. ", 20),
		strings.Repeat("kelime ", 200),
		"short",
	}

	for _, text := range texts {
		for _, params := range []struct{ size, overlap int }{{64, 0}, {64, 16}, {128, 50}} {
			c, err := New(params.size, params.overlap)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			chunks := c.Process(text)
			if len(chunks) == 0 {
				t.Fatalf("no chunks for non-empty text")
			}

			var sb strings.Builder
			sb.WriteString(chunks[0])
			for _, chunk := range chunks[1:] {
				runes := []rune(chunk)
				sb.WriteString(string(runes[params.overlap:]))
			}
			if sb.String() != text {
				t.Errorf("size=%d overlap=%d: reconstruction does not reproduce input", params.size, params.overlap)
			}
		}
	}
}

func TestProcessDeterministic(t *testing.T) {
	c, err := New(50, 10)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	text := strings.Repeat("Şanlıurfa Mardin Gaziantep Diyarbakır Batman ", 30)

	first := c.Process(text)
	second := c.Process(text)
	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("chunk %d differs between runs", i)
		}
	}
}

func TestProcessRespectsWordBoundaries(t *testing.T) {
	c, err := New(20, 5)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	text := "kulturel zenginlik rotasi boyunca tarihi yerlesimler ve antik kentler"

	for i, chunk := range c.Process(text) {
		runes := []rune(chunk)
		if len(runes) > c.Size()+boundaryTolerance {
			t.Errorf("chunk %d exceeds size plus tolerance: %d runes", i, len(runes))
		}
	}
}

func TestProcessEmptyText(t *testing.T) {
	c, err := New(100, 10)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if chunks := c.Process(""); chunks != nil {
		t.Errorf("expected nil chunks for empty text, got %d", len(chunks))
	}
}
