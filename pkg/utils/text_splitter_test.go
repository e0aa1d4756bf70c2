package utils

import (
	"strings"
	"testing"
)

// rebuild joins chunks back together by locating the real overlap between
// neighbours. Test inputs use distinct words so the widest textual match is
// the actual overlap.
func rebuild(chunks []string, maxOverlap int) string {
	if len(chunks) == 0 {
		return ""
	}
	out := chunks[0]
	for i := 1; i < len(chunks); i++ {
		prev := []rune(chunks[i-1])
		cur := []rune(chunks[i])

		limit := maxOverlap
		if len(prev) < limit {
			limit = len(prev)
		}
		if len(cur) < limit {
			limit = len(cur)
		}

		matched := 0
		for cand := limit; cand > 0; cand-- {
			if string(prev[len(prev)-cand:]) == string(cur[:cand]) {
				matched = cand
				break
			}
		}
		out += string(cur[matched:])
	}
	return out
}

func words(n int) string {
	parts := make([]string, 0, n)
	alphabet := []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf", "hotel", "india", "juliet"}
	for i := 0; i < n; i++ {
		parts = append(parts, alphabet[i%len(alphabet)]+string(rune('a'+i/len(alphabet))))
	}
	return strings.Join(parts, " ")
}

func TestSplitTextBasics(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		chunkSize int
		overlap   int
		want      int // expected chunk count, -1 to skip the count check
	}{
		{"empty input", "", 100, 10, 0},
		{"whitespace only", "   \n\t  ", 100, 10, 0},
		{"shorter than chunk", "short text", 100, 10, 1},
		{"exactly chunk size", strings.Repeat("x", 20), 20, 5, 1},
		{"long text splits", words(60), 40, 10, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitText(tt.text, tt.chunkSize, tt.overlap)

			if tt.want >= 0 && len(got) != tt.want {
				t.Fatalf("chunk count = %d, want %d", len(got), tt.want)
			}
			if tt.want == 1 && got[0] != tt.text {
				t.Errorf("single chunk should equal input, got %q", got[0])
			}
			for i, c := range got {
				if len([]rune(c)) > tt.chunkSize {
					t.Errorf("chunk %d has %d runes, max %d", i, len([]rune(c)), tt.chunkSize)
				}
			}
			if len(got) > 1 {
				if rebuilt := rebuild(got, tt.overlap); rebuilt != tt.text {
					t.Errorf("rebuilt text differs from input\n got: %q\nwant: %q", rebuilt, tt.text)
				}
			}
		})
	}
}

func TestSplitTextPrefersParagraphBreak(t *testing.T) {
	text := "one two three four.\n\nfive six seven eight nine ten eleven twelve"
	chunks := SplitText(text, 30, 5)

	if len(chunks) < 2 {
		t.Fatalf("expected a split, got %d chunks", len(chunks))
	}
	if !strings.HasSuffix(chunks[0], "\n\n") {
		t.Errorf("first chunk should end at the paragraph break, got %q", chunks[0])
	}
	if rebuilt := rebuild(chunks, 5); rebuilt != text {
		t.Errorf("rebuilt text differs from input\n got: %q\nwant: %q", rebuilt, text)
	}
}

func TestSplitTextPrefersSentenceEnd(t *testing.T) {
	text := "alpha bravo charlie delta. echo foxtrot golf hotel india juliet kilo lima"
	chunks := SplitText(text, 32, 4)

	if len(chunks) < 2 {
		t.Fatalf("expected a split, got %d chunks", len(chunks))
	}
	if !strings.HasSuffix(chunks[0], ". ") {
		t.Errorf("first chunk should end after the sentence, got %q", chunks[0])
	}
}

func TestSplitTextOverlapCarriesContext(t *testing.T) {
	text := words(50)
	overlap := 10
	chunks := SplitText(text, 40, overlap)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i := 1; i < len(chunks); i++ {
		prev := []rune(chunks[i-1])
		cur := []rune(chunks[i])

		found := false
		for cand := overlap; cand > 0; cand-- {
			if cand > len(prev) || cand > len(cur) {
				continue
			}
			if string(prev[len(prev)-cand:]) == string(cur[:cand]) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("chunks %d and %d share no overlap", i-1, i)
		}
	}
}

func TestSplitTextDegenerateOverlapTerminates(t *testing.T) {
	text := words(40)

	// overlap >= chunkSize falls back to disjoint windows instead of looping
	chunks := SplitText(text, 20, 20)
	if len(chunks) == 0 {
		t.Fatal("expected chunks")
	}
	if rebuilt := rebuild(chunks, 20); rebuilt != text {
		t.Errorf("coverage lost under degenerate overlap\n got: %q\nwant: %q", rebuilt, text)
	}
}

func TestSplitTextCountsRunesNotBytes(t *testing.T) {
	text := strings.Repeat("héllö wörld ", 12)
	chunks := SplitText(text, 25, 5)

	for i, c := range chunks {
		if n := len([]rune(c)); n > 25 {
			t.Errorf("chunk %d has %d runes, max 25", i, n)
		}
	}
}
