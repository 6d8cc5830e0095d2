package analyzer

import "testing"

func TestFleschReadingEase_Empty(t *testing.T) {
	if got := FleschReadingEase(""); got != 0 {
		t.Errorf("Expected 0 for empty text, got %f", got)
	}
	if got := FleschReadingEase("   "); got != 0 {
		t.Errorf("Expected 0 for whitespace-only text, got %f", got)
	}
}

func TestFleschReadingEase_NoSentenceTerminator(t *testing.T) {
	// Words but no terminator: the single fragment still counts as a sentence.
	got := FleschReadingEase("just some words with no period")
	if got <= 0 || got > 100 {
		t.Errorf("Expected score in (0,100] for terminator-less text, got %f", got)
	}
}

func TestFleschReadingEase_SimpleText(t *testing.T) {
	// Short words, short sentences: should land near the top of the scale.
	got := FleschReadingEase("The cat sat. The dog ran. He saw it.")
	if got < 90 {
		t.Errorf("Expected very easy text to score >= 90, got %f", got)
	}
}

func TestFleschReadingEase_Clamped(t *testing.T) {
	// A single extremely long polysyllabic sentence drives the formula
	// negative; the result must clamp at 0.
	long := ""
	for i := 0; i < 50; i++ {
		long += "incomprehensibility administration surreptitious "
	}
	long += "."
	got := FleschReadingEase(long)
	if got != 0 {
		t.Errorf("Expected clamped score 0 for dense text, got %f", got)
	}
}

func TestCountSyllables(t *testing.T) {
	tests := []struct {
		word string
		want int
	}{
		{"cat", 1},
		{"beautiful", 3},
		{"queue", 1},
		{"xyz", 1}, // no vowel groups still counts as one
		{"AEIOU", 1},
	}

	for _, tt := range tests {
		if got := countSyllables(tt.word); got != tt.want {
			t.Errorf("countSyllables(%q) = %d, want %d", tt.word, got, tt.want)
		}
	}
}
