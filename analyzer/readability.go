package analyzer

import (
	"regexp"
	"strings"
)

var (
	sentenceSplitRe = regexp.MustCompile(`[.!?]+`)
	vowelGroupRe    = regexp.MustCompile(`[aeiouAEIOU]+`)
)

// FleschReadingEase computes an approximate Flesch Reading Ease score for
// plain text. Syllables are approximated by contiguous vowel groups; a word
// without any vowel group counts as one syllable. The result is clamped to
// [0,100], and zero sentences or zero words yield 0.
func FleschReadingEase(text string) float64 {
	sentences := 0
	for _, s := range sentenceSplitRe.Split(text, -1) {
		if strings.TrimSpace(s) != "" {
			sentences++
		}
	}

	words := strings.Fields(text)
	if sentences == 0 || len(words) == 0 {
		return 0
	}

	syllables := 0
	for _, w := range words {
		syllables += countSyllables(w)
	}

	score := 206.835 -
		1.015*(float64(len(words))/float64(sentences)) -
		84.6*(float64(syllables)/float64(len(words)))

	return clampScore(score)
}

func countSyllables(word string) int {
	groups := len(vowelGroupRe.FindAllString(word, -1))
	if groups == 0 {
		return 1
	}
	return groups
}
