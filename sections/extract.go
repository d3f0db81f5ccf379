package sections

import (
	"regexp"
	"strings"
)

// Sentence-level heuristics for pulling stage text out of the full
// narration. Deliberately regex-based and isolated here so they can be
// swapped for something smarter without touching the planner.

var firstSentenceRe = regexp.MustCompile(`^[^.!?]+[.!?]`)

var sentenceSplitRe = regexp.MustCompile(`[.!?]+`)

// ExtractHook returns the first sentence of the script, or its first
// 100 characters when no sentence terminator is found.
func ExtractHook(script string) string {
	script = strings.TrimSpace(script)
	if m := firstSentenceRe.FindString(script); m != "" {
		return strings.TrimSpace(m)
	}
	if len(script) > 100 {
		return script[:100]
	}
	return script
}

// ExtractBody drops the leading and trailing sentence and rejoins the
// middle. Scripts with two or fewer sentences come back unmodified.
func ExtractBody(script string) string {
	sentences := splitSentences(script)
	if len(sentences) <= 2 {
		return script
	}
	return strings.Join(sentences[1:len(sentences)-1], ". ")
}

// ExtractImpact returns the second-to-last sentence, or the empty
// string when there are fewer than two.
func ExtractImpact(script string) string {
	sentences := splitSentences(script)
	if len(sentences) < 2 {
		return ""
	}
	return sentences[len(sentences)-2]
}

func splitSentences(script string) []string {
	parts := sentenceSplitRe.Split(script, -1)
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
