// Package subtitles derives frame-aligned subtitle words from narration
// text. Timing is distributed evenly across the words of the script:
// the narration pace of the TTS voice is close enough to uniform that
// even spacing stays in sync over a sub-minute video.
package subtitles

import (
	"math"
	"strings"

	"news-shorts-pipeline/timing"
	"news-shorts-pipeline/types"
)

// sentence terminators checked on the raw (pre-strip) token
const sentenceEnders = ".!?"

// trailing punctuation removed from the displayed word
const trimSet = ".,!?;:"

// Segment splits narration into time-stamped words spanning the given
// duration. padding frames are trimmed off each word's end to leave a
// small gap between consecutive words. An empty or whitespace-only
// script yields an empty slice.
func Segment(script string, durationSec float64, fps int, padding int) []types.SubtitleWord {
	tokens := strings.Fields(script)
	if len(tokens) == 0 {
		return nil
	}

	totalFrames := timing.SecondsToFrames(durationSec, fps)

	// Kept as float per word to avoid cumulative rounding drift over
	// long scripts; rounding happens at each boundary instead.
	framesPerWord := float64(totalFrames) / float64(len(tokens))

	words := make([]types.SubtitleWord, 0, len(tokens))
	for i, raw := range tokens {
		start := clamp(int(math.Round(float64(i)*framesPerWord)), 0, totalFrames)
		end := clamp(int(math.Round(float64(i+1)*framesPerWord))-padding, 0, totalFrames)
		if end < start {
			end = start
		}

		startOfSentence := i == 0 || endsSentence(tokens[i-1])

		words = append(words, types.SubtitleWord{
			Word:              strings.TrimRight(raw, trimSet),
			StartFrame:        start,
			EndFrame:          end,
			Index:             i,
			IsStartOfSentence: startOfSentence,
			IsEndOfSentence:   endsSentence(raw),
		})
	}
	return words
}

func endsSentence(token string) bool {
	if token == "" {
		return false
	}
	return strings.ContainsRune(sentenceEnders, rune(token[len(token)-1]))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
