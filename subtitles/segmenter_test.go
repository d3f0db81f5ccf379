package subtitles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news-shorts-pipeline/timing"
)

func TestSegmentSpanishNarration(t *testing.T) {
	words := Segment("Hola. Esto es una prueba. Genial.", 10, 30, 2)
	require.Len(t, words, 6)

	texts := make([]string, len(words))
	for i, w := range words {
		texts[i] = w.Word
	}
	assert.Equal(t, []string{"Hola", "Esto", "es", "una", "prueba", "Genial"}, texts)

	// sentence starts: first word and words following a terminator
	assert.True(t, words[0].IsStartOfSentence, "Hola")
	assert.True(t, words[1].IsStartOfSentence, "Esto follows Hola.")
	assert.False(t, words[2].IsStartOfSentence)
	assert.True(t, words[5].IsStartOfSentence, "Genial follows prueba.")

	// sentence ends checked on the raw token
	assert.True(t, words[0].IsEndOfSentence, "Hola.")
	assert.False(t, words[3].IsEndOfSentence)
	assert.True(t, words[4].IsEndOfSentence, "prueba.")
	assert.True(t, words[5].IsEndOfSentence, "Genial.")
}

func TestSegmentTiming(t *testing.T) {
	const (
		duration = 10.0
		fps      = 30
		padding  = 2
	)
	words := Segment("uno dos tres cuatro cinco seis", duration, fps, padding)
	require.Len(t, words, 6)

	total := timing.SecondsToFrames(duration, fps)
	for i, w := range words {
		assert.Equal(t, i, w.Index)
		assert.LessOrEqual(t, w.StartFrame, w.EndFrame, "word %d", i)
		assert.GreaterOrEqual(t, w.StartFrame, 0)
		assert.LessOrEqual(t, w.EndFrame, total)
	}
	// 300 frames / 6 words = 50 frames per word, minus padding on each end
	assert.Equal(t, 0, words[0].StartFrame)
	assert.Equal(t, 48, words[0].EndFrame)
	assert.Equal(t, 50, words[1].StartFrame)
	assert.Equal(t, 298, words[5].EndFrame)
}

func TestSegmentEmptyScript(t *testing.T) {
	assert.Empty(t, Segment("", 10, 30, 2))
	assert.Empty(t, Segment("   \n\t ", 10, 30, 2))
}

func TestSegmentSingleWord(t *testing.T) {
	words := Segment("¡Increíble!", 2, 30, 2)
	require.Len(t, words, 1)
	assert.Equal(t, "¡Increíble", words[0].Word)
	assert.True(t, words[0].IsStartOfSentence)
	assert.True(t, words[0].IsEndOfSentence)
	assert.Equal(t, 0, words[0].StartFrame)
	assert.Equal(t, 58, words[0].EndFrame)
}

// Tiny timelines must not produce inverted ranges even when the padding
// exceeds a word's frame share.
func TestSegmentPaddingLargerThanWordSpan(t *testing.T) {
	words := Segment("a b c d e f g h i j", 0.2, 30, 2)
	for i, w := range words {
		assert.LessOrEqual(t, w.StartFrame, w.EndFrame, "word %d", i)
	}
}
