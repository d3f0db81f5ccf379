package sections

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news-shorts-pipeline/timing"
)

const sampleScript = "Apple presenta un chip nuevo. El anuncio llega en plena guerra de la IA. " +
	"Los analistas esperan un salto de rendimiento. La competencia no se queda quieta. Esto apenas empieza."

func TestPlanFiftySeconds(t *testing.T) {
	secs, err := Plan(sampleScript, "Apple presenta un chip nuevo", 50, 30, Options{})
	require.NoError(t, err)
	require.Len(t, secs, 5)

	names := []string{"hook", "headline", "main", "impact", "outro"}
	ends := []int{225, 330, 1155, 1290, 1500}
	for i, s := range secs {
		assert.Equal(t, names[i], s.Name)
		assert.Equal(t, ends[i], s.EndFrame, s.Name)
	}
	assert.Equal(t, 0, secs[0].StartFrame)
	assert.InDelta(t, 7.5, secs[0].DurationSeconds, 1e-9)
	assert.InDelta(t, 3.5, secs[1].DurationSeconds, 1e-9)
	assert.InDelta(t, 27.5, secs[2].DurationSeconds, 1e-9)
	assert.InDelta(t, 4.5, secs[3].DurationSeconds, 1e-9)
	assert.InDelta(t, 6.5, secs[4].DurationSeconds, 1e-9)
}

// The five ranges must tile [0, totalFrames) with no gaps or overlaps
// for any legal duration, and the outro must end on the last frame.
func TestPlanFrameCoverage(t *testing.T) {
	for _, fps := range []int{24, 25, 30, 60} {
		for _, dur := range []float64{21, 25, 33.7, 45.2, 50, 58, 59.9, 120} {
			secs, err := Plan(sampleScript, "título", dur, fps, Options{})
			require.NoError(t, err)
			require.Len(t, secs, 5)

			total := timing.SecondsToFrames(dur, fps)
			assert.Equal(t, 0, secs[0].StartFrame, "fps=%d dur=%v", fps, dur)
			for i := 1; i < len(secs); i++ {
				assert.Equal(t, secs[i-1].EndFrame, secs[i].StartFrame,
					"fps=%d dur=%v: gap between %s and %s", fps, dur, secs[i-1].Name, secs[i].Name)
			}
			assert.Equal(t, total, secs[4].EndFrame, "fps=%d dur=%v", fps, dur)
		}
	}
}

func TestPlanRejectsTooShortAudio(t *testing.T) {
	_, err := Plan(sampleScript, "título", 15, 30, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too short")
}

func TestPlanContentOverrides(t *testing.T) {
	secs, err := Plan(sampleScript, "Titular", 50, 30, Options{
		Hook:    "Gancho explícito.",
		Body:    "Cuerpo explícito.",
		Opinion: "Opinión explícita.",
		CTA:     "Suscríbete.",
	})
	require.NoError(t, err)
	assert.Equal(t, "Gancho explícito.", secs[0].Content)
	assert.Equal(t, "Titular", secs[1].Content)
	assert.Equal(t, "Cuerpo explícito.", secs[2].Content)
	assert.Equal(t, "Opinión explícita.", secs[3].Content)
	assert.Equal(t, "Suscríbete.", secs[4].Content)
}

func TestPlanExtractsContentFromScript(t *testing.T) {
	secs, err := Plan(sampleScript, "Titular", 50, 30, Options{})
	require.NoError(t, err)
	assert.Equal(t, "Apple presenta un chip nuevo.", secs[0].Content)
	assert.Equal(t, "La competencia no se queda quieta", secs[3].Content)
	assert.NotEmpty(t, secs[4].Content)
}

func TestPlanAssignsImages(t *testing.T) {
	secs, err := Plan(sampleScript, "Titular", 50, 30, Options{
		HeroImage:    "staging/hero.jpg",
		ContextImage: "staging/context.jpg",
		OutroImage:   "branding/outro.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "staging/hero.jpg", secs[0].Image)
	assert.Equal(t, "staging/hero.jpg", secs[2].Image)
	assert.Equal(t, "staging/context.jpg", secs[3].Image)
	assert.Equal(t, "branding/outro.png", secs[4].Image)
}
