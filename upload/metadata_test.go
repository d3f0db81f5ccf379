package upload

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"news-shorts-pipeline/config"
	"news-shorts-pipeline/types"
)

func TestBuildMetadata(t *testing.T) {
	cfg := config.Default()
	cfg.Upload.CategoryID = "25"
	cfg.Upload.Visibility = "public"

	news := &types.NewsItem{
		Title:     "Inditex bate previsiones en el tercer trimestre",
		Source:    "expansion",
		SourceURL: "https://example.com/n",
		Topic:     "empresas",
		Company:   "Inditex",
		Keywords:  []string{"resultados", "bolsa"},
	}
	sc := &types.Script{
		Headline: "Inditex bate previsiones",
		Hook:     "Inditex vuelve a sorprender.",
		Body:     "Las ventas crecen. El margen aguanta.",
	}

	meta := BuildMetadata(cfg, news, sc)
	assert.Equal(t, "Inditex bate previsiones", meta.Title)
	assert.Contains(t, meta.Description, sc.Hook)
	assert.Contains(t, meta.Description, news.SourceURL)
	assert.Contains(t, meta.Tags, "Inditex")
	assert.Contains(t, meta.Tags, "resultados")
	assert.Equal(t, "25", meta.CategoryID)
	assert.Equal(t, "public", meta.Visibility)
	assert.NotEmpty(t, meta.ScheduledTimeUTC)
}

func TestBuildMetadataFallsBackToNewsTitle(t *testing.T) {
	meta := BuildMetadata(config.Default(), &types.NewsItem{Title: "Titular largo"}, &types.Script{})
	assert.Equal(t, "Titular largo", meta.Title)
}
