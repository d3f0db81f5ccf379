package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news-shorts-pipeline/types"
)

func TestBuildScript(t *testing.T) {
	news := &types.NewsItem{ID: "n1", Title: "Titular"}
	raw := `{"hook":"Gancho.","headline":"Titular corto","body":"Cuerpo. Más cuerpo.","impact":"Importa.","cta":"Sígueme."}`

	s, err := buildScript(news, raw)
	require.NoError(t, err)
	assert.Equal(t, "n1", s.NewsID)
	assert.Equal(t, "Gancho.", s.Hook)
	assert.Equal(t, "Gancho. Titular corto Cuerpo. Más cuerpo. Importa. Sígueme.", s.FullScript)
}

func TestBuildScriptStripsCodeFence(t *testing.T) {
	news := &types.NewsItem{ID: "n1"}
	raw := "```json\n{\"hook\":\"H.\",\"body\":\"B.\"}\n```"

	s, err := buildScript(news, raw)
	require.NoError(t, err)
	assert.Equal(t, "H.", s.Hook)
	assert.Equal(t, "H. B.", s.FullScript)
}

func TestBuildScriptRejectsInvalidJSON(t *testing.T) {
	_, err := buildScript(&types.NewsItem{}, "lo siento, no puedo")
	require.Error(t, err)
}

func TestBuildScriptRequiresHookAndBody(t *testing.T) {
	_, err := buildScript(&types.NewsItem{}, `{"headline":"solo titular"}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing hook or body")
}
