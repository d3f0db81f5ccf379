package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"news-shorts-pipeline/config"
	"news-shorts-pipeline/logging"
	"news-shorts-pipeline/types"
)

const seoSystemPrompt = `Eres estratega SEO de YouTube especializado en shorts de noticias en español.

Responde SOLO con JSON válido, sin markdown ni explicaciones, con exactamente estos campos:
- "title": titular con gancho, máximo 90 caracteres, honesto con la noticia
- "description": 3-4 frases con contexto, fuente y llamada a seguir el canal
- "tags": lista de 10-15 etiquetas en español, mezcla de genéricas y específicas

Estilo: directo, actual, cero clickbait engañoso.`

// Generator writes upload metadata via Groq, with the deterministic
// builder as fallback when the model is unavailable or answers garbage.
type Generator struct {
	cfg        *config.Config
	httpClient *http.Client
	log        zerolog.Logger

	// endpoint is the chat-completions URL, swappable in tests
	endpoint string
}

// NewGenerator creates a metadata Generator
func NewGenerator(cfg *config.Config) *Generator {
	return &Generator{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        logging.WithComponent("upload.metadata"),
		endpoint:   "https://api.groq.com/openai/v1/chat/completions",
	}
}

type seoPayload struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// Generate returns SEO metadata for the video. Any model failure logs a
// warning and falls back to BuildMetadata, so the upload never blocks
// on Groq.
func (g *Generator) Generate(ctx context.Context, news *types.NewsItem, script *types.Script) *types.VideoMetadata {
	meta := BuildMetadata(g.cfg, news, script)

	seo, err := g.requestSEO(ctx, news, script)
	if err != nil {
		g.log.Warn().Err(err).Msg("seo metadata generation failed, using deterministic metadata")
		return meta
	}

	meta.Title = truncateTitle(seo.Title)
	meta.Description = seo.Description
	if len(seo.Tags) > 0 {
		meta.Tags = seo.Tags
	}
	g.log.Info().Str("title", meta.Title).Int("tags", len(meta.Tags)).Msg("seo metadata generated")
	return meta
}

func (g *Generator) requestSEO(ctx context.Context, news *types.NewsItem, script *types.Script) (*seoPayload, error) {
	apiKey := os.Getenv("GROQ_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GROQ_API_KEY not set")
	}

	userPrompt := fmt.Sprintf("Noticia: %s\n\nGuion del vídeo: %s\n\nFuente: %s",
		news.Title, script.FullScript, news.Source)
	reqBody, err := json.Marshal(map[string]any{
		"model": g.cfg.Script.GroqModel,
		"messages": []map[string]string{
			{"role": "system", "content": seoSystemPrompt},
			{"role": "user", "content": userPrompt},
		},
		"temperature": 0.7,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("groq request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("groq: HTTP %d: %s", resp.StatusCode, body)
	}

	var gr struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &gr); err != nil {
		return nil, fmt.Errorf("parse groq response: %w", err)
	}
	if len(gr.Choices) == 0 {
		return nil, fmt.Errorf("groq returned no choices")
	}

	raw := strings.TrimSpace(gr.Choices[0].Message.Content)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var seo seoPayload
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &seo); err != nil {
		return nil, fmt.Errorf("model returned invalid JSON: %w", err)
	}
	if seo.Title == "" || seo.Description == "" {
		return nil, fmt.Errorf("model response missing title or description")
	}
	return &seo, nil
}
