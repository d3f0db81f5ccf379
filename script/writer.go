// Package script turns a news item into a Spanish narration script via
// the Groq chat-completions API.
package script

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

const groqEndpoint = "https://api.groq.com/openai/v1/chat/completions"

const systemPrompt = `Eres guionista de vídeos cortos de noticias en español. Escribes narraciones de 45-60 segundos, directas y con gancho.

Responde SOLO con JSON válido, sin markdown ni explicaciones, con exactamente estos campos:
- "hook": una frase impactante que abre el vídeo
- "headline": el titular en máximo 8 palabras
- "body": el desarrollo de la noticia en 3-5 frases cortas
- "impact": una frase sobre por qué importa
- "cta": un cierre pidiendo seguir el canal

Estilo: frases cortas, presente de indicativo, cero relleno, datos concretos.`

// Writer generates scripts using the Groq API
type Writer struct {
	cfg        *config.Config
	httpClient *http.Client
	log        zerolog.Logger
}

// New creates a new script Writer
func New(cfg *config.Config) *Writer {
	return &Writer{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		log:        logging.WithComponent("script"),
	}
}

type groqRequest struct {
	Model       string        `json:"model"`
	Messages    []groqMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type groqMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type groqResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type scriptPayload struct {
	Hook     string `json:"hook"`
	Headline string `json:"headline"`
	Body     string `json:"body"`
	Impact   string `json:"impact"`
	CTA      string `json:"cta"`
}

// Run generates the narration script for a news item
func (w *Writer) Run(ctx context.Context, news *types.NewsItem) (*types.Script, error) {
	apiKey := os.Getenv("GROQ_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GROQ_API_KEY not set")
	}

	userPrompt := fmt.Sprintf("Noticia: %s\n\nDetalle: %s\n\nFuente: %s", news.Title, news.Body, news.Source)
	reqBody, err := json.Marshal(groqRequest{
		Model: w.cfg.Script.GroqModel,
		Messages: []groqMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: w.cfg.Script.Temperature,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, groqEndpoint, bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
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

	var gr groqResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return nil, fmt.Errorf("parse groq response: %w", err)
	}
	if len(gr.Choices) == 0 {
		return nil, fmt.Errorf("groq returned no choices")
	}

	return buildScript(news, gr.Choices[0].Message.Content)
}

// buildScript parses the model's JSON answer and assembles the full
// narration in narrative order.
func buildScript(news *types.NewsItem, raw string) (*types.Script, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var p scriptPayload
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &p); err != nil {
		return nil, fmt.Errorf("model returned invalid JSON: %w", err)
	}
	if p.Hook == "" || p.Body == "" {
		return nil, fmt.Errorf("model response missing hook or body")
	}

	parts := []string{p.Hook, p.Headline, p.Body, p.Impact, p.CTA}
	var nonEmpty []string
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			nonEmpty = append(nonEmpty, part)
		}
	}

	return &types.Script{
		NewsID:     news.ID,
		Title:      news.Title,
		Hook:       p.Hook,
		Headline:   p.Headline,
		Body:       p.Body,
		Impact:     p.Impact,
		CTA:        p.CTA,
		FullScript: strings.Join(nonEmpty, " "),
	}, nil
}
