package upload

import (
	"fmt"
	"strings"
	"time"

	"news-shorts-pipeline/config"
	"news-shorts-pipeline/types"
)

// BuildMetadata assembles the upload metadata deterministically from
// the news item and script, without another model call.
func BuildMetadata(cfg *config.Config, news *types.NewsItem, script *types.Script) *types.VideoMetadata {
	title := script.Headline
	if title == "" {
		title = news.Title
	}
	title = truncateTitle(title)

	var desc strings.Builder
	desc.WriteString(script.Hook)
	desc.WriteString("\n\n")
	desc.WriteString(script.Body)
	desc.WriteString("\n\nFuente: ")
	desc.WriteString(news.Source)
	if news.SourceURL != "" {
		desc.WriteString("\n")
		desc.WriteString(news.SourceURL)
	}
	desc.WriteString(fmt.Sprintf("\n\n#noticias #%s", strings.ReplaceAll(strings.ToLower(news.Topic), " ", "")))

	tags := []string{"noticias", "actualidad", "shorts", "noticias en español"}
	if news.Topic != "" {
		tags = append(tags, news.Topic)
	}
	if news.Company != "" {
		tags = append(tags, news.Company)
	}
	tags = append(tags, news.Keywords...)

	return &types.VideoMetadata{
		Title:            title,
		Description:      desc.String(),
		Tags:             tags,
		CategoryID:       cfg.Upload.CategoryID,
		Visibility:       cfg.Upload.Visibility,
		ScheduledTimeUTC: time.Now().UTC().Add(30 * time.Minute).Format(time.RFC3339),
	}
}

// truncateTitle caps the title at YouTube's practical limit without
// splitting a multibyte rune in accented Spanish text.
func truncateTitle(title string) string {
	const maxRunes = 95
	runes := []rune(title)
	if len(runes) <= maxRunes {
		return title
	}
	return string(runes[:maxRunes])
}
