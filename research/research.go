// Package research collects candidate news items, scores them and
// picks the best unused one for the next video.
package research

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/vartanbeno/go-reddit/v2/reddit"

	"news-shorts-pipeline/config"
	"news-shorts-pipeline/logging"
	"news-shorts-pipeline/types"
)

// Scraper holds all news-gathering dependencies
type Scraper struct {
	cfg        *config.Config
	reddit     *reddit.Client
	httpClient *http.Client
	usedNews   map[string]bool
	log        zerolog.Logger
}

// New creates a new Scraper. Reddit runs read-only, no credentials.
func New(cfg *config.Config) (*Scraper, error) {
	client, err := reddit.NewReadonlyClient()
	if err != nil {
		return nil, fmt.Errorf("reddit client: %w", err)
	}
	return &Scraper{
		cfg:        cfg,
		reddit:     client,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		usedNews:   loadUsedNews(cfg.Paths.UsedNewsLog),
		log:        logging.WithComponent("research"),
	}, nil
}

// Run fetches, scores, deduplicates and returns the best news item
func (s *Scraper) Run(ctx context.Context) (*types.NewsItem, error) {
	var candidates []*types.NewsItem

	redditItems, err := s.scrapeReddit(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("reddit scrape failed")
	} else {
		candidates = append(candidates, redditItems...)
	}

	rssItems, err := s.scrapeGoogleNewsRSS(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("rss scrape failed")
	} else {
		candidates = append(candidates, rssItems...)
	}

	if len(candidates) == 0 {
		return nil, fmt.Errorf("no news items found from any source")
	}

	for _, item := range candidates {
		item.Score = s.scoreItem(item)
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	for _, item := range candidates {
		if !s.usedNews[item.ID] {
			s.log.Info().Str("title", item.Title).Int("score", item.Score).Msg("selected news item")
			s.markUsed(item)
			return item, nil
		}
	}
	return nil, fmt.Errorf("all %d candidate items have been used already", len(candidates))
}

func (s *Scraper) scrapeReddit(ctx context.Context) ([]*types.NewsItem, error) {
	var items []*types.NewsItem
	for _, sub := range s.cfg.Research.Subreddits {
		posts, _, err := s.reddit.Subreddit.HotPosts(ctx, sub, &reddit.ListOptions{
			Limit: s.cfg.Research.MaxItemsToEval,
		})
		if err != nil {
			s.log.Warn().Err(err).Str("subreddit", sub).Msg("subreddit fetch failed")
			continue
		}
		for _, post := range posts {
			if post.Score < s.cfg.Research.MinRedditScore {
				continue
			}
			item := &types.NewsItem{
				ID:          "reddit_" + post.ID,
				Title:       post.Title,
				Body:        post.Body,
				Source:      "reddit/" + sub,
				SourceURL:   post.URL,
				NewsType:    "community",
				PublishedAt: post.Created.Format(time.RFC3339),
			}
			// image posts link the media directly; that becomes the
			// render's hero image
			if isImageURL(post.URL) {
				item.ImageURLs = append(item.ImageURLs, post.URL)
			}
			items = append(items, item)
		}
	}
	return items, nil
}

type rssFeed struct {
	Channel struct {
		Items []struct {
			Title   string `xml:"title"`
			Link    string `xml:"link"`
			PubDate string `xml:"pubDate"`
			Source  string `xml:"source"`
		} `xml:"item"`
	} `xml:"channel"`
}

func (s *Scraper) scrapeGoogleNewsRSS(ctx context.Context) ([]*types.NewsItem, error) {
	locale := s.cfg.Research.GoogleNewsLocale
	if locale == "" {
		locale = "es"
	}
	feedURL := fmt.Sprintf("https://news.google.com/rss?hl=%s&gl=ES&ceid=ES:%s", locale, locale)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google news rss: HTTP %d", resp.StatusCode)
	}

	var feed rssFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parse rss: %w", err)
	}

	var items []*types.NewsItem
	for _, it := range feed.Channel.Items {
		if len(items) >= s.cfg.Research.MaxItemsToEval {
			break
		}
		items = append(items, &types.NewsItem{
			ID:          "rss_" + uuid.NewString()[:8],
			Title:       it.Title,
			Source:      it.Source,
			SourceURL:   it.Link,
			NewsType:    "breaking",
			PublishedAt: it.PubDate,
		})
	}
	return items, nil
}

// scoreItem ranks an item by keyword hits in its title and recency
func (s *Scraper) scoreItem(item *types.NewsItem) int {
	score := 0
	title := strings.ToLower(item.Title)
	for _, kw := range s.cfg.Research.NewsKeywords {
		if strings.Contains(title, strings.ToLower(kw)) {
			score += 10
		}
	}
	if published, ok := parsePublished(item.PublishedAt); ok {
		ageHours := time.Since(published).Hours()
		switch {
		case ageHours < 6:
			score += 30
		case ageHours < 24:
			score += 15
		case ageHours < 72:
			score += 5
		}
	}
	return score
}

// reddit items carry RFC3339, RSS feeds RFC1123-style pubDates
var publishedFormats = []string{time.RFC3339, time.RFC1123Z, time.RFC1123}

func parsePublished(value string) (time.Time, bool) {
	for _, layout := range publishedFormats {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func isImageURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	switch strings.ToLower(path.Ext(u.Path)) {
	case ".jpg", ".jpeg", ".png", ".webp", ".gif":
		return true
	}
	return false
}

func loadUsedNews(path string) map[string]bool {
	used := make(map[string]bool)
	data, err := os.ReadFile(path)
	if err != nil {
		return used
	}
	_ = json.Unmarshal(data, &used)
	return used
}

func (s *Scraper) markUsed(item *types.NewsItem) {
	s.usedNews[item.ID] = true
	data, _ := json.MarshalIndent(s.usedNews, "", "  ")
	if err := os.WriteFile(s.cfg.Paths.UsedNewsLog, data, 0644); err != nil {
		s.log.Warn().Err(err).Msg("could not persist used-news log")
	}
}
