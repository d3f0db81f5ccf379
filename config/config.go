package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Research Research `yaml:"research"`
	Script   Script   `yaml:"script"`
	Audio    Audio    `yaml:"audio"`
	Render   Render   `yaml:"render"`
	Upload   Upload   `yaml:"upload"`
	Paths    Paths    `yaml:"paths"`
}

type Research struct {
	Subreddits       []string `yaml:"subreddits"`
	NewsKeywords     []string `yaml:"news_keywords"`
	LookbackDays     int      `yaml:"lookback_days"`
	MinRedditScore   int      `yaml:"min_reddit_score"`
	MaxItemsToEval   int      `yaml:"max_items_to_evaluate"`
	GoogleNewsLocale string   `yaml:"google_news_locale"`
}

type Script struct {
	GroqModel     string  `yaml:"groq_model"`
	Temperature   float64 `yaml:"temperature"`
	TargetSeconds int     `yaml:"target_seconds"`
}

type Audio struct {
	Voice        string `yaml:"voice"`
	OutputFormat string `yaml:"output_format"`
	SampleRate   int    `yaml:"sample_rate"`
}

// Render is the explicit configuration for the render orchestrator and
// the external engine invocation. Everything the engine run depends on
// lives here; there is no global render state.
type Render struct {
	WorkingDir      string `yaml:"working_dir"`      // render engine project root
	OutputDir       string `yaml:"output_dir"`       // finished videos
	StagingDir      string `yaml:"staging_dir"`      // staged audio/images, engine-readable
	TempDir         string `yaml:"temp_dir"`         // data contract + scratch
	Composition     string `yaml:"composition"`      // production composition id
	PreviewComp     string `yaml:"preview_comp"`     // preview composition id
	FPS             int    `yaml:"fps"`
	Width           int    `yaml:"width"`
	Height          int    `yaml:"height"`
	Codec           string `yaml:"codec"`
	PixelFormat     string `yaml:"pixel_format"`
	CRF             int    `yaml:"crf"`
	MaxRetries      int    `yaml:"max_retries"`
	RetryDelayMs    int    `yaml:"retry_delay_ms"`
	TimeoutMs       int    `yaml:"timeout_ms"`
	GPUEnabled      bool   `yaml:"gpu_enabled"`
	Concurrency     int    `yaml:"concurrency"`
	SubtitlePadding int    `yaml:"subtitle_padding"` // frames trimmed off each word's end
}

type Upload struct {
	Visibility        string `yaml:"visibility"`
	NotifySubscribers bool   `yaml:"notify_subscribers"`
	MadeForKids       bool   `yaml:"made_for_kids"`
	DefaultLanguage   string `yaml:"default_language"`
	CategoryID        string `yaml:"youtube_category_id"`
}

type Paths struct {
	UsedNewsLog string `yaml:"used_news_log"`
	Output      string `yaml:"output"`
	Logs        string `yaml:"logs"`
}

// RetryDelay returns the inter-attempt delay as a duration
func (r Render) RetryDelay() time.Duration {
	return time.Duration(r.RetryDelayMs) * time.Millisecond
}

// Timeout returns the per-attempt render timeout as a duration
func (r Render) Timeout() time.Duration {
	return time.Duration(r.TimeoutMs) * time.Millisecond
}

// Load reads config.yaml, applies defaults and returns a Config struct
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a Config with all render defaults filled in, for
// callers that construct the orchestrator without a config file.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	r := &c.Render
	if r.WorkingDir == "" {
		r.WorkingDir = "remotion"
	}
	if r.OutputDir == "" {
		r.OutputDir = "output/videos"
	}
	if r.StagingDir == "" {
		r.StagingDir = "remotion/public/staging"
	}
	if r.TempDir == "" {
		r.TempDir = "output/tmp"
	}
	if r.Composition == "" {
		r.Composition = "NewsShort"
	}
	if r.PreviewComp == "" {
		r.PreviewComp = "NewsShortPreview"
	}
	if r.FPS == 0 {
		r.FPS = 30
	}
	if r.Width == 0 {
		r.Width = 1080
	}
	if r.Height == 0 {
		r.Height = 1920
	}
	if r.Codec == "" {
		r.Codec = "h264"
	}
	if r.PixelFormat == "" {
		r.PixelFormat = "yuv420p"
	}
	if r.CRF == 0 {
		r.CRF = 18
	}
	if r.MaxRetries == 0 {
		r.MaxRetries = 3
	}
	if r.RetryDelayMs == 0 {
		r.RetryDelayMs = 5000
	}
	if r.TimeoutMs == 0 {
		r.TimeoutMs = 10 * 60 * 1000
	}
	if r.Concurrency == 0 {
		r.Concurrency = 2
	}
	if r.SubtitlePadding == 0 {
		r.SubtitlePadding = 2
	}
	if c.Upload.Visibility == "" {
		c.Upload.Visibility = "private"
	}
	if c.Upload.DefaultLanguage == "" {
		c.Upload.DefaultLanguage = "es"
	}
}

func (c *Config) validate() error {
	if c.Render.FPS <= 0 {
		return fmt.Errorf("render.fps must be positive, got %d", c.Render.FPS)
	}
	if c.Render.MaxRetries < 1 {
		return fmt.Errorf("render.max_retries must be at least 1, got %d", c.Render.MaxRetries)
	}
	return nil
}
