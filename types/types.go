package types

import "time"

// NewsItem holds a researched news story ready for scripting
type NewsItem struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Body        string   `json:"body"`
	Source      string   `json:"source"`
	SourceURL   string   `json:"source_url"`
	Company     string   `json:"company"`
	Topic       string   `json:"topic"`
	NewsType    string   `json:"news_type"`
	Score       int      `json:"score"`
	PublishedAt string   `json:"published_at"`
	ImageURLs   []string `json:"image_urls"`
	Keywords    []string `json:"keywords"`
}

// Script is the generated narration for one video, split into its
// narrative parts plus the full text fed to TTS
type Script struct {
	NewsID     string `json:"news_id"`
	Title      string `json:"title"`
	Hook       string `json:"hook"`
	Headline   string `json:"headline"`
	Body       string `json:"body"`
	Impact     string `json:"impact"`
	CTA        string `json:"cta"`
	FullScript string `json:"full_script"`
}

// RenderRequest is the input to the render orchestrator. Immutable once
// built; AudioDuration is authoritative: the whole timeline derives
// from it, not from audio re-analysis.
type RenderRequest struct {
	VideoID       string  `json:"video_id"`
	Title         string  `json:"title"`
	Script        string  `json:"script"`
	Hook          string  `json:"hook,omitempty"`
	Body          string  `json:"body,omitempty"`
	CTA           string  `json:"cta,omitempty"`
	Opinion       string  `json:"opinion,omitempty"`
	AudioPath     string  `json:"audio_path"`
	ImagePath     string  `json:"image_path"`
	AudioDuration float64 `json:"audio_duration_sec"`
	Topic         string  `json:"topic"`
	Company       string  `json:"company"`
	NewsSource    string  `json:"news_source"`
	NewsType      string  `json:"news_type"`
}

// RenderOptions tunes a single RenderVideo call. The zero value means
// "use config defaults".
type RenderOptions struct {
	Quality    string `json:"quality,omitempty"` // draft | standard | high
	MaxRetries int    `json:"max_retries,omitempty"`
	TimeoutSec int    `json:"timeout_sec,omitempty"`
	OutputName string `json:"output_name,omitempty"`
	Preview    bool   `json:"preview,omitempty"`
}

// RenderPhase is the coarse stage the orchestrator is in
type RenderPhase string

const (
	PhaseIdle       RenderPhase = "idle"
	PhasePreparing  RenderPhase = "preparing"
	PhaseRendering  RenderPhase = "rendering"
	PhaseFinalizing RenderPhase = "finalizing"
)

// RenderStatus is a snapshot of render progress for polling callers
type RenderStatus struct {
	IsRendering bool          `json:"is_rendering"`
	Progress    int           `json:"progress"`
	Phase       RenderPhase   `json:"phase"`
	Message     string        `json:"message"`
	ElapsedTime time.Duration `json:"elapsed_time"`
}

// SubtitleWord is one frame-aligned narration token
type SubtitleWord struct {
	Word              string `json:"word"`
	StartFrame        int    `json:"startFrame"`
	EndFrame          int    `json:"endFrame"`
	Index             int    `json:"index"`
	IsStartOfSentence bool   `json:"isStartOfSentence"`
	IsEndOfSentence   bool   `json:"isEndOfSentence"`
}

// SectionEffects is the per-section visual effect descriptor. The
// orchestrator treats it as opaque; only the render engine reads it.
type SectionEffects struct {
	Zoom     float64 `json:"zoom"`
	Blur     float64 `json:"blur"`
	Parallax bool    `json:"parallax"`
	Glow     bool    `json:"glow"`
}

// VideoSection is one of the five fixed narrative stages. Ranges are
// half-open [StartFrame, EndFrame) and cover the full timeline with no
// gaps or overlaps; outro always ends at the last frame.
type VideoSection struct {
	Name            string         `json:"name"` // hook | headline | main | impact | outro
	StartFrame      int            `json:"startFrame"`
	EndFrame        int            `json:"endFrame"`
	DurationSeconds float64        `json:"durationSeconds"`
	Content         string         `json:"content"`
	Image           string         `json:"image,omitempty"`
	Effects         SectionEffects `json:"effects"`
}

// ContractMeta identifies the video and its global timing parameters
type ContractMeta struct {
	VideoID          string `json:"videoId"`
	Title            string `json:"title"`
	Topic            string `json:"topic"`
	Source           string `json:"source"`
	Company          string `json:"company"`
	NewsType         string `json:"newsType"`
	DurationInFrames int    `json:"durationInFrames"`
	FPS              int    `json:"fps"`
	GeneratedAt      string `json:"generatedAt"`
}

// ContractContent carries the narrative text per section
type ContractContent struct {
	Hook       string `json:"hook"`
	Headline   string `json:"headline"`
	Body       string `json:"body"`
	Impact     string `json:"impact"`
	CTA        string `json:"cta"`
	FullScript string `json:"fullScript"`
}

// ContractAssets references the staged media the engine loads
type ContractAssets struct {
	AudioPath     string  `json:"audioPath"`
	AudioDuration float64 `json:"audioDuration"`
	HeroImage     string  `json:"heroImage"`
	ContextImage  string  `json:"contextImage"`
	OutroImage    string  `json:"outroImage"`
	CompanyLogo   string  `json:"companyLogo,omitempty"`
}

// ContractStyle is the fixed visual theme block
type ContractStyle struct {
	Theme           string `json:"theme"`
	PrimaryColor    string `json:"primaryColor"`
	AccentColor     string `json:"accentColor"`
	ShowSubtitles   bool   `json:"showSubtitles"`
	ShowProgressBar bool   `json:"showProgressBar"`
	Effects         bool   `json:"effects"`
}

// RenderDataContract is the full payload handed to the render engine.
// Field names are the compatibility boundary with the engine; do not
// rename them.
type RenderDataContract struct {
	Meta      ContractMeta    `json:"meta"`
	Content   ContractContent `json:"content"`
	Assets    ContractAssets  `json:"assets"`
	Subtitles []SubtitleWord  `json:"subtitles"`
	Sections  []VideoSection  `json:"sections"`
	Style     ContractStyle   `json:"style"`
}

// RenderMetadata describes a finished render
type RenderMetadata struct {
	Composition string `json:"composition"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	FPS         int    `json:"fps"`
	Codec       string `json:"codec"`
	CRF         int    `json:"crf"`
	TotalFrames int    `json:"total_frames"`
	StartedAt   string `json:"started_at"`
	FinishedAt  string `json:"finished_at"`
	Attempts    int    `json:"attempts"`
}

// RenderResult is the terminal outcome of one RenderVideo call. The
// orchestrator always returns one, never an error.
type RenderResult struct {
	Success       bool           `json:"success"`
	VideoPath     string         `json:"video_path"`
	DurationSec   float64        `json:"duration_sec"`
	FileSizeBytes int64          `json:"file_size_bytes"`
	FileSize      string         `json:"file_size"`
	RenderTime    time.Duration  `json:"render_time"`
	Metadata      RenderMetadata `json:"metadata"`
	Error         string         `json:"error,omitempty"`
}

// SetupVerification is the result of the pre-flight engine check
type SetupVerification struct {
	IsValid             bool     `json:"is_valid"`
	EngineDirExists     bool     `json:"engine_dir_exists"`
	DependenciesPresent bool     `json:"dependencies_present"`
	CompositionFound    bool     `json:"composition_found"`
	FFmpegAvailable     bool     `json:"ffmpeg_available"`
	Errors              []string `json:"errors,omitempty"`
	Warnings            []string `json:"warnings,omitempty"`
}

// VideoMetadata holds all YouTube upload metadata
type VideoMetadata struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Tags             []string `json:"tags"`
	CategoryID       string   `json:"category_id"`
	Visibility       string   `json:"visibility"`
	ScheduledTimeUTC string   `json:"scheduled_time_utc"`
}

// PipelineState tracks the full state of one pipeline run
type PipelineState struct {
	RunID       string         `json:"run_id"`
	StartedAt   string         `json:"started_at"`
	CompletedAt string         `json:"completed_at"`
	News        *NewsItem      `json:"news"`
	Script      *Script        `json:"script"`
	AudioFile   string         `json:"audio_file"`
	Render      *RenderResult  `json:"render"`
	Metadata    *VideoMetadata `json:"metadata"`
	YouTubeURL  string         `json:"youtube_url"`
	YouTubeID   string         `json:"youtube_id"`
	Error       string         `json:"error,omitempty"`
}
