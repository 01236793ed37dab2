package model

// Report holds the complete result of analyzing a web page.
type Report struct {
	Input           Input            `json:"input"`
	Fetch           FetchInfo        `json:"fetch"`
	SEO             SeoMeta          `json:"seo"`
	Content         ContentStructure `json:"content"`
	Discovery       Discovery        `json:"discovery"`
	Checks          []CheckResult    `json:"checks"`
	Score           ScoreResult      `json:"score"`
	Recommendations []Recommendation `json:"recommendations"`
	Status          string           `json:"status"`
}

// Input echoes what the caller submitted and what was actually analyzed.
type Input struct {
	Raw        string `json:"raw"`
	Normalized string `json:"normalized"`
	Timestamp  string `json:"timestamp"`
}

// FetchInfo describes the primary page fetch.
type FetchInfo struct {
	Status      int    `json:"status"`
	FinalURL    string `json:"finalUrl"`
	ContentType string `json:"contentType"`
	Size        int    `json:"size"`
	TimingMs    int64  `json:"timingMs"`
}

// ErrorResponse is the JSON shape returned on failure.
type ErrorResponse struct {
	Error string `json:"error"`
}
