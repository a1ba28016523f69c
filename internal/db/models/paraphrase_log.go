package models

// ParaphraseLog stores metadata about one paraphrase request. The user's
// text and the generated text are never stored.
type ParaphraseLog struct {
	ID              string  `gorm:"primaryKey" json:"id"`
	RequestID       string  `gorm:"index" json:"request_id,omitempty"`
	Timestamp       int64   `gorm:"index" json:"timestamp"`
	Status          int     `json:"status"`
	Success         bool    `gorm:"index" json:"success"`
	Duration        int64   `json:"duration"` // milliseconds
	Mode            string  `gorm:"index" json:"mode"`
	Tier            string  `gorm:"index" json:"tier"`
	Provider        string  `json:"provider,omitempty"`
	Language        string  `json:"language,omitempty"`
	SynonymStrength int     `json:"synonym_strength"`
	Temperature     float64 `json:"temperature,omitempty"`
	InputChars      int     `json:"input_chars"`
	OutputChars     int     `json:"output_chars,omitempty"`
	ErrorCode       string  `gorm:"index" json:"error_code,omitempty"`
	Error           string  `json:"error,omitempty"`
}

// ParaphraseStats holds aggregated counters for paraphrase logs.
type ParaphraseStats struct {
	TotalRequests  int64 `json:"total_requests"`
	SuccessCount   int64 `json:"success_count"`
	QualityErrors  int64 `json:"quality_errors"`
	UpstreamErrors int64 `json:"upstream_errors"`
	OtherErrors    int64 `json:"other_errors"`
}
