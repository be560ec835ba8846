package types

// Status constants for API responses
const (
	StatusOK         = "ok"
	StatusError      = "error"
	StatusProcessing = "processing"
	StatusFailed     = "failed"
	StatusQueued     = "queued"
)

// BaseResponse contains fields common to all API responses
type BaseResponse struct {
	Status  string `json:"status"`  // One of the Status constants above
	Message string `json:"message"` // Human-readable message
}

// OutlineItemResponse is one timestamped moment in an outline response
type OutlineItemResponse struct {
	Timestamp   int    `json:"timestamp" example:"95"`
	Title       string `json:"title" example:"Opening remarks"`
	Description string `json:"description,omitempty" example:"The host introduces the topic"`
}

// OutlineResponse for a single outline
type OutlineResponse struct {
	BaseResponse
	VideoID       string                `json:"videoId" example:"dQw4w9WgXcQ"`
	VideoTitle    string                `json:"videoTitle,omitempty"`
	VideoDuration float64               `json:"videoDuration,omitempty" example:"1260"`
	HasTranscript bool                  `json:"hasTranscript"`
	Items         []OutlineItemResponse `json:"items"`
}

// OutlinesResponse for outline lists
type OutlinesResponse struct {
	BaseResponse
	Outlines []OutlineResponse `json:"outlines"`
	Count    int               `json:"count"`           // Number of results in this response
	Total    int64             `json:"total,omitempty"` // Total available (if known)
	Offset   int               `json:"offset,omitempty"`
}

// TranscriptResponse for transcript data
type TranscriptResponse struct {
	BaseResponse
	VideoID    string `json:"videoId" example:"dQw4w9WgXcQ"`
	Transcript string `json:"transcript"`
	Cached     bool   `json:"cached"`
}

// SnapshotResponse for a single snapshot
type SnapshotResponse struct {
	UUID        string  `json:"uuid" example:"a1b2c3d4-e5f6-4a7b-8c9d-0e1f2a3b4c5d"`
	VideoID     string  `json:"videoId" example:"dQw4w9WgXcQ"`
	VideoTitle  string  `json:"videoTitle,omitempty"`
	VideoURL    string  `json:"videoUrl,omitempty"`
	Time        float64 `json:"time" example:"93.5"`
	Description string  `json:"description,omitempty"`
	CreatedAt   string  `json:"createdAt" example:"2026-08-28T13:00:00Z"`
}

// SnapshotsResponse for snapshot lists
type SnapshotsResponse struct {
	BaseResponse
	Snapshots []SnapshotResponse `json:"snapshots"`
	Count     int                `json:"count"`
}

// ErrorResponse for detailed error information
type ErrorResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Error   string      `json:"error,omitempty"`   // Error code/type
	Details interface{} `json:"details,omitempty"` // Additional error details
}

// HealthResponse for health check endpoint
type HealthResponse struct {
	BaseResponse
	Version  string                 `json:"version,omitempty"`
	Services map[string]interface{} `json:"services,omitempty"`
}

// JobResponse for async job status
type JobResponse struct {
	BaseResponse
	JobID    uint        `json:"jobId"`
	Progress int         `json:"progress,omitempty"` // 0-100
	Result   interface{} `json:"result,omitempty"`
}
