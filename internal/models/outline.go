package models

import (
	"gorm.io/gorm"
)

// SavedOutline is a generated, user-editable outline for a single video.
// HasTranscript records whether generation had a real transcript available;
// the flag travels unchanged from generation through storage to the client,
// which uses it for trust display.
type SavedOutline struct {
	gorm.Model
	VideoID       string        `json:"video_id" gorm:"uniqueIndex;not null"`
	VideoTitle    string        `json:"video_title"`
	VideoDuration float64       `json:"video_duration"` // seconds
	HasTranscript bool          `json:"has_transcript"`
	Items         []OutlineItem `json:"items" gorm:"foreignKey:OutlineID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for SavedOutline
func (SavedOutline) TableName() string {
	return "outlines"
}

// OutlineItem is one timestamped moment within an outline. Timestamps are
// kept clamped into [0, video duration) and the collection is ordered
// ascending by timestamp.
type OutlineItem struct {
	gorm.Model
	OutlineID   uint   `json:"-" gorm:"not null;index"`
	Timestamp   int    `json:"timestamp" gorm:"not null"` // seconds
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description" gorm:"type:text"`
}

// TableName specifies the table name for OutlineItem
func (OutlineItem) TableName() string {
	return "outline_items"
}
