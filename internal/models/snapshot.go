package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Snapshot is a captured still frame of a video at a point in time. The
// image arrives base64 encoded from the capture layer; Description is
// filled in by single-snapshot generation and editable by the user.
type Snapshot struct {
	gorm.Model
	UUID        string  `json:"uuid" gorm:"uniqueIndex"`
	VideoID     string  `json:"video_id" gorm:"not null;index"`
	VideoTitle  string  `json:"video_title"`
	VideoURL    string  `json:"video_url"`
	Time        float64 `json:"time" gorm:"not null"` // position in the video, seconds
	ImageBase64 string  `json:"image_base64,omitempty" gorm:"type:text"`
	MimeType    string  `json:"mime_type" gorm:"default:image/jpeg"`
	Description string  `json:"description" gorm:"type:text"`
}

// BeforeCreate generates a UUID before creating a new snapshot
func (s *Snapshot) BeforeCreate(tx *gorm.DB) error {
	if s.UUID == "" {
		s.UUID = uuid.New().String()
	}
	return nil
}

// TableName returns the table name for the Snapshot model
func (Snapshot) TableName() string {
	return "snapshots"
}
