package models

import (
	"gorm.io/gorm"
)

// CachedTranscript is the persisted memo of a previously scraped transcript.
// Document is the canonical newline-delimited "[HH:MM:SS] text" form. There
// is no TTL; entries are only replaced by a forced re-scrape.
type CachedTranscript struct {
	gorm.Model
	VideoID  string `json:"video_id" gorm:"uniqueIndex;not null"`
	Document string `json:"document" gorm:"type:text"`
}

// TableName specifies the table name for CachedTranscript
func (CachedTranscript) TableName() string {
	return "cached_transcripts"
}
