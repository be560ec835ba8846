package types

import (
	"time"

	"github.com/chapterlens/outline-api/internal/models"
)

// ToOutlineResponse converts a stored outline into its API shape
func ToOutlineResponse(outline *models.SavedOutline) OutlineResponse {
	items := make([]OutlineItemResponse, 0, len(outline.Items))
	for _, item := range outline.Items {
		items = append(items, OutlineItemResponse{
			Timestamp:   item.Timestamp,
			Title:       item.Title,
			Description: item.Description,
		})
	}

	return OutlineResponse{
		BaseResponse:  BaseResponse{Status: StatusOK},
		VideoID:       outline.VideoID,
		VideoTitle:    outline.VideoTitle,
		VideoDuration: outline.VideoDuration,
		HasTranscript: outline.HasTranscript,
		Items:         items,
	}
}

// ToSnapshotResponse converts a snapshot into its API shape. The base64
// image payload is deliberately omitted; clients fetch it separately if
// they need the pixels back.
func ToSnapshotResponse(snapshot *models.Snapshot) SnapshotResponse {
	return SnapshotResponse{
		UUID:        snapshot.UUID,
		VideoID:     snapshot.VideoID,
		VideoTitle:  snapshot.VideoTitle,
		VideoURL:    snapshot.VideoURL,
		Time:        snapshot.Time,
		Description: snapshot.Description,
		CreatedAt:   snapshot.CreatedAt.UTC().Format(time.RFC3339),
	}
}
