package types

import (
	"github.com/chapterlens/outline-api/internal/database"
	"github.com/chapterlens/outline-api/internal/services/generation"
	"github.com/chapterlens/outline-api/internal/services/jobs"
	"github.com/chapterlens/outline-api/internal/services/outlines"
	"github.com/chapterlens/outline-api/internal/services/snapshots"
	"github.com/chapterlens/outline-api/internal/services/transcripts"
	"github.com/chapterlens/outline-api/internal/services/workers"
)

// Dependencies holds all the dependencies needed by handlers
type Dependencies struct {
	DB                *database.DB
	TranscriptService transcripts.TranscriptService
	OutlineService    outlines.OutlineService
	SnapshotService   snapshots.SnapshotService
	JobService        jobs.Service
	WorkerPool        *workers.WorkerPool
	Generator         generation.Generator
}
