package workers

import (
	"context"
	"fmt"
	"log"

	"github.com/chapterlens/outline-api/internal/models"
	"github.com/chapterlens/outline-api/internal/services/jobs"
	"github.com/chapterlens/outline-api/internal/services/snapshots"
)

// DescribeProcessor processes snapshot description jobs. Single-snapshot
// jobs and whole-video batches share the same processor since both end in
// the snapshot service's serialized generation path.
type DescribeProcessor struct {
	jobService  jobs.Service
	snapshotSvc snapshots.SnapshotService
}

// NewDescribeProcessor creates a new snapshot description processor
func NewDescribeProcessor(jobService jobs.Service, snapshotSvc snapshots.SnapshotService) *DescribeProcessor {
	return &DescribeProcessor{
		jobService:  jobService,
		snapshotSvc: snapshotSvc,
	}
}

// CanProcess returns true if this processor can handle the job type
func (p *DescribeProcessor) CanProcess(jobType models.JobType) bool {
	return jobType == models.JobTypeSnapshotDescription || jobType == models.JobTypeDescribeAll
}

// ProcessJob processes a snapshot description job
func (p *DescribeProcessor) ProcessJob(ctx context.Context, job *models.Job) error {
	if !p.CanProcess(job.Type) {
		return fmt.Errorf("unsupported job type: %s", job.Type)
	}

	log.Printf("[DEBUG] Processing %s job %d", job.Type, job.ID)

	language, _ := job.GetPayloadString("language")
	if language == "" {
		language = "en"
	}

	if err := p.jobService.UpdateProgress(ctx, job.ID, 10); err != nil {
		log.Printf("[WARN] Failed to update job progress: %v", err)
	}

	switch job.Type {
	case models.JobTypeSnapshotDescription:
		uuid, ok := job.GetPayloadString("uuid")
		if !ok || uuid == "" {
			return fmt.Errorf("job %d payload missing snapshot uuid", job.ID)
		}

		snapshot, err := p.snapshotSvc.Describe(ctx, uuid, language)
		if err != nil {
			return fmt.Errorf("describing snapshot %s: %w", uuid, err)
		}

		return p.jobService.CompleteJob(ctx, job.ID, models.JobResult{
			"uuid":        snapshot.UUID,
			"description": snapshot.Description,
		})

	case models.JobTypeDescribeAll:
		videoID, ok := job.GetPayloadString("video_id")
		if !ok || videoID == "" {
			return fmt.Errorf("job %d payload missing video_id", job.ID)
		}

		result, err := p.snapshotSvc.DescribeAll(ctx, videoID, language)
		if err != nil {
			return fmt.Errorf("describing snapshots for video %s: %w", videoID, err)
		}
		if result.Failed > 0 && result.Described == 0 {
			return fmt.Errorf("all %d snapshot descriptions failed for video %s", result.Failed, videoID)
		}

		return p.jobService.CompleteJob(ctx, job.ID, models.JobResult{
			"video_id":  videoID,
			"described": result.Described,
			"failed":    result.Failed,
			"skipped":   result.Skipped,
		})
	}

	return fmt.Errorf("unsupported job type: %s", job.Type)
}
