package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/chapterlens/outline-api/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.Job{})
	require.NoError(t, err)

	return db
}

func TestService_EnqueueAndClaim(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(NewRepository(db))

	job, err := svc.EnqueueJob(context.Background(), models.JobTypeDescribeAll, models.JobPayload{
		"video_id": "vid-1",
		"language": "en",
	})
	require.NoError(t, err)
	assert.NotZero(t, job.ID)
	assert.Equal(t, models.JobStatusPending, job.Status)

	claimed, err := svc.ClaimNextJob(context.Background(), "worker-1", []models.JobType{models.JobTypeDescribeAll})
	require.NoError(t, err)
	assert.Equal(t, job.ID, claimed.ID)
	assert.Equal(t, models.JobStatusProcessing, claimed.Status)
	assert.Equal(t, "worker-1", claimed.WorkerID)

	videoID, ok := claimed.GetPayloadString("video_id")
	require.True(t, ok)
	assert.Equal(t, "vid-1", videoID)
}

func TestService_ClaimRespectsJobTypes(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(NewRepository(db))

	_, err := svc.EnqueueJob(context.Background(), models.JobTypeOutlineGeneration, models.JobPayload{"video_id": "vid-1"})
	require.NoError(t, err)

	_, err = svc.ClaimNextJob(context.Background(), "worker-1", []models.JobType{models.JobTypeDescribeAll})
	assert.ErrorIs(t, err, ErrNoJobsAvailable)
}

func TestService_EnqueueUniqueJobDeduplicates(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(NewRepository(db))

	first, err := svc.EnqueueUniqueJob(context.Background(), models.JobTypeDescribeAll,
		models.JobPayload{"video_id": "vid-1"}, "video_id")
	require.NoError(t, err)

	second, err := svc.EnqueueUniqueJob(context.Background(), models.JobTypeDescribeAll,
		models.JobPayload{"video_id": "vid-1"}, "video_id")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	other, err := svc.EnqueueUniqueJob(context.Background(), models.JobTypeDescribeAll,
		models.JobPayload{"video_id": "vid-2"}, "video_id")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)
}

func TestService_CompleteJob(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(NewRepository(db))

	job, err := svc.EnqueueJob(context.Background(), models.JobTypeDescribeAll, models.JobPayload{"video_id": "vid-1"})
	require.NoError(t, err)

	_, err = svc.ClaimNextJob(context.Background(), "worker-1", nil)
	require.NoError(t, err)

	err = svc.CompleteJob(context.Background(), job.ID, models.JobResult{"described": 3})
	require.NoError(t, err)

	status, err := svc.GetJobStatus(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusCompleted, status)
}

func TestService_FailedJobIsReclaimedUntilRetriesExhausted(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(NewRepository(db))

	job, err := svc.EnqueueJob(context.Background(), models.JobTypeDescribeAll,
		models.JobPayload{"video_id": "vid-1"}, WithMaxRetries(2))
	require.NoError(t, err)

	// First attempt fails.
	_, err = svc.ClaimNextJob(context.Background(), "worker-1", nil)
	require.NoError(t, err)
	require.NoError(t, svc.FailJob(context.Background(), job.ID, errors.New("backend down")))

	// Failed with retries remaining, so claimable again.
	reclaimed, err := svc.ClaimNextJob(context.Background(), "worker-1", nil)
	require.NoError(t, err)
	assert.Equal(t, job.ID, reclaimed.ID)
	assert.Equal(t, 1, reclaimed.RetryCount)

	require.NoError(t, svc.FailJob(context.Background(), job.ID, errors.New("backend still down")))
	reclaimed, err = svc.ClaimNextJob(context.Background(), "worker-1", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, reclaimed.RetryCount)

	// Retries exhausted after this failure.
	require.NoError(t, svc.FailJob(context.Background(), job.ID, errors.New("gave up")))
	_, err = svc.ClaimNextJob(context.Background(), "worker-1", nil)
	assert.ErrorIs(t, err, ErrNoJobsAvailable)

	final, err := svc.GetJob(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusFailed, final.Status)
	assert.False(t, final.IsRetryable())
}

func TestService_GetJobNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(NewRepository(db))

	_, err := svc.GetJob(context.Background(), 999)
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestService_CleanupOldJobs(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(NewRepository(db))

	_, err := svc.CleanupOldJobs(context.Background(), 0)
	assert.Error(t, err)

	deleted, err := svc.CleanupOldJobs(context.Background(), 7)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}
