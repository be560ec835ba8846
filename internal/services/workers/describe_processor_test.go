package workers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/chapterlens/outline-api/internal/models"
	"github.com/chapterlens/outline-api/internal/services/jobs"
	"github.com/chapterlens/outline-api/internal/services/snapshots"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.Job{}, &models.Snapshot{})
	require.NoError(t, err)

	return db
}

type fakeSnapshotService struct {
	snapshots.SnapshotService
	describeErr error
	described   []string
	batchResult *snapshots.DescribeResult
	batchVideos []string
}

func (f *fakeSnapshotService) Describe(_ context.Context, uuid, _ string) (*models.Snapshot, error) {
	if f.describeErr != nil {
		return nil, f.describeErr
	}
	f.described = append(f.described, uuid)
	return &models.Snapshot{UUID: uuid, Description: "generated"}, nil
}

func (f *fakeSnapshotService) DescribeAll(_ context.Context, videoID, _ string) (*snapshots.DescribeResult, error) {
	f.batchVideos = append(f.batchVideos, videoID)
	if f.batchResult != nil {
		return f.batchResult, nil
	}
	return &snapshots.DescribeResult{Described: 2}, nil
}

func TestDescribeProcessor_SingleSnapshot(t *testing.T) {
	db := setupTestDB(t)
	jobService := jobs.NewService(jobs.NewRepository(db))
	snapshotSvc := &fakeSnapshotService{}
	processor := NewDescribeProcessor(jobService, snapshotSvc)

	job, err := jobService.EnqueueJob(context.Background(), models.JobTypeSnapshotDescription,
		models.JobPayload{"uuid": "snap-1", "language": "en"})
	require.NoError(t, err)

	claimed, err := jobService.ClaimNextJob(context.Background(), "worker-1", nil)
	require.NoError(t, err)

	err = processor.ProcessJob(context.Background(), claimed)
	require.NoError(t, err)
	assert.Equal(t, []string{"snap-1"}, snapshotSvc.described)

	status, err := jobService.GetJobStatus(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusCompleted, status)
}

func TestDescribeProcessor_Batch(t *testing.T) {
	db := setupTestDB(t)
	jobService := jobs.NewService(jobs.NewRepository(db))
	snapshotSvc := &fakeSnapshotService{}
	processor := NewDescribeProcessor(jobService, snapshotSvc)

	job, err := jobService.EnqueueJob(context.Background(), models.JobTypeDescribeAll,
		models.JobPayload{"video_id": "vid-1"})
	require.NoError(t, err)

	claimed, err := jobService.ClaimNextJob(context.Background(), "worker-1", nil)
	require.NoError(t, err)

	err = processor.ProcessJob(context.Background(), claimed)
	require.NoError(t, err)
	assert.Equal(t, []string{"vid-1"}, snapshotSvc.batchVideos)

	completed, err := jobService.GetJob(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusCompleted, completed.Status)
	assert.EqualValues(t, 2, completed.Result["described"])
}

func TestDescribeProcessor_MissingPayload(t *testing.T) {
	db := setupTestDB(t)
	jobService := jobs.NewService(jobs.NewRepository(db))
	processor := NewDescribeProcessor(jobService, &fakeSnapshotService{})

	err := processor.ProcessJob(context.Background(), &models.Job{
		Model: gorm.Model{ID: 1},
		Type:  models.JobTypeDescribeAll,
	})
	assert.Error(t, err)
}

func TestDescribeProcessor_FailurePropagates(t *testing.T) {
	db := setupTestDB(t)
	jobService := jobs.NewService(jobs.NewRepository(db))
	snapshotSvc := &fakeSnapshotService{describeErr: errors.New("backend unavailable")}
	processor := NewDescribeProcessor(jobService, snapshotSvc)

	_, err := jobService.EnqueueJob(context.Background(), models.JobTypeSnapshotDescription,
		models.JobPayload{"uuid": "snap-1"})
	require.NoError(t, err)

	claimed, err := jobService.ClaimNextJob(context.Background(), "worker-1", nil)
	require.NoError(t, err)

	err = processor.ProcessJob(context.Background(), claimed)
	assert.Error(t, err)
}

func TestDescribeProcessor_CanProcess(t *testing.T) {
	processor := NewDescribeProcessor(nil, nil)
	assert.True(t, processor.CanProcess(models.JobTypeSnapshotDescription))
	assert.True(t, processor.CanProcess(models.JobTypeDescribeAll))
	assert.False(t, processor.CanProcess(models.JobTypeOutlineGeneration))
}
