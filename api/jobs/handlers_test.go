package jobs

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/chapterlens/outline-api/api/types"
	"github.com/chapterlens/outline-api/internal/models"
	jobsService "github.com/chapterlens/outline-api/internal/services/jobs"
)

func setupRouter(t *testing.T) (*gin.Engine, jobsService.Service) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Job{}))

	svc := jobsService.NewService(jobsService.NewRepository(db))
	deps := &types.Dependencies{JobService: svc}

	engine := gin.New()
	RegisterRoutes(engine.Group("/api/v1/jobs"), deps)
	return engine, svc
}

func TestGet(t *testing.T) {
	engine, svc := setupRouter(t)

	job, err := svc.EnqueueJob(context.Background(), models.JobTypeDescribeAll, models.JobPayload{"video_id": "vid-1"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs/"+strconv.Itoa(int(job.ID)), nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp types.JobResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, job.ID, resp.JobID)
}

func TestGetCompletedJobCarriesResult(t *testing.T) {
	engine, svc := setupRouter(t)

	job, err := svc.EnqueueJob(context.Background(), models.JobTypeDescribeAll, models.JobPayload{"video_id": "vid-1"})
	require.NoError(t, err)

	claimed, err := svc.ClaimNextJob(context.Background(), "worker-1", []models.JobType{models.JobTypeDescribeAll})
	require.NoError(t, err)
	require.NoError(t, svc.CompleteJob(context.Background(), claimed.ID, models.JobResult{"described": 3}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs/"+strconv.Itoa(int(job.ID)), nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp types.JobResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, 100, resp.Progress)

	result, ok := resp.Result.(map[string]interface{})
	require.True(t, ok)
	assert.EqualValues(t, 3, result["described"])
}

func TestGetMissingJob(t *testing.T) {
	engine, _ := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs/9999", nil)
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetBadID(t *testing.T) {
	engine, _ := setupRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs/notanumber", nil)
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
