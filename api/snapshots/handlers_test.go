package snapshots

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/chapterlens/outline-api/api/types"
	"github.com/chapterlens/outline-api/internal/models"
	jobsService "github.com/chapterlens/outline-api/internal/services/jobs"
	snapshotsService "github.com/chapterlens/outline-api/internal/services/snapshots"
	transcriptsService "github.com/chapterlens/outline-api/internal/services/transcripts"
)

type fakeGenerator struct {
	response string
	err      error
}

func (f *fakeGenerator) GenerateText(context.Context, string) (string, error) {
	return f.response, f.err
}

func (f *fakeGenerator) GenerateWithImage(context.Context, string, string, string) (string, error) {
	return f.response, f.err
}

func setupRouter(t *testing.T, generator *fakeGenerator) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Snapshot{}, &models.CachedTranscript{}, &models.Job{}))

	transcriptSvc := transcriptsService.NewService(transcriptsService.NewRepository(db), transcriptsService.NewScraper())
	deps := &types.Dependencies{
		SnapshotService: snapshotsService.NewService(snapshotsService.NewRepository(db), transcriptSvc, generator, 0),
		JobService:      jobsService.NewService(jobsService.NewRepository(db)),
	}

	passthrough := gin.HandlerFunc(func(c *gin.Context) { c.Next() })
	engine := gin.New()
	v1 := engine.Group("/api/v1")
	RegisterRoutes(v1.Group("/videos"), v1, deps, passthrough, passthrough)
	return engine, db
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)
	return w
}

func createSnapshot(t *testing.T, engine *gin.Engine, videoID string, at float64) types.SnapshotResponse {
	w := doJSON(t, engine, http.MethodPost, "/api/v1/videos/"+videoID+"/snapshots", CreateRequest{
		Time:        at,
		VideoTitle:  "Test Video",
		ImageBase64: "aW1hZ2VkYXRh",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp types.SnapshotResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.UUID)
	return resp
}

func TestCreateAndGet(t *testing.T) {
	engine, _ := setupRouter(t, &fakeGenerator{})

	created := createSnapshot(t, engine, "vid-1", 93.5)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/snapshots/"+created.UUID, nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp types.SnapshotResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "vid-1", resp.VideoID)
	assert.Equal(t, 93.5, resp.Time)
}

func TestCreateMissingImage(t *testing.T) {
	engine, _ := setupRouter(t, &fakeGenerator{})

	w := doJSON(t, engine, http.MethodPost, "/api/v1/videos/vid-1/snapshots", gin.H{"time": 10})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListByVideo(t *testing.T) {
	engine, _ := setupRouter(t, &fakeGenerator{})

	createSnapshot(t, engine, "vid-1", 30)
	createSnapshot(t, engine, "vid-1", 10)
	createSnapshot(t, engine, "vid-2", 5)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/videos/vid-1/snapshots", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp types.SnapshotsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Count)
	assert.Equal(t, float64(10), resp.Snapshots[0].Time)
}

func TestDescribe(t *testing.T) {
	engine, _ := setupRouter(t, &fakeGenerator{response: "A person speaking at a podium"})

	created := createSnapshot(t, engine, "vid-1", 90)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/snapshots/"+created.UUID+"/describe", DescribeRequest{Language: "en"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.SnapshotResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "A person speaking at a podium", resp.Description)
}

func TestDescribeMissingSnapshot(t *testing.T) {
	engine, _ := setupRouter(t, &fakeGenerator{})

	w := doJSON(t, engine, http.MethodPost, "/api/v1/snapshots/no-such-uuid/describe", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateDescription(t *testing.T) {
	engine, _ := setupRouter(t, &fakeGenerator{})

	created := createSnapshot(t, engine, "vid-1", 90)

	w := doJSON(t, engine, http.MethodPatch, "/api/v1/snapshots/"+created.UUID, UpdateDescriptionRequest{Description: "edited"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.SnapshotResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "edited", resp.Description)
}

func TestDescribeAllQueuesUniqueJob(t *testing.T) {
	engine, db := setupRouter(t, &fakeGenerator{})

	createSnapshot(t, engine, "vid-1", 10)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/videos/vid-1/snapshots/describe-all", DescribeRequest{Language: "en"})
	require.Equal(t, http.StatusAccepted, w.Code)

	var resp types.JobResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, types.StatusQueued, resp.Status)
	assert.NotZero(t, resp.JobID)

	// A repeat request joins the pending job instead of stacking another.
	w = doJSON(t, engine, http.MethodPost, "/api/v1/videos/vid-1/snapshots/describe-all", DescribeRequest{Language: "en"})
	require.Equal(t, http.StatusAccepted, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.Job{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestDeleteSnapshot(t *testing.T) {
	engine, _ := setupRouter(t, &fakeGenerator{})

	created := createSnapshot(t, engine, "vid-1", 10)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/snapshots/"+created.UUID, nil)
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/snapshots/"+created.UUID, nil)
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
