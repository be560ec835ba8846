package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestPerClientRateLimitScopedByName(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rateLimiters := &sync.Map{}
	cleanupStop := make(chan struct{})
	cleanupInitialized := &sync.Once{}
	defer close(cleanupStop)

	generous := PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, "general", 100, 100)
	tight := PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, "generation", 1, 1)

	router := gin.New()
	router.GET("/read", generous, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.POST("/generate", tight, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	do := func(method, path string) int {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(method, path, nil))
		return w.Code
	}

	// A generous-group hit must not seed the limiter the tight group uses.
	assert.Equal(t, http.StatusOK, do(http.MethodGet, "/read"))

	assert.Equal(t, http.StatusOK, do(http.MethodPost, "/generate"))
	assert.Equal(t, http.StatusTooManyRequests, do(http.MethodPost, "/generate"))

	// Exhausting the tight group leaves the generous group untouched.
	assert.Equal(t, http.StatusOK, do(http.MethodGet, "/read"))
}

func TestRequestSizeLimitRejectsOversizedBody(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RequestSizeLimitWithSize(16))
	router.POST("/upload", func(c *gin.Context) {
		var body struct {
			Data string `json:"data"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"status": "error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	small := `{"data":"ok"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(small))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	big := `{"data":"` + strings.Repeat("x", 64) + `"}`
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(big))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
