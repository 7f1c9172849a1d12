package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopadmin/backend/internal/interfaces/http/dto"
)

type pingRegistrar struct{}

func (pingRegistrar) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.NewMessageResponse("pong"))
	})
}

func TestRouter_Setup(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("mounts registrars under /api", func(t *testing.T) {
		engine := gin.New()
		NewRouter(engine).Register(pingRegistrar{}).Setup()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/ping", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("custom base path", func(t *testing.T) {
		engine := gin.New()
		NewRouter(engine, WithBasePath("/internal")).Register(pingRegistrar{}).Setup()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/internal/ping", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown route gets the error envelope", func(t *testing.T) {
		engine := gin.New()
		NewRouter(engine).Setup()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/nope", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
	})
}

func TestRouter_StaticDir(t *testing.T) {
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "slip.jpg"), []byte("image bytes"), 0o644))

	engine := gin.New()
	NewRouter(engine).StaticDir("/uploads", dir).Setup()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/uploads/slip.jpg", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image bytes", w.Body.String())
}
