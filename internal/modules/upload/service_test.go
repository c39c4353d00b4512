package upload

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func uploadRequest(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/uploads", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func newRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(svc).RegisterAdminRoutes(r.Group("/api/admin"))
	return r
}

func TestUpload_StoresImageByDate(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, "/static/uploads/")
	svc.now = func() time.Time { return time.Date(2024, 10, 5, 12, 0, 0, 0, time.UTC) }

	w := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(w, uploadRequest(t, "Pivo Plzeň.png", pngHeader))

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"url":"/static/uploads/2024/10/05/`)
	assert.Contains(t, w.Body.String(), `_pivo-plzen.png"`)

	entries, err := os.ReadDir(filepath.Join(dir, "2024", "10", "05"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasSuffix(entries[0].Name(), "_pivo-plzen.png"))
}

func TestUpload_RejectsNonImage(t *testing.T) {
	svc := NewService(t.TempDir(), "/static/uploads")

	w := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(w, uploadRequest(t, "evil.png", []byte("#!/bin/sh\necho hi\n")))

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_FILE_TYPE")
}

func TestUpload_RejectsEmptyAndMissing(t *testing.T) {
	svc := NewService(t.TempDir(), "/static/uploads")
	r := newRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, uploadRequest(t, "empty.png", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "EMPTY_FILE")

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/uploads", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpload_RejectsOversized(t *testing.T) {
	svc := NewService(t.TempDir(), "/static/uploads")
	big := append(append([]byte{}, pngHeader...), make([]byte, MaxFileSize)...)

	w := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(w, uploadRequest(t, "big.png", big))

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "file", baseName(".png"))
	assert.Equal(t, "screen", baseName(`C:\Users\karel\screen.jpg`))
	assert.Equal(t, "zimni-lan", baseName("../../Zimní LAN.webp"))
}
