package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediastash/mediastash/internal/config"
	"github.com/mediastash/mediastash/internal/media"
	"github.com/mediastash/mediastash/internal/models"
	"github.com/mediastash/mediastash/internal/storage"
	"github.com/mediastash/mediastash/internal/thumbnail"
)

type memStore struct {
	mu    sync.Mutex
	files map[uuid.UUID]models.File
}

func (s *memStore) Save(ctx context.Context, file *models.File) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[file.ID] = *file
	return nil
}

func (s *memStore) FindByID(ctx context.Context, id uuid.UUID) (*models.File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.files[id]
	if !ok {
		return nil, media.ErrNotFound
	}
	return &f, nil
}

func (s *memStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, id)
	return nil
}

func (s *memStore) Count(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.files)), nil
}

func (s *memStore) FindPage(ctx context.Context, page, size int) ([]models.File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]models.File, 0, len(s.files))
	for _, f := range s.files {
		all = append(all, f)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return all, nil
}

func setupService(t *testing.T) {
	t.Helper()
	local, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)
	Media = media.NewService(
		&memStore{files: map[uuid.UUID]models.File{}},
		local,
		thumbnail.NewRegistry(),
		config.UploadConfig{MaxSize: 64 << 20},
	)
}

func uploadViaHandler(t *testing.T, name, contentType string, payload []byte) uuid.UUID {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	hdr := make(map[string][]string)
	hdr["Content-Disposition"] = []string{fmt.Sprintf(`form-data; name="file"; filename=%q`, name)}
	hdr["Content-Type"] = []string{contentType}
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/files", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	UploadFile(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Data models.File `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEqual(t, uuid.Nil, resp.Data.ID)
	return resp.Data.ID
}

func streamRequest(id uuid.UUID, rangeHeader string) (*httptest.ResponseRecorder, *http.Request) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/files/"+id.String()+"/content", nil)
	req.SetPathValue("id", id.String())
	if rangeHeader != "" {
		req.Header.Set("Range", rangeHeader)
	}
	return httptest.NewRecorder(), req
}

func TestStreamFile_FullContent(t *testing.T) {
	setupService(t)
	payload := []byte("full body payload")
	id := uploadViaHandler(t, "clip.mp4", "video/mp4", payload)

	rec, req := streamRequest(id, "")
	StreamFile(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "video/mp4", rec.Header().Get("Content-Type"))
	assert.Equal(t, "bytes", rec.Header().Get("Accept-Ranges"))
	assert.Equal(t, fmt.Sprint(len(payload)), rec.Header().Get("Content-Length"))
	assert.Equal(t, payload, rec.Body.Bytes())
}

func TestStreamFile_PartialContent(t *testing.T) {
	setupService(t)
	payload := make([]byte, 1000)
	for i := range payload {
		payload[i] = byte(i % 256)
	}
	id := uploadViaHandler(t, "clip.mp4", "video/mp4", payload)

	rec, req := streamRequest(id, "bytes=900-1200")
	StreamFile(rec, req)

	assert.Equal(t, http.StatusPartialContent, rec.Code)
	assert.Equal(t, "bytes 900-999/1000", rec.Header().Get("Content-Range"))
	assert.Equal(t, "100", rec.Header().Get("Content-Length"))
	assert.Len(t, rec.Body.Bytes(), 100)
	assert.Equal(t, payload[900:], rec.Body.Bytes())
}

func TestStreamFile_MalformedRangeServesFullBody(t *testing.T) {
	setupService(t)
	payload := []byte("whole thing")
	id := uploadViaHandler(t, "clip.mp4", "video/mp4", payload)

	rec, req := streamRequest(id, "bogus=0-10")
	StreamFile(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, payload, rec.Body.Bytes())
}

func TestStreamFile_Unsatisfiable(t *testing.T) {
	setupService(t)
	id := uploadViaHandler(t, "clip.mp4", "video/mp4", make([]byte, 1000))

	rec, req := streamRequest(id, "bytes=5000-")
	StreamFile(rec, req)

	assert.Equal(t, http.StatusRequestedRangeNotSatisfiable, rec.Code)
	assert.Equal(t, "bytes */1000", rec.Header().Get("Content-Range"))
	assert.Empty(t, rec.Body.Bytes())
}

func TestStreamFile_NotFound(t *testing.T) {
	setupService(t)

	rec, req := streamRequest(uuid.New(), "")
	StreamFile(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStreamFile_InvalidID(t *testing.T) {
	setupService(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/files/not-a-uuid/content", nil)
	req.SetPathValue("id", "not-a-uuid")
	rec := httptest.NewRecorder()
	StreamFile(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadFile_RejectsUnknownType(t *testing.T) {
	setupService(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "blob.xyzunknown")
	require.NoError(t, err)
	_, err = part.Write([]byte("mystery"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/files", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	UploadFile(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteFile_Idempotent(t *testing.T) {
	setupService(t)
	id := uploadViaHandler(t, "clip.mp4", "video/mp4", []byte("bytes"))

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/files/"+id.String(), nil)
	req.SetPathValue("id", id.String())
	rec := httptest.NewRecorder()
	DeleteFile(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/api/v1/files/"+id.String(), nil)
	req.SetPathValue("id", id.String())
	DeleteFile(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code, "second delete must also succeed")
}

func TestGetThumbnail_NotFoundWithoutThumbnail(t *testing.T) {
	setupService(t)
	id := uploadViaHandler(t, "clip.mp4", "video/mp4", []byte("bytes"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/files/"+id.String()+"/thumbnail", nil)
	req.SetPathValue("id", id.String())
	rec := httptest.NewRecorder()
	GetThumbnail(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetFile_Metadata(t *testing.T) {
	setupService(t)
	payload := []byte("metadata test")
	id := uploadViaHandler(t, "clip.mp4", "video/mp4", payload)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/files/"+id.String(), nil)
	req.SetPathValue("id", id.String())
	rec := httptest.NewRecorder()
	GetFile(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data struct {
			File         models.File `json:"file"`
			HasThumbnail bool        `json:"hasThumbnail"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "clip.mp4", resp.Data.File.OriginalName)
	assert.Equal(t, int64(len(payload)), resp.Data.File.Size)
	assert.False(t, resp.Data.HasThumbnail)
}
