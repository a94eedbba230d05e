package avatars

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-coach/internal/shared/server/middleware"
)

type fakeStore struct {
	mu    sync.Mutex
	files map[string][]byte
	seq   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{files: map[string][]byte{}}
}

func (s *fakeStore) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	key := fmt.Sprintf("%d-%s", s.seq, name)
	s.files[key] = data
	return key, nil
}

func (s *fakeStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[key]
	if !ok {
		return nil, fmt.Errorf("missing key %s", key)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, key)
	return nil
}

func newTestRouter(repo Repo, store *fakeStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	api.Use(middleware.Auth("test"))
	NewHandler(repo, store).RegisterRoutes(api)
	return router
}

func imageUpload(t *testing.T, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	hdr := map[string][]string{
		"Content-Disposition": {`form-data; name="image"; filename="` + filename + `"`},
		"Content-Type":        {contentType},
	}
	part, err := w.CreatePart(hdr)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	return &body, w.FormDataContentType()
}

func postAvatar(t *testing.T, router *gin.Engine, filename, contentType string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	body, ct := imageUpload(t, filename, contentType, data)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/avatars", body)
	req.Header.Set("Content-Type", ct)
	req.Header.Set("X-Guest-Id", "u1")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestUploadAvatarAndFetch(t *testing.T) {
	store := newFakeStore()
	router := newTestRouter(NewMemoryRepo(), store)

	resp := postAvatar(t, router, "me.png", "image/png", []byte("png-bytes"))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/avatars/current", nil)
	req.Header.Set("X-Guest-Id", "u1")
	getResp := httptest.NewRecorder()
	router.ServeHTTP(getResp, req)

	if getResp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", getResp.Code)
	}
	if ct := getResp.Header().Get("Content-Type"); ct != "image/png" {
		t.Fatalf("expected stored content type, got %q", ct)
	}
	if !bytes.Equal(getResp.Body.Bytes(), []byte("png-bytes")) {
		t.Fatalf("expected uploaded bytes to stream back, got %q", getResp.Body.Bytes())
	}
}

func TestCurrentAvatarFileGone(t *testing.T) {
	store := newFakeStore()
	router := newTestRouter(NewMemoryRepo(), store)

	resp := postAvatar(t, router, "me.png", "image/png", []byte("png-bytes"))
	if resp.Code != http.StatusOK {
		t.Fatalf("upload: %d", resp.Code)
	}

	store.mu.Lock()
	for k := range store.files {
		delete(store.files, k)
	}
	store.mu.Unlock()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/avatars/current", nil)
	req.Header.Set("X-Guest-Id", "u1")
	getResp := httptest.NewRecorder()
	router.ServeHTTP(getResp, req)

	if getResp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 when the file is gone, got %d", getResp.Code)
	}
}

func TestUploadAvatarReplacesAndDeletesPrior(t *testing.T) {
	store := newFakeStore()
	router := newTestRouter(NewMemoryRepo(), store)

	first := postAvatar(t, router, "one.png", "image/png", []byte("first"))
	if first.Code != http.StatusOK {
		t.Fatalf("first upload: %d", first.Code)
	}
	second := postAvatar(t, router, "two.png", "image/png", []byte("second"))
	if second.Code != http.StatusOK {
		t.Fatalf("second upload: %d", second.Code)
	}

	if len(store.files) != 1 {
		t.Fatalf("prior avatar file must be deleted, %d files remain", len(store.files))
	}
}

func TestUploadAvatarRejectsNonImage(t *testing.T) {
	router := newTestRouter(NewMemoryRepo(), newFakeStore())

	resp := postAvatar(t, router, "notes.txt", "text/plain", []byte("text"))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestCurrentAvatarNotFound(t *testing.T) {
	router := newTestRouter(NewMemoryRepo(), newFakeStore())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/avatars/current", nil)
	req.Header.Set("X-Guest-Id", "u1")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
