package analyses

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"resume-coach/internal/extract"
	"resume-coach/internal/llm"
)

type fakeLLM struct {
	response string
	err      error
	calls    int
	prompts  []string
}

func (f *fakeLLM) Complete(ctx context.Context, prompt string) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

type fakeStore struct {
	mu      sync.Mutex
	files   map[string][]byte
	deletes map[string]int
	openErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{files: map[string][]byte{}, deletes: map[string]int{}}
}

func (s *fakeStore) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := fmt.Sprintf("%d-%s", len(s.files), name)
	s.files[key] = data
	return key, nil
}

func (s *fakeStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.openErr != nil {
		return nil, s.openErr
	}
	data, ok := s.files[key]
	if !ok {
		return nil, fmt.Errorf("missing key %s", key)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes[key]++
	delete(s.files, key)
	return nil
}

const validResponse = `{
  "strengths": ["ships projects"],
  "weaknesses": ["no cloud experience"],
  "skillsToImprove": ["Kubernetes"],
  "courseRecommendations": ["CKA prep"],
  "overallEvaluation": "strong mid-level profile"
}`

func storedPDF(t *testing.T, store *fakeStore, text string) string {
	t.Helper()
	key, err := store.Save(context.Background(), "resume.pdf", bytes.NewReader(testPDF(text)))
	if err != nil {
		t.Fatalf("seed store: %v", err)
	}
	return key
}

// testPDF builds a minimal one-page PDF containing text.
func testPDF(text string) []byte {
	var buf bytes.Buffer
	var offsets []int

	object := func(body string) {
		offsets = append(offsets, buf.Len())
		buf.WriteString(body)
	}

	buf.WriteString("%PDF-1.4\n")
	object("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	object("2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n")
	object("3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>\nendobj\n")
	stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
	object(fmt.Sprintf("4 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(stream), stream))
	object("5 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n")

	xrefStart := buf.Len()
	buf.WriteString(fmt.Sprintf("xref\n0 %d\n", len(offsets)+1))
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		buf.WriteString(fmt.Sprintf("%010d 00000 n \n", off))
	}
	buf.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xrefStart))
	return buf.Bytes()
}

func TestAnalyzePersistsAndCleansUp(t *testing.T) {
	repo := NewMemoryRepo()
	store := newFakeStore()
	client := &fakeLLM{response: validResponse}
	svc := NewService(repo, store, client, time.Second)

	key := storedPDF(t, store, "Go developer with five years experience")

	a, err := svc.Analyze(context.Background(), "guest:u1", key, "")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if a.ID == "" {
		t.Fatal("expected generated id")
	}
	if len(a.Result.Weaknesses) != 1 || a.Result.Weaknesses[0] != "no cloud experience" {
		t.Fatalf("unexpected result: %+v", a.Result)
	}
	if a.RawModelOutput != validResponse {
		t.Fatal("raw model output must be kept verbatim")
	}

	stored, err := repo.GetByID(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("expected persisted record: %v", err)
	}
	if stored.UserID != "guest:u1" {
		t.Fatalf("unexpected owner %q", stored.UserID)
	}

	if store.deletes[key] != 1 {
		t.Fatalf("expected exactly one delete, got %d", store.deletes[key])
	}
}

func TestAnalyzeCleansUpOnParseFailure(t *testing.T) {
	repo := NewMemoryRepo()
	store := newFakeStore()
	client := &fakeLLM{response: "no json here"}
	svc := NewService(repo, store, client, time.Second)

	key := storedPDF(t, store, "some resume text")

	_, err := svc.Analyze(context.Background(), "guest:u1", key, "")
	if !errors.Is(err, llm.ErrNoJSONFound) {
		t.Fatalf("expected ErrNoJSONFound, got %v", err)
	}

	if store.deletes[key] != 1 {
		t.Fatalf("expected exactly one delete on failure, got %d", store.deletes[key])
	}

	items, err := repo.ListByUser(context.Background(), "guest:u1", 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 0 {
		t.Fatal("no record may be persisted when parsing fails")
	}
}

func TestAnalyzeUnreadablePDF(t *testing.T) {
	repo := NewMemoryRepo()
	store := newFakeStore()
	client := &fakeLLM{response: validResponse}
	svc := NewService(repo, store, client, time.Second)

	key, err := store.Save(context.Background(), "resume.pdf", strings.NewReader("not a pdf at all"))
	if err != nil {
		t.Fatalf("seed store: %v", err)
	}

	_, err = svc.Analyze(context.Background(), "guest:u1", key, "")
	if !errors.Is(err, extract.ErrUnreadable) {
		t.Fatalf("expected ErrUnreadable, got %v", err)
	}
	if client.calls != 0 {
		t.Fatal("model must not be called for unreadable uploads")
	}
	if store.deletes[key] != 1 {
		t.Fatalf("expected cleanup for unreadable upload, got %d deletes", store.deletes[key])
	}
}

func TestAnalyzeMissingUpload(t *testing.T) {
	repo := NewMemoryRepo()
	store := newFakeStore()
	store.openErr = fmt.Errorf("file gone")
	client := &fakeLLM{response: validResponse}
	svc := NewService(repo, store, client, time.Second)

	_, err := svc.Analyze(context.Background(), "guest:u1", "123-resume.pdf", "")
	if !errors.Is(err, ErrUploadMissing) {
		t.Fatalf("expected ErrUploadMissing, got %v", err)
	}
	if client.calls != 0 {
		t.Fatal("model must not be called when the upload is gone")
	}
}

func TestAnalyzeMapsTimeout(t *testing.T) {
	repo := NewMemoryRepo()
	store := newFakeStore()
	client := &fakeLLM{err: context.DeadlineExceeded}
	svc := NewService(repo, store, client, time.Second)

	key := storedPDF(t, store, "some resume text")

	_, err := svc.Analyze(context.Background(), "guest:u1", key, "")
	if !errors.Is(err, llm.ErrProviderTimeout) {
		t.Fatalf("expected ErrProviderTimeout, got %v", err)
	}
	if store.deletes[key] != 1 {
		t.Fatalf("expected cleanup on timeout, got %d deletes", store.deletes[key])
	}
}

func TestAnalyzeIncludesJobDescriptionInPrompt(t *testing.T) {
	repo := NewMemoryRepo()
	store := newFakeStore()
	client := &fakeLLM{response: validResponse}
	svc := NewService(repo, store, client, time.Second)

	key := storedPDF(t, store, "resume body")

	a, err := svc.Analyze(context.Background(), "guest:u1", key, "Staff Engineer at Acme")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if a.JobDescription != "Staff Engineer at Acme" {
		t.Fatalf("job description not persisted: %q", a.JobDescription)
	}
	if len(client.prompts) != 1 || !strings.Contains(client.prompts[0], "Staff Engineer at Acme") {
		t.Fatal("expected job description embedded in prompt")
	}
}

func TestListNewestFirstCappedAtTen(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo, newFakeStore(), &fakeLLM{}, time.Second)
	base := time.Now().UTC()

	for i := 0; i < 12; i++ {
		a := &Analysis{
			ID:        fmt.Sprintf("a-%02d", i),
			UserID:    "guest:u1",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Create(context.Background(), a); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	items, err := svc.List(context.Background(), "guest:u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 10 {
		t.Fatalf("expected 10 items, got %d", len(items))
	}
	if items[0].ID != "a-11" {
		t.Fatalf("expected newest first, got %s", items[0].ID)
	}

	again, err := svc.List(context.Background(), "guest:u1")
	if err != nil {
		t.Fatalf("second list: %v", err)
	}
	for i := range items {
		if items[i].ID != again[i].ID {
			t.Fatal("list must be stable across calls without writes")
		}
	}
}

func TestGetScopedToOwner(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo, newFakeStore(), &fakeLLM{}, time.Second)

	owned := &Analysis{ID: "a1", UserID: "guest:u1", CreatedAt: time.Now().UTC()}
	legacy := &Analysis{ID: "a2", UserID: "", CreatedAt: time.Now().UTC()}
	_ = repo.Create(context.Background(), owned)
	_ = repo.Create(context.Background(), legacy)

	if _, err := svc.Get(context.Background(), "a1", "guest:u2"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected foreign analysis to be hidden, got %v", err)
	}
	if _, err := svc.Get(context.Background(), "a1", "guest:u1"); err != nil {
		t.Fatalf("owner must see own analysis: %v", err)
	}
	if _, err := svc.Get(context.Background(), "a2", "guest:u2"); err != nil {
		t.Fatalf("legacy ownerless analysis must stay readable: %v", err)
	}
}
