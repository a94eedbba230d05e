package analyses

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"resume-coach/internal/extract"
	"resume-coach/internal/llm"
	"resume-coach/internal/shared/storage/object"
	"resume-coach/internal/shared/telemetry"
)

// Service runs the upload-to-analysis pipeline.
type Service struct {
	Repo    Repo
	Store   object.Store
	LLM     llm.Client
	Timeout time.Duration
}

func NewService(repo Repo, store object.Store, client llm.Client, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	return &Service{Repo: repo, Store: store, LLM: client, Timeout: timeout}
}

// Analyze extracts text from a stored upload, asks the model for
// structured feedback, and persists the analysis. The stored file is
// deleted exactly once whatever the outcome.
func (s *Service) Analyze(ctx context.Context, userID, fileKey, jobDescription string) (*Analysis, error) {
	defer func() {
		if err := s.Store.Delete(context.Background(), fileKey); err != nil {
			telemetry.Warn("upload.cleanup_failed", map[string]any{
				"file_key": fileKey,
				"error":    err.Error(),
			})
		}
	}()

	rc, err := s.Store.Open(ctx, fileKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadMissing, err)
	}
	text, err := extract.TextFromReader(rc)
	_ = rc.Close()
	if err != nil {
		if errors.Is(err, extract.ErrEmptyText) {
			return nil, ErrEmptyResume
		}
		return nil, err
	}

	prompt := llm.AnalysisPrompt(text, jobDescription)

	callCtx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	raw, err := s.LLM.Complete(callCtx, prompt)
	if err != nil {
		return nil, llm.ClassifyTimeout(err)
	}

	result, err := ParseResult(raw)
	if err != nil {
		return nil, err
	}

	a := &Analysis{
		ID:             uuid.NewString(),
		UserID:         userID,
		ResumeText:     text,
		JobDescription: jobDescription,
		RawModelOutput: raw,
		Result:         result,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("persist analysis: %w", err)
	}

	telemetry.Info("analysis.created", map[string]any{
		"analysis_id": a.ID,
		"user_id":     userID,
		"has_jd":      jobDescription != "",
	})
	return a, nil
}

// Get returns an analysis visible to userID.
func (s *Service) Get(ctx context.Context, id, userID string) (*Analysis, error) {
	return s.Repo.GetByIDForUser(ctx, id, userID)
}

// List returns the caller's most recent analyses.
func (s *Service) List(ctx context.Context, userID string) ([]Analysis, error) {
	return s.Repo.ListByUser(ctx, userID, DefaultListLimit)
}
