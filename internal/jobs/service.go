package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"resume-coach/internal/analyses"
	"resume-coach/internal/llm"
	"resume-coach/internal/shared/telemetry"
)

// ErrNoAnalysis means the caller has no analysis to base
// recommendations on.
var ErrNoAnalysis = errors.New("no analysis available for recommendations")

// Service produces job recommendations from the caller's latest
// analysis.
type Service struct {
	Repo     Repo
	Analyses analyses.Repo
	LLM      llm.Client
	Timeout  time.Duration
}

func NewService(repo Repo, analysesRepo analyses.Repo, client llm.Client, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	return &Service{Repo: repo, Analyses: analysesRepo, LLM: client, Timeout: timeout}
}

type recommendationList struct {
	Jobs []struct {
		Title       string   `json:"title"`
		Company     string   `json:"company"`
		Location    string   `json:"location"`
		Description string   `json:"description"`
		Skills      []string `json:"skills"`
	} `json:"jobs"`
}

// Recommended asks the model for roles matching the caller's latest
// analysis and persists them so they show up in the job list.
func (s *Service) Recommended(ctx context.Context, userID string) ([]Job, error) {
	latest, err := s.Analyses.ListByUser(ctx, userID, 1)
	if err != nil {
		return nil, fmt.Errorf("load latest analysis: %w", err)
	}
	if len(latest) == 0 {
		return nil, ErrNoAnalysis
	}
	a := latest[0]

	prompt := llm.JobRecommendationPrompt(a.ResumeText, a.Result.Strengths, a.Result.SkillsToImprove)

	callCtx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	raw, err := s.LLM.Complete(callCtx, prompt)
	if err != nil {
		return nil, llm.ClassifyTimeout(err)
	}

	var parsed recommendationList
	if err := llm.ExtractJSONObject(raw, &parsed); err != nil {
		return nil, err
	}
	if len(parsed.Jobs) == 0 {
		return nil, fmt.Errorf("%w: zero jobs returned", llm.ErrSchemaViolation)
	}
	if len(parsed.Jobs) > llm.JobRecommendations {
		parsed.Jobs = parsed.Jobs[:llm.JobRecommendations]
	}

	now := time.Now().UTC()
	out := make([]Job, 0, len(parsed.Jobs))
	for i, rec := range parsed.Jobs {
		if rec.Title == "" {
			return nil, fmt.Errorf("%w: job %d missing title", llm.ErrSchemaViolation, i)
		}
		job := Job{
			ID:          uuid.NewString(),
			Title:       rec.Title,
			Company:     rec.Company,
			Location:    rec.Location,
			Description: rec.Description,
			Skills:      rec.Skills,
			CreatedAt:   now,
		}
		if job.Skills == nil {
			job.Skills = []string{}
		}
		if err := s.Repo.Create(ctx, &job); err != nil {
			return nil, fmt.Errorf("persist job: %w", err)
		}
		out = append(out, job)
	}

	telemetry.Info("jobs.recommended", map[string]any{
		"analysis_id": a.ID,
		"user_id":     userID,
		"count":       len(out),
	})
	return out, nil
}

// List returns the most recent stored jobs.
func (s *Service) List(ctx context.Context) ([]Job, error) {
	return s.Repo.List(ctx, DefaultListLimit)
}
