package quizzes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"resume-coach/internal/analyses"
	"resume-coach/internal/shared/server/middleware"
)

func newTestRouter(gen *Generator, repo analyses.Repo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	api.Use(middleware.Auth("test"))
	NewHandler(gen, repo).RegisterRoutes(api)
	return router
}

func seedAnalysis(t *testing.T, repo analyses.Repo, weaknesses, skills []string) string {
	t.Helper()
	a := &analyses.Analysis{
		ID:     "an-1",
		UserID: "guest:u1",
		Result: analyses.Result{
			Weaknesses:      weaknesses,
			SkillsToImprove: skills,
		},
		CreatedAt: time.Now().UTC(),
	}
	if err := repo.Create(context.Background(), a); err != nil {
		t.Fatalf("seed analysis: %v", err)
	}
	return a.ID
}

func TestGenerateEndpointPerWeakness(t *testing.T) {
	repo := analyses.NewMemoryRepo()
	id := seedAnalysis(t, repo, []string{"w1", "w2"}, nil)
	client := &scriptedLLM{responses: []string{quizJSON(t, 5, "Technical"), quizJSON(t, 5, "Communication")}}
	router := newTestRouter(NewGenerator(client, time.Second), repo)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses/"+id+"/quizzes", nil)
	req.Header.Set("X-Guest-Id", "u1")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var out struct {
		Quizzes []WeaknessQuiz `json:"quizzes"`
		BasedOn struct {
			AnalysisID string   `json:"analysisId"`
			Weaknesses []string `json:"weaknesses"`
		} `json:"basedOn"`
		Success bool `json:"success"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !out.Success || len(out.Quizzes) != 2 {
		t.Fatalf("unexpected response: %+v", out)
	}
	if out.Quizzes[0].Weakness != "w1" || len(out.Quizzes[0].Quiz.Questions) != 5 {
		t.Fatalf("unexpected first quiz: %+v", out.Quizzes[0])
	}
	if out.BasedOn.AnalysisID != id {
		t.Fatalf("expected basedOn to reference the analysis, got %q", out.BasedOn.AnalysisID)
	}
}

func TestGenerateEndpointNoTargetsRejectedBeforeModelCall(t *testing.T) {
	repo := analyses.NewMemoryRepo()
	id := seedAnalysis(t, repo, nil, nil)
	client := &scriptedLLM{}
	router := newTestRouter(NewGenerator(client, time.Second), repo)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses/"+id+"/quizzes", nil)
	req.Header.Set("X-Guest-Id", "u1")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if client.calls != 0 {
		t.Fatal("model must not be called when there is nothing to quiz on")
	}
}

func TestGenerateEndpointDiscardsPartialBatch(t *testing.T) {
	repo := analyses.NewMemoryRepo()
	id := seedAnalysis(t, repo, []string{"w1", "w2"}, nil)
	client := &scriptedLLM{responses: []string{quizJSON(t, 5, "Technical"), "not json"}}
	router := newTestRouter(NewGenerator(client, time.Second), repo)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses/"+id+"/quizzes", nil)
	req.Header.Set("X-Guest-Id", "u1")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d: %s", resp.Code, resp.Body.String())
	}
	if bytes.Contains(resp.Body.Bytes(), []byte(`"quizzes"`)) {
		t.Fatal("failed batch must not surface partial quizzes")
	}
}

func TestGenerateEndpointUnknownAnalysis(t *testing.T) {
	router := newTestRouter(NewGenerator(&scriptedLLM{}, time.Second), analyses.NewMemoryRepo())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyses/missing/quizzes", nil)
	req.Header.Set("X-Guest-Id", "u1")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestScoreEndpoint(t *testing.T) {
	router := newTestRouter(NewGenerator(&scriptedLLM{}, time.Second), analyses.NewMemoryRepo())

	payload := scoreRequest{
		Quizzes: []WeaknessQuiz{{Weakness: "w1", Quiz: Quiz{Questions: []Question{
			{Question: "Q1", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 0, Category: "Technical"},
			{Question: "Q2", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 1, Category: "Technical"},
		}}}},
		Answers: [][]int{{0, 0}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/quizzes/score", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Guest-Id", "u1")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var out struct {
		Score   SessionScore `json:"score"`
		Success bool         `json:"success"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Score.Correct != 1 || out.Score.Total != 2 {
		t.Fatalf("unexpected score: %+v", out.Score)
	}
	if out.Score.Categories["Technical Skills"] != 50 {
		t.Fatalf("expected Technical Skills at 50%%, got %+v", out.Score.Categories)
	}
}

func TestScoreEndpointRejectsEmptyBody(t *testing.T) {
	router := newTestRouter(NewGenerator(&scriptedLLM{}, time.Second), analyses.NewMemoryRepo())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/quizzes/score", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Guest-Id", "u1")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}
