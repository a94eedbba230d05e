package quizzes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-coach/internal/analyses"
	"resume-coach/internal/llm"
	"resume-coach/internal/shared/server/middleware"
	"resume-coach/internal/shared/server/respond"
	"resume-coach/internal/shared/telemetry"
)

// Handler exposes quiz generation and scoring endpoints.
type Handler struct {
	Generator *Generator
	Analyses  analyses.Repo
}

func NewHandler(generator *Generator, repo analyses.Repo) *Handler {
	return &Handler{Generator: generator, Analyses: repo}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyses/:id/quizzes", h.generate)
	rg.POST("/quizzes/score", h.score)
}

func (h *Handler) generate(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	analysisID := c.Param("id")

	a, err := h.Analyses.GetByIDForUser(c.Request.Context(), analysisID, userID)
	if err != nil {
		if errors.Is(err, analyses.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, analyses.CodeNotFound, "analysis not found", nil)
			return
		}
		telemetry.Error("quiz.load_analysis_failed", map[string]any{"analysis_id": analysisID, "error": err.Error()})
		respond.Error(c, http.StatusInternalServerError, analyses.CodeInternal, "could not load analysis", nil)
		return
	}

	// Weaknesses drive quiz generation; skill gaps stand in when the
	// model reported none.
	targets := a.Result.Weaknesses
	if len(targets) == 0 {
		targets = a.Result.SkillsToImprove
	}
	if len(targets) == 0 {
		respond.Error(c, http.StatusBadRequest, "no_quiz_targets", "analysis has no weaknesses or skill gaps to quiz on", nil)
		return
	}

	generated, err := h.Generator.GenerateBatch(c.Request.Context(), targets)
	if err != nil {
		h.respondGenerateError(c, err)
		return
	}

	c.Set("analysisId", a.ID)
	respond.Success(c, gin.H{
		"quizzes": generated,
		"basedOn": gin.H{
			"analysisId":      a.ID,
			"weaknesses":      a.Result.Weaknesses,
			"skillsToImprove": a.Result.SkillsToImprove,
		},
	})
}

type scoreRequest struct {
	Quizzes []WeaknessQuiz `json:"quizzes"`
	Answers [][]int        `json:"answers"`
}

func (h *Handler) score(c *gin.Context) {
	var req scoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_body", "could not parse score request", nil)
		return
	}
	if len(req.Quizzes) == 0 {
		respond.Error(c, http.StatusBadRequest, "invalid_body", "at least one quiz is required", nil)
		return
	}

	result := ScoreAnswers(req.Quizzes, req.Answers)
	respond.Success(c, gin.H{"score": result})
}

func (h *Handler) respondGenerateError(c *gin.Context, err error) {
	var batchErr *BatchError
	details := any(nil)
	if errors.As(err, &batchErr) {
		details = gin.H{"failedWeakness": batchErr.Target, "index": batchErr.Index}
	}

	switch {
	case errors.Is(err, llm.ErrProviderTimeout):
		respond.Error(c, http.StatusGatewayTimeout, analyses.CodeProviderTimeout, "quiz provider timed out", details)
	case errors.Is(err, llm.ErrNoJSONFound):
		respond.Error(c, http.StatusBadGateway, analyses.CodeNoJSONFound, "quiz provider returned no JSON", details)
	case errors.Is(err, llm.ErrMalformedJSON):
		respond.Error(c, http.StatusBadGateway, analyses.CodeMalformedJSON, "quiz provider returned malformed JSON", details)
	case errors.Is(err, llm.ErrSchemaViolation):
		respond.Error(c, http.StatusBadGateway, analyses.CodeSchemaViolation, "quiz provider response missed required fields", details)
	default:
		telemetry.Error("quiz.generate_failed", map[string]any{"error": err.Error()})
		respond.Error(c, http.StatusInternalServerError, analyses.CodeInternal, "quiz generation failed", details)
	}
}
