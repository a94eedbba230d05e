package jobs

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

// Handler exposes the jobs endpoints.
type Handler struct {
	Service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/jobs", h.list)
	rg.GET("/jobs/recommended", h.recommended)
}

func (h *Handler) recommended(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	items, err := h.Service.Recommended(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoAnalysis):
			respond.Error(c, http.StatusBadRequest, "no_analysis", "upload and analyze a resume first", nil)
		case errors.Is(err, llm.ErrProviderTimeout):
			respond.Error(c, http.StatusGatewayTimeout, analyses.CodeProviderTimeout, "recommendation provider timed out", nil)
		case errors.Is(err, llm.ErrNoJSONFound), errors.Is(err, llm.ErrMalformedJSON), errors.Is(err, llm.ErrSchemaViolation):
			respond.Error(c, http.StatusBadGateway, analyses.CodeSchemaViolation, "recommendation provider returned an unusable response", nil)
		default:
			telemetry.Error("jobs.recommend_failed", map[string]any{"user_id": userID, "error": err.Error()})
			respond.Error(c, http.StatusInternalServerError, analyses.CodeInternal, "could not build recommendations", nil)
		}
		return
	}

	respond.Success(c, gin.H{"jobs": items})
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.Service.List(c.Request.Context())
	if err != nil {
		telemetry.Error("jobs.list_failed", map[string]any{"error": err.Error()})
		respond.Error(c, http.StatusInternalServerError, analyses.CodeInternal, "could not list jobs", nil)
		return
	}
	if items == nil {
		items = []Job{}
	}

	respond.Success(c, gin.H{"jobs": items})
}
