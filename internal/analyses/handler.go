package analyses

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-coach/internal/extract"
	"resume-coach/internal/llm"
	"resume-coach/internal/shared/server/middleware"
	"resume-coach/internal/shared/server/respond"
	"resume-coach/internal/shared/telemetry"
)

// MaxResumeBytes caps resume uploads at 10 MB.
const MaxResumeBytes = 10 << 20

// Handler exposes the analyses endpoints.
type Handler struct {
	Service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyses", h.create)
	rg.GET("/analyses", h.list)
	rg.GET("/analyses/:id", h.get)
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, CodeInvalidUpload, "resume file is required", nil)
		return
	}
	if fileHeader.Size > MaxResumeBytes {
		respond.Error(c, http.StatusBadRequest, CodeInvalidUpload, "resume exceeds 10MB limit", nil)
		return
	}
	if !isPDF(fileHeader.Header.Get("Content-Type")) {
		respond.Error(c, http.StatusBadRequest, CodeInvalidUpload, "only PDF resumes are accepted", nil)
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, CodeInvalidUpload, "could not read upload", nil)
		return
	}
	defer src.Close()

	key, err := h.Service.Store.Save(c.Request.Context(), fileHeader.Filename, src)
	if err != nil {
		telemetry.Error("upload.save_failed", map[string]any{"error": err.Error()})
		respond.Error(c, http.StatusInternalServerError, CodeInternal, "could not store upload", nil)
		return
	}

	jobDescription := strings.TrimSpace(c.PostForm("jobDescription"))

	a, err := h.Service.Analyze(c.Request.Context(), userID, key, jobDescription)
	if err != nil {
		h.respondAnalyzeError(c, err)
		return
	}

	c.Set("analysisId", a.ID)
	respond.Success(c, gin.H{
		"analysis":       a.RawModelOutput,
		"analysisId":     a.ID,
		"structuredData": a.Result,
	})
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	id := c.Param("id")

	a, err := h.Service.Get(c.Request.Context(), id, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, CodeNotFound, "analysis not found", nil)
			return
		}
		telemetry.Error("analysis.get_failed", map[string]any{"analysis_id": id, "error": err.Error()})
		respond.Error(c, http.StatusInternalServerError, CodeInternal, "could not load analysis", nil)
		return
	}

	respond.Success(c, gin.H{"analysis": a})
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	items, err := h.Service.List(c.Request.Context(), userID)
	if err != nil {
		telemetry.Error("analysis.list_failed", map[string]any{"user_id": userID, "error": err.Error()})
		respond.Error(c, http.StatusInternalServerError, CodeInternal, "could not list analyses", nil)
		return
	}
	if items == nil {
		items = []Analysis{}
	}

	respond.Success(c, gin.H{"analyses": items})
}

func (h *Handler) respondAnalyzeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrEmptyResume):
		respond.Error(c, http.StatusBadRequest, CodeEmptyText, "resume contains no extractable text; use a text-based PDF", nil)
	case errors.Is(err, extract.ErrUnreadable):
		respond.Error(c, http.StatusBadRequest, CodeExtractionFailure, "could not read the PDF; re-upload a valid PDF", nil)
	case errors.Is(err, ErrUploadMissing):
		respond.Error(c, http.StatusNotFound, CodeUploadNotFound, "uploaded file is no longer available; re-upload", nil)
	case errors.Is(err, llm.ErrProviderTimeout):
		respond.Error(c, http.StatusGatewayTimeout, CodeProviderTimeout, "analysis provider timed out", nil)
	case errors.Is(err, llm.ErrNoJSONFound):
		respond.Error(c, http.StatusBadGateway, CodeNoJSONFound, "analysis provider returned no JSON", nil)
	case errors.Is(err, llm.ErrMalformedJSON):
		respond.Error(c, http.StatusBadGateway, CodeMalformedJSON, "analysis provider returned malformed JSON", nil)
	case errors.Is(err, llm.ErrSchemaViolation):
		respond.Error(c, http.StatusBadGateway, CodeSchemaViolation, "analysis provider response missed required fields", nil)
	default:
		telemetry.Error("analysis.failed", map[string]any{"error": err.Error()})
		respond.Error(c, http.StatusInternalServerError, CodeInternal, "analysis failed", nil)
	}
}

func isPDF(contentType string) bool {
	return strings.EqualFold(strings.TrimSpace(contentType), "application/pdf")
}
