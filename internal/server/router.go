package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"resume-coach/internal/analyses"
	"resume-coach/internal/auth"
	"resume-coach/internal/avatars"
	"resume-coach/internal/jobs"
	"resume-coach/internal/quizzes"
	"resume-coach/internal/shared/config"
	"resume-coach/internal/shared/server/middleware"
	"resume-coach/internal/users"
)

// RouterDeps carries everything the router mounts.
type RouterDeps struct {
	Config   config.Config
	Analyses *analyses.Handler
	Quizzes  *quizzes.Handler
	Jobs     *jobs.Handler
	Avatars  *avatars.Handler
	Users    *users.Handler
	Google   *auth.GoogleService
}

// NewRouter assembles the gin engine with the full middleware chain and
// all API routes under /api/v1.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logging())
	router.Use(middleware.Recovery())
	router.Use(cors.New(corsConfig(deps.Config)))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	if deps.Google != nil {
		deps.Google.RegisterRoutes(api)
	}

	api.Use(middleware.Auth(deps.Config.Env))
	if deps.Analyses != nil {
		deps.Analyses.RegisterRoutes(api)
	}
	if deps.Quizzes != nil {
		deps.Quizzes.RegisterRoutes(api)
	}
	if deps.Jobs != nil {
		deps.Jobs.RegisterRoutes(api)
	}
	if deps.Avatars != nil {
		deps.Avatars.RegisterRoutes(api)
	}
	if deps.Users != nil {
		deps.Users.RegisterRoutes(api)
	}

	return router
}

func corsConfig(cfg config.Config) cors.Config {
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Guest-Id", "X-Request-Id"},
		ExposeHeaders:    []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	origins := cfg.CORSAllowOrigin
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = origins
	}
	return corsCfg
}
