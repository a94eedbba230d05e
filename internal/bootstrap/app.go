package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gin-gonic/gin"

	"resume-coach/internal/analyses"
	"resume-coach/internal/auth"
	"resume-coach/internal/avatars"
	"resume-coach/internal/jobs"
	"resume-coach/internal/llm"
	"resume-coach/internal/llm/gemini"
	"resume-coach/internal/llm/openai"
	"resume-coach/internal/quizzes"
	"resume-coach/internal/server"
	"resume-coach/internal/shared/config"
	"resume-coach/internal/shared/storage/db"
	"resume-coach/internal/shared/storage/object/local"
	"resume-coach/internal/shared/telemetry"
	"resume-coach/internal/users"
)

// App is the fully wired application.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
}

// Close releases held resources.
func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

// Build wires storage, repositories, the model client, and all HTTP
// handlers. Without DATABASE_URL the app runs on in-memory repos, which
// suits local development.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	store, err := local.New(cfg.UploadsDir)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: uploads: %w", err)
	}

	var (
		conn         *sql.DB
		analysesRepo analyses.Repo
		jobsRepo     jobs.Repo
		avatarsRepo  avatars.Repo
		usersRepo    users.Repo
	)
	if cfg.DatabaseURL != "" {
		opts := db.OptionsFromEnv()
		opts.DatabaseURL = cfg.DatabaseURL
		conn, err = db.Connect(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: %w", err)
		}
		if err := db.Migrate(ctx, conn); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("bootstrap: %w", err)
		}
		analysesRepo = analyses.NewPGRepo(conn)
		jobsRepo = jobs.NewPGRepo(conn)
		avatarsRepo = avatars.NewPGRepo(conn)
		usersRepo = users.NewPGRepo(conn)
		telemetry.Info("bootstrap.storage", map[string]any{"backend": "postgres"})
	} else {
		analysesRepo = analyses.NewMemoryRepo()
		jobsRepo = jobs.NewMemoryRepo()
		avatarsRepo = avatars.NewMemoryRepo()
		usersRepo = users.NewMemoryRepo()
		telemetry.Warn("bootstrap.storage", map[string]any{"backend": "memory"})
	}

	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		if conn != nil {
			_ = conn.Close()
		}
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	analysesSvc := analyses.NewService(analysesRepo, store, client, cfg.LLMTimeout)
	generator := quizzes.NewGenerator(client, cfg.LLMTimeout)
	jobsSvc := jobs.NewService(jobsRepo, analysesRepo, client, cfg.LLMTimeout)

	google := auth.NewGoogleService(
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.GoogleRedirectURL,
		cfg.UIRedirectURL,
		usersRepo,
	)

	router := server.NewRouter(server.RouterDeps{
		Config:   cfg,
		Analyses: analyses.NewHandler(analysesSvc),
		Quizzes:  quizzes.NewHandler(generator, analysesRepo),
		Jobs:     jobs.NewHandler(jobsSvc),
		Avatars:  avatars.NewHandler(avatarsRepo, store),
		Users:    users.NewHandler(usersRepo),
		Google:   google,
	})

	return &App{Config: cfg, Router: router, DB: conn}, nil
}

func newLLMClient(ctx context.Context, cfg config.Config) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "openai":
		return openai.NewClient("", cfg.LLMModel)
	default:
		return gemini.New(ctx, "", cfg.LLMModel)
	}
}
