package httpapi

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rodneymanor/screenshot-api/internal/infra/workspace"
	"github.com/rodneymanor/screenshot-api/internal/usecase"
	"go.uber.org/zap"
)

type ServerConfig struct {
	BodyLimit          string
	DefaultScreenshots int
	DefaultQuality     int
}

type Server struct {
	uc        *usecase.CreateScreenshotsUseCase
	workspace *workspace.Workspace
	cfg       ServerConfig
	logger    *zap.Logger
}

func NewServer(uc *usecase.CreateScreenshotsUseCase, ws *workspace.Workspace, cfg ServerConfig, logger *zap.Logger) *echo.Echo {
	s := &Server{uc: uc, workspace: ws, cfg: cfg, logger: logger}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "DELETE"},
	}))
	e.Use(echomw.BodyLimit(cfg.BodyLimit))

	e.GET("/healthz", s.handleHealth)
	e.POST("/screenshots", s.handleCreateScreenshots)
	e.GET("/jobs/:id", s.handleGetJob)
	e.DELETE("/jobs/:id", s.handleDeleteJob)

	return e
}
