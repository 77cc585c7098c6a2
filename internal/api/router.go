package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/smartblog/editor-api/internal/api/handler"
	"github.com/smartblog/editor-api/internal/api/middleware"
	"github.com/smartblog/editor-api/internal/core/ports"
)

// Dependencies is everything the HTTP surface needs from the core.
type Dependencies struct {
	Log           zerolog.Logger
	AuthService   ports.AuthService
	PostService   ports.PostService
	AIService     ports.AIService
	TokenVerifier ports.TokenVerifier

	// CORSOrigins defaults to any origin when empty.
	CORSOrigins []string
	// Metrics receives the HTTP request collectors. Nil disables them.
	Metrics prometheus.Registerer
	// RootMessage is served on GET /.
	RootMessage string
}

// NewRouter builds and returns the Echo instance with all API routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Log))
	e.Use(echomiddleware.BodyLimit("2M"))
	e.Use(echomiddleware.CORSWithConfig(corsConfig(deps.CORSOrigins)))
	if deps.Metrics != nil {
		e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Subsystem:  "blog_http",
			Registerer: deps.Metrics,
		}))
	}

	authHandler := handler.NewAuthHandler(deps.AuthService)
	postHandler := handler.NewPostHandler(deps.PostService)
	aiHandler := handler.NewAIHandler(deps.AIService)
	requireAuth := middleware.Auth(deps.TokenVerifier)

	rootMessage := deps.RootMessage
	if rootMessage == "" {
		rootMessage = "API is running"
	}
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": rootMessage})
	})

	// --- Auth routes ---
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)

	// --- Post routes (reads are public, writes need a bearer token) ---
	for _, path := range []string{"/api/posts", "/api/posts/"} {
		e.GET(path, postHandler.List)
		e.POST(path, postHandler.Create, requireAuth)
	}
	e.PATCH("/api/posts/:id", postHandler.Update, requireAuth)
	e.DELETE("/api/posts/:id", postHandler.Delete, requireAuth)

	// --- AI ---
	e.POST("/api/ai/generate", aiHandler.Generate)

	return e
}

func corsConfig(origins []string) echomiddleware.CORSConfig {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return echomiddleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType},
	}
}
