package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/smartblog/editor-api/internal/api"
	"github.com/smartblog/editor-api/internal/core/ports"
	"github.com/smartblog/editor-api/internal/core/service"
	"github.com/smartblog/editor-api/internal/infrastructure/ai"
	"github.com/smartblog/editor-api/internal/infrastructure/config"
	mongostore "github.com/smartblog/editor-api/internal/infrastructure/db/mongo"
	redisstore "github.com/smartblog/editor-api/internal/infrastructure/db/redis"
	"github.com/smartblog/editor-api/internal/infrastructure/db/sqlite"
	httpops "github.com/smartblog/editor-api/internal/infrastructure/http"
	"github.com/smartblog/editor-api/internal/infrastructure/http/handlers"
	"github.com/smartblog/editor-api/internal/infrastructure/security"
	"github.com/smartblog/editor-api/pkg/logger"
)

const shutdownTimeout = 30 * time.Second

// @title                       Smart Blog Editor API
// @version                     1.0
// @description                 Accounts, post drafts and AI-assisted writing for the blog editor.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// stores groups the repositories and the hooks that go with the chosen driver.
type stores struct {
	users  ports.UserRepository
	posts  ports.PostRepository
	probes map[string]handlers.Probe
	close  func(context.Context)
	mode   string
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "editor-api",
	})

	st, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.close(context.Background())

	hasher := security.NewBcryptHasher(cfg.Auth.BcryptCost)
	tokens := security.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL)

	var authOpts []service.AuthOption
	if cfg.Redis.Addr != "" {
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer rdb.Close()

		throttle := redisstore.NewLoginThrottle(rdb, cfg.Auth.LoginWindow)
		authOpts = append(authOpts, service.WithLoginThrottle(throttle, cfg.Auth.LoginMaxAttempts))
		st.probes["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	} else {
		log.Warn().Msg("REDIS_ADDR not set, login throttling disabled")
	}

	var generator ports.TextGenerator
	if cfg.GenAI.APIKey != "" {
		gemini, err := ai.NewGeminiClient(ctx, ai.Config{
			APIKey:  cfg.GenAI.APIKey,
			Model:   cfg.GenAI.Model,
			BaseURL: cfg.GenAI.BaseURL,
			Timeout: cfg.GenAI.Timeout,
		})
		if err != nil {
			return err
		}
		generator = gemini
	} else {
		log.Warn().Msg("GENAI_API_KEY not set, AI generation runs in mock mode")
	}

	e := api.NewRouter(api.Dependencies{
		Log:           log,
		AuthService:   service.NewAuthService(st.users, hasher, tokens, log, authOpts...),
		PostService:   service.NewPostService(st.posts, log),
		AIService:     service.NewAIService(generator, log),
		TokenVerifier: tokens,
		CORSOrigins:   cfg.CORSOrigins,
		Metrics:       prometheus.DefaultRegisterer,
		RootMessage:   fmt.Sprintf("API is running (%s Mode)", st.mode),
	})
	httpops.RegisterOps(e, st.probes)

	return serve(ctx, e, cfg, log)
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	switch cfg.Store.Driver {
	case config.DriverMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Store.MongoURI, Database: cfg.Store.MongoDB})
		if err != nil {
			return nil, err
		}
		users := mongostore.NewUserRepository(db)
		posts := mongostore.NewPostRepository(db)
		if err := mongostore.EnsureIndexes(ctx, users, posts); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		return &stores{
			users:  users,
			posts:  posts,
			probes: map[string]handlers.Probe{"mongodb": func(ctx context.Context) error { return client.Ping(ctx, nil) }},
			close:  func(ctx context.Context) { _ = client.Disconnect(ctx) },
			mode:   "MongoDB",
		}, nil

	default:
		db, err := sqlite.Open(ctx, sqlite.Config{Path: cfg.Store.SQLitePath})
		if err != nil {
			return nil, err
		}
		return &stores{
			users:  sqlite.NewUserRepository(db),
			posts:  sqlite.NewPostRepository(db),
			probes: map[string]handlers.Probe{"sqlite": db.PingContext},
			close:  func(context.Context) { _ = db.Close() },
			mode:   "SQLite",
		}, nil
	}
}

func serve(ctx context.Context, h http.Handler, cfg *config.Config, log zerolog.Logger) error {
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.GenAI.Timeout + 15*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Str("store", cfg.Store.Driver).Msg("API server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info().Msg("API server stopped")
	return nil
}
