package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/educamedic-api/api/swagger"
	"github.com/noah-isme/educamedic-api/internal/handler"
	"github.com/noah-isme/educamedic-api/internal/middleware"
	"github.com/noah-isme/educamedic-api/internal/repository"
	"github.com/noah-isme/educamedic-api/internal/service"
	"github.com/noah-isme/educamedic-api/pkg/config"
	"github.com/noah-isme/educamedic-api/pkg/database"
	"github.com/noah-isme/educamedic-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/educamedic-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/educamedic-api/pkg/middleware/requestid"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics := service.NewMetricsService()

	store, closer, err := openCourseStore(ctx, cfg, logr)
	if err != nil {
		logr.Fatal("failed to open course store", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}
	defer closer.Close() //nolint:errcheck

	courseSvc := service.NewCourseService(repository.NewObservedCourseStore(store, metrics), validator.New(), logr)
	verifier := service.NewTokenVerifier(cfg.Auth.JWTSecret)
	if !verifier.Enabled() {
		logr.Warn("AUTHENTICATION_JWT_SECRET is empty, course routes are unauthenticated")
	}

	r, err := newRouter(cfg, logr, metrics, handler.NewCourseHandler(courseSvc), verifier)
	if err != nil {
		logr.Fatal("failed to build router", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env), zap.String("driver", cfg.Database.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logr.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("server forced to shutdown", zap.Error(err))
	}
	logr.Info("server stopped")
}

// apiRoutes are the first path segments registered under the API prefix.
var apiRoutes = map[string]struct{}{"courses": {}, "health": {}, "metrics": {}}

// newRouter assembles the middleware chain and routes. Course routes sit under
// the configured API prefix behind the bearer token gate; docs are mounted
// under the same prefix at the swagger path.
func newRouter(cfg *config.Config, logr *zap.Logger, metrics *service.MetricsService, courses *handler.CourseHandler, verifier *service.TokenVerifier) (*gin.Engine, error) {
	docs := docsPath(cfg.Swagger.Path)
	if _, taken := apiRoutes[strings.SplitN(docs, "/", 2)[0]]; taken {
		return nil, fmt.Errorf("SWAGGER_APP_PATH %q collides with an API route", cfg.Swagger.Path)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(corsmiddleware.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: cfg.CORS.AllowedMethods,
		AllowedHeaders: cfg.CORS.AllowedHeaders,
		Credentials:    cfg.CORS.Credentials,
	}))
	r.Use(middleware.Metrics(metrics))

	metricsHandler := handler.NewMetricsHandler(metrics)
	api := r.Group(cfg.APIPrefix)
	api.GET("/health", metricsHandler.Health)
	api.GET("/metrics", metricsHandler.Prometheus)

	courseRoutes := api.Group("/courses", middleware.Authenticate(verifier))
	courseRoutes.GET("", courses.List)
	courseRoutes.POST("", courses.Create)
	courseRoutes.GET("/:id", courses.Get)
	courseRoutes.PATCH("/:id", courses.Update)

	if cfg.Env != config.EnvProduction {
		basePath := cfg.APIPrefix
		if basePath == "" {
			basePath = "/"
		}
		swagger.Configure(cfg.Swagger.Title, cfg.Swagger.Version, cfg.Swagger.Description, basePath)
		api.GET("/"+docs+"/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r, nil
}

func docsPath(configured string) string {
	if p := strings.Trim(configured, "/"); p != "" {
		return p
	}
	return "docs"
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// openCourseStore connects the configured backend and prepares its indexes or schema.
func openCourseStore(ctx context.Context, cfg *config.Config, logr *zap.Logger) (repository.CourseStore, io.Closer, error) {
	switch cfg.Database.Driver {
	case config.DriverMongo:
		client, db, err := database.NewMongo(ctx, cfg.Mongo, cfg.Env, cfg.Database.Timeout)
		if err != nil {
			return nil, nil, err
		}
		disconnect := closerFunc(func() error {
			dctx, cancel := context.WithTimeout(context.Background(), cfg.Database.Timeout)
			defer cancel()
			return client.Disconnect(dctx)
		})
		store := repository.NewMongoCourseStore(db)
		if err := store.EnsureIndexes(ctx); err != nil {
			_ = disconnect.Close()
			return nil, nil, fmt.Errorf("ensure course indexes: %w", err)
		}
		logr.Info("connected to mongo", zap.String("database", cfg.Mongo.Database))
		return store, disconnect, nil
	case config.DriverPostgres:
		db, err := database.NewPostgres(ctx, cfg.Postgres, cfg.Database.Timeout)
		if err != nil {
			return nil, nil, err
		}
		store := repository.NewPostgresCourseStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("ensure course schema: %w", err)
		}
		logr.Info("connected to postgres", zap.String("database", cfg.Postgres.Name))
		return store, db, nil
	case config.DriverMemory:
		logr.Warn("using in-memory course store, data is lost on restart")
		return repository.NewMemoryCourseStore(), closerFunc(func() error { return nil }), nil
	default:
		return nil, nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Database.Driver)
	}
}
