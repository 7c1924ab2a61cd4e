package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quest_backend/internal/config"
	"quest_backend/internal/controller"
	"quest_backend/internal/middleware"
	"quest_backend/internal/repository"
	"quest_backend/internal/service"
	"quest_backend/pkg/configwatcher"
	"quest_backend/pkg/database"
	"quest_backend/pkg/logger"
	"quest_backend/pkg/monitoring"
	"quest_backend/pkg/security"
	"quest_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	// ConfigDir is watched for config.yaml changes while the server runs.
	ConfigDir string

	tracerProvider  *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) reloadConfig(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

type repositories struct {
	quest *repository.QuestRepository
}

type services struct {
	quest *service.QuestService
}

type controllers struct {
	quest  *controller.QuestController
	health *controller.HealthController
}

func initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		quest: repository.NewQuestRepository(db),
	}
}

func initServices(repos *repositories) *services {
	return &services{
		quest: service.NewQuestService(repos.quest),
	}
}

func initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		quest:  controller.NewQuestController(s.quest),
		health: controller.NewHealthController(db),
	}
}

func (a *App) middlewares(cfg *config.Config) []gin.HandlerFunc {
	mws := []gin.HandlerFunc{
		middleware.TraceID(),
		middleware.Logger(logger.Log),
		middleware.Recovery(logger.Log),
		security.CORS(cfg.CORS),
		security.Secure(),
	}

	if a.Redis != nil {
		mws = append(mws, security.RedisRateLimiter(a.Redis, cfg.RateLimit.MaxRequests, cfg.RateLimit.Window()))
	} else {
		mws = append(mws, security.RateLimiter(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window()))
	}

	if cfg.Tracing.Enabled {
		mws = append(mws, tracing.GinMiddleware())
	}

	return append(mws, monitoring.MetricsMiddleware())
}

func newRouter(db *gorm.DB, mws ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(mws...)

	repos := initRepositories(db)
	svcs := initServices(repos)
	registerRoutes(router, initControllers(svcs, db))
	return router
}

func NewApp(cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	gin.SetMode(cfg.Server.Mode)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Error("Failed to initialize database", zap.Error(err))
		return nil, err
	}

	if cfg.ForceMigrate || cfg.Server.Mode != gin.ReleaseMode {
		if err := database.Migrate(db); err != nil {
			logger.Log.Error("Failed to migrate database", zap.Error(err))
			return nil, err
		}
	}

	app := &App{
		Config: cfg,
		DB:     db,
	}
	if cfg.MigrateOnly {
		return app, nil
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Error("Failed to initialize redis", zap.Error(err))
		return nil, err
	}
	app.Redis = rdb

	monitoring.Init()
	if sqlDB, err := db.DB(); err == nil {
		if err := monitoring.RegisterDBStats(sqlDB); err != nil {
			logger.Log.Warn("Failed to register database metrics", zap.Error(err))
		}
	}

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Error("Failed to initialize tracing", zap.Error(err))
			return nil, err
		}
		app.tracerProvider = tp
	}

	app.Router = newRouter(db, app.middlewares(cfg)...)
	app.RegisterConfigCallback(logger.SetLevel)

	return app, nil
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("listen", zap.Error(err))
		}
	}()

	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	if a.ConfigDir != "" {
		go func() {
			if err := configwatcher.WatchConfig(watchCtx, a.ConfigDir, a.reloadConfig); err != nil {
				logger.Log.Warn("Config watcher stopped", zap.Error(err))
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")
	stopWatch()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	a.Close(ctx)
	logger.Log.Info("Server exiting")
}

// Close flushes traces and releases the database and redis connections.
func (a *App) Close(ctx context.Context) {
	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			logger.Log.Error("Failed to close redis", zap.Error(err))
		}
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Log.Error("Failed to close database", zap.Error(err))
		}
	}
}
