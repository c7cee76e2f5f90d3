package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skillcheck_backend/internal/config"
	"skillcheck_backend/internal/controller"
	"skillcheck_backend/internal/middleware"
	"skillcheck_backend/internal/repository"
	"skillcheck_backend/internal/service"
	"skillcheck_backend/pkg/configwatcher"
	"skillcheck_backend/pkg/database"
	"skillcheck_backend/pkg/logger"
	"skillcheck_backend/pkg/monitoring"
	"skillcheck_backend/pkg/security"
	"skillcheck_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	tracer          *sdktrace.TracerProvider
	rateLimiter     *security.RateLimiter
	configCallbacks []func(*config.Config)
}

type repositories struct {
	subject    *repository.SubjectRepository
	question   *repository.QuestionRepository
	course     *repository.CourseRepository
	assessment *repository.AssessmentRepository
	topic      *repository.TopicRepository
	cache      *repository.ResultCache
}

type services struct {
	assessment     *service.AssessmentService
	recommendation *service.RecommendationService
	progress       *service.ProgressService
	adaptive       *service.AdaptiveService
}

type controllers struct {
	assessment     *controller.AssessmentController
	subject        *controller.SubjectController
	recommendation *controller.RecommendationController
	adaptive       *controller.AdaptiveController
	health         *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *repositories {
	return &repositories{
		subject:    repository.NewSubjectRepository(db),
		question:   repository.NewQuestionRepository(db),
		course:     repository.NewCourseRepository(db),
		assessment: repository.NewAssessmentRepository(db),
		topic:      repository.NewTopicRepository(db),
		cache:      repository.NewResultCache(rdb, cfg.Assessment.ResultCacheTTL),
	}
}

// initServices 引擎只构建一次，之后只读共享
func (a *App) initServices(ctx context.Context, repos *repositories, cfg *config.Config) (*services, error) {
	catalog, err := service.LoadTopicCatalog(ctx, repos.topic)
	if err != nil {
		return nil, err
	}
	if catalog.Len() == 0 {
		logger.Log.Warn("Topic catalog is empty, topic recommendations will be empty")
	}

	levels := service.NewLevelMapper(repos.course)
	sampler := service.NewStratifiedSampler(rand.New(rand.NewSource(time.Now().UnixNano())))

	s := &services{}
	s.assessment = service.NewAssessmentService(
		repos.subject,
		repos.question,
		repos.assessment,
		repos.cache,
		sampler,
		service.NewScoringEngine(),
		levels,
		cfg.Assessment,
	)
	s.recommendation = service.NewRecommendationService(catalog, s.assessment, repos.subject, repos.course, levels)
	s.progress = service.NewProgressService(repos.assessment, repos.subject)
	s.adaptive = service.NewAdaptiveService(repos.subject, repos.question, s.progress)
	return s, nil
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		assessment:     controller.NewAssessmentController(s.assessment),
		subject:        controller.NewSubjectController(s.assessment),
		recommendation: controller.NewRecommendationController(s.assessment, s.recommendation, s.progress, a.Config),
		adaptive:       controller.NewAdaptiveController(s.adaptive, s.progress),
		health:         controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.AccessLog())
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	a.rateLimiter = security.NewRateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute)
	router.Use(a.rateLimiter.Middleware())

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// NewApp wires storage, engines and routes. It does not start listening.
func NewApp(cfg *config.Config) (*App, error) {
	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	return newAppWithDB(cfg, db)
}

func newAppWithDB(cfg *config.Config, db *gorm.DB) (*App, error) {
	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// 缓存不可用时降级运行
		logger.Log.Warn("Redis unavailable, result cache disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db, rdb, cfg)
	svcs, err := app.initServices(context.Background(), repos, cfg)
	if err != nil {
		return nil, err
	}
	ctrls := app.initControllers(svcs, db, rdb)

	// 监控初始化
	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			return nil, fmt.Errorf("init tracing: %w", err)
		}
		app.tracer = tp
	}

	if cfg.Server.Mode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, ctrls, cfg)

	app.RegisterConfigCallback(func(newCfg *config.Config) {
		logger.SetMode(newCfg.Server.Mode)
		logger.Log.Info("Log level updated", zap.String("level", logger.Level().String()))
	})

	return app, nil
}

func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go a.rateLimiter.Cleanup(ctx)

	if a.Config.Server.WatchConfig && a.Config.ConfigFile != "" {
		go func() {
			err := configwatcher.WatchConfig(ctx, a.Config.ConfigFile, func(newCfg *config.Config) {
				for _, cb := range a.configCallbacks {
					cb(newCfg)
				}
			})
			if err != nil {
				logger.Log.Error("Config watcher stopped", zap.Error(err))
			}
		}()
	}

	srv := &http.Server{
		Addr:              ":" + a.Config.Server.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
	}
	logger.Log.Info("Shutting down server...")

	// 优雅关闭，最多等待 5 秒
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	a.Close(shutdownCtx)
	logger.Log.Info("Server exiting")
	return nil
}

// Close releases tracing, redis and database handles.
func (a *App) Close(ctx context.Context) {
	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		sqlDB.Close()
	}
}
