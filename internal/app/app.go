package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"learning_path_backend/internal/config"
	"learning_path_backend/internal/controller"
	"learning_path_backend/internal/repository"
	"learning_path_backend/internal/service"
	"learning_path_backend/pkg/database"
	"learning_path_backend/pkg/logger"
	"learning_path_backend/pkg/monitoring"
	"learning_path_backend/pkg/security"
	"learning_path_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	generator *service.SwappableGenerator
}

type repositories struct {
	user      *repository.UserRepository
	profile   *repository.ProfileRepository
	subject   *repository.SubjectRepository
	topic     *repository.TopicRepository
	progress  *repository.ProgressRepository
	quiz      *repository.QuizResultRepository
	resource  *repository.ResourceRepository
	bookmark  *repository.BookmarkRepository
	analytics *repository.AnalyticsRepository
}

type services struct {
	auth           *service.AuthService
	content        *service.ContentService
	progress       *service.ProgressService
	quiz           *service.QuizService
	recommendation *service.RecommendationService
	analytics      *service.AnalyticsService
	bookmark       *service.BookmarkService
	generator      *service.SwappableGenerator
}

type controllers struct {
	auth           *controller.AuthController
	content        *controller.ContentController
	progress       *controller.ProgressController
	quiz           *controller.QuizController
	recommendation *controller.RecommendationController
	bookmark       *controller.BookmarkController
	health         *controller.HealthController
}

func initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:      repository.NewUserRepository(db),
		profile:   repository.NewProfileRepository(db),
		subject:   repository.NewSubjectRepository(db),
		topic:     repository.NewTopicRepository(db),
		progress:  repository.NewProgressRepository(db),
		quiz:      repository.NewQuizResultRepository(db),
		resource:  repository.NewResourceRepository(db),
		bookmark:  repository.NewBookmarkRepository(db),
		analytics: repository.NewAnalyticsRepository(db),
	}
}

func initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	// The generator stays optional: without an API key every consumer goes
	// straight to its deterministic fallback. The swappable wrapper lets a
	// config reload enable or replace it while the server runs.
	generator := service.NewSwappableGenerator(cfg.Generation)

	return &services{
		auth:           service.NewAuthService(repos.user, cfg),
		content:        service.NewContentService(repos.subject, repos.topic, repos.resource, repos.progress, rdb),
		progress:       service.NewProgressService(repos.profile, repos.progress, repos.user),
		quiz:           service.NewQuizService(repos.topic, repos.quiz, repos.progress, generator),
		recommendation: service.NewRecommendationService(repos.progress, repos.profile, generator),
		analytics:      service.NewAnalyticsService(repos.analytics),
		bookmark:       service.NewBookmarkService(repos.bookmark, repos.resource),
		generator:      generator,
	}
}

func initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:           controller.NewAuthController(s.auth),
		content:        controller.NewContentController(s.content),
		progress:       controller.NewProgressController(s.progress, s.analytics),
		quiz:           controller.NewQuizController(s.quiz),
		recommendation: controller.NewRecommendationController(s.recommendation),
		bookmark:       controller.NewBookmarkController(s.bookmark),
		health:         controller.NewHealthController(db),
	}
}

func setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg.Server.Mode)
	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := initRepositories(db)
	services := initServices(repos, cfg, rdb)
	controllers := initControllers(services, db)
	app.generator = services.generator

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("learning-path-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	registerRoutes(router, controllers, cfg)

	return app
}

// ReloadGeneration rebuilds the text generation client from cfg. Requests
// already holding the old client finish against it.
func (a *App) ReloadGeneration(cfg config.GenerationConfig) {
	a.generator.Reload(cfg)
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
