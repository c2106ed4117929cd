package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hanja_edu_backend/internal/config"
	"hanja_edu_backend/internal/controller"
	"hanja_edu_backend/internal/repository"
	"hanja_edu_backend/internal/service"
	"hanja_edu_backend/pkg/database"
	"hanja_edu_backend/pkg/logger"
	"hanja_edu_backend/pkg/monitoring"
	"hanja_edu_backend/pkg/security"
	"hanja_edu_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user        *repository.UserRepository
	hanzi       *repository.HanziRepository
	exam        *repository.ExamRepository
	studyStat   *repository.StudyStatRepository
	writing     *repository.WritingRepository
	game        *repository.GameRepository
	learningLog *repository.LearningLogRepository
}

type services struct {
	storage *service.StorageService
	auth    *service.AuthService
	user    *service.UserService
	ai      *service.AIService
	hanzi   *service.HanziService
	exam    *service.ExamService
	writing *service.WritingService
	game    *service.GameService
}

type controllers struct {
	auth    *controller.AuthController
	user    *controller.UserController
	hanzi   *controller.HanziController
	exam    *controller.ExamController
	writing *controller.WritingController
	game    *controller.GameController
	health  *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// OnConfigReload 설정 파일이 변경되면 등록된 콜백에 새 설정을 전달한다
func (a *App) OnConfigReload(newCfg *config.Config) {
	a.Config = newCfg
	for _, callback := range a.configCallbacks {
		callback(newCfg)
	}
	logger.Log.Info("설정을 다시 불러왔습니다")
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		hanzi:       repository.NewHanziRepository(db),
		exam:        repository.NewExamRepository(db),
		studyStat:   repository.NewStudyStatRepository(db),
		writing:     repository.NewWritingRepository(db),
		game:        repository.NewGameRepository(db),
		learningLog: repository.NewLearningLogRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user, repos.studyStat, repos.learningLog)
	s.ai = service.NewAIService(cfg.AI, logger.Log)
	s.hanzi = service.NewHanziService(repos.hanzi, s.storage, rdb, logger.Log)
	s.exam = service.NewExamService(
		repos.exam,
		repos.hanzi,
		repos.studyStat,
		repos.learningLog,
		s.user,
		s.ai,
		rdb,
		cfg,
		logger.Log,
	)
	s.writing = service.NewWritingService(repos.writing, repos.hanzi, repos.learningLog, s.user, s.storage, logger.Log)
	s.game = service.NewGameService(repos.game, repos.learningLog, s.user, logger.Log)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:    controller.NewAuthController(s.auth),
		user:    controller.NewUserController(s.user),
		hanzi:   controller.NewHanziController(s.hanzi),
		exam:    controller.NewExamController(s.exam),
		writing: controller.NewWritingController(s.writing),
		game:    controller.NewGameController(s.game),
		health:  controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
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

// startBackgroundTasks 시간 초과 시험 자동 제출 스위퍼
func (a *App) startBackgroundTasks(s *services) {
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		for range ticker.C {
			s.exam.SweepExpired()
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("hanja-edu", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.startBackgroundTasks(services)

	return app
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
