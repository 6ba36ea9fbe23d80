package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"studytrack_backend/internal/config"
	"studytrack_backend/internal/controller"
	"studytrack_backend/internal/repository"
	"studytrack_backend/internal/service"
	"studytrack_backend/pkg/database"
	"studytrack_backend/pkg/logger"
	"studytrack_backend/pkg/monitoring"
	"studytrack_backend/pkg/security"
	"studytrack_backend/pkg/tracing"
	"syscall"
	"time"

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
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user             *repository.UserRepository
	subject          *repository.SubjectRepository
	performance      *repository.PerformanceRepository
	examGoal         *repository.ExamGoalRepository
	activity         *repository.ActivityRepository
	task             *repository.TaskRepository
	exerciseQuestion *repository.ExerciseQuestionRepository
	exerciseSession  *repository.ExerciseSessionRepository
	achievement      *repository.AchievementRepository
	checkin          *repository.CheckinRepository
	motivation       *repository.MotivationRepository
	appSetting       *repository.AppSettingRepository
}

type services struct {
	auth           *service.AuthService
	user           *service.UserService
	storage        *service.StorageService
	motivation     *service.MotivationService
	achievement    *service.AchievementService
	dashboard      *service.DashboardService
	task           *service.TaskService
	goal           *service.GoalService
	activity       *service.ActivityService
	recommendation *service.RecommendationService
	exercise       *service.ExerciseService
	analytics      *service.AnalyticsService
}

type controllers struct {
	auth        *controller.AuthController
	user        *controller.UserController
	dashboard   *controller.DashboardController
	task        *controller.TaskController
	goal        *controller.GoalController
	activity    *controller.ActivityController
	exercise    *controller.ExerciseController
	performance *controller.PerformanceController
	achievement *controller.AchievementController
	analytics   *controller.AnalyticsController
	motivation  *controller.MotivationController
	subject     *controller.SubjectController
	admin       *controller.AdminController
	health      *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig 配置热更新入口，由文件监听器触发
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config = cfg
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
	logger.Log.Info("Configuration reloaded")
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:             repository.NewUserRepository(db),
		subject:          repository.NewSubjectRepository(db),
		performance:      repository.NewPerformanceRepository(db),
		examGoal:         repository.NewExamGoalRepository(db),
		activity:         repository.NewActivityRepository(db),
		task:             repository.NewTaskRepository(db),
		exerciseQuestion: repository.NewExerciseQuestionRepository(db),
		exerciseSession:  repository.NewExerciseSessionRepository(db),
		achievement:      repository.NewAchievementRepository(db),
		checkin:          repository.NewCheckinRepository(db),
		motivation:       repository.NewMotivationRepository(db),
		appSetting:       repository.NewAppSettingRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.motivation = service.NewMotivationService(repos.motivation)
	s.achievement = service.NewAchievementService(repos.achievement, repos.user, repos.exerciseSession)
	s.user = service.NewUserService(repos.user, repos.checkin, s.achievement)
	s.task = service.NewTaskService(repos.task)
	s.goal = service.NewGoalService(repos.examGoal, s.achievement)
	s.activity = service.NewActivityService(repos.activity)
	s.dashboard = service.NewDashboardService(repos.user, repos.task, repos.examGoal, repos.performance, repos.checkin, s.motivation)

	s.recommendation = service.NewRecommendationService(
		repos.user,
		repos.performance,
		repos.examGoal,
		repos.activity,
		repos.appSetting,
	)
	s.exercise = service.NewExerciseService(
		repos.exerciseQuestion,
		repos.exerciseSession,
		repos.performance,
		repos.user,
		repos.examGoal,
		s.achievement,
	)
	s.analytics = service.NewAnalyticsService(repos.activity, repos.exerciseSession, repos.performance, repos.subject, rdb)

	return s
}

func (a *App) initControllers(s *services, repos *repositories, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth, s.user),
		user:        controller.NewUserController(s.user, s.storage),
		dashboard:   controller.NewDashboardController(s.dashboard),
		task:        controller.NewTaskController(s.task),
		goal:        controller.NewGoalController(s.goal),
		activity:    controller.NewActivityController(s.activity),
		exercise:    controller.NewExerciseController(s.recommendation, s.exercise, s.analytics),
		performance: controller.NewPerformanceController(repos.performance),
		achievement: controller.NewAchievementController(s.achievement),
		analytics:   controller.NewAnalyticsController(s.analytics),
		motivation:  controller.NewMotivationController(s.motivation),
		subject:     controller.NewSubjectController(repos.subject),
		admin:       controller.NewAdminController(repos.appSetting, repos.subject, repos.exerciseQuestion, repos.motivation),
		health:      controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 10000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// 分析缓存可降级，redis 故障不阻止启动
		logger.Log.Warn("Redis unavailable, analytics caching disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	// 热更新配置时同步日志级别
	app.RegisterConfigCallback(func(c *config.Config) {
		logger.SetMode(c.Server.Mode)
	})

	if cfg.MigrateOnly {
		return app
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, repos, db, rdb)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		_, err := tracing.InitTracer("studytrack-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

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

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
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
