package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"
	"training_portal_backend/internal/config"
	"training_portal_backend/internal/controller"
	"training_portal_backend/internal/repository"
	"training_portal_backend/internal/service"
	"training_portal_backend/internal/util"
	"training_portal_backend/pkg/configwatcher"
	"training_portal_backend/pkg/database"
	"training_portal_backend/pkg/logger"
	"training_portal_backend/pkg/monitoring"
	"training_portal_backend/pkg/security"
	"training_portal_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/robfig/cron/v3"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	limiter         *security.Limiter
	scheduler       *cron.Cron
	tracer          *sdktrace.TracerProvider
	stop            chan struct{}
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user         *repository.UserRepository
	course       *repository.CourseRepository
	learningPath *repository.LearningPathRepository
	training     *repository.TrainingRepository
	activityLog  *repository.ActivityLogRepository
}

type services struct {
	kv           service.KeyValueStore
	auth         *service.AuthService
	storage      *service.StorageService
	courseStore  *service.CourseStore
	course       *service.CourseService
	progression  *service.ProgressionService
	learningPath *service.LearningPathService
	training     *service.TrainingService
	schedule     *service.ScheduleService
	report       *service.ReportService
	dashboard    *service.DashboardService
	home         *service.HomeService
	media        *service.MediaService
}

type controllers struct {
	auth         *controller.AuthController
	course       *controller.CourseController
	progression  *controller.ProgressionController
	learningPath *controller.LearningPathController
	training     *controller.TrainingController
	schedule     *controller.ScheduleController
	report       *controller.ReportController
	dashboard    *controller.DashboardController
	health       *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:         repository.NewUserRepository(db),
		course:       repository.NewCourseRepository(db),
		learningPath: repository.NewLearningPathRepository(db),
		training:     repository.NewTrainingRepository(db),
		activityLog:  repository.NewActivityLogRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.kv = service.NewKeyValueStore(cfg, db, rdb)
	s.storage = service.NewStorageService(&cfg.Storage)
	s.auth = service.NewAuthService(repos.user, s.kv, cfg)

	s.courseStore = service.NewCourseStore(repos.course)
	s.course = service.NewCourseService(s.courseStore)
	s.progression = service.NewProgressionService(s.courseStore, repos.activityLog)
	s.learningPath = service.NewLearningPathService(repos.learningPath, repos.course)
	s.training = service.NewTrainingService(repos.training)
	s.schedule = service.NewScheduleService(repos.training, repos.learningPath, s.courseStore, s.kv)
	s.report = service.NewReportService(repos.training, repos.learningPath, s.courseStore)
	s.dashboard = service.NewDashboardService(s.courseStore, repos.learningPath, repos.user, repos.activityLog)
	s.home = service.NewHomeService(s.courseStore, s.learningPath)
	s.media = service.NewMediaService(s.storage, s.courseStore, filepath.Join(cfg.Storage.LocalPath, "temp"))

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:         controller.NewAuthController(s.auth),
		course:       controller.NewCourseController(s.course, s.media),
		progression:  controller.NewProgressionController(s.progression),
		learningPath: controller.NewLearningPathController(s.learningPath),
		training:     controller.NewTrainingController(s.training),
		schedule:     controller.NewScheduleController(s.schedule),
		report:       controller.NewReportController(s.report),
		dashboard:    controller.NewDashboardController(s.dashboard, s.home),
		health:       controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(a.limiter))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// applyConfig 热加载时只更新可在运行期调整的配置项
func (a *App) applyConfig(cfg *config.Config) {
	a.services.auth.SetLoginDelay(cfg.Auth.LoginDelay)
	a.limiter.SetLimit(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute)
	if err := logger.SetLevel(cfg); err != nil {
		logger.Log.Warn("log level not changed", zap.Error(err))
	}
	logger.Log.Info("runtime config applied",
		zap.Duration("loginDelay", cfg.Auth.LoginDelay),
		zap.Int("rateLimit", cfg.RateLimit.MaxRequests),
	)
}

func (a *App) promoteCourses() {
	n, err := a.services.course.PromoteDueCourses(time.Now())
	if err != nil {
		logger.Log.Error("course promotion failed", zap.Error(err))
		return
	}
	if n > 0 {
		logger.Log.Info("courses promoted", zap.Int("count", n))
	}
}

func (a *App) startBackgroundTasks() {
	a.limiter.StartJanitor(a.stop)

	a.scheduler = cron.New()
	if _, err := a.scheduler.AddFunc(a.Config.Scheduler.CoursePromotion, a.promoteCourses); err != nil {
		logger.Log.Error("invalid course promotion schedule",
			zap.String("spec", a.Config.Scheduler.CoursePromotion),
			zap.Error(err),
		)
	}
	a.scheduler.Start()
	go a.promoteCourses()

	if a.Config.Server.WatchConfig && a.Config.ConfigFile != "" {
		go func() {
			err := configwatcher.WatchConfig(a.Config.ConfigFile, func(cfg *config.Config) {
				for _, cb := range a.configCallbacks {
					cb(cfg)
				}
			}, a.stop)
			if err != nil {
				logger.Log.Error("config watcher stopped", zap.Error(err))
			}
		}()
	}
}

// New 使用已建立的连接组装应用，rdb 可以为 nil
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *App {
	app := &App{
		Config:  cfg,
		DB:      db,
		Redis:   rdb,
		limiter: security.NewLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute),
		stop:    make(chan struct{}),
	}

	if err := util.RegisterValidators(); err != nil {
		logger.Log.Error("register validators", zap.Error(err))
	}

	repos := app.initRepositories(db)
	app.services = app.initServices(repos, cfg, db, rdb)
	controllers := app.initControllers(app.services, db)
	app.RegisterConfigCallback(app.applyConfig)

	// 监控初始化
	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.Server.Mode == gin.DebugMode {
		router.Use(gin.Logger())
	}
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, repos)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if cfg.ForceMigrate || cfg.SeedOnly || cfg.Server.Mode != gin.ReleaseMode {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}
	if cfg.Database.Seed || cfg.SeedOnly {
		if err := database.Seed(db, cfg.Auth.DemoPassword); err != nil {
			logger.Log.Fatal("Failed to seed database", zap.Error(err))
		}
	}

	var rdb *redis.Client
	if cfg.Session.Backend == util.SessionBackendRedis {
		rdb, err = database.InitRedis(context.Background(), cfg)
		if err != nil {
			logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		}
	}

	app := New(cfg, db, rdb)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	a.startBackgroundTasks()

	// 启动服务器
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

	close(a.stop)
	if a.scheduler != nil {
		<-a.scheduler.Stop().Done()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	log.Println("Server exiting")
}
