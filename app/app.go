package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	httpadapter "video-hosting-service/ddd/adapter/http"
	appsvc "video-hosting-service/ddd/application/app"
	"video-hosting-service/ddd/infrastructure/database/po"
	"video-hosting-service/pkg/config"
	"video-hosting-service/pkg/logger"
	"video-hosting-service/pkg/registry"
	"video-hosting-service/pkg/task"
)

// Run assembles and runs the full service: HTTP API plus the in-process
// transcode worker pool. Blocks until SIGINT/SIGTERM.
func Run() {
	fmt.Println("[STARTUP] Starting video hosting service...")

	cfgPath := resolveConfigPath()
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Printf("[ERROR] Failed to load config (%s): %v\n", cfgPath, err)
		os.Exit(1)
	}
	config.SetGlobalConfig(cfg)
	fmt.Printf("[STARTUP] Config file loaded: %s\n", cfgPath)

	logService := logger.NewLogger(cfg)
	logger.SetGlobalLogger(logService)
	defer logService.Close()

	logger.Infof("Video hosting service starting media_root=%s", cfg.Media.Root)

	// 检查 FFmpeg 是否可用，直接在启动阶段失败
	ffmpegBin := cfg.Transcode.FFmpeg.BinaryPath
	if strings.TrimSpace(ffmpegBin) == "" {
		ffmpegBin = "ffmpeg"
	}
	if _, err := exec.LookPath(ffmpegBin); err != nil {
		logger.Fatal(fmt.Sprintf("FFmpeg binary not found, please install or set transcode.ffmpeg.binary_path binary=%s error=%s", ffmpegBin, err.Error()))
	}

	logger.Infof("Initializing database connection...")
	db, err := gorm.Open(mysql.Open(cfg.Database.GetDSN()), &gorm.Config{})
	if err != nil {
		logger.Fatal(fmt.Sprintf("Failed to initialize database error=%v", err))
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
		defer sqlDB.Close()
	}
	if err := db.AutoMigrate(&po.Video{}); err != nil {
		logger.Fatal(fmt.Sprintf("Failed to migrate schema error=%v", err))
	}
	logger.Infof("Database connected")

	deps, err := BuildDependencies(cfg, db)
	if err != nil {
		logger.Fatal(fmt.Sprintf("Failed to assemble dependencies error=%v", err))
	}
	defer deps.Close()

	videoApp := appsvc.NewVideoApp(deps.VideoRepo, deps.Publisher)

	// 后台任务：Kafka消费者 + 转码工作池
	if deps.Consumer != nil {
		task.Register(deps.Consumer)
	}
	if cfg.Worker.Enabled {
		task.Register(deps.Worker)
	}
	if err := task.StartAll(context.Background()); err != nil {
		logger.Fatal(fmt.Sprintf("Failed to start background tasks error=%v", err))
	}
	defer task.StopAll()

	// 可选的etcd服务注册
	var serviceRegistry *registry.ServiceRegistry
	if cfg.ServiceRegistry.Enabled {
		serviceRegistry = mustRegisterService(cfg)
		defer func() {
			if err := serviceRegistry.Deregister(); err != nil {
				logger.Warnf("Service deregistration failed error=%v", err)
			}
		}()
	}

	// HTTP服务
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	engine := gin.New()
	router := httpadapter.NewRouter(videoApp, deps.Resolver, deps.MediaRoot, cfg.JWT.Secret, cfg.JWT.Issuer)
	router.SetupMiddleware(engine)
	router.SetupRoutes(engine)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Infof("HTTP server started address=%s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal(fmt.Sprintf("HTTP server failed error=%v", err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Infof("Shutdown signal received, draining...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Worker.ShutdownGracePeriod)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("HTTP server shutdown error error=%v", err)
	}
	logger.Infof("Video hosting service stopped")
}

func mustRegisterService(cfg *config.Config) *registry.ServiceRegistry {
	serviceAddr := fmt.Sprintf("%s:%d", cfg.ServiceRegistry.RegisterHost, cfg.Server.Port)
	serviceID := cfg.ServiceRegistry.ServiceID
	if serviceID == "" {
		hostname, _ := os.Hostname()
		serviceID = fmt.Sprintf("%s-%d", hostname, cfg.Server.Port)
	}
	reg, err := registry.NewServiceRegistry(
		registry.RegistryConfig{Endpoints: cfg.ServiceRegistry.Endpoints, DialTimeout: 5 * time.Second},
		registry.ServiceConfig{
			ServiceName: cfg.ServiceRegistry.ServiceName,
			ServiceID:   serviceID,
			TTL:         cfg.ServiceRegistry.TTL,
		},
		serviceAddr,
	)
	if err != nil {
		logger.Fatal(fmt.Sprintf("Failed to create service registry error=%v", err))
	}
	if err := reg.Register(); err != nil {
		logger.Fatal(fmt.Sprintf("Failed to register service error=%v", err))
	}
	return reg
}

// resolveConfigPath picks the config file: CONFIG_PATH wins, then CONFIG_ENV
// selects a file under configs/, defaulting to the dev profile.
func resolveConfigPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	env := os.Getenv("CONFIG_ENV")
	switch env {
	case "prod", "production":
		return "configs/config_prod.yaml"
	default:
		return "configs/config.dev.yaml"
	}
}
