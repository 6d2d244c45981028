// Standalone transcode worker: consumes jobs from Kafka and runs the
// pipeline without exposing the HTTP API. Lets encoding capacity scale
// independently of the API tier.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"video-hosting-service/app"
	"video-hosting-service/pkg/config"
	"video-hosting-service/pkg/logger"
	"video-hosting-service/pkg/observability"
	"video-hosting-service/pkg/task"
)

func main() {
	observability.StartProfiling("video-hosting-worker")

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "configs/config.dev.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Printf("[ERROR] Failed to load config (%s): %v\n", cfgPath, err)
		os.Exit(1)
	}
	config.SetGlobalConfig(cfg)

	logService := logger.NewLogger(cfg)
	logger.SetGlobalLogger(logService)
	defer logService.Close()

	ffmpegBin := cfg.Transcode.FFmpeg.BinaryPath
	if strings.TrimSpace(ffmpegBin) == "" {
		ffmpegBin = "ffmpeg"
	}
	if _, err := exec.LookPath(ffmpegBin); err != nil {
		logger.Fatal(fmt.Sprintf("FFmpeg binary not found binary=%s error=%s", ffmpegBin, err.Error()))
	}

	// The worker needs the durable transport; a local-only queue would
	// never receive anything in this process.
	if !cfg.Kafka.Enabled {
		logger.Fatal("worker binary requires kafka.enabled=true")
	}

	db, err := gorm.Open(mysql.Open(cfg.Database.GetDSN()), &gorm.Config{})
	if err != nil {
		logger.Fatal(fmt.Sprintf("Failed to initialize database error=%v", err))
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	deps, err := app.BuildDependencies(cfg, db)
	if err != nil {
		logger.Fatal(fmt.Sprintf("Failed to assemble dependencies error=%v", err))
	}
	defer deps.Close()

	task.Register(deps.Consumer)
	task.Register(deps.Worker)
	if err := task.StartAll(context.Background()); err != nil {
		logger.Fatal(fmt.Sprintf("Failed to start background tasks error=%v", err))
	}
	defer task.StopAll()

	logger.Infof("Transcode worker running worker_id=%s goroutines=%d", cfg.Worker.WorkerID, cfg.Worker.Count)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Infof("Shutdown signal received, draining...")
}
