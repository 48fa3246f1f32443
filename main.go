package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
	"gopkg.in/yaml.v2"

	ahttp "attriscope/http"
	"attriscope/ml"
	"attriscope/monitoring"
	"attriscope/store"
)

type Config struct {
	Model struct {
		Dir  string `yaml:"dir"`
		Type string `yaml:"type"`
	} `yaml:"model"`
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`
	Http struct {
		Port           int      `yaml:"port"`
		TimeoutSeconds int      `yaml:"timeout_seconds"`
		MaxRequestSize int64    `yaml:"max_request_size"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"http"`
	Watch struct {
		Enabled bool `yaml:"enabled"`
	} `yaml:"watch"`
	Log struct {
		Level      string `yaml:"level"`
		File       string `yaml:"file"`
		MaxSizeMB  int    `yaml:"max_size_mb"`
		MaxBackups int    `yaml:"max_backups"`
		MaxAgeDays int    `yaml:"max_age_days"`
	} `yaml:"log"`
}

func main() {
	// 1. Load config
	config, err := loadConfig("config.yaml")
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := buildLogger(config)
	defer logger.Sync()

	// 2. Initialize prediction history store
	if err := store.InitDB(config.Database.Path); err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer store.Close()
	logger.Info("database initialized", zap.String("path", config.Database.Path))

	// 3. Load model artifacts and build the prediction engine
	artifacts, err := ml.LoadArtifacts(config.Model.Dir, config.Model.Type)
	if err != nil {
		logger.Fatal("failed to load model artifacts", zap.Error(err))
	}
	engine, err := ml.NewEngine(artifacts)
	if err != nil {
		logger.Fatal("failed to build prediction engine", zap.Error(err))
	}
	logger.Info("model artifacts loaded",
		zap.String("dir", config.Model.Dir),
		zap.String("type", config.Model.Type),
		zap.Strings("features", engine.FeatureNames()))

	// 4. Start the dashboard event hub
	hub := monitoring.NewHub()
	go hub.Run()
	defer hub.Stop()

	stats := monitoring.NewServiceStats()

	ahttp.SetEngine(engine)
	ahttp.SetDashboardHub(hub)
	ahttp.SetServiceStats(stats)

	// 5. Watch the artifacts directory for retrained models
	if config.Watch.Enabled {
		reload := func() error {
			fresh, err := ml.LoadArtifacts(config.Model.Dir, config.Model.Type)
			if err != nil {
				return err
			}
			return engine.Reload(fresh)
		}
		watcher, err := monitoring.NewArtifactWatcher(config.Model.Dir, reload, hub, logger)
		if err != nil {
			logger.Fatal("failed to create artifact watcher", zap.Error(err))
		}
		if err := watcher.Start(); err != nil {
			logger.Fatal("failed to start artifact watcher", zap.Error(err))
		}
		defer watcher.Stop()
		logger.Info("watching artifacts for changes", zap.String("dir", config.Model.Dir))
	}

	// 6. Start HTTP server
	serverConfig := ahttp.DefaultServerConfig()
	if config.Http.Port > 0 {
		serverConfig.Port = config.Http.Port
	}
	if config.Http.TimeoutSeconds > 0 {
		serverConfig.Timeout = time.Duration(config.Http.TimeoutSeconds) * time.Second
	}
	if config.Http.MaxRequestSize > 0 {
		serverConfig.MaxRequestSize = config.Http.MaxRequestSize
	}
	if len(config.Http.AllowedOrigins) > 0 {
		serverConfig.AllowedOrigins = config.Http.AllowedOrigins
	}

	server := ahttp.NewServer(serverConfig)
	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()
	logger.Info("dashboard listening", zap.String("addr", server.Addr()))

	// 7. Handle graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	if err := server.Stop(); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	logger.Info("exiting")
}

func loadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var config Config
	if err := yaml.NewDecoder(file).Decode(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

func buildLogger(config *Config) *zap.Logger {
	level := zapcore.InfoLevel
	if config.Log.Level != "" {
		if err := level.Set(config.Log.Level); err != nil {
			level = zapcore.InfoLevel
		}
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(os.Stdout),
		level,
	)

	if config.Log.File == "" {
		return zap.New(consoleCore)
	}

	fileCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(&lumberjack.Logger{
			Filename:   config.Log.File,
			MaxSize:    config.Log.MaxSizeMB,
			MaxBackups: config.Log.MaxBackups,
			MaxAge:     config.Log.MaxAgeDays,
		}),
		level,
	)

	return zap.New(zapcore.NewTee(consoleCore, fileCore))
}
