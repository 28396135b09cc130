package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rwfdyrvrwq-cmyk/verificationbot/internal/charpage"
	"github.com/rwfdyrvrwq-cmyk/verificationbot/internal/config"
	"github.com/rwfdyrvrwq-cmyk/verificationbot/internal/scanner"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config
	cfgPath := "config/charsvc.toml"
	if p := os.Getenv("CHARSVC_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	// 3. Character page client and summary service. The service is
	// stateless; the audit and history tables belong to the aqwctl
	// commands that write them.
	pages := charpage.NewClient(cfg.Upstream, nil, log)

	srv, err := scanner.NewServer(cfg.CharData, pages, log)
	if err != nil {
		return fmt.Errorf("summary service: %w", err)
	}
	go srv.AcceptLoop()

	log.Info("summary service listening",
		zap.String("address", srv.Addr().String()),
	)

	// 4. Block until shutdown signal
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-shutdownCh
	log.Info("shutdown signal received", zap.String("signal", sig.String()))
	srv.Shutdown()
	log.Info("summary service stopped")
	return nil
}

// loadConfig falls back to defaults when no config file exists, so the
// service can start with nothing but environment defaults.
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config.Defaults(), nil
	}
	return config.Load(path)
}

func newLogger(cfg config.Logging) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
