package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"github.com/robinFdr/MailBackup/internal/accounts"
	"github.com/robinFdr/MailBackup/internal/backup"
	"github.com/robinFdr/MailBackup/internal/catalog"
	"github.com/robinFdr/MailBackup/internal/config"
	"github.com/robinFdr/MailBackup/internal/credentials"
	"github.com/robinFdr/MailBackup/internal/imapx"
	"github.com/robinFdr/MailBackup/internal/notify"
	"github.com/robinFdr/MailBackup/internal/progress"
	"github.com/robinFdr/MailBackup/internal/report"
	"github.com/robinFdr/MailBackup/internal/secrets"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup logger
	logger := setupLogger(cfg.LogLevel, cfg.LogFormat)
	logger.Info("starting mail backup")

	codec, err := secrets.ForKey(cfg.EncryptionKey)
	if err != nil {
		logger.Error("failed to set up secret codec", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Backup catalog (optional)
	var catalogSink backup.CatalogSink
	if cfg.CatalogEnabled() {
		db, err := catalog.Open(cfg.CatalogPath)
		if err != nil {
			logger.Error("failed to open catalog", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := db.Migrate(ctx); err != nil {
			logger.Error("failed to run catalog migrations", "error", err)
			os.Exit(1)
		}
		logger.Info("backup catalog enabled", "path", cfg.CatalogPath)
		catalogSink = db
	}

	// Telegram notifications (optional)
	var notifier backup.Notifier
	if cfg.TelegramEnabled() {
		tg, err := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID, logger)
		if err != nil {
			logger.Warn("telegram notifications disabled", "error", err)
		} else {
			logger.Info("telegram notifications enabled")
			notifier = tg
		}
	}

	dialer := &imapx.Dialer{Timeout: cfg.IMAPDialTimeout, Logger: logger}
	prog := progress.New(os.Stderr)

	orch := &backup.Orchestrator{
		Login: func(addr, username, password string) (backup.Session, error) {
			return dialer.Login(addr, username, password)
		},
		Credentials: credentials.Chain{credentials.Env{}, credentials.Terminal{}},
		Codec:       codec,
		Progress:    prog,
		Renderer:    report.HTML{},
		Catalog:     catalogSink,
		Resolver:    imapx.ResolveAddr,
		Logger:      logger,
	}

	runner := &backup.Runner{
		Config:       accounts.NewStore(cfg.ResourcesFile),
		Orchestrator: orch,
		StorageRoot:  cfg.StorageRoot,
		Notifier:     notifier,
		Logger:       logger,
	}

	err = runner.Run(ctx)
	prog.Done()
	if err != nil {
		logger.Error("backup aborted", "error", err)
		os.Exit(1)
	}
	logger.Info("backup finished")
}

func setupLogger(level, format string) *slog.Logger {
	var handler slog.Handler
	logLevel := parseLevel(level)

	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: logLevel,
		})
	} else {
		// Pretty colored output for console
		handler = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.DateTime,
			NoColor:    false,
		})
	}

	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
