package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"finbot/internal/bot"
	"finbot/internal/config"
	"finbot/internal/extract/gemini"
	gledger "finbot/internal/ledger/google"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	// Setup structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ledgerClient, err := gledger.New(ctx, gledger.Config{
		SpreadsheetID:      cfg.SpreadsheetID,
		SheetName:          cfg.SheetName,
		ServiceAccountFile: cfg.ServiceAccountFile,
		ServiceAccountJSON: cfg.ServiceAccountJSON,
	})
	if err != nil {
		logger.Error("Failed to initialize Google Sheets ledger", "error", err)
		os.Exit(1)
	}

	extractor := gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel)

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		logger.Error("Failed to create Telegram bot", "error", err)
		os.Exit(1)
	}
	logger.Info("Bot authorized", "username", api.Self.UserName)

	b := bot.New(api, extractor, ledgerClient, ledgerClient)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return b.Run(ctx)
	})

	logger.Info("Waiting for Telegram messages")
	if err := g.Wait(); err != nil {
		logger.Error("Bot stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Bot stopped gracefully")
}
