package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/yourusername/gemini-relay-bot/config"
	"github.com/yourusername/gemini-relay-bot/internal/delivery/telegram"
	"github.com/yourusername/gemini-relay-bot/internal/infrastructure/gemini"
	"github.com/yourusername/gemini-relay-bot/internal/infrastructure/markdown"
	"github.com/yourusername/gemini-relay-bot/internal/infrastructure/storage"
	"github.com/yourusername/gemini-relay-bot/internal/logging"
	"github.com/yourusername/gemini-relay-bot/internal/usecase"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to TOML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Error("bot stopped with error", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("bot stopped gracefully")
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := tgbotapi.SetLogger(&logging.TGBotAPIAdapter{Logger: logger.Named("tgbotapi")}); err != nil {
		return fmt.Errorf("set tgbotapi logger: %w", err)
	}

	// long polling 60s kutadi, shuning uchun bot API klientida timeout yo'q
	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return fmt.Errorf("failed to create bot: %w", err)
	}
	identity := telegram.Identity(bot.Self)
	logger.Info("bot identity loaded",
		zap.Int64("bot_id", identity.ID),
		zap.String("username", identity.Username),
	)

	aiClient, err := gemini.NewGeminiClient(ctx, cfg.Gemini.Token, cfg.Gemini.Model)
	if err != nil {
		return err
	}
	defer aiClient.Close()

	httpClient := &http.Client{Timeout: cfg.Telegram.HTTPTimeout.Duration}
	transport := telegram.NewTransport(bot, httpClient)
	fileStore := gemini.NewFileStore(httpClient, gemini.DefaultBaseURL, cfg.Gemini.Token)
	history := storage.NewMemoryHistoryRepository(cfg.CacheSize())

	resolver := usecase.NewAttachmentResolver(transport, fileStore)
	translator := usecase.NewMessageTranslator(resolver, logger.Named("translator"))
	assembler := usecase.NewHistoryAssembler(history, translator, cfg.Gemini.Concurrency, logger.Named("assembler"))

	names := usecase.NewNameMatcher(append(cfg.Telegram.Names, identity.Username)...)

	chat := usecase.NewChatUseCase(
		identity,
		names,
		history,
		assembler,
		aiClient,
		transport,
		usecase.ChatOptions{
			Personality: cfg.Gemini.Personality,
			Timeout:     cfg.Gemini.Timeout.Duration,
			Sanitize:    markdown.ToTelegramHTML,
		},
		logger.Named("chat"),
	)

	handler := telegram.NewBotHandler(bot, chat, logger.Named("telegram"))
	if err := handler.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
