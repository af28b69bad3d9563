package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/agenthands/zomra/internal/chatlog"
	"github.com/agenthands/zomra/internal/config"
	"github.com/agenthands/zomra/internal/core"
	"github.com/agenthands/zomra/internal/core/knowledge"
	"github.com/agenthands/zomra/internal/driver"
	"github.com/agenthands/zomra/internal/lang"
	"github.com/agenthands/zomra/internal/llm"
	"github.com/agenthands/zomra/internal/logging"
	"github.com/agenthands/zomra/internal/needs"
	"github.com/agenthands/zomra/internal/notify"
	"github.com/agenthands/zomra/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}
	cfg, fromFile, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		log.Fatalf("Invalid environment: %v", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	if !fromFile {
		logger.Warn("config file not found, using defaults", zap.String("path", cfgPath))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	kb, err := openKnowledge(ctx, cfg, logger)
	if err != nil {
		return err
	}

	var (
		reminders server.ReminderStore
		chatLogs  = core.Unavailable[core.ChatLogger]()
	)
	store, err := driver.NewStore(ctx, cfg.Database)
	if err != nil {
		logger.Warn("database unavailable, chat logs and reminders disabled", zap.Error(err))
	} else {
		defer store.Close()
		dispatcher := chatlog.NewDispatcher(store, cfg.Database.QueueSize, cfg.Database.WriteTimeout.Duration, logger)
		defer dispatcher.Close()
		reminders = store
		chatLogs = core.Configured[core.ChatLogger](dispatcher)
	}

	adapters, closeLLM := buildAdapters(ctx, cfg, logger)
	defer closeLLM()
	adapters.Logger = chatLogs

	assistant := core.NewAssistant(kb, adapters, core.Options{
		AdapterTimeout:    cfg.Chat.AdapterTimeout.Duration,
		MaxAnswerLength:   cfg.Chat.MaxAnswerLength,
		MinGeneratedRunes: cfg.Chat.MinGeneratedRunes,
		LogAnswerLimit:    cfg.Chat.LogAnswerLimit,
		ForceFallback:     cfg.Chat.ForceFallback,
		HumanContact:      cfg.Chat.HumanContact,
		GenerationPrompt:  cfg.Chat.Prompts.Generate,
	}, logger)

	deps := server.Deps{
		Assistant:    assistant,
		Knowledge:    kb,
		Needs:        needs.NewService(cfg.Needs, logger),
		Mailer:       notify.NewMailer(cfg.SMTP),
		Provider:     cfg.LLM.Provider,
		Model:        cfg.LLM.Model,
		IntervalDays: cfg.Eligibility.IntervalDays,
		Reminders:    reminders,
		Logger:       logger,
	}

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	httpServer := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           server.NewServer(deps).SetupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			zap.String("port", cfg.Server.Port),
			zap.Bool("llm", assistant.GenerationEnabled()),
			zap.Int("knowledge_entries", kb.Len()))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down")
	return httpServer.Shutdown(shutdownCtx)
}

func openKnowledge(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*knowledge.Store, error) {
	s3cfg := knowledge.S3Config{
		Region:       cfg.Knowledge.S3.Region,
		AWSAccessKey: cfg.Knowledge.S3.AWSAccessKey,
		AWSSecretKey: cfg.Knowledge.S3.AWSSecretKey,
	}
	location := cfg.Knowledge.Path
	if cfg.Knowledge.S3.Bucket != "" && cfg.Knowledge.S3.Key != "" {
		location = "s3://" + cfg.Knowledge.S3.Bucket + "/" + cfg.Knowledge.S3.Key
	}

	src, err := knowledge.NewSource(ctx, location, s3cfg)
	if err != nil {
		return nil, err
	}
	kb := knowledge.NewStore(src, logger)
	if _, err := kb.Reload(ctx); err != nil {
		logger.Warn("initial knowledge load failed", zap.Error(err))
	}

	if fileSrc, ok := src.(*knowledge.FileSource); ok && cfg.Knowledge.Watch {
		w, err := knowledge.NewWatcher(kb, fileSrc.Path, logger)
		if err != nil {
			logger.Warn("knowledge hot reload disabled", zap.Error(err))
		} else {
			go func() {
				if err := w.Run(ctx); err != nil {
					logger.Warn("knowledge watcher stopped", zap.Error(err))
				}
			}()
		}
	}
	return kb, nil
}

// buildAdapters also returns a func that releases the LLM client.
func buildAdapters(ctx context.Context, cfg *config.Config, logger *zap.Logger) (core.Adapters, func()) {
	noop := func() {}

	adapters := core.Adapters{
		Detector:   core.Unavailable[core.LanguageDetector](),
		Translator: core.Unavailable[core.Translator](),
		Corrector:  core.Unavailable[core.Corrector](),
		Generator:  core.Unavailable[llm.LLMClient](),
	}
	if cfg.Chat.DetectLanguage {
		adapters.Detector = core.Configured[core.LanguageDetector](lang.NewDetector())
	}

	client, err := llm.NewClient(ctx, cfg.LLM)
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		logger.Info("no llm configured, answering from the knowledge base only")
		return adapters, noop
	case err != nil:
		logger.Warn("llm client unavailable", zap.Error(err))
		return adapters, noop
	}
	closeLLM := func() {
		if err := llm.Close(client); err != nil {
			logger.Warn("failed to close llm client", zap.Error(err))
		}
	}

	adapters.Generator = core.Configured(client)
	if cfg.Chat.Translate {
		adapters.Translator = core.Configured[core.Translator](llm.NewPromptTranslator(client, llm.Prompts{
			ToArabic:   cfg.Chat.Prompts.ToArabic,
			FromArabic: cfg.Chat.Prompts.FromArabic,
		}))
	}
	if cfg.Chat.Correct {
		adapters.Corrector = core.Configured[core.Corrector](llm.NewPromptCorrector(client, cfg.Chat.Prompts.Correct))
	}
	return adapters, closeLLM
}
