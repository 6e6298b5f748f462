package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xaenox/nico-bot/internal/assistant"
	"github.com/xaenox/nico-bot/internal/bot"
	"github.com/xaenox/nico-bot/internal/classifier"
	"github.com/xaenox/nico-bot/internal/models"
	"github.com/xaenox/nico-bot/internal/moderation"
	"github.com/xaenox/nico-bot/internal/persona"
	"github.com/xaenox/nico-bot/internal/server"
	"github.com/xaenox/nico-bot/internal/storage"
	"github.com/xaenox/nico-bot/pkg/config"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, logger)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	facts, err := loadFacts(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if facts.SupportHandle == "" {
		facts.SupportHandle = cfg.Moderation.SupportContact
	}

	p, err := persona.Resolve(cfg.Persona.Active, persona.Options{
		Temperature:  cfg.Persona.Temperature,
		TemplatePath: cfg.Persona.TemplatePath,
	})
	if err != nil {
		return err
	}
	builder, err := persona.NewBuilder(p)
	if err != nil {
		return err
	}

	b, err := bot.New(cfg.Telegram.Token, cfg.Telegram.PollTimeout, logger)
	if err != nil {
		return err
	}

	completer := assistant.NewGPTCompleter(assistant.Config{
		APIKey:    cfg.OpenAI.APIKey,
		BaseURL:   cfg.OpenAI.BaseURL,
		Model:     cfg.OpenAI.Model,
		MaxTokens: cfg.OpenAI.MaxTokens,
	}, logger.Named("assistant"))

	pipeline := moderation.NewPipeline(
		moderation.PipelineConfig{
			GroupRules:   cfg.Moderation.GroupRules,
			WarnTemplate: cfg.Moderation.WarnTemplate,
			Facts:        facts,
		},
		moderation.NewDomainValidator(cfg.Moderation.OfficialDomains),
		moderation.NewPermissionCache(b.Platform(), clockwork.NewRealClock(), cfg.Moderation.PermissionTTL, logger.Named("permissions")),
		classifier.NewKeywordClassifier(cfg.Moderation.BlockedWords, cfg.Moderation.NoiseTokens, cfg.Moderation.TopicKeywords),
		builder,
		b.Platform(),
		completer,
		logger.Named("pipeline"),
	)
	b.SetProcessor(pipeline)

	srv := server.New(server.Config{
		ListenAddr:      cfg.Server.ListenAddr,
		HealthUserAgent: cfg.Server.HealthUserAgent,
	}, logger.Named("http"))

	if cfg.Telegram.Mode == config.ModeWebhook {
		srv.MountWebhook(b.WebhookPath(), b.WebhookHandler(ctx))
		if err := b.RegisterWebhook(cfg.Telegram.BaseURL); err != nil {
			logger.Error("Failed to set webhook", zap.Error(err))
		}
	}

	logger.Info("NicoNetwork bot is live",
		zap.String("mode", cfg.Telegram.Mode),
		zap.String("persona", p.Name))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(ctx) })
	if cfg.Telegram.Mode == config.ModePolling {
		g.Go(func() error { return b.Start(ctx) })
	}
	err = g.Wait()
	b.Wait()
	return err
}

func loadFacts(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*models.PlatformFacts, error) {
	var src storage.FactsSource
	switch cfg.Facts.Source {
	case config.FactsSourcePostgres:
		pg, err := storage.NewPostgresStorage(ctx, databaseConfig(cfg), logger.Named("storage"))
		if err != nil {
			return nil, err
		}
		src = pg
	default:
		src = storage.NewFileStorage(cfg.Facts.Path)
	}
	defer src.Close()

	facts, err := src.LoadFacts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load platform facts: %w", err)
	}
	logger.Info("Platform facts loaded",
		zap.String("source", cfg.Facts.Source),
		zap.Int("plans", len(facts.Plans)))
	return facts, nil
}

func databaseConfig(cfg *config.Config) storage.DatabaseConfig {
	return storage.DatabaseConfig{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	}
}
