package moderation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xaenox/nico-bot/internal/classifier"
	"github.com/xaenox/nico-bot/internal/models"
	"github.com/xaenox/nico-bot/internal/persona"
)

const (
	ParseModeMarkdown = "Markdown"

	DefaultWarnTemplate = "⚠️ @%s, please avoid using offensive words. Let's keep this space respectful."
)

// PipelineConfig carries the static data the pipeline answers with.
type PipelineConfig struct {
	GroupRules   string
	WarnTemplate string
	Facts        *models.PlatformFacts
}

// Pipeline decides and performs the single outbound action for each inbound message.
type Pipeline struct {
	cfg         PipelineConfig
	domains     *DomainValidator
	permissions *PermissionCache
	classifier  classifier.Classifier
	builder     *persona.Builder
	messenger   Messenger
	completer   Completer
	logger      *zap.Logger
}

func NewPipeline(
	cfg PipelineConfig,
	domains *DomainValidator,
	permissions *PermissionCache,
	clf classifier.Classifier,
	builder *persona.Builder,
	messenger Messenger,
	completer Completer,
	logger *zap.Logger,
) *Pipeline {
	if cfg.WarnTemplate == "" {
		cfg.WarnTemplate = DefaultWarnTemplate
	}
	return &Pipeline{
		cfg:         cfg,
		domains:     domains,
		permissions: permissions,
		classifier:  clf,
		builder:     builder,
		messenger:   messenger,
		completer:   completer,
		logger:      logger,
	}
}

// Process evaluates msg, performs at most one outbound action, and returns the
// verdict. Collaborator failures degrade to the conservative branch and are
// logged; they are never returned.
func (p *Pipeline) Process(ctx context.Context, msg models.InboundMessage) models.Verdict {
	start := time.Now()
	logger := p.logger.With(
		zap.String("trace_id", uuid.New().String()),
		zap.Int64("chat_id", msg.ChatID),
		zap.Int("message_id", msg.MessageID),
		zap.Int64("user_id", msg.Sender.ID))

	v := p.evaluate(ctx, msg, logger)

	messagesProcessed.WithLabelValues(v.Kind.String(), v.Reason).Inc()
	processDuration.WithLabelValues(v.Kind.String()).Observe(time.Since(start).Seconds())
	logger.Debug("Message processed",
		zap.Stringer("verdict", v.Kind),
		zap.String("reason", v.Reason))

	return v
}

func (p *Pipeline) evaluate(ctx context.Context, msg models.InboundMessage, logger *zap.Logger) models.Verdict {
	text := msg.Content()

	if msg.Sender.IsAutomated {
		return models.Ignore("automated_sender")
	}

	// One rules message per join batch, however many members joined.
	if msg.HasJoinMarker() {
		p.send(ctx, logger, "group_rules", msg.ChatID, p.cfg.GroupRules, models.SendOptions{ParseMode: ParseModeMarkdown})
		return models.Reply(p.cfg.GroupRules, "new_members")
	}

	if text == "" {
		return models.Ignore("empty")
	}

	if links := ExtractLinks(msg); len(links) > 0 && !p.domains.AllOfficial(links) {
		if p.permissions.CanDelete(ctx, msg.ChatID) {
			err := p.messenger.DeleteMessage(ctx, msg.ChatID, msg.MessageID)
			if err == nil {
				return models.Delete("unofficial_link")
			}
			actionFailures.WithLabelValues("delete").Inc()
			logger.Error("Delete message failed", zap.Error(err))
		} else {
			logger.Info("Unofficial link kept, no delete permission")
		}
	}

	if p.classifier.ContainsProfanity(text) {
		warning := fmt.Sprintf(p.cfg.WarnTemplate, msg.Sender.Handle())
		p.send(ctx, logger, "warn", msg.ChatID, warning, models.SendOptions{})
		return models.Warn(warning)
	}

	if p.classifier.IsNoise(text) {
		return models.Ignore("noise")
	}

	if !p.classifier.IsTopicRelevant(text) {
		return models.Ignore("off_topic")
	}

	reply, err := p.synthesize(ctx, msg.ChatID, text, logger)
	if err != nil {
		actionFailures.WithLabelValues("completion").Inc()
		logger.Error("GPT reply failed", zap.Error(err))
		return models.Ignore("model_failure")
	}

	p.send(ctx, logger, "reply", msg.ChatID, reply, models.SendOptions{
		ReplyTo:   msg.MessageID,
		ParseMode: ParseModeMarkdown,
	})
	return models.Reply(reply, "answer")
}

func (p *Pipeline) synthesize(ctx context.Context, chatID int64, text string, logger *zap.Logger) (string, error) {
	if t, ok := p.messenger.(TypingNotifier); ok {
		if err := t.SendTyping(ctx, chatID); err != nil {
			logger.Warn("Failed to send typing action", zap.Error(err))
		}
	}

	system, err := p.builder.Build(p.cfg.Facts)
	if err != nil {
		return "", fmt.Errorf("failed to build persona context: %w", err)
	}

	raw, err := p.completer.Complete(ctx, models.CompletionRequest{
		SystemPrompt: system,
		UserText:     text,
		Temperature:  p.builder.Persona().Temperature,
	})
	if err != nil {
		return "", err
	}

	reply := persona.Format(raw)
	if strings.TrimSpace(reply) == "" {
		return "", errors.New("empty completion")
	}
	return reply, nil
}

// send delivers a message; failures are logged and the reply is dropped.
func (p *Pipeline) send(ctx context.Context, logger *zap.Logger, action string, chatID int64, text string, opts models.SendOptions) {
	if err := p.messenger.SendMessage(ctx, chatID, text, opts); err != nil {
		actionFailures.WithLabelValues(action).Inc()
		logger.Error("Failed to send message",
			zap.Error(err),
			zap.String("action", action))
	}
}
