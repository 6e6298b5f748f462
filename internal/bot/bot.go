package bot

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/xaenox/nico-bot/internal/models"
)

// Processor handles one inbound message end to end.
type Processor interface {
	Process(ctx context.Context, msg models.InboundMessage) models.Verdict
}

// Bot receives Telegram updates, by long polling or webhook, and hands each
// message to a Processor on its own goroutine.
type Bot struct {
	api         *tgbotapi.BotAPI
	platform    *Platform
	processor   Processor
	logger      *zap.Logger
	pollTimeout int

	inflight sync.WaitGroup
}

func New(token string, pollTimeout int, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	return newBot(api, pollTimeout, logger), nil
}

func newBot(api *tgbotapi.BotAPI, pollTimeout int, logger *zap.Logger) *Bot {
	logger.Info("Telegram bot connected",
		zap.String("username", api.Self.UserName),
		zap.Int64("id", api.Self.ID))

	return &Bot{
		api:         api,
		platform:    NewPlatform(api),
		logger:      logger,
		pollTimeout: pollTimeout,
	}
}

// Platform returns the admin and messaging collaborator backed by this bot's API client.
func (b *Bot) Platform() *Platform {
	return b.platform
}

// SetProcessor must be called before Start or serving the webhook.
func (b *Bot) SetProcessor(p Processor) {
	b.processor = p
}

// Start long-polls for updates until ctx is done, then waits for in-flight
// messages to finish.
func (b *Bot) Start(ctx context.Context) error {
	if _, err := b.api.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		b.logger.Warn("Failed to clear webhook before polling", zap.Error(err))
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.pollTimeout

	updates := b.api.GetUpdatesChan(u)
	b.logger.Info("Telegram polling started")

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("Telegram polling stopping")
			b.api.StopReceivingUpdates()
			b.Wait()
			return nil
		case update, ok := <-updates:
			if !ok {
				b.Wait()
				return nil
			}
			b.dispatch(ctx, update)
		}
	}
}

// WebhookPath is the secret route Telegram posts updates to.
func (b *Bot) WebhookPath() string {
	return "/bot" + b.api.Token
}

// RegisterWebhook points Telegram at baseURL + WebhookPath.
func (b *Bot) RegisterWebhook(baseURL string) error {
	wh, err := tgbotapi.NewWebhook(baseURL + b.WebhookPath())
	if err != nil {
		return fmt.Errorf("invalid webhook url: %w", err)
	}
	if _, err := b.api.Request(wh); err != nil {
		return fmt.Errorf("failed to set webhook: %w", err)
	}
	b.logger.Info("Webhook registered", zap.String("base_url", baseURL))
	return nil
}

// WebhookHandler acknowledges every update immediately and processes it in the background.
func (b *Bot) WebhookHandler(ctx context.Context) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		update, err := b.api.HandleUpdate(r)
		if err != nil {
			b.logger.Warn("Failed to decode webhook update", zap.Error(err))
			http.Error(w, "bad update", http.StatusBadRequest)
			return
		}
		b.dispatch(ctx, *update)
		w.WriteHeader(http.StatusOK)
	})
}

// Wait blocks until every dispatched message has been processed.
func (b *Bot) Wait() {
	b.inflight.Wait()
}

func (b *Bot) dispatch(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil {
		return
	}
	msg := toInbound(update.Message)

	// Messages run to completion even when shutdown starts.
	ctx = context.WithoutCancel(ctx)

	b.inflight.Add(1)
	go func() {
		defer b.inflight.Done()
		defer func() {
			if r := recover(); r != nil {
				b.logger.Error("Message handler panicked",
					zap.Any("panic", r),
					zap.Int64("chat_id", msg.ChatID),
					zap.Int("message_id", msg.MessageID))
			}
		}()
		b.processor.Process(ctx, msg)
	}()
}
