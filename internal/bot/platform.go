package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/xaenox/nico-bot/internal/models"
)

// Platform exposes the Telegram Bot API calls the moderation pipeline needs.
// The underlying client has no context support; ctx is only checked before
// each call.
type Platform struct {
	api *tgbotapi.BotAPI
}

func NewPlatform(api *tgbotapi.BotAPI) *Platform {
	return &Platform{api: api}
}

func (p *Platform) GetAdministrators(ctx context.Context, chatID int64) ([]models.ChatMember, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	admins, err := p.api.GetChatAdministrators(tgbotapi.ChatAdministratorsConfig{
		ChatConfig: tgbotapi.ChatConfig{ChatID: chatID},
	})
	if err != nil {
		return nil, fmt.Errorf("get chat administrators: %w", err)
	}

	members := make([]models.ChatMember, 0, len(admins))
	for _, a := range admins {
		if a.User == nil {
			continue
		}
		members = append(members, models.ChatMember{
			Account:           toAccount(a.User),
			Status:            a.Status,
			CanDeleteMessages: a.CanDeleteMessages,
		})
	}
	return members, nil
}

func (p *Platform) GetSelf(ctx context.Context) (models.Account, error) {
	return toAccount(&p.api.Self), nil
}

func (p *Platform) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := p.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	return nil
}

func (p *Platform) SendMessage(ctx context.Context, chatID int64, text string, opts models.SendOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = opts.ParseMode
	msg.ReplyToMessageID = opts.ReplyTo

	if _, err := p.api.Send(msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

func (p *Platform) SendTyping(ctx context.Context, chatID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := p.api.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
		return fmt.Errorf("send chat action: %w", err)
	}
	return nil
}

func toAccount(u *tgbotapi.User) models.Account {
	return models.Account{
		ID:          u.ID,
		Username:    u.UserName,
		IsAutomated: u.IsBot,
	}
}
