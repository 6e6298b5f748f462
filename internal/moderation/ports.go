package moderation

import (
	"context"

	"github.com/xaenox/nico-bot/internal/models"
)

// AdminLister resolves who holds administrator rights in a chat.
type AdminLister interface {
	GetAdministrators(ctx context.Context, chatID int64) ([]models.ChatMember, error)
	GetSelf(ctx context.Context) (models.Account, error)
}

// Messenger performs outbound actions on the chat platform.
type Messenger interface {
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
	SendMessage(ctx context.Context, chatID int64, text string, opts models.SendOptions) error
}

// TypingNotifier is implemented by messengers that can show a typing indicator.
type TypingNotifier interface {
	SendTyping(ctx context.Context, chatID int64) error
}

// Completer issues one stateless chat completion.
type Completer interface {
	Complete(ctx context.Context, req models.CompletionRequest) (string, error)
}
