package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/xaenox/nico-bot/internal/models"
)

// toInbound converts a Telegram message into the pipeline's message model.
func toInbound(m *tgbotapi.Message) models.InboundMessage {
	in := models.InboundMessage{
		MessageID:       m.MessageID,
		Text:            m.Text,
		Caption:         m.Caption,
		Entities:        toEntities(m.Entities),
		CaptionEntities: toEntities(m.CaptionEntities),
	}
	if m.Chat != nil {
		in.ChatID = m.Chat.ID
	}
	if m.From != nil {
		in.Sender = models.Sender{
			ID:          m.From.ID,
			Username:    m.From.UserName,
			DisplayName: m.From.FirstName,
			IsAutomated: m.From.IsBot,
		}
	}
	for _, u := range m.NewChatMembers {
		in.NewMembers = append(in.NewMembers, u.ID)
	}
	return in
}

func toEntities(entities []tgbotapi.MessageEntity) []models.Entity {
	var out []models.Entity
	for _, e := range entities {
		var kind models.EntityKind
		switch e.Type {
		case "url":
			kind = models.EntityURL
		case "text_link":
			kind = models.EntityTextLink
		default:
			continue
		}
		out = append(out, models.Entity{
			Kind:   kind,
			Offset: e.Offset,
			Length: e.Length,
			URL:    e.URL,
		})
	}
	return out
}
