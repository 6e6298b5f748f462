package models

// EntityKind is the kind of a rich-text annotation attached to a message.
type EntityKind string

const (
	EntityURL      EntityKind = "url"
	EntityTextLink EntityKind = "text_link"
)

// Entity is a rich-text annotation. Offset and Length are in UTF-16 code units,
// as delivered by the chat platform.
type Entity struct {
	Kind   EntityKind `json:"kind"`
	Offset int        `json:"offset"`
	Length int        `json:"length"`
	URL    string     `json:"url,omitempty"`
}

// Sender identifies the author of an inbound message.
type Sender struct {
	ID          int64  `json:"id"`
	Username    string `json:"username,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	IsAutomated bool   `json:"is_automated"`
}

// Handle returns the name used to address the sender: the username when set,
// the display name otherwise.
func (s Sender) Handle() string {
	if s.Username != "" {
		return s.Username
	}
	return s.DisplayName
}

// InboundMessage is one message event delivered by the transport.
type InboundMessage struct {
	ChatID          int64    `json:"chat_id"`
	MessageID       int      `json:"message_id"`
	Sender          Sender   `json:"sender"`
	Text            string   `json:"text,omitempty"`
	Caption         string   `json:"caption,omitempty"`
	Entities        []Entity `json:"entities,omitempty"`
	CaptionEntities []Entity `json:"caption_entities,omitempty"`
	// NewMembers is non-nil when the message announces members joining the chat.
	NewMembers []int64 `json:"new_members,omitempty"`
}

// Content returns the text body, or the caption for media messages.
func (m InboundMessage) Content() string {
	if m.Text != "" {
		return m.Text
	}
	return m.Caption
}

// HasJoinMarker reports whether the message announces new members.
func (m InboundMessage) HasJoinMarker() bool {
	return len(m.NewMembers) > 0
}

// Account is an identity on the chat platform.
type Account struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	IsAutomated bool   `json:"is_automated"`
}

const (
	MemberStatusCreator       = "creator"
	MemberStatusAdministrator = "administrator"
)

// ChatMember is one entry of a chat's administrator list.
type ChatMember struct {
	Account           Account `json:"account"`
	Status            string  `json:"status"`
	CanDeleteMessages bool    `json:"can_delete_messages"`
}

// SendOptions controls delivery of an outbound message.
type SendOptions struct {
	ReplyTo   int    `json:"reply_to,omitempty"`
	ParseMode string `json:"parse_mode,omitempty"`
}

// CompletionRequest is a single stateless chat completion.
type CompletionRequest struct {
	SystemPrompt string  `json:"system_prompt"`
	UserText     string  `json:"user_text"`
	Temperature  float64 `json:"temperature"`
}
