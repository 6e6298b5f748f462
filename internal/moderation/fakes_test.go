package moderation

import (
	"context"
	"errors"
	"sync"

	"github.com/xaenox/nico-bot/internal/models"
)

var errTransport = errors.New("transport failure")

type fakeAdmins struct {
	mu      sync.Mutex
	self    models.Account
	members []models.ChatMember
	err     error
	calls   int
}

func (f *fakeAdmins) GetAdministrators(ctx context.Context, chatID int64) ([]models.ChatMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.members, nil
}

func (f *fakeAdmins) GetSelf(ctx context.Context) (models.Account, error) {
	return f.self, nil
}

func (f *fakeAdmins) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type sentMessage struct {
	ChatID int64
	Text   string
	Opts   models.SendOptions
}

type fakeMessenger struct {
	mu        sync.Mutex
	sent      []sentMessage
	deleted   []int
	typing    int
	deleteErr error
	sendErr   error
}

func (f *fakeMessenger) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, messageID)
	return nil
}

func (f *fakeMessenger) SendMessage(ctx context.Context, chatID int64, text string, opts models.SendOptions) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, sentMessage{ChatID: chatID, Text: text, Opts: opts})
	return nil
}

func (f *fakeMessenger) SendTyping(ctx context.Context, chatID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.typing++
	return nil
}

type fakeCompleter struct {
	reply    string
	err      error
	requests []models.CompletionRequest
}

func (f *fakeCompleter) Complete(ctx context.Context, req models.CompletionRequest) (string, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

const botID = 42

var botAccount = models.Account{ID: botID, Username: "nico_bot", IsAutomated: true}

func deleterAdmins() *fakeAdmins {
	return &fakeAdmins{
		self: botAccount,
		members: []models.ChatMember{
			{Account: models.Account{ID: 1, Username: "owner"}, Status: models.MemberStatusCreator},
			{Account: botAccount, Status: models.MemberStatusAdministrator, CanDeleteMessages: true},
		},
	}
}
