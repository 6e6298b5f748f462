package moderation

import (
	"context"
	"errors"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/xaenox/nico-bot/internal/classifier"
	"github.com/xaenox/nico-bot/internal/models"
	"github.com/xaenox/nico-bot/internal/persona"
)

const chatID = -100123

var testFacts = &models.PlatformFacts{
	About:          "NicoNetwork is an investment platform.",
	MinimumDeposit: "₵75",
	Plans: []models.Plan{
		{Name: "Starter", DailyIncome: "₵5", Duration: "30 days", Price: "₵75"},
	},
	OfficialDomain: "niconetwork.cfd",
	SupportHandle:  "@NicoNetworkSupport",
}

type harness struct {
	pipeline  *Pipeline
	admins    *fakeAdmins
	messenger *fakeMessenger
	completer *fakeCompleter
	cache     *PermissionCache
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	p, ok := persona.Lookup(persona.Professional)
	require.True(t, ok)
	builder, err := persona.NewBuilder(p)
	require.NoError(t, err)

	logger := zaptest.NewLogger(t)
	h := &harness{
		admins:    deleterAdmins(),
		messenger: &fakeMessenger{},
		completer: &fakeCompleter{reply: "**Minimum deposit** is ₵75.\n\n\n\nIf you need more help, contact support @NicoNetworkSupport"},
	}
	h.cache = NewPermissionCache(h.admins, clockwork.NewFakeClock(), DefaultPermissionTTL, logger)
	h.pipeline = NewPipeline(
		PipelineConfig{GroupRules: "*Group Rules*", Facts: testFacts},
		NewDomainValidator([]string{"niconetwork.cfd"}),
		h.cache,
		classifier.NewDefaultClassifier(),
		builder,
		h.messenger,
		h.completer,
		logger,
	)
	return h
}

func message(text string) models.InboundMessage {
	return models.InboundMessage{
		ChatID:    chatID,
		MessageID: 55,
		Sender:    models.Sender{ID: 9, Username: "kofi", DisplayName: "Kofi"},
		Text:      text,
	}
}

func TestUnofficialLinkDeleted(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	h := newHarness(t)

	require.True(t, h.cache.CanDelete(ctx, chatID))
	require.Equal(t, 1, h.admins.Calls())

	v := h.pipeline.Process(ctx, message("Check this out http://totally-fake-site.com"))

	assert.Equal(models.VerdictDelete, v.Kind)
	assert.Equal([]int{55}, h.messenger.deleted)
	assert.Empty(h.messenger.sent)
	assert.Empty(h.completer.requests)
	assert.Equal(1, h.admins.Calls())
}

func TestOfficialLinkNotDeleted(t *testing.T) {
	assert := assert.New(t)
	h := newHarness(t)

	v := h.pipeline.Process(context.Background(), message("register at https://www.niconetwork.cfd/signup"))

	assert.Equal(models.VerdictReply, v.Kind)
	assert.Empty(h.messenger.deleted)
	assert.Equal(0, h.admins.Calls())
}

func TestUnofficialLinkWithoutPermissionFallsThrough(t *testing.T) {
	assert := assert.New(t)
	h := newHarness(t)
	h.admins.members = nil

	v := h.pipeline.Process(context.Background(), message("http://spam.example you idiot"))

	assert.Equal(models.VerdictWarn, v.Kind)
	assert.Empty(h.messenger.deleted)
}

func TestDeleteFailureFallsThrough(t *testing.T) {
	assert := assert.New(t)
	h := newHarness(t)
	h.messenger.deleteErr = errTransport

	v := h.pipeline.Process(context.Background(), message("http://spam.example you idiot"))

	assert.Equal(models.VerdictWarn, v.Kind)
	assert.Len(h.messenger.sent, 1)
}

func TestProfanityWarns(t *testing.T) {
	assert := assert.New(t)
	h := newHarness(t)

	v := h.pipeline.Process(context.Background(), message("you fool"))

	assert.Equal(models.VerdictWarn, v.Kind)
	assert.Contains(v.Text, "@kofi")
	require.Len(t, h.messenger.sent, 1)
	assert.Equal(v.Text, h.messenger.sent[0].Text)
	assert.Empty(h.completer.requests)
}

func TestProfanityWarnFallsBackToDisplayName(t *testing.T) {
	assert := assert.New(t)
	h := newHarness(t)

	msg := message("what a stupid deposit rule")
	msg.Sender.Username = ""
	v := h.pipeline.Process(context.Background(), msg)

	assert.Equal(models.VerdictWarn, v.Kind)
	assert.Contains(v.Text, "@Kofi")
}

func TestTopicQuestionReplies(t *testing.T) {
	assert := assert.New(t)
	h := newHarness(t)

	v := h.pipeline.Process(context.Background(), message("What is the minimum deposit for NicoNetwork?"))

	assert.Equal(models.VerdictReply, v.Kind)
	require.Len(t, h.completer.requests, 1)
	req := h.completer.requests[0]
	assert.Contains(req.SystemPrompt, "Minimum Deposit: ₵75")
	assert.Equal("What is the minimum deposit for NicoNetwork?", req.UserText)
	assert.Equal(0.6, req.Temperature)

	assert.Equal("*Minimum deposit* is ₵75.\n\nIf you need more help, contact support @NicoNetworkSupport", v.Text)
	require.Len(t, h.messenger.sent, 1)
	assert.Equal(55, h.messenger.sent[0].Opts.ReplyTo)
	assert.Equal(ParseModeMarkdown, h.messenger.sent[0].Opts.ParseMode)
	assert.Equal(1, h.messenger.typing)
}

func TestIgnoredMessages(t *testing.T) {
	assert := assert.New(t)

	fixtures := []struct {
		name   string
		msg    models.InboundMessage
		reason string
	}{
		{name: "off topic", msg: message("lol"), reason: "off_topic"},
		{name: "noise", msg: message("ok"), reason: "noise"},
		{name: "greeting", msg: message("hello"), reason: "noise"},
		{name: "empty", msg: message(""), reason: "empty"},
		{
			name: "automated sender",
			msg: models.InboundMessage{
				ChatID: chatID,
				Sender: models.Sender{ID: 3, IsAutomated: true},
				Text:   "What is the minimum deposit?",
			},
			reason: "automated_sender",
		},
	}

	for _, fix := range fixtures {
		h := newHarness(t)
		v := h.pipeline.Process(context.Background(), fix.msg)
		assert.Equal(models.VerdictIgnore, v.Kind, fix.name)
		assert.Equal(fix.reason, v.Reason, fix.name)
		assert.Empty(h.completer.requests, fix.name)
		assert.Empty(h.messenger.sent, fix.name)
	}
}

func TestModelFailureIgnores(t *testing.T) {
	assert := assert.New(t)
	h := newHarness(t)
	h.completer.err = errors.New("quota exceeded")

	v := h.pipeline.Process(context.Background(), message("how do I withdraw my profits?"))

	assert.Equal(models.VerdictIgnore, v.Kind)
	assert.Equal("model_failure", v.Reason)
	assert.Empty(h.messenger.sent)
}

func TestEmptyCompletionIgnores(t *testing.T) {
	assert := assert.New(t)
	h := newHarness(t)
	h.completer.reply = "  \n\n\n "

	v := h.pipeline.Process(context.Background(), message("how do I withdraw my profits?"))

	assert.Equal(models.VerdictIgnore, v.Kind)
	assert.Empty(h.messenger.sent)
}

func TestNewMembersGreetedOnce(t *testing.T) {
	assert := assert.New(t)
	h := newHarness(t)

	v := h.pipeline.Process(context.Background(), models.InboundMessage{
		ChatID:     chatID,
		MessageID:  60,
		Sender:     models.Sender{ID: 9, Username: "kofi"},
		NewMembers: []int64{101, 102, 103},
	})

	assert.Equal(models.VerdictReply, v.Kind)
	require.Len(t, h.messenger.sent, 1)
	assert.Equal("*Group Rules*", h.messenger.sent[0].Text)
	assert.Equal(0, h.messenger.sent[0].Opts.ReplyTo)
}

func TestSendFailureStillReportsVerdict(t *testing.T) {
	assert := assert.New(t)
	h := newHarness(t)
	h.messenger.sendErr = errTransport

	v := h.pipeline.Process(context.Background(), message("you idiot"))

	assert.Equal(models.VerdictWarn, v.Kind)
	assert.Empty(h.messenger.sent)
}
