package moderation

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	"github.com/xaenox/nico-bot/internal/models"
)

func TestPermissionCacheExpiry(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	clock := clockwork.NewFakeClock()
	admins := deleterAdmins()
	cache := NewPermissionCache(admins, clock, DefaultPermissionTTL, zaptest.NewLogger(t))

	assert.True(cache.CanDelete(ctx, 100))
	assert.Equal(1, admins.Calls())

	clock.Advance(4*time.Minute + 59*time.Second)
	assert.True(cache.CanDelete(ctx, 100))
	assert.Equal(1, admins.Calls())

	clock.Advance(time.Second)
	assert.True(cache.CanDelete(ctx, 100))
	assert.Equal(2, admins.Calls())
}

func TestPermissionCachePerChat(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	admins := deleterAdmins()
	cache := NewPermissionCache(admins, clockwork.NewFakeClock(), 0, zaptest.NewLogger(t))

	cache.CanDelete(ctx, 1)
	cache.CanDelete(ctx, 2)
	cache.CanDelete(ctx, 1)
	assert.Equal(2, admins.Calls())
}

func TestPermissionCacheVerdicts(t *testing.T) {
	assert := assert.New(t)

	fixtures := []struct {
		name   string
		self   models.Account
		member *models.ChatMember
		out    bool
	}{
		{
			name:   "not an admin",
			member: nil,
			out:    false,
		},
		{
			name:   "admin without delete right",
			member: &models.ChatMember{Account: botAccount, Status: models.MemberStatusAdministrator},
			out:    false,
		},
		{
			name:   "admin with delete right",
			member: &models.ChatMember{Account: botAccount, Status: models.MemberStatusAdministrator, CanDeleteMessages: true},
			out:    true,
		},
		{
			name:   "owner",
			member: &models.ChatMember{Account: botAccount, Status: models.MemberStatusCreator},
			out:    true,
		},
		{
			name:   "matched by username when ids are missing",
			self:   models.Account{Username: "nico_bot", IsAutomated: true},
			member: &models.ChatMember{Account: models.Account{Username: "nico_bot", IsAutomated: true}, CanDeleteMessages: true},
			out:    true,
		},
	}

	for _, fix := range fixtures {
		admins := &fakeAdmins{self: botAccount}
		if fix.self != (models.Account{}) {
			admins.self = fix.self
		}
		if fix.member != nil {
			admins.members = []models.ChatMember{*fix.member}
		}
		cache := NewPermissionCache(admins, clockwork.NewFakeClock(), time.Minute, zaptest.NewLogger(t))
		assert.Equal(fix.out, cache.CanDelete(context.Background(), 7), fix.name)
	}
}

func TestPermissionCacheFailsClosedWithoutCaching(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()
	admins := deleterAdmins()
	admins.err = errTransport
	cache := NewPermissionCache(admins, clockwork.NewFakeClock(), time.Minute, zaptest.NewLogger(t))

	assert.False(cache.CanDelete(ctx, 9))
	assert.Equal(1, admins.Calls())

	admins.mu.Lock()
	admins.err = nil
	admins.mu.Unlock()

	assert.True(cache.CanDelete(ctx, 9))
	assert.Equal(2, admins.Calls())
}
