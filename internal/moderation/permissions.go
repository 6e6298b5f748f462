package moderation

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/xaenox/nico-bot/internal/models"
)

const DefaultPermissionTTL = 5 * time.Minute

type permissionEntry struct {
	canDelete bool
	expiresAt time.Time
}

// PermissionCache remembers, per chat, whether the bot may delete messages.
// Entries are replaced wholesale on refresh and never evicted. Concurrent
// refreshes of the same chat are tolerated; the last writer wins.
type PermissionCache struct {
	admins AdminLister
	clock  clockwork.Clock
	ttl    time.Duration
	logger *zap.Logger

	mu      sync.RWMutex
	entries map[int64]permissionEntry
}

func NewPermissionCache(admins AdminLister, clock clockwork.Clock, ttl time.Duration, logger *zap.Logger) *PermissionCache {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if ttl <= 0 {
		ttl = DefaultPermissionTTL
	}
	return &PermissionCache{
		admins:  admins,
		clock:   clock,
		ttl:     ttl,
		logger:  logger,
		entries: make(map[int64]permissionEntry),
	}
}

// CanDelete reports whether the bot currently holds delete rights in chatID.
// Lookup failures are not cached and report false.
func (c *PermissionCache) CanDelete(ctx context.Context, chatID int64) bool {
	now := c.clock.Now()

	c.mu.RLock()
	entry, ok := c.entries[chatID]
	c.mu.RUnlock()
	if ok && now.Before(entry.expiresAt) {
		permissionLookups.WithLabelValues("hit").Inc()
		return entry.canDelete
	}

	canDelete, err := c.lookup(ctx, chatID)
	if err != nil {
		permissionLookups.WithLabelValues("error").Inc()
		c.logger.Error("Admin check failed",
			zap.Error(err),
			zap.Int64("chat_id", chatID))
		return false
	}
	permissionLookups.WithLabelValues("miss").Inc()

	c.mu.Lock()
	c.entries[chatID] = permissionEntry{
		canDelete: canDelete,
		expiresAt: c.clock.Now().Add(c.ttl),
	}
	c.mu.Unlock()

	return canDelete
}

func (c *PermissionCache) lookup(ctx context.Context, chatID int64) (bool, error) {
	admins, err := c.admins.GetAdministrators(ctx, chatID)
	if err != nil {
		return false, err
	}
	self, err := c.admins.GetSelf(ctx)
	if err != nil {
		return false, err
	}

	for _, m := range admins {
		if !isSelf(m.Account, self) {
			continue
		}
		return m.CanDeleteMessages || m.Status == models.MemberStatusCreator, nil
	}
	return false, nil
}

func isSelf(a, self models.Account) bool {
	if a.ID != 0 && self.ID != 0 {
		return a.ID == self.ID
	}
	return a.IsAutomated && a.Username != "" && a.Username == self.Username
}
