package storage

import (
	"context"
	"errors"

	"github.com/xaenox/nico-bot/internal/models"
)

var ErrNoFacts = errors.New("platform facts not found")

// FactsSource loads the platform reference data once at startup.
type FactsSource interface {
	LoadFacts(ctx context.Context) (*models.PlatformFacts, error)
	Close() error
}

// FactsStore is a FactsSource that can also be written, used to seed a database.
type FactsStore interface {
	FactsSource
	SaveFacts(ctx context.Context, facts *models.PlatformFacts) error
}
