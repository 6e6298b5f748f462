package storage

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/xaenox/nico-bot/internal/models"
)

var _ FactsSource = (*FileStorage)(nil)

// FileStorage reads platform facts from a JSON or YAML document.
type FileStorage struct {
	path string
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

func (s *FileStorage) LoadFacts(ctx context.Context) (*models.PlatformFacts, error) {
	v := viper.New()
	v.SetConfigFile(s.path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading facts file %s: %w", s.path, err)
	}

	var facts models.PlatformFacts
	if err := v.Unmarshal(&facts); err != nil {
		return nil, fmt.Errorf("error decoding facts file %s: %w", s.path, err)
	}
	return &facts, nil
}

func (s *FileStorage) Close() error {
	return nil
}
