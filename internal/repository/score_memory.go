package repository

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type memoryScores struct {
	mu      sync.Mutex
	entries []entity.ScoreEntry
}

// NewMemoryScoreRepository keeps scores for the lifetime of the process.
func NewMemoryScoreRepository() ScoreRepository {
	return &memoryScores{}
}

func (that *memoryScores) Save(_ context.Context, entry *entity.ScoreEntry) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.entries = append(that.entries, *entry)

	return nil
}

func (that *memoryScores) List(_ context.Context, limit int) ([]*entity.ScoreEntry, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	start := 0
	if limit > 0 && limit < len(that.entries) {
		start = len(that.entries) - limit
	}

	entries := make([]*entity.ScoreEntry, 0, len(that.entries)-start)
	for _, entry := range that.entries[start:] {
		entries = append(entries, &entry)
	}

	return entries, nil
}

func (that *memoryScores) Clear(_ context.Context) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.entries = nil

	return nil
}
