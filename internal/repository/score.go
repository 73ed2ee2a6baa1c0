package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const scoresKey = "scores"

// ScoreRepository keeps completed-match records, oldest first.
type ScoreRepository interface {
	Save(ctx context.Context, entry *entity.ScoreEntry) error
	// List returns the last limit entries in the order they were saved; limit <= 0 means all.
	List(ctx context.Context, limit int) ([]*entity.ScoreEntry, error)
	Clear(ctx context.Context) error
}

type redisScores struct {
	client *redis.Client
}

func NewRedisScoreRepository(client *redis.Client) ScoreRepository {
	return &redisScores{
		client: client,
	}
}

func (that *redisScores) Save(ctx context.Context, entry *entity.ScoreEntry) error {
	entryJSON, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("could not marshal score: %w", err)
	}

	if err = that.client.RPush(ctx, scoresKey, entryJSON).Err(); err != nil {
		return fmt.Errorf("failed to push score: %w", err)
	}

	return nil
}

func (that *redisScores) List(ctx context.Context, limit int) ([]*entity.ScoreEntry, error) {
	start := int64(0)
	if limit > 0 {
		start = -int64(limit)
	}

	response, err := that.client.LRange(ctx, scoresKey, start, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list scores: %w", err)
	}

	entries := make([]*entity.ScoreEntry, 0, len(response))
	for _, raw := range response {
		var entry entity.ScoreEntry
		if err = json.Unmarshal([]byte(raw), &entry); err != nil {
			return nil, fmt.Errorf("failed to unmarshal score: %w", err)
		}
		entries = append(entries, &entry)
	}

	return entries, nil
}

func (that *redisScores) Clear(ctx context.Context) error {
	if err := that.client.Del(ctx, scoresKey).Err(); err != nil {
		return fmt.Errorf("failed to delete scores: %w", err)
	}

	return nil
}
