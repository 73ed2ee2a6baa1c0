package repository

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type sqliteScores struct {
	conn *sql.DB
}

// NewSQLiteScoreRepository expects the scores table to exist, see storage.SQLiteStorage.Init.
func NewSQLiteScoreRepository(conn *sql.DB) ScoreRepository {
	return &sqliteScores{
		conn: conn,
	}
}

func (that *sqliteScores) Save(ctx context.Context, entry *entity.ScoreEntry) error {
	query := `INSERT INTO scores (id, player_name, opponent_name, result, move_count, played_at) VALUES (?, ?, ?, ?, ?, ?)`

	_, err := that.conn.ExecContext(ctx, query,
		entry.ID, entry.PlayerName, entry.OpponentName, string(entry.Result), entry.MoveCount, entry.PlayedAt.UTC())
	if err != nil {
		return fmt.Errorf("can't save score: %w", err)
	}

	return nil
}

func (that *sqliteScores) List(ctx context.Context, limit int) ([]*entity.ScoreEntry, error) {
	if limit <= 0 {
		limit = -1
	}

	query := `SELECT id, player_name, opponent_name, result, move_count, played_at
		FROM scores ORDER BY rowid DESC LIMIT ?`

	rows, err := that.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("can't list scores: %w", err)
	}
	defer rows.Close()

	var entries []*entity.ScoreEntry
	for rows.Next() {
		var (
			entry  entity.ScoreEntry
			result string
		)

		if err = rows.Scan(&entry.ID, &entry.PlayerName, &entry.OpponentName, &result, &entry.MoveCount, &entry.PlayedAt); err != nil {
			return nil, fmt.Errorf("can't scan score: %w", err)
		}
		entry.Result = entity.Result(result)

		entries = append(entries, &entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't read scores: %w", err)
	}

	slices.Reverse(entries)

	return entries, nil
}

func (that *sqliteScores) Clear(ctx context.Context) error {
	if _, err := that.conn.ExecContext(ctx, `DELETE FROM scores`); err != nil {
		return fmt.Errorf("can't clear scores: %w", err)
	}

	return nil
}
