package entity

import "time"

// ScoreEntry is the record of one completed match.
type ScoreEntry struct {
	ID           string    `json:"id"`
	PlayerName   string    `json:"player_name"`
	OpponentName string    `json:"opponent_name"`
	Result       Result    `json:"result"`
	MoveCount    int       `json:"move_count"`
	PlayedAt     time.Time `json:"played_at"`
}

// ScoreStats summarizes a set of score entries.
type ScoreStats struct {
	Played  int     `json:"played"`
	Wins    int     `json:"wins"`
	Losses  int     `json:"losses"`
	Draws   int     `json:"draws"`
	WinRate float64 `json:"win_rate"`
}

// Summarize counts results. WinRate is a percentage, zero when nothing was played.
func Summarize(entries []*ScoreEntry) ScoreStats {
	var stats ScoreStats

	for _, entry := range entries {
		switch entry.Result {
		case ResultWin:
			stats.Wins++
		case ResultLoss:
			stats.Losses++
		case ResultDraw:
			stats.Draws++
		default:
			continue
		}
		stats.Played++
	}

	if stats.Played > 0 {
		stats.WinRate = float64(stats.Wins) * 100 / float64(stats.Played)
	}

	return stats
}
