package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	t.Run("Counts every result", func(t *testing.T) {
		// Given: two wins, one loss and one draw
		entries := []*ScoreEntry{
			{Result: ResultWin},
			{Result: ResultLoss},
			{Result: ResultWin},
			{Result: ResultDraw},
		}

		// When: summarizing
		stats := Summarize(entries)

		// Then: counts and win rate match
		assert.Equal(t, ScoreStats{Played: 4, Wins: 2, Losses: 1, Draws: 1, WinRate: 50}, stats)
	})

	t.Run("No games played", func(t *testing.T) {
		assert.Equal(t, ScoreStats{}, Summarize(nil))
	})
}

func TestResultFor(t *testing.T) {
	assert.Equal(t, ResultWin, ResultFor(Outcome{Kind: OutcomeWin, Winner: X}, X))
	assert.Equal(t, ResultLoss, ResultFor(Outcome{Kind: OutcomeWin, Winner: O}, X))
	assert.Equal(t, ResultDraw, ResultFor(Outcome{Kind: OutcomeDraw}, O))
	assert.Equal(t, ResultInProgress, ResultFor(Outcome{}, O))
}
