package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type mockScoreRepo struct {
	mock.Mock
}

func newMockScoreRepo() *mockScoreRepo {
	return &mockScoreRepo{}
}

func (that *mockScoreRepo) Save(ctx context.Context, entry *entity.ScoreEntry) error {
	args := that.Called(ctx, entry)
	return args.Error(0)
}

func (that *mockScoreRepo) List(ctx context.Context, limit int) ([]*entity.ScoreEntry, error) {
	args := that.Called(ctx, limit)

	entries, _ := args.Get(0).([]*entity.ScoreEntry)
	return entries, args.Error(1)
}

func (that *mockScoreRepo) Clear(ctx context.Context) error {
	args := that.Called(ctx)
	return args.Error(0)
}

type mockPublisher struct {
	mock.Mock
}

func (that *mockPublisher) Publish(event string, payload any) {
	that.Called(event, payload)
}
