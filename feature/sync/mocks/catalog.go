package mocks

import (
	"context"

	"game-sync/core/steam"

	"github.com/stretchr/testify/mock"
)

// Catalog is a mock implementation of sync.Catalog.
type Catalog struct {
	mock.Mock
}

func (m *Catalog) OwnedGames(ctx context.Context) ([]steam.OwnedGame, error) {
	args := m.Called(ctx)
	if games, ok := args.Get(0).([]steam.OwnedGame); ok {
		return games, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Catalog) Achievements(ctx context.Context, appID int) (steam.AchievementSummary, error) {
	args := m.Called(ctx, appID)
	return args.Get(0).(steam.AchievementSummary), args.Error(1)
}

func (m *Catalog) StoreDetails(ctx context.Context, appID int) (steam.StoreMetadata, error) {
	args := m.Called(ctx, appID)
	return args.Get(0).(steam.StoreMetadata), args.Error(1)
}
