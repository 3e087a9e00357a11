package mocks

import (
	"context"

	"game-sync/core/propstore"

	"github.com/stretchr/testify/mock"
)

// Store is a mock implementation of propstore.Store.
type Store struct {
	mock.Mock
}

func (m *Store) QueryPage(ctx context.Context, databaseID string, q propstore.Query) (*propstore.Page, error) {
	args := m.Called(ctx, databaseID, q)
	if page, ok := args.Get(0).(*propstore.Page); ok {
		return page, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) CreatePage(ctx context.Context, databaseID string, props propstore.Properties, media *propstore.Media) (string, error) {
	args := m.Called(ctx, databaseID, props, media)
	return args.String(0), args.Error(1)
}

func (m *Store) PatchPage(ctx context.Context, pageID string, props propstore.Properties) error {
	args := m.Called(ctx, pageID, props)
	return args.Error(0)
}
