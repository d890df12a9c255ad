package service

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/yourusername/deck-api/internal/domain/entity"
)

// ============================================================================
// Моки репозиториев
// ============================================================================

// MockDeckRepository реализует repository.DeckRepository
type MockDeckRepository struct {
	mock.Mock
}

func (m *MockDeckRepository) List(ctx context.Context) ([]entity.Deck, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Deck), args.Error(1)
}

func (m *MockDeckRepository) Create(ctx context.Context, deck *entity.Deck) error {
	args := m.Called(ctx, deck)
	return args.Error(0)
}

func (m *MockDeckRepository) UpdateTitle(ctx context.Context, id, title string) (*entity.Deck, error) {
	args := m.Called(ctx, id, title)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Deck), args.Error(1)
}

func (m *MockDeckRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAssetRepository реализует repository.AssetRepository
type MockAssetRepository struct {
	mock.Mock
}

func (m *MockAssetRepository) ListByDeck(ctx context.Context, deckID string) ([]entity.Asset, error) {
	args := m.Called(ctx, deckID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Asset), args.Error(1)
}

func (m *MockAssetRepository) CreateBatch(ctx context.Context, assets []entity.Asset) ([]entity.Asset, error) {
	args := m.Called(ctx, assets)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Asset), args.Error(1)
}

func (m *MockAssetRepository) FindStoragePath(ctx context.Context, id string) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockAssetRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockObjectRepository реализует repository.ObjectRepository
type MockObjectRepository struct {
	mock.Mock
}

func (m *MockObjectRepository) RemoveObjects(ctx context.Context, paths []string) error {
	args := m.Called(ctx, paths)
	return args.Error(0)
}
