package repository

import (
	"context"
	"errors"

	"github.com/yourusername/deck-api/internal/domain/entity"
)

// ErrAssetNotFound возвращается FindStoragePath, когда ассета нет
var ErrAssetNotFound = errors.New("asset not found")

// AssetRepository определяет методы для работы с метаданными ассетов
type AssetRepository interface {
	// ListByDeck возвращает ассеты колоды, старые первыми
	ListByDeck(ctx context.Context, deckID string) ([]entity.Asset, error)

	// CreateBatch вставляет все записи одним запросом
	CreateBatch(ctx context.Context, assets []entity.Asset) ([]entity.Asset, error)

	// FindStoragePath возвращает ключ объекта в бакете или ErrAssetNotFound
	FindStoragePath(ctx context.Context, id string) (string, error)

	// Delete удаляет запись. Отсутствие записи ошибкой не считается
	Delete(ctx context.Context, id string) error
}
