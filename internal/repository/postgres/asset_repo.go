package postgres

import (
	"context"
	"errors"

	"github.com/yourusername/deck-api/internal/domain/entity"
	"github.com/yourusername/deck-api/internal/domain/repository"
	"gorm.io/gorm"
)

// AssetRepo реализует repository.AssetRepository
type AssetRepo struct {
	db *gorm.DB
}

// NewAssetRepo создает новый репозиторий ассетов
func NewAssetRepo(db *gorm.DB) *AssetRepo {
	return &AssetRepo{db: db}
}

// ListByDeck возвращает ассеты колоды, отсортированные по created_at ASC
func (r *AssetRepo) ListByDeck(ctx context.Context, deckID string) ([]entity.Asset, error) {
	assets := make([]entity.Asset, 0)
	err := r.db.WithContext(ctx).
		Where("deck_id = ?", deckID).
		Order("created_at ASC").
		Find(&assets).Error
	if err != nil {
		return nil, err
	}
	return assets, nil
}

// CreateBatch вставляет все ассеты одним INSERT и возвращает их с назначенными ID
func (r *AssetRepo) CreateBatch(ctx context.Context, assets []entity.Asset) ([]entity.Asset, error) {
	if err := r.db.WithContext(ctx).Create(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

// FindStoragePath возвращает storage_path ассета
func (r *AssetRepo) FindStoragePath(ctx context.Context, id string) (string, error) {
	var asset entity.Asset
	err := r.db.WithContext(ctx).
		Select("id", "storage_path").
		Where("id = ?", id).
		Take(&asset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", repository.ErrAssetNotFound
		}
		return "", err
	}
	return asset.StoragePath, nil
}

// Delete удаляет ассет по ID
func (r *AssetRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Asset{}).Error
}
