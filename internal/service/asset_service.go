package service

import (
	"context"
	"errors"
	"time"

	"github.com/yourusername/deck-api/internal/domain/entity"
	"github.com/yourusername/deck-api/internal/domain/repository"
	apperrors "github.com/yourusername/deck-api/internal/pkg/errors"
	"github.com/yourusername/deck-api/pkg/logger"
	"github.com/yourusername/deck-api/pkg/metrics"
)

// AssetRecord описывает метаданные одного уже загруженного в бакет файла
type AssetRecord struct {
	Title       string
	StoragePath string
	PublicURL   string
}

// DeletionReport описывает, какие шаги удаления ассета были выполнены.
//
// Удаление не атомарно: lookup -> удаление объекта -> удаление строки.
// Если объект удален, а строка нет, запись остается ссылаться на
// несуществующий объект (OrphanedRow).
type DeletionReport struct {
	AssetID       string
	Found         bool
	ObjectRemoved bool
	RowDeleted    bool
	OrphanedRow   bool
}

// AssetService транслирует операции над ассетами в вызовы БД и хранилища
type AssetService struct {
	assetRepo  repository.AssetRepository
	objectRepo repository.ObjectRepository
	log        *logger.Logger
	metrics    *metrics.Manager
	now        func() time.Time
}

// NewAssetService создает новый сервис ассетов
func NewAssetService(
	assetRepo repository.AssetRepository,
	objectRepo repository.ObjectRepository,
	log *logger.Logger,
	m *metrics.Manager,
) *AssetService {
	return &AssetService{
		assetRepo:  assetRepo,
		objectRepo: objectRepo,
		log:        log.With("component", "AssetService"),
		metrics:    m,
		now:        time.Now,
	}
}

// ListAssets возвращает ассеты колоды, старые первыми
func (s *AssetService) ListAssets(ctx context.Context, deckID string) ([]entity.Asset, error) {
	assets, err := s.assetRepo.ListByDeck(ctx, deckID)
	s.metrics.ObserveBackend("assets.list", err)
	if err != nil {
		return nil, apperrors.NewBackendError("assets.list", err)
	}
	return assets, nil
}

// RecordAssets записывает метаданные пачки файлов одним INSERT.
// created_at выставляется здесь, одинаковым для всей пачки
func (s *AssetService) RecordAssets(ctx context.Context, deckID string, records []AssetRecord) ([]entity.Asset, error) {
	// Пустой список отклоняется независимо от deckID
	if len(records) == 0 {
		return nil, apperrors.NewValidationError("assets list is empty")
	}
	if deckID == "" {
		return nil, apperrors.NewValidationError("deckId is required")
	}

	createdAt := s.now().UTC()
	assets := make([]entity.Asset, 0, len(records))
	for _, r := range records {
		assets = append(assets, entity.Asset{
			DeckID:      deckID,
			Title:       r.Title,
			StoragePath: r.StoragePath,
			PublicURL:   r.PublicURL,
			CreatedAt:   createdAt,
		})
	}

	created, err := s.assetRepo.CreateBatch(ctx, assets)
	s.metrics.ObserveBackend("assets.create", err)
	if err != nil {
		return nil, apperrors.NewBackendError("assets.create", err)
	}

	s.log.Debug("asset metadata recorded", "deck_id", deckID, "count", len(created))
	return created, nil
}

// DeleteAsset удаляет объект из бакета, затем строку из БД.
// Ошибки поиска и удаления объекта не возвращаются: они логируются,
// и удаление строки выполняется в любом случае.
func (s *AssetService) DeleteAsset(ctx context.Context, id string) (*DeletionReport, error) {
	report := &DeletionReport{AssetID: id}

	storagePath, found := s.lookupStoragePath(ctx, id)
	report.Found = found

	if found {
		report.ObjectRemoved = s.removeObject(ctx, id, storagePath)
	}

	err := s.assetRepo.Delete(ctx, id)
	s.metrics.ObserveBackend("assets.delete", err)
	if err != nil {
		if report.ObjectRemoved {
			report.OrphanedRow = true
			s.log.Error("asset row survived storage removal",
				"asset_id", id, "storage_path", storagePath, "error", err)
		}
		return report, apperrors.NewBackendError("assets.delete", err)
	}
	report.RowDeleted = true

	s.log.Debug("asset deleted", "asset_id", id, "found", found, "object_removed", report.ObjectRemoved)
	return report, nil
}

// lookupStoragePath возвращает ключ объекта. Любая ошибка трактуется как "нечего чистить"
func (s *AssetService) lookupStoragePath(ctx context.Context, id string) (string, bool) {
	storagePath, err := s.assetRepo.FindStoragePath(ctx, id)
	if errors.Is(err, repository.ErrAssetNotFound) {
		s.metrics.ObserveBackend("assets.lookup", nil)
		return "", false
	}
	s.metrics.ObserveBackend("assets.lookup", err)
	if err != nil {
		s.log.Warn("asset lookup failed, skipping storage removal", "asset_id", id, "error", err)
		return "", false
	}
	return storagePath, true
}

func (s *AssetService) removeObject(ctx context.Context, id, storagePath string) bool {
	err := s.objectRepo.RemoveObjects(ctx, []string{storagePath})
	s.metrics.ObserveBackend("storage.remove", err)
	if err != nil {
		s.log.Warn("storage removal failed", "asset_id", id, "storage_path", storagePath, "error", err)
		return false
	}
	return true
}
