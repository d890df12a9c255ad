package dto

import (
	"github.com/yourusername/deck-api/internal/domain/entity"
	"github.com/yourusername/deck-api/internal/service"
)

// AssetInput метаданные одного файла, уже загруженного клиентом в бакет
type AssetInput struct {
	Title       string `json:"title"`
	StoragePath string `json:"storage_path"`
	PublicURL   string `json:"public_url"`
}

// RecordAssetsRequest тело POST /api/assets
type RecordAssetsRequest struct {
	DeckID string       `json:"deckId"`
	Assets []AssetInput `json:"assets"`
}

// RecordAssetsResponse ответ POST /api/assets
type RecordAssetsResponse struct {
	Message string         `json:"message"`
	Data    []entity.Asset `json:"data"`
}

// ToRecords преобразует входные DTO в записи сервиса
func (r *RecordAssetsRequest) ToRecords() []service.AssetRecord {
	records := make([]service.AssetRecord, 0, len(r.Assets))
	for _, a := range r.Assets {
		records = append(records, service.AssetRecord{
			Title:       a.Title,
			StoragePath: a.StoragePath,
			PublicURL:   a.PublicURL,
		})
	}
	return records
}
