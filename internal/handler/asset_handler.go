package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/deck-api/internal/handler/dto"
	"github.com/yourusername/deck-api/internal/service"
)

// AssetHandler обрабатывает HTTP запросы для метаданных ассетов
type AssetHandler struct {
	assetService *service.AssetService
}

// NewAssetHandler создает новый обработчик ассетов
func NewAssetHandler(assetService *service.AssetService) *AssetHandler {
	return &AssetHandler{assetService: assetService}
}

// ListDeckAssets возвращает ассеты колоды, старые первыми
// GET /api/decks/:id/assets
func (h *AssetHandler) ListDeckAssets(c *gin.Context) {
	assets, err := h.assetService.ListAssets(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, assets)
}

// RecordAssets записывает метаданные файлов, загруженных клиентом напрямую в бакет
// POST /api/assets
func (h *AssetHandler) RecordAssets(c *gin.Context) {
	var req dto.RecordAssetsRequest
	if !bindJSON(c, &req) {
		return
	}

	assets, err := h.assetService.RecordAssets(c.Request.Context(), req.DeckID, req.ToRecords())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.RecordAssetsResponse{Message: "Metadata recorded", Data: assets})
}

// DeleteAsset удаляет объект из бакета и запись из БД
// DELETE /api/assets/:id
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	if _, err := h.assetService.DeleteAsset(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Asset deleted"})
}
