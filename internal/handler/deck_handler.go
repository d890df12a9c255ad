package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/deck-api/internal/handler/dto"
	"github.com/yourusername/deck-api/internal/service"
)

// DeckHandler обрабатывает HTTP запросы для колод
type DeckHandler struct {
	deckService *service.DeckService
}

// NewDeckHandler создает новый обработчик колод
func NewDeckHandler(deckService *service.DeckService) *DeckHandler {
	return &DeckHandler{deckService: deckService}
}

// ListDecks возвращает все колоды, новые первыми
// GET /api/decks
func (h *DeckHandler) ListDecks(c *gin.Context) {
	decks, err := h.deckService.ListDecks(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, decks)
}

// CreateDeck создает колоду
// POST /api/decks
func (h *DeckHandler) CreateDeck(c *gin.Context) {
	var req dto.CreateDeckRequest
	if !bindJSON(c, &req) {
		return
	}

	deck, err := h.deckService.CreateDeck(c.Request.Context(), req.Title)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, deck)
}

// UpdateDeck меняет название колоды. Для неизвестного id отвечает 200 с null
// PUT /api/decks/:id
func (h *DeckHandler) UpdateDeck(c *gin.Context) {
	var req dto.UpdateDeckRequest
	if !bindJSON(c, &req) {
		return
	}

	deck, err := h.deckService.UpdateDeck(c.Request.Context(), c.Param("id"), req.Title)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, deck)
}

// DeleteDeck удаляет колоду (ассеты удаляются каскадом в БД)
// DELETE /api/decks/:id
func (h *DeckHandler) DeleteDeck(c *gin.Context) {
	if err := h.deckService.DeleteDeck(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Deck deleted"})
}
