package service

import (
	"context"

	"github.com/yourusername/deck-api/internal/domain/entity"
	"github.com/yourusername/deck-api/internal/domain/repository"
	apperrors "github.com/yourusername/deck-api/internal/pkg/errors"
	"github.com/yourusername/deck-api/pkg/logger"
	"github.com/yourusername/deck-api/pkg/metrics"
)

// DeckService транслирует операции над колодами в вызовы репозитория.
// Кроме проверки обязательных полей бизнес-логики нет: уникальность,
// ссылочная целостность и каскадное удаление обеспечивает БД.
type DeckService struct {
	deckRepo repository.DeckRepository
	log      *logger.Logger
	metrics  *metrics.Manager
}

// NewDeckService создает новый сервис колод
func NewDeckService(deckRepo repository.DeckRepository, log *logger.Logger, m *metrics.Manager) *DeckService {
	return &DeckService{
		deckRepo: deckRepo,
		log:      log.With("component", "DeckService"),
		metrics:  m,
	}
}

// ListDecks возвращает все колоды, новые первыми
func (s *DeckService) ListDecks(ctx context.Context) ([]entity.Deck, error) {
	decks, err := s.deckRepo.List(ctx)
	s.metrics.ObserveBackend("decks.list", err)
	if err != nil {
		return nil, apperrors.NewBackendError("decks.list", err)
	}
	return decks, nil
}

// CreateDeck создает колоду с непустым названием
func (s *DeckService) CreateDeck(ctx context.Context, title string) (*entity.Deck, error) {
	if title == "" {
		return nil, apperrors.NewValidationError("title is required")
	}

	deck := &entity.Deck{Title: title}
	err := s.deckRepo.Create(ctx, deck)
	s.metrics.ObserveBackend("decks.create", err)
	if err != nil {
		return nil, apperrors.NewBackendError("decks.create", err)
	}

	s.log.Debug("deck created", "deck_id", deck.ID)
	return deck, nil
}

// UpdateDeck меняет название колоды.
// Существование не проверяется: для неизвестного id возвращается (nil, nil)
func (s *DeckService) UpdateDeck(ctx context.Context, id, title string) (*entity.Deck, error) {
	if title == "" {
		return nil, apperrors.NewValidationError("title is required")
	}

	deck, err := s.deckRepo.UpdateTitle(ctx, id, title)
	s.metrics.ObserveBackend("decks.update", err)
	if err != nil {
		return nil, apperrors.NewBackendError("decks.update", err)
	}
	return deck, nil
}

// DeleteDeck удаляет колоду. Ассеты удаляются каскадом в БД,
// объекты в бакете при этом не трогаются
func (s *DeckService) DeleteDeck(ctx context.Context, id string) error {
	err := s.deckRepo.Delete(ctx, id)
	s.metrics.ObserveBackend("decks.delete", err)
	if err != nil {
		return apperrors.NewBackendError("decks.delete", err)
	}

	s.log.Debug("deck deleted", "deck_id", id)
	return nil
}
