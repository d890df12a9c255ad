package repository

import (
	"context"

	"github.com/yourusername/deck-api/internal/domain/entity"
)

// DeckRepository определяет методы для работы с колодами
type DeckRepository interface {
	// List возвращает все колоды, новые первыми
	List(ctx context.Context) ([]entity.Deck, error)

	// Create вставляет колоду и заполняет назначенные бэкендом поля
	Create(ctx context.Context, deck *entity.Deck) error

	// UpdateTitle меняет название и возвращает первую обновленную запись.
	// Если запись не найдена, возвращает (nil, nil)
	UpdateTitle(ctx context.Context, id, title string) (*entity.Deck, error)

	// Delete удаляет колоду. Отсутствие записи ошибкой не считается
	Delete(ctx context.Context, id string) error
}
