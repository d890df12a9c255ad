package postgres

import (
	"context"

	"github.com/yourusername/deck-api/internal/domain/entity"
	"gorm.io/gorm"
)

// DeckRepo реализует repository.DeckRepository
type DeckRepo struct {
	db *gorm.DB
}

// NewDeckRepo создает новый репозиторий колод
func NewDeckRepo(db *gorm.DB) *DeckRepo {
	return &DeckRepo{db: db}
}

// List возвращает все колоды, отсортированные по created_at DESC
func (r *DeckRepo) List(ctx context.Context) ([]entity.Deck, error) {
	decks := make([]entity.Deck, 0)
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&decks).Error; err != nil {
		return nil, err
	}
	return decks, nil
}

// Create вставляет новую колоду
func (r *DeckRepo) Create(ctx context.Context, deck *entity.Deck) error {
	return r.db.WithContext(ctx).Create(deck).Error
}

// UpdateTitle обновляет название и перечитывает запись.
// Несуществующий id не является ошибкой: возвращается (nil, nil)
func (r *DeckRepo) UpdateTitle(ctx context.Context, id, title string) (*entity.Deck, error) {
	var updated *entity.Deck
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.Deck{}).Where("id = ?", id).Update("title", title)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		var decks []entity.Deck
		if err := tx.Where("id = ?", id).Limit(1).Find(&decks).Error; err != nil {
			return err
		}
		if len(decks) > 0 {
			updated = &decks[0]
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete удаляет колоду по ID. Ассеты удаляются каскадно на уровне БД
func (r *DeckRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Deck{}).Error
}
