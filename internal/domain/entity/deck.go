package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Deck представляет именованную коллекцию ассетов.
// Удаление колоды каскадно удаляет ее ассеты (внешний ключ в миграции)
type Deck struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

// TableName возвращает имя таблицы
func (Deck) TableName() string {
	return "decks"
}

// BeforeCreate назначает идентификатор, если его не задал вызывающий код
func (d *Deck) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
