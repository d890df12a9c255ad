package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Asset описывает метаданные одного загруженного в бакет файла.
// Сам файл загружается клиентом напрямую в хранилище.
type Asset struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	DeckID      string    `gorm:"type:uuid;not null;index" json:"deck_id"`
	Title       string    `json:"title"`
	StoragePath string    `json:"storage_path"`
	PublicURL   string    `json:"public_url"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

// TableName возвращает имя таблицы
func (Asset) TableName() string {
	return "assets"
}

// BeforeCreate назначает идентификатор, если его не задал вызывающий код
func (a *Asset) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
