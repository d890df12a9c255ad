// Package testutil содержит вспомогательные функции для тестов с реальной БД.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// schema повторяет миграцию 000001 в диалекте SQLite, включая ON DELETE CASCADE
var schema = []string{
	`CREATE TABLE decks (
		id         TEXT PRIMARY KEY,
		title      TEXT NOT NULL,
		created_at DATETIME NOT NULL
	)`,
	`CREATE TABLE assets (
		id           TEXT PRIMARY KEY,
		deck_id      TEXT NOT NULL REFERENCES decks (id) ON DELETE CASCADE,
		title        TEXT,
		storage_path TEXT,
		public_url   TEXT,
		created_at   DATETIME NOT NULL
	)`,
}

// NewSQLiteDB открывает in-memory SQLite с включенными внешними ключами
// и создает таблицы decks и assets. БД закрывается по завершении теста
func NewSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Каждое соединение к :memory: видит свою БД, поэтому держим ровно одно
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	for _, stmt := range schema {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}
