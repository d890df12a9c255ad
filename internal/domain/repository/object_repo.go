package repository

import "context"

// ObjectRepository удаляет бинарные объекты из бакета хранилища
type ObjectRepository interface {
	RemoveObjects(ctx context.Context, paths []string) error
}
