package s3

import (
	"context"
	"errors"
	"fmt"

	"github.com/minio/minio-go/v7"
)

// ObjectRepo реализует repository.ObjectRepository поверх S3-совместимого бакета
type ObjectRepo struct {
	client *minio.Client
	bucket string
}

// NewObjectRepo создает репозиторий объектов для указанного бакета
func NewObjectRepo(client *minio.Client, bucket string) *ObjectRepo {
	return &ObjectRepo{client: client, bucket: bucket}
}

// RemoveObjects удаляет объекты по ключам. Отсутствующий ключ ошибкой не считается
func (r *ObjectRepo) RemoveObjects(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}

	objects := make(chan minio.ObjectInfo, len(paths))
	for _, p := range paths {
		objects <- minio.ObjectInfo{Key: p}
	}
	close(objects)

	var errs []error
	for res := range r.client.RemoveObjects(ctx, r.bucket, objects, minio.RemoveObjectsOptions{}) {
		if res.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", res.ObjectName, res.Err))
		}
	}
	return errors.Join(errs...)
}

// Bucket возвращает имя бакета
func (r *ObjectRepo) Bucket() string {
	return r.bucket
}

// NoOpObjectRepo используется, когда хранилище не сконфигурировано
type NoOpObjectRepo struct{}

// RemoveObjects ничего не делает
func (NoOpObjectRepo) RemoveObjects(context.Context, []string) error { return nil }
