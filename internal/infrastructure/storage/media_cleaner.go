package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"github.com/Hiro-mackay/tripshare/internal/domain/service"
	"github.com/Hiro-mackay/tripshare/pkg/logger"
)

// MediaCleaner はグループ配下の写真オブジェクトを一括削除します
type MediaCleaner struct {
	client     *minio.Client
	bucketName string
}

// NewMediaCleaner は新しいMediaCleanerを作成します
func NewMediaCleaner(client *MinIOClient) *MediaCleaner {
	return &MediaCleaner{
		client:     client.Client(),
		bucketName: client.BucketName(),
	}
}

// DeleteGroupMedia はgroups/{id}/以下のオブジェクトを削除し、削除件数を返します
func (c *MediaCleaner) DeleteGroupMedia(ctx context.Context, groupID uuid.UUID) (int, error) {
	prefix := GroupMediaPrefix(groupID)

	listed := c.client.ListObjects(ctx, c.bucketName, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})

	objectsCh := make(chan minio.ObjectInfo)
	listErrCh := make(chan error, 1)
	count := 0

	go func() {
		defer close(objectsCh)
		for object := range listed {
			if object.Err != nil {
				listErrCh <- object.Err
				return
			}
			count++
			objectsCh <- object
		}
		listErrCh <- nil
	}()

	var errs []error
	for result := range c.client.RemoveObjects(ctx, c.bucketName, objectsCh, minio.RemoveObjectsOptions{}) {
		if result.Err != nil {
			errs = append(errs, fmt.Errorf("failed to delete %s: %w", result.ObjectName, result.Err))
		}
	}
	if err := <-listErrCh; err != nil {
		errs = append(errs, fmt.Errorf("failed to list %s: %w", prefix, err))
	}
	if len(errs) > 0 {
		return 0, errors.Join(errs...)
	}

	logger.Info(ctx, "group media deleted", "group_id", groupID.String(), "objects", count)
	return count, nil
}

// NoopMediaCleaner はオブジェクトストレージ未設定時に使う何もしない実装です
type NoopMediaCleaner struct{}

// DeleteGroupMedia は何も削除しません
func (NoopMediaCleaner) DeleteGroupMedia(context.Context, uuid.UUID) (int, error) {
	return 0, nil
}

var (
	_ service.GroupMediaCleaner = (*MediaCleaner)(nil)
	_ service.GroupMediaCleaner = NoopMediaCleaner{}
)
