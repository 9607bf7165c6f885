package storage

import (
	"context"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Config はオブジェクトストレージ接続設定を定義します
type Config struct {
	Endpoint        string // エンドポイント (例: localhost:9000)
	AccessKeyID     string // アクセスキーID
	SecretAccessKey string // シークレットアクセスキー
	BucketName      string // 写真を保存するバケット
	UseSSL          bool   // SSL使用有無
	Region          string // リージョン
}

// MinIOClient はS3互換ストレージへの接続を保持します
type MinIOClient struct {
	client *minio.Client
	config Config
}

// NewMinIOClient は新しいMinIOClientを作成します
func NewMinIOClient(cfg Config) (*MinIOClient, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &MinIOClient{
		client: client,
		config: cfg,
	}, nil
}

// Client は内部のminio.Clientを返します
func (m *MinIOClient) Client() *minio.Client {
	return m.client
}

// BucketName はバケット名を返します
func (m *MinIOClient) BucketName() string {
	return m.config.BucketName
}

// Health はバケットへの到達性を確認します
func (m *MinIOClient) Health(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.config.BucketName)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("bucket %s does not exist", m.config.BucketName)
	}
	return nil
}
