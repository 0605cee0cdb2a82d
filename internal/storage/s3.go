// Package storage menyediakan object storage S3-compatible untuk lampiran
// (bukti reimbursement, foto karyawan, PDF slip gaji).
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	PublicURL string // base URL publik; default ke endpoint/bucket
}

type StoredObject struct {
	Key string
	URL string
}

//go:generate mockgen -source=s3.go -destination=mock/storage_mock.go -package=mock
type ObjectStorage interface {
	Put(ctx context.Context, data []byte, fileName, contentType, folder, ownerID string) (StoredObject, error)
	Delete(ctx context.Context, key string) error
	KeyFromURL(rawURL string) string
}

// S3ObjectStorage kompatibel dengan AWS S3, MinIO, dan storage sejenis.
type S3ObjectStorage struct {
	client    *s3.Client
	bucket    string
	publicURL string
	logger    *zap.Logger
}

func NewS3ObjectStorage(cfg Config, logger *zap.Logger) (*S3ObjectStorage, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, errors.New("storage credentials are required")
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = "http://localhost:9000"
	}
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		if cfg.UseSSL {
			endpoint = "https://" + endpoint
		} else {
			endpoint = "http://" + endpoint
		}
	}
	if _, err := url.Parse(endpoint); err != nil {
		return nil, fmt.Errorf("invalid storage endpoint: %w", err)
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = true
		o.BaseEndpoint = aws.String(endpoint)
	})

	publicURL := cfg.PublicURL
	if publicURL == "" {
		publicURL = strings.TrimSuffix(endpoint, "/") + "/" + cfg.Bucket
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &S3ObjectStorage{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimSuffix(publicURL, "/"),
		logger:    logger.Named("storage.s3"),
	}, nil
}

// EnsureBucket membuat bucket saat startup kalau belum ada.
func (s *S3ObjectStorage) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err == nil {
		return nil
	}

	var notFound *types.NotFound
	var noSuchBucket *types.NoSuchBucket
	if !errors.As(err, &notFound) && !errors.As(err, &noSuchBucket) {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	s.logger.Info("creating storage bucket", zap.String("bucket", s.bucket))
	_, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		var alreadyOwned *types.BucketAlreadyOwnedByYou
		if errors.As(err, &alreadyOwned) {
			return nil
		}
		return fmt.Errorf("failed to create bucket: %w", err)
	}

	return nil
}

// Put mengunggah data dan mengembalikan key + URL publiknya.
// Key: <folder>/<ownerID>/<uuid><ext> agar unik dan gampang dibersihkan per owner.
func (s *S3ObjectStorage) Put(
	ctx context.Context,
	data []byte,
	fileName, contentType, folder, ownerID string,
) (StoredObject, error) {
	if len(data) == 0 {
		return StoredObject{}, errors.New("empty file")
	}

	ext := path.Ext(fileName)
	key := fmt.Sprintf("%s/%s/%s%s", folder, ownerID, uuid.NewString(), ext)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return StoredObject{}, fmt.Errorf("failed to upload object: %w", err)
	}

	s.logger.Debug("object uploaded",
		zap.String("key", key),
		zap.Int("size", len(data)),
	)

	return StoredObject{
		Key: key,
		URL: s.publicURL + "/" + key,
	}, nil
}

// Delete menghapus object. Pemanggil yang memutuskan apakah error
// di-swallow (best-effort cleanup) atau tidak.
func (s *S3ObjectStorage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errors.New("storage key is required")
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}

	return nil
}

// KeyFromURL mengubah URL publik kembali menjadi storage key.
// Mengembalikan string kosong kalau URL bukan milik bucket ini.
func (s *S3ObjectStorage) KeyFromURL(rawURL string) string {
	prefix := s.publicURL + "/"
	if !strings.HasPrefix(rawURL, prefix) {
		return ""
	}
	return strings.TrimPrefix(rawURL, prefix)
}
