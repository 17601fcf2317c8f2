package artifact

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/matzehuels/dreamhouse/pkg/cache"
	"github.com/matzehuels/dreamhouse/pkg/errors"
)

// DefaultURLExpiry is how long presigned links stay valid.
const DefaultURLExpiry = 7 * 24 * time.Hour

// S3Config configures an [S3Store].
type S3Config struct {
	Endpoint  string `toml:"endpoint"`
	Region    string `toml:"region"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	Bucket    string `toml:"bucket"`
	UseSSL    bool   `toml:"use_ssl"`
	// URLExpiry bounds presigned links. Zero means DefaultURLExpiry.
	URLExpiry time.Duration `toml:"url_expiry"`
}

// S3Store uploads artifacts to an S3-compatible bucket. The bucket is
// created on first use.
type S3Store struct {
	client *minio.Client
	bucket string
	region string
	expiry time.Duration

	initOnce sync.Once
	initErr  error
}

var _ Store = (*S3Store)(nil)

// NewS3Store validates cfg and creates the client. No request is made.
func NewS3Store(cfg S3Config) (*S3Store, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "s3 endpoint is required")
	}
	access, secret := strings.TrimSpace(cfg.AccessKey), strings.TrimSpace(cfg.SecretKey)
	if access == "" || secret == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "s3 access key and secret key are required")
	}
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "s3 bucket is required")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}
	expiry := cfg.URLExpiry
	if expiry <= 0 {
		expiry = DefaultURLExpiry
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(access, secret, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}
	return &S3Store{client: client, bucket: bucket, region: region, expiry: expiry}, nil
}

func (s *S3Store) ensureBucket(ctx context.Context) error {
	s.initOnce.Do(func() {
		exists, err := s.client.BucketExists(ctx, s.bucket)
		if err != nil {
			s.initErr = err
			return
		}
		if exists {
			return
		}
		s.initErr = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region})
	})
	return s.initErr
}

func (s *S3Store) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	if err := checkKey(key); err != nil {
		return "", err
	}
	if err := s.ensureBucket(ctx); err != nil {
		return "", errors.Wrap(errors.ErrCodeNetwork, err, "ensure bucket %s", s.bucket)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	err := cache.RetryWithBackoff(ctx, func() error {
		_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
			ContentType: contentType,
		})
		return classify(err)
	})
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeNetwork, err, "upload %s", key)
	}

	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, s.expiry, nil)
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", key, err)
	}
	return u.String(), nil
}

func (s *S3Store) Get(ctx context.Context, key string) (Object, error) {
	if err := checkKey(key); err != nil {
		return Object{}, err
	}
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return Object{}, fmt.Errorf("get %s: %w", key, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		switch minio.ToErrorResponse(err).Code {
		case "NoSuchKey", "NoSuchBucket":
			return Object{}, errNotFound(key)
		}
		return Object{}, fmt.Errorf("read %s: %w", key, err)
	}
	info, err := obj.Stat()
	ct := "application/octet-stream"
	if err == nil && info.ContentType != "" {
		ct = info.ContentType
	}
	return Object{Key: key, ContentType: ct, Data: data}, nil
}

// classify marks transport failures and server errors as retryable.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return cache.Retryable(err)
	}
	if resp := minio.ToErrorResponse(err); resp.StatusCode >= 500 {
		return cache.Retryable(err)
	}
	return err
}
