package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/sbilibin2017/users-api/internal/logger"
)

const s3KeyPrefix = "profile-images"

// S3ObjectAPI is the part of the S3 client used by S3Storage.
type S3ObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Storage uploads files to an S3 compatible bucket.
type S3Storage struct {
	client   S3ObjectAPI
	bucket   string
	endpoint string
	region   string
}

// S3Config holds the connection settings of S3Storage.
type S3Config struct {
	Region       string
	AccessKey    string
	SecretKey    string
	BaseEndpoint string
	Bucket       string
}

// NewS3Storage builds an S3 client with static credentials.
// A BaseEndpoint switches to path-style addressing for MinIO and similar servers.
func NewS3Storage(ctx context.Context, cfg S3Config) (*S3Storage, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return NewS3StorageWithClient(client, cfg.Bucket, cfg.BaseEndpoint, cfg.Region), nil
}

// NewS3StorageWithClient wraps an existing client.
func NewS3StorageWithClient(client S3ObjectAPI, bucket, endpoint, region string) *S3Storage {
	return &S3Storage{client: client, bucket: bucket, endpoint: endpoint, region: region}
}

// Save uploads content under a generated key and returns the object URL.
func (s *S3Storage) Save(ctx context.Context, originalName, contentType string, content io.Reader) (string, error) {
	// The SDK signs the payload, which needs a seekable body over plain HTTP.
	body, err := io.ReadAll(content)
	if err != nil {
		return "", err
	}

	key := s3KeyPrefix + "/" + GenerateFilename(originalName)

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String(contentType),
	})

	logger.Log.Infow("object stored",
		"bucket", s.bucket,
		"key", key,
		"result", len(body),
		"error", err,
	)

	if err != nil {
		return "", err
	}
	return s.objectURL(key), nil
}

// Delete removes an object previously returned by Save.
func (s *S3Storage) Delete(ctx context.Context, location string) error {
	key := s3KeyPrefix + "/" + path.Base(location)

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})

	logger.Log.Infow("object removed",
		"bucket", s.bucket,
		"key", key,
		"error", err,
	)
	return err
}

func (s *S3Storage) objectURL(key string) string {
	if s.endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(s.endpoint, "/"), s.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}
