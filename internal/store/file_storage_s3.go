package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-accounts/internal/config"
	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// s3API is the subset of *s3.Client used by s3FileStorage.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// s3FileStorage keeps attachment blobs in an S3-compatible bucket. The
// reference recorded for a file is its object key.
type s3FileStorage struct {
	client s3API
	bucket string
	logger *logger.Logger
}

// NewS3FileStorage builds an S3 client from cfg. Static credentials are used
// when both keys are set, otherwise the default AWS credential chain. A
// custom endpoint (MinIO) switches to path-style addressing.
func NewS3FileStorage(ctx context.Context, cfg config.S3, log *logger.Logger) (FileStorage, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: loading aws config: %w", ErrStoringFile, err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	log.Debug().Str("bucket", cfg.Bucket).Msg("creating s3 file storage")
	return newS3FileStorage(client, cfg.Bucket, log), nil
}

func newS3FileStorage(client s3API, bucket string, log *logger.Logger) *s3FileStorage {
	return &s3FileStorage{client: client, bucket: bucket, logger: log}
}

func (s *s3FileStorage) Save(ctx context.Context, key string, upload models.FileUpload) (string, error) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   upload.Content,
	}
	if upload.ContentType != "" {
		input.ContentType = aws.String(upload.ContentType)
	}
	if upload.Size > 0 {
		input.ContentLength = aws.Int64(upload.Size)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*s3FileStorage.Save").Str("key", key).Msg("put object failed")
		return "", fmt.Errorf("%w: put %s: %w", ErrStoringFile, key, err)
	}

	return key, nil
}

func (s *s3FileStorage) Delete(ctx context.Context, ref string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(ref),
	})
	if err != nil {
		return fmt.Errorf("%w: delete %s: %w", ErrStoringFile, ref, err)
	}

	return nil
}
