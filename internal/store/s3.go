package store

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/charmbracelet/log"

	"github.com/Waxmaker/binary-annotator-pro-sub001/internal/logging"
)

// S3Store serves byte ranges from objects in an S3 bucket using ranged
// GetObject requests. Works against AWS and MinIO-compatible endpoints.
// The fileID is the object key.
type S3Store struct {
	client *s3.Client
	bucket string
	logger *log.Logger
}

// S3Options configures an S3Store.
type S3Options struct {
	Bucket    string
	Endpoint  string // custom endpoint for MinIO; empty for AWS
	AccessKey string
	SecretKey string
	Region    string
}

// NewS3Store creates a store for the given bucket.
func NewS3Store(ctx context.Context, opts S3Options, logger *log.Logger) (*S3Store, error) {
	if logger == nil {
		logger = logging.Default()
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(opts.Region),
	}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			// MinIO serves buckets by path, not subdomain
			o.UsePathStyle = true
		}
	})

	logger.Debug("opened S3 store",
		logging.FieldBucket, opts.Bucket)

	return &S3Store{
		client: client,
		bucket: opts.Bucket,
		logger: logger,
	}, nil
}

// ReadRange fetches [offset, offset+length) of the object with a ranged
// GetObject. Ranges past end of object come back truncated.
func (s *S3Store) ReadRange(ctx context.Context, fileID string, offset, length int64) ([]byte, error) {
	if length <= 0 {
		return nil, nil
	}

	// HTTP range headers are inclusive on both ends
	rangeHeader := fmt.Sprintf("bytes=%d-%d", offset, offset+length-1)

	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(fileID),
		Range:  aws.String(rangeHeader),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s %s: %w", fileID, rangeHeader, err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read body of %s: %w", fileID, err)
	}

	s.logger.Debug("fetched object range",
		logging.FieldKey, fileID,
		logging.FieldOffset, offset,
		logging.FieldLength, len(data))

	return data, nil
}

// SizeOf returns the object's content length via HeadObject.
func (s *S3Store) SizeOf(ctx context.Context, fileID string) (int64, error) {
	result, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(fileID),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to head %s: %w", fileID, err)
	}
	if result.ContentLength == nil {
		return 0, fmt.Errorf("no content length for %s", fileID)
	}
	return *result.ContentLength, nil
}
