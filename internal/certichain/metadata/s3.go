package metadata

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/aussiebroadwan/certichain/pkg/slogx"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/cenkalti/backoff/v4"
)

const contentType = "application/json"

// DefaultMaxAttempts bounds PutObject/HeadObject rounds per publish.
const DefaultMaxAttempts = 5

// s3API is the subset of *s3.Client used by S3Publisher.
type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, opts ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, opts ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// permanentCodes are S3 error codes that no retry can fix.
var permanentCodes = []string{
	"AccessDenied",
	"InvalidAccessKeyId",
	"SignatureDoesNotMatch",
	"NoSuchBucket",
	"InvalidBucketName",
	"EntityTooLarge",
	"InvalidArgument",
}

type S3Config struct {
	Bucket          string
	Gateway         string
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// S3Publisher writes documents to an S3 bucket under their content address
// and confirms each write with HeadObject.
type S3Publisher struct {
	client s3API
	cfg    S3Config

	// OnRetry, when set, is called before each retry.
	OnRetry func(err error)
}

func NewS3Publisher(client s3API, cfg S3Config) *S3Publisher {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.InitialInterval <= 0 {
		cfg.InitialInterval = 250 * time.Millisecond
	}
	if cfg.MaxInterval <= 0 {
		cfg.MaxInterval = 5 * time.Second
	}
	return &S3Publisher{client: client, cfg: cfg}
}

// NewS3Client loads the default AWS credential chain. A non-empty endpoint
// selects an S3 compatible service (MinIO, localstack) with path-style URLs.
func NewS3Client(ctx context.Context, region, endpoint string) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

func (p *S3Publisher) Publish(ctx context.Context, doc Document) (Publication, error) {
	data, err := Encode(doc)
	if err != nil {
		return Publication{}, fmt.Errorf("encode document: %w", err)
	}

	addr := ContentAddress(data)
	key := objectKey(addr)
	log := slogx.FromContext(ctx).With(slog.String("component", "metadata"), slog.String("content_address", addr))

	attempt := func() error {
		_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(p.cfg.Bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(data),
			ContentType: aws.String(contentType),
			Metadata:    map[string]string{"content-address": addr},
		})
		if err != nil {
			return classify(ctx, fmt.Errorf("put object: %w", err))
		}

		head, err := p.client.HeadObject(ctx, &s3.HeadObjectInput{
			Bucket: aws.String(p.cfg.Bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			return classify(ctx, fmt.Errorf("confirm object: %w", err))
		}
		if n := aws.ToInt64(head.ContentLength); n != int64(len(data)) {
			return fmt.Errorf("confirm object: stored %d bytes, want %d", n, len(data))
		}
		return nil
	}

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = p.cfg.InitialInterval
	eb.MaxInterval = p.cfg.MaxInterval
	eb.MaxElapsedTime = 0

	policy := backoff.WithContext(backoff.WithMaxRetries(eb, uint64(p.cfg.MaxAttempts-1)), ctx)

	err = backoff.RetryNotify(attempt, policy, func(err error, wait time.Duration) {
		log.Warn("publish failed, retrying", slog.Duration("wait", wait), slog.Any("err", err))
		if p.OnRetry != nil {
			p.OnRetry(err)
		}
	})
	if err != nil {
		return Publication{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	log.Debug("document published", slog.Int("bytes", len(data)))
	return Publication{ContentAddress: addr, URI: gatewayURI(p.cfg.Gateway, addr)}, nil
}

func (p *S3Publisher) Ping(ctx context.Context) error {
	_, err := p.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(p.cfg.Bucket)})
	return err
}

// classify marks errors that retrying cannot fix as permanent.
func classify(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return backoff.Permanent(err)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && slices.Contains(permanentCodes, apiErr.ErrorCode()) {
		return backoff.Permanent(err)
	}
	return err
}
