package export

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/spigell/cvwizard/internal/wizard"
)

// S3Config describes an S3-compatible bucket.
type S3Config struct {
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Prefix    string `mapstructure:"prefix"`
	PathStyle bool   `mapstructure:"path-style"`
}

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3 uploads the HTML rendition of the document to a bucket.
type S3 struct {
	client objectPutter
	bucket string
	prefix string
	now    func() time.Time
}

// NewS3 creates an S3 exporter with static credentials.
func NewS3(ctx context.Context, cfg S3Config, accessKey, secretKey string) (*S3, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, errors.New("s3 bucket is required")
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
	}

	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
		config.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.PathStyle
	})

	return newS3(client, cfg), nil
}

func newS3(client objectPutter, cfg S3Config) *S3 {
	return &S3{
		client: client,
		bucket: cfg.Bucket,
		prefix: strings.Trim(cfg.Prefix, "/"),
		now:    time.Now,
	}
}

func (e *S3) Name() string { return "s3" }

func (e *S3) Export(ctx context.Context, doc *wizard.Document) (string, error) {
	name, data, err := Encode(doc, FormatHTML)
	if err != nil {
		return "", err
	}

	created := doc.CreatedAt
	if created.IsZero() {
		created = e.now()
	}
	key := path.Join(e.prefix, strings.TrimSuffix(name, ".html")+"-"+created.UTC().Format("20060102T150405Z")+".html")

	_, err = e.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.bucket),
		Key:         aws.String(key),
		Body:        strings.NewReader(string(data)),
		ContentType: aws.String("text/html; charset=utf-8"),
	})
	if err != nil {
		if isNoSuchBucket(err) {
			return "", fmt.Errorf("bucket %s does not exist: %w", e.bucket, err)
		}
		return "", fmt.Errorf("failed to upload %s to bucket %s: %w", key, e.bucket, err)
	}

	return "s3://" + e.bucket + "/" + key, nil
}

func isNoSuchBucket(err error) bool {
	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return true
	}

	// S3-compatible services may not return the SDK error types.
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "NoSuchBucket"
	}

	return false
}
