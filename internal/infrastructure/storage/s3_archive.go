// Package storage archives raw channel responses in object storage.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/erp/orderbridge/internal/domain/integration"
	infraconfig "github.com/erp/orderbridge/internal/infrastructure/config"
)

// S3ChannelResponseArchive writes failed channel exchanges to an S3-compatible
// bucket (AWS S3, MinIO, RustFS) as one JSON object per attempt
type S3ChannelResponseArchive struct {
	client *s3.Client
	bucket string
	prefix string
	logger *zap.Logger
}

// S3ArchiveOption is a functional option for configuring S3ChannelResponseArchive
type S3ArchiveOption func(*S3ChannelResponseArchive)

// WithLogger sets a custom logger
func WithLogger(logger *zap.Logger) S3ArchiveOption {
	return func(a *S3ChannelResponseArchive) {
		a.logger = logger
	}
}

// archivedResponse is the stored object body
type archivedResponse struct {
	RecordID               string                       `json:"record_id"`
	StoreID                string                       `json:"store_id"`
	PlatformCode           integration.PlatformCode     `json:"platform_code"`
	MarketplaceName        string                       `json:"marketplace_name"`
	MarketplaceOrderNumber string                       `json:"mp_order_number"`
	Status                 integration.SyncStatus       `json:"status"`
	ErrorMessage           string                       `json:"error_message,omitempty"`
	SyncedAt               time.Time                    `json:"synced_at"`
	Response               *integration.ChannelResponse `json:"channel_response"`
}

// NewS3ChannelResponseArchive creates an archive from configuration. Without
// static keys the default AWS credential chain is used.
func NewS3ChannelResponseArchive(ctx context.Context, cfg *infraconfig.StorageConfig, opts ...S3ArchiveOption) (*S3ChannelResponseArchive, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}
	if (cfg.AccessKeyID == "") != (cfg.SecretAccessKey == "") {
		return nil, errors.New("storage access key id and secret access key must be set together")
	}

	endpoint := cfg.Endpoint
	if endpoint != "" {
		if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
			endpoint = "https://" + endpoint
		}
		if _, err := url.Parse(endpoint); err != nil {
			return nil, fmt.Errorf("invalid storage endpoint: %w", err)
		}
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	})

	archive := &S3ChannelResponseArchive{
		client: client,
		bucket: cfg.Bucket,
		prefix: strings.Trim(cfg.Prefix, "/"),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(archive)
	}
	return archive, nil
}

// Archive stores the response and returns the object key
func (a *S3ChannelResponseArchive) Archive(ctx context.Context, record *integration.OrderSyncRecord, response *integration.ChannelResponse) (string, error) {
	if record == nil {
		return "", errors.New("sync record is required")
	}

	body, err := json.Marshal(archivedResponse{
		RecordID:               record.ID.String(),
		StoreID:                record.StoreID,
		PlatformCode:           record.PlatformCode,
		MarketplaceName:        record.MarketplaceName,
		MarketplaceOrderNumber: record.MarketplaceOrderNumber,
		Status:                 record.Status,
		ErrorMessage:           record.ErrorMessage,
		SyncedAt:               record.SyncedAt.UTC(),
		Response:               response,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode archived response: %w", err)
	}

	key := a.ObjectKey(record)
	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to archive channel response: %w", err)
	}

	a.logger.Debug("channel response archived",
		zap.String("bucket", a.bucket),
		zap.String("key", key),
	)
	return key, nil
}

// ObjectKey is <prefix>/<store>/<yyyy>/<mm>/<dd>/<mp order>-<record id>.json
func (a *S3ChannelResponseArchive) ObjectKey(record *integration.OrderSyncRecord) string {
	day := record.SyncedAt.UTC().Format("2006/01/02")
	name := fmt.Sprintf("%s-%s.json", safeSegment(record.MarketplaceOrderNumber), record.ID)
	return path.Join(a.prefix, safeSegment(record.StoreID), day, name)
}

// Bucket returns the bucket name
func (a *S3ChannelResponseArchive) Bucket() string {
	return a.bucket
}

// safeSegment keeps marketplace order numbers such as "112-3/4" from
// introducing extra key levels
func safeSegment(s string) string {
	if s == "" {
		return "_"
	}
	return strings.NewReplacer("/", "_", "\\", "_", " ", "_").Replace(s)
}

var _ integration.ChannelResponseArchive = (*S3ChannelResponseArchive)(nil)
