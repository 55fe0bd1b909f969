package persistence

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/dataforge/gateway/internal/monitoring"
)

// S3 writes each evidence bundle as one JSON object, key
// "evidence/<asset>/<bundle_id>.json", to an object store — the
// durable archive tier alongside the relational index.
type S3 struct {
	client *s3.Client
	bucket string
	logger *monitoring.Logger
}

// NewS3 loads credentials from the standard AWS chain and targets
// bucket in region.
func NewS3(ctx context.Context, bucket, region string, logger *monitoring.Logger) (*S3, error) {
	if region == "" {
		region = "us-east-1"
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return &S3{client: s3.NewFromConfig(cfg), bucket: bucket, logger: logger}, nil
}

func (s *S3) Persist(ctx context.Context, bundle EvidenceBundle) error {
	body, err := json.Marshal(bundle)
	if err != nil {
		return fmt.Errorf("marshal bundle: %w", err)
	}

	key := fmt.Sprintf("evidence/%s/%s.json", bundle.Asset, bundle.BundleID)
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		Body:        bytes.NewReader(body),
		ContentType: awsString("application/json"),
	})
	return err
}

func (s *S3) Close() error { return nil }

func awsString(s string) *string { return &s }
