package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ReportStore archives final game reports to an S3-compatible bucket
// (DigitalOcean Spaces in production).
type ReportStore struct {
	client     *s3.Client
	bucket     string
	region     string
	ReportRoot string
}

func NewReportStore(spacesKey, spacesSecret, region, bucket, reportRoot string) (*ReportStore, error) {
	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: fmt.Sprintf("https://%s.digitaloceanspaces.com", region),
		}, nil
	})

	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithEndpointResolverWithOptions(resolver),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(spacesKey, spacesSecret, "")),
		awsconfig.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load Spaces config: %w", err)
	}

	return &ReportStore{
		client:     s3.NewFromConfig(cfg),
		bucket:     bucket,
		region:     region,
		ReportRoot: strings.Trim(reportRoot, "/"),
	}, nil
}

func (s *ReportStore) key(sessionID int64) string {
	return fmt.Sprintf("%s/session-%d.md", s.ReportRoot, sessionID)
}

// Put uploads one final report as Markdown.
func (s *ReportStore) Put(ctx context.Context, sessionID int64, report string) error {
	key := s.key(sessionID)
	contentType := "text/markdown"

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		Body:        strings.NewReader(report),
		ContentType: &contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload report %s: %w", key, err)
	}
	return nil
}

// Get fetches an archived report, mainly for support tooling.
func (s *ReportStore) Get(ctx context.Context, sessionID int64) (string, error) {
	key := s.key(sessionID)
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	})
	if err != nil {
		return "", fmt.Errorf("failed to fetch report %s: %w", key, err)
	}
	defer out.Body.Close()

	var b strings.Builder
	buf := make([]byte, 32*1024)
	for {
		n, err := out.Body.Read(buf)
		b.Write(buf[:n])
		if err != nil {
			break
		}
	}
	return b.String(), nil
}

// PublicURL is where the uploaded report is served from.
func (s *ReportStore) PublicURL(sessionID int64) string {
	return fmt.Sprintf("https://%s.%s.digitaloceanspaces.com/%s", s.bucket, s.region, s.key(sessionID))
}
