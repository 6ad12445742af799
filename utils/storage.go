package utils

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// R2Client wraps the S3 client + bucket name. It uploads product images
// when there is no backend to receive them.
type R2Client struct {
	S3     *s3.Client
	Bucket string
	domain string
}

func NewR2Client(ctx context.Context, r2 R2Config) (*R2Client, error) {
	if !r2.Enabled() {
		return nil, fmt.Errorf("missing R2 env vars (R2_BUCKET, R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY, R2_ENDPOINT)")
	}

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(r2.AccessKey, r2.SecretKey, ""),
		),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("r2 config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(r2.Endpoint)
		o.UsePathStyle = true // required for R2
	})

	return &R2Client{S3: client, Bucket: r2.Bucket, domain: r2.PublicDomain}, nil
}

// UploadImage stores one image under products/<slug>/ and returns its public URL.
func (r *R2Client) UploadImage(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	objectName := ImageObjectName(filename, time.Now())

	ct := contentType
	if ct == "" {
		ct = mime.TypeByExtension(strings.ToLower(filepath.Ext(filename)))
	}
	if ct == "" {
		ct = "application/octet-stream"
	}

	_, err := r.S3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.Bucket),
		Key:         aws.String(objectName),
		Body:        body,
		ContentType: aws.String(ct),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", filename, err)
	}
	return r.publicURL(objectName), nil
}

// ImageObjectName builds "products/<slug of base name>/<unix nanos><ext>".
func ImageObjectName(filename string, at time.Time) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".bin"
	}
	slug := GenerateSlug(strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)))
	if slug == "" {
		slug = "image"
	}
	return fmt.Sprintf("products/%s/%d%s", slug, at.UnixNano(), ext)
}

// publicURL builds the public URL for a stored object from R2_PUBLIC_DOMAIN,
// e.g. "https://files.yourdomain.com" or "https://pub-xxx.r2.dev".
func (r *R2Client) publicURL(objectName string) string {
	return fmt.Sprintf("%s/%s/%s", r.domain, r.Bucket, objectName)
}
