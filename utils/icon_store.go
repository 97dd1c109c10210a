// utils/icon_store.go
package utils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gosimple/slug"
)

// MaxIconSize caps admin icon uploads before they reach R2.
const MaxIconSize = 2 * 1024 * 1024

var iconExtensions = map[string]bool{
	".png":  true,
	".svg":  true,
	".webp": true,
	".jpg":  true,
	".jpeg": true,
}

// IconStore uploads achievement and badge icons to the Cloudflare R2 bucket
// and hands back CDN URLs for the catalog rows.
type IconStore struct {
	client     *s3.Client
	bucket     string
	cdnBaseURL string
}

// NewIconStoreFromEnv wires the store from CLOUDFLARE_ACCOUNT_ID, the R2_*
// credentials and CDN_BASE_URL.
func NewIconStoreFromEnv() (*IconStore, error) {
	accountID := os.Getenv("CLOUDFLARE_ACCOUNT_ID")
	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID)

	cdnBase := os.Getenv("CDN_BASE_URL")
	if cdnBase == "" {
		cdnBase = endpoint
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion("auto"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			os.Getenv("R2_ACCESS_KEY_ID"), os.Getenv("R2_ACCESS_KEY_SECRET"), "",
		)),
		config.WithEndpointResolver(aws.EndpointResolverFunc(
			func(service, region string) (aws.Endpoint, error) {
				return aws.Endpoint{URL: endpoint}, nil
			}),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load R2 config: %w", err)
	}

	return &IconStore{
		client:     s3.NewFromConfig(cfg),
		bucket:     os.Getenv("R2_BUCKET_NAME"),
		cdnBaseURL: cdnBase,
	}, nil
}

// IconKey builds a stable object key like "icons/badges/night-owl.png" from a
// human-readable name. Unrecognized extensions fall back to .png so the key
// never carries arbitrary suffixes.
func IconKey(kind, name, originalFilename string) string {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	if !iconExtensions[ext] {
		ext = ".png"
	}
	return fmt.Sprintf("icons/%s/%s%s", kind, slug.Make(name), ext)
}

// UploadIcon pushes a multipart icon to R2 under a slugged key and returns
// the public URL to store on the catalog row.
func (s *IconStore) UploadIcon(ctx context.Context, fileHeader *multipart.FileHeader, kind, name string) (string, error) {
	if fileHeader.Size > MaxIconSize {
		return "", fmt.Errorf("icon exceeds %d bytes", MaxIconSize)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open icon: %w", err)
	}
	defer file.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, file); err != nil {
		return "", fmt.Errorf("failed to read icon: %w", err)
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := IconKey(kind, name, fileHeader.Filename)
	if _, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        buf,
		ContentType: aws.String(contentType),
	}); err != nil {
		return "", fmt.Errorf("failed to upload icon to R2: %w", err)
	}

	return fmt.Sprintf("%s/%s", s.cdnBaseURL, key), nil
}
