// Package s3 stores avatar images in an S3-compatible object store (AWS S3,
// MinIO) and hands back the public URL the image can be fetched from.
package s3

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const avatarFolder = "avatars"

// Config captures the settings for the avatar bucket.
type Config struct {
	Endpoint      string // base endpoint, empty for AWS proper
	Region        string
	Bucket        string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string // base URL avatars are served from
}

type AvatarStore struct {
	client *s3.Client
	cfg    Config
}

// NewAvatarStore builds an S3 client with static credentials and an optional
// custom endpoint.
func NewAvatarStore(ctx context.Context, cfg Config) (*AvatarStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("s3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &AvatarStore{client: client, cfg: cfg}, nil
}

// Upload streams the file into the avatars folder under a random key and
// returns the public URL. The original filename only contributes its
// extension.
func (s *AvatarStore) Upload(ctx context.Context, file io.Reader, filename, contentType string) (string, error) {
	key := storageKey(filename)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}

	base := strings.TrimSuffix(s.cfg.PublicBaseURL, "/")
	return fmt.Sprintf("%s/%s/%s", base, s.cfg.Bucket, key), nil
}

func storageKey(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("%s/%s%s", avatarFolder, uuid.New(), ext)
}
