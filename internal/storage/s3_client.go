package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type S3Config struct {
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	Endpoint  string
	Prefix    string
}

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Archiver copies the error log to a bucket so it outlives the host.
type Archiver struct {
	cfg S3Config
	s3  objectPutter
	now func() time.Time
}

func NewArchiver(ctx context.Context, cfg S3Config) (*Archiver, error) {
	if cfg.Region == "" || cfg.Bucket == "" {
		return nil, errors.New("s3 region and bucket are required")
	}

	var opts []func(*config.LoadOptions) error
	opts = append(opts, config.WithRegion(cfg.Region))

	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			endpoint := cfg.Endpoint
			if parsed, err := url.Parse(endpoint); err == nil {
				endpoint = parsed.String()
			}
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return newArchiver(cfg, s3Client), nil
}

func newArchiver(cfg S3Config, putter objectPutter) *Archiver {
	if cfg.Prefix == "" {
		cfg.Prefix = "error-logs"
	}
	return &Archiver{cfg: cfg, s3: putter, now: time.Now}
}

// Archive uploads the file at path and returns the object key. A missing or
// empty file is not an error: there is nothing to archive.
func (a *Archiver) Archive(ctx context.Context, path string) (string, error) {
	if a == nil {
		return "", errors.New("s3 archiver not initialized")
	}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() == 0 {
		return "", nil
	}

	key := a.objectKey(path)
	_, err = a.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.cfg.Bucket),
		Key:           aws.String(key),
		Body:          f,
		ContentLength: aws.Int64(info.Size()),
		ContentType:   aws.String("application/x-ndjson"),
		ACL:           types.ObjectCannedACLPrivate,
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return key, nil
}

func (a *Archiver) objectKey(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stamp := a.now().UTC().Format("20060102T150405Z")
	return strings.Join([]string{a.cfg.Prefix, strings.TrimSuffix(base, ext) + "-" + stamp + ext}, "/")
}
