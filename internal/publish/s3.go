package publish

import (
	"context"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/goliatone/go-portfolio/internal/logging"
	"github.com/goliatone/go-portfolio/pkg/interfaces"
)

// s3Client is the slice of the S3 API the publisher uses.
type s3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Config identifies the upload target.
type S3Config struct {
	Bucket string
	// Prefix is prepended to every object key, e.g. "site".
	Prefix string
	Region string
}

// S3Publisher uploads the output directory to an S3 bucket.
type S3Publisher struct {
	cfg    S3Config
	client s3Client
	logger interfaces.Logger
}

// NewS3Publisher resolves AWS credentials from the environment and builds a
// publisher for cfg.Bucket.
func NewS3Publisher(ctx context.Context, cfg S3Config, provider interfaces.LoggerProvider) (*S3Publisher, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, ErrBucketRequired
	}

	opts := []func(*awsconfig.LoadOptions) error{}
	if region := strings.TrimSpace(cfg.Region); region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &S3Publisher{
		cfg:    cfg,
		client: s3.NewFromConfig(awsCfg),
		logger: logging.PublishLogger(provider),
	}, nil
}

// newS3PublisherWithClient exists for tests.
func newS3PublisherWithClient(cfg S3Config, client s3Client, provider interfaces.LoggerProvider) *S3Publisher {
	return &S3Publisher{
		cfg:    cfg,
		client: client,
		logger: logging.PublishLogger(provider),
	}
}

func (p *S3Publisher) Publish(ctx context.Context, dir string) (*Result, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, ErrDirRequired
	}
	started := time.Now()

	files, err := collectFiles(dir)
	if err != nil {
		return nil, err
	}

	result := &Result{Target: "s3://" + p.cfg.Bucket}
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		size, err := p.upload(ctx, dir, file)
		if err != nil {
			return nil, fmt.Errorf("upload %s: %w", file, err)
		}
		result.Files++
		result.Bytes += size
	}
	result.Duration = time.Since(started)

	p.logger.Info("site published",
		"bucket", p.cfg.Bucket,
		"files", result.Files,
		"bytes", result.Bytes,
		"duration", result.Duration.String())
	return result, nil
}

func (p *S3Publisher) upload(ctx context.Context, dir, file string) (int64, error) {
	handle, err := os.Open(filepath.Join(dir, filepath.FromSlash(file)))
	if err != nil {
		return 0, err
	}
	defer handle.Close()

	info, err := handle.Stat()
	if err != nil {
		return 0, err
	}

	_, err = p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(p.cfg.Bucket),
		Key:           aws.String(p.objectKey(file)),
		Body:          handle,
		ContentLength: aws.Int64(info.Size()),
		ContentType:   aws.String(detectContentType(file)),
	})
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (p *S3Publisher) objectKey(file string) string {
	prefix := strings.Trim(strings.TrimSpace(p.cfg.Prefix), "/")
	if prefix == "" {
		return file
	}
	return prefix + "/" + file
}

// collectFiles lists regular files under dir as slash paths relative to dir,
// sorted for deterministic upload order.
func collectFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func detectContentType(file string) string {
	ext := strings.ToLower(filepath.Ext(file))
	switch ext {
	case ".woff2":
		return "font/woff2"
	case ".ico":
		return "image/x-icon"
	}
	if byExt := mime.TypeByExtension(ext); byExt != "" {
		return byExt
	}
	return "application/octet-stream"
}
