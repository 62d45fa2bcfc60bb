package deploy

import (
	"context"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/wayfinder-dev/wayfinder/internal/config"
	"github.com/wayfinder-dev/wayfinder/internal/errors"
)

// ObjectPutter is the subset of the S3 client the deployer needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, input *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Result summarizes a completed deploy.
type Result struct {
	// Uploaded is the number of files uploaded.
	Uploaded int

	// Bytes is the total number of bytes uploaded.
	Bytes int64
}

// Deployer uploads a build output directory to an S3 bucket.
type Deployer struct {
	client ObjectPutter
	bucket string
	prefix string
	logger *slog.Logger
}

// New creates a deployer for the given deploy target.
func New(client ObjectPutter, target config.DeployConfig, logger *slog.Logger) (*Deployer, error) {
	if target.Bucket == "" {
		return nil, errors.New("E300").
			WithSuggestion(`Add "deploy": {"bucket": "my-app-site"} to wayfinder.json`)
	}
	if logger == nil {
		logger = slog.Default()
	}

	prefix := strings.Trim(target.Prefix, "/")
	if prefix != "" {
		prefix += "/"
	}

	return &Deployer{
		client: client,
		bucket: target.Bucket,
		prefix: prefix,
		logger: logger,
	}, nil
}

// NewClient builds an S3 client from the default AWS credential chain.
func NewClient(ctx context.Context, region string) (*s3.Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.New("E302").Wrap(err)
	}

	return s3.NewFromConfig(cfg), nil
}

// Deploy walks dist and uploads every file under the configured prefix.
func (d *Deployer) Deploy(ctx context.Context, dist string) (Result, error) {
	if info, err := os.Stat(dist); err != nil || !info.IsDir() {
		return Result{}, errors.New("E200").
			WithDetail("Expected build output at " + dist)
	}

	var result Result
	err := filepath.Walk(dist, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dist, p)
		if err != nil {
			return err
		}
		key := d.prefix + filepath.ToSlash(rel)

		if err := d.upload(ctx, p, key); err != nil {
			return err
		}

		d.logger.Info("uploaded", "key", key, "size", info.Size())
		result.Uploaded++
		result.Bytes += info.Size()
		return nil
	})
	if err != nil {
		if _, ok := err.(*errors.WayfinderError); ok {
			return result, err
		}
		return result, errors.New("E301").Wrap(err)
	}

	return result, nil
}

// upload puts a single file to the bucket.
func (d *Deployer) upload(ctx context.Context, path, key string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = d.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(d.bucket),
		Key:          aws.String(key),
		Body:         f,
		ContentType:  aws.String(contentTypeFor(path)),
		CacheControl: aws.String(cacheControlFor(key)),
	})
	if err != nil {
		return errors.New("E301").
			WithDetail("Failed to upload " + key).
			Wrap(err)
	}
	return nil
}

// contentTypeFor resolves a content type from the file extension.
func contentTypeFor(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".wasm":
		// Browsers need this exact type for WebAssembly streaming.
		return "application/wasm"
	case ".js", ".mjs":
		return "application/javascript"
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return "application/octet-stream"
}

// cacheControlFor picks a caching policy per object.
//
// HTML entry points must revalidate on every load so deploys take effect
// immediately; everything else is treated as a fingerprinted asset.
func cacheControlFor(key string) string {
	if strings.HasSuffix(key, ".html") {
		return "no-cache"
	}
	return "public, max-age=31536000, immutable"
}
