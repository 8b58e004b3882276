package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/hupe1980/kmeansviz/blobstore"
)

// Client is the subset of the S3 API the store uses.
// *s3.Client implements it.
type Client interface {
	manager.UploadAPIClient
	s3.ListObjectsV2APIClient
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Options configures a Store.
type Options struct {
	// Upload configures the managed uploader.
	Upload UploadConfig
	// Region overrides the region from the default AWS configuration. Only
	// used by New.
	Region string
}

// WithRegion sets the AWS region used by New.
func WithRegion(region string) func(o *Options) {
	return func(o *Options) { o.Region = region }
}

// WithUploadConfig replaces the upload settings.
func WithUploadConfig(cfg UploadConfig) func(o *Options) {
	return func(o *Options) { o.Upload = cfg }
}

// Store implements blobstore.BlobStore for S3.
type Store struct {
	client   Client
	uploader *manager.Uploader
	bucket   string
	prefix   string
	opts     Options
}

// New creates a Store from the default AWS configuration chain
// (environment, shared config, instance role).
func New(ctx context.Context, bucket, rootPrefix string, optFns ...func(o *Options)) (*Store, error) {
	opts := defaultOptions(optFns...)

	var loadOpts []func(*config.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}

	return newStore(s3.NewFromConfig(cfg), bucket, rootPrefix, opts), nil
}

// NewStore creates a new S3 blob store.
// rootPrefix is prepended to all keys (e.g. "traces/").
func NewStore(client Client, bucket, rootPrefix string, optFns ...func(o *Options)) *Store {
	return newStore(client, bucket, rootPrefix, defaultOptions(optFns...))
}

func defaultOptions(optFns ...func(o *Options)) Options {
	opts := Options{Upload: DefaultUploadConfig()}
	for _, fn := range optFns {
		fn(&opts)
	}
	return opts
}

func newStore(client Client, bucket, rootPrefix string, opts Options) *Store {
	return &Store{
		client:   client,
		uploader: newUploader(client, opts.Upload),
		bucket:   bucket,
		prefix:   rootPrefix,
		opts:     opts,
	}
}

func (s *Store) key(name string) (string, error) {
	clean, err := blobstore.CleanName(name)
	if err != nil {
		return "", err
	}
	return path.Join(s.prefix, clean), nil
}

// Put uploads a blob. S3 makes the object visible only once the upload
// completes.
func (s *Store) Put(ctx context.Context, name string, data []byte) error {
	key, err := s.key(name)
	if err != nil {
		return err
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/octet-stream"),
	}
	if s.opts.Upload.EnableChecksum {
		input.ChecksumAlgorithm = types.ChecksumAlgorithmCrc32c
	}

	_, err = s.uploader.Upload(ctx, input)
	return err
}

// Get reads a whole blob.
func (s *Store) Get(ctx context.Context, name string) ([]byte, error) {
	key, err := s.key(name)
	if err != nil {
		return nil, err
	}

	input := &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}
	if s.opts.Upload.EnableChecksum {
		input.ChecksumMode = types.ChecksumModeEnabled
	}

	resp, err := s.client.GetObject(ctx, input)
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, blobstore.ErrNotFound
		}
		var nf *types.NotFound
		if errors.As(err, &nf) {
			return nil, blobstore.ErrNotFound
		}
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	return io.ReadAll(resp.Body)
}

// Delete removes a blob.
func (s *Store) Delete(ctx context.Context, name string) error {
	key, err := s.key(name)
	if err != nil {
		return err
	}
	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

// List returns all blob names with the given prefix.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix + prefix),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, obj := range page.Contents {
			relPath := strings.TrimPrefix(aws.ToString(obj.Key), s.prefix)
			relPath = strings.TrimPrefix(relPath, "/")
			if relPath != "" {
				keys = append(keys, relPath)
			}
		}
	}
	sort.Strings(keys)
	return keys, nil
}
