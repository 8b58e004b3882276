package main

import (
	"context"
	"fmt"

	"github.com/hupe1980/kmeansviz/blobstore"
	minioblob "github.com/hupe1980/kmeansviz/blobstore/minio"
	s3blob "github.com/hupe1980/kmeansviz/blobstore/s3"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/spf13/pflag"
)

type storeFlags struct {
	kind     string
	dir      string
	bucket   string
	prefix   string
	region   string
	endpoint string
	secure   bool
}

func (f *storeFlags) register(flags *pflag.FlagSet) {
	flags.StringVar(&f.kind, "store", "local", "trace store (local, minio, s3)")
	flags.StringVar(&f.dir, "store-dir", "traces", "directory of the local trace store")
	flags.StringVar(&f.bucket, "bucket", "", "bucket of the minio or s3 trace store")
	flags.StringVar(&f.prefix, "prefix", "", "key prefix inside the bucket")
	flags.StringVar(&f.region, "region", "", "AWS region of the s3 trace store (default from AWS config)")
	flags.StringVar(&f.endpoint, "minio-endpoint", "localhost:9000", "endpoint of the minio trace store")
	flags.BoolVar(&f.secure, "minio-secure", false, "use TLS for the minio trace store")
}

// open builds the configured store. MinIO credentials are read from
// MINIO_ACCESS_KEY/MINIO_SECRET_KEY or MINIO_ROOT_USER/MINIO_ROOT_PASSWORD.
func (f *storeFlags) open(ctx context.Context) (blobstore.BlobStore, error) {
	switch f.kind {
	case "local":
		return blobstore.NewLocalStore(f.dir), nil

	case "minio":
		if f.bucket == "" {
			return nil, fmt.Errorf("--bucket is required for --store minio")
		}
		client, err := minio.New(f.endpoint, &minio.Options{
			Creds:  credentials.NewEnvMinio(),
			Secure: f.secure,
		})
		if err != nil {
			return nil, err
		}
		store := minioblob.NewStore(client, f.bucket, f.prefix)
		if err := store.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return store, nil

	case "s3":
		if f.bucket == "" {
			return nil, fmt.Errorf("--bucket is required for --store s3")
		}
		return s3blob.New(ctx, f.bucket, f.prefix, s3blob.WithRegion(f.region))

	default:
		return nil, fmt.Errorf("unknown --store %q (want local, minio or s3)", f.kind)
	}
}
