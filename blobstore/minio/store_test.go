package minio

import (
	"context"
	"os"
	"testing"

	"github.com/hupe1980/kmeansviz/blobstore"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Key(t *testing.T) {
	store := NewStore(nil, "bucket", "traces/")

	key, err := store.key("run-1.kmtr")
	require.NoError(t, err)
	assert.Equal(t, "traces/run-1.kmtr", key)

	_, err = store.key("../escape")
	assert.ErrorIs(t, err, blobstore.ErrInvalidName)
}

// TestStore_Integration requires a running MinIO instance.
// Skip if not available.
func TestStore_Integration(t *testing.T) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		endpoint = "localhost:9000"
	}
	bucket := "test-kmeansviz"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
		Secure: false,
	})
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx := context.Background()

	// Check if MinIO is reachable
	if _, err = client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	store := NewStore(client, bucket, "test-prefix/")
	require.NoError(t, store.EnsureBucket(ctx))

	data := []byte("hello minio world")
	require.NoError(t, store.Put(ctx, "test.kmtr", data))

	got, err := store.Get(ctx, "test.kmtr")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, names, "test.kmtr")

	require.NoError(t, store.Delete(ctx, "test.kmtr"))

	_, err = store.Get(ctx, "test.kmtr")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)

	// Deleting again is a no-op.
	require.NoError(t, store.Delete(ctx, "test.kmtr"))
}
