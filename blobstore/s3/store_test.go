package s3

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/hupe1980/kmeansviz/blobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var _ blobstore.BlobStore = (*Store)(nil)

func TestStore_Put(t *testing.T) {
	mockClient := new(MockS3Client)
	store := NewStore(mockClient, "test-bucket", "prefix")

	var body string
	mockClient.On("PutObject", mock.Anything, mock.MatchedBy(func(input *s3.PutObjectInput) bool {
		return *input.Bucket == "test-bucket" && *input.Key == "prefix/run.kmtr" &&
			input.ChecksumAlgorithm == types.ChecksumAlgorithmCrc32c
	})).Run(func(args mock.Arguments) {
		input := args.Get(1).(*s3.PutObjectInput)
		b, _ := io.ReadAll(input.Body)
		body = string(b)
	}).Return(&s3.PutObjectOutput{}, nil).Once()

	require.NoError(t, store.Put(context.Background(), "run.kmtr", []byte("content")))
	assert.Equal(t, "content", body)
	mockClient.AssertExpectations(t)
}

func TestStore_PutWithoutChecksum(t *testing.T) {
	mockClient := new(MockS3Client)
	cfg := DefaultUploadConfig()
	cfg.EnableChecksum = false
	store := NewStore(mockClient, "b", "", WithUploadConfig(cfg))

	mockClient.On("PutObject", mock.Anything, mock.MatchedBy(func(input *s3.PutObjectInput) bool {
		return *input.Bucket == "b" && *input.Key == "run.kmtr"
	})).Return(&s3.PutObjectOutput{}, nil).Once()

	require.NoError(t, store.Put(context.Background(), "run.kmtr", []byte("x")))
	mockClient.AssertExpectations(t)
}

func TestStore_Get(t *testing.T) {
	mockClient := new(MockS3Client)
	store := NewStore(mockClient, "test-bucket", "prefix")

	t.Run("NotFound", func(t *testing.T) {
		mockClient.On("GetObject", mock.Anything, mock.MatchedBy(func(input *s3.GetObjectInput) bool {
			return *input.Key == "prefix/foo"
		})).Return(nil, &types.NoSuchKey{}).Once()

		_, err := store.Get(context.Background(), "foo")
		assert.ErrorIs(t, err, blobstore.ErrNotFound)
	})

	t.Run("Success", func(t *testing.T) {
		mockClient.On("GetObject", mock.Anything, mock.MatchedBy(func(input *s3.GetObjectInput) bool {
			return *input.Bucket == "test-bucket" && *input.Key == "prefix/bar" &&
				input.ChecksumMode == types.ChecksumModeEnabled
		})).Return(&s3.GetObjectOutput{
			Body: io.NopCloser(strings.NewReader("hello")),
		}, nil).Once()

		data, err := store.Get(context.Background(), "bar")
		require.NoError(t, err)
		assert.Equal(t, "hello", string(data))
	})

	t.Run("OtherError", func(t *testing.T) {
		boom := errors.New("boom")
		mockClient.On("GetObject", mock.Anything, mock.Anything).Return(nil, boom).Once()

		_, err := store.Get(context.Background(), "baz")
		assert.ErrorIs(t, err, boom)
	})

	t.Run("InvalidName", func(t *testing.T) {
		_, err := store.Get(context.Background(), "../up")
		assert.ErrorIs(t, err, blobstore.ErrInvalidName)
	})
}

func TestStore_Delete(t *testing.T) {
	mockClient := new(MockS3Client)
	store := NewStore(mockClient, "test-bucket", "prefix")

	mockClient.On("DeleteObject", mock.Anything, mock.MatchedBy(func(input *s3.DeleteObjectInput) bool {
		return *input.Bucket == "test-bucket" && *input.Key == "prefix/del"
	})).Return(&s3.DeleteObjectOutput{}, nil).Once()

	assert.NoError(t, store.Delete(context.Background(), "del"))
	mockClient.AssertExpectations(t)
}

func TestStore_List(t *testing.T) {
	mockClient := new(MockS3Client)
	store := NewStore(mockClient, "test-bucket", "prefix/")

	mockClient.On("ListObjectsV2", mock.Anything, mock.MatchedBy(func(input *s3.ListObjectsV2Input) bool {
		return *input.Bucket == "test-bucket" && *input.Prefix == "prefix/runs/"
	})).Return(&s3.ListObjectsV2Output{
		Contents: []types.Object{
			{Key: aws.String("prefix/runs/b.kmtr")},
			{Key: aws.String("prefix/runs/a.kmtr")},
		},
	}, nil).Once()

	keys, err := store.List(context.Background(), "runs/")
	require.NoError(t, err)
	assert.Equal(t, []string{"runs/a.kmtr", "runs/b.kmtr"}, keys)
}

func TestStore_List_Pagination(t *testing.T) {
	mockClient := new(MockS3Client)
	store := NewStore(mockClient, "test-bucket", "prefix/")

	// Page 1
	mockClient.On("ListObjectsV2", mock.Anything, mock.MatchedBy(func(input *s3.ListObjectsV2Input) bool {
		return input.ContinuationToken == nil
	})).Return(&s3.ListObjectsV2Output{
		IsTruncated:           aws.Bool(true),
		NextContinuationToken: aws.String("token"),
		Contents:              []types.Object{{Key: aws.String("prefix/1")}},
	}, nil).Once()

	// Page 2
	mockClient.On("ListObjectsV2", mock.Anything, mock.MatchedBy(func(input *s3.ListObjectsV2Input) bool {
		return input.ContinuationToken != nil && *input.ContinuationToken == "token"
	})).Return(&s3.ListObjectsV2Output{
		IsTruncated: aws.Bool(false),
		Contents:    []types.Object{{Key: aws.String("prefix/2")}},
	}, nil).Once()

	keys, err := store.List(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, keys)
}
