// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket", "traces/", s3.WithRegion("eu-central-1"))
//	if err != nil {
//	    return err
//	}
//	err = trace.Save(ctx, store, "run-1.kmtr", tr)
//
// # Features
//
//   - Managed uploads with CRC32C integrity validation
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
