// Package minio provides a BlobStore implementation using the MinIO client.
//
// It works with MinIO and other S3-compatible storage systems like Ceph,
// SeaweedFS and Garage, without pulling in the AWS SDK.
//
// # Basic Usage
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	    Secure: false,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	store := minioblob.NewStore(client, "traces", "kmeans/")
//	err = trace.Save(ctx, store, "run-1.kmtr", tr)
package minio
