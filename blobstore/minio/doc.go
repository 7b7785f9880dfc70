// Package minio provides a BlobStore implementation using the MinIO client.
//
// Use it for snapshot buckets on MinIO or other S3-compatible servers.
//
// # Basic Usage
//
//	store, err := minioblob.New(minioblob.Config{
//	    Endpoint:  "localhost:9000",
//	    AccessKey: "minioadmin",
//	    SecretKey: "minioadmin",
//	    Bucket:    "my-bucket",
//	    Prefix:    "snapshots/",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	docs, err := source.NewLoader(store).LoadPrefix(ctx, "people/")
//
// # Features
//
//   - Works with any S3-compatible storage (Ceph, Garage, SeaweedFS)
//   - No AWS SDK dependency
//
// Use NewStore to pass a preconfigured *minio.Client instead.
//
// Reads from an open blob are pinned to the ETag seen by Open. Blobs are
// written with ContentType.
package minio
