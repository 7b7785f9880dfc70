// Package s3 provides an Amazon S3 implementation of blobstore.WritableStore.
//
// # Usage
//
//	cfg, err := config.LoadDefaultConfig(ctx)
//	store := s3.NewStore(awss3.NewFromConfig(cfg), "my-bucket", "snapshots/")
//
//	loader := source.NewLoader(store)
//	docs, err := loader.LoadPrefix(ctx, "people/")
//
// # Features
//
//   - Range reads through GetObject
//   - Multipart uploads for large snapshots
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
