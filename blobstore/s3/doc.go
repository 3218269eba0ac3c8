// Package s3 provides an S3 implementation of the blobstore.Store interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("snapshots/"),
//	    s3.WithRegion("eu-central-1"),
//	)
//	data, err := blobstore.ReadAll(ctx, store, "left.json.zst")
//
// URIs of the form s3://bucket/key are split with ParseURI.
package s3
