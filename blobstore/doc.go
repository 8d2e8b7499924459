// Package blobstore resolves dataset and result locations to readable and
// writable streams. Plain paths map to the local filesystem; s3://bucket/key
// URIs map to an S3 object store.
package blobstore
