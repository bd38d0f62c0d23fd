// Package storage provides the object storage client for the roll archive.
//
// Uploaded roll files are archived to an S3-compatible bucket (MinIO or any
// S3 endpoint) for provenance: the original bytes that produced a batch can
// always be retrieved later under rolls/<batch>/<file>.
//
// The Client interface wraps the subset of minio-go operations the archive
// needs, so services can be tested against the mock in storage/mocks.
package storage
