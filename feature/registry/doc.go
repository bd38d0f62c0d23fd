// Package registry is the core feature of the service: it turns uploaded
// voter roll dumps into persisted records and merges offline client edits
// back into the store.
//
// # Ingestion
//
// An uploaded roll file flows raw bytes -> roll.Parser -> parsed records ->
// Service.Ingest, which resolves the owning batch by name (creating it on
// first reference), stamps provenance, and bulk-inserts everything in one
// transaction. The original file is archived to object storage afterwards.
//
// # Sync
//
// The sync subpackage reconciles client-submitted create/update/delete
// batches atomically and invalidates the full-dataset snapshot cache on
// success.
//
// # Reads
//
// The full-dataset endpoint reads through the snapshot cache; batch listing
// is a thin pass over the store.
package registry
