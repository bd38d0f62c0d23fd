package registry

import "errors"

var (
	// ErrNoRecords means an ingestion was asked to persist zero records.
	ErrNoRecords = errors.New("no records to ingest")
	// ErrNoBatchName means an ingestion was requested without a batch name.
	ErrNoBatchName = errors.New("batch name is required")
	// ErrNoFile means the upload carried no file payload.
	ErrNoFile = errors.New("no roll file provided")
)
