// Package sync merges offline client operation batches into the
// authoritative record store.
//
// Clients cache the full dataset, work disconnected, and submit a triple of
// create/update/delete lists when they come back. The reconciler applies
// the triple as one transaction with idempotent semantics: resubmitting the
// same request creates no duplicates (creates de-duplicate by voter number
// within their batch), reapplies the same field values, and treats
// already-deleted identifiers as no-ops.
//
// Conflicts between concurrent syncs on the same record are resolved
// last-writer-wins by the store's transaction isolation; no version check
// is performed.
package sync
