// Package cache provides the Redis-backed snapshot cache.
//
// The registry keeps one well-known key (RecordsKey) holding a serialized
// snapshot of the full record dataset. The full-dataset reader populates it
// on a miss; any writer (ingestion, sync reconciliation) invalidates it
// after a successful commit so the next read recomputes from the store.
//
// Invalidation is best effort: a failed Delete is surfaced to the logs but
// never fails the write that triggered it. Cache staleness is tolerable,
// data loss is not.
//
// The Cache interface exists so services and the reconciler can be tested
// against the mock in cache/mocks without a running Redis.
package cache
