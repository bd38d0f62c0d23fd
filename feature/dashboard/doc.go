// Package dashboard serves the aggregate counts the frontend dashboard
// shows: total records, total batches, and the friend/enemy classification
// tallies. It is a thin read pass over the store with no state of its own.
package dashboard
