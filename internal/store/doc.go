// Package store provides a SQLite-backed catalog of rendered statements.
//
// Each statement is saved under a unique name with the entity it selects
// from. Saving an existing name replaces the text and bumps the revision.
//
// # Ordering
//
// Listing orders by seq, the logical insertion order, never by wall time.
// Re-saving a name keeps its original seq.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL
//   - busy_timeout=5000: Wait for locks up to 5 seconds
package store
