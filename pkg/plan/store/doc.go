// Package store loads plans out of the backing log and rewrites them back
// into it.
//
// Loading is a pure scan: starting from the working pointer's entry, the
// run of entries whose headers decode and share the current entry's tag is
// collected in both directions, then every member's full description is
// decoded into a task. A single undecodable body fails the whole load.
//
// Saving transforms the current plan into a caller-supplied target task
// list using only the log's primitive operations. Destructive steps are
// guarded by pre-flight checks (emptiness of removed entries, validity of
// referenced keys, encodability of every target task) so the common
// failure modes are detected before any mutation is issued. Once mutation
// begins there is no rollback: a failing backing-log call leaves the log
// in the state the last successful call produced, except that the
// throwaway anchor entries bracketing the rewrite are cleaned up on every
// exit path.
//
// The store assumes the caller serializes mutating operations against one
// repository; it is not safe for concurrent invocation on shared state.
package store
