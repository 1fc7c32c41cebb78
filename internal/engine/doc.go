// Package engine implements the concurrent state-sync core behind the
// dashboard: independent pollers feed partial updates into a bounded event
// bus, a single-writer reducer merges them into one consistent state, and
// immutable snapshots hand that state to the render side without either
// side blocking the other.
//
// # Architecture
//
// The core is a single-writer pipeline:
//
//	monitors / user input -> Bus -> Reducer -> AppState -> Publisher -> views
//
// Monitors never touch state directly; they only emit events. The Reducer
// is the only goroutine that mutates AppState, which is what lets the
// stores run without locks of their own.
//
// # Key Components
//
//	Bus       - Bounded multi-producer channel with cooperative backoff sends
//	Reducer   - Single consumer loop applying events and enforcing invariants
//	Snapshot  - Immutable, revision-stamped view of tasks and backends
//	Publisher - Atomic snapshot handoff, with pause freeze support
//	Engine    - Lifecycle: wires the pieces, starts runners, ordered shutdown
//
// # Event Flow
//
//  1. A monitor polls its source and emits TaskUpdated/BackendUpdated events
//  2. The Reducer drains the bus greedily, applying a batch at a time
//  3. Each applied event bumps the revision exactly once; malformed events
//     are dropped and counted, never fatal
//  4. After each batch the Reducer publishes a fresh Snapshot
//  5. The render side compares revisions and skips redraws when unchanged
//
// # Shutdown Ordering
//
// Stop cancels the runner context, letting each monitor finish its
// in-flight poll; waits for all producers; closes the bus; then waits for
// the Reducer to drain the remaining events and publish a final snapshot.
// No event that made it onto the bus is lost.
package engine
