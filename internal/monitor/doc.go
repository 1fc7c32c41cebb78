// Package monitor turns execution backends into event streams.
//
// A Source knows how to poll one backend (Docker, a TES server, local
// processes, or the built-in demo workload) and returns a full Report
// of what it saw. The Monitor wraps a Source in a polling loop, diffs
// each report against the previous one, and pushes only the changes
// onto the engine's event bus.
//
// # Architecture
//
//	Source.Poll ──> Report ──> diff ──> TaskUpdated / TaskRemoved
//	                  │
//	                  └──────────────> BackendUpdated
//
// # Failure Containment
//
// A failed poll never stops the loop. The monitor counts consecutive
// failures, reports the backend as Degraded and then Unreachable past
// the configured threshold, and keeps polling so the backend recovers
// on its own. Tasks from the last good report are left in place; a
// backend going dark says nothing about whether its tasks are gone.
//
// # Shutdown
//
// Run watches its context only between polls. An in-flight poll runs
// against its own timeout context and finishes, sends included, before
// the loop notices the cancellation and returns.
package monitor
