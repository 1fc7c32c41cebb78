// Package dash is the terminal dashboard. It renders published
// snapshots from the engine and feeds user input back through the
// engine's event bus.
//
// # Data Flow
//
//	engine.Current() ──▶ Model ──▶ View
//	       ▲                │
//	       │                ▼ key commands
//	   reducer ◀── bus ◀── Submit
//
// The model never mutates shared state. Each refresh tick reads the
// latest snapshot pointer; if nothing was published since the last
// look the pointer is identical and the frame reuses the previous
// rows. Sort and filter keys submit commands to the reducer and the
// change arrives in the next snapshot, so view criteria stay ordered
// with the task updates around them.
//
// Only two things are view-local: the selection cursor, anchored to a
// task id so it survives re-sorts, and the current view mode.
package dash
