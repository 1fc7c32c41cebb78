// Package state holds the dashboard's data model: task and backend records,
// their resource sample rings, and the view criteria. The engine's reducer
// is the only writer; everything else reads through published snapshots.
package state

import "github.com/taskdeck/taskdeck/internal/intern"

// AppState is the mutable root owned by the reducer. Revision counts applied
// events and Rejected counts dropped ones. Snapshots copy the map headers,
// so a record must be cloned before mutation once it has been published.
type AppState struct {
	Interner *intern.Table
	Tasks    map[intern.ID]*TaskRecord
	Backends map[intern.ID]*BackendRecord

	Revision uint64
	Rejected uint64
	Paused   bool

	Filter        StatusFilter
	BackendFilter intern.ID
	Sort          SortOrder
}

// NewAppState returns an empty state with a fresh intern table.
func NewAppState() *AppState {
	return &AppState{
		Interner: intern.NewTable(),
		Tasks:    make(map[intern.ID]*TaskRecord),
		Backends: make(map[intern.ID]*BackendRecord),
	}
}
