package state

// SortOrder determines task list ordering in the views.
type SortOrder int

const (
	SortByUpdated SortOrder = iota
	SortByName
	SortByStatus
	SortByProgress
)

// String returns the sort order name shown in the footer.
func (s SortOrder) String() string {
	switch s {
	case SortByUpdated:
		return "updated"
	case SortByName:
		return "name"
	case SortByStatus:
		return "status"
	case SortByProgress:
		return "progress"
	default:
		return "unknown"
	}
}

// Next cycles to the following sort order.
func (s SortOrder) Next() SortOrder {
	return SortOrder((int(s) + 1) % 4)
}

// StatusFilter narrows the task list to one status, or shows all.
type StatusFilter int

const (
	FilterAll StatusFilter = iota
	FilterQueued
	FilterRunning
	FilterCompleted
	FilterFailed
	FilterCancelled
)

// String returns the filter name shown in the footer.
func (f StatusFilter) String() string {
	switch f {
	case FilterQueued:
		return "queued"
	case FilterRunning:
		return "running"
	case FilterCompleted:
		return "completed"
	case FilterFailed:
		return "failed"
	case FilterCancelled:
		return "cancelled"
	default:
		return "all"
	}
}

// Next cycles to the following filter.
func (f StatusFilter) Next() StatusFilter {
	return StatusFilter((int(f) + 1) % 6)
}

// Matches reports whether a task status passes the filter.
func (f StatusFilter) Matches(s TaskStatus) bool {
	switch f {
	case FilterQueued:
		return s == StatusQueued
	case FilterRunning:
		return s == StatusRunning
	case FilterCompleted:
		return s == StatusCompleted
	case FilterFailed:
		return s == StatusFailed
	case FilterCancelled:
		return s == StatusCancelled
	default:
		return true
	}
}
