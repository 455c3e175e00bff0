package domain

// ListFilter represents the criteria for listing to-dos.
// A nil Completed selects every record.
type ListFilter struct {
	Completed *bool
}

// CompletedFilter builds a filter selecting todos whose completed flag equals completed.
func CompletedFilter(completed bool) ListFilter {
	return ListFilter{Completed: &completed}
}

// Matches reports whether t satisfies the filter.
func (f ListFilter) Matches(t Todo) bool {
	if f.Completed == nil {
		return true
	}
	return t.Completed == *f.Completed
}
