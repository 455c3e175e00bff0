package domain

// DefaultPriority is assigned to a to-do created without a priority.
const DefaultPriority = "medium"

// Todo represents a single to-do item in the domain model.
// This is a pure domain model without storage-specific concerns.
type Todo struct {
	ID        int64  `json:"id"`
	Task      string `json:"task"`
	Completed bool   `json:"completed"`
	Priority  string `json:"priority"`
}

// NewTodo creates a not-yet-persisted Todo. An empty priority falls back to
// DefaultPriority.
func NewTodo(task, priority string) Todo {
	if priority == "" {
		priority = DefaultPriority
	}
	return Todo{
		Task:     task,
		Priority: priority,
	}
}

// String returns the task text for display purposes.
func (t Todo) String() string {
	return t.Task
}

// Complete returns a copy of the todo marked as completed.
func (t Todo) Complete() Todo {
	t.Completed = true
	return t
}

// TodoPatch carries a partial update. A nil field means "leave unchanged".
type TodoPatch struct {
	Task      *string
	Completed *bool
	Priority  *string
}

// IsEmpty reports whether the patch changes nothing.
func (p TodoPatch) IsEmpty() bool {
	return p.Task == nil && p.Completed == nil && p.Priority == nil
}

// Apply returns t with the present patch fields applied.
func (p TodoPatch) Apply(t Todo) Todo {
	if p.Task != nil {
		t.Task = *p.Task
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	return t
}
