package sqlrepo

import "todo-api/internal/domain"

// todoRecord mirrors a row of the todos table.
type todoRecord struct {
	ID        int64
	Task      string
	Completed bool
	Priority  string
}

func toDomain(rec *todoRecord) *domain.Todo {
	return &domain.Todo{
		ID:        rec.ID,
		Task:      rec.Task,
		Completed: rec.Completed,
		Priority:  rec.Priority,
	}
}

func toDomainSlice(recs []*todoRecord) []*domain.Todo {
	todos := make([]*domain.Todo, len(recs))
	for i, rec := range recs {
		todos[i] = toDomain(rec)
	}
	return todos
}
