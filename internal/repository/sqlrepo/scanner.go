package sqlrepo

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// todoColumns is the select list every scan function expects.
const todoColumns = "id, task, completed, priority"

// scanTodo scans a single todo from a database row
func scanTodo(scanner Scanner) (*todoRecord, error) {
	rec := &todoRecord{}
	if err := scanner.Scan(&rec.ID, &rec.Task, &rec.Completed, &rec.Priority); err != nil {
		return nil, err
	}
	return rec, nil
}

// scanTodos scans multiple todos from database rows
func scanTodos(rows Rows) ([]*todoRecord, error) {
	recs := []*todoRecord{}
	for rows.Next() {
		rec, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return recs, nil
}
