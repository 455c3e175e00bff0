package sqlrepo

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"todo-api/internal/errors"
)

// MockResult implements sql.Result for testing
type MockResult struct {
	rowsAffected int64
	rowsErr      error
}

func (mr *MockResult) LastInsertId() (int64, error) {
	return 0, nil
}

func (mr *MockResult) RowsAffected() (int64, error) {
	return mr.rowsAffected, mr.rowsErr
}

func TestHandleDatabaseError(t *testing.T) {
	originalErr := stderrors.New("database connection failed")
	result := HandleDatabaseError("test operation", originalErr)

	assert.True(t, errors.IsErrorType(result, errors.ErrorTypeDatabase))
	assert.Contains(t, result.Error(), "test operation")
	assert.Contains(t, result.Error(), "database connection failed")
	assert.Equal(t, "database connection failed", errors.GetUserMessage(result))
}

func TestValidateRowsAffected(t *testing.T) {
	tests := []struct {
		name         string
		result       *MockResult
		expectErr    bool
		expectedType errors.ErrorType
	}{
		{
			name:      "one row affected",
			result:    &MockResult{rowsAffected: 1},
			expectErr: false,
		},
		{
			name:         "no rows affected",
			result:       &MockResult{rowsAffected: 0},
			expectErr:    true,
			expectedType: errors.ErrorTypeNotFound,
		},
		{
			name:         "rows affected error",
			result:       &MockResult{rowsErr: stderrors.New("unsupported")},
			expectErr:    true,
			expectedType: errors.ErrorTypeDatabase,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRowsAffected(tt.result, "todo", "1")
			if !tt.expectErr {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.IsErrorType(err, tt.expectedType))
		})
	}
}

type fakeRows struct {
	rows [][]interface{}
	pos  int
	err  error
}

func (f *fakeRows) Next() bool {
	if f.pos >= len(f.rows) {
		return false
	}
	f.pos++
	return true
}

func (f *fakeRows) Scan(dest ...interface{}) error {
	row := f.rows[f.pos-1]
	*(dest[0].(*int64)) = row[0].(int64)
	*(dest[1].(*string)) = row[1].(string)
	*(dest[2].(*bool)) = row[2].(bool)
	*(dest[3].(*string)) = row[3].(string)
	return nil
}

func (f *fakeRows) Err() error {
	return f.err
}

func TestScanTodos(t *testing.T) {
	rows := &fakeRows{rows: [][]interface{}{
		{int64(1), "Learn Go", false, "medium"},
		{int64(2), "Ship it", true, "high"},
	}}

	recs, err := scanTodos(rows)
	assert.NoError(t, err)
	assert.Len(t, recs, 2)
	assert.Equal(t, &todoRecord{ID: 2, Task: "Ship it", Completed: true, Priority: "high"}, recs[1])

	todos := toDomainSlice(recs)
	assert.Equal(t, "Learn Go", todos[0].Task)
	assert.True(t, todos[1].Completed)
}

func TestScanTodos_EmptyIsNotNil(t *testing.T) {
	recs, err := scanTodos(&fakeRows{})
	assert.NoError(t, err)
	assert.NotNil(t, recs)
	assert.Empty(t, toDomainSlice(recs))
}

func TestScanTodos_RowsError(t *testing.T) {
	_, err := scanTodos(&fakeRows{err: stderrors.New("cursor broken")})
	assert.EqualError(t, err, "cursor broken")
}
