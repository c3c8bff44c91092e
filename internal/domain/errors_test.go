package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/todo-service/internal/domain"
)

func TestNewValidationError_NoViolations(t *testing.T) {
	t.Parallel()

	if err := domain.NewValidationError(nil); err != nil {
		t.Fatalf("NewValidationError(nil) = %v, want nil", err)
	}
	if err := domain.NewValidationError([]domain.Violation{}); err != nil {
		t.Fatalf("NewValidationError(empty) = %v, want nil", err)
	}
}

func TestValidationError_ErrorsIs(t *testing.T) {
	t.Parallel()

	err := domain.NewValidationError([]domain.Violation{{Code: "TITLE_NULL", Message: "title must not be null"}})

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorIs(t, fmt.Errorf("creating todo: %w", err), domain.ErrValidation)
}

func TestValidationError_ErrorsAsKeepsOrder(t *testing.T) {
	t.Parallel()

	original := domain.NewValidationError([]domain.Violation{
		{Code: "TITLE_NULL", Message: "title must not be null"},
		{Code: "TITLE_SIZE", Message: "title size must be between 1 and 30"},
		{Code: "DUEDATE_NULL", Message: "dueDate must not be null"},
	})
	wrapped := fmt.Errorf("operation failed: %w", original)

	var verr *domain.ValidationError
	require.ErrorAs(t, wrapped, &verr)
	assert.Equal(t, []string{"TITLE_NULL", "TITLE_SIZE", "DUEDATE_NULL"}, verr.Codes())
}

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	err := domain.NewValidationError([]domain.Violation{
		{Code: "LIMIT_MAX", Message: "limit must be less or equal to 10"},
		{Code: "OFFSET_MIN", Message: "offset must be greater or equal to 0"},
	})

	want := "validation error: LIMIT_MAX: limit must be less or equal to 10; " +
		"OFFSET_MIN: offset must be greater or equal to 0"
	assert.Equal(t, want, err.Error())
}

func TestSentinelErrors(t *testing.T) {
	t.Parallel()

	sentinels := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", domain.ErrNotFound},
		{"ErrValidation", domain.ErrValidation},
		{"ErrConflict", domain.ErrConflict},
		{"ErrUnavailable", domain.ErrUnavailable},
	}

	for _, tt := range sentinels {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			wrapped := fmt.Errorf("context: %w", tt.err)
			if !errors.Is(wrapped, tt.err) {
				t.Errorf("errors.Is(wrapped, %s) = false", tt.name)
			}
		})
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a.err, b.err) {
				t.Errorf("%s and %s should be distinct", a.name, b.name)
			}
		}
	}
}
