// Package todo holds the Todo entity together with the rules that govern it:
// field validation, listing query validation and page selection.
package todo

import (
	"time"
	"unicode/utf8"

	"github.com/jsamuelsen11/todo-service/internal/domain"
)

// DueDateLayout is the layout due dates are parsed with. Fractional seconds
// are accepted on input and kept to DueDatePrecision; output uses
// time.RFC3339Nano so they round-trip.
const DueDateLayout = time.RFC3339

// DueDatePrecision is the finest due date resolution every store can hold.
const DueDatePrecision = time.Microsecond

// Field length bounds, counted in characters (runes), inclusive.
const (
	TitleMinLength       = 1
	TitleMaxLength       = 30
	DescriptionMaxLength = 500
)

// Todo is a titled, described, dated, completable task.
type Todo struct {
	ID          int64
	Title       string
	Description string
	DueDate     time.Time
	Done        bool

	// DueDateMissing marks a due date that was absent or unparseable when
	// the todo was decoded. Any DueDate value, the zero time included, is
	// otherwise a real instant.
	DueDateMissing bool
}

// Validate checks the field rules for create and update. It returns a
// *domain.ValidationError listing every violation in rule order, or nil.
func (t *Todo) Validate() error {
	return domain.NewValidationError(t.Violations())
}

// Violations evaluates every field rule independently.
func (t *Todo) Violations() []domain.Violation {
	var v []domain.Violation

	if t.Title == "" {
		v = append(v, violationTitleNull)
	}
	if n := utf8.RuneCountInString(t.Title); n < TitleMinLength || n > TitleMaxLength {
		v = append(v, violationTitleSize)
	}
	if utf8.RuneCountInString(t.Description) > DescriptionMaxLength {
		v = append(v, violationDescriptionSize)
	}
	if t.DueDateMissing {
		v = append(v, violationDueDateNull)
	}

	return v
}

// ParseDueDate parses raw with DueDateLayout. It reports false for an empty
// or malformed value. The returned time is in UTC, truncated to
// DueDatePrecision.
func ParseDueDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	d, err := time.Parse(DueDateLayout, raw)
	if err != nil {
		return time.Time{}, false
	}
	return d.UTC().Truncate(DueDatePrecision), true
}

// FormatDueDate renders d the way ParseDueDate accepts it.
func FormatDueDate(d time.Time) string {
	return d.UTC().Format(time.RFC3339Nano)
}
