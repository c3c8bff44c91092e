package todo

import (
	"strconv"

	"github.com/jsamuelsen11/todo-service/internal/domain"
)

// Listing defaults and bounds.
const (
	DefaultState  = StateUnfinished
	DefaultLimit  = 5
	DefaultOffset = 0

	MinLimit  = 0
	MaxLimit  = 10
	MinOffset = 0
	MaxOffset = 100
)

// Query is a validated listing request. Offset is a page index, not an item
// index: the page starts at item Offset*Limit.
type Query struct {
	State  State
	Limit  int
	Offset int
}

// ParseQuery applies the defaults to every absent (empty) parameter, then
// validates all three in one pass. On failure it returns a
// *domain.ValidationError with the violations in parameter order.
func ParseQuery(state, limit, offset string) (Query, error) {
	var v []domain.Violation

	if state == "" {
		state = DefaultState.String()
	}
	s, ok := ParseState(state)
	if !ok {
		v = append(v, violationStateInvalid)
	}

	l, lv := parseBounded(limit, DefaultLimit, MinLimit, MaxLimit,
		violationLimitInvalid, violationLimitMin, violationLimitMax)
	v = append(v, lv...)

	o, ov := parseBounded(offset, DefaultOffset, MinOffset, MaxOffset,
		violationOffsetInvalid, violationOffsetMin, violationOffsetMax)
	v = append(v, ov...)

	if err := domain.NewValidationError(v); err != nil {
		return Query{}, err
	}
	return Query{State: s, Limit: l, Offset: o}, nil
}

// Start returns the index of the first item on the requested page.
func (q Query) Start() int {
	return q.Offset * q.Limit
}

func parseBounded(raw string, def, lo, hi int, invalid, tooLow, tooHigh domain.Violation) (int, []domain.Violation) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, []domain.Violation{invalid}
	}

	var v []domain.Violation
	if n < lo {
		v = append(v, tooLow)
	}
	if n > hi {
		v = append(v, tooHigh)
	}
	return n, v
}
