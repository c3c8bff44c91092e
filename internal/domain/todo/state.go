package todo

import "strings"

// State selects which todos a listing includes.
type State string

const (
	StateAll        State = "all"
	StateUnfinished State = "unfinished"
)

// ParseState matches s case-insensitively against the defined states.
func ParseState(s string) (State, bool) {
	switch State(strings.ToLower(s)) {
	case StateAll:
		return StateAll, true
	case StateUnfinished:
		return StateUnfinished, true
	default:
		return "", false
	}
}

// Includes reports whether t passes the state filter.
func (s State) Includes(t *Todo) bool {
	return s == StateAll || !t.Done
}

// String implements fmt.Stringer.
func (s State) String() string {
	return string(s)
}
