package reminder

import "errors"

var ErrParseStatus = errors.New("invalid status")

type Status struct {
	v string
}

func (s Status) String() string {
	return s.v
}

// IsTerminal reports whether no further transitions may occur.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// CanTransitionTo enforces the one-way scheduled -> {completed, failed} rule.
func (s Status) CanTransitionTo(next Status) bool {
	if s == next {
		return true
	}
	return s == StatusScheduled && next.IsTerminal()
}

func ParseStatus(value string) (Status, error) {
	switch value {
	case "scheduled":
		return StatusScheduled, nil
	case "completed":
		return StatusCompleted, nil
	case "failed":
		return StatusFailed, nil
	default:
		return StatusUnknown, ErrParseStatus
	}
}

var (
	StatusUnknown   = Status{}
	StatusScheduled = Status{v: "scheduled"}
	StatusCompleted = Status{v: "completed"}
	StatusFailed    = Status{v: "failed"}
)
