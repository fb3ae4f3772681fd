package reminder

import "time"

type ID int64

// Reminder is a future phone call request. TriggerAt is always UTC;
// Timezone is a display hint and never participates in the due check.
type Reminder struct {
	ID          ID
	Title       string
	Message     string
	PhoneNumber string
	TriggerAt   time.Time
	Timezone    string
	Status      Status
	CreatedAt   time.Time
}

// IsDue reports whether the reminder must be processed at the given moment.
func (r *Reminder) IsDue(now time.Time) bool {
	return r.Status == StatusScheduled && !r.TriggerAt.After(now)
}
