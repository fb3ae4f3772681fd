package reminder

import (
	"context"
	"time"

	c "github.com/Ebbabire/call-reminder/internal/core/domain/common"
)

type CreateInput struct {
	Title       string
	Message     string
	PhoneNumber string
	TriggerAt   time.Time
	Timezone    string
	Status      Status
	CreatedAt   time.Time
}

type ReadOptions struct {
	StatusIn        c.Optional[[]Status]
	TitleILike      c.Optional[string]
	TriggerAtBefore c.Optional[time.Time]
	OrderBy         OrderBy
	Limit           c.Optional[uint]
	Offset          uint
}

type UpdateInput struct {
	ID                  ID
	DoTitleUpdate       bool
	Title               string
	DoMessageUpdate     bool
	Message             string
	DoPhoneNumberUpdate bool
	PhoneNumber         string
	DoTriggerAtUpdate   bool
	TriggerAt           time.Time
	DoTimezoneUpdate    bool
	Timezone            string
	DoStatusUpdate      bool
	Status              Status
}

type ReminderRepository interface {
	Create(ctx context.Context, input CreateInput) (Reminder, error)
	GetByID(ctx context.Context, id ID) (Reminder, error)
	Read(ctx context.Context, options ReadOptions) ([]Reminder, error)
	Count(ctx context.Context, options ReadOptions) (uint, error)
	Update(ctx context.Context, input UpdateInput) (Reminder, error)
	// FindDue returns scheduled reminders with TriggerAt at or before now,
	// in the store's native order (TriggerAt ASC, ID ASC).
	FindDue(ctx context.Context, now time.Time) ([]Reminder, error)
	Delete(ctx context.Context, id ID) error
}
