package reminder

import (
	"context"
	"sync"
	"time"
)

// TestReminderRepository is an in-memory repository for tests. Error fields
// make the corresponding method fail; UpdateErrorFor fails updates for
// specific reminders only.
type TestReminderRepository struct {
	CreateError    error
	GetError       error
	ReadError      error
	ReadWith       []ReadOptions
	CountError     error
	CountResult    uint
	CountWith      []ReadOptions
	UpdateError    error
	UpdateErrorFor map[ID]error
	UpdateWith     []UpdateInput
	FindDueError   error
	FindDueWith    []time.Time
	DeleteError    error
	Deleted        []ID

	Reminders []Reminder
	nextID    ID
	lock      sync.Mutex
}

func NewTestReminderRepository() *TestReminderRepository {
	return &TestReminderRepository{UpdateErrorFor: make(map[ID]error)}
}

func (r *TestReminderRepository) Create(ctx context.Context, input CreateInput) (rem Reminder, err error) {
	if r.CreateError != nil {
		return rem, r.CreateError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.nextID++
	rem = Reminder{
		ID:          r.nextID,
		Title:       input.Title,
		Message:     input.Message,
		PhoneNumber: input.PhoneNumber,
		TriggerAt:   input.TriggerAt,
		Timezone:    input.Timezone,
		Status:      input.Status,
		CreatedAt:   input.CreatedAt,
	}
	r.Reminders = append(r.Reminders, rem)
	return rem, nil
}

func (r *TestReminderRepository) GetByID(ctx context.Context, id ID) (rem Reminder, err error) {
	if r.GetError != nil {
		return rem, r.GetError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, stored := range r.Reminders {
		if stored.ID == id {
			return stored, nil
		}
	}
	return rem, ErrReminderDoesNotExist
}

func (r *TestReminderRepository) Read(ctx context.Context, options ReadOptions) ([]Reminder, error) {
	if r.ReadError != nil {
		return nil, r.ReadError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.ReadWith = append(r.ReadWith, options)
	return r.Reminders, nil
}

func (r *TestReminderRepository) Count(ctx context.Context, options ReadOptions) (uint, error) {
	if r.CountError != nil {
		return 0, r.CountError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.CountWith = append(r.CountWith, options)
	return r.CountResult, nil
}

func (r *TestReminderRepository) Update(ctx context.Context, input UpdateInput) (rem Reminder, err error) {
	if r.UpdateError != nil {
		return rem, r.UpdateError
	}
	if err, ok := r.UpdateErrorFor[input.ID]; ok && err != nil {
		return rem, err
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.UpdateWith = append(r.UpdateWith, input)
	for ix := range r.Reminders {
		if r.Reminders[ix].ID != input.ID {
			continue
		}
		if input.DoTitleUpdate {
			r.Reminders[ix].Title = input.Title
		}
		if input.DoMessageUpdate {
			r.Reminders[ix].Message = input.Message
		}
		if input.DoPhoneNumberUpdate {
			r.Reminders[ix].PhoneNumber = input.PhoneNumber
		}
		if input.DoTriggerAtUpdate {
			r.Reminders[ix].TriggerAt = input.TriggerAt
		}
		if input.DoTimezoneUpdate {
			r.Reminders[ix].Timezone = input.Timezone
		}
		if input.DoStatusUpdate {
			r.Reminders[ix].Status = input.Status
		}
		return r.Reminders[ix], nil
	}
	return rem, ErrReminderDoesNotExist
}

func (r *TestReminderRepository) FindDue(ctx context.Context, now time.Time) ([]Reminder, error) {
	if r.FindDueError != nil {
		return nil, r.FindDueError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.FindDueWith = append(r.FindDueWith, now)
	due := make([]Reminder, 0)
	for _, stored := range r.Reminders {
		if stored.IsDue(now) {
			due = append(due, stored)
		}
	}
	return due, nil
}

func (r *TestReminderRepository) Delete(ctx context.Context, id ID) error {
	if r.DeleteError != nil {
		return r.DeleteError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, stored := range r.Reminders {
		if stored.ID == id {
			r.Reminders = append(r.Reminders[:ix], r.Reminders[ix+1:]...)
			r.Deleted = append(r.Deleted, id)
			return nil
		}
	}
	return ErrReminderDoesNotExist
}
