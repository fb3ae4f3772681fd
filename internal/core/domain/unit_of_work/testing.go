package uow

import (
	"context"

	"github.com/Ebbabire/call-reminder/internal/core/domain/reminder"
)

type FakeUnitOfWorkContext struct {
	ReminderRepository *reminder.TestReminderRepository
	WasRollbackCalled  bool
	WasCommitCalled    bool
}

func NewFakeUnitOfWorkContext(reminderRepository *reminder.TestReminderRepository) *FakeUnitOfWorkContext {
	return &FakeUnitOfWorkContext{ReminderRepository: reminderRepository}
}

func (c *FakeUnitOfWorkContext) Rollback(ctx context.Context) error {
	c.WasRollbackCalled = true
	return nil
}

func (c *FakeUnitOfWorkContext) Commit(ctx context.Context) error {
	c.WasCommitCalled = true
	return nil
}

func (c *FakeUnitOfWorkContext) Reminders() reminder.ReminderRepository {
	return c.ReminderRepository
}

type FakeUnitOfWork struct {
	Context    *FakeUnitOfWorkContext
	BeginError error
	BeginCount int
}

func NewFakeUnitOfWork() *FakeUnitOfWork {
	return &FakeUnitOfWork{
		Context: NewFakeUnitOfWorkContext(reminder.NewTestReminderRepository()),
	}
}

func (u *FakeUnitOfWork) Begin(ctx context.Context) (Context, error) {
	if u.BeginError != nil {
		return nil, u.BeginError
	}
	u.BeginCount++
	return u.Context, nil
}

func (u *FakeUnitOfWork) Reminders() *reminder.TestReminderRepository {
	return u.Context.ReminderRepository
}
