package uow

import (
	"context"

	"github.com/Ebbabire/call-reminder/internal/core/domain/reminder"
)

type Context interface {
	Rollback(ctx context.Context) error
	Commit(ctx context.Context) error

	Reminders() reminder.ReminderRepository
}

type UnitOfWork interface {
	Begin(ctx context.Context) (Context, error)
}
