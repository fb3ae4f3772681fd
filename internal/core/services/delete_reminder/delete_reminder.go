package deletereminder

import (
	"context"
	"errors"

	e "github.com/Ebbabire/call-reminder/internal/core/domain/errors"
	"github.com/Ebbabire/call-reminder/internal/core/domain/logging"
	"github.com/Ebbabire/call-reminder/internal/core/domain/reminder"
	"github.com/Ebbabire/call-reminder/internal/core/services"
)

type Input struct {
	ReminderID reminder.ID
}

type Result struct{}

type service struct {
	log                logging.Logger
	reminderRepository reminder.ReminderRepository
}

func New(
	log logging.Logger,
	reminderRepository reminder.ReminderRepository,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if reminderRepository == nil {
		panic(e.NewNilArgumentError("reminderRepository"))
	}
	return &service{log: log, reminderRepository: reminderRepository}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	err = s.reminderRepository.Delete(ctx, input.ReminderID)
	if err != nil {
		if errors.Is(err, reminder.ErrReminderDoesNotExist) {
			s.log.Info(ctx, "Reminder not found.", logging.Entry("input", input))
		} else {
			logging.Error(ctx, s.log, err, logging.Entry("input", input))
		}
		return result, err
	}
	s.log.Info(ctx, "Reminder has been deleted.", logging.Entry("reminderID", input.ReminderID))
	return result, nil
}
