package createreminder

import (
	"context"
	"time"

	e "github.com/Ebbabire/call-reminder/internal/core/domain/errors"
	"github.com/Ebbabire/call-reminder/internal/core/domain/logging"
	"github.com/Ebbabire/call-reminder/internal/core/domain/reminder"
	"github.com/Ebbabire/call-reminder/internal/core/services"
)

type Input struct {
	Title        string
	Message      string
	PhoneNumber  string
	TriggerAt    time.Time
	Timezone     string
	RateLimitKey string
}

func (i Input) Validate() error {
	if _, err := time.LoadLocation(i.Timezone); err != nil {
		return reminder.ErrInvalidTimezone
	}
	return nil
}

func (i Input) GetRateLimitKey() string {
	return i.RateLimitKey
}

type Result struct {
	Reminder reminder.Reminder
}

type service struct {
	log                logging.Logger
	reminderRepository reminder.ReminderRepository
	now                func() time.Time
}

func New(
	log logging.Logger,
	reminderRepository reminder.ReminderRepository,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if reminderRepository == nil {
		panic(e.NewNilArgumentError("reminderRepository"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:                log,
		reminderRepository: reminderRepository,
		now:                now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if err = input.Validate(); err != nil {
		return result, err
	}

	createdReminder, err := s.reminderRepository.Create(
		ctx,
		reminder.CreateInput{
			Title:       input.Title,
			Message:     input.Message,
			PhoneNumber: input.PhoneNumber,
			TriggerAt:   input.TriggerAt.UTC(),
			Timezone:    input.Timezone,
			Status:      reminder.StatusScheduled,
			CreatedAt:   s.now(),
		},
	)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	s.log.Info(
		ctx,
		"Reminder has been created.",
		logging.Entry("reminderID", createdReminder.ID),
		logging.Entry("triggerAt", createdReminder.TriggerAt),
	)
	result.Reminder = createdReminder
	return result, nil
}
