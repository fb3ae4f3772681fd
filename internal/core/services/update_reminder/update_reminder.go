package updatereminder

import (
	"context"
	"errors"
	"time"

	e "github.com/Ebbabire/call-reminder/internal/core/domain/errors"
	"github.com/Ebbabire/call-reminder/internal/core/domain/logging"
	"github.com/Ebbabire/call-reminder/internal/core/domain/reminder"
	uow "github.com/Ebbabire/call-reminder/internal/core/domain/unit_of_work"
	"github.com/Ebbabire/call-reminder/internal/core/services"
)

type Input struct {
	ReminderID          reminder.ID
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
	Status              reminder.Status
}

func (i Input) Validate() error {
	if i.DoTimezoneUpdate {
		if _, err := time.LoadLocation(i.Timezone); err != nil {
			return reminder.ErrInvalidTimezone
		}
	}
	return nil
}

type Result struct {
	Reminder reminder.Reminder
}

type service struct {
	log        logging.Logger
	unitOfWork uow.UnitOfWork
}

func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	return &service{log: log, unitOfWork: unitOfWork}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if err = input.Validate(); err != nil {
		return result, err
	}

	uow, err := s.unitOfWork.Begin(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	defer uow.Rollback(ctx)

	reminderRepository := uow.Reminders()
	rem, err := reminderRepository.GetByID(ctx, input.ReminderID)
	if err != nil {
		if errors.Is(err, reminder.ErrReminderDoesNotExist) {
			s.log.Info(ctx, "Reminder not found.", logging.Entry("input", input))
		} else {
			logging.Error(ctx, s.log, err, logging.Entry("input", input))
		}
		return result, err
	}

	if input.DoStatusUpdate && !rem.Status.CanTransitionTo(input.Status) {
		s.log.Info(
			ctx,
			"Status transition is not allowed.",
			logging.Entry("reminderID", rem.ID),
			logging.Entry("from", rem.Status),
			logging.Entry("to", input.Status),
		)
		return result, reminder.ErrInvalidStatusTransition
	}

	updatedReminder, err := reminderRepository.Update(
		ctx,
		reminder.UpdateInput{
			ID:                  input.ReminderID,
			DoTitleUpdate:       input.DoTitleUpdate,
			Title:               input.Title,
			DoMessageUpdate:     input.DoMessageUpdate,
			Message:             input.Message,
			DoPhoneNumberUpdate: input.DoPhoneNumberUpdate,
			PhoneNumber:         input.PhoneNumber,
			DoTriggerAtUpdate:   input.DoTriggerAtUpdate,
			TriggerAt:           input.TriggerAt.UTC(),
			DoTimezoneUpdate:    input.DoTimezoneUpdate,
			Timezone:            input.Timezone,
			DoStatusUpdate:      input.DoStatusUpdate,
			Status:              input.Status,
		},
	)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	if err := uow.Commit(ctx); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	result.Reminder = updatedReminder
	return result, nil
}
