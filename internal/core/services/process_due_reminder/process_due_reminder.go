package processduereminder

import (
	"context"
	"fmt"

	"github.com/Ebbabire/call-reminder/internal/core/domain/call"
	c "github.com/Ebbabire/call-reminder/internal/core/domain/common"
	e "github.com/Ebbabire/call-reminder/internal/core/domain/errors"
	"github.com/Ebbabire/call-reminder/internal/core/domain/logging"
	"github.com/Ebbabire/call-reminder/internal/core/domain/reminder"
	"github.com/Ebbabire/call-reminder/internal/core/services"
)

// Input carries the due reminder together with the pool-backed repository.
// The status update commits on its own, independent of every other reminder
// in the tick.
type Input struct {
	Reminder  reminder.Reminder
	Reminders reminder.ReminderRepository
}

// Result is the explicit per-reminder outcome the tick driver aggregates.
// PersistFailed means the terminal status could not be saved; the reminder
// then remains scheduled and is due again on the next tick.
type Result struct {
	ReminderID    reminder.ID
	Status        reminder.Status
	CallID        c.Optional[string]
	ErrorMessage  c.Optional[string]
	PersistFailed bool
}

type service struct {
	log         logging.Logger
	voiceCaller call.VoiceCaller
}

func New(
	log logging.Logger,
	voiceCaller call.VoiceCaller,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if voiceCaller == nil {
		panic(e.NewNilArgumentError("voiceCaller"))
	}
	return &service{log: log, voiceCaller: voiceCaller}
}

// Run processes exactly one due reminder to a terminal outcome. It never
// returns an error: this is the isolation boundary, nothing that happens
// here may abort the tick or the reminders after this one.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	rem := input.Reminder
	result.ReminderID = rem.ID
	result.Status = rem.Status

	s.log.Info(
		ctx,
		"Processing due reminder.",
		logging.Entry("reminderID", rem.ID),
		logging.Entry("title", rem.Title),
		logging.Entry("phoneNumber", rem.PhoneNumber),
	)

	outcome := s.placeCall(ctx, rem)

	status := reminder.StatusFailed
	if outcome.Success {
		status = reminder.StatusCompleted
		s.log.Info(
			ctx,
			"Call has been triggered successfully.",
			logging.Entry("reminderID", rem.ID),
			logging.Entry("callID", outcome.CallID.Value),
		)
	} else {
		s.log.Error(
			ctx,
			"Call could not be triggered.",
			logging.Entry("reminderID", rem.ID),
			logging.Entry("errorMessage", outcome.ErrorMessage.Value),
		)
	}

	_, updateErr := input.Reminders.Update(
		ctx,
		reminder.UpdateInput{
			ID:             rem.ID,
			DoStatusUpdate: true,
			Status:         status,
		},
	)
	if updateErr != nil {
		// Secondary failure: the reminder keeps whatever status the store
		// holds and will be revisited on the next tick.
		logging.Error(
			ctx,
			s.log,
			updateErr,
			logging.Entry("reminderID", rem.ID),
			logging.Entry("status", status),
		)
		result.PersistFailed = true
		result.CallID = outcome.CallID
		result.ErrorMessage = outcome.ErrorMessage
		return result, nil
	}

	result.Status = status
	result.CallID = outcome.CallID
	result.ErrorMessage = outcome.ErrorMessage
	return result, nil
}

// placeCall shields the tick from a misbehaving caller implementation:
// a panic becomes an ordinary failure outcome.
func (s *service) placeCall(ctx context.Context, rem reminder.Reminder) (outcome call.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error(
				ctx,
				"Voice caller panicked.",
				logging.Entry("reminderID", rem.ID),
				logging.Entry("panic", r),
			)
			outcome = call.Failed(fmt.Sprintf("unexpected fault: %v", r))
		}
	}()

	return s.voiceCaller.PlaceCall(
		ctx,
		call.Request{
			PhoneNumber: rem.PhoneNumber,
			Message:     rem.Message,
			Title:       rem.Title,
		},
	)
}
