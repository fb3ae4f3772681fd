package runtick

import (
	"context"
	"time"

	e "github.com/Ebbabire/call-reminder/internal/core/domain/errors"
	"github.com/Ebbabire/call-reminder/internal/core/domain/logging"
	"github.com/Ebbabire/call-reminder/internal/core/domain/reminder"
	"github.com/Ebbabire/call-reminder/internal/core/services"
	processduereminder "github.com/Ebbabire/call-reminder/internal/core/services/process_due_reminder"
)

type Input struct{}

// Result aggregates one tick. Found == Completed + Failed + PersistFailures.
type Result struct {
	Found           int
	Completed       int
	Failed          int
	PersistFailures int
	Outcomes        []processduereminder.Result
}

type service struct {
	log       logging.Logger
	reminders reminder.ReminderRepository
	processor services.Service[processduereminder.Input, processduereminder.Result]
	now       func() time.Time
}

func New(
	log logging.Logger,
	reminders reminder.ReminderRepository,
	processor services.Service[processduereminder.Input, processduereminder.Result],
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if reminders == nil {
		panic(e.NewNilArgumentError("reminders"))
	}
	if processor == nil {
		panic(e.NewNilArgumentError("processor"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:       log,
		reminders: reminders,
		processor: processor,
		now:       now,
	}
}

// Run executes one due-reminder check-and-process cycle. Each reminder's
// terminal status is persisted on its own through the pool-backed repository,
// so one reminder's persist failure never rolls back another's outcome and no
// transaction stays open across voice calls. An error is returned only when
// the due query itself fails; per-reminder failures are folded into the
// Result.
func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	dueReminders, err := s.reminders.FindDue(ctx, s.now())
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}

	result.Found = len(dueReminders)
	result.Outcomes = make([]processduereminder.Result, 0, len(dueReminders))

	for _, dueReminder := range dueReminders {
		outcome, _ := s.processor.Run(
			ctx,
			processduereminder.Input{Reminder: dueReminder, Reminders: s.reminders},
		)
		result.Outcomes = append(result.Outcomes, outcome)
		switch {
		case outcome.PersistFailed:
			result.PersistFailures++
		case outcome.Status == reminder.StatusCompleted:
			result.Completed++
		default:
			result.Failed++
		}
	}

	if result.Found > 0 {
		s.log.Info(
			ctx,
			"Due reminders have been processed.",
			logging.Entry("found", result.Found),
			logging.Entry("completed", result.Completed),
			logging.Entry("failed", result.Failed),
			logging.Entry("persistFailures", result.PersistFailures),
		)
	}
	return result, nil
}
