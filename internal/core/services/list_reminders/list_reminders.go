package listreminders

import (
	"context"

	c "github.com/Ebbabire/call-reminder/internal/core/domain/common"
	e "github.com/Ebbabire/call-reminder/internal/core/domain/errors"
	"github.com/Ebbabire/call-reminder/internal/core/domain/logging"
	"github.com/Ebbabire/call-reminder/internal/core/domain/reminder"
	"github.com/Ebbabire/call-reminder/internal/core/services"
)

const DEFAULT_LIMIT uint = 100

type Input struct {
	StatusIn    c.Optional[[]reminder.Status]
	TitleSearch c.Optional[string]
	OrderBy     reminder.OrderBy
	Limit       c.Optional[uint]
	Offset      uint
}

type Result struct {
	Reminders  []reminder.Reminder
	TotalCount uint
}

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
	orderBy := input.OrderBy
	if orderBy == reminder.OrderByNotSet {
		orderBy = reminder.OrderByTriggerAtAsc
	}
	limit := input.Limit
	if !limit.IsPresent {
		limit = c.NewOptional(DEFAULT_LIMIT, true)
	}
	options := reminder.ReadOptions{
		StatusIn:   input.StatusIn,
		TitleILike: input.TitleSearch,
		OrderBy:    orderBy,
		Limit:      limit,
		Offset:     input.Offset,
	}

	totalCount, err := s.reminderRepository.Count(ctx, options)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	reminders, err := s.reminderRepository.Read(ctx, options)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	result.Reminders = reminders
	result.TotalCount = totalCount
	return result, nil
}
