package services

import (
	"github.com/Ebbabire/call-reminder/internal/app/deps"
	drl "github.com/Ebbabire/call-reminder/internal/core/domain/rate_limiter"
	"github.com/Ebbabire/call-reminder/internal/core/services"
	createreminder "github.com/Ebbabire/call-reminder/internal/core/services/create_reminder"
	deletereminder "github.com/Ebbabire/call-reminder/internal/core/services/delete_reminder"
	getreminder "github.com/Ebbabire/call-reminder/internal/core/services/get_reminder"
	listreminders "github.com/Ebbabire/call-reminder/internal/core/services/list_reminders"
	processduereminder "github.com/Ebbabire/call-reminder/internal/core/services/process_due_reminder"
	ratelimiting "github.com/Ebbabire/call-reminder/internal/core/services/rate_limiting"
	runtick "github.com/Ebbabire/call-reminder/internal/core/services/run_tick"
	updatereminder "github.com/Ebbabire/call-reminder/internal/core/services/update_reminder"
)

type Services struct {
	CreateReminder services.Service[createreminder.Input, createreminder.Result]
	GetReminder    services.Service[getreminder.Input, getreminder.Result]
	ListReminders  services.Service[listreminders.Input, listreminders.Result]
	UpdateReminder services.Service[updatereminder.Input, updatereminder.Result]
	DeleteReminder services.Service[deletereminder.Input, deletereminder.Result]

	ProcessDueReminder services.Service[processduereminder.Input, processduereminder.Result]
	RunTick            services.Service[runtick.Input, runtick.Result]
}

func InitServices(deps *deps.Deps) *Services {
	s := &Services{}

	s.CreateReminder = ratelimiting.WithRateLimiting(
		deps.Logger,
		deps.RateLimiter,
		drl.Limit{Interval: drl.Minute, Value: deps.Config.CreateReminderRateLimitPerMinute},
		createreminder.New(
			deps.Logger,
			deps.ReminderRepository,
			deps.Now,
		),
	)
	s.GetReminder = getreminder.New(
		deps.Logger,
		deps.ReminderRepository,
	)
	s.ListReminders = listreminders.New(
		deps.Logger,
		deps.ReminderRepository,
	)
	s.UpdateReminder = updatereminder.New(
		deps.Logger,
		deps.UnitOfWork,
	)
	s.DeleteReminder = deletereminder.New(
		deps.Logger,
		deps.ReminderRepository,
	)

	s.ProcessDueReminder = processduereminder.New(
		deps.Logger,
		deps.VoiceCaller,
	)
	s.RunTick = runtick.New(
		deps.Logger,
		deps.ReminderRepository,
		s.ProcessDueReminder,
		deps.Now,
	)

	return s
}
