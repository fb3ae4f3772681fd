package app

import (
	"net/http"

	"github.com/Ebbabire/call-reminder/internal/app/deps"
	"github.com/Ebbabire/call-reminder/internal/app/services"
	"github.com/Ebbabire/call-reminder/internal/http/handlers/health"
	createreminder "github.com/Ebbabire/call-reminder/internal/http/handlers/reminders/create_reminder"
	deletereminder "github.com/Ebbabire/call-reminder/internal/http/handlers/reminders/delete_reminder"
	getreminder "github.com/Ebbabire/call-reminder/internal/http/handlers/reminders/get_reminder"
	listreminders "github.com/Ebbabire/call-reminder/internal/http/handlers/reminders/list_reminders"
	updatereminder "github.com/Ebbabire/call-reminder/internal/http/handlers/reminders/update_reminder"
	tickevents "github.com/Ebbabire/call-reminder/internal/http/handlers/scheduler/tick_events"
	triggertick "github.com/Ebbabire/call-reminder/internal/http/handlers/scheduler/trigger_tick"
	"github.com/Ebbabire/call-reminder/internal/scheduler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func InitHttpServer(deps *deps.Deps, s *services.Services, sched *scheduler.Scheduler) *http.Server {
	reminderRouter := chi.NewRouter()
	reminderRouter.Method(http.MethodPost, "/", createreminder.New(s.CreateReminder))
	reminderRouter.Method(http.MethodGet, "/", listreminders.New(s.ListReminders))
	reminderRouter.Method(http.MethodGet, "/{reminderID:[0-9]+}", getreminder.New(s.GetReminder))
	reminderRouter.Method(http.MethodPatch, "/{reminderID:[0-9]+}", updatereminder.New(s.UpdateReminder))
	reminderRouter.Method(http.MethodDelete, "/{reminderID:[0-9]+}", deletereminder.New(s.DeleteReminder))

	schedulerRouter := chi.NewRouter()
	schedulerRouter.Method(http.MethodPost, "/tick", triggertick.New(sched))
	schedulerRouter.Method(http.MethodGet, "/events", tickevents.New(deps.Logger, deps.SseServer))

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Method(http.MethodGet, "/health", health.New(sched, deps.VoiceCaller))
	router.Mount("/reminders", reminderRouter)
	router.Mount("/scheduler", schedulerRouter)

	return &http.Server{
		Handler: router,
		Addr:    deps.Config.HTTPAddress,
	}
}
