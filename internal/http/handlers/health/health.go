package health

import (
	"net/http"

	e "github.com/Ebbabire/call-reminder/internal/core/domain/errors"
	"github.com/Ebbabire/call-reminder/internal/http/handlers/response"
)

type SchedulerStatus interface {
	IsRunning() bool
}

type CallerStatus interface {
	IsConfigured() bool
}

type Handler struct {
	scheduler SchedulerStatus
	caller    CallerStatus
}

func New(scheduler SchedulerStatus, caller CallerStatus) *Handler {
	if scheduler == nil {
		panic(e.NewNilArgumentError("scheduler"))
	}
	if caller == nil {
		panic(e.NewNilArgumentError("caller"))
	}
	return &Handler{scheduler: scheduler, caller: caller}
}

type Result struct {
	Status           string `json:"status"`
	SchedulerRunning bool   `json:"scheduler_running"`
	VapiConfigured   bool   `json:"vapi_configured"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	response.Render(
		rw,
		Result{
			Status:           "healthy",
			SchedulerRunning: h.scheduler.IsRunning(),
			VapiConfigured:   h.caller.IsConfigured(),
		},
		http.StatusOK,
	)
}
