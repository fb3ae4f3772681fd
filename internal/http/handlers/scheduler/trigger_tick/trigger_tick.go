package triggertick

import (
	"errors"
	"net/http"

	e "github.com/Ebbabire/call-reminder/internal/core/domain/errors"
	"github.com/Ebbabire/call-reminder/internal/http/handlers/response"
	"github.com/Ebbabire/call-reminder/internal/scheduler"
)

type Handler struct {
	scheduler *scheduler.Scheduler
}

func New(scheduler *scheduler.Scheduler) *Handler {
	if scheduler == nil {
		panic(e.NewNilArgumentError("scheduler"))
	}
	return &Handler{scheduler: scheduler}
}

type Result struct {
	Found           int `json:"found"`
	Completed       int `json:"completed"`
	Failed          int `json:"failed"`
	PersistFailures int `json:"persist_failures"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	result, err := h.scheduler.Trigger(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, scheduler.ErrNotRunning):
			response.RenderError(rw, "scheduler is not running", http.StatusConflict)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	response.Render(
		rw,
		Result{
			Found:           result.Found,
			Completed:       result.Completed,
			Failed:          result.Failed,
			PersistFailures: result.PersistFailures,
		},
		http.StatusOK,
	)
}
