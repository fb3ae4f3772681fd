package tickevents

import (
	"net/http"

	e "github.com/Ebbabire/call-reminder/internal/core/domain/errors"
	"github.com/Ebbabire/call-reminder/internal/core/domain/logging"
	"github.com/Ebbabire/call-reminder/internal/scheduler"

	"github.com/r3labs/sse/v2"
)

type Handler struct {
	log       logging.Logger
	sseServer *sse.Server
}

func New(log logging.Logger, sseServer *sse.Server) *Handler {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sseServer == nil {
		panic(e.NewNilArgumentError("sseServer"))
	}
	return &Handler{log: log, sseServer: sseServer}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	// All clients share the single tick stream.
	query := r.URL.Query()
	query.Set("stream", scheduler.TickStream)
	r.URL.RawQuery = query.Encode()

	go func() {
		// Received browser disconnection
		<-r.Context().Done()
		h.log.Info(r.Context(), "Unsubscribed from tick events.")
	}()

	h.log.Info(r.Context(), "Subscribed to tick events.")
	h.sseServer.ServeHTTP(rw, r)
}
