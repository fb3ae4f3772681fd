package createreminder

import (
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"regexp"
	"time"

	e "github.com/Ebbabire/call-reminder/internal/core/domain/errors"
	ratelimiter "github.com/Ebbabire/call-reminder/internal/core/domain/rate_limiter"
	"github.com/Ebbabire/call-reminder/internal/core/domain/reminder"
	"github.com/Ebbabire/call-reminder/internal/core/services"
	service "github.com/Ebbabire/call-reminder/internal/core/services/create_reminder"
	"github.com/Ebbabire/call-reminder/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
)

var e164Pattern = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)

type Handler struct {
	service services.Service[service.Input, service.Result]
}

func New(
	service services.Service[service.Input, service.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	PhoneNumber string    `json:"phone_number"`
	TriggerAt   time.Time `json:"trigger_at"`
	Timezone    string    `json:"timezone"`
}

type Result struct {
	Reminder response.Reminder `json:"reminder"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&i.Message, validation.Required, validation.Length(1, 1000)),
		validation.Field(&i.PhoneNumber, validation.Required, validation.Match(e164Pattern)),
		validation.Field(&i.TriggerAt, validation.Required),
		validation.Field(&i.Timezone, validation.Required, validation.Length(1, 50)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	result, err := h.service.Run(
		r.Context(),
		service.Input{
			Title:        input.Title,
			Message:      input.Message,
			PhoneNumber:  input.PhoneNumber,
			TriggerAt:    input.TriggerAt.UTC(),
			Timezone:     input.Timezone,
			RateLimitKey: clientIP(r),
		},
	)
	if err != nil {
		switch {
		case errors.Is(err, reminder.ErrInvalidTimezone):
			response.RenderError(rw, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ratelimiter.ErrRateLimitExceeded):
			response.RenderRateLimitExceeded(rw)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	createdReminder := response.Reminder{}
	createdReminder.FromDomainType(result.Reminder)
	response.Render(rw, Result{Reminder: createdReminder}, http.StatusCreated)
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
