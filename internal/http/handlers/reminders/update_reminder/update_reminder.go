package updatereminder

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"time"

	e "github.com/Ebbabire/call-reminder/internal/core/domain/errors"
	"github.com/Ebbabire/call-reminder/internal/core/domain/reminder"
	"github.com/Ebbabire/call-reminder/internal/core/services"
	service "github.com/Ebbabire/call-reminder/internal/core/services/update_reminder"
	"github.com/Ebbabire/call-reminder/internal/http/handlers/response"

	"github.com/go-chi/chi/v5"
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
	Title       *string    `json:"title"`
	Message     *string    `json:"message"`
	PhoneNumber *string    `json:"phone_number"`
	TriggerAt   *time.Time `json:"trigger_at"`
	Timezone    *string    `json:"timezone"`
	Status      *string    `json:"status"`
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
		validation.Field(&i.Title, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&i.Message, validation.NilOrNotEmpty, validation.Length(1, 1000)),
		validation.Field(&i.PhoneNumber, validation.NilOrNotEmpty, validation.Match(e164Pattern)),
		validation.Field(&i.Timezone, validation.NilOrNotEmpty, validation.Length(1, 50)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	rawReminderID := chi.URLParam(r, "reminderID")
	reminderID, err := strconv.ParseInt(rawReminderID, 10, 64)
	if err != nil {
		response.RenderError(rw, "invalid reminder ID", http.StatusBadRequest)
		return
	}

	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	serviceInput := service.Input{ReminderID: reminder.ID(reminderID)}
	if input.Title != nil {
		serviceInput.DoTitleUpdate = true
		serviceInput.Title = *input.Title
	}
	if input.Message != nil {
		serviceInput.DoMessageUpdate = true
		serviceInput.Message = *input.Message
	}
	if input.PhoneNumber != nil {
		serviceInput.DoPhoneNumberUpdate = true
		serviceInput.PhoneNumber = *input.PhoneNumber
	}
	if input.TriggerAt != nil {
		serviceInput.DoTriggerAtUpdate = true
		serviceInput.TriggerAt = input.TriggerAt.UTC()
	}
	if input.Timezone != nil {
		serviceInput.DoTimezoneUpdate = true
		serviceInput.Timezone = *input.Timezone
	}
	if input.Status != nil {
		status, err := reminder.ParseStatus(*input.Status)
		if err != nil {
			response.RenderError(rw, "invalid status", http.StatusBadRequest)
			return
		}
		serviceInput.DoStatusUpdate = true
		serviceInput.Status = status
	}

	result, err := h.service.Run(r.Context(), serviceInput)
	if err != nil {
		switch {
		case errors.Is(err, reminder.ErrReminderDoesNotExist):
			response.RenderNotFound(rw)
		case errors.Is(err, reminder.ErrInvalidStatusTransition):
			response.RenderError(rw, err.Error(), http.StatusUnprocessableEntity)
		case errors.Is(err, reminder.ErrInvalidTimezone):
			response.RenderError(rw, err.Error(), http.StatusBadRequest)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	respReminder := response.Reminder{}
	respReminder.FromDomainType(result.Reminder)
	response.Render(rw, Result{Reminder: respReminder}, http.StatusOK)
}
