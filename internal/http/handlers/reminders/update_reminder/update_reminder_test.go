package updatereminder

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Ebbabire/call-reminder/internal/core/domain/reminder"
	service "github.com/Ebbabire/call-reminder/internal/core/services/update_reminder"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

type stubService struct {
	err   error
	input *service.Input
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	if s.err != nil {
		return result, s.err
	}
	s.input = &input
	result.Reminder = reminder.Reminder{
		ID:          input.ReminderID,
		Title:       input.Title,
		Message:     "Message",
		PhoneNumber: "+15551234567",
		TriggerAt:   time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC),
		Timezone:    "UTC",
		Status:      reminder.StatusScheduled,
		CreatedAt:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	return result, nil
}

func TestUpdateReminderHandler(t *testing.T) {
	cases := []struct {
		id             string
		body           string
		serviceErr     error
		expectedStatus int
		expectedInput  *service.Input
	}{
		{
			id:             "title-only",
			body:           `{"title": "New title"}`,
			expectedStatus: http.StatusOK,
			expectedInput: &service.Input{
				ReminderID:    reminder.ID(7),
				DoTitleUpdate: true,
				Title:         "New title",
			},
		},
		{
			id:             "status-update",
			body:           `{"status": "completed"}`,
			expectedStatus: http.StatusOK,
			expectedInput: &service.Input{
				ReminderID:     reminder.ID(7),
				DoStatusUpdate: true,
				Status:         reminder.StatusCompleted,
			},
		},
		{
			id:             "unknown-status",
			body:           `{"status": "done"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "not-json",
			body:           `aaa`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "empty-title",
			body:           `{"title": ""}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "invalid-phone-number",
			body:           `{"phone_number": "12345"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "not-found",
			body:           `{"title": "New title"}`,
			serviceErr:     reminder.ErrReminderDoesNotExist,
			expectedStatus: http.StatusNotFound,
		},
		{
			id:             "terminal-status-transition",
			body:           `{"status": "scheduled"}`,
			serviceErr:     reminder.ErrInvalidStatusTransition,
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			id:             "invalid-timezone",
			body:           `{"timezone": "Mars/Olympus_Mons"}`,
			serviceErr:     reminder.ErrInvalidTimezone,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			req, err := http.NewRequest("PATCH", "/reminders/7", strings.NewReader(testcase.body))
			if err != nil {
				t.Fatal(err)
			}

			service := &stubService{err: testcase.serviceErr}
			router := chi.NewRouter()
			router.Method(http.MethodPatch, "/reminders/{reminderID:[0-9]+}", New(service))
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, testcase.expectedStatus, rr.Code)
			if testcase.expectedInput != nil {
				assert.Equal(t, testcase.expectedInput, service.input)
			}
		})
	}
}
