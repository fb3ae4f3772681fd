package getreminder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Ebbabire/call-reminder/internal/core/domain/reminder"
	service "github.com/Ebbabire/call-reminder/internal/core/services/get_reminder"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

var Reminder = reminder.Reminder{
	ID:          reminder.ID(42),
	Title:       "Dentist",
	Message:     "Appointment at 10am",
	PhoneNumber: "+15551234567",
	TriggerAt:   time.Date(2025, 12, 1, 10, 0, 0, 0, time.UTC),
	Timezone:    "America/New_York",
	Status:      reminder.StatusScheduled,
	CreatedAt:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
}

type stubService struct {
	err   error
	input *service.Input
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	if s.err != nil {
		return result, s.err
	}
	s.input = &input
	result.Reminder = Reminder
	return result, nil
}

func TestGetReminderHandler(t *testing.T) {
	cases := []struct {
		id             string
		url            string
		serviceErr     error
		expectedStatus int
	}{
		{
			id:             "found",
			url:            "/reminders/42",
			expectedStatus: http.StatusOK,
		},
		{
			id:             "not-found",
			url:            "/reminders/42",
			serviceErr:     reminder.ErrReminderDoesNotExist,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			req, err := http.NewRequest("GET", testcase.url, nil)
			if err != nil {
				t.Fatal(err)
			}

			service := &stubService{err: testcase.serviceErr}
			router := chi.NewRouter()
			router.Method(http.MethodGet, "/reminders/{reminderID:[0-9]+}", New(service))
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, testcase.expectedStatus, rr.Code)
			if testcase.expectedStatus == http.StatusOK {
				assert.Equal(t, reminder.ID(42), service.input.ReminderID)

				body := struct {
					Reminder struct {
						ID             int64  `json:"id"`
						Status         string `json:"status"`
						TriggerAtLocal string `json:"trigger_at_local"`
					} `json:"reminder"`
				}{}
				assert.Nil(t, json.Unmarshal(rr.Body.Bytes(), &body))
				assert.Equal(t, int64(42), body.Reminder.ID)
				assert.Equal(t, "scheduled", body.Reminder.Status)
				assert.NotEmpty(t, body.Reminder.TriggerAtLocal)
			}
		})
	}
}
