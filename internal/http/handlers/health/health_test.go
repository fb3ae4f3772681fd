package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubSchedulerStatus struct {
	running bool
}

func (s *stubSchedulerStatus) IsRunning() bool {
	return s.running
}

type stubCallerStatus struct {
	configured bool
}

func (s *stubCallerStatus) IsConfigured() bool {
	return s.configured
}

func TestHealthHandler(t *testing.T) {
	cases := []struct {
		id         string
		running    bool
		configured bool
	}{
		{id: "all-up", running: true, configured: true},
		{id: "scheduler-stopped", running: false, configured: true},
		{id: "vapi-not-configured", running: true, configured: false},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			handler := New(
				&stubSchedulerStatus{running: testcase.running},
				&stubCallerStatus{configured: testcase.configured},
			)

			req := httptest.NewRequest("GET", "/health", nil)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)

			body := Result{}
			assert.Nil(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.Equal(t, "healthy", body.Status)
			assert.Equal(t, testcase.running, body.SchedulerRunning)
			assert.Equal(t, testcase.configured, body.VapiConfigured)
		})
	}
}
