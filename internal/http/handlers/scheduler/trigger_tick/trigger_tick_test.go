package triggertick

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Ebbabire/call-reminder/internal/core/domain/logging"
	runtick "github.com/Ebbabire/call-reminder/internal/core/services/run_tick"
	"github.com/Ebbabire/call-reminder/internal/scheduler"

	"github.com/r3labs/sse/v2"
	"github.com/stretchr/testify/assert"
)

type stubTickService struct {
	result runtick.Result
}

func (s *stubTickService) Run(ctx context.Context, input runtick.Input) (runtick.Result, error) {
	return s.result, nil
}

func newScheduler(tick *stubTickService) (*scheduler.Scheduler, func()) {
	sseServer := sse.New()
	sseServer.AutoReplay = false
	sseServer.CreateStream(scheduler.TickStream)
	sched := scheduler.New(logging.NewFakeLogger(), tick, sseServer, time.Hour, 10)
	return sched, func() {
		sched.Stop()
		sseServer.Close()
	}
}

func TestTriggerTickHandler(t *testing.T) {
	t.Run("scheduler-stopped", func(t *testing.T) {
		sched, cleanup := newScheduler(&stubTickService{})
		defer cleanup()

		req := httptest.NewRequest("POST", "/scheduler/tick", nil)
		rr := httptest.NewRecorder()
		New(sched).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("scheduler-running", func(t *testing.T) {
		tick := &stubTickService{result: runtick.Result{Found: 3, Completed: 2, Failed: 1}}
		sched, cleanup := newScheduler(tick)
		defer cleanup()
		sched.Start()

		req := httptest.NewRequest("POST", "/scheduler/tick", nil)
		rr := httptest.NewRecorder()
		New(sched).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		body := Result{}
		assert.Nil(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, 3, body.Found)
		assert.Equal(t, 2, body.Completed)
		assert.Equal(t, 1, body.Failed)
	})
}
