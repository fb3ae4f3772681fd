package scheduler

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	e "github.com/Ebbabire/call-reminder/internal/core/domain/errors"
	"github.com/Ebbabire/call-reminder/internal/core/domain/logging"
	"github.com/Ebbabire/call-reminder/internal/core/services"
	runtick "github.com/Ebbabire/call-reminder/internal/core/services/run_tick"

	"github.com/r3labs/sse/v2"
)

// TickStream is the SSE stream tick summaries are published to.
const TickStream = "ticks"

const DEFAULT_STOP_GRACE_PERIOD = 5 * time.Second

var ErrNotRunning = errors.New("scheduler is not running")

type tickEvent struct {
	At              time.Time `json:"at"`
	Found           int       `json:"found"`
	Completed       int       `json:"completed"`
	Failed          int       `json:"failed"`
	PersistFailures int       `json:"persist_failures"`
}

// Scheduler drives the periodic due-reminder processing. A single goroutine
// owns the loop; Start and Stop are safe to call from any goroutine.
type Scheduler struct {
	log              logging.Logger
	tick             services.Service[runtick.Input, runtick.Result]
	sseServer        *sse.Server
	interval         time.Duration
	livenessLogEvery int
	stopGracePeriod  time.Duration

	lock       sync.Mutex
	running    bool
	stopCh     chan struct{}
	doneCh     chan struct{}
	cancelLoop context.CancelFunc

	// tickLock serializes manual triggers against the timer: two ticks
	// never run concurrently, and Stop drains it before returning.
	tickLock   sync.Mutex
	emptyTicks int
}

func New(
	log logging.Logger,
	tick services.Service[runtick.Input, runtick.Result],
	sseServer *sse.Server,
	interval time.Duration,
	livenessLogEvery int,
) *Scheduler {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if tick == nil {
		panic(e.NewNilArgumentError("tick"))
	}
	if sseServer == nil {
		panic(e.NewNilArgumentError("sseServer"))
	}
	if interval <= 0 {
		panic(e.NewInvalidStateError("scheduler interval must be positive"))
	}
	if livenessLogEvery <= 0 {
		livenessLogEvery = 10
	}
	return &Scheduler{
		log:              log,
		tick:             tick,
		sseServer:        sseServer,
		interval:         interval,
		livenessLogEvery: livenessLogEvery,
		stopGracePeriod:  DEFAULT_STOP_GRACE_PERIOD,
	}
}

// Start launches the polling loop. Calling Start on a running scheduler is
// a warning-level no-op, never a second loop.
func (s *Scheduler) Start() {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.running {
		s.log.Warning(context.Background(), "Scheduler is already running.")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.running = true
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	s.cancelLoop = cancel

	go s.runLoop(ctx, s.stopCh, s.doneCh)
	s.log.Info(
		context.Background(),
		"Scheduler has started.",
		logging.Entry("intervalSeconds", s.interval.Seconds()),
	)
}

// Stop signals the loop to exit and waits for the in-flight tick up to the
// grace period, then cancels the loop context forcibly. The lifecycle lock is
// released for the wait, so IsRunning and Start stay responsive while the
// loop drains. Stopping an idle scheduler is a warning-level no-op.
func (s *Scheduler) Stop() {
	s.lock.Lock()
	if !s.running {
		s.lock.Unlock()
		s.log.Warning(context.Background(), "Scheduler is not running.")
		return
	}

	s.log.Info(context.Background(), "Stopping scheduler.")
	s.running = false
	doneCh := s.doneCh
	cancel := s.cancelLoop
	close(s.stopCh)
	s.lock.Unlock()

	select {
	case <-doneCh:
	case <-time.After(s.stopGracePeriod):
		s.log.Warning(context.Background(), "Scheduler did not stop gracefully, cancelling.")
		cancel()
		<-doneCh
	}
	cancel()

	// A manual tick that got in before the stop still holds tickLock; wait
	// it out so no tick is executing once Stop returns.
	s.tickLock.Lock()
	s.tickLock.Unlock()

	s.log.Info(context.Background(), "Scheduler has stopped.")
}

func (s *Scheduler) IsRunning() bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.running
}

// Trigger runs exactly one tick synchronously through the same code path as
// the timer. It refuses to run while the loop is stopped and never starts it.
// The running check happens under tickLock, which Stop drains before
// returning, so a trigger cannot slip in after Stop completes.
func (s *Scheduler) Trigger(ctx context.Context) (runtick.Result, error) {
	s.tickLock.Lock()
	defer s.tickLock.Unlock()

	if !s.IsRunning() {
		return runtick.Result{}, ErrNotRunning
	}
	return s.runTickLocked(ctx)
}

func (s *Scheduler) runLoop(ctx context.Context, stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)

	// First check runs immediately. A one-shot timer re-armed after each
	// tick keeps a full interval between the end of one tick's processing
	// and the start of the next, even when processing outlasts the
	// interval; a ticker would buffer a tick during a slow run and fire
	// again immediately.
	if _, err := s.runTick(ctx); err != nil {
		logging.Error(ctx, s.log, err)
	}

	timer := time.NewTimer(s.interval)
	defer timer.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ctx.Done():
			return
		case <-timer.C:
			if _, err := s.runTick(ctx); err != nil {
				logging.Error(ctx, s.log, err)
			}
			timer.Reset(s.interval)
		}
	}
}

func (s *Scheduler) runTick(ctx context.Context) (runtick.Result, error) {
	s.tickLock.Lock()
	defer s.tickLock.Unlock()
	return s.runTickLocked(ctx)
}

func (s *Scheduler) runTickLocked(ctx context.Context) (runtick.Result, error) {
	result, err := s.tick.Run(ctx, runtick.Input{})
	if err != nil {
		return result, err
	}

	if result.Found == 0 {
		s.emptyTicks++
		if s.emptyTicks%s.livenessLogEvery == 0 {
			s.log.Info(
				ctx,
				"Scheduler is running, no due reminders.",
				logging.Entry("emptyTicks", s.emptyTicks),
			)
		}
	} else {
		s.emptyTicks = 0
	}

	s.publishTickEvent(result)
	return result, nil
}

func (s *Scheduler) publishTickEvent(result runtick.Result) {
	event := tickEvent{
		At:              time.Now().UTC(),
		Found:           result.Found,
		Completed:       result.Completed,
		Failed:          result.Failed,
		PersistFailures: result.PersistFailures,
	}
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	s.sseServer.Publish(TickStream, &sse.Event{Data: data})
}
