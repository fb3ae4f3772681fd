package runtick

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Ebbabire/call-reminder/internal/core/domain/call"
	"github.com/Ebbabire/call-reminder/internal/core/domain/logging"
	"github.com/Ebbabire/call-reminder/internal/core/domain/reminder"
	"github.com/Ebbabire/call-reminder/internal/core/services"
	processduereminder "github.com/Ebbabire/call-reminder/internal/core/services/process_due_reminder"

	"github.com/stretchr/testify/suite"
)

var Now time.Time = time.Now().UTC()

type testSuite struct {
	suite.Suite
	logger      *logging.FakeLogger
	reminders   *reminder.TestReminderRepository
	voiceCaller *call.TestVoiceCaller
	service     services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.logger = logging.NewFakeLogger()
	suite.reminders = reminder.NewTestReminderRepository()
	suite.voiceCaller = call.NewTestVoiceCaller()
	suite.service = New(
		suite.logger,
		suite.reminders,
		processduereminder.New(suite.logger, suite.voiceCaller),
		func() time.Time { return Now },
	)
}

func TestRunTickService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) createReminder(phoneNumber string, triggerAt time.Time) reminder.Reminder {
	rem, err := s.reminders.Create(context.Background(), reminder.CreateInput{
		Title:       "Title",
		Message:     "Message",
		PhoneNumber: phoneNumber,
		TriggerAt:   triggerAt,
		Timezone:    "UTC",
		Status:      reminder.StatusScheduled,
		CreatedAt:   Now.Add(-time.Hour),
	})
	s.Nil(err)
	return rem
}

func (s *testSuite) TestEmptyTick() {
	// Exercise ---
	result, err := s.service.Run(context.Background(), Input{})

	// Verify ---
	s.Nil(err)
	s.Equal(0, result.Found)
	s.Empty(s.voiceCaller.Placed)
}

func (s *testSuite) TestDueRemindersAreProcessedToTerminalStatus() {
	// Setup ---
	due := s.createReminder("+15550000001", Now.Add(-time.Minute))
	notDue := s.createReminder("+15550000002", Now.Add(time.Hour))
	s.voiceCaller.OutcomeFor["+15550000001"] = call.Succeeded("call-1")

	// Exercise ---
	result, err := s.service.Run(context.Background(), Input{})

	// Verify ---
	s.Nil(err)
	s.Equal(1, result.Found)
	s.Equal(1, result.Completed)
	s.Equal(0, result.Failed)

	storedDue, _ := s.reminders.GetByID(context.Background(), due.ID)
	s.Equal(reminder.StatusCompleted, storedDue.Status)
	storedNotDue, _ := s.reminders.GetByID(context.Background(), notDue.ID)
	s.Equal(reminder.StatusScheduled, storedNotDue.Status)
}

func (s *testSuite) TestSecondTickFindsNothingNew() {
	// Setup ---
	s.createReminder("+15550000001", Now.Add(-time.Minute))

	// Exercise ---
	first, err := s.service.Run(context.Background(), Input{})
	s.Nil(err)
	second, err := s.service.Run(context.Background(), Input{})

	// Verify ---
	s.Nil(err)
	s.Equal(1, first.Found)
	s.Equal(0, second.Found)
	s.Len(s.voiceCaller.Placed, 1)
}

func (s *testSuite) TestFailureOfOneReminderDoesNotAffectOthers() {
	// Setup ---
	panicking := s.createReminder("+15550000001", Now.Add(-time.Minute))
	healthy := s.createReminder("+15550000002", Now.Add(-time.Minute))
	s.voiceCaller.PanicFor["+15550000001"] = errors.New("caller blew up")
	s.voiceCaller.OutcomeFor["+15550000002"] = call.Succeeded("call-2")

	// Exercise ---
	result, err := s.service.Run(context.Background(), Input{})

	// Verify ---
	s.Nil(err)
	s.Equal(2, result.Found)
	s.Equal(1, result.Completed)
	s.Equal(1, result.Failed)

	storedPanicking, _ := s.reminders.GetByID(context.Background(), panicking.ID)
	s.Equal(reminder.StatusFailed, storedPanicking.Status)
	storedHealthy, _ := s.reminders.GetByID(context.Background(), healthy.ID)
	s.Equal(reminder.StatusCompleted, storedHealthy.Status)
}

func (s *testSuite) TestPersistFailureIsCountedAndDoesNotStopTheTick() {
	// Setup ---
	broken := s.createReminder("+15550000001", Now.Add(-time.Minute))
	healthy := s.createReminder("+15550000002", Now.Add(-time.Minute))
	s.reminders.UpdateErrorFor[broken.ID] = errors.New("connection reset")

	// Exercise ---
	result, err := s.service.Run(context.Background(), Input{})

	// Verify ---
	s.Nil(err)
	s.Equal(2, result.Found)
	s.Equal(1, result.Completed)
	s.Equal(1, result.PersistFailures)

	storedBroken, _ := s.reminders.GetByID(context.Background(), broken.ID)
	s.Equal(reminder.StatusScheduled, storedBroken.Status)
	storedHealthy, _ := s.reminders.GetByID(context.Background(), healthy.ID)
	s.Equal(reminder.StatusCompleted, storedHealthy.Status)
}

func (s *testSuite) TestPersistFailureNeverRollsBackAnotherReminder() {
	// Setup ---
	// The broken reminder's status update fails after its call was placed.
	// The healthy reminder's completed status must stick regardless, so the
	// next tick re-calls only the broken one.
	healthy := s.createReminder("+15550000001", Now.Add(-time.Minute))
	broken := s.createReminder("+15550000002", Now.Add(-time.Minute))
	s.voiceCaller.OutcomeFor["+15550000001"] = call.Succeeded("call-1")
	s.voiceCaller.OutcomeFor["+15550000002"] = call.Succeeded("call-2")
	s.reminders.UpdateErrorFor[broken.ID] = errors.New("connection reset")

	// Exercise ---
	first, err := s.service.Run(context.Background(), Input{})
	s.Nil(err)

	delete(s.reminders.UpdateErrorFor, broken.ID)
	second, err := s.service.Run(context.Background(), Input{})

	// Verify ---
	s.Nil(err)
	s.Equal(2, first.Found)
	s.Equal(1, first.Completed)
	s.Equal(1, first.PersistFailures)
	s.Equal(1, second.Found)
	s.Equal(1, second.Completed)

	calledNumbers := make([]string, 0, len(s.voiceCaller.Placed))
	for _, placed := range s.voiceCaller.Placed {
		calledNumbers = append(calledNumbers, placed.PhoneNumber)
	}
	s.Equal([]string{"+15550000001", "+15550000002", "+15550000002"}, calledNumbers)

	storedHealthy, _ := s.reminders.GetByID(context.Background(), healthy.ID)
	s.Equal(reminder.StatusCompleted, storedHealthy.Status)
	storedBroken, _ := s.reminders.GetByID(context.Background(), broken.ID)
	s.Equal(reminder.StatusCompleted, storedBroken.Status)
}

func (s *testSuite) TestFindDueErrorAbortsTheTick() {
	// Setup ---
	s.reminders.FindDueError = errors.New("query timeout")

	// Exercise ---
	_, err := s.service.Run(context.Background(), Input{})

	// Verify ---
	s.NotNil(err)
	s.Empty(s.voiceCaller.Placed)
}
