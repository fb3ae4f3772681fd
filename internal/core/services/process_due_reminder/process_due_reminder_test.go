package processduereminder

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Ebbabire/call-reminder/internal/core/domain/call"
	"github.com/Ebbabire/call-reminder/internal/core/domain/logging"
	"github.com/Ebbabire/call-reminder/internal/core/domain/reminder"
	"github.com/Ebbabire/call-reminder/internal/core/services"

	"github.com/stretchr/testify/suite"
)

const PHONE_NUMBER = "+15551234567"

var Now time.Time = time.Now().UTC()

type testSuite struct {
	suite.Suite
	logger      *logging.FakeLogger
	voiceCaller *call.TestVoiceCaller
	repository  *reminder.TestReminderRepository
	service     services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.logger = logging.NewFakeLogger()
	suite.voiceCaller = call.NewTestVoiceCaller()
	suite.repository = reminder.NewTestReminderRepository()
	suite.service = New(suite.logger, suite.voiceCaller)
}

func TestProcessDueReminderService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) createScheduledReminder() reminder.Reminder {
	rem, err := s.repository.Create(context.Background(), reminder.CreateInput{
		Title:       "Dentist",
		Message:     "Appointment at 10am",
		PhoneNumber: PHONE_NUMBER,
		TriggerAt:   Now.Add(-time.Minute),
		Timezone:    "UTC",
		Status:      reminder.StatusScheduled,
		CreatedAt:   Now.Add(-time.Hour),
	})
	s.Nil(err)
	return rem
}

func (s *testSuite) TestSuccessfulCallCompletesReminder() {
	// Setup ---
	rem := s.createScheduledReminder()
	s.voiceCaller.Outcome = call.Succeeded("call-123")

	// Exercise ---
	result, err := s.service.Run(context.Background(), Input{Reminder: rem, Reminders: s.repository})

	// Verify ---
	s.Nil(err)
	s.Equal(rem.ID, result.ReminderID)
	s.Equal(reminder.StatusCompleted, result.Status)
	s.True(result.CallID.IsPresent)
	s.Equal("call-123", result.CallID.Value)
	s.False(result.PersistFailed)

	stored, err := s.repository.GetByID(context.Background(), rem.ID)
	s.Nil(err)
	s.Equal(reminder.StatusCompleted, stored.Status)

	s.Len(s.voiceCaller.Placed, 1)
	s.Equal(PHONE_NUMBER, s.voiceCaller.Placed[0].PhoneNumber)
	s.Equal("Dentist", s.voiceCaller.Placed[0].Title)
}

func (s *testSuite) TestFailedCallMarksReminderFailed() {
	// Setup ---
	rem := s.createScheduledReminder()
	s.voiceCaller.Outcome = call.Failed("provider rejected the number")

	// Exercise ---
	result, err := s.service.Run(context.Background(), Input{Reminder: rem, Reminders: s.repository})

	// Verify ---
	s.Nil(err)
	s.Equal(reminder.StatusFailed, result.Status)
	s.False(result.CallID.IsPresent)
	s.True(result.ErrorMessage.IsPresent)
	s.Equal("provider rejected the number", result.ErrorMessage.Value)
	s.False(result.PersistFailed)

	stored, err := s.repository.GetByID(context.Background(), rem.ID)
	s.Nil(err)
	s.Equal(reminder.StatusFailed, stored.Status)
}

func (s *testSuite) TestCallerPanicIsConvertedToFailure() {
	// Setup ---
	rem := s.createScheduledReminder()
	s.voiceCaller.PanicFor[PHONE_NUMBER] = "boom"

	// Exercise ---
	result, err := s.service.Run(context.Background(), Input{Reminder: rem, Reminders: s.repository})

	// Verify ---
	s.Nil(err)
	s.Equal(reminder.StatusFailed, result.Status)
	s.True(result.ErrorMessage.IsPresent)
	s.Contains(result.ErrorMessage.Value, "boom")

	stored, getErr := s.repository.GetByID(context.Background(), rem.ID)
	s.Nil(getErr)
	s.Equal(reminder.StatusFailed, stored.Status)

	s.NotEmpty(s.logger.Records(logging.ERROR))
}

func (s *testSuite) TestPersistFailureLeavesReminderScheduled() {
	// Setup ---
	rem := s.createScheduledReminder()
	s.repository.UpdateErrorFor[rem.ID] = errors.New("connection reset")

	// Exercise ---
	result, err := s.service.Run(context.Background(), Input{Reminder: rem, Reminders: s.repository})

	// Verify ---
	s.Nil(err)
	s.True(result.PersistFailed)
	s.Equal(reminder.StatusScheduled, result.Status)

	stored, getErr := s.repository.GetByID(context.Background(), rem.ID)
	s.Nil(getErr)
	s.Equal(reminder.StatusScheduled, stored.Status)
	s.True(stored.IsDue(Now))
}
