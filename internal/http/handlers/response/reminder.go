package response

import (
	"time"

	"github.com/Ebbabire/call-reminder/internal/core/domain/reminder"

	"github.com/golang-module/carbon/v2"
)

type Reminder struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	PhoneNumber string    `json:"phone_number"`
	TriggerAt   time.Time `json:"trigger_at"`
	// TriggerAtLocal renders TriggerAt in the reminder's own timezone.
	TriggerAtLocal string    `json:"trigger_at_local,omitempty"`
	Timezone       string    `json:"timezone"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

func (r *Reminder) FromDomainType(dr reminder.Reminder) {
	r.ID = int64(dr.ID)
	r.Title = dr.Title
	r.Message = dr.Message
	r.PhoneNumber = dr.PhoneNumber
	r.TriggerAt = dr.TriggerAt
	r.Timezone = dr.Timezone
	r.Status = dr.Status.String()
	r.CreatedAt = dr.CreatedAt

	localTriggerAt := carbon.CreateFromStdTime(dr.TriggerAt).SetTimezone(dr.Timezone)
	if localTriggerAt.Error == nil {
		r.TriggerAtLocal = localTriggerAt.ToRfc3339String()
	}
}
