package call

import (
	"context"
	"sync"
)

// TestVoiceCaller records placed calls and returns canned outcomes.
// OutcomeFor overrides Outcome per phone number; PanicFor makes PlaceCall
// panic for a phone number, for exercising fault isolation.
type TestVoiceCaller struct {
	Outcome    Outcome
	OutcomeFor map[string]Outcome
	PanicFor   map[string]interface{}
	Placed     []Request
	lock       sync.Mutex
}

func NewTestVoiceCaller() *TestVoiceCaller {
	return &TestVoiceCaller{
		Outcome:    Succeeded("test-call-id"),
		OutcomeFor: make(map[string]Outcome),
		PanicFor:   make(map[string]interface{}),
	}
}

func (c *TestVoiceCaller) PlaceCall(ctx context.Context, request Request) Outcome {
	if v, ok := c.PanicFor[request.PhoneNumber]; ok {
		panic(v)
	}
	c.lock.Lock()
	defer c.lock.Unlock()
	c.Placed = append(c.Placed, request)
	if outcome, ok := c.OutcomeFor[request.PhoneNumber]; ok {
		return outcome
	}
	return c.Outcome
}
