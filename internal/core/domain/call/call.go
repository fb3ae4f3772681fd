package call

import (
	"context"

	c "github.com/Ebbabire/call-reminder/internal/core/domain/common"
)

type Request struct {
	PhoneNumber string
	Message     string
	Title       string
}

// Outcome is the terminal result of a single call attempt. A malfunctioning
// provider is reported as Success == false, never as a raw transport error.
type Outcome struct {
	Success      bool
	CallID       c.Optional[string]
	ErrorMessage c.Optional[string]
}

func Succeeded(callID string) Outcome {
	return Outcome{Success: true, CallID: c.NewOptional(callID, true)}
}

func Failed(errorMessage string) Outcome {
	return Outcome{Success: false, ErrorMessage: c.NewOptional(errorMessage, true)}
}

// VoiceCaller places one outbound voice call. Implementations own their
// auth, configuration validation and request timeout.
type VoiceCaller interface {
	PlaceCall(ctx context.Context, request Request) Outcome
}
