package ratelimiting

import (
	"context"
	"testing"

	"github.com/Ebbabire/call-reminder/internal/core/domain/logging"
	ratelimiter "github.com/Ebbabire/call-reminder/internal/core/domain/rate_limiter"

	"github.com/stretchr/testify/assert"
)

type testInput struct {
	key string
}

func (i testInput) GetRateLimitKey() string {
	return i.key
}

type testResult struct {
	value string
}

type innerService struct {
	runCount int
}

func (s *innerService) Run(ctx context.Context, input testInput) (testResult, error) {
	s.runCount++
	return testResult{value: "ok"}, nil
}

func TestRateLimitingAllowed(t *testing.T) {
	inner := &innerService{}
	service := WithRateLimiting[testInput, testResult](
		logging.NewFakeLogger(),
		ratelimiter.NewFakeRateLimiter(true),
		ratelimiter.Limit{Interval: ratelimiter.Minute, Value: 10},
		inner,
	)

	result, err := service.Run(context.Background(), testInput{key: "192.0.2.1"})

	assert.Nil(t, err)
	assert.Equal(t, "ok", result.value)
	assert.Equal(t, 1, inner.runCount)
}

func TestRateLimitingExceeded(t *testing.T) {
	inner := &innerService{}
	service := WithRateLimiting[testInput, testResult](
		logging.NewFakeLogger(),
		ratelimiter.NewFakeRateLimiter(false),
		ratelimiter.Limit{Interval: ratelimiter.Minute, Value: 10},
		inner,
	)

	_, err := service.Run(context.Background(), testInput{key: "192.0.2.1"})

	assert.ErrorIs(t, err, ratelimiter.ErrRateLimitExceeded)
	assert.Equal(t, 0, inner.runCount)
}
