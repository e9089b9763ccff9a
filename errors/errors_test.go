package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyFixedTaxonomy(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Class
	}{
		{"validation is fatal", NewValidation("bad input"), ClassFatal},
		{"authentication is fatal", NewAuthentication("bad key"), ClassFatal},
		{"not found is retryable", NewNotFound("deployment", "gone"), ClassRetryable},
		{"timeout is retryable", NewTimeout("slow", nil), ClassRetryable},
		{"rate limit is retryable", NewRateLimit("slow down", time.Second), ClassRetryable},
		{"connection is retryable", NewConnection("refused", nil), ClassRetryable},
		{"api error is retryable", NewAPI(500, "boom"), ClassRetryable},
		{"foreign error is retryable", stderrors.New("who knows"), ClassRetryable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestClassifySurvivesWrapping(t *testing.T) {
	fatal := fmt.Errorf("deploy: %w", NewValidation("model is required"))
	assert.True(t, IsFatal(fatal))
	assert.False(t, IsRetryable(fatal))

	retryable := fmt.Errorf("deploy: %w", NewAPI(503, "unavailable"))
	assert.True(t, IsRetryable(retryable))
	assert.False(t, IsFatal(retryable))
}

func TestIsFatalNil(t *testing.T) {
	assert.False(t, IsFatal(nil))
	assert.False(t, IsRetryable(nil))
}

func TestErrorStrings(t *testing.T) {
	assert.Equal(t, "validation error: api_url cannot be empty",
		NewValidation("api_url cannot be empty").Error())
	assert.Equal(t, `validation error: field "model": required`,
		NewValidationField("model", "required").Error())
	assert.Equal(t, "api error (status 500): internal",
		NewAPI(500, "internal").Error())
	assert.Equal(t, "rate limited: too many requests (retry after 2s)",
		NewRateLimit("too many requests", 2*time.Second).Error())
	assert.Equal(t, "not found: deployment: no such id",
		NewNotFound("deployment", "no such id").Error())
}

func TestCausePreserved(t *testing.T) {
	cause := stderrors.New("dial tcp: connection refused")
	err := NewConnection("request failed", cause)

	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")

	var connErr *ConnectionError
	require.ErrorAs(t, fmt.Errorf("outer: %w", err), &connErr)
	assert.Same(t, cause, connErr.Err)
}

func TestClassString(t *testing.T) {
	assert.Equal(t, "retryable", ClassRetryable.String())
	assert.Equal(t, "fatal", ClassFatal.String())
	assert.Equal(t, "unknown", Class(42).String())
}
