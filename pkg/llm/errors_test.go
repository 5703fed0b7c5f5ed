package llm

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		wantType      ErrorType
		wantRetryable bool
	}{
		{"nil error", nil, "", false},
		{"401 unauthorized", errors.New("status 401 Unauthorized"), ErrorTypeAuth, false},
		{"invalid api key", errors.New("invalid api key provided"), ErrorTypeAuth, false},
		{"model not found", errors.New("model gpt-99 not found"), ErrorTypeModel, false},
		{"endpoint 404", errors.New("POST /v1/chat: 404"), ErrorTypeEndpoint, false},
		{"connection refused", errors.New("dial tcp: connection refused"), ErrorTypeEndpoint, true},
		{"timeout", errors.New("request timeout after 60s"), ErrorTypeEndpoint, true},
		{"deadline exceeded", errors.New("context deadline exceeded"), ErrorTypeEndpoint, true},
		{"rate limited", errors.New("429 too many requests"), ErrorTypeUnknown, true},
		{"server error", errors.New("upstream returned 503"), ErrorTypeEndpoint, true},
		{"unknown", errors.New("something odd happened"), ErrorTypeUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classified := ClassifyError(tt.err)
			if tt.err == nil {
				assert.Nil(t, classified)
				return
			}
			require.NotNil(t, classified)
			assert.Equal(t, tt.wantType, classified.Type)
			assert.Equal(t, tt.wantRetryable, classified.Retryable)
		})
	}
}

func TestClassifyError_PassesThroughStructuredErrors(t *testing.T) {
	original := NewError(ErrorTypeAuth, "bad key", false, nil)

	classified := ClassifyError(fmt.Errorf("complete failed: %w", original))
	assert.Same(t, original, classified)
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("underlying")
	err := NewError(ErrorTypeEndpoint, "wrapped", true, cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "underlying")
	assert.Contains(t, err.Error(), "endpoint")
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(NewError(ErrorTypeEndpoint, "x", true, nil)))
	assert.False(t, IsRetryable(NewError(ErrorTypeAuth, "x", false, nil)))
	assert.False(t, IsRetryable(errors.New("plain error")))
}

func TestGetErrorType(t *testing.T) {
	assert.Equal(t, ErrorTypeModel, GetErrorType(NewError(ErrorTypeModel, "x", false, nil)))
	assert.Equal(t, ErrorTypeUnknown, GetErrorType(errors.New("plain error")))
}
