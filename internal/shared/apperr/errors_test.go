package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindPredicates(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"validation", Validation("bad input"), IsValidation},
		{"not found", NotFound("missing"), IsNotFound},
		{"conflict", Conflict("duplicate", nil), IsConflict},
		{"unavailable", Unavailable("down", errors.New("dial refused")), IsUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(tt.err))
			for _, other := range tests {
				if other.name != tt.name {
					assert.False(t, other.check(tt.err), "matched %s", other.name)
				}
			}
		})
	}
}

func TestPredicatesSeeThroughWrapping(t *testing.T) {
	err := fmt.Errorf("upsert failed: %w", Conflict("duplicate title", nil))
	assert.True(t, IsConflict(err))
	assert.False(t, IsValidation(err))
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "bad input", Message(Validation("bad input")))
	assert.Equal(t, "down", Message(Unavailable("down", errors.New("dial refused"))))
	assert.Equal(t, "internal server error", Message(errors.New("raw store error")))
	assert.Equal(t, "internal server error", Message(nil))
}

func TestUnwrapExposesCause(t *testing.T) {
	cause := errors.New("dial refused")
	err := Unavailable("store unreachable", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "store unreachable")
	assert.Contains(t, err.Error(), "dial refused")
}

func TestValidationf(t *testing.T) {
	err := Validationf("field %q is required", "title")
	assert.True(t, IsValidation(err))
	assert.Equal(t, `field "title" is required`, Message(err))
}
