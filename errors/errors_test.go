package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Kind:   KindSchema,
				Reason: ReasonBadMaxLength,
				Path:   []string{"Order", "symbol"},
				Detail: "maxLength \"abc\" is not an integer",
			},
			contains: []string{"[schema]", "bad_max_length", "Order.symbol", "not an integer"},
		},
		{
			name:     "minimal error",
			err:      &Error{Kind: KindRead},
			contains: []string{"[read]"},
		},
		{
			name: "error with cause",
			err: &Error{
				Kind:   KindBind,
				Detail: "bind failed",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[bind]", "bind failed", "caused by: underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				assert.Contains(t, msg, s)
			}
		})
	}
}

func TestError_Is(t *testing.T) {
	err := TooLong([]string{"Order", "symbol"}, 12, 8)

	assert.True(t, errors.Is(err, ErrWrite))
	assert.False(t, errors.Is(err, ErrBind))
	assert.True(t, errors.Is(err, &Error{Kind: KindWrite, Reason: ReasonTooLong}))
	assert.False(t, errors.Is(err, &Error{Kind: KindWrite, Reason: ReasonReadOnly}))

	wrapped := fmt.Errorf("order: %w", err)
	assert.True(t, errors.Is(wrapped, ErrWrite))

	var target *Error
	assert.True(t, errors.As(wrapped, &target))
	assert.Equal(t, 12, target.Value)
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root")
	err := Wrap(KindSchema, ReasonUnknownType, cause, "field type")
	assert.Same(t, cause, errors.Unwrap(err))
}

func TestBuilder(t *testing.T) {
	err := New(KindBind, ReasonTooSmall).
		Path("Quote").
		Value(40).
		Detail("need %d bytes", 40).
		Build()

	assert.Equal(t, KindBind, err.Kind)
	assert.Equal(t, []string{"Quote"}, err.Path)
	assert.Equal(t, "need 40 bytes", err.Detail)
	assert.Equal(t, "[bind] too_small at Quote: need 40 bytes", err.Error())
}

func TestConstructors(t *testing.T) {
	assert.Equal(t, KindBind, TooSmall(nil, 10, 4).Kind)
	assert.Equal(t, KindWrite, ReadOnly(nil).Kind)
	assert.Equal(t, KindRead, OutOfRange(nil, 3, 3).Kind)
	assert.Equal(t, ReasonNotBound, NotBound(nil).Reason)
	assert.Equal(t, KindSchema, Schema(ReasonDuplicateID, []string{"A"}, "id %d", 7).Kind)
	assert.Equal(t, "[schema] duplicate_id at A: id 7", Schema(ReasonDuplicateID, []string{"A"}, "id %d", 7).Error())
}
