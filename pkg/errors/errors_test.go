package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStencilError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *StencilError
		want string
	}{
		{
			name: "simple error",
			err:  New(ErrTemplateInvalid, "bad template"),
			want: "[TEMPLATE_INVALID] bad template",
		},
		{
			name: "wrapped error",
			err:  Wrap(fmt.Errorf("boom"), ErrFileAccess, "cannot read"),
			want: "[FILE_ACCESS] cannot read: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestErrorCodeMatching(t *testing.T) {
	base := New(ErrMergeMethodMissing, "no merge method for path")
	wrapped := fmt.Errorf("outer: %w", base)

	assert.True(t, IsErrorCode(wrapped, ErrMergeMethodMissing))
	assert.False(t, IsErrorCode(wrapped, ErrMergeMethodUnknown))
	assert.Equal(t, ErrMergeMethodMissing, GetErrorCode(wrapped))
	assert.Equal(t, ErrUnknown, GetErrorCode(errors.New("plain")))
}

func TestWrapNil(t *testing.T) {
	require.Nil(t, Wrap(nil, ErrInternal, "ignored"))
	require.Nil(t, Wrapf(nil, ErrInternal, "ignored %d", 1))
}

func TestWithDetail(t *testing.T) {
	err := New(ErrVariantNotFound, "missing variant").
		WithDetail("template", "web-app").
		WithDetail("variant", "lint")

	assert.Equal(t, "web-app", err.Details["template"])
	assert.Equal(t, "lint", err.Details["variant"])
}
