package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorString(t *testing.T) {
	err := New(ErrorTypeNotFound, "profile not found", 404)
	assert.Equal(t, "not_found error (code 404): profile not found", err.Error())
}

func TestTypeOf(t *testing.T) {
	assert.Equal(t, ErrorTypeNetwork, TypeOf(New(ErrorTypeNetwork, "refused", 0)))
	assert.Equal(t, ErrorTypeUnknown, TypeOf(fmt.Errorf("plain error")))
}

func TestIsRetryableStatusCode(t *testing.T) {
	tests := []struct {
		code int
		want bool
	}{
		{0, true},
		{429, true},
		{500, true},
		{502, true},
		{503, true},
		{504, true},
		{599, true},
		{401, false},
		{403, false},
		{404, false},
		{200, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d", tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryableStatusCode(tt.code))
		})
	}
}
