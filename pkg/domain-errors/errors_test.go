package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasCode(t *testing.T) {
	err := New(CodeStaleStage, "stage changed underneath the caller")
	assert.True(t, HasCode(err, CodeStaleStage))
	assert.False(t, HasCode(err, CodeAlreadyTerminal))
	assert.False(t, HasCode(errors.New("plain"), CodeStaleStage))
	assert.False(t, HasCode(nil, CodeStaleStage))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(cause, CodeInternal, "project store unavailable")
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.True(t, HasCode(err, CodeInternal))

	wrapped := fmt.Errorf("decide: %w", err)
	assert.True(t, HasCode(wrapped, CodeInternal))
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, CodeInternal, "ignored"))
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeNotAssignee, CodeOf(New(CodeNotAssignee, "not yours")))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeInvalidLinkDomain:     http.StatusBadRequest,
		CodeRemarkTooShort:        http.StatusBadRequest,
		CodeUnauthorized:          http.StatusUnauthorized,
		CodeNotAssignee:           http.StatusForbidden,
		CodeNotFound:              http.StatusNotFound,
		CodeStaleStage:            http.StatusConflict,
		CodeComplianceNotApproved: http.StatusConflict,
		CodeInternal:              http.StatusInternalServerError,
		Code("unmapped"):          http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, HTTPStatus(code), "code %s", code)
	}
}
