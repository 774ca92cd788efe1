package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Rating   int    `json:"rating" validate:"min=1,max=5"`
}

type verdictRequest struct {
	Status string `json:"status" validate:"required,is-application-status"`
}

func TestValidate_OK(t *testing.T) {
	v := New()
	err := v.Validate(&sampleRequest{Username: "alice", Email: "alice@example.com", Rating: 4})
	assert.NoError(t, err)
}

func TestValidate_UsesJSONFieldNames(t *testing.T) {
	v := New()
	err := v.Validate(&sampleRequest{Username: "al", Email: "not-an-email", Rating: 6})
	require.Error(t, err)

	vErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Contains(t, vErr.Errors, "username")
	assert.Contains(t, vErr.Errors, "email")
	assert.Contains(t, vErr.Errors, "rating")
}

func TestValidate_ApplicationVerdict(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&verdictRequest{Status: "approved"}))
	assert.NoError(t, v.Validate(&verdictRequest{Status: "rejected"}))

	// pending вердиктом не является
	err := v.Validate(&verdictRequest{Status: "pending"})
	require.Error(t, err)
	vErr := err.(*ValidationError)
	assert.Contains(t, vErr.Errors["status"], "approved")
}
