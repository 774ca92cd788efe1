package auth

import (
	"testing"

	"askpro_backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCanAnswer(t *testing.T) {
	assert.False(t, CanAnswer(models.UserRoleRegular))
	assert.True(t, CanAnswer(models.UserRolePower))
	assert.True(t, CanAnswer(models.UserRoleAdmin))
}

func TestCanModerate(t *testing.T) {
	assert.False(t, CanModerate(models.UserRoleRegular))
	assert.False(t, CanModerate(models.UserRolePower))
	assert.True(t, CanModerate(models.UserRoleAdmin))
}

func TestIsExemptFromModeration(t *testing.T) {
	assert.True(t, IsExemptFromModeration(models.UserRoleAdmin))
	assert.False(t, IsExemptFromModeration(models.UserRolePower))
	assert.False(t, IsExemptFromModeration(models.UserRoleRegular))
}

func TestIsReviewable(t *testing.T) {
	assert.True(t, IsReviewable(models.UserRolePower))
	assert.False(t, IsReviewable(models.UserRoleRegular))
	assert.False(t, IsReviewable(models.UserRoleAdmin))
}
