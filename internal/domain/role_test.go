package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleRankOrdering(t *testing.T) {
	assert.Greater(t, RoleAdmin.Rank(), RoleDevotee.Rank())
	assert.Greater(t, RoleDevotee.Rank(), RoleBasic.Rank())
	assert.Greater(t, RoleBasic.Rank(), Role("corrupt").Rank())
}

func TestRoleElevated(t *testing.T) {
	assert.True(t, RoleAdmin.Elevated())
	assert.True(t, RoleDevotee.Elevated())
	assert.False(t, RoleBasic.Elevated())
	assert.False(t, Role("").Elevated())
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleBasic.Valid())
	assert.True(t, RoleDevotee.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("superuser").Valid())
	assert.False(t, Role("").Valid())
}
