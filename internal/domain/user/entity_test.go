package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	r, err := ParseRole("  Mentor ")
	require.NoError(t, err)
	assert.Equal(t, RoleMentor, r)

	_, err = ParseRole("wizard")
	assert.Error(t, err)
}

func TestRoleCapabilities(t *testing.T) {
	assert.False(t, RoleStudent.CanModerate())
	assert.False(t, RoleMentor.CanModerate())
	assert.True(t, RoleAdmin.CanModerate())

	assert.True(t, RoleStudent.OnLeaderboard())
	assert.True(t, RoleMentor.OnLeaderboard())
	assert.False(t, RoleAdmin.OnLeaderboard())
}

func TestUserValidate(t *testing.T) {
	u := User{ID: 1, Username: "alice", Email: "alice@test.com", Role: RoleStudent}
	assert.NoError(t, u.Validate())

	assert.Error(t, (&User{Username: "alice", Email: "a@b.c", Role: RoleStudent}).Validate())
	assert.Error(t, (&User{ID: 1, Email: "a@b.c", Role: RoleStudent}).Validate())
	assert.Error(t, (&User{ID: 1, Username: "alice", Role: RoleStudent}).Validate())
	assert.Error(t, (&User{ID: 1, Username: "alice", Email: "a@b.c", Role: Role("wizard")}).Validate())
}

func TestSnapshot(t *testing.T) {
	u := User{Username: "alice", Role: RoleMentor}
	assert.Equal(t, Snapshot{Username: "alice", Role: RoleMentor}, u.Snapshot())
}
