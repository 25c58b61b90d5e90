package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/query-hub/query-hub-forum/internal/domain/user"
)

func TestStoreRoundTrip(t *testing.T) {
	s := New()
	ctx := context.Background()

	in := []user.User{
		{ID: 1, Username: "alice", Email: "alice@test.com", Role: user.RoleStudent, Points: 7},
		{ID: 2, Username: "bob", Email: "bob@test.com", Role: user.RoleMentor, Points: -3},
	}
	require.NoError(t, s.Save(ctx, "users", in))

	var out []user.User
	require.NoError(t, s.Load(ctx, "users", &out))
	assert.Equal(t, in, out)
}

func TestStoreLoad_AbsentLeavesOutUntouched(t *testing.T) {
	s := New()

	out := []user.User{{ID: 99}}
	require.NoError(t, s.Load(context.Background(), "never-written", &out))
	assert.Equal(t, []user.User{{ID: 99}}, out)
}

func TestStoreSave_Replaces(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "users", []user.User{{ID: 1}, {ID: 2}}))
	require.NoError(t, s.Save(ctx, "users", []user.User{{ID: 3}}))

	var out []user.User
	require.NoError(t, s.Load(ctx, "users", &out))
	require.Len(t, out, 1)
	assert.Equal(t, int64(3), out[0].ID)
}

func TestStoreReset(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "users", []user.User{{ID: 1}}))
	s.Reset()

	out := make([]user.User, 0)
	require.NoError(t, s.Load(ctx, "users", &out))
	assert.Empty(t, out)
}
