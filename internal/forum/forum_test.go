package forum

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/query-hub/query-hub-forum/internal/domain/user"
	"github.com/query-hub/query-hub-forum/internal/infrastructure/persistence/memory"
	"github.com/query-hub/query-hub-forum/pkg/logger"
)

// newTestEngine builds an engine over a fresh in-memory store with a quiet
// logger.
func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e := New(Options{
		Store:  memory.New(),
		Logger: logger.New(logger.Options{Level: logger.LevelFatal}),
	})
	require.NoError(t, e.Load(context.Background()))
	return e
}

// mustRegister creates a user with the given role.
func mustRegister(t *testing.T, e *Engine, username string, role user.Role) user.User {
	t.Helper()
	u, err := e.RegisterUser(context.Background(), username, username+"@test.com", "x", role)
	require.NoError(t, err)
	return u
}
