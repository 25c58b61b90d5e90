package forum

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/query-hub/query-hub-forum/internal/domain/shared"
	"github.com/query-hub/query-hub-forum/internal/domain/user"
	"github.com/query-hub/query-hub-forum/pkg/logger"
)

// RegisterUser creates a new user with zero points. Username and email must
// be unique across the forum. The password hash is produced by the identity
// collaborator; the engine never sees plaintext credentials.
func (e *Engine) RegisterUser(ctx context.Context, username, email, passwordHash string, role user.Role) (user.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" {
		return user.User{}, shared.NewDomainError("user", "Register", shared.ErrValidation, "username and email are required")
	}
	if !role.IsValid() {
		return user.User{}, shared.NewDomainError("user", "Register", shared.ErrValidation, "invalid role")
	}

	e.mu.Lock()
	for _, u := range e.st.users {
		if strings.EqualFold(u.Username, username) {
			e.mu.Unlock()
			return user.User{}, shared.ErrUsernameTaken
		}
		if strings.EqualFold(u.Email, email) {
			e.mu.Unlock()
			return user.User{}, shared.ErrEmailTaken
		}
	}

	u := user.User{
		ID:           e.ids.Next(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		Points:       0,
		CreatedAt:    time.Now().UTC(),
	}

	users := append(slices.Clone(e.st.users), u)
	if err := e.persist(ctx, col{CollectionUsers, users}); err != nil {
		e.mu.Unlock()
		return user.User{}, err
	}
	e.st.users = users
	e.mu.Unlock()

	e.log.Info("user registered", logger.UserID(u.ID), logger.Username(u.Username), logger.Role(u.Role.String()))
	e.publish(shared.NewEvent(shared.EventUserRegistered, u.ID, map[string]any{
		"username": u.Username,
		"role":     u.Role.String(),
	}))
	return u, nil
}

// UpdateProfile overwrites a user's username and bio. Role, email, and
// points are not editable here, and author snapshots on existing content
// are deliberately left stale.
func (e *Engine) UpdateProfile(ctx context.Context, userID int64, username, bio string) (user.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return user.User{}, shared.NewDomainError("user", "UpdateProfile", shared.ErrValidation, "username cannot be empty")
	}

	e.mu.Lock()
	idx := e.st.findUser(userID)
	if idx < 0 {
		e.mu.Unlock()
		return user.User{}, shared.ErrUserNotFound
	}

	users := slices.Clone(e.st.users)
	users[idx].Username = username
	users[idx].Bio = bio

	if err := e.persist(ctx, col{CollectionUsers, users}); err != nil {
		e.mu.Unlock()
		return user.User{}, err
	}
	updated := users[idx]
	e.st.users = users
	e.mu.Unlock()

	e.log.Info("profile updated", logger.UserID(userID), logger.Username(username))
	e.publish(shared.NewEvent(shared.EventUserUpdated, userID, nil))
	return updated, nil
}

// FindUserByEmail returns the user with the given email, case-insensitively.
func (e *Engine) FindUserByEmail(email string) (user.User, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, u := range e.st.users {
		if strings.EqualFold(u.Email, email) {
			return u, true
		}
	}
	return user.User{}, false
}
