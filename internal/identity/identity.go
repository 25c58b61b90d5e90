// Package identity implements the acting-user collaborator of the forum
// engine: credential verification and the "who is acting" lookup. Session
// transport and storage stay with the host application; this provider only
// tracks which user id is currently acting.
package identity

import (
	"context"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/query-hub/query-hub-forum/internal/domain/shared"
	"github.com/query-hub/query-hub-forum/internal/domain/user"
	"github.com/query-hub/query-hub-forum/internal/forum"
	"github.com/query-hub/query-hub-forum/pkg/logger"
)

// Identity supplies the current acting user to role-gated operations.
// The second return is false when nobody is acting (anonymous).
type Identity interface {
	CurrentUser() (user.User, bool)
}

// Provider is the engine-backed Identity implementation.
type Provider struct {
	mu        sync.RWMutex
	engine    *forum.Engine
	log       *logger.Logger
	currentID int64
}

// NewProvider creates an identity provider over the given engine.
func NewProvider(engine *forum.Engine, log *logger.Logger) *Provider {
	if log == nil {
		log = logger.Default()
	}
	return &Provider{
		engine: engine,
		log:    log.With(logger.Component("identity")),
	}
}

// Register creates a new account with the student role and signs it in.
func (p *Provider) Register(ctx context.Context, username, email, password string) (user.User, error) {
	if password == "" {
		return user.User{}, shared.NewDomainError("identity", "Register", shared.ErrValidation, "password is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, shared.WrapError("identity", "Register", shared.ErrValidation, "hash password", err)
	}

	u, err := p.engine.RegisterUser(ctx, username, email, string(hash), user.RoleStudent)
	if err != nil {
		return user.User{}, err
	}

	p.mu.Lock()
	p.currentID = u.ID
	p.mu.Unlock()

	p.log.Info("user signed up", logger.UserID(u.ID), logger.Username(u.Username))
	return u, nil
}

// Login verifies credentials and signs the user in. Failures do not reveal
// whether the email or the password was wrong.
func (p *Provider) Login(_ context.Context, email, password string) (user.User, error) {
	u, ok := p.engine.FindUserByEmail(email)
	if !ok {
		return user.User{}, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return user.User{}, shared.ErrInvalidCredentials
	}

	p.mu.Lock()
	p.currentID = u.ID
	p.mu.Unlock()

	p.log.Info("user logged in", logger.UserID(u.ID), logger.Username(u.Username))
	return u, nil
}

// Logout clears the acting user.
func (p *Provider) Logout() {
	p.mu.Lock()
	p.currentID = 0
	p.mu.Unlock()
}

// CurrentUser returns the acting user, re-read from engine state so points
// and profile edits are always fresh. A signed-in user that has since been
// deleted counts as anonymous.
func (p *Provider) CurrentUser() (user.User, bool) {
	p.mu.RLock()
	id := p.currentID
	p.mu.RUnlock()
	if id == 0 {
		return user.User{}, false
	}
	return p.engine.GetUser(id)
}
