// Package forum implements the Query Hub content-lifecycle and reputation
// engine: CRUD over questions/answers/comments, vote and point accounting,
// derived read views, and moderation.
//
// All state lives behind one Engine guarded by a single mutex. Every mutating
// operation is one critical section: validation and authorization run first,
// then the in-memory collections are replaced and flushed to the store before
// the lock is released. Readers take the read lock and therefore observe
// either the pre- or post-state of a mutation, never a partial one.
package forum

import (
	"context"
	"sync"

	"github.com/query-hub/query-hub-forum/internal/domain/content"
	"github.com/query-hub/query-hub-forum/internal/domain/report"
	"github.com/query-hub/query-hub-forum/internal/domain/shared"
	"github.com/query-hub/query-hub-forum/internal/domain/user"
	"github.com/query-hub/query-hub-forum/internal/infrastructure/messaging"
	"github.com/query-hub/query-hub-forum/pkg/logger"
)

// state holds the five record collections. Slice order is meaningful:
// questions are newest-first, everything else oldest-first.
type state struct {
	users     []user.User
	questions []content.Question
	answers   []content.Answer
	comments  []content.Comment
	reports   []report.Report
}

// Engine owns exclusive write access to forum state. It is safe for
// concurrent use.
type Engine struct {
	mu    sync.RWMutex
	st    state
	store Store
	bus   *messaging.EventBus
	log   *logger.Logger
	ids   *idGenerator
}

// Options configures the engine.
type Options struct {
	// Store is the backing collection store. Required.
	Store Store

	// Bus receives domain events after each committed mutation. Optional.
	Bus *messaging.EventBus

	// Logger for structured logging. Defaults to the package default.
	Logger *logger.Logger
}

// New creates an engine. Call Load before use to hydrate state from the
// store.
func New(opts Options) *Engine {
	log := opts.Logger
	if log == nil {
		log = logger.Default()
	}
	return &Engine{
		store: opts.Store,
		bus:   opts.Bus,
		log:   log.With(logger.Component("forum")),
		ids:   newIDGenerator(),
	}
}

// Load hydrates all collections from the store, replacing current state.
func (e *Engine) Load(ctx context.Context) error {
	var st state
	if err := e.store.Load(ctx, CollectionUsers, &st.users); err != nil {
		return err
	}
	if err := e.store.Load(ctx, CollectionQuestions, &st.questions); err != nil {
		return err
	}
	if err := e.store.Load(ctx, CollectionAnswers, &st.answers); err != nil {
		return err
	}
	if err := e.store.Load(ctx, CollectionComments, &st.comments); err != nil {
		return err
	}
	if err := e.store.Load(ctx, CollectionReports, &st.reports); err != nil {
		return err
	}

	e.mu.Lock()
	e.st = st
	// Never hand out an id at or below one already in the store.
	e.ids.observe(maxID(&e.st))
	e.mu.Unlock()

	e.log.Info("state loaded",
		logger.Int("users", len(st.users)),
		logger.Int("questions", len(st.questions)),
		logger.Int("answers", len(st.answers)),
		logger.Int("comments", len(st.comments)),
		logger.Int("reports", len(st.reports)),
	)
	return nil
}

// maxID scans every collection for the highest id in use.
func maxID(st *state) int64 {
	var max int64
	for _, u := range st.users {
		if u.ID > max {
			max = u.ID
		}
	}
	for _, q := range st.questions {
		if q.ID > max {
			max = q.ID
		}
	}
	for _, a := range st.answers {
		if a.ID > max {
			max = a.ID
		}
	}
	for _, c := range st.comments {
		if c.ID > max {
			max = c.ID
		}
	}
	for _, r := range st.reports {
		if r.ID > max {
			max = r.ID
		}
	}
	return max
}

// col pairs a collection name with its replacement records for persistence.
type col struct {
	name    string
	records any
}

// persist flushes the given collections to the store in order. Called with
// the write lock held, before the new state is committed: if any flush fails
// the in-memory state stays untouched and the operation reports the failure.
// Because a failure leaves the earlier saves in place, callers order the
// collections so every failure prefix is referentially intact on reload —
// children before parents when removing records, point awards before the
// content that earned them.
func (e *Engine) persist(ctx context.Context, cols ...col) error {
	for _, c := range cols {
		if err := e.store.Save(ctx, c.name, c.records); err != nil {
			e.log.Error("persist failed", logger.Collection(c.name), logger.Err(err))
			return err
		}
	}
	return nil
}

// publish sends events to the bus. Must be called after the write lock is
// released so synchronous handlers can read engine state.
func (e *Engine) publish(events ...shared.Event) {
	if e.bus == nil {
		return
	}
	for _, ev := range events {
		e.bus.Publish(ev)
	}
}

// findUser returns the index of the user with the given id, or -1.
func (st *state) findUser(id int64) int {
	for i := range st.users {
		if st.users[i].ID == id {
			return i
		}
	}
	return -1
}

// findQuestion returns the index of the question with the given id, or -1.
func (st *state) findQuestion(id int64) int {
	for i := range st.questions {
		if st.questions[i].ID == id {
			return i
		}
	}
	return -1
}

// findAnswer returns the index of the answer with the given id, or -1.
func (st *state) findAnswer(id int64) int {
	for i := range st.answers {
		if st.answers[i].ID == id {
			return i
		}
	}
	return -1
}

// actor resolves the acting user for an authorization check. A zero id means
// no acting user (anonymous).
func (st *state) actor(domain, op string, actorID int64) (user.User, error) {
	if actorID == 0 {
		return user.User{}, shared.NewDomainError(domain, op, shared.ErrUnauthenticated, "no acting user")
	}
	idx := st.findUser(actorID)
	if idx < 0 {
		return user.User{}, shared.NewDomainError(domain, op, shared.ErrUnauthenticated, "acting user does not exist")
	}
	return st.users[idx], nil
}
