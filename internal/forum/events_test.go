package forum

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/query-hub/query-hub-forum/internal/domain/shared"
	"github.com/query-hub/query-hub-forum/internal/domain/user"
	"github.com/query-hub/query-hub-forum/internal/infrastructure/messaging"
	"github.com/query-hub/query-hub-forum/internal/infrastructure/persistence/memory"
	"github.com/query-hub/query-hub-forum/pkg/logger"
)

func TestEngine_PublishesEvents(t *testing.T) {
	quiet := logger.New(logger.Options{Level: logger.LevelFatal})
	bus := messaging.NewEventBus(quiet)
	var seen []shared.EventType
	bus.SubscribeAll(func(ev shared.Event) {
		seen = append(seen, ev.EventType())
	})

	e := New(Options{Store: memory.New(), Bus: bus, Logger: quiet})
	ctx := context.Background()
	require.NoError(t, e.Load(ctx))

	asker, err := e.RegisterUser(ctx, "asker", "asker@test.com", "hash", user.RoleStudent)
	require.NoError(t, err)
	helper, err := e.RegisterUser(ctx, "helper", "helper@test.com", "hash", user.RoleStudent)
	require.NoError(t, err)

	q, err := e.CreateQuestion(ctx, asker.ID, "title", "desc", "go")
	require.NoError(t, err)
	a, err := e.CreateAnswer(ctx, q.ID, helper.ID, "answer")
	require.NoError(t, err)
	_, err = e.CastVote(ctx, a.ID, asker.ID, DirectionUp)
	require.NoError(t, err)
	require.NoError(t, e.MarkSolved(ctx, q.ID, asker.ID))

	assert.Equal(t, []shared.EventType{
		shared.EventUserRegistered,
		shared.EventUserRegistered,
		shared.EventQuestionCreated,
		shared.EventAnswerCreated,
		shared.EventPointsAwarded,
		shared.EventVoteCast,
		shared.EventPointsAwarded,
		shared.EventQuestionSolved,
	}, seen)
}

func TestEngine_EventsCarryAggregateAndPayload(t *testing.T) {
	quiet := logger.New(logger.Options{Level: logger.LevelFatal})
	bus := messaging.NewEventBus(quiet)
	var votes []shared.Event
	bus.Subscribe(shared.EventVoteCast, func(ev shared.Event) {
		votes = append(votes, ev)
	})

	e := New(Options{Store: memory.New(), Bus: bus, Logger: quiet})
	ctx := context.Background()
	require.NoError(t, e.Load(ctx))

	u, err := e.RegisterUser(ctx, "voter", "voter@test.com", "hash", user.RoleStudent)
	require.NoError(t, err)
	q, err := e.CreateQuestion(ctx, u.ID, "title", "desc", "")
	require.NoError(t, err)
	a, err := e.CreateAnswer(ctx, q.ID, u.ID, "answer")
	require.NoError(t, err)
	_, err = e.CastVote(ctx, a.ID, u.ID, DirectionDown)
	require.NoError(t, err)

	require.Len(t, votes, 1)
	ev := votes[0]
	assert.Equal(t, a.ID, ev.AggregateID())
	assert.False(t, ev.OccurredAt().IsZero())
	payload := ev.Payload()
	assert.Equal(t, "down", payload["direction"])
	assert.Equal(t, -1, payload["votes"])
	assert.NotEmpty(t, payload["event_id"])
}
