package forum

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/query-hub/query-hub-forum/internal/domain/shared"
	"github.com/query-hub/query-hub-forum/internal/domain/user"
)

func TestCastVote_Up(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	asker := mustRegister(t, e, "asker", user.RoleStudent)
	helper := mustRegister(t, e, "helper", user.RoleStudent)

	q, err := e.CreateQuestion(ctx, asker.ID, "title", "desc", "")
	require.NoError(t, err)
	a, err := e.CreateAnswer(ctx, q.ID, helper.ID, "answer")
	require.NoError(t, err)

	voted, err := e.CastVote(ctx, a.ID, asker.ID, DirectionUp)
	require.NoError(t, err)
	assert.Equal(t, 1, voted.Votes)

	got, _ := e.GetUser(helper.ID)
	assert.Equal(t, 5+2, got.Points)
}

func TestCastVote_Down(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	asker := mustRegister(t, e, "asker", user.RoleStudent)
	helper := mustRegister(t, e, "helper", user.RoleStudent)

	q, err := e.CreateQuestion(ctx, asker.ID, "title", "desc", "")
	require.NoError(t, err)
	a, err := e.CreateAnswer(ctx, q.ID, helper.ID, "answer")
	require.NoError(t, err)

	voted, err := e.CastVote(ctx, a.ID, asker.ID, DirectionDown)
	require.NoError(t, err)
	assert.Equal(t, -1, voted.Votes)

	// Votes go unbounded below zero.
	voted, err = e.CastVote(ctx, a.ID, asker.ID, DirectionDown)
	require.NoError(t, err)
	assert.Equal(t, -2, voted.Votes)

	got, _ := e.GetUser(helper.ID)
	assert.Equal(t, 5-1-1, got.Points)
}

func TestCastVote_UpThenDown(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	asker := mustRegister(t, e, "asker", user.RoleStudent)
	helper := mustRegister(t, e, "helper", user.RoleStudent)

	q, err := e.CreateQuestion(ctx, asker.ID, "title", "desc", "")
	require.NoError(t, err)
	a, err := e.CreateAnswer(ctx, q.ID, helper.ID, "answer")
	require.NoError(t, err)

	_, err = e.CastVote(ctx, a.ID, asker.ID, DirectionUp)
	require.NoError(t, err)
	voted, err := e.CastVote(ctx, a.ID, asker.ID, DirectionDown)
	require.NoError(t, err)

	// Vote count returns to its starting value, but the asymmetric point
	// deltas (+2/-1) leave the author one point ahead.
	assert.Equal(t, 0, voted.Votes)
	got, _ := e.GetUser(helper.ID)
	assert.Equal(t, 5+2-1, got.Points)
}

func TestCastVote_PointsFormula(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	asker := mustRegister(t, e, "asker", user.RoleStudent)
	helper := mustRegister(t, e, "helper", user.RoleStudent)

	q, err := e.CreateQuestion(ctx, asker.ID, "title", "desc", "")
	require.NoError(t, err)

	// K answers, N upvotes, M downvotes: points = 5K + 2N - M.
	const answersK, upsN, downsM = 3, 4, 2
	var answerIDs []int64
	for i := 0; i < answersK; i++ {
		a, err := e.CreateAnswer(ctx, q.ID, helper.ID, "answer")
		require.NoError(t, err)
		answerIDs = append(answerIDs, a.ID)
	}
	for i := 0; i < upsN; i++ {
		_, err := e.CastVote(ctx, answerIDs[i%answersK], asker.ID, DirectionUp)
		require.NoError(t, err)
	}
	for i := 0; i < downsM; i++ {
		_, err := e.CastVote(ctx, answerIDs[i%answersK], asker.ID, DirectionDown)
		require.NoError(t, err)
	}

	got, _ := e.GetUser(helper.ID)
	assert.Equal(t, 5*answersK+2*upsN-downsM, got.Points)
}

func TestCastVote_SelfVoteAllowed(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	helper := mustRegister(t, e, "helper", user.RoleStudent)

	q, err := e.CreateQuestion(ctx, helper.ID, "title", "desc", "")
	require.NoError(t, err)
	a, err := e.CreateAnswer(ctx, q.ID, helper.ID, "answer")
	require.NoError(t, err)

	_, err = e.CastVote(ctx, a.ID, helper.ID, DirectionUp)
	require.NoError(t, err)
	got, _ := e.GetUser(helper.ID)
	assert.Equal(t, 5+2, got.Points)
}

func TestCastVote_Errors(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	asker := mustRegister(t, e, "asker", user.RoleStudent)
	q, err := e.CreateQuestion(ctx, asker.ID, "title", "desc", "")
	require.NoError(t, err)
	a, err := e.CreateAnswer(ctx, q.ID, asker.ID, "answer")
	require.NoError(t, err)

	_, err = e.CastVote(ctx, a.ID, asker.ID, Direction("sideways"))
	assert.True(t, shared.IsValidation(err))

	_, err = e.CastVote(ctx, a.ID, 0, DirectionUp)
	assert.True(t, shared.IsUnauthenticated(err))

	_, err = e.CastVote(ctx, a.ID, 424242, DirectionUp)
	assert.True(t, shared.IsUnauthenticated(err))

	_, err = e.CastVote(ctx, 424242, asker.ID, DirectionUp)
	assert.True(t, shared.IsNotFound(err))
}
