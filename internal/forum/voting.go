package forum

import (
	"context"
	"slices"

	"github.com/query-hub/query-hub-forum/internal/domain/content"
	"github.com/query-hub/query-hub-forum/internal/domain/shared"
	"github.com/query-hub/query-hub-forum/internal/domain/user"
	"github.com/query-hub/query-hub-forum/pkg/logger"
)

// Direction is the direction of a vote.
type Direction string

const (
	// DirectionUp increments the answer's votes and awards the author +2.
	DirectionUp Direction = "up"
	// DirectionDown decrements the answer's votes and costs the author 1.
	DirectionDown Direction = "down"
)

// IsValid checks that the direction is one of the closed set.
func (d Direction) IsValid() bool {
	return d == DirectionUp || d == DirectionDown
}

// Point deltas applied to the answer's author per vote.
const (
	upvoteAuthorPoints   = 2
	downvoteAuthorPoints = -1
)

// CastVote applies a vote to an answer. The vote count on the answer and the
// point delta on the answer's author commit as one atomic pair: a concurrent
// read never observes one without the other.
//
// There is no per-user vote ledger; the same user may vote on the same
// answer any number of times and every vote counts. Known limitation,
// kept until there is a product decision on vote dedup.
func (e *Engine) CastVote(ctx context.Context, answerID, actorID int64, dir Direction) (content.Answer, error) {
	if !dir.IsValid() {
		return content.Answer{}, shared.ErrUnknownDirection
	}
	if actorID == 0 {
		return content.Answer{}, shared.ErrAnonymousVote
	}

	e.mu.Lock()
	if e.st.findUser(actorID) < 0 {
		e.mu.Unlock()
		return content.Answer{}, shared.ErrAnonymousVote
	}
	idx := e.st.findAnswer(answerID)
	if idx < 0 {
		e.mu.Unlock()
		return content.Answer{}, shared.ErrAnswerNotFound
	}

	voteDelta, pointDelta := 1, upvoteAuthorPoints
	if dir == DirectionDown {
		voteDelta, pointDelta = -1, downvoteAuthorPoints
	}

	answers := slices.Clone(e.st.answers)
	answers[idx].Votes += voteDelta
	users, newTotal := awardPoints(e.st.users, answers[idx].AuthorID, pointDelta)

	// Users flush first so a stored vote never precedes its point delta.
	if err := e.persist(ctx,
		col{CollectionUsers, users},
		col{CollectionAnswers, answers},
	); err != nil {
		e.mu.Unlock()
		return content.Answer{}, err
	}
	voted := answers[idx]
	e.st.answers = answers
	e.st.users = users
	e.mu.Unlock()

	e.log.Info("vote cast",
		logger.AnswerID(answerID),
		logger.UserID(actorID),
		logger.String("direction", string(dir)),
		logger.Votes(voted.Votes),
	)
	e.publish(
		shared.NewEvent(shared.EventVoteCast, answerID, map[string]any{
			"voter_id":  actorID,
			"direction": string(dir),
			"votes":     voted.Votes,
		}),
		shared.NewEvent(shared.EventPointsAwarded, voted.AuthorID, map[string]any{
			"delta":  pointDelta,
			"total":  newTotal,
			"reason": "vote",
		}),
	)
	return voted, nil
}

// awardPoints applies a point delta to a user on a cloned users slice and
// returns the new total. Totals are unbounded in both directions. A missing
// user (possible only for stale author ids) leaves the clone unchanged.
func awardPoints(users []user.User, userID int64, delta int) ([]user.User, int) {
	out := slices.Clone(users)
	for i := range out {
		if out[i].ID == userID {
			out[i].Points += delta
			return out, out[i].Points
		}
	}
	return out, 0
}
