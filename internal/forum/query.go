package forum

import (
	"slices"
	"sort"

	"github.com/query-hub/query-hub-forum/internal/domain/content"
	"github.com/query-hub/query-hub-forum/internal/domain/report"
	"github.com/query-hub/query-hub-forum/internal/domain/user"
)

// Read-side of the engine: pure derivations over current state. Every query
// takes the read lock, never mutates, and returns empty results rather than
// errors when a referenced id does not exist. Results are copies; callers
// may retain them freely.

// cloneQuestion copies a question with its own tags backing array, so a
// caller mutating the result cannot reach engine state.
func cloneQuestion(q content.Question) content.Question {
	q.Tags = slices.Clone(q.Tags)
	return q
}

// SortBy selects the ordering of a question search.
type SortBy string

const (
	// SortLatest orders by creation time, newest first.
	SortLatest SortBy = "latest"
	// SortMostAnswered orders by answer count, highest first.
	SortMostAnswered SortBy = "mostAnswered"
)

// SearchQuestions filters questions by a case-insensitive substring match of
// term against title or description, and of tagFilter against the raw tags
// string, then sorts. Ties keep stable storage order (newest-first).
func (e *Engine) SearchQuestions(term, tagFilter string, sortBy SortBy) []content.Question {
	e.mu.RLock()
	defer e.mu.RUnlock()

	matched := make([]content.Question, 0, len(e.st.questions))
	for _, q := range e.st.questions {
		if q.MatchesTerm(term) && q.MatchesTag(tagFilter) {
			matched = append(matched, cloneQuestion(q))
		}
	}

	switch sortBy {
	case SortMostAnswered:
		counts := make(map[int64]int, len(matched))
		for _, a := range e.st.answers {
			counts[a.QuestionID]++
		}
		sort.SliceStable(matched, func(i, j int) bool {
			return counts[matched[i].ID] > counts[matched[j].ID]
		})
	default:
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		})
	}
	return matched
}

// GetQuestion returns the question with the given id.
func (e *Engine) GetQuestion(questionID int64) (content.Question, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	idx := e.st.findQuestion(questionID)
	if idx < 0 {
		return content.Question{}, false
	}
	return cloneQuestion(e.st.questions[idx]), true
}

// GetUser returns the user with the given id.
func (e *Engine) GetUser(userID int64) (user.User, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	idx := e.st.findUser(userID)
	if idx < 0 {
		return user.User{}, false
	}
	return e.st.users[idx], true
}

// AnswersForQuestion returns the answers to a question sorted by votes
// descending; equal vote counts keep insertion order. A deleted or unknown
// question yields an empty slice.
func (e *Engine) AnswersForQuestion(questionID int64) []content.Answer {
	e.mu.RLock()
	defer e.mu.RUnlock()

	answers := make([]content.Answer, 0)
	for _, a := range e.st.answers {
		if a.QuestionID == questionID {
			answers = append(answers, a)
		}
	}
	sort.SliceStable(answers, func(i, j int) bool {
		return answers[i].Votes > answers[j].Votes
	})
	return answers
}

// CommentsForAnswer returns the comments on an answer in insertion order.
func (e *Engine) CommentsForAnswer(answerID int64) []content.Comment {
	e.mu.RLock()
	defer e.mu.RUnlock()

	comments := make([]content.Comment, 0)
	for _, c := range e.st.comments {
		if c.AnswerID == answerID {
			comments = append(comments, c)
		}
	}
	return comments
}

// TopContributors returns up to limit users with positive points, sorted by
// points descending. Ties keep stable storage order.
func (e *Engine) TopContributors(limit int) []user.User {
	e.mu.RLock()
	defer e.mu.RUnlock()

	top := make([]user.User, 0)
	for _, u := range e.st.users {
		if u.Points > 0 {
			top = append(top, u)
		}
	}
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Points > top[j].Points
	})
	if limit >= 0 && len(top) > limit {
		top = top[:limit]
	}
	return top
}

// UserStats aggregates a user's contribution counts. VoteSum is the total of
// votes across the user's answers, zero when there are none.
type UserStats struct {
	QuestionCount int
	AnswerCount   int
	VoteSum       int
}

// StatsForUser derives contribution stats for one user.
func (e *Engine) StatsForUser(userID int64) UserStats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.st.statsForUser(userID)
}

func (st *state) statsForUser(userID int64) UserStats {
	var s UserStats
	for _, q := range st.questions {
		if q.AuthorID == userID {
			s.QuestionCount++
		}
	}
	for _, a := range st.answers {
		if a.AuthorID == userID {
			s.AnswerCount++
			s.VoteSum += a.Votes
		}
	}
	return s
}

// LeaderboardEntry is one ranked row of the role leaderboard.
type LeaderboardEntry struct {
	User  user.User
	Stats UserStats
}

// Leaderboard returns all users of the given role sorted by points
// descending, each with derived contribution stats. Ties keep stable
// storage order.
func (e *Engine) Leaderboard(role user.Role) []LeaderboardEntry {
	e.mu.RLock()
	defer e.mu.RUnlock()

	entries := make([]LeaderboardEntry, 0)
	for _, u := range e.st.users {
		if u.Role != role {
			continue
		}
		entries = append(entries, LeaderboardEntry{
			User:  u,
			Stats: e.st.statsForUser(u.ID),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].User.Points > entries[j].User.Points
	})
	return entries
}

// DistinctTags returns every distinct trimmed tag token across all
// questions, in first-occurrence order.
func (e *Engine) DistinctTags() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	seen := make(map[string]bool)
	tags := make([]string, 0)
	for _, q := range e.st.questions {
		for _, t := range q.Tags {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	return tags
}

// QuestionsByUser returns the questions authored by a user in storage order
// (newest-first).
func (e *Engine) QuestionsByUser(userID int64) []content.Question {
	e.mu.RLock()
	defer e.mu.RUnlock()

	questions := make([]content.Question, 0)
	for _, q := range e.st.questions {
		if q.AuthorID == userID {
			questions = append(questions, cloneQuestion(q))
		}
	}
	return questions
}

// AnswersByUser returns the answers authored by a user in storage order
// (oldest-first).
func (e *Engine) AnswersByUser(userID int64) []content.Answer {
	e.mu.RLock()
	defer e.mu.RUnlock()

	answers := make([]content.Answer, 0)
	for _, a := range e.st.answers {
		if a.AuthorID == userID {
			answers = append(answers, a)
		}
	}
	return answers
}

// Reports returns the moderation log in insertion order.
func (e *Engine) Reports() []report.Report {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return slices.Clone(e.st.reports)
}

// CommunityStats are the headline counters of the forum.
type CommunityStats struct {
	TotalQuestions  int
	TotalUsers      int
	SolvedQuestions int
}

// Stats derives the community counters.
func (e *Engine) Stats() CommunityStats {
	e.mu.RLock()
	defer e.mu.RUnlock()

	s := CommunityStats{
		TotalQuestions: len(e.st.questions),
		TotalUsers:     len(e.st.users),
	}
	for _, q := range e.st.questions {
		if q.IsSolved {
			s.SolvedQuestions++
		}
	}
	return s
}
