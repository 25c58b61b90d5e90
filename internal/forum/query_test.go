package forum

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/query-hub/query-hub-forum/internal/domain/user"
)

func newSeededEngine(t *testing.T) *Engine {
	t.Helper()
	e := newTestEngine(t)
	require.NoError(t, e.Seed(context.Background()))
	return e
}

func TestSearchQuestions_Latest(t *testing.T) {
	e := newSeededEngine(t)

	all := e.SearchQuestions("", "", SortLatest)
	require.Len(t, all, 5)
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].CreatedAt.After(all[i-1].CreatedAt),
			"questions must be newest-first")
	}
	assert.Equal(t, "Best practices for database design?", all[0].Title)
}

func TestSearchQuestions_Term(t *testing.T) {
	e := newSeededEngine(t)

	got := e.SearchQuestions("BINARY", "", SortLatest)
	require.Len(t, got, 1)
	assert.Equal(t, "How to implement binary search algorithm?", got[0].Title)

	// Term also matches descriptions.
	got = e.SearchQuestions("margin: auto", "", SortLatest)
	require.Len(t, got, 1)
	assert.Equal(t, "How do I center a div in CSS?", got[0].Title)

	assert.Empty(t, e.SearchQuestions("no such thing anywhere", "", SortLatest))
}

func TestSearchQuestions_TagFilter(t *testing.T) {
	e := newSeededEngine(t)

	got := e.SearchQuestions("", "javascript", SortLatest)
	require.Len(t, got, 2)
	assert.Equal(t, "React useState vs useEffect - when to use each?", got[0].Title)

	// The tag filter is a substring match against the joined tags string.
	got = e.SearchQuestions("", "script", SortLatest)
	assert.Len(t, got, 2)

	// Term and tag filters compose.
	got = e.SearchQuestions("hooks", "javascript", SortLatest)
	require.Len(t, got, 1)
	assert.Equal(t, int64(4), got[0].ID)
}

func TestSearchQuestions_MostAnswered(t *testing.T) {
	e := newSeededEngine(t)

	got := e.SearchQuestions("", "", SortMostAnswered)
	require.Len(t, got, 5)
	// Question 1 has two answers; 2 and 3 have one each; 4 and 5 have none.
	assert.Equal(t, int64(1), got[0].ID)
	assert.ElementsMatch(t, []int64{got[1].ID, got[2].ID}, []int64{2, 3})
	assert.ElementsMatch(t, []int64{got[3].ID, got[4].ID}, []int64{4, 5})
}

func TestAnswersForQuestion_VotesDescending(t *testing.T) {
	e := newSeededEngine(t)

	answers := e.AnswersForQuestion(1)
	require.Len(t, answers, 2)
	assert.Equal(t, 12, answers[0].Votes)
	assert.Equal(t, 5, answers[1].Votes)

	assert.Empty(t, e.AnswersForQuestion(424242))
}

func TestCommentsForAnswer_InsertionOrder(t *testing.T) {
	e := newSeededEngine(t)

	comments := e.CommentsForAnswer(1)
	require.Len(t, comments, 2)
	assert.Equal(t, int64(1), comments[0].ID)
	assert.Equal(t, int64(2), comments[1].ID)

	assert.Empty(t, e.CommentsForAnswer(424242))
}

func TestTopContributors(t *testing.T) {
	e := newSeededEngine(t)

	top := e.TopContributors(3)
	require.Len(t, top, 3)
	assert.Equal(t, "sarah_mentor", top[0].Username)
	assert.Equal(t, "prof_smith", top[1].Username)
	assert.Equal(t, "john_student", top[2].Username)

	// Negative limit means no truncation.
	assert.Len(t, e.TopContributors(-1), 4)
}

func TestTopContributors_SkipsZeroPoints(t *testing.T) {
	e := newSeededEngine(t)
	fresh := mustRegister(t, e, "newcomer", user.RoleStudent)

	for _, u := range e.TopContributors(-1) {
		assert.NotEqual(t, fresh.ID, u.ID)
	}
}

func TestLeaderboard(t *testing.T) {
	e := newSeededEngine(t)

	mentors := e.Leaderboard(user.RoleMentor)
	require.Len(t, mentors, 2)
	assert.Equal(t, "sarah_mentor", mentors[0].User.Username)
	assert.Equal(t, 120, mentors[0].User.Points)
	assert.Equal(t, "prof_smith", mentors[1].User.Username)
	assert.Equal(t, 95, mentors[1].User.Points)

	// sarah_mentor wrote answers 1 and 3 with 12 and 18 votes.
	assert.Equal(t, UserStats{QuestionCount: 0, AnswerCount: 2, VoteSum: 30}, mentors[0].Stats)

	students := e.Leaderboard(user.RoleStudent)
	require.Len(t, students, 2)
	assert.Equal(t, "john_student", students[0].User.Username)

	assert.Empty(t, e.Leaderboard(user.RoleAdmin))
}

func TestStatsForUser(t *testing.T) {
	e := newSeededEngine(t)

	// john_student asked questions 1, 3, 5 and wrote no answers.
	assert.Equal(t, UserStats{QuestionCount: 3}, e.StatsForUser(1))

	// alex_coder asked 2 and 4, answered once with 5 votes.
	assert.Equal(t, UserStats{QuestionCount: 2, AnswerCount: 1, VoteSum: 5}, e.StatsForUser(3))

	assert.Equal(t, UserStats{}, e.StatsForUser(424242))
}

func TestDistinctTags_FirstOccurrenceOrder(t *testing.T) {
	e := newSeededEngine(t)

	tags := e.DistinctTags()
	assert.Equal(t, []string{
		"database", "design", "sql",
		"react", "hooks", "javascript",
		"algorithms", "binary-search", "programming",
		"variables", "es6",
		"css", "html", "styling",
	}, tags)
}

func TestCommunityStats(t *testing.T) {
	e := newSeededEngine(t)

	assert.Equal(t, CommunityStats{
		TotalQuestions:  5,
		TotalUsers:      4,
		SolvedQuestions: 2,
	}, e.Stats())
}

func TestQueryResults_TagsAreDetachedCopies(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	author := mustRegister(t, e, "asker", user.RoleStudent)

	created, err := e.CreateQuestion(ctx, author.ID, "title", "desc", "go, concurrency")
	require.NoError(t, err)
	created.Tags[0] = "scribbled"

	got, ok := e.GetQuestion(created.ID)
	require.True(t, ok)
	assert.Equal(t, []string{"go", "concurrency"}, got.Tags)

	// Scribbling on any returned view leaves engine state untouched.
	got.Tags[1] = "scribbled"
	e.SearchQuestions("", "", SortLatest)[0].Tags[0] = "scribbled"
	e.QuestionsByUser(author.ID)[0].Tags[0] = "scribbled"

	fresh, _ := e.GetQuestion(created.ID)
	assert.Equal(t, []string{"go", "concurrency"}, fresh.Tags)
}

func TestQuestionsAndAnswersByUser(t *testing.T) {
	e := newSeededEngine(t)

	questions := e.QuestionsByUser(1)
	require.Len(t, questions, 3)
	assert.Equal(t, int64(5), questions[0].ID)
	assert.Equal(t, int64(1), questions[2].ID)

	answers := e.AnswersByUser(2)
	require.Len(t, answers, 2)
	assert.Equal(t, int64(1), answers[0].ID)
	assert.Equal(t, int64(3), answers[1].ID)
}
