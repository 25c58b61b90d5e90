// Package content contains the question, answer, and comment domain model.
//
// Author identity on every entity is a denormalized snapshot captured at
// creation time: editing a profile later does not rewrite existing content.
package content

import (
	"strings"
	"time"

	"github.com/query-hub/query-hub-forum/internal/domain/shared"
	"github.com/query-hub/query-hub-forum/internal/domain/user"
)

// Question is a post asking the community for help.
type Question struct {
	// ID is unique and monotonic in creation order.
	ID int64 `json:"id"`

	Title       string `json:"title"`
	Description string `json:"description"`

	// Tags is the ordered list of trimmed tag tokens as entered by the
	// author. Duplicates are permitted.
	Tags []string `json:"tags"`

	// AuthorID references the asking user.
	AuthorID int64 `json:"userId"`

	// AuthorUsername and AuthorRole are snapshots, stale after profile edits.
	AuthorUsername string    `json:"username"`
	AuthorRole     user.Role `json:"userRole"`

	// IsSolved transitions false -> true exactly once, by the author.
	IsSolved bool `json:"isSolved"`

	CreatedAt time.Time `json:"createdAt"`
}

// TagsString rejoins the tags into the raw comma-separated form.
// Tag filtering is a substring match against this string.
func (q *Question) TagsString() string {
	return strings.Join(q.Tags, ", ")
}

// MatchesTerm reports whether the question matches a case-insensitive
// substring search against title or description. An empty term matches.
func (q *Question) MatchesTerm(term string) bool {
	if term == "" {
		return true
	}
	t := strings.ToLower(term)
	return strings.Contains(strings.ToLower(q.Title), t) ||
		strings.Contains(strings.ToLower(q.Description), t)
}

// MatchesTag reports whether the raw tags string contains the filter,
// case-insensitively. An empty filter matches.
func (q *Question) MatchesTag(tag string) bool {
	if tag == "" {
		return true
	}
	return strings.Contains(strings.ToLower(q.TagsString()), strings.ToLower(tag))
}

// Answer is a reply to a question. Votes start at zero and are unbounded in
// both directions.
type Answer struct {
	ID int64 `json:"id"`

	// QuestionID references a live question; cascade deletion keeps this
	// invariant (no dangling answers survive their question).
	QuestionID int64 `json:"questionId"`

	AuthorID       int64     `json:"userId"`
	AuthorUsername string    `json:"username"`
	AuthorRole     user.Role `json:"userRole"`

	Text  string `json:"answerText"`
	Votes int    `json:"votes"`

	CreatedAt time.Time `json:"createdAt"`
}

// Comment is a short remark on an answer. Comments have no edit operation;
// they are removed only by cascade or moderation.
type Comment struct {
	ID int64 `json:"id"`

	// AnswerID references the commented answer.
	AnswerID int64 `json:"answerId"`

	AuthorID       int64     `json:"userId"`
	AuthorUsername string    `json:"username"`
	AuthorRole     user.Role `json:"userRole"`

	Text string `json:"commentText"`

	CreatedAt time.Time `json:"createdAt"`
}

// ParseTags splits a raw comma-separated tag string into trimmed tokens.
// Empty segments are dropped; duplicates are kept; order is preserved.
// An empty input yields an empty list.
func ParseTags(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// ValidateQuestionInput checks the user-supplied question fields after
// trimming. It runs before any mutation.
func ValidateQuestionInput(title, description string) error {
	if strings.TrimSpace(title) == "" {
		return shared.ErrEmptyTitle
	}
	if strings.TrimSpace(description) == "" {
		return shared.ErrEmptyDescription
	}
	return nil
}
