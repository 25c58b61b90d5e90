// Package report contains the moderation report domain model.
package report

import (
	"strings"
	"time"

	"github.com/query-hub/query-hub-forum/internal/domain/shared"
)

// ContentType identifies what kind of content a report targets.
type ContentType string

const (
	// ContentQuestion targets a question.
	ContentQuestion ContentType = "question"
	// ContentAnswer targets an answer.
	ContentAnswer ContentType = "answer"
)

// IsValid checks that the content type is one of the closed set.
func (c ContentType) IsValid() bool {
	return c == ContentQuestion || c == ContentAnswer
}

// String returns the string representation.
func (c ContentType) String() string { return string(c) }

// Report is one entry in the append-only moderation log. Repeated reports of
// the same content are independent records; nothing deduplicates them.
type Report struct {
	ID          int64       `json:"id"`
	ContentID   int64       `json:"contentId"`
	ContentType ContentType `json:"contentType"`
	Reason      string      `json:"reason"`
	ReportedBy  string      `json:"reportedBy"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// Validate checks the report fields before it is appended to the log.
func (r *Report) Validate() error {
	if !r.ContentType.IsValid() {
		return shared.ErrUnknownContentType
	}
	if strings.TrimSpace(r.Reason) == "" {
		return shared.ErrEmptyReason
	}
	return nil
}
