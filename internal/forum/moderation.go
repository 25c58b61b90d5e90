package forum

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/query-hub/query-hub-forum/internal/domain/report"
	"github.com/query-hub/query-hub-forum/internal/domain/shared"
	"github.com/query-hub/query-hub-forum/pkg/logger"
)

// ReportContent appends an entry to the moderation log. The log is
// append-only and never deduplicated: reporting the same content three
// times produces three records.
func (e *Engine) ReportContent(ctx context.Context, contentID int64, contentType report.ContentType, reason, reportedBy string) (report.Report, error) {
	r := report.Report{
		ID:          e.ids.Next(),
		ContentID:   contentID,
		ContentType: contentType,
		Reason:      strings.TrimSpace(reason),
		ReportedBy:  reportedBy,
		CreatedAt:   time.Now().UTC(),
	}
	if err := r.Validate(); err != nil {
		return report.Report{}, err
	}

	e.mu.Lock()
	reports := append(slices.Clone(e.st.reports), r)
	if err := e.persist(ctx, col{CollectionReports, reports}); err != nil {
		e.mu.Unlock()
		return report.Report{}, err
	}
	e.st.reports = reports
	e.mu.Unlock()

	e.log.Info("content reported",
		logger.Int64("content_id", contentID),
		logger.String("content_type", contentType.String()),
		logger.String("reported_by", reportedBy),
	)
	e.publish(shared.NewEvent(shared.EventReportFiled, r.ID, map[string]any{
		"content_id":   contentID,
		"content_type": contentType.String(),
	}))
	return r, nil
}

// ClearReports empties the moderation log in one step. Admin only.
func (e *Engine) ClearReports(ctx context.Context, actorID int64) error {
	e.mu.Lock()
	actor, err := e.st.actor("moderation", "ClearReports", actorID)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	if !actor.Role.CanModerate() {
		e.mu.Unlock()
		return shared.ErrAdminOnly
	}

	cleared := len(e.st.reports)
	reports := make([]report.Report, 0)
	if err := e.persist(ctx, col{CollectionReports, reports}); err != nil {
		e.mu.Unlock()
		return err
	}
	e.st.reports = reports
	e.mu.Unlock()

	e.log.Info("reports cleared", logger.UserID(actorID), logger.Int("count", cleared))
	e.publish(shared.NewEvent(shared.EventReportsCleared, actorID, map[string]any{
		"count": cleared,
	}))
	return nil
}

// requireAdmin resolves the actor and checks moderation capability before
// any delegated destructive call executes.
func (e *Engine) requireAdmin(domain, op string, actorID int64) error {
	e.mu.RLock()
	actor, err := e.st.actor(domain, op, actorID)
	e.mu.RUnlock()
	if err != nil {
		return err
	}
	if !actor.Role.CanModerate() {
		return shared.ErrAdminOnly
	}
	return nil
}

// AdminDeleteQuestion deletes any question regardless of ownership. The
// admin gate is checked here, before delegating to the cascading delete.
func (e *Engine) AdminDeleteQuestion(ctx context.Context, questionID, actorID int64) error {
	if err := e.requireAdmin("moderation", "AdminDeleteQuestion", actorID); err != nil {
		return err
	}
	return e.DeleteQuestion(ctx, questionID, actorID)
}

// AdminDeleteAnswer deletes any answer regardless of ownership.
func (e *Engine) AdminDeleteAnswer(ctx context.Context, answerID, actorID int64) error {
	if err := e.requireAdmin("moderation", "AdminDeleteAnswer", actorID); err != nil {
		return err
	}
	return e.DeleteAnswer(ctx, answerID, actorID)
}

// AdminDeleteUser deletes a user with full cascade.
func (e *Engine) AdminDeleteUser(ctx context.Context, userID, actorID int64) error {
	if err := e.requireAdmin("moderation", "AdminDeleteUser", actorID); err != nil {
		return err
	}
	return e.DeleteUser(ctx, userID, actorID)
}
