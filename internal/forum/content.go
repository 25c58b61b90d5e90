package forum

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/query-hub/query-hub-forum/internal/domain/content"
	"github.com/query-hub/query-hub-forum/internal/domain/shared"
	"github.com/query-hub/query-hub-forum/pkg/logger"
)

// CreateQuestion creates a new question authored by authorID. Title and
// description are trimmed and must be non-empty; tags are parsed from the
// raw comma-separated string. The new question is prepended, keeping the
// questions collection newest-first.
func (e *Engine) CreateQuestion(ctx context.Context, authorID int64, title, description, tagsRaw string) (content.Question, error) {
	if err := content.ValidateQuestionInput(title, description); err != nil {
		return content.Question{}, err
	}

	e.mu.Lock()
	author, err := e.st.actor("content", "CreateQuestion", authorID)
	if err != nil {
		e.mu.Unlock()
		return content.Question{}, err
	}

	snap := author.Snapshot()
	q := content.Question{
		ID:             e.ids.Next(),
		Title:          strings.TrimSpace(title),
		Description:    strings.TrimSpace(description),
		Tags:           content.ParseTags(tagsRaw),
		AuthorID:       author.ID,
		AuthorUsername: snap.Username,
		AuthorRole:     snap.Role,
		IsSolved:       false,
		CreatedAt:      time.Now().UTC(),
	}

	questions := make([]content.Question, 0, len(e.st.questions)+1)
	questions = append(questions, q)
	questions = append(questions, e.st.questions...)

	if err := e.persist(ctx, col{CollectionQuestions, questions}); err != nil {
		e.mu.Unlock()
		return content.Question{}, err
	}
	e.st.questions = questions
	e.mu.Unlock()

	e.log.Info("question created", logger.QuestionID(q.ID), logger.UserID(author.ID))
	e.publish(shared.NewEvent(shared.EventQuestionCreated, q.ID, map[string]any{
		"author_id": author.ID,
		"title":     q.Title,
	}))
	return cloneQuestion(q), nil
}

// QuestionPatch carries the optional fields of an edit. Nil fields are left
// unchanged; id, author, creation time, and solved flag are never editable.
type QuestionPatch struct {
	Title       *string
	Description *string
	TagsRaw     *string
}

// EditQuestion overwrites the provided fields of a question. Only the author
// may edit; admins have no edit privilege, only delete.
func (e *Engine) EditQuestion(ctx context.Context, questionID, actorID int64, patch QuestionPatch) (content.Question, error) {
	e.mu.Lock()
	idx := e.st.findQuestion(questionID)
	if idx < 0 {
		e.mu.Unlock()
		return content.Question{}, shared.ErrQuestionNotFound
	}
	if e.st.questions[idx].AuthorID != actorID {
		e.mu.Unlock()
		return content.Question{}, shared.ErrNotOwner
	}

	questions := slices.Clone(e.st.questions)
	q := &questions[idx]
	if patch.Title != nil {
		q.Title = *patch.Title
	}
	if patch.Description != nil {
		q.Description = *patch.Description
	}
	if patch.TagsRaw != nil {
		q.Tags = content.ParseTags(*patch.TagsRaw)
	}

	if err := e.persist(ctx, col{CollectionQuestions, questions}); err != nil {
		e.mu.Unlock()
		return content.Question{}, err
	}
	edited := questions[idx]
	e.st.questions = questions
	e.mu.Unlock()

	e.log.Info("question edited", logger.QuestionID(questionID), logger.UserID(actorID))
	e.publish(shared.NewEvent(shared.EventQuestionEdited, questionID, map[string]any{
		"actor_id": actorID,
	}))
	return cloneQuestion(edited), nil
}

// DeleteQuestion removes a question and cascades to its answers and their
// comments. Allowed for the question's author or an admin. The cascade is
// all-or-nothing: readers never observe a deleted question with surviving
// answers.
func (e *Engine) DeleteQuestion(ctx context.Context, questionID, actorID int64) error {
	e.mu.Lock()
	idx := e.st.findQuestion(questionID)
	if idx < 0 {
		e.mu.Unlock()
		return shared.ErrQuestionNotFound
	}
	actor, err := e.st.actor("content", "DeleteQuestion", actorID)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	if actor.ID != e.st.questions[idx].AuthorID && !actor.Role.CanModerate() {
		e.mu.Unlock()
		return shared.ErrNotOwner
	}

	questions := slices.Delete(slices.Clone(e.st.questions), idx, idx+1)
	answers, comments, removed := cascadeQuestions(e.st.answers, e.st.comments, map[int64]bool{questionID: true})

	// Children flush before parents: if a save fails partway, the stored
	// state may keep extra rows but never a dangling reference.
	if err := e.persist(ctx,
		col{CollectionComments, comments},
		col{CollectionAnswers, answers},
		col{CollectionQuestions, questions},
	); err != nil {
		e.mu.Unlock()
		return err
	}
	e.st.questions = questions
	e.st.answers = answers
	e.st.comments = comments
	e.mu.Unlock()

	e.log.Info("question deleted",
		logger.QuestionID(questionID),
		logger.UserID(actorID),
		logger.Int("cascaded_answers", removed),
	)
	e.publish(shared.NewEvent(shared.EventQuestionDeleted, questionID, map[string]any{
		"actor_id":         actorID,
		"cascaded_answers": removed,
	}))
	return nil
}

// cascadeQuestions drops every answer belonging to the given questions and
// every comment belonging to those answers. Returns the surviving answers
// and comments plus the number of answers removed.
func cascadeQuestions(answers []content.Answer, comments []content.Comment, dead map[int64]bool) ([]content.Answer, []content.Comment, int) {
	deadAnswers := make(map[int64]bool)
	keptAnswers := make([]content.Answer, 0, len(answers))
	for _, a := range answers {
		if dead[a.QuestionID] {
			deadAnswers[a.ID] = true
			continue
		}
		keptAnswers = append(keptAnswers, a)
	}
	keptComments := make([]content.Comment, 0, len(comments))
	for _, c := range comments {
		if !deadAnswers[c.AnswerID] {
			keptComments = append(keptComments, c)
		}
	}
	return keptAnswers, keptComments, len(deadAnswers)
}

// MarkSolved sets the one-way solved flag. Only the author may mark, and
// only once: a second call fails with an invalid-state error.
func (e *Engine) MarkSolved(ctx context.Context, questionID, actorID int64) error {
	e.mu.Lock()
	idx := e.st.findQuestion(questionID)
	if idx < 0 {
		e.mu.Unlock()
		return shared.ErrQuestionNotFound
	}
	if e.st.questions[idx].AuthorID != actorID {
		e.mu.Unlock()
		return shared.ErrNotOwner
	}
	if e.st.questions[idx].IsSolved {
		e.mu.Unlock()
		return shared.ErrAlreadySolved
	}

	questions := slices.Clone(e.st.questions)
	questions[idx].IsSolved = true

	if err := e.persist(ctx, col{CollectionQuestions, questions}); err != nil {
		e.mu.Unlock()
		return err
	}
	e.st.questions = questions
	e.mu.Unlock()

	e.log.Info("question marked solved", logger.QuestionID(questionID))
	e.publish(shared.NewEvent(shared.EventQuestionSolved, questionID, nil))
	return nil
}

// answerPoints is awarded to the author on every answer created.
const answerPoints = 5

// CreateAnswer posts an answer to an existing question and awards the author
// five reputation points. The answer append and the point award commit
// together. Answers are stored oldest-first; vote-ranked display order is a
// query concern.
func (e *Engine) CreateAnswer(ctx context.Context, questionID, authorID int64, text string) (content.Answer, error) {
	e.mu.Lock()
	if e.st.findQuestion(questionID) < 0 {
		e.mu.Unlock()
		return content.Answer{}, shared.ErrQuestionNotFound
	}
	author, err := e.st.actor("content", "CreateAnswer", authorID)
	if err != nil {
		e.mu.Unlock()
		return content.Answer{}, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		e.mu.Unlock()
		return content.Answer{}, shared.ErrEmptyText
	}

	snap := author.Snapshot()
	a := content.Answer{
		ID:             e.ids.Next(),
		QuestionID:     questionID,
		AuthorID:       author.ID,
		AuthorUsername: snap.Username,
		AuthorRole:     snap.Role,
		Text:           text,
		Votes:          0,
		CreatedAt:      time.Now().UTC(),
	}

	answers := append(slices.Clone(e.st.answers), a)
	users, newTotal := awardPoints(e.st.users, author.ID, answerPoints)

	// Users flush first so a stored answer never precedes its point award.
	if err := e.persist(ctx,
		col{CollectionUsers, users},
		col{CollectionAnswers, answers},
	); err != nil {
		e.mu.Unlock()
		return content.Answer{}, err
	}
	e.st.answers = answers
	e.st.users = users
	e.mu.Unlock()

	e.log.Info("answer created",
		logger.AnswerID(a.ID),
		logger.QuestionID(questionID),
		logger.UserID(author.ID),
		logger.Points(newTotal),
	)
	e.publish(
		shared.NewEvent(shared.EventAnswerCreated, a.ID, map[string]any{
			"question_id": questionID,
			"author_id":   author.ID,
		}),
		shared.NewEvent(shared.EventPointsAwarded, author.ID, map[string]any{
			"delta":  answerPoints,
			"total":  newTotal,
			"reason": "answer_created",
		}),
	)
	return a, nil
}

// DeleteAnswer removes an answer and cascades to its comments. Allowed for
// the answer's author or an admin. Points previously awarded for the answer
// or its votes are not clawed back: point history is a running counter, not
// derived state.
func (e *Engine) DeleteAnswer(ctx context.Context, answerID, actorID int64) error {
	e.mu.Lock()
	idx := e.st.findAnswer(answerID)
	if idx < 0 {
		e.mu.Unlock()
		return shared.ErrAnswerNotFound
	}
	actor, err := e.st.actor("content", "DeleteAnswer", actorID)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	if actor.ID != e.st.answers[idx].AuthorID && !actor.Role.CanModerate() {
		e.mu.Unlock()
		return shared.ErrNotOwner
	}

	answers := slices.Delete(slices.Clone(e.st.answers), idx, idx+1)
	comments := make([]content.Comment, 0, len(e.st.comments))
	for _, c := range e.st.comments {
		if c.AnswerID != answerID {
			comments = append(comments, c)
		}
	}

	if err := e.persist(ctx,
		col{CollectionComments, comments},
		col{CollectionAnswers, answers},
	); err != nil {
		e.mu.Unlock()
		return err
	}
	e.st.answers = answers
	e.st.comments = comments
	e.mu.Unlock()

	e.log.Info("answer deleted", logger.AnswerID(answerID), logger.UserID(actorID))
	e.publish(shared.NewEvent(shared.EventAnswerDeleted, answerID, map[string]any{
		"actor_id": actorID,
	}))
	return nil
}

// CreateComment posts a comment on an existing answer. Comments award no
// points and cannot be edited afterwards.
func (e *Engine) CreateComment(ctx context.Context, answerID, authorID int64, text string) (content.Comment, error) {
	e.mu.Lock()
	if e.st.findAnswer(answerID) < 0 {
		e.mu.Unlock()
		return content.Comment{}, shared.ErrAnswerNotFound
	}
	author, err := e.st.actor("content", "CreateComment", authorID)
	if err != nil {
		e.mu.Unlock()
		return content.Comment{}, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		e.mu.Unlock()
		return content.Comment{}, shared.ErrEmptyText
	}

	snap := author.Snapshot()
	c := content.Comment{
		ID:             e.ids.Next(),
		AnswerID:       answerID,
		AuthorID:       author.ID,
		AuthorUsername: snap.Username,
		AuthorRole:     snap.Role,
		Text:           text,
		CreatedAt:      time.Now().UTC(),
	}

	comments := append(slices.Clone(e.st.comments), c)

	if err := e.persist(ctx, col{CollectionComments, comments}); err != nil {
		e.mu.Unlock()
		return content.Comment{}, err
	}
	e.st.comments = comments
	e.mu.Unlock()

	e.log.Info("comment created", logger.CommentID(c.ID), logger.AnswerID(answerID))
	e.publish(shared.NewEvent(shared.EventCommentCreated, c.ID, map[string]any{
		"answer_id": answerID,
		"author_id": author.ID,
	}))
	return c, nil
}

// DeleteUser removes a user and cascades: the user's questions go (with all
// answers on them, by anyone, and those answers' comments), and the user's
// own answers on surviving questions go (with their comments). Comments the
// user wrote on surviving answers are kept with a stale author id. Admin
// only.
func (e *Engine) DeleteUser(ctx context.Context, userID, actorID int64) error {
	e.mu.Lock()
	actor, err := e.st.actor("content", "DeleteUser", actorID)
	if err != nil {
		e.mu.Unlock()
		return err
	}
	if !actor.Role.CanModerate() {
		e.mu.Unlock()
		return shared.ErrAdminOnly
	}
	idx := e.st.findUser(userID)
	if idx < 0 {
		e.mu.Unlock()
		return shared.ErrUserNotFound
	}

	users := slices.Delete(slices.Clone(e.st.users), idx, idx+1)

	deadQuestions := make(map[int64]bool)
	questions := make([]content.Question, 0, len(e.st.questions))
	for _, q := range e.st.questions {
		if q.AuthorID == userID {
			deadQuestions[q.ID] = true
			continue
		}
		questions = append(questions, q)
	}

	deadAnswers := make(map[int64]bool)
	answers := make([]content.Answer, 0, len(e.st.answers))
	for _, a := range e.st.answers {
		if a.AuthorID == userID || deadQuestions[a.QuestionID] {
			deadAnswers[a.ID] = true
			continue
		}
		answers = append(answers, a)
	}

	comments := make([]content.Comment, 0, len(e.st.comments))
	for _, c := range e.st.comments {
		if !deadAnswers[c.AnswerID] {
			comments = append(comments, c)
		}
	}

	if err := e.persist(ctx,
		col{CollectionComments, comments},
		col{CollectionAnswers, answers},
		col{CollectionQuestions, questions},
		col{CollectionUsers, users},
	); err != nil {
		e.mu.Unlock()
		return err
	}
	e.st.users = users
	e.st.questions = questions
	e.st.answers = answers
	e.st.comments = comments
	e.mu.Unlock()

	e.log.Info("user deleted",
		logger.UserID(userID),
		logger.Int("cascaded_questions", len(deadQuestions)),
		logger.Int("cascaded_answers", len(deadAnswers)),
	)
	e.publish(shared.NewEvent(shared.EventUserDeleted, userID, map[string]any{
		"actor_id": actorID,
	}))
	return nil
}
