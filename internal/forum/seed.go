package forum

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/query-hub/query-hub-forum/internal/domain/content"
	"github.com/query-hub/query-hub-forum/internal/domain/report"
	"github.com/query-hub/query-hub-forum/internal/domain/user"
	"github.com/query-hub/query-hub-forum/pkg/logger"
)

// seedPassword is the shared password of all demo accounts.
const seedPassword = "password"

// Seed populates an empty store with demo users, questions, answers, and
// comments. Idempotent: a no-op when any user record already exists.
func (e *Engine) Seed(ctx context.Context) error {
	e.mu.Lock()
	if len(e.st.users) > 0 {
		e.mu.Unlock()
		e.log.Debug("seed skipped, users already present")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		e.mu.Unlock()
		return err
	}

	now := time.Now().UTC()
	day := 24 * time.Hour
	pw := string(hash)

	users := []user.User{
		{ID: 1, Username: "john_student", Email: "student@test.com", PasswordHash: pw, Role: user.RoleStudent,
			Bio: "Computer Science student passionate about programming", Points: 45, CreatedAt: now.Add(-30 * day)},
		{ID: 2, Username: "sarah_mentor", Email: "mentor@test.com", PasswordHash: pw, Role: user.RoleMentor,
			Bio: "Senior Software Engineer with 8 years experience", Points: 120, CreatedAt: now.Add(-60 * day)},
		{ID: 3, Username: "alex_coder", Email: "alex@test.com", PasswordHash: pw, Role: user.RoleStudent,
			Bio: "Learning web development and loving it!", Points: 28, CreatedAt: now.Add(-15 * day)},
		{ID: 4, Username: "prof_smith", Email: "professor@test.com", PasswordHash: pw, Role: user.RoleMentor,
			Bio: "Mathematics Professor specializing in algorithms", Points: 95, CreatedAt: now.Add(-45 * day)},
	}

	// Newest-first, matching creation order.
	questions := []content.Question{
		{ID: 5, Title: "Best practices for database design?",
			Description: "I'm working on my first database project and want to make sure I follow good practices. What are the most important principles for database design?",
			Tags:        []string{"database", "design", "sql"},
			AuthorID:    1, AuthorUsername: "john_student", AuthorRole: user.RoleStudent,
			CreatedAt: now.Add(-12 * time.Hour)},
		{ID: 4, Title: "React useState vs useEffect - when to use each?",
			Description: "I'm new to React hooks and I'm confused about when to use useState versus useEffect. Can someone explain the difference and provide some examples?",
			Tags:        []string{"react", "hooks", "javascript"},
			AuthorID:    3, AuthorUsername: "alex_coder", AuthorRole: user.RoleStudent,
			CreatedAt: now.Add(-1 * day)},
		{ID: 3, Title: "How to implement binary search algorithm?",
			Description: "I understand the concept of binary search but I'm having trouble implementing it in code. Can someone show me a clean implementation and explain the time complexity?",
			Tags:        []string{"algorithms", "binary-search", "programming"},
			AuthorID:    1, AuthorUsername: "john_student", AuthorRole: user.RoleStudent,
			CreatedAt: now.Add(-2 * day)},
		{ID: 2, Title: "What is the difference between let, const, and var in JavaScript?",
			Description: "I keep seeing these different ways to declare variables in JavaScript. When should I use each one? What are the main differences between them?",
			Tags:        []string{"javascript", "variables", "es6"},
			AuthorID:    3, AuthorUsername: "alex_coder", AuthorRole: user.RoleStudent, IsSolved: true,
			CreatedAt: now.Add(-3 * day)},
		{ID: 1, Title: "How do I center a div in CSS?",
			Description: "I've been trying to center a div both horizontally and vertically but nothing seems to work. I've tried margin: auto but it only centers horizontally. What's the best modern approach?",
			Tags:        []string{"css", "html", "styling"},
			AuthorID:    1, AuthorUsername: "john_student", AuthorRole: user.RoleStudent, IsSolved: true,
			CreatedAt: now.Add(-5 * day)},
	}

	answers := []content.Answer{
		{ID: 1, QuestionID: 1, AuthorID: 2, AuthorUsername: "sarah_mentor", AuthorRole: user.RoleMentor,
			Text:  "The modern and most flexible way to center a div is using Flexbox:\n\n.container {\n  display: flex;\n  justify-content: center;\n  align-items: center;\n  height: 100vh;\n}\n\nThis centers the child div both horizontally and vertically. You can also use CSS Grid:\n\n.container {\n  display: grid;\n  place-items: center;\n  height: 100vh;\n}\n\nBoth methods are widely supported and much cleaner than older techniques.",
			Votes: 12, CreatedAt: now.Add(-4 * day)},
		{ID: 2, QuestionID: 1, AuthorID: 3, AuthorUsername: "alex_coder", AuthorRole: user.RoleStudent,
			Text:  "You can also use the transform method:\n\n.centered {\n  position: absolute;\n  top: 50%;\n  left: 50%;\n  transform: translate(-50%, -50%);\n}\n\nThis works well when you need absolute positioning.",
			Votes: 5, CreatedAt: now.Add(-4 * day)},
		{ID: 3, QuestionID: 2, AuthorID: 2, AuthorUsername: "sarah_mentor", AuthorRole: user.RoleMentor,
			Text:  "Great question! Here are the key differences:\n\n**var:**\n- Function-scoped or globally-scoped\n- Can be redeclared\n- Hoisted and initialized with undefined\n\n**let:**\n- Block-scoped\n- Cannot be redeclared in same scope\n- Hoisted but not initialized (temporal dead zone)\n\n**const:**\n- Block-scoped\n- Cannot be redeclared or reassigned\n- Must be initialized at declaration\n- Hoisted but not initialized\n\nUse const by default, let when you need to reassign, and avoid var in modern JavaScript.",
			Votes: 18, CreatedAt: now.Add(-2 * day)},
		{ID: 4, QuestionID: 3, AuthorID: 4, AuthorUsername: "prof_smith", AuthorRole: user.RoleMentor,
			Text:  "Here's a clean recursive implementation of binary search:\n\n```javascript\nfunction binarySearch(arr, target, left = 0, right = arr.length - 1) {\n  if (left > right) {\n    return -1; // Element not found\n  }\n  \n  const mid = Math.floor((left + right) / 2);\n  \n  if (arr[mid] === target) {\n    return mid;\n  } else if (arr[mid] > target) {\n    return binarySearch(arr, target, left, mid - 1);\n  } else {\n    return binarySearch(arr, target, mid + 1, right);\n  }\n}\n```\n\nTime complexity: O(log n)\nSpace complexity: O(log n) due to recursion stack\n\nFor an iterative version with O(1) space complexity, you can use a while loop instead.",
			Votes: 8, CreatedAt: now.Add(-1 * day)},
	}

	comments := []content.Comment{
		{ID: 1, AnswerID: 1, AuthorID: 1, AuthorUsername: "john_student", AuthorRole: user.RoleStudent,
			Text: "Thanks! The flexbox solution worked perfectly for my project.", CreatedAt: now.Add(-3 * day)},
		{ID: 2, AnswerID: 1, AuthorID: 3, AuthorUsername: "alex_coder", AuthorRole: user.RoleStudent,
			Text: "CSS Grid is so much simpler than I thought!", CreatedAt: now.Add(-3 * day)},
		{ID: 3, AnswerID: 3, AuthorID: 1, AuthorUsername: "john_student", AuthorRole: user.RoleStudent,
			Text: "This explanation finally made it click for me. Thank you!", CreatedAt: now.Add(-2 * day)},
	}

	reports := make([]report.Report, 0)

	if err := e.persist(ctx,
		col{CollectionUsers, users},
		col{CollectionQuestions, questions},
		col{CollectionAnswers, answers},
		col{CollectionComments, comments},
		col{CollectionReports, reports},
	); err != nil {
		e.mu.Unlock()
		return err
	}
	e.st = state{users: users, questions: questions, answers: answers, comments: comments, reports: reports}
	e.ids.observe(maxID(&e.st))
	e.mu.Unlock()

	e.log.Info("sample data seeded",
		logger.Int("users", len(users)),
		logger.Int("questions", len(questions)),
	)
	return nil
}
