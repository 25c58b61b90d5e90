package forum

import "context"

// Collection names of the backing store. Each collection is the full ordered
// record set of one entity kind, loaded and replaced as a whole.
const (
	CollectionUsers     = "users"
	CollectionQuestions = "questions"
	CollectionAnswers   = "answers"
	CollectionComments  = "comments"
	CollectionReports   = "reports"
)

// Collections lists all collection names in load order.
func Collections() []string {
	return []string{
		CollectionUsers,
		CollectionQuestions,
		CollectionAnswers,
		CollectionComments,
		CollectionReports,
	}
}

// Store is the generic persistent key-value surface consumed by the engine.
// It carries no business logic: a collection is an opaque ordered sequence of
// records, fetched and replaced wholesale.
//
// Load decodes the named collection into out (a pointer to a slice) and must
// leave out untouched when the collection has never been written. Save
// replaces the named collection with the JSON encoding of v. Round-tripping
// a record through Save/Load must be lossless for every entity field.
type Store interface {
	Load(ctx context.Context, collection string, out any) error
	Save(ctx context.Context, collection string, v any) error
}
