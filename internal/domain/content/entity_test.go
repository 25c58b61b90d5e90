package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTags(t *testing.T) {
	assert.Equal(t, []string{"go", "concurrency"}, ParseTags("go, concurrency"))
	assert.Equal(t, []string{"go"}, ParseTags("  go  "))
	assert.Equal(t, []string{"a", "b"}, ParseTags("a,, ,b,"))
	assert.Equal(t, []string{}, ParseTags(""))
	assert.Equal(t, []string{}, ParseTags("  ,  ,  "))

	// Duplicates and case are preserved as entered.
	assert.Equal(t, []string{"Go", "go"}, ParseTags("Go,go"))
}

func TestTagsString(t *testing.T) {
	q := Question{Tags: []string{"css", "html", "styling"}}
	assert.Equal(t, "css, html, styling", q.TagsString())
	assert.Equal(t, "", (&Question{Tags: []string{}}).TagsString())
}

func TestMatchesTerm(t *testing.T) {
	q := Question{Title: "How do I center a div?", Description: "Tried margin: auto already."}

	assert.True(t, q.MatchesTerm(""))
	assert.True(t, q.MatchesTerm("CENTER"))
	assert.True(t, q.MatchesTerm("margin: auto"))
	assert.False(t, q.MatchesTerm("flexbox"))
}

func TestMatchesTag(t *testing.T) {
	q := Question{Tags: []string{"javascript", "es6"}}

	assert.True(t, q.MatchesTag(""))
	assert.True(t, q.MatchesTag("JavaScript"))
	// Substring semantics against the joined string.
	assert.True(t, q.MatchesTag("script"))
	assert.True(t, q.MatchesTag("t, e"))
	assert.False(t, q.MatchesTag("java8"))
}

func TestValidateQuestionInput(t *testing.T) {
	assert.NoError(t, ValidateQuestionInput("title", "desc"))
	assert.Error(t, ValidateQuestionInput("  ", "desc"))
	assert.Error(t, ValidateQuestionInput("title", "\n\t"))
}
