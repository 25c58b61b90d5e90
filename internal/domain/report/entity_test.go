package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentTypeIsValid(t *testing.T) {
	assert.True(t, ContentQuestion.IsValid())
	assert.True(t, ContentAnswer.IsValid())
	assert.False(t, ContentType("comment").IsValid())
	assert.False(t, ContentType("").IsValid())
}

func TestReportValidate(t *testing.T) {
	r := Report{ContentID: 1, ContentType: ContentQuestion, Reason: "spam"}
	assert.NoError(t, r.Validate())

	r.Reason = "   "
	assert.Error(t, r.Validate())

	r = Report{ContentID: 1, ContentType: ContentType("user"), Reason: "spam"}
	assert.Error(t, r.Validate())
}
