package interfaces

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassificationCountsAsQuestion(t *testing.T) {
	assert.False(t, ClassificationGreeting.CountsAsQuestion())
	assert.False(t, ClassificationClarification.CountsAsQuestion())
	assert.True(t, ClassificationQuestion.CountsAsQuestion())
}

func TestParseClassification(t *testing.T) {
	tests := []struct {
		raw  string
		want Classification
	}{
		{"greeting", ClassificationGreeting},
		{" Greeting ", ClassificationGreeting},
		{`"clarification"`, ClassificationClarification},
		{"QUESTION", ClassificationQuestion},
		{"unexpected label", ClassificationQuestion},
		{"", ClassificationQuestion},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseClassification(tt.raw))
		})
	}
}
