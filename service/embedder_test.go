package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandQueryAddsSynonyms(t *testing.T) {
	expanded := ExpandQuery("Which faculty run the AI lab?")

	assert.True(t, strings.HasPrefix(expanded, "Which faculty run the AI lab?"))
	assert.Contains(t, expanded, "professor")
	assert.Contains(t, expanded, "lecturer")
	assert.Contains(t, expanded, "laboratory")
}

func TestExpandQueryNoMatchingTerms(t *testing.T) {
	query := "hostel mess timings"
	assert.Equal(t, query, ExpandQuery(query))
}

func TestExpandQueryIsDeterministic(t *testing.T) {
	query := "faculty research labs and courses"
	first := ExpandQuery(query)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ExpandQuery(query))
	}
}

func TestExpandQueryIsCaseInsensitive(t *testing.T) {
	assert.Contains(t, ExpandQuery("FACULTY directory"), "professor")
}

func TestPreprocessText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "collapses whitespace",
			input: "hello   world\n\tagain",
			want:  "hello world again",
		},
		{
			name:  "strips special characters",
			input: "email: rao@cse.edu (room #12)",
			want:  "email: raocse.edu (room 12)",
		},
		{
			name:  "keeps basic punctuation",
			input: "Dr. Rao, office 12; ext. 405 - call!",
			want:  "Dr. Rao, office 12; ext. 405 - call!",
		},
		{
			name:  "trims edges",
			input: "  padded  ",
			want:  "padded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PreprocessText(tt.input))
		})
	}
}
