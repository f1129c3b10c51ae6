package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilename(t *testing.T) {
	cases := []struct {
		title    string
		suffix   string
		expected string
	}{
		{"FL Sales Associate 45hr", "content", "FL-Sales-Associate-45hr-content.docx"},
		{"Real Estate: Core Law (2025)", "answer-key", "Real-Estate-Core-Law-2025-answer-key.docx"},
		{"   ", "content", "course-content.docx"},
		{"Ethics", "final-exam-A", "Ethics-final-exam-A.docx"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, Filename(tc.title, tc.suffix))
	}
}
