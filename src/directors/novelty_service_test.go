package directors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProjectName(t *testing.T) {
	assert.Equal(t,
		"Congratulations on starting a new project called eat-sleepy-pony!",
		ProjectName("eat", "sleepy", "pony"))
}

func TestBugCountMessage(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "starting count",
			raw:      "99",
			expected: `99 little bugs in the code<br><a href="/bugs/101">Pull one down, patch it around</a>`,
		},
		{
			name:     "exactly at the limit keeps going",
			raw:      "200",
			expected: `200 little bugs in the code<br><a href="/bugs/202">Pull one down, patch it around</a>`,
		},
		{
			name:     "past the limit starts over",
			raw:      "250",
			expected: `250 little bugs in the code<br><a href="/">Start over</a>`,
		},
		{
			name:     "non-numeric input propagates NaN",
			raw:      "lots",
			expected: `NaN little bugs in the code<br><a href="/bugs/NaN">Pull one down, patch it around</a>`,
		},
		{
			name:     "fractional count",
			raw:      "1.5",
			expected: `1.5 little bugs in the code<br><a href="/bugs/3.5">Pull one down, patch it around</a>`,
		},
		{
			name:     "empty segment is zero",
			raw:      "",
			expected: `0 little bugs in the code<br><a href="/bugs/2">Pull one down, patch it around</a>`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, BugCountMessage(ParseBugCount(tc.raw)))
		})
	}
}

func TestBugCountMessage_Default(t *testing.T) {
	assert.Contains(t, BugCountMessage(DefaultBugCount), "99 little bugs")
	assert.Contains(t, BugCountMessage(DefaultBugCount), `href="/bugs/101"`)
}
