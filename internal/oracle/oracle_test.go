package oracle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSkillList(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"json list", `["Go", "SQL"]`, []string{"Go", "SQL"}},
		{"single quotes", `['Go', 'SQL']`, []string{"Go", "SQL"}},
		{"wrapped in prose", `Sure! Here are the relevant skills: ["Go", "Kubernetes"].`, []string{"Go", "Kubernetes"}},
		{"unquoted items", `[Go, SQL, Docker]`, []string{"Go", "SQL", "Docker"}},
		{"single skill", `["Go"]`, []string{"Go"}},
		{"surrounding whitespace", "  [\"Go\"]\n", []string{"Go"}},
		{"blank items dropped", `["Go", "", "SQL"]`, []string{"Go", "SQL"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSkillList(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSkillList_Malformed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"no list at all", "I could not determine the skills."},
		{"empty list", "[]"},
		{"only blanks", `["", " "]`},
		{"bare names without brackets", "Go, SQL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSkillList(tt.text)
			var malformed *MalformedSkillSelectionError
			require.ErrorAs(t, err, &malformed)
			assert.Equal(t, tt.text, malformed.Raw)
		})
	}
}

func TestParseScore(t *testing.T) {
	score, err := ParseScore(" 7\n")
	require.NoError(t, err)
	assert.Equal(t, 7, score)

	_, err = ParseScore("seven out of ten")
	var unparseable *UnparseableScoreError
	require.ErrorAs(t, err, &unparseable)
	assert.Equal(t, "seven out of ten", unparseable.Raw)
}
