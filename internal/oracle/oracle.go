package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Oracle produces skill selections, interview questions and answer scores.
// Any implementation satisfying these three operations is substitutable;
// the session controller treats it as an opaque capability.
type Oracle interface {
	// SelectSkills picks the subset of the candidate's skills relevant to
	// the job. A *MalformedSkillSelectionError means the model replied but
	// its output could not be parsed; callers recover by falling back to
	// the full skill list.
	SelectSkills(ctx context.Context, jobName string, skills []string) ([]string, error)

	// NextQuestion generates a question for the given skill and level,
	// avoiding the previously asked questions.
	NextQuestion(ctx context.Context, jobName, skill, level string, priorQuestions []string) (string, error)

	// Score rates an answer from 0 to 10. A *UnparseableScoreError means
	// the model replied with non-numeric output; callers recover with a
	// default score.
	Score(ctx context.Context, question, answer string) (int, error)
}

// Factory creates one Oracle per interview session, so conversation
// history never leaks across candidates.
type Factory interface {
	NewSession() Oracle
}

// MalformedSkillSelectionError indicates the oracle returned a skill list
// that could not be parsed.
type MalformedSkillSelectionError struct {
	Raw string
}

func (e *MalformedSkillSelectionError) Error() string {
	return fmt.Sprintf("malformed skill selection: %q", e.Raw)
}

// UnparseableScoreError indicates the oracle returned non-numeric output
// for a scoring request.
type UnparseableScoreError struct {
	Raw string
}

func (e *UnparseableScoreError) Error() string {
	return fmt.Sprintf("unparseable score: %q", e.Raw)
}

// ParseSkillList parses a model-rendered skill list such as
// `["Go", "SQL"]` or `[Go, SQL]` into a slice of skill names.
func ParseSkillList(text string) ([]string, error) {
	trimmed := strings.TrimSpace(text)

	// Models sometimes quote with single quotes or wrap the list in prose;
	// keep only the bracketed portion before attempting strict JSON.
	if start, end := strings.Index(trimmed, "["), strings.LastIndex(trimmed, "]"); start >= 0 && end > start {
		trimmed = trimmed[start : end+1]
	}

	var skills []string
	if err := json.Unmarshal([]byte(strings.ReplaceAll(trimmed, "'", `"`)), &skills); err == nil {
		skills = dropEmpty(skills)
		if len(skills) == 0 {
			return nil, &MalformedSkillSelectionError{Raw: text}
		}
		return skills, nil
	}

	if !strings.HasPrefix(trimmed, "[") || !strings.HasSuffix(trimmed, "]") {
		return nil, &MalformedSkillSelectionError{Raw: text}
	}

	skills = dropEmpty(strings.Split(trimmed[1:len(trimmed)-1], ","))
	if len(skills) == 0 {
		return nil, &MalformedSkillSelectionError{Raw: text}
	}
	return skills, nil
}

// ParseScore parses a model-rendered integer score.
func ParseScore(text string) (int, error) {
	score, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, &UnparseableScoreError{Raw: text}
	}
	return score, nil
}

func dropEmpty(items []string) []string {
	out := items[:0]
	for _, item := range items {
		item = strings.Trim(strings.TrimSpace(item), `"'`)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
