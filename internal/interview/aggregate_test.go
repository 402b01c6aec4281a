package interview

import (
	"testing"

	"interview-service/internal/constants"
	"interview-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(skill, level string, score int) models.AnswerRecord {
	return models.AnswerRecord{
		Question: "q",
		Answer:   "a",
		Score:    score,
		Skill:    skill,
		Level:    level,
	}
}

func TestAggregate_Percentages(t *testing.T) {
	records := []models.AnswerRecord{
		record("Go", constants.LevelBasic, 8),
		record("Go", constants.LevelBasic, 6),
		record("SQL", constants.LevelBasic, 10),
	}

	report := Aggregate(records, 10, []string{"Go", "SQL"}, "Backend Engineer", "42", models.ReportStatusPartiallyCompleted)

	assert.Equal(t, 24, report.TotalRawScore)
	assert.Equal(t, 100, report.MaxRawScore, "theoretical max tied to the budget")
	assert.Equal(t, 3, report.ActualQuestionsAsked)
	assert.InDelta(t, 80.0, report.TotalScore, 0.001, "overall uses achieved max, not the budget")
	assert.InDelta(t, 70.0, report.SkillScores["Go"], 0.001)
	assert.InDelta(t, 100.0, report.SkillScores["SQL"], 0.001)
	assert.Equal(t, "Backend Engineer", report.JobName)
	assert.Equal(t, "42", report.CandidateID)
}

func TestAggregate_EmptyLog(t *testing.T) {
	report := Aggregate(nil, 10, []string{"Go"}, "job", "1", models.ReportStatusInterrupted)

	assert.Equal(t, 0, report.TotalRawScore)
	assert.Equal(t, 100, report.MaxRawScore)
	assert.Equal(t, 0, report.ActualQuestionsAsked)
	assert.Zero(t, report.TotalScore)
	assert.Zero(t, report.SkillScores["Go"], "skills without records score zero")
}

func TestAggregate_RoundsToTwoDecimals(t *testing.T) {
	records := []models.AnswerRecord{
		record("Go", constants.LevelBasic, 8),
		record("Go", constants.LevelBasic, 8),
		record("Go", constants.LevelIntermediate, 9),
	}

	report := Aggregate(records, 5, []string{"Go"}, "job", "1", models.ReportStatusCompleted)

	// 25/30 = 83.333...
	assert.InDelta(t, 83.33, report.TotalScore, 0.001)
	assert.InDelta(t, 83.33, report.SkillScores["Go"], 0.001)
}

func TestAggregate_SummaryIsOrderIndependent(t *testing.T) {
	forward := []models.AnswerRecord{
		record("Go", constants.LevelBasic, 3),
		record("SQL", constants.LevelBasic, 7),
		record("Go", constants.LevelBasic, 9),
	}
	reversed := []models.AnswerRecord{forward[2], forward[1], forward[0]}

	a := Aggregate(forward, 6, []string{"Go", "SQL"}, "job", "1", models.ReportStatusCompleted)
	b := Aggregate(reversed, 6, []string{"Go", "SQL"}, "job", "1", models.ReportStatusCompleted)

	assert.Equal(t, a.TotalRawScore, b.TotalRawScore)
	assert.Equal(t, a.TotalScore, b.TotalScore)
	assert.Equal(t, a.SkillScores, b.SkillScores)

	// The record log itself preserves the original order.
	require.Len(t, a.Results, 3)
	assert.Equal(t, forward, a.Results)
	assert.Equal(t, reversed, b.Results)
}

func TestAggregate_InterruptedAndCompletedPathsAgree(t *testing.T) {
	records := []models.AnswerRecord{record("Go", constants.LevelBasic, 5)}

	completed := Aggregate(records, 10, []string{"Go"}, "job", "1", models.ReportStatusCompleted)
	interrupted := Aggregate(records, 10, []string{"Go"}, "job", "1", models.ReportStatusInterrupted)

	assert.Equal(t, completed.TotalScore, interrupted.TotalScore)
	assert.Equal(t, completed.SkillScores, interrupted.SkillScores)
	assert.Equal(t, completed.MaxRawScore, interrupted.MaxRawScore)
}
