package interview

import (
	"math"

	"interview-service/internal/models"
)

// Aggregate converts the answer log into the final report. It is pure and
// deterministic, and is called identically on normal completion and on an
// interrupted session: it never assumes the budget was exhausted or that
// every skill was attempted.
//
// MaxRawScore is tied to the requested budget while the overall percentage
// is computed against the questions actually asked; both figures are
// reported distinctly because downstream consumers rely on either.
func Aggregate(records []models.AnswerRecord, maxQuestions int, selectedSkills []string, jobName, candidateID, status string) *models.FinalReport {
	totalRaw := 0
	for _, r := range records {
		totalRaw += r.Score
	}

	achievedMax := len(records) * 10
	overall := 0.0
	if achievedMax > 0 {
		overall = round2(float64(totalRaw) / float64(achievedMax) * 100)
	}

	skillScores := make(map[string]float64, len(selectedSkills))
	for _, skill := range selectedSkills {
		sum, count := 0, 0
		for _, r := range records {
			if r.Skill == skill {
				sum += r.Score
				count++
			}
		}
		if count == 0 {
			skillScores[skill] = 0
			continue
		}
		skillScores[skill] = round2(float64(sum) / float64(count*10) * 100)
	}

	return &models.FinalReport{
		Status:               status,
		Results:              records,
		TotalRawScore:        totalRaw,
		MaxRawScore:          maxQuestions * 10,
		ActualQuestionsAsked: len(records),
		TotalScore:           overall,
		SkillScores:          skillScores,
		SelectedSkills:       selectedSkills,
		JobName:              jobName,
		CandidateID:          candidateID,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
