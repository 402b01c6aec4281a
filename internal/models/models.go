package models

import (
	"database/sql"
	"time"
)

// Final report status values.
const (
	ReportStatusCompleted          = "Completed"
	ReportStatusPartiallyCompleted = "PartiallyCompleted"
	ReportStatusInterrupted        = "Interrupted"
	ReportStatusErrored            = "Errored"
)

// AnswerRecord captures one question/answer exchange. Records are
// append-only; once written they are never mutated or reordered.
type AnswerRecord struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Score    int    `json:"score"`
	Skill    string `json:"skill"`
	Level    string `json:"level"`
}

// FinalReport is the terminal summary of one interview session. It is
// computed once from the answer log and delivered exactly once.
type FinalReport struct {
	Status               string             `json:"status"`
	Results              []AnswerRecord     `json:"results"`
	TotalRawScore        int                `json:"total_raw_score"`
	MaxRawScore          int                `json:"max_raw_score"`
	ActualQuestionsAsked int                `json:"actual_questions_asked"`
	TotalScore           float64            `json:"total_score"`
	SkillScores          map[string]float64 `json:"skill_scores"`
	SelectedSkills       []string           `json:"selected_skills"`
	JobName              string             `json:"job_name"`
	CandidateID          string             `json:"candidate_id"`
}

// InterviewSession is the persisted session row.
type InterviewSession struct {
	ID             string       `json:"id"`
	CandidateID    string       `json:"candidate_id"`
	JobName        string       `json:"job_name"`
	Status         string       `json:"status"` // "in_progress", "finished", "errored"
	QuestionsAsked int          `json:"questions_asked"`
	TotalScore     float64      `json:"total_score"`
	Report         string       `json:"report,omitempty"` // JSON
	StartedAt      time.Time    `json:"started_at"`
	FinishedAt     sql.NullTime `json:"finished_at,omitempty"`
}

// ViolationSummary is the proctoring tally flushed once per session.
type ViolationSummary struct {
	CandidateID             string `json:"candidate_id"`
	MultiplePersonsDetected int    `json:"multiple_persons_detected"`
	NoPersonDetected        int    `json:"no_person_detected"`
	DeviceDetected          int    `json:"device_detected"`
	FramesFlagged           int    `json:"frames_flagged"`
}

// Flagged reports whether any violation was observed during the session.
func (s ViolationSummary) Flagged() bool {
	return s.FramesFlagged > 0
}
