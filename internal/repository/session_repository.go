package repository

import (
	"context"
	"database/sql"
	"fmt"

	"interview-service/internal/models"
)

type SessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) CreateSession(ctx context.Context, session *models.InterviewSession) error {
	query := `
		INSERT INTO interview_sessions (id, candidate_id, job_name, status, questions_asked, total_score, started_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		session.ID,
		session.CandidateID,
		session.JobName,
		session.Status,
		session.QuestionsAsked,
		session.TotalScore,
		session.StartedAt,
	)
	return err
}

func (r *SessionRepository) FinishSession(ctx context.Context, session *models.InterviewSession) error {
	query := `
		UPDATE interview_sessions
		SET status = $1, questions_asked = $2, total_score = $3, report = NULLIF($4, ''), finished_at = $5
		WHERE id = $6
	`
	result, err := r.db.ExecContext(ctx, query,
		session.Status,
		session.QuestionsAsked,
		session.TotalScore,
		session.Report,
		session.FinishedAt,
		session.ID,
	)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("session not found")
	}
	return nil
}

func (r *SessionRepository) GetSession(ctx context.Context, id string) (*models.InterviewSession, error) {
	query := `
		SELECT id, candidate_id, job_name, status, questions_asked, total_score, COALESCE(report, ''), started_at, finished_at
		FROM interview_sessions
		WHERE id = $1
	`
	session := &models.InterviewSession{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&session.ID,
		&session.CandidateID,
		&session.JobName,
		&session.Status,
		&session.QuestionsAsked,
		&session.TotalScore,
		&session.Report,
		&session.StartedAt,
		&session.FinishedAt,
	)
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (r *SessionRepository) GetSessionsByCandidate(ctx context.Context, candidateID string) ([]*models.InterviewSession, error) {
	query := `
		SELECT id, candidate_id, job_name, status, questions_asked, total_score, COALESCE(report, ''), started_at, finished_at
		FROM interview_sessions
		WHERE candidate_id = $1
		ORDER BY started_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*models.InterviewSession
	for rows.Next() {
		session := &models.InterviewSession{}
		err := rows.Scan(
			&session.ID,
			&session.CandidateID,
			&session.JobName,
			&session.Status,
			&session.QuestionsAsked,
			&session.TotalScore,
			&session.Report,
			&session.StartedAt,
			&session.FinishedAt,
		)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}
