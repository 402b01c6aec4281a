package interview

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"interview-service/internal/constants"
	"interview-service/internal/models"
	"interview-service/internal/oracle"

	"github.com/google/uuid"
)

const reportCacheTTL = 24 * time.Hour

// lowConfidencePhrases trigger the level-dependent score override regardless
// of the oracle's numeric verdict.
var lowConfidencePhrases = []string{"i don't know", "i don’t know", "not sure", "no idea"}

// DirectoryStore receives the final report once per session.
type DirectoryStore interface {
	DeliverFinalReport(ctx context.Context, report *models.FinalReport) error
}

// SessionStore persists session lifecycle rows. Optional; failures are
// logged, never fatal to the interview.
type SessionStore interface {
	CreateSession(ctx context.Context, session *models.InterviewSession) error
	FinishSession(ctx context.Context, session *models.InterviewSession) error
}

// ReportCache caches the final report for recruiter-side reads. Optional.
type ReportCache interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
}

// EventPublisher announces session completion on the message bus. Optional.
type EventPublisher interface {
	Publish(ctx context.Context, queueName string, body []byte) error
}

// CompletedEvent is published to the interview.completed queue on finalize.
type CompletedEvent struct {
	CandidateID    string  `json:"candidate_id"`
	JobName        string  `json:"job_name"`
	Status         string  `json:"status"`
	TotalScore     float64 `json:"total_score"`
	QuestionsAsked int     `json:"questions_asked"`
}

// Config wires one session's collaborators. Channel, Oracle and Directory
// are required; the rest are nil-tolerant.
type Config struct {
	Channel   Channel
	Oracle    oracle.Oracle
	Directory DirectoryStore
	Sessions  SessionStore
	Cache     ReportCache
	Events    EventPublisher

	AnswerTimeout time.Duration
	GraceTimeout  time.Duration

	// AuthorizedCandidateID, when set, must match the bootstrap message's
	// candidate id.
	AuthorizedCandidateID string
}

// Session owns one candidate's interview end to end: it drives the skill
// progression, the question oracle and the answer collector, and guarantees
// exactly-once emission of the terminal report under both the completion
// and the disconnect exit paths.
type Session struct {
	id        string
	ch        Channel
	oracle    oracle.Oracle
	directory DirectoryStore
	sessions  SessionStore
	cache     ReportCache
	events    EventPublisher
	collector *Collector

	authorizedCandidate string

	mu       sync.Mutex
	boot     *BootstrapMessage
	selected []string
	records  []models.AnswerRecord

	reportSent atomic.Bool
}

func NewSession(cfg Config) *Session {
	return &Session{
		id:        uuid.NewString(),
		ch:        cfg.Channel,
		oracle:    cfg.Oracle,
		directory: cfg.Directory,
		sessions:  cfg.Sessions,
		cache:     cfg.Cache,
		events:    cfg.Events,
		collector: &Collector{
			AnswerTimeout: cfg.AnswerTimeout,
			GraceTimeout:  cfg.GraceTimeout,
		},
		authorizedCandidate: cfg.AuthorizedCandidateID,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Run conducts the interview. It blocks until the session reaches its
// terminal state and is safe to race with Interrupt.
func (s *Session) Run(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Session %s panic: %v", s.id, r)
			s.finalize(ctx, models.ReportStatusErrored)
		}
		s.ch.Close()
	}()

	boot, ok := s.awaitBootstrap(ctx)
	if !ok {
		s.reportSent.Store(true)
		return
	}
	log.Printf("Session %s started: candidate=%s, job=%s, questions=%d, skills=%v",
		s.id, boot.CandidateID, boot.JobName, boot.NumQuestions, boot.Skills)

	s.recordStart(ctx, boot)

	selected, fatal := s.selectSkills(ctx, boot)
	if fatal {
		return
	}
	if len(selected) == 0 {
		s.fail(ctx, "No skills available for the interview.")
		return
	}

	s.mu.Lock()
	s.selected = selected
	s.mu.Unlock()

	status := s.interviewLoop(ctx, boot, selected)
	if status == "" {
		return // fatal oracle fault, already reported
	}
	s.finalize(ctx, status)
}

// Interrupt finalizes the session with Interrupted status. Invoked by the
// transport when it observes the peer closing; the exactly-once flag
// decides the winner if the completion path races it.
func (s *Session) Interrupt(ctx context.Context) {
	s.mu.Lock()
	bootstrapped := s.boot != nil
	s.mu.Unlock()

	if !bootstrapped {
		// Nothing to report on a connection that never opened a session.
		s.reportSent.Store(true)
		return
	}
	s.finalize(ctx, models.ReportStatusInterrupted)
}

func (s *Session) awaitBootstrap(ctx context.Context) (*BootstrapMessage, bool) {
	select {
	case raw, ok := <-s.ch.Inbound():
		if !ok {
			return nil, false
		}
		var boot BootstrapMessage
		if err := json.Unmarshal(raw, &boot); err != nil {
			s.sendError("Invalid session request.")
			return nil, false
		}
		if boot.CandidateID == "" || boot.NumQuestions <= 0 || len(boot.Skills) == 0 {
			s.sendError("Invalid session request.")
			return nil, false
		}
		if s.authorizedCandidate != "" && s.authorizedCandidate != boot.CandidateID {
			s.sendError("Token does not match candidate.")
			return nil, false
		}

		s.mu.Lock()
		s.boot = &boot
		s.mu.Unlock()
		return &boot, true

	case <-s.ch.Disconnected():
		return nil, false
	case <-ctx.Done():
		return nil, false
	}
}

// selectSkills asks the oracle for the relevant subset, falling back to the
// full candidate list when the selection is malformed. Only an oracle call
// failure is fatal.
func (s *Session) selectSkills(ctx context.Context, boot *BootstrapMessage) ([]string, bool) {
	selected, err := s.oracle.SelectSkills(ctx, boot.JobName, boot.Skills)
	if err != nil {
		var malformed *oracle.MalformedSkillSelectionError
		if errors.As(err, &malformed) {
			log.Printf("Session %s: skill selection unparseable, using full list: %v", s.id, err)
			return boot.Skills, false
		}
		log.Printf("Session %s: skill selection failed: %v", s.id, err)
		s.fail(ctx, "Interview service is unavailable.")
		return nil, true
	}
	if len(selected) == 0 {
		return boot.Skills, false
	}
	return selected, false
}

// interviewLoop runs the question/answer exchange until the budget is
// exhausted, every skill completes, or the channel closes. It returns the
// report status, or "" when a fatal oracle fault already closed the session.
func (s *Session) interviewLoop(ctx context.Context, boot *BootstrapMessage, selected []string) string {
	prog := NewProgression(selected)
	asked := make(map[string][]string)

	for s.recordCount() < boot.NumQuestions {
		step := prog.Next()
		if step.Kind == StepDone {
			break
		}
		if step.Kind == StepSkip {
			log.Printf("Session %s: skill %q completed", s.id, step.Skill)
			continue
		}

		key := step.Skill + ":" + step.Level
		question, err := s.oracle.NextQuestion(ctx, boot.JobName, step.Skill, step.Level, asked[key])
		if err != nil {
			log.Printf("Session %s: question generation failed: %v", s.id, err)
			s.fail(ctx, "Interview service is unavailable.")
			return ""
		}
		asked[key] = append(asked[key], question)

		if err := s.ch.Send(QuestionMessage{Question: question}); err != nil {
			return models.ReportStatusInterrupted
		}

		answer, outcome := s.collector.Collect(s.ch)
		switch outcome {
		case Disconnected:
			return models.ReportStatusInterrupted

		case TimedOut:
			log.Printf("Session %s: no response for %s/%s question", s.id, step.Skill, step.Level)
			s.appendRecord(models.AnswerRecord{
				Question: question,
				Answer:   constants.NoResponseAnswer,
				Score:    0,
				Skill:    step.Skill,
				Level:    step.Level,
			})
			prog.Record(step.Skill, step.Level, 0)

		case Answered:
			score, fatal := s.scoreAnswer(ctx, question, answer, step.Level)
			if fatal {
				return ""
			}
			s.appendRecord(models.AnswerRecord{
				Question: question,
				Answer:   answer,
				Score:    score,
				Skill:    step.Skill,
				Level:    step.Level,
			})
			prog.Record(step.Skill, step.Level, score)
		}
	}

	// Drain pending completion decisions: a skill whose ladder was exhausted
	// on the budget's last question counts as finished.
	for {
		switch prog.Next().Kind {
		case StepSkip:
			continue
		case StepDone:
			return models.ReportStatusCompleted
		default:
			return models.ReportStatusPartiallyCompleted
		}
	}
}

// scoreAnswer asks the oracle to rate the answer, recovering locally from
// unparseable output and applying the low-confidence override.
func (s *Session) scoreAnswer(ctx context.Context, question, answer, level string) (int, bool) {
	score, err := s.oracle.Score(ctx, question, answer)
	if err != nil {
		var unparseable *oracle.UnparseableScoreError
		if !errors.As(err, &unparseable) {
			log.Printf("Session %s: scoring failed: %v", s.id, err)
			s.fail(ctx, "Interview service is unavailable.")
			return 0, true
		}
		log.Printf("Session %s: unparseable score, defaulting: %v", s.id, err)
		score = 5
	}

	if score < 0 {
		score = 0
	} else if score > 10 {
		score = 10
	}

	if override, ok := lowConfidenceScore(answer, level); ok {
		score = override
	}
	return score, false
}

// lowConfidenceScore maps "I don't know"-class answers to a fixed score per
// level, overriding the oracle's verdict.
func lowConfidenceScore(answer, level string) (int, bool) {
	lowered := strings.ToLower(answer)
	for _, phrase := range lowConfidencePhrases {
		if strings.Contains(lowered, phrase) {
			switch level {
			case constants.LevelBasic:
				return 1, true
			case constants.LevelIntermediate:
				return 4, true
			case constants.LevelHard:
				return 6, true
			}
		}
	}
	return 0, false
}

// finalize computes and dispatches the final report exactly once: to the
// channel if still open, unconditionally to the directory store, then to
// the optional persistence, cache and event collaborators.
func (s *Session) finalize(ctx context.Context, status string) {
	if !s.reportSent.CompareAndSwap(false, true) {
		return
	}

	s.mu.Lock()
	boot := s.boot
	selected := s.selected
	records := make([]models.AnswerRecord, len(s.records))
	copy(records, s.records)
	s.mu.Unlock()

	if boot == nil {
		return
	}
	if selected == nil {
		selected = boot.Skills
	}

	report := Aggregate(records, boot.NumQuestions, selected, boot.JobName, boot.CandidateID, status)

	if err := s.ch.Send(report); err != nil {
		log.Printf("Session %s: could not send final report over channel: %v", s.id, err)
	}

	if err := s.directory.DeliverFinalReport(ctx, report); err != nil {
		log.Printf("Session %s: directory delivery failed: %v", s.id, err)
	}

	s.recordFinish(ctx, report)
	s.cacheReport(ctx, report)
	s.publishCompleted(ctx, report)

	log.Printf("Session %s finalized: status=%s, asked=%d, score=%.2f",
		s.id, status, report.ActualQuestionsAsked, report.TotalScore)
}

// fail reports a fatal fault to the candidate and closes the session
// without a final report.
func (s *Session) fail(ctx context.Context, message string) {
	if !s.reportSent.CompareAndSwap(false, true) {
		return
	}
	s.sendError(message)

	s.mu.Lock()
	boot := s.boot
	s.mu.Unlock()
	if boot != nil && s.sessions != nil {
		err := s.sessions.FinishSession(ctx, &models.InterviewSession{
			ID:         s.id,
			Status:     constants.SessionStatusErrored,
			FinishedAt: sql.NullTime{Time: time.Now(), Valid: true},
		})
		if err != nil {
			log.Printf("Session %s: failed to mark session errored: %v", s.id, err)
		}
	}
	s.ch.Close()
}

func (s *Session) sendError(message string) {
	if err := s.ch.Send(ErrorMessage{Error: message}); err != nil {
		log.Printf("Session %s: failed to send error message: %v", s.id, err)
	}
}

func (s *Session) appendRecord(record models.AnswerRecord) {
	s.mu.Lock()
	s.records = append(s.records, record)
	s.mu.Unlock()
}

func (s *Session) recordCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func (s *Session) recordStart(ctx context.Context, boot *BootstrapMessage) {
	if s.sessions == nil {
		return
	}
	err := s.sessions.CreateSession(ctx, &models.InterviewSession{
		ID:          s.id,
		CandidateID: boot.CandidateID,
		JobName:     boot.JobName,
		Status:      constants.SessionStatusInProgress,
		StartedAt:   time.Now(),
	})
	if err != nil {
		log.Printf("Session %s: failed to persist session: %v", s.id, err)
	}
}

func (s *Session) recordFinish(ctx context.Context, report *models.FinalReport) {
	if s.sessions == nil {
		return
	}
	data, err := json.Marshal(report)
	if err != nil {
		log.Printf("Session %s: failed to marshal report: %v", s.id, err)
		return
	}
	err = s.sessions.FinishSession(ctx, &models.InterviewSession{
		ID:             s.id,
		Status:         constants.SessionStatusFinished,
		QuestionsAsked: report.ActualQuestionsAsked,
		TotalScore:     report.TotalScore,
		Report:         string(data),
		FinishedAt:     sql.NullTime{Time: time.Now(), Valid: true},
	})
	if err != nil {
		log.Printf("Session %s: failed to finish session row: %v", s.id, err)
	}
}

func (s *Session) cacheReport(ctx context.Context, report *models.FinalReport) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(report)
	if err != nil {
		return
	}
	key := "interview:" + report.CandidateID + ":report"
	if err := s.cache.Set(ctx, key, string(data), reportCacheTTL); err != nil {
		log.Printf("Session %s: failed to cache report: %v", s.id, err)
	}
}

func (s *Session) publishCompleted(ctx context.Context, report *models.FinalReport) {
	if s.events == nil {
		return
	}
	body, err := json.Marshal(CompletedEvent{
		CandidateID:    report.CandidateID,
		JobName:        report.JobName,
		Status:         report.Status,
		TotalScore:     report.TotalScore,
		QuestionsAsked: report.ActualQuestionsAsked,
	})
	if err != nil {
		return
	}
	if err := s.events.Publish(ctx, constants.QueueInterviewCompleted, body); err != nil {
		log.Printf("Session %s: failed to publish completion event: %v", s.id, err)
	}
}
