package oracle

import (
	"context"
	"fmt"
	"sync"
)

// MockOracle is a deterministic Oracle for testing. Questions are generated
// from a counter; scores are served FIFO from a scripted queue.
type MockOracle struct {
	mu sync.Mutex

	// Skills is returned from SelectSkills when set. When nil,
	// SelectSkillsErr (or a malformed-selection error) is returned.
	Skills          []string
	SelectSkillsErr error

	// Scores are consumed one per Score call. When the queue is empty,
	// DefaultScore is returned.
	Scores       []int
	DefaultScore int

	QuestionErr error
	ScoreErr    error

	questionCount int
	ScoreCalls    []string // answers passed to Score, in order
}

func (m *MockOracle) SelectSkills(_ context.Context, _ string, _ []string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SelectSkillsErr != nil {
		return nil, m.SelectSkillsErr
	}
	if m.Skills == nil {
		return nil, &MalformedSkillSelectionError{Raw: "mock"}
	}
	return m.Skills, nil
}

func (m *MockOracle) NextQuestion(_ context.Context, _, skill, level string, _ []string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.QuestionErr != nil {
		return "", m.QuestionErr
	}
	m.questionCount++
	return fmt.Sprintf("Q%d: %s (%s)?", m.questionCount, skill, level), nil
}

func (m *MockOracle) Score(_ context.Context, _, answer string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ScoreErr != nil {
		return 0, m.ScoreErr
	}
	m.ScoreCalls = append(m.ScoreCalls, answer)

	if len(m.Scores) == 0 {
		return m.DefaultScore, nil
	}
	score := m.Scores[0]
	m.Scores = m.Scores[1:]
	return score, nil
}

// QuestionCount returns the number of NextQuestion calls made.
func (m *MockOracle) QuestionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.questionCount
}
