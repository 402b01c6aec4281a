package proctoring

import (
	"context"
	"sync"

	"interview-service/internal/models"
)

// Verdict is the external detector's judgement of a single video frame.
type Verdict struct {
	MultiplePersonsDetected bool `json:"multiple_persons_detected"`
	NoPersonDetected        bool `json:"no_person_detected"`
	DeviceDetected          bool `json:"device_detected"`
}

// Flagged reports whether the frame violated any rule.
func (v Verdict) Flagged() bool {
	return v.MultiplePersonsDetected || v.NoPersonDetected || v.DeviceDetected
}

// FrameOracle evaluates one frame. The concrete detector (face counting,
// object detection) is an external collaborator behind this boundary.
type FrameOracle interface {
	Evaluate(ctx context.Context, frame []byte) (Verdict, error)
}

// Monitor tallies violations for one candidate's session. Counters live on
// the session object, not in a process-wide map, so nothing accumulates
// past the session's lifetime.
type Monitor struct {
	mu      sync.Mutex
	summary models.ViolationSummary
}

func newMonitor(candidateID string) *Monitor {
	return &Monitor{summary: models.ViolationSummary{CandidateID: candidateID}}
}

func (m *Monitor) Record(v Verdict) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if v.MultiplePersonsDetected {
		m.summary.MultiplePersonsDetected++
	}
	if v.NoPersonDetected {
		m.summary.NoPersonDetected++
	}
	if v.DeviceDetected {
		m.summary.DeviceDetected++
	}
	if v.Flagged() {
		m.summary.FramesFlagged++
	}
}

func (m *Monitor) Summary() models.ViolationSummary {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.summary
}

// Service routes frames to the detector and keeps one Monitor per active
// session. Monitors are created on the first frame and discarded on flush.
type Service struct {
	oracle FrameOracle

	mu       sync.Mutex
	monitors map[string]*Monitor
}

func NewService(oracle FrameOracle) *Service {
	return &Service{
		oracle:   oracle,
		monitors: make(map[string]*Monitor),
	}
}

// ProcessFrame evaluates one frame and records the verdict against the
// candidate's session monitor.
func (s *Service) ProcessFrame(ctx context.Context, candidateID string, frame []byte) (Verdict, error) {
	verdict, err := s.oracle.Evaluate(ctx, frame)
	if err != nil {
		return Verdict{}, err
	}

	s.monitor(candidateID).Record(verdict)
	return verdict, nil
}

// Flush returns the session's tally and discards its monitor. The second
// return value is false when no frames were ever recorded for the session.
func (s *Service) Flush(candidateID string) (models.ViolationSummary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	monitor, ok := s.monitors[candidateID]
	if !ok {
		return models.ViolationSummary{CandidateID: candidateID}, false
	}
	delete(s.monitors, candidateID)
	return monitor.Summary(), true
}

func (s *Service) monitor(candidateID string) *Monitor {
	s.mu.Lock()
	defer s.mu.Unlock()

	monitor, ok := s.monitors[candidateID]
	if !ok {
		monitor = newMonitor(candidateID)
		s.monitors[candidateID] = monitor
	}
	return monitor
}
