package interview

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// CollectOutcome is the result of one answer-collection attempt.
type CollectOutcome int

const (
	// Answered means the candidate replied within one of the two windows.
	Answered CollectOutcome = iota
	// TimedOut means both the primary and the grace window lapsed.
	TimedOut
	// Disconnected means the channel closed during a wait. Never conflated
	// with a timeout.
	Disconnected
)

// Collector manages the two-stage wait for a single answer: a primary
// window, then a warning message followed by a grace window. Both waits are
// cancellable timers composed with the channel's receive, so an answer or a
// close event short-circuits immediately.
type Collector struct {
	AnswerTimeout time.Duration
	GraceTimeout  time.Duration
}

// Collect waits for one answer on the channel. On a full timeout the caller
// records a synthetic zero-score answer; the session continues.
func (c *Collector) Collect(ch Channel) (string, CollectOutcome) {
	timer := time.NewTimer(c.AnswerTimeout)
	defer timer.Stop()

	select {
	case raw, ok := <-ch.Inbound():
		if !ok {
			return "", Disconnected
		}
		return parseAnswer(raw), Answered
	case <-ch.Disconnected():
		return "", Disconnected
	case <-timer.C:
	}

	warning := fmt.Sprintf("%d seconds remaining to answer.", int(c.GraceTimeout.Seconds()))
	if err := ch.Send(WarningMessage{Warning: warning}); err != nil {
		return "", Disconnected
	}

	grace := time.NewTimer(c.GraceTimeout)
	defer grace.Stop()

	select {
	case raw, ok := <-ch.Inbound():
		if !ok {
			return "", Disconnected
		}
		return parseAnswer(raw), Answered
	case <-ch.Disconnected():
		return "", Disconnected
	case <-grace.C:
		return "", TimedOut
	}
}

func parseAnswer(raw []byte) string {
	var msg AnswerMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return ""
	}
	return strings.TrimSpace(msg.Answer)
}
