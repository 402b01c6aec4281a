package interview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCollector() *Collector {
	return &Collector{
		AnswerTimeout: 40 * time.Millisecond,
		GraceTimeout:  40 * time.Millisecond,
	}
}

func TestCollect_AnswerInPrimaryWindow(t *testing.T) {
	ch := newFakeChannel()
	ch.push(AnswerMessage{Answer: "  goroutines are lightweight threads  "})

	answer, outcome := testCollector().Collect(ch)

	assert.Equal(t, Answered, outcome)
	assert.Equal(t, "goroutines are lightweight threads", answer)
	assert.Empty(t, ch.sentMessages(), "no warning expected when answered in time")
}

func TestCollect_AnswerInGraceWindow(t *testing.T) {
	ch := newFakeChannel()
	done := make(chan struct{})

	var answer string
	var outcome CollectOutcome
	go func() {
		defer close(done)
		answer, outcome = testCollector().Collect(ch)
	}()

	// The warning marks the start of the grace window.
	msg := <-ch.sentCh
	warning, ok := msg.(WarningMessage)
	require.True(t, ok, "expected a warning, got %T", msg)
	assert.Contains(t, warning.Warning, "remaining")

	ch.push(AnswerMessage{Answer: "late but present"})
	<-done

	assert.Equal(t, Answered, outcome)
	assert.Equal(t, "late but present", answer)
}

func TestCollect_BothWindowsLapse(t *testing.T) {
	ch := newFakeChannel()

	answer, outcome := testCollector().Collect(ch)

	assert.Equal(t, TimedOut, outcome)
	assert.Empty(t, answer)

	sent := ch.sentMessages()
	require.Len(t, sent, 1)
	_, ok := sent[0].(WarningMessage)
	assert.True(t, ok, "the only outbound message should be the warning")
}

func TestCollect_CloseDuringPrimaryWindow(t *testing.T) {
	ch := newFakeChannel()
	ch.Close()

	_, outcome := testCollector().Collect(ch)

	assert.Equal(t, Disconnected, outcome, "a close is never a timeout")
}

func TestCollect_CloseDuringGraceWindow(t *testing.T) {
	ch := newFakeChannel()
	done := make(chan struct{})

	var outcome CollectOutcome
	go func() {
		defer close(done)
		_, outcome = testCollector().Collect(ch)
	}()

	<-ch.sentCh // warning
	ch.Close()
	<-done

	assert.Equal(t, Disconnected, outcome)
}

func TestCollect_MalformedAnswerTreatedAsEmpty(t *testing.T) {
	ch := newFakeChannel()
	ch.inbound <- []byte("{not json")

	answer, outcome := testCollector().Collect(ch)

	assert.Equal(t, Answered, outcome)
	assert.Empty(t, answer)
}
