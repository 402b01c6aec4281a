package proctoring

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedOracle struct {
	verdicts []Verdict
	err      error
}

func (o *scriptedOracle) Evaluate(_ context.Context, _ []byte) (Verdict, error) {
	if o.err != nil {
		return Verdict{}, o.err
	}
	if len(o.verdicts) == 0 {
		return Verdict{}, nil
	}
	v := o.verdicts[0]
	o.verdicts = o.verdicts[1:]
	return v, nil
}

func TestVerdictFlagged(t *testing.T) {
	assert.False(t, Verdict{}.Flagged())
	assert.True(t, Verdict{MultiplePersonsDetected: true}.Flagged())
	assert.True(t, Verdict{NoPersonDetected: true}.Flagged())
	assert.True(t, Verdict{DeviceDetected: true}.Flagged())
}

func TestServiceTalliesPerCandidate(t *testing.T) {
	svc := NewService(&scriptedOracle{verdicts: []Verdict{
		{MultiplePersonsDetected: true},
		{},
		{NoPersonDetected: true, DeviceDetected: true},
	}})

	for i := 0; i < 3; i++ {
		_, err := svc.ProcessFrame(context.Background(), "cand-1", []byte("frame"))
		require.NoError(t, err)
	}

	summary, recorded := svc.Flush("cand-1")
	require.True(t, recorded)
	assert.Equal(t, "cand-1", summary.CandidateID)
	assert.Equal(t, 1, summary.MultiplePersonsDetected)
	assert.Equal(t, 1, summary.NoPersonDetected)
	assert.Equal(t, 1, summary.DeviceDetected)
	assert.Equal(t, 2, summary.FramesFlagged)
	assert.True(t, summary.Flagged())
}

func TestServiceKeepsCandidatesSeparate(t *testing.T) {
	svc := NewService(&scriptedOracle{verdicts: []Verdict{
		{DeviceDetected: true},
		{},
	}})

	_, err := svc.ProcessFrame(context.Background(), "cand-1", []byte("frame"))
	require.NoError(t, err)
	_, err = svc.ProcessFrame(context.Background(), "cand-2", []byte("frame"))
	require.NoError(t, err)

	first, _ := svc.Flush("cand-1")
	assert.Equal(t, 1, first.DeviceDetected)

	second, _ := svc.Flush("cand-2")
	assert.Zero(t, second.FramesFlagged)
	assert.False(t, second.Flagged())
}

func TestFlushDiscardsMonitor(t *testing.T) {
	svc := NewService(&scriptedOracle{verdicts: []Verdict{{NoPersonDetected: true}}})

	_, err := svc.ProcessFrame(context.Background(), "cand-1", []byte("frame"))
	require.NoError(t, err)

	_, recorded := svc.Flush("cand-1")
	assert.True(t, recorded)

	summary, recorded := svc.Flush("cand-1")
	assert.False(t, recorded, "second flush starts from a clean slate")
	assert.Zero(t, summary.NoPersonDetected)
}

func TestFlushWithoutFrames(t *testing.T) {
	svc := NewService(&scriptedOracle{})

	summary, recorded := svc.Flush("never-seen")
	assert.False(t, recorded)
	assert.Equal(t, "never-seen", summary.CandidateID)
}

func TestProcessFrameDetectorError(t *testing.T) {
	svc := NewService(&scriptedOracle{err: errors.New("detector offline")})

	_, err := svc.ProcessFrame(context.Background(), "cand-1", []byte("frame"))
	require.Error(t, err)

	_, recorded := svc.Flush("cand-1")
	assert.False(t, recorded, "failed evaluations must not create a monitor")
}
