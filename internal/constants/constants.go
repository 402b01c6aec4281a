package constants

const (
	LevelBasic        = "basic"
	LevelIntermediate = "intermediate"
	LevelHard         = "hard"
)

const (
	SessionStatusInProgress = "in_progress"
	SessionStatusFinished   = "finished"
	SessionStatusErrored    = "errored"
)

const (
	// ScoreThreshold is the minimum score required to advance a skill to
	// the next difficulty level.
	ScoreThreshold = 7

	MaxBasicQuestions        = 2
	MaxIntermediateQuestions = 2
	MaxHardQuestions         = 1
)

const (
	// NoResponseAnswer is recorded when the candidate lets both answer
	// windows lapse.
	NoResponseAnswer = "No response"
)

const (
	QueueInterviewCompleted = "interview.completed"
)
