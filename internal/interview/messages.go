package interview

// Wire shapes for the candidate-facing duplex channel. Every message is a
// flat JSON object distinguished by its single key; the terminal message is
// the full models.FinalReport.

// BootstrapMessage opens a session.
type BootstrapMessage struct {
	CandidateID  string   `json:"candidate_id"`
	JobName      string   `json:"job_name"`
	NumQuestions int      `json:"num_questions"`
	Skills       []string `json:"skills"`
}

// QuestionMessage carries the next question to the candidate.
type QuestionMessage struct {
	Question string `json:"question"`
}

// WarningMessage is the grace-period notice sent after the primary answer
// window lapses.
type WarningMessage struct {
	Warning string `json:"warning"`
}

// AnswerMessage is the candidate's reply to the current question.
type AnswerMessage struct {
	Answer string `json:"answer"`
}

// ErrorMessage reports a fatal session error to the candidate.
type ErrorMessage struct {
	Error string `json:"error"`
}
