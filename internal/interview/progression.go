package interview

import (
	"interview-service/internal/constants"
)

// StepKind is the decision the progression returns for a skill.
type StepKind int

const (
	// StepAsk asks one more question at Step.Level for Step.Skill.
	StepAsk StepKind = iota
	// StepSkip marks Step.Skill completed and advances to the next skill.
	StepSkip
	// StepDone means every selected skill is completed.
	StepDone
)

// Step is one decision of the skill progression.
type Step struct {
	Kind  StepKind
	Skill string
	Level string
}

// SkillTrack accumulates scores for one skill, strictly in
// basic -> intermediate -> hard order.
type SkillTrack struct {
	Basic        []int
	Intermediate []int
	Hard         []int
}

// Progression decides which skill to probe next and at what difficulty.
// It is pure decision logic over the recorded scores: no I/O, no clock.
//
// Per skill: up to 2 basic questions; an intermediate question only if any
// basic score reaches the threshold; a second intermediate only if the first
// one does; a hard question only if the two intermediates average at or
// above the threshold. Skills are visited in selection order and a skill is
// drilled until completed, never revisited afterwards.
type Progression struct {
	skills    []string
	tracks    map[string]*SkillTrack
	completed map[string]bool
	cursor    int
}

func NewProgression(skills []string) *Progression {
	// Skills are an ordered set; a duplicate entry would leave AllCompleted
	// permanently false.
	tracks := make(map[string]*SkillTrack, len(skills))
	unique := make([]string, 0, len(skills))
	for _, skill := range skills {
		if _, ok := tracks[skill]; ok {
			continue
		}
		tracks[skill] = &SkillTrack{}
		unique = append(unique, skill)
	}
	return &Progression{
		skills:    unique,
		tracks:    tracks,
		completed: make(map[string]bool, len(unique)),
	}
}

// Next returns the next decision. Callers loop on StepSkip; the question
// budget is the session controller's concern, not the progression's.
func (p *Progression) Next() Step {
	for !p.AllCompleted() {
		skill := p.skills[p.cursor%len(p.skills)]
		if p.completed[skill] {
			p.cursor++
			continue
		}

		track := p.tracks[skill]
		switch {
		case len(track.Basic) < constants.MaxBasicQuestions:
			return Step{Kind: StepAsk, Skill: skill, Level: constants.LevelBasic}

		case len(track.Intermediate) == 0:
			if anyAtLeast(track.Basic, constants.ScoreThreshold) {
				return Step{Kind: StepAsk, Skill: skill, Level: constants.LevelIntermediate}
			}
			return p.complete(skill)

		case len(track.Intermediate) == 1:
			if track.Intermediate[0] >= constants.ScoreThreshold {
				return Step{Kind: StepAsk, Skill: skill, Level: constants.LevelIntermediate}
			}
			return p.complete(skill)

		case len(track.Hard) == 0:
			if average(track.Intermediate) >= constants.ScoreThreshold {
				return Step{Kind: StepAsk, Skill: skill, Level: constants.LevelHard}
			}
			return p.complete(skill)

		default:
			return p.complete(skill)
		}
	}
	return Step{Kind: StepDone}
}

// Record appends a score for the given skill and level.
func (p *Progression) Record(skill, level string, score int) {
	track, ok := p.tracks[skill]
	if !ok {
		return
	}
	switch level {
	case constants.LevelBasic:
		track.Basic = append(track.Basic, score)
	case constants.LevelIntermediate:
		track.Intermediate = append(track.Intermediate, score)
	case constants.LevelHard:
		track.Hard = append(track.Hard, score)
	}
}

// AllCompleted reports whether every selected skill is completed.
func (p *Progression) AllCompleted() bool {
	return len(p.completed) == len(p.skills)
}

// Completed reports whether the given skill is completed.
func (p *Progression) Completed(skill string) bool {
	return p.completed[skill]
}

// Track returns the recorded scores for a skill, or nil if unknown.
func (p *Progression) Track(skill string) *SkillTrack {
	return p.tracks[skill]
}

func (p *Progression) complete(skill string) Step {
	p.completed[skill] = true
	p.cursor++
	return Step{Kind: StepSkip, Skill: skill}
}

func anyAtLeast(scores []int, threshold int) bool {
	for _, s := range scores {
		if s >= threshold {
			return true
		}
	}
	return false
}

func average(scores []int) float64 {
	if len(scores) == 0 {
		return 0
	}
	sum := 0
	for _, s := range scores {
		sum += s
	}
	return float64(sum) / float64(len(scores))
}
