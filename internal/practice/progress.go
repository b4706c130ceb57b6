package practice

// Mastery stages. A word enters at FirstStage and is mastered once its
// stage reaches MasteryStage; stages 1-4 each map to a question type.
const (
	FirstStage   = 1
	MasteryStage = 5
)

// Mode selects how word outcomes are reported.
type Mode string

const (
	ModeLearn  Mode = "learn"
	ModeReview Mode = "review"
)

// Status is a word's lifecycle state within the session.
type Status string

const (
	StatusLearning Status = "learning"
	StatusMastered Status = "mastered"
)

// Result records the outcome of a word's most recent answer.
type Result string

const (
	ResultNone      Result = ""
	ResultCorrect   Result = "correct"
	ResultIncorrect Result = "incorrect"
)

// WordProgress is the mutable per-word state of a session. Only the engine
// mutates it, and only in response to a validated answer submission.
// Invariant: Status == StatusMastered iff Stage >= MasteryStage.
type WordProgress struct {
	Stage      int    `json:"stage"`
	Status     Status `json:"status"`
	LastResult Result `json:"last_result"`
}

// Advance applies a correct answer: the stage increments by exactly one,
// and the word is mastered when it reaches MasteryStage.
func (p *WordProgress) Advance() {
	p.Stage++
	p.LastResult = ResultCorrect
	if p.Stage >= MasteryStage {
		p.Status = StatusMastered
	}
}

// Demote applies an incorrect answer: a full reset to FirstStage,
// regardless of how far the word had come.
func (p *WordProgress) Demote() {
	p.Stage = FirstStage
	p.LastResult = ResultIncorrect
	p.Status = StatusLearning
}

// NewProgress seeds fresh learning progress for the given words.
func NewProgress(words []string) map[string]*WordProgress {
	m := make(map[string]*WordProgress, len(words))
	for _, w := range words {
		m[w] = &WordProgress{Stage: FirstStage, Status: StatusLearning, LastResult: ResultNone}
	}
	return m
}

// MasteredProgress seeds already-mastered progress. Used by the review-mode
// fast path where every word passed the pre-test and the session should
// degrade straight to a dictation offer.
func MasteredProgress(words []string) map[string]*WordProgress {
	m := make(map[string]*WordProgress, len(words))
	for _, w := range words {
		m[w] = &WordProgress{Stage: MasteryStage, Status: StatusMastered, LastResult: ResultCorrect}
	}
	return m
}
