package practice

// Effect is an external action requested by a state transition. The engine
// never performs I/O itself; the screen adapter dispatches effects and feeds
// results back in as events. This keeps every transition unit-testable.
type Effect interface{ isEffect() }

// ReportMastered asks the adapter to mark words permanently mastered
// (learn mode). The backend call is idempotent and unordered.
type ReportMastered struct {
	Words []string
}

// ReviewResult is the outcome reported per word in review mode.
type ReviewResult string

const (
	ReviewPass ReviewResult = "pass"
	ReviewFail ReviewResult = "fail"
)

// ReportReview asks the adapter to record a spaced-repetition outcome for
// one word (review mode). One call per word per review event.
type ReportReview struct {
	Word   string
	Result ReviewResult
}

// PersistSnapshot asks the adapter to write the resumable session snapshot.
// Fire-and-forget: later transitions never wait on it.
type PersistSnapshot struct {
	Snap Snapshot
}

// ClearSnapshot asks the adapter to drop the resumable snapshot; emitted
// when the session reaches a terminal state.
type ClearSnapshot struct{}

func (ReportMastered) isEffect()  {}
func (ReportReview) isEffect()    {}
func (PersistSnapshot) isEffect() {}
func (ClearSnapshot) isEffect()   {}
