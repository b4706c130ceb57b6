package practice

import "github.com/minqi/vocadrill/internal/content"

// Snapshot is the resumable image of an in-progress learning session.
// Written after every progress mutation (last write wins, no versioning);
// restoring one reproduces the exact round order and position, which is
// why RoundWords preserves order instead of being reshuffled.
type Snapshot struct {
	SessionStatus string                  `json:"session_status"`
	SessionID     string                  `json:"session_id"`
	Mode          Mode                    `json:"practice_mode"`
	Tier          string                  `json:"tier"`
	Items         []content.WordItem      `json:"learning_items"`
	Progress      map[string]WordProgress `json:"word_progress"`
	RoundWords    []string                `json:"current_round_words"`
	QuestionIndex int                     `json:"question_index"`
}

// snapshotStatusLearning marks a snapshot taken from an active session.
const snapshotStatusLearning = "learning"

// LastSession captures the last chosen mode and tier, offered for a quick
// restart when no in-progress snapshot exists.
type LastSession struct {
	Mode Mode   `json:"practice_mode"`
	Tier string `json:"tier"`
}
