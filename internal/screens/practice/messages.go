package practice

import (
	prac "github.com/minqi/vocadrill/internal/practice"
)

// engineReadyMsg is sent when an asynchronously built engine (review
// fetch or snapshot restore) is ready.
type engineReadyMsg struct {
	eng     *prac.Engine
	effects []prac.Effect
	empty   bool
	err     error
}

// explanationMsg carries the fetched reordering explanation.
type explanationMsg struct {
	word string
	text string
}

// narrationDoneMsg is sent when the post-answer narration finishes.
// seq guards against a stale completion after skip or replay.
type narrationDoneMsg struct {
	seq int
}
