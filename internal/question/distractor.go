package question

import (
	"github.com/samber/lo"

	"github.com/minqi/vocadrill/internal/content"
)

// DistractorKind selects which surface form a distractor takes.
type DistractorKind int

const (
	// KindDefinition yields Chinese definitions (stages 1 and 2).
	KindDefinition DistractorKind = iota
	// KindWord yields surface word forms (stage 4 and the pre-test).
	KindWord
)

// GenerateDistractors picks up to count plausible wrong answers for target
// from pool. Candidates with a different word root are preferred so that
// morphological siblings don't give the answer away; the pool is widened in
// two steps when that preference can't fill the count. Never returns the
// target word or a duplicate surface word. May return fewer than count when
// the whole pool is small — callers must tolerate short option lists.
func GenerateDistractors(target content.WordItem, pool []content.WordItem, count int, kind DistractorKind) []string {
	candidates := lo.Filter(pool, func(it content.WordItem, _ int) bool {
		return it.WordRoot != target.WordRoot
	})

	if len(candidates) < count {
		sameRoot := lo.Filter(pool, func(it content.WordItem, _ int) bool {
			return it.WordRoot == target.WordRoot && it.Word != target.Word
		})
		candidates = append(candidates, sameRoot...)
	}

	if len(candidates) < count {
		anyOther := lo.Filter(pool, func(it content.WordItem, _ int) bool {
			return it.Word != target.Word
		})
		candidates = append(candidates, anyOther...)
	}

	// De-duplicate by surface word before sampling; the widening steps above
	// can re-introduce earlier candidates.
	candidates = lo.Filter(candidates, func(it content.WordItem, _ int) bool {
		return it.Word != target.Word
	})
	candidates = lo.UniqBy(candidates, func(it content.WordItem) string {
		return it.Word
	})

	picked := lo.Shuffle(candidates)
	if len(picked) > count {
		picked = picked[:count]
	}

	return lo.Map(picked, func(it content.WordItem, _ int) string {
		if kind == KindDefinition {
			return it.Definition.CN
		}
		return it.Word
	})
}
