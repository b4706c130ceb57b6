package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/samber/lo"

	"github.com/minqi/vocadrill/internal/content"
)

// PracticeSession is the material fetched for one session: the content
// records the backend returned, plus the requested words it no longer
// knows about.
type PracticeSession struct {
	Items   []content.WordItem
	Missing []string
}

// FetchPracticeSession fetches content records for words at the given
// tier. Records failing schema validation are skipped with a warning.
// Words the backend did not return come back in Missing; callers
// typically hand them to CleanupWords.
func (c *Client) FetchPracticeSession(ctx context.Context, words []string, tier string) (*PracticeSession, error) {
	req := struct {
		WordList []string `json:"word_list"`
		Tier     string   `json:"tier"`
	}{WordList: words, Tier: tier}

	var raw []json.RawMessage
	if err := c.do(ctx, http.MethodPost, "/api/student/practice-session", req, &raw); err != nil {
		return nil, fmt.Errorf("fetch practice session: %w", err)
	}

	items := make([]content.WordItem, 0, len(raw))
	for _, rec := range raw {
		if err := content.ValidateRecord(rec); err != nil {
			if c.log != nil {
				c.log.WithError(err).Warn("skipping malformed content record")
			}
			continue
		}
		var item content.WordItem
		if err := json.Unmarshal(rec, &item); err != nil {
			if c.log != nil {
				c.log.WithError(err).Warn("skipping undecodable content record")
			}
			continue
		}
		items = append(items, item)
	}

	returned := lo.SliceToMap(items, func(it content.WordItem) (string, struct{}) {
		return it.Word, struct{}{}
	})
	missing := lo.Filter(words, func(w string, _ int) bool {
		_, ok := returned[w]
		return !ok
	})

	return &PracticeSession{Items: items, Missing: missing}, nil
}

// CleanupWords tells the backend to drop stale words from the
// student's queue, one call per word. Failures are logged and do not
// interrupt the session.
func (c *Client) CleanupWords(ctx context.Context, words []string) {
	for _, w := range words {
		body := struct {
			Word string `json:"word"`
		}{Word: w}
		if err := c.do(ctx, http.MethodDelete, "/api/student/word/cleanup", body, nil); err != nil {
			if c.log != nil {
				c.log.WithError(err).WithField("word", w).Warn("word cleanup failed")
			}
		}
	}
}

// ReportMastered reports words as mastered. The backend treats the
// call as idempotent; reporting an already-mastered word is harmless.
func (c *Client) ReportMastered(ctx context.Context, words []string) error {
	if len(words) == 0 {
		return nil
	}
	body := struct {
		Words []string `json:"words"`
	}{Words: words}
	if err := c.do(ctx, http.MethodPost, "/api/student/master-word", body, nil); err != nil {
		return fmt.Errorf("report mastered words: %w", err)
	}
	return nil
}

// ReportReview reports a review outcome, result "pass" or "fail".
func (c *Client) ReportReview(ctx context.Context, word, result string) error {
	body := struct {
		Word   string `json:"word"`
		Result string `json:"result"`
	}{Word: word, Result: result}
	if err := c.do(ctx, http.MethodPost, "/api/student/update-word-review", body, nil); err != nil {
		return fmt.Errorf("report review result for %s: %w", word, err)
	}
	return nil
}

// ReorderingError is a wrong sentence-reordering answer with its
// explanation, logged for the teacher dashboard.
type ReorderingError struct {
	Word          string `json:"word"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	Explanation   string `json:"explanation"`
}

// LogReorderingError records a reordering mistake. Best effort.
func (c *Client) LogReorderingError(ctx context.Context, e ReorderingError) error {
	if err := c.do(ctx, http.MethodPost, "/api/student/log-reordering-error", e, nil); err != nil {
		return fmt.Errorf("log reordering error: %w", err)
	}
	return nil
}

// QueueEntry is one to-be-mastered entry; the backend sends either a
// bare string or an object with a "word" field.
type QueueEntry struct {
	Word string
}

func (q *QueueEntry) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		q.Word = s
		return nil
	}
	var obj struct {
		Word string `json:"word"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	q.Word = obj.Word
	return nil
}

// DashboardSummary is the student's study state at session start.
type DashboardSummary struct {
	Tier            string       `json:"tier"`
	ToBeMastered    []QueueEntry `json:"to_be_mastered"`
	TeacherAssigned []string     `json:"teacher_assigned"`
}

// LearnQueue returns the to-be-mastered words with empty entries
// dropped and teacher-assigned words moved to the front, preserving
// relative order within each group.
func (s *DashboardSummary) LearnQueue() []string {
	words := lo.FilterMap(s.ToBeMastered, func(q QueueEntry, _ int) (string, bool) {
		return q.Word, q.Word != ""
	})
	assigned := lo.SliceToMap(s.TeacherAssigned, func(w string) (string, struct{}) {
		return w, struct{}{}
	})
	first := lo.Filter(words, func(w string, _ int) bool {
		_, ok := assigned[w]
		return ok
	})
	rest := lo.Filter(words, func(w string, _ int) bool {
		_, ok := assigned[w]
		return !ok
	})
	return append(first, rest...)
}

// Summary fetches the dashboard summary.
func (c *Client) Summary(ctx context.Context) (*DashboardSummary, error) {
	var out DashboardSummary
	if err := c.do(ctx, http.MethodGet, "/api/student/dashboard-summary", nil, &out); err != nil {
		return nil, fmt.Errorf("fetch dashboard summary: %w", err)
	}
	if out.Tier == "" {
		out.Tier = content.DefaultTier
	}
	return &out, nil
}

// ReviewWords fetches the backend's due-for-review list, cleaned of
// homonym disambiguators.
func (c *Client) ReviewWords(ctx context.Context) ([]string, error) {
	var words []string
	if err := c.do(ctx, http.MethodGet, "/api/student/review-words", nil, &words); err != nil {
		return nil, fmt.Errorf("fetch review words: %w", err)
	}
	return lo.Map(words, func(w string, _ int) string { return content.CleanWord(w) }), nil
}
