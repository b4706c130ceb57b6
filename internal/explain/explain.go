// Package explain produces short explanations for wrong
// sentence-reordering answers and forwards each mistake to the backend
// once.
package explain

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/minqi/vocadrill/internal/api"
)

// Fallback is shown when the explanation backend cannot be reached.
const Fallback = "Explanation service not available."

// Explainer generates an explanation for why the expected ordering is
// right and the student's is not.
type Explainer interface {
	Explain(ctx context.Context, userAnswer, correctAnswer string) (string, error)
}

// Reporter receives reordering mistakes for the teacher dashboard.
type Reporter interface {
	LogReorderingError(ctx context.Context, e api.ReorderingError) error
}

// Service wraps an Explainer with a session-scoped cache and
// deduplicated mistake logging. Both the cache and the logged set live
// on the Service, so a new session starts clean.
type Service struct {
	explainer Explainer
	reporter  Reporter
	log       *logrus.Logger

	mu     sync.Mutex
	cache  map[string]string
	logged map[string]bool
}

// NewService builds a Service. explainer may be nil, in which case
// every request resolves to Fallback; reporter may be nil to disable
// mistake logging.
func NewService(explainer Explainer, reporter Reporter, log *logrus.Logger) *Service {
	return &Service{
		explainer: explainer,
		reporter:  reporter,
		log:       log,
		cache:     make(map[string]string),
		logged:    make(map[string]bool),
	}
}

func key(word, userAnswer, correctAnswer string) string {
	return fmt.Sprintf("%s|%s|%s", word, userAnswer, correctAnswer)
}

// retryDelay between the first failed attempt and the single retry.
const retryDelay = 300 * time.Millisecond

// Explain returns the explanation for a wrong reordering answer,
// fetching it on first request and caching it for the rest of the
// session. A failed fetch is retried once after a short delay before
// falling back. Each distinct mistake is also logged to the backend
// exactly once, with whatever explanation was resolved.
func (s *Service) Explain(ctx context.Context, word, userAnswer, correctAnswer string) string {
	k := key(word, userAnswer, correctAnswer)

	s.mu.Lock()
	expl, cached := s.cache[k]
	s.mu.Unlock()

	if !cached {
		expl = s.fetch(ctx, userAnswer, correctAnswer)
		s.mu.Lock()
		s.cache[k] = expl
		s.mu.Unlock()
	}

	s.logOnce(ctx, k, api.ReorderingError{
		Word:          word,
		UserAnswer:    userAnswer,
		CorrectAnswer: correctAnswer,
		Explanation:   expl,
	})
	return expl
}

func (s *Service) fetch(ctx context.Context, userAnswer, correctAnswer string) string {
	if s.explainer == nil {
		return Fallback
	}
	expl, err := s.explainer.Explain(ctx, userAnswer, correctAnswer)
	if err == nil {
		return expl
	}
	select {
	case <-time.After(retryDelay):
	case <-ctx.Done():
		return Fallback
	}
	expl, err = s.explainer.Explain(ctx, userAnswer, correctAnswer)
	if err != nil {
		if s.log != nil {
			s.log.WithError(err).Warn("reordering explanation failed")
		}
		return Fallback
	}
	return expl
}

func (s *Service) logOnce(ctx context.Context, k string, e api.ReorderingError) {
	s.mu.Lock()
	if s.logged[k] || s.reporter == nil {
		s.mu.Unlock()
		return
	}
	s.logged[k] = true
	s.mu.Unlock()

	if err := s.reporter.LogReorderingError(ctx, e); err != nil && s.log != nil {
		s.log.WithError(err).Warn("reordering error report failed")
	}
}
