// Package audio plays synthesized narration. A Controller serializes
// playback: starting a new utterance or calling Stop cancels whatever
// is in flight, so at most one utterance is ever live.
package audio

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Synthesizer turns text into playable audio bytes.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Player plays raw audio bytes, blocking until playback finishes or
// ctx is cancelled.
type Player interface {
	Play(ctx context.Context, data []byte) error
}

// Wait bounds for PlayAndWait. Playback that finishes sooner releases
// the caller early; playback that drags on is abandoned at the cap.
const (
	minWait = 1500 * time.Millisecond
	maxWait = 20 * time.Second
)

// Nominal waits per utterance kind.
const (
	WordWait      = 2200 * time.Millisecond
	SentenceWait  = 3200 * time.Millisecond
	PreTestWait   = 2400 * time.Millisecond
	DictationWait = 2 * time.Second
)

func clampWait(d time.Duration) time.Duration {
	if d < minWait {
		return minWait
	}
	if d > maxWait {
		return maxWait
	}
	return d
}

// Controller owns the single live utterance. All methods are safe for
// concurrent use.
type Controller struct {
	synth  Synthesizer
	player Player
	log    *logrus.Logger

	mu     sync.Mutex
	epoch  uint64
	cancel context.CancelFunc
}

// NewController returns a Controller using synth and player. A nil
// player disables playback entirely; Play and PlayAndWait become
// no-ops that still honor cancellation semantics.
func NewController(synth Synthesizer, player Player, log *logrus.Logger) *Controller {
	return &Controller{synth: synth, player: player, log: log}
}

// Enabled reports whether the controller can actually produce sound.
func (c *Controller) Enabled() bool {
	return c != nil && c.synth != nil && c.player != nil
}

// Stop cancels the in-flight utterance, if any, and bumps the epoch so
// any late completion from it is ignored.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bumpLocked()
}

func (c *Controller) bumpLocked() uint64 {
	c.epoch++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	return c.epoch
}

// begin claims the controller for a new utterance, cancelling the
// previous one. It returns the playback context and the epoch the
// utterance belongs to.
func (c *Controller) begin() (context.Context, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ep := c.bumpLocked()
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	return ctx, ep
}

// current reports whether ep is still the live utterance.
func (c *Controller) current(ep uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.epoch == ep
}

func (c *Controller) run(ctx context.Context, ep uint64, text string, done chan<- struct{}) {
	defer func() {
		if done != nil {
			close(done)
		}
	}()
	data, err := c.synth.Synthesize(ctx, text)
	if err != nil {
		if ctx.Err() == nil && c.log != nil {
			c.log.WithError(err).WithField("text", text).Warn("narration synthesis failed")
		}
		return
	}
	if !c.current(ep) {
		return
	}
	if err := c.player.Play(ctx, data); err != nil && ctx.Err() == nil && c.log != nil {
		c.log.WithError(err).Warn("narration playback failed")
	}
}

// Play starts narrating text and returns immediately. Any utterance
// already playing is cancelled first.
func (c *Controller) Play(text string) {
	if !c.Enabled() || text == "" {
		return
	}
	ctx, ep := c.begin()
	go c.run(ctx, ep, text, nil)
}

// PlayAndWait starts narrating text and blocks until playback finishes,
// the clamped wait elapses, or ctx is cancelled — whichever comes
// first. Hitting the wait cap does not stop the audio; it only releases
// the caller.
func (c *Controller) PlayAndWait(ctx context.Context, text string, wait time.Duration) {
	if !c.Enabled() || text == "" {
		return
	}
	pctx, ep := c.begin()
	done := make(chan struct{})
	go c.run(pctx, ep, text, done)

	timer := time.NewTimer(clampWait(wait))
	defer timer.Stop()
	select {
	case <-done:
	case <-timer.C:
	case <-ctx.Done():
		c.Stop()
	}
}
