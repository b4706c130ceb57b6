// Package screens holds the dependency bundle shared by every screen
// and the dispatcher that turns engine effects into background commands.
package screens

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"github.com/sirupsen/logrus"

	"github.com/minqi/vocadrill/internal/api"
	"github.com/minqi/vocadrill/internal/audio"
	"github.com/minqi/vocadrill/internal/config"
	"github.com/minqi/vocadrill/internal/content"
	"github.com/minqi/vocadrill/internal/explain"
	"github.com/minqi/vocadrill/internal/practice"
	"github.com/minqi/vocadrill/internal/store"
)

// Deps carries the services screens need. Built once at startup and
// passed down through screen constructors.
type Deps struct {
	Config  *config.Config
	Log     *logrus.Logger
	Store   *store.Store
	API     *api.Client
	Audio   *audio.Controller
	Explain *explain.Service
}

// RefreshHomeMsg asks the home screen to re-read local state. Sent
// after a finished session pops back to the menu.
type RefreshHomeMsg struct{}

// DisplayWord formats a word for the learner. With pure display on,
// the disambiguator suffix some entries carry ("bow2") is hidden;
// matching and reporting always use the raw entry.
func (d Deps) DisplayWord(word string) string {
	if d.Config != nil && d.Config.Practice.PureDisplay {
		return content.CleanWord(word)
	}
	return word
}

// SaveLastSession records the finished session's parameters so the
// menu can offer "practice again".
func (d Deps) SaveLastSession(mode practice.Mode, tier string) tea.Cmd {
	return func() tea.Msg {
		if err := d.Store.SaveLastSession(practice.LastSession{Mode: mode, Tier: tier}); err != nil {
			d.Log.WithError(err).Warn("last-session write failed")
		}
		return nil
	}
}

// DispatchEffects converts engine effects into commands that perform
// the requested I/O in the background. Failures are logged and never
// surface to the learner; mastery reports are idempotent on the
// backend, so a dropped report heals on the next session.
func (d Deps) DispatchEffects(effects []practice.Effect) tea.Cmd {
	if len(effects) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(effects))
	for _, eff := range effects {
		cmds = append(cmds, d.effectCmd(eff))
	}
	return tea.Batch(cmds...)
}

func (d Deps) effectCmd(eff practice.Effect) tea.Cmd {
	return func() tea.Msg {
		switch e := eff.(type) {
		case practice.ReportMastered:
			if err := d.API.ReportMastered(context.Background(), e.Words); err != nil {
				d.Log.WithError(err).WithField("words", e.Words).Warn("mastered report failed")
			}
		case practice.ReportReview:
			if err := d.API.ReportReview(context.Background(), e.Word, string(e.Result)); err != nil {
				d.Log.WithError(err).WithField("word", e.Word).Warn("review report failed")
			}
		case practice.PersistSnapshot:
			if err := d.Store.SaveResume(e.Snap); err != nil {
				d.Log.WithError(err).Warn("session snapshot write failed")
			}
		case practice.ClearSnapshot:
			if err := d.Store.ClearResume(); err != nil {
				d.Log.WithError(err).Warn("session snapshot clear failed")
			}
		}
		return nil
	}
}
