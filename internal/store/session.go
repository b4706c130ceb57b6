package store

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/minqi/vocadrill/internal/practice"
)

// KV keys for session state. A resume snapshot and a last-session
// record never coexist: writing one clears the other, so at most one
// continuation offer is ever shown.
const (
	keyResume      = "practice.resume"
	keyLastSession = "practice.last_session"
	keyAutoAudio   = "pref.auto_audio"
)

// SaveResume stores the in-progress session snapshot and clears any
// last-session record.
func (s *Store) SaveResume(snap practice.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal resume snapshot: %w", err)
	}
	if err := s.set(keyResume, string(data)); err != nil {
		return err
	}
	return s.delete(keyLastSession)
}

// LoadResume returns the stored snapshot, or (nil, nil) when none
// exists. A snapshot that no longer decodes is discarded.
func (s *Store) LoadResume() (*practice.Snapshot, error) {
	data, err := s.get(keyResume)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var snap practice.Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		_ = s.delete(keyResume)
		return nil, nil
	}
	return &snap, nil
}

// ClearResume removes the stored snapshot.
func (s *Store) ClearResume() error {
	return s.delete(keyResume)
}

// SaveLastSession stores the parameters of a finished session so the
// next launch can offer "practice again", and clears any resume
// snapshot.
func (s *Store) SaveLastSession(last practice.LastSession) error {
	data, err := json.Marshal(last)
	if err != nil {
		return fmt.Errorf("marshal last session: %w", err)
	}
	if err := s.set(keyLastSession, string(data)); err != nil {
		return err
	}
	return s.delete(keyResume)
}

// LoadLastSession returns the last finished session's parameters, or
// (nil, nil) when none exist.
func (s *Store) LoadLastSession() (*practice.LastSession, error) {
	data, err := s.get(keyLastSession)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var last practice.LastSession
	if err := json.Unmarshal([]byte(data), &last); err != nil {
		_ = s.delete(keyLastSession)
		return nil, nil
	}
	return &last, nil
}

// ClearLastSession removes the last-session record.
func (s *Store) ClearLastSession() error {
	return s.delete(keyLastSession)
}

// AutoAudio returns the persisted auto-narration preference. Narration
// is on until the learner turns it off.
func (s *Store) AutoAudio() (bool, error) {
	v, err := s.get(keyAutoAudio)
	if errors.Is(err, ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return v == "1", nil
}

// SetAutoAudio persists the auto-narration preference.
func (s *Store) SetAutoAudio(on bool) error {
	v := "0"
	if on {
		v = "1"
	}
	return s.set(keyAutoAudio, v)
}
