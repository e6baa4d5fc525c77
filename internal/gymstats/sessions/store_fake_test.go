package sessions

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/2beens/liftlog/internal/gymstats/exercises"
	"github.com/2beens/liftlog/internal/gymstats/experience"
	"github.com/2beens/liftlog/internal/gymstats/history"
)

type memState struct {
	owners      map[int]Owner
	bodyweights map[int]float64
	sessions    map[int]Session
	sets        []history.Set
	nextID      int
}

func (s memState) clone() memState {
	return memState{
		owners:      maps.Clone(s.owners),
		bodyweights: maps.Clone(s.bodyweights),
		sessions:    maps.Clone(s.sessions),
		sets:        slices.Clone(s.sets),
		nextID:      s.nextID,
	}
}

// memStore keeps committed state only; a failed unit of work leaves no trace.
type memStore struct {
	state memState
	// failOnSet makes InsertSet fail once that many sets were inserted in a tx
	failOnSet int
}

func newMemStore() *memStore {
	return &memStore{
		state: memState{
			owners:      map[int]Owner{},
			bodyweights: map[int]float64{},
			sessions:    map[int]Session{},
			nextID:      1,
		},
		failOnSet: -1,
	}
}

func (m *memStore) InTx(_ context.Context, fn func(tx TxStore) error) error {
	tx := &memTx{state: m.state.clone(), failOnSet: m.failOnSet}
	if err := fn(tx); err != nil {
		return err
	}
	m.state = tx.state
	return nil
}

func (m *memStore) Get(_ context.Context, id int) (*Session, error) {
	s, ok := m.state.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return &s, nil
}

func (m *memStore) setsOf(sessionID int) []history.Set {
	var sets []history.Set
	for _, s := range m.state.sets {
		if s.SessionID == sessionID {
			sets = append(sets, s)
		}
	}
	return sets
}

type memTx struct {
	state     memState
	inserted  int
	failOnSet int
}

func (t *memTx) LockUser(_ context.Context, userID int) (*Owner, error) {
	o, ok := t.state.owners[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &o, nil
}

func (t *memTx) LatestBodyweight(_ context.Context, userID int) (float64, bool, error) {
	kg, ok := t.state.bodyweights[userID]
	return kg, ok, nil
}

func (t *memTx) CountSessions(_ context.Context, userID int, from, to time.Time) (int, error) {
	count := 0
	for _, s := range t.state.sessions {
		if s.UserID == userID && !s.Date.Before(from) && s.Date.Before(to) {
			count++
		}
	}
	return count, nil
}

func (t *memTx) InsertSession(_ context.Context, s *Session) error {
	s.ID = t.state.nextID
	t.state.nextID++
	t.state.sessions[s.ID] = *s
	return nil
}

func (t *memTx) InsertSet(_ context.Context, set *history.Set) error {
	if t.failOnSet >= 0 && t.inserted == t.failOnSet {
		return errors.New("disk on fire")
	}
	for _, existing := range t.state.sets {
		if existing.SessionID == set.SessionID && existing.ExerciseID == set.ExerciseID && existing.Order == set.Order {
			return fmt.Errorf("duplicate set (%d, %d, %d)", set.SessionID, set.ExerciseID, set.Order)
		}
	}
	t.inserted++
	set.ID = t.state.nextID
	t.state.nextID++
	t.state.sets = append(t.state.sets, *set)
	return nil
}

func (t *memTx) FinishSession(_ context.Context, s *Session) error {
	t.state.sessions[s.ID] = *s
	return nil
}

func (t *memTx) UpdateProgress(_ context.Context, userID int, p experience.Progress) error {
	o := t.state.owners[userID]
	o.Progress = p
	t.state.owners[userID] = o
	return nil
}

func (t *memTx) GetSessionForUpdate(_ context.Context, id int) (*Session, error) {
	s, ok := t.state.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return &s, nil
}

func (t *memTx) DeleteSession(_ context.Context, id int) error {
	if _, ok := t.state.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(t.state.sessions, id)
	t.state.sets = slices.DeleteFunc(t.state.sets, func(s history.Set) bool {
		return s.SessionID == id
	})
	return nil
}

type catalogMock struct {
	exercises map[int]*exercises.Exercise
}

func (c *catalogMock) Get(_ context.Context, id int) (*exercises.Exercise, error) {
	ex, ok := c.exercises[id]
	if !ok {
		return nil, exercises.ErrExerciseNotFound
	}
	return ex, nil
}
