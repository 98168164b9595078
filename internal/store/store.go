// Package store holds the session envelope around a cuttle match: the
// registry of live matches, optimistic-concurrency versioning, and
// persistence. It mirrors pkg/server.Server's mutex-guarded tables map, one
// layer up from the single-threaded cuttle.State it wraps.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cuttlegame/cuttle/internal/store/sqlite"
	"github.com/cuttlegame/cuttle/pkg/cuttle"
	"github.com/decred/slog"
	"github.com/google/uuid"
)

func marshalSnapshot(snap *cuttle.Snapshot) (json.RawMessage, error) {
	return json.Marshal(snap)
}

func unmarshalSnapshot(data json.RawMessage, snap *cuttle.Snapshot) error {
	return json.Unmarshal(data, snap)
}

// ErrNotFound is returned when a session id has no matching session.
var ErrNotFound = errors.New("store: session not found")

// ErrVersionConflict is returned when Apply's expectedVersion no longer
// matches the session's current state_version (spec.md §5's optimistic
// concurrency rule).
var ErrVersionConflict = errors.New("store: state_version conflict")

// Session is one match plus the bookkeeping the store needs around it.
type Session struct {
	ID           string
	State        *cuttle.State
	StateVersion int64
	Opponent     cuttle.OpponentPort
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Store is the in-memory registry of live sessions, backed by sqlite for
// durability across restarts.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	db  *sqlite.DB
	log slog.Logger
}

// New builds a Store over db, logging under log.
func New(db *sqlite.DB, log slog.Logger) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		db:       db,
		log:      log,
	}
}

// LoadAll repopulates the in-memory registry from persisted rows, for a
// warm restart (grounded on the teacher's loadAllTables startup routine).
func (st *Store) LoadAll(cfg cuttle.Config) error {
	ids, err := st.db.LoadAllSessionIDs()
	if err != nil {
		return fmt.Errorf("store: load session ids: %w", err)
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	for _, id := range ids {
		row, err := st.db.LoadSession(id)
		if err != nil {
			st.log.Warnf("store: skipping session %s: %v", id, err)
			continue
		}
		var snap cuttle.Snapshot
		if err := unmarshalSnapshot(row.Snapshot, &snap); err != nil {
			st.log.Warnf("store: corrupt snapshot for session %s: %v", id, err)
			continue
		}
		st.sessions[id] = &Session{
			ID:           id,
			State:        cuttle.Restore(cfg, &snap),
			StateVersion: row.StateVersion,
			CreatedAt:    row.CreatedAt,
			UpdatedAt:    row.UpdatedAt,
		}
	}
	return nil
}

// Create starts a new match and persists its initial snapshot.
func (st *Store) Create(cfg cuttle.Config, opponent cuttle.OpponentPort) (*Session, error) {
	id := uuid.NewString()
	now := time.Now()
	sess := &Session{
		ID:           id,
		State:        cuttle.NewGame(cfg),
		StateVersion: 0,
		Opponent:     opponent,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	st.mu.Lock()
	st.sessions[id] = sess
	st.mu.Unlock()

	if err := st.persist(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// SetOpponent attaches an OpponentPort to an existing session.
func (st *Store) SetOpponent(id string, o cuttle.OpponentPort) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	sess, ok := st.sessions[id]
	if !ok {
		return ErrNotFound
	}
	sess.Opponent = o
	return nil
}

// Get returns the session with id, or ErrNotFound.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	sess, ok := st.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return sess, nil
}

// Delete removes a session from memory and from disk.
func (st *Store) Delete(id string) error {
	st.mu.Lock()
	_, ok := st.sessions[id]
	delete(st.sessions, id)
	st.mu.Unlock()

	if !ok {
		return ErrNotFound
	}
	return st.db.DeleteSession(id)
}

// Apply applies action to the session's engine under the store's lock,
// enforcing optimistic concurrency against expectedVersion, then persists
// the result (spec.md §5/§6.2).
func (st *Store) Apply(id string, expectedVersion int64, action cuttle.Action) (*Session, bool, int, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	sess, ok := st.sessions[id]
	if !ok {
		return nil, false, -1, ErrNotFound
	}
	if sess.StateVersion != expectedVersion {
		return nil, false, -1, ErrVersionConflict
	}

	turnFinished, winner, err := sess.State.Apply(action)
	if err != nil {
		return sess, turnFinished, winner, err
	}

	sess.StateVersion++
	sess.UpdatedAt = time.Now()

	if err := st.persistLocked(sess); err != nil {
		st.log.Warnf("store: failed to persist session %s: %v", id, err)
	}
	return sess, turnFinished, winner, nil
}

// RunOpponentTurns repeatedly asks the session's OpponentPort for a move
// while it is the opponent's turn to act, stopping when control returns to
// the human seat or the match ends (spec.md §4.I; grounded on
// original_source/server/app.py's _apply_ai_turns).
func (st *Store) RunOpponentTurns(id string, opponentSeat int) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	sess, ok := st.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if sess.Opponent == nil {
		return sess, nil
	}

	for sess.State.Status() == cuttle.StatusInProgress && sess.State.CurrentActionPlayer() == opponentSeat {
		legal := sess.State.LegalActions(opponentSeat)
		if len(legal) == 0 {
			break
		}
		action := sess.Opponent.ChooseAction(sess.State, opponentSeat, legal)
		if _, _, err := sess.State.Apply(action); err != nil {
			st.log.Warnf("store: opponent chose an illegal action for session %s: %v", id, err)
			break
		}
	}

	sess.StateVersion++
	sess.UpdatedAt = time.Now()
	if err := st.persistLocked(sess); err != nil {
		st.log.Warnf("store: failed to persist session %s after opponent turns: %v", id, err)
	}
	return sess, nil
}

func (st *Store) persist(sess *Session) error {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.persistLocked(sess)
}

func (st *Store) persistLocked(sess *Session) error {
	snap := sess.State.Snapshot()
	data, err := marshalSnapshot(snap)
	if err != nil {
		return err
	}
	return st.db.SaveSession(&sqlite.Row{
		ID:           sess.ID,
		StateVersion: sess.StateVersion,
		Status:       snap.Status,
		Turn:         snap.Turn,
		Phase:        snap.Phase,
		Snapshot:     data,
		CreatedAt:    sess.CreatedAt,
		UpdatedAt:    sess.UpdatedAt,
	})
}
