package httpapi

import (
	"errors"
	"net/http"

	"github.com/cuttlegame/cuttle/internal/store"
	"github.com/cuttlegame/cuttle/pkg/cuttle"
)

// sessionView is what a session looks like over the wire (spec.md §6.3).
type sessionView struct {
	ID           string           `json:"id"`
	StateVersion int64            `json:"state_version"`
	Snapshot     *cuttle.Snapshot `json:"snapshot"`
	LegalActions []cuttle.Action  `json:"legal_actions"`
}

func (s *Server) view(sess *store.Session) sessionView {
	return sessionView{
		ID:           sess.ID,
		StateVersion: sess.StateVersion,
		Snapshot:     sess.State.Snapshot(),
		LegalActions: sess.State.LegalActions(sess.State.CurrentActionPlayer()),
	}
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	cfg := s.newConfig()
	sess, err := s.store.Create(cfg, nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	if err := s.store.SetOpponent(sess.ID, s.newOpponent(cfg)); err != nil {
		writeError(w, http.StatusInternalServerError, "internal", err.Error())
		return
	}

	if sess.State.CurrentActionPlayer() == aiSeat {
		if _, err := s.store.RunOpponentTurns(sess.ID, aiSeat); err != nil {
			writeError(w, http.StatusInternalServerError, "internal", err.Error())
			return
		}
		sess, _ = s.store.Get(sess.ID)
	}

	writeJSON(w, http.StatusCreated, s.view(sess))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.view(sess))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.PathValue("id")); err != nil {
		writeError(w, http.StatusNotFound, "not_found", err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleLegalActions(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"state_version": sess.StateVersion,
		"actions":       sess.State.LegalActions(sess.State.CurrentActionPlayer()),
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Get(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"history": sess.State.History().Entries(),
	})
}

type applyActionRequest struct {
	StateVersion int64         `json:"state_version"`
	Action       cuttle.Action `json:"action"`
}

func (s *Server) handleApplyAction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req applyActionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	sess, turnFinished, winner, err := s.store.Apply(id, req.StateVersion, req.Action)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			writeError(w, http.StatusNotFound, "not_found", err.Error())
		case errors.Is(err, store.ErrVersionConflict):
			writeError(w, http.StatusConflict, "state_version_conflict", err.Error())
		default:
			writeRuleError(w, err)
		}
		return
	}

	_ = turnFinished
	_ = winner

	if sess.State.Status() == cuttle.StatusInProgress && sess.State.CurrentActionPlayer() == aiSeat {
		sess, err = s.store.RunOpponentTurns(id, aiSeat)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal", err.Error())
			return
		}
	}

	writeJSON(w, http.StatusOK, s.view(sess))
}

// writeRuleError reports a rejected action as 400 (spec.md §7), using a
// cuttle.RuleError's Kind as the error code and "bad_request" for anything
// else Apply might return.
func writeRuleError(w http.ResponseWriter, err error) {
	var re *cuttle.RuleError
	if !errors.As(err, &re) {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	writeError(w, http.StatusBadRequest, re.Kind.String(), re.Msg)
}
