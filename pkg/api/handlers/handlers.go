package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/tmorrisey/pairs/pkg/game"
	"github.com/tmorrisey/pairs/pkg/log"
	"github.com/tmorrisey/pairs/pkg/messages"
	"github.com/tmorrisey/pairs/pkg/repositories"
	"github.com/tmorrisey/pairs/pkg/sessions"
)

type createSessionRequest struct {
	BoardSize int `json:"boardSize,omitempty"`
}

type createSessionResponse struct {
	SessionID string                `json:"sessionId"`
	State     *messages.ServerState `json:"state"`
}

func HandleCreateSession(manager *sessions.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createSessionRequest
		if r.Body != nil && r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "Invalid request body", http.StatusBadRequest)
				return
			}
		}

		session, err := manager.Create(r.Context(), req.BoardSize)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		gameState, err := session.StateManager.Get()
		if err != nil {
			log.Error("Failed to read state for new session %s: %v", session.ID, err)
			http.Error(w, "Failed to read session state", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(createSessionResponse{
			SessionID: session.ID,
			State:     game.ServerStateFromState(gameState),
		}); err != nil {
			log.Error("Failed to encode session response: %v", err)
		}
	}
}

func HandleGetSession(manager *sessions.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := manager.Get(mux.Vars(r)["sessionID"])
		if !ok {
			http.Error(w, "Session not found", http.StatusNotFound)
			return
		}

		gameState, err := session.StateManager.Get()
		if err != nil {
			log.Error("Failed to read state for session %s: %v", session.ID, err)
			http.Error(w, "Failed to read session state", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(game.ServerStateFromState(gameState)); err != nil {
			log.Error("Failed to encode session state: %v", err)
		}
	}
}

// HandlePostEvent injects a client event into the session's queue. The
// response only acknowledges enqueueing; the resulting state arrives on the
// session's stream or a later GET.
func HandlePostEvent(manager *sessions.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := manager.Get(mux.Vars(r)["sessionID"])
		if !ok {
			http.Error(w, "Session not found", http.StatusNotFound)
			return
		}

		var msg messages.Message
		if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		event, err := messages.EventFromMessage(&msg)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if err := session.Enqueue(event); err != nil {
			log.Warn("Failed to enqueue %T for session %s: %v", event, session.ID, err)
			http.Error(w, "Session is busy", http.StatusServiceUnavailable)
			return
		}

		w.WriteHeader(http.StatusAccepted)
	}
}

func HandleDeleteSession(manager *sessions.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !manager.Remove(mux.Vars(r)["sessionID"]) {
			http.Error(w, "Session not found", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func HandleLeaderboard(repository repositories.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := repository.Leaderboard(r.Context())
		if err != nil {
			log.Error("Failed to load leaderboard: %v", err)
			http.Error(w, "Failed to load leaderboard", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(entries); err != nil {
			log.Error("Failed to encode leaderboard: %v", err)
		}
	}
}

func HandleBestResults(repository repositories.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		boardSize, err := strconv.Atoi(mux.Vars(r)["boardSize"])
		if err != nil {
			http.Error(w, "Invalid board size", http.StatusBadRequest)
			return
		}

		limit := 10
		if raw := r.URL.Query().Get("limit"); raw != "" {
			limit, err = strconv.Atoi(raw)
			if err != nil || limit < 1 || limit > 100 {
				http.Error(w, "Invalid limit", http.StatusBadRequest)
				return
			}
		}

		results, err := repository.BestResults(r.Context(), boardSize, limit)
		if err != nil {
			log.Error("Failed to load best results: %v", err)
			http.Error(w, "Failed to load best results", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(results); err != nil {
			log.Error("Failed to encode best results: %v", err)
		}
	}
}
