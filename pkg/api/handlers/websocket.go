package handlers

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/tmorrisey/pairs/pkg/log"
	"github.com/tmorrisey/pairs/pkg/messages"
	"github.com/tmorrisey/pairs/pkg/sessions"
	"nhooyr.io/websocket"
)

// HandleSessionSocket upgrades to a WebSocket carrying the session's event
// stream: client messages are injected as game events, server messages
// (state updates, win announcements) are pushed as compressed frames. One
// socket per session; the session's update channel has a single consumer.
func HandleSessionSocket(manager *sessions.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := manager.Get(mux.Vars(r)["sessionID"])
		if !ok {
			http.Error(w, "Session not found", http.StatusNotFound)
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true,
		})
		if err != nil {
			log.Error("Failed to accept WebSocket for session %s: %v", session.ID, err)
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "")

		log.Debug("WebSocket connected for session %s", session.ID)

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		go writeUpdates(ctx, conn, session)
		readEvents(ctx, conn, session)
	}
}

func readEvents(ctx context.Context, conn *websocket.Conn, session *sessions.Session) {
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			log.Trace("WebSocket closed for session %s: %v", session.ID, err)
			return
		}

		msg, err := messages.DeserializeMessage(data)
		if err != nil {
			log.Warn("Failed to deserialize WebSocket message for session %s: %v", session.ID, err)
			continue
		}

		event, err := messages.EventFromMessage(msg)
		if err != nil {
			log.Warn("Rejected WebSocket message for session %s: %v", session.ID, err)
			continue
		}

		if err := session.Enqueue(event); err != nil {
			log.Warn("Failed to enqueue %T for session %s: %v", event, session.ID, err)
		}
	}
}

func writeUpdates(ctx context.Context, conn *websocket.Conn, session *sessions.Session) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-session.Updates:
			if !ok {
				return
			}
			data, err := messages.SerializeMessage(msg)
			if err != nil {
				log.Error("Failed to serialize %s message for session %s: %v", msg.Type, session.ID, err)
				continue
			}
			if err := conn.Write(ctx, websocket.MessageBinary, data); err != nil {
				log.Trace("Failed to write to WebSocket for session %s: %v", session.ID, err)
				return
			}
		}
	}
}
