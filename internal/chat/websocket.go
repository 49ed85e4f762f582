package chat

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/mezotravel/backend/internal/rag"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsRequest is the incoming WebSocket message format.
type wsRequest struct {
	UserID   string `json:"user_id"`
	Message  string `json:"message"`
	Language string `json:"language"`
}

// wsResponse is the outgoing WebSocket message format.
type wsResponse struct {
	Type     string       `json:"type"` // "response" or "error"
	Response string       `json:"response,omitempty"`
	Sources  []rag.Source `json:"sources,omitempty"`
	Error    string       `json:"error,omitempty"`
}

// handleWebSocket serves an interactive chat session over one
// connection. Each incoming message goes through the same answer
// pipeline as the HTTP endpoint and is saved to history.
func handleWebSocket(store *Store, svc *rag.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("[chat] websocket upgrade: %v", err)
			return
		}
		defer conn.Close()

		// The session outlives the request timeout middleware, so it
		// must not inherit the request's deadline or cancelation.
		ctx := context.WithoutCancel(r.Context())

		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("[chat] websocket read: %v", err)
				}
				return
			}

			var req wsRequest
			if err := json.Unmarshal(msg, &req); err != nil {
				sendWS(conn, wsResponse{Type: "error", Error: "invalid message format"})
				continue
			}
			if req.Message == "" {
				sendWS(conn, wsResponse{Type: "error", Error: "message is required"})
				continue
			}

			answer := svc.AnswerQuery(ctx, req.Message, req.Language)

			if req.UserID != "" {
				if err := store.Save(ctx, req.UserID, req.Message, answer.Text); err != nil {
					log.Printf("[chat] saving websocket conversation: %v", err)
				}
			}

			sendWS(conn, wsResponse{
				Type:     "response",
				Response: answer.Text,
				Sources:  answer.Sources,
			})
		}
	}
}

func sendWS(conn *websocket.Conn, resp wsResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		log.Printf("[chat] websocket write: %v", err)
	}
}
