package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/BTreeMap/SehatSahara/internal/models"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

// wsMessage is one inbound WebSocket frame.
type wsMessage struct {
	Message string `json:"message"`
}

// wsHandler runs a chat session for the user_id query parameter. Each text
// frame {"message": ...} is answered with one ResponseContract frame; invalid
// frames get an error envelope and the session continues.
func (s *Server) wsHandler(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.URL.Query().Get("user_id"))
	if userID == "" {
		writeError(w, "wsHandler", models.ErrEmptyUserID)
		return
	}
	if len(userID) > models.MaxUserIDLength {
		writeError(w, "wsHandler", models.ErrUserIDTooLong)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		slog.Error("Server.wsHandler: failed to accept WebSocket", "error", err, "user_id", userID)
		return
	}
	defer func() {
		if closeErr := conn.Close(websocket.StatusNormalClosure, "session ended"); closeErr != nil {
			slog.Debug("Server.wsHandler: failed to close websocket", "error", closeErr, "user_id", userID)
		}
	}()
	conn.SetReadLimit(maxRequestBodyBytes)
	slog.Info("Server.wsHandler: session started", "user_id", userID, "ip", r.RemoteAddr)

	ctx := r.Context()
	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure || errors.Is(err, context.Canceled) {
				slog.Info("Server.wsHandler: session ended", "user_id", userID)
			} else {
				slog.Debug("Server.wsHandler: read failed", "error", err, "user_id", userID)
			}
			return
		}

		var reply interface{}
		var msg wsMessage
		switch {
		case typ != websocket.MessageText:
			reply = models.Error("Only text frames are supported")
		case json.Unmarshal(data, &msg) != nil:
			reply = models.Error("Invalid JSON format")
		default:
			if err := (&models.ChatRequest{UserID: userID, Message: msg.Message}).Validate(); err != nil {
				reply = models.Error(err.Error())
			} else {
				reply = s.engine.Process(ctx, msg.Message, userID)
			}
		}
		if !s.wsWrite(ctx, conn, userID, reply) {
			return
		}
	}
}

func (s *Server) wsWrite(ctx context.Context, conn *websocket.Conn, userID string, v interface{}) bool {
	if err := wsjson.Write(ctx, conn, v); err != nil {
		slog.Debug("Server.wsHandler: write failed", "error", err, "user_id", userID)
		return false
	}
	return true
}
