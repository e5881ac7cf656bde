package ws

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/coder/websocket"
	"go.uber.org/zap"

	"github.com/ikadraft/ika-draft-backend/internal/registry"
	"github.com/ikadraft/ika-draft-backend/pkg/types"
)

// LobbyHandler streams roomListUpdate messages to room-selection UIs: one
// snapshot on connect, then a push whenever any room's roster, name, or
// phase changes.
func LobbyHandler(reg *registry.Registry, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		updates := make(chan types.ServerMessage, 8)
		unsubscribe := reg.Subscribe(updates)
		defer unsubscribe()

		log.Debug("lobby listener connected")

		write := func(msg types.ServerMessage) error {
			payload, err := json.Marshal(msg)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(r.Context(), writeTimeout)
			defer cancel()
			return conn.Write(ctx, websocket.MessageText, payload)
		}

		if err := write(types.ServerMessage{
			Type:  types.MsgRoomListUpdate,
			Rooms: reg.List(r.Context()),
		}); err != nil {
			return
		}

		// Drain client frames so pings and closes are processed.
		go func() {
			for {
				if _, _, err := conn.Read(r.Context()); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case msg := <-updates:
				if err := write(msg); err != nil {
					return
				}
			case <-r.Context().Done():
				return
			}
		}
	}
}
