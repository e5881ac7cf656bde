package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ikadraft/ika-draft-backend/internal/engine"
	"github.com/ikadraft/ika-draft-backend/internal/registry"
	"github.com/ikadraft/ika-draft-backend/internal/room"
	"github.com/ikadraft/ika-draft-backend/pkg/types"
)

const (
	writeTimeout = 3 * time.Second
	outboxSize   = 32
)

// Handler upgrades /ws?room=ID&name=NAME connections and bridges them to the
// room actor: a writer goroutine drains the room outbox, the reader loop
// funnels client commands into the room inbox.
func Handler(reg *registry.Registry, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		roomID := r.URL.Query().Get("room")
		name := r.URL.Query().Get("name")
		if roomID == "" {
			http.Error(w, "missing room", http.StatusBadRequest)
			return
		}

		rm, err := reg.Get(roomID)
		if err != nil {
			http.Error(w, "room not found", http.StatusNotFound)
			return
		}

		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		clientID := uuid.NewString()
		outbox := make(chan types.ServerMessage, outboxSize)

		if err := rm.JoinRoom(r.Context(), clientID, name, outbox); err != nil {
			writeReject(r.Context(), conn, err)
			return
		}
		defer func() { rm.Inbox() <- room.Leave{ClientID: clientID} }()

		log.Debug("client joined",
			zap.String("room", roomID),
			zap.String("client", clientID))

		// Writer: the outbox is closed by the room on leave/shutdown/drop.
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for msg := range outbox {
				payload, err := json.Marshal(msg)
				if err != nil {
					continue
				}
				ctx, cancel := context.WithTimeout(writeCtx, writeTimeout)
				_ = conn.Write(ctx, websocket.MessageText, payload)
				cancel()
			}
		}()

		// Reader loop.
		for {
			_, data, err := conn.Read(r.Context())
			if err != nil {
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				writeReason(r.Context(), conn, "BadPayload")
				continue
			}
			if cm.Type == "leaveRoom" {
				return
			}

			cmd, ok := toCommand(cm)
			if !ok {
				writeReason(r.Context(), conn, "UnsupportedCommand")
				continue
			}
			if err := rm.Do(r.Context(), clientID, cmd); err != nil {
				// Rejections go to the actor only; accepted actions are
				// answered by the room broadcast.
				writeReject(r.Context(), conn, err)
			}
		}
	}
}

func toCommand(m types.ClientMessage) (room.Command, bool) {
	switch m.Type {
	case "selectTeam":
		team, ok := parseTeam(m.Team)
		if !ok {
			return room.Command{}, false
		}
		return room.Command{Type: room.CmdSelectTeam, Team: team}, true
	case "renameRoom":
		return room.Command{Type: room.CmdRenameRoom, Name: m.Name}, true
	case "startGame":
		return room.Command{Type: room.CmdStartGame}, true
	case "resetGame":
		return room.Command{Type: room.CmdResetGame}, true
	case "banWeapon":
		return room.Command{Type: room.CmdBanWeapon, WeaponID: m.WeaponID}, true
	case "pickWeapon":
		return room.Command{Type: room.CmdPickWeapon, WeaponID: m.WeaponID}, true
	case "selectStage":
		return room.Command{Type: room.CmdSelectStage, StageID: m.StageID}, true
	case "selectRule":
		return room.Command{Type: room.CmdSelectRule, RuleID: m.RuleID}, true
	default:
		return room.Command{}, false
	}
}

func parseTeam(team string) (engine.Team, bool) {
	switch team {
	case "alpha":
		return engine.TeamAlpha, true
	case "bravo":
		return engine.TeamBravo, true
	case "observer":
		return engine.TeamObserver, true
	default:
		return "", false
	}
}

func writeReject(ctx context.Context, conn *websocket.Conn, err error) {
	writeReason(ctx, conn, engine.ReasonCode(err))
}

func writeReason(ctx context.Context, conn *websocket.Conn, reason string) {
	payload, _ := json.Marshal(types.ServerMessage{Type: types.MsgActionRejected, Reason: reason})
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	_ = conn.Write(ctx, websocket.MessageText, payload)
}
