package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ikadraft/ika-draft-backend/internal/engine"
	"github.com/ikadraft/ika-draft-backend/internal/registry"
	"github.com/ikadraft/ika-draft-backend/internal/room"
)

// actionRequest is the thin synchronous front for ban/pick/reset: the caller
// gets an immediate accept/reject in addition to the room broadcast.
type actionRequest struct {
	UserID   string `json:"user_id"`
	WeaponID int    `json:"weapon_id"`
}

func ListRooms(reg *registry.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, reg.List(r.Context()))
	}
}

func ResetRoom(reg *registry.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeAction(w, r)
		if !ok {
			return
		}
		if err := reg.ResetRoom(r.Context(), chi.URLParam(r, "id"), req.UserID); err != nil {
			writeReject(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func BanWeapon(reg *registry.Registry) http.HandlerFunc {
	return roomAction(reg, room.CmdBanWeapon)
}

func PickWeapon(reg *registry.Registry) http.HandlerFunc {
	return roomAction(reg, room.CmdPickWeapon)
}

func roomAction(reg *registry.Registry, cmdType room.CommandType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeAction(w, r)
		if !ok {
			return
		}
		rm, err := reg.Get(chi.URLParam(r, "id"))
		if err != nil {
			writeReject(w, err)
			return
		}
		cmd := room.Command{Type: cmdType, WeaponID: req.WeaponID}
		if err := rm.Do(r.Context(), req.UserID, cmd); err != nil {
			writeReject(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func decodeAction(w http.ResponseWriter, r *http.Request) (actionRequest, bool) {
	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"reason": "BadPayload"})
		return actionRequest{}, false
	}
	return req, true
}

func writeReject(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), map[string]string{"reason": engine.ReasonCode(err)})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, engine.ErrRoomNotFound), errors.Is(err, engine.ErrWeaponNotFound):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrNotHost), errors.Is(err, engine.ErrNotInRoom):
		return http.StatusForbidden
	case errors.Is(err, engine.ErrInvalidName):
		return http.StatusBadRequest
	default:
		return http.StatusConflict
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
