package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ikadraft/ika-draft-backend/internal/registry"
	"github.com/ikadraft/ika-draft-backend/internal/ws"
)

func SetupRoutes(reg *registry.Registry, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", Healthz)
	r.Get("/rooms", ListRooms(reg))
	r.Post("/rooms/{id}/reset", ResetRoom(reg))
	r.Post("/rooms/{id}/ban", BanWeapon(reg))
	r.Post("/rooms/{id}/pick", PickWeapon(reg))
	r.Get("/ws", ws.Handler(reg, log))
	r.Get("/ws/lobby", ws.LobbyHandler(reg, log))
	return r
}
