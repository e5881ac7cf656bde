package registry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ikadraft/ika-draft-backend/internal/catalog"
	"github.com/ikadraft/ika-draft-backend/internal/engine"
	"github.com/ikadraft/ika-draft-backend/internal/room"
	"github.com/ikadraft/ika-draft-backend/pkg/types"
)

func newTestRegistry(t *testing.T, rooms int) *Registry {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return New(ctx, Options{RoomCount: rooms, Catalog: catalog.Default()})
}

func TestRegistry_FixedPool(t *testing.T) {
	g := newTestRegistry(t, 3)

	rm, err := g.Get("2")
	require.NoError(t, err)
	assert.Equal(t, "2", rm.ID())

	_, err = g.Get("9")
	assert.ErrorIs(t, err, engine.ErrRoomNotFound)

	same, err := g.Get("2")
	require.NoError(t, err)
	assert.Same(t, rm, same)
}

func TestRegistry_ListSummaries(t *testing.T) {
	g := newTestRegistry(t, 3)

	out := make(chan types.ServerMessage, 64)
	rm, err := g.Get("2")
	require.NoError(t, err)
	require.NoError(t, rm.JoinRoom(context.Background(), "c1", "Mika", out))

	list := g.List(context.Background())
	require.Len(t, list, 3)
	assert.Equal(t, []string{"1", "2", "3"}, []string{list[0].RoomID, list[1].RoomID, list[2].RoomID})
	assert.Equal(t, 1, list[1].UserCount)
	assert.Equal(t, string(engine.PhaseWaiting), list[1].Phase)
	assert.Equal(t, room.MaxRoomUsers, list[1].MaxUsers)
	assert.Equal(t, "Room 2", list[1].RoomName)
}

func TestRegistry_ResetRoom(t *testing.T) {
	g := newTestRegistry(t, 1)

	err := g.ResetRoom(context.Background(), "9", "someone")
	assert.ErrorIs(t, err, engine.ErrRoomNotFound)

	// A non-member requester is rejected as NotHost per the reset contract.
	err = g.ResetRoom(context.Background(), "1", "stranger")
	assert.ErrorIs(t, err, engine.ErrNotHost)

	rm, err := g.Get("1")
	require.NoError(t, err)
	out := make(chan types.ServerMessage, 64)
	require.NoError(t, rm.JoinRoom(context.Background(), "host", "Hana", out))

	// Nothing to reset while waiting.
	err = g.ResetRoom(context.Background(), "1", "host")
	assert.ErrorIs(t, err, engine.ErrInvalidPhase)
}

func TestRegistry_SubscribeReceivesListUpdates(t *testing.T) {
	g := newTestRegistry(t, 1)

	updates := make(chan types.ServerMessage, 8)
	unsubscribe := g.Subscribe(updates)
	defer unsubscribe()

	rm, err := g.Get("1")
	require.NoError(t, err)
	out := make(chan types.ServerMessage, 64)
	require.NoError(t, rm.JoinRoom(context.Background(), "c1", "Mika", out))

	select {
	case msg := <-updates:
		assert.Equal(t, types.MsgRoomListUpdate, msg.Type)
		require.Len(t, msg.Rooms, 1)
		assert.Equal(t, 1, msg.Rooms[0].UserCount)
	case <-time.After(2 * time.Second):
		t.Fatal("no roomListUpdate after join")
	}
}
