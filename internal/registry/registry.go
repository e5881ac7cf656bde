// Package registry owns the fixed pool of rooms. The pool is built once at
// startup and the map is never mutated afterwards, so lookups need no lock;
// only the room-list subscriber set is guarded.
package registry

import (
	"context"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ikadraft/ika-draft-backend/internal/catalog"
	"github.com/ikadraft/ika-draft-backend/internal/engine"
	"github.com/ikadraft/ika-draft-backend/internal/room"
	"github.com/ikadraft/ika-draft-backend/pkg/types"
)

const viewTimeout = 2 * time.Second

type Options struct {
	RoomCount int
	Catalog   *catalog.Catalog
	Sink      room.ResultSink
	Log       *zap.Logger
	Tick      time.Duration
}

type Registry struct {
	rooms map[string]*room.Room
	ids   []string // pool order, stable for listings

	mu      sync.Mutex
	subs    map[string]chan types.ServerMessage
	nextSub int

	log *zap.Logger
	ctx context.Context
}

// New creates every room in the pool eagerly; room IDs are "1".."N".
func New(ctx context.Context, opts Options) *Registry {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.RoomCount <= 0 {
		opts.RoomCount = 4
	}
	g := &Registry{
		rooms: make(map[string]*room.Room, opts.RoomCount),
		subs:  make(map[string]chan types.ServerMessage),
		log:   opts.Log,
		ctx:   ctx,
	}
	for i := 1; i <= opts.RoomCount; i++ {
		id := strconv.Itoa(i)
		g.ids = append(g.ids, id)
		g.rooms[id] = room.New(ctx, room.Options{
			ID:      id,
			Catalog: opts.Catalog,
			Sink:    opts.Sink,
			Log:     opts.Log,
			Tick:    opts.Tick,
			Notify:  g.publishList,
		})
	}
	return g
}

// Get returns the room for id or ErrRoomNotFound.
func (g *Registry) Get(id string) (*room.Room, error) {
	rm, ok := g.rooms[id]
	if !ok {
		return nil, engine.ErrRoomNotFound
	}
	return rm, nil
}

// List recomputes the room summaries on demand, in pool order. A room that
// fails to answer within the view timeout is skipped rather than blocking
// the listing.
func (g *Registry) List(ctx context.Context) []types.RoomSummary {
	ctx, cancel := context.WithTimeout(ctx, viewTimeout)
	defer cancel()

	summaries := make([]types.RoomSummary, 0, len(g.ids))
	for _, id := range g.ids {
		v, err := g.rooms[id].ViewNow(ctx)
		if err != nil {
			g.log.Warn("room view unavailable", zap.String("room", id), zap.Error(err))
			continue
		}
		summaries = append(summaries, v.Summary())
	}
	return summaries
}

// ResetRoom routes a host reset through the room's serialized dispatch.
func (g *Registry) ResetRoom(ctx context.Context, id, requesterID string) error {
	rm, err := g.Get(id)
	if err != nil {
		return err
	}
	return rm.Do(ctx, requesterID, room.Command{Type: room.CmdResetGame})
}

// Subscribe registers a roomListUpdate listener (the lobby-browser socket).
// The returned unsubscribe func is idempotent.
func (g *Registry) Subscribe(ch chan types.ServerMessage) (unsubscribe func()) {
	g.mu.Lock()
	g.nextSub++
	key := strconv.Itoa(g.nextSub)
	g.subs[key] = ch
	g.mu.Unlock()

	return func() {
		g.mu.Lock()
		delete(g.subs, key)
		g.mu.Unlock()
	}
}

// publishList fans the current summaries out to all subscribers. Rooms call
// this off their loop goroutine whenever membership, name, or phase changes.
func (g *Registry) publishList() {
	msg := types.ServerMessage{Type: types.MsgRoomListUpdate, Rooms: g.List(g.ctx)}

	g.mu.Lock()
	defer g.mu.Unlock()
	for key, ch := range g.subs {
		select {
		case ch <- msg:
		default:
			delete(g.subs, key) // slow listener
		}
	}
}

// Shutdown stops every room actor.
func (g *Registry) Shutdown() {
	for _, rm := range g.rooms {
		rm.Inbox() <- room.Shutdown{}
	}
}
