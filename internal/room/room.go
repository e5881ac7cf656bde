// Package room implements one draft session as a single-writer actor: every
// mutation, whether it arrived over HTTP, a socket, or a timer expiry, is a
// message on the room's inbox and is applied sequentially by the room
// goroutine. Rooms never share state with each other.
package room

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/ikadraft/ika-draft-backend/internal/catalog"
	"github.com/ikadraft/ika-draft-backend/internal/engine"
	"github.com/ikadraft/ika-draft-backend/pkg/types"
)

const (
	MaxRoomUsers   = 10
	MaxTeamPlayers = 4
	MinTeamPlayers = 1
	MaxNameLen     = 10
)

// ResultSink receives the finalized draft exactly once per completed game.
type ResultSink interface {
	SaveResult(ctx context.Context, rec types.GameRecord) error
}

type Msg interface{ isRoomMsg() }

type Join struct {
	ClientID string
	Name     string
	Outbox   chan types.ServerMessage
	Reply    chan error
}

type Leave struct{ ClientID string }

// Action is the unified command envelope for both transports.
type Action struct {
	ClientID string
	Cmd      Command
	Reply    chan error
}

type GetView struct{ Reply chan View }

type Shutdown struct{}

type tickMsg struct{ tag timerTag }

func (Join) isRoomMsg()     {}
func (Leave) isRoomMsg()    {}
func (Action) isRoomMsg()   {}
func (GetView) isRoomMsg()  {}
func (Shutdown) isRoomMsg() {}
func (tickMsg) isRoomMsg()  {}

type CommandType string

const (
	CmdSelectTeam  CommandType = "selectTeam"
	CmdRenameRoom  CommandType = "renameRoom"
	CmdStartGame   CommandType = "startGame"
	CmdResetGame   CommandType = "resetGame"
	CmdBanWeapon   CommandType = "banWeapon"
	CmdPickWeapon  CommandType = "pickWeapon"
	CmdSelectStage CommandType = "selectStage"
	CmdSelectRule  CommandType = "selectRule"
)

type Command struct {
	Type     CommandType
	Team     engine.Team
	Name     string
	WeaponID int
	StageID  int
	RuleID   int
}

// View is a read-only copy of room state for listings and tests.
type View struct {
	ID          string
	Name        string
	Phase       engine.Phase
	UserCount   int
	MaxUsers    int
	Version     int
	SecondsLeft int
	HostID      string
	Users       []types.UserInfo
	State       engine.State
}

func (v View) Summary() types.RoomSummary {
	return types.RoomSummary{
		RoomID:    v.ID,
		RoomName:  v.Name,
		UserCount: v.UserCount,
		Phase:     string(v.Phase),
		MaxUsers:  v.MaxUsers,
	}
}

type user struct {
	id   string
	name string
	team engine.Team
}

type Options struct {
	ID      string
	Name    string
	Catalog *catalog.Catalog
	Sink    ResultSink
	Log     *zap.Logger
	Tick    time.Duration // one logical second; shrink for debug acceleration
	Rng     *rand.Rand
	Notify  func() // room-list change hook, called off the loop goroutine
}

type Room struct {
	id      string
	name    string
	inbox   chan Msg
	state   engine.State
	version int

	users   map[string]*user
	order   []string // join order; order[0] is host
	clients map[string]chan types.ServerMessage

	secondsLeft int
	timer       *time.Timer
	timerTag    timerTag
	timerGen    int
	tick        time.Duration

	cat    *catalog.Catalog
	sink   ResultSink
	rng    *rand.Rand
	notify func()
	log    *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

func New(parent context.Context, opts Options) *Room {
	ctx, cancel := context.WithCancel(parent)
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.Tick <= 0 {
		opts.Tick = time.Second
	}
	if opts.Rng == nil {
		opts.Rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Name == "" {
		opts.Name = "Room " + opts.ID
	}
	r := &Room{
		id:      opts.ID,
		name:    opts.Name,
		inbox:   make(chan Msg, 64),
		state:   engine.NewState(opts.Catalog.WeaponIDs()),
		users:   make(map[string]*user),
		clients: make(map[string]chan types.ServerMessage),
		tick:    opts.Tick,
		cat:     opts.Catalog,
		sink:    opts.Sink,
		rng:     opts.Rng,
		notify:  opts.Notify,
		log:     opts.Log.With(zap.String("room", opts.ID)),
		ctx:     ctx,
		cancel:  cancel,
	}
	go r.loop()
	return r
}

func (r *Room) ID() string        { return r.id }
func (r *Room) Inbox() chan<- Msg { return r.inbox }

func (r *Room) loop() {
	for {
		select {
		case <-r.ctx.Done():
			r.shutdown()
			return

		case m := <-r.inbox:
			switch msg := m.(type) {
			case Join:
				msg.Reply <- r.handleJoin(msg)

			case Leave:
				r.handleLeave(msg.ClientID)

			case Action:
				err := r.dispatch(msg.ClientID, msg.Cmd)
				if msg.Reply != nil {
					msg.Reply <- err
				}

			case GetView:
				msg.Reply <- r.view()

			case tickMsg:
				r.handleTick(msg.tag)

			case Shutdown:
				r.shutdown()
				return
			}
		}
	}
}

func (r *Room) handleJoin(msg Join) error {
	if len(r.users) >= MaxRoomUsers {
		return engine.ErrRoomFull
	}
	if !validName(msg.Name) {
		return engine.ErrInvalidName
	}
	r.users[msg.ClientID] = &user{id: msg.ClientID, name: msg.Name, team: engine.TeamObserver}
	r.order = append(r.order, msg.ClientID)
	r.clients[msg.ClientID] = msg.Outbox

	// Full resync for the joiner, then the usual snapshot for everyone.
	r.send(msg.ClientID, types.ServerMessage{
		Type:    types.MsgInitialState,
		Version: r.version,
		State:   r.snapshot(true),
	})
	r.bumpAndBroadcast()
	r.notifyList()
	return nil
}

func (r *Room) handleLeave(clientID string) {
	if _, ok := r.users[clientID]; !ok {
		return
	}
	wasHost := r.hostID() == clientID
	r.removeClient(clientID)
	if wasHost && len(r.order) > 0 {
		r.log.Info("host transferred", zap.String("host", r.hostID()))
	}
	r.bumpAndBroadcast()
	r.notifyList()
}

// hostID is the earliest-joined remaining member, or empty for a vacant room.
func (r *Room) hostID() string {
	if len(r.order) == 0 {
		return ""
	}
	return r.order[0]
}

func (r *Room) removeClient(clientID string) {
	delete(r.users, clientID)
	if ch, ok := r.clients[clientID]; ok {
		close(ch)
		delete(r.clients, clientID)
	}
	for i, id := range r.order {
		if id == clientID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

func (r *Room) shutdown() {
	r.stopTimer()
	for id, ch := range r.clients {
		close(ch)
		delete(r.clients, id)
	}
	clear(r.users)
	r.order = nil
	r.cancel()
}

// send delivers to one client; broadcast fans out to everyone in the room.
// A client whose outbox is full is dropped, same as any dead connection.
func (r *Room) send(clientID string, msg types.ServerMessage) {
	ch, ok := r.clients[clientID]
	if !ok {
		return
	}
	select {
	case ch <- msg:
	default:
		r.log.Warn("dropping slow client", zap.String("client", clientID))
		r.removeClient(clientID)
	}
}

func (r *Room) broadcast(msg types.ServerMessage) {
	for id := range r.clients {
		r.send(id, msg)
	}
}

// bumpAndBroadcast is the post-mutation snapshot broadcast: version bump plus
// a phaseChange message reflecting the new public state.
func (r *Room) bumpAndBroadcast() {
	r.version++
	r.broadcast(types.ServerMessage{
		Type:    types.MsgPhaseChange,
		Version: r.version,
		State:   r.snapshot(false),
	})
}

func (r *Room) notifyList() {
	if r.notify != nil {
		go r.notify()
	}
}

func (r *Room) view() View {
	return View{
		ID:          r.id,
		Name:        r.name,
		Phase:       r.state.Phase,
		UserCount:   len(r.users),
		MaxUsers:    MaxRoomUsers,
		Version:     r.version,
		SecondsLeft: r.secondsLeft,
		HostID:      r.hostID(),
		Users:       r.userInfos(),
		State:       r.state,
	}
}

func (r *Room) userInfos() []types.UserInfo {
	infos := make([]types.UserInfo, 0, len(r.order))
	for _, id := range r.order {
		u := r.users[id]
		infos = append(infos, types.UserInfo{ID: u.id, Name: u.name, Team: string(u.team)})
	}
	return infos
}

func (r *Room) snapshot(full bool) *types.RoomState {
	snap := &types.RoomState{
		RoomID:      r.id,
		RoomName:    r.name,
		Phase:       string(r.state.Phase),
		CurrentTurn: string(r.state.CurrentTurn),
		SecondsLeft: r.secondsLeft,
		PickTurn:    r.state.PickTurn,
		Bans: map[string]int{
			string(engine.TeamAlpha): r.state.Bans[engine.TeamAlpha],
			string(engine.TeamBravo): r.state.Bans[engine.TeamBravo],
		},
		Picks: map[string]int{
			string(engine.TeamAlpha): r.state.Picks[engine.TeamAlpha],
			string(engine.TeamBravo): r.state.Picks[engine.TeamBravo],
		},
		StageID: r.state.StageID,
		RuleID:  r.state.RuleID,
		HostID:  r.hostID(),
		Users:   r.userInfos(),
	}
	if full {
		snap.Weapons = make([]types.WeaponInfo, 0, len(r.cat.WeaponIDs()))
		for _, id := range r.cat.WeaponIDs() {
			snap.Weapons = append(snap.Weapons, r.weaponInfo(id))
		}
	}
	return snap
}

func (r *Room) weaponInfo(id int) types.WeaponInfo {
	ws := r.state.Weapons[id]
	info := types.WeaponInfo{ID: id, SelectedBy: string(ws.SelectedBy)}
	for _, t := range []engine.Team{engine.TeamAlpha, engine.TeamBravo} {
		if ws.BannedBy[t] {
			info.BannedBy = append(info.BannedBy, string(t))
		}
	}
	return info
}

func validName(name string) bool {
	n := len([]rune(name))
	return n > 0 && n <= MaxNameLen
}

// JoinRoom registers a client synchronously. The outbox receives an
// initialState message first, then every subsequent broadcast in order.
func (r *Room) JoinRoom(ctx context.Context, clientID, name string, outbox chan types.ServerMessage) error {
	reply := make(chan error, 1)
	select {
	case r.inbox <- Join{ClientID: clientID, Name: name, Outbox: outbox, Reply: reply}:
	case <-ctx.Done():
		return ctx.Err()
	case <-r.ctx.Done():
		return engine.ErrRoomNotFound
	}
	select {
	case err := <-reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Do runs one command through the room's serialized dispatch and returns its
// synchronous accept/reject result.
func (r *Room) Do(ctx context.Context, clientID string, cmd Command) error {
	reply := make(chan error, 1)
	select {
	case r.inbox <- Action{ClientID: clientID, Cmd: cmd, Reply: reply}:
	case <-ctx.Done():
		return ctx.Err()
	case <-r.ctx.Done():
		return engine.ErrRoomNotFound
	}
	select {
	case err := <-reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ViewNow fetches a consistent state copy without racing the loop.
func (r *Room) ViewNow(ctx context.Context) (View, error) {
	reply := make(chan View, 1)
	select {
	case r.inbox <- GetView{Reply: reply}:
	case <-ctx.Done():
		return View{}, ctx.Err()
	case <-r.ctx.Done():
		return View{}, engine.ErrRoomNotFound
	}
	select {
	case v := <-reply:
		return v, nil
	case <-ctx.Done():
		return View{}, ctx.Err()
	}
}
