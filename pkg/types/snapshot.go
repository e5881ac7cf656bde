package types

import "time"

// RoomState is the public snapshot of one room. Timer handles and the raw
// membership map never leave the room actor; this is everything a client may
// see. Weapons is populated only for initialState so incremental broadcasts
// stay small.
type RoomState struct {
	RoomID      string         `json:"room_id"`
	RoomName    string         `json:"room_name"`
	Phase       string         `json:"phase"`
	CurrentTurn string         `json:"current_turn,omitempty"`
	SecondsLeft int            `json:"seconds_left"`
	PickTurn    int            `json:"pick_turn"`
	Bans        map[string]int `json:"bans"`
	Picks       map[string]int `json:"picks"`
	StageID     int            `json:"stage_id"`
	RuleID      int            `json:"rule_id"`
	HostID      string         `json:"host_id,omitempty"`
	Users       []UserInfo     `json:"users"`
	Weapons     []WeaponInfo   `json:"weapons,omitempty"`
}

type UserInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Team string `json:"team"`
}

// WeaponInfo is the incremental per-weapon update: who holds it and which
// teams have banned it.
type WeaponInfo struct {
	ID         int      `json:"id"`
	SelectedBy string   `json:"selected_by,omitempty"`
	BannedBy   []string `json:"banned_by,omitempty"`
}

// RoomSummary is the room-selection listing entry. Recomputed on demand,
// never persisted.
type RoomSummary struct {
	RoomID    string `json:"room_id"`
	RoomName  string `json:"room_name"`
	UserCount int    `json:"user_count"`
	Phase     string `json:"phase"`
	MaxUsers  int    `json:"max_users"`
}

// GameRecord is the finalized draft written once when a room reaches
// pick_complete, and the payload of the draftComplete broadcast.
type GameRecord struct {
	RoomID      string           `json:"room_id"`
	StageID     int              `json:"stage_id"`
	RuleID      int              `json:"rule_id"`
	Bans        map[string][]int `json:"bans"`
	Picks       map[string][]int `json:"picks"`
	CompletedAt time.Time        `json:"completed_at"`
}
