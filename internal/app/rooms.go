package app

import (
	"sort"

	"github.com/parlorchat/parlor/internal/core"
	"github.com/parlorchat/parlor/internal/domain"
	"github.com/rs/zerolog/log"
)

// RoomInfo is a read-only view for listings.
type RoomInfo struct {
	Name      domain.RoomName `json:"name"`
	UserCount int             `json:"userCount"`
}

// RoomRegistry tracks which connections occupy which room. Dumb set
// bookkeeping only: identity checks live in the directory, ordering
// rules in the orchestrator, which also serializes all access.
//
// The default room always exists; any other room exists exactly while
// it has members.
type RoomRegistry struct {
	rooms map[domain.RoomName]map[core.ConnID]struct{}
}

func NewRoomRegistry() *RoomRegistry {
	return &RoomRegistry{
		rooms: map[domain.RoomName]map[core.ConnID]struct{}{
			domain.DefaultRoom: {},
		},
	}
}

// Join inserts the connection, creating the room on first member.
func (r *RoomRegistry) Join(cid core.ConnID, room domain.RoomName) {
	members, ok := r.rooms[room]
	if !ok {
		members = make(map[core.ConnID]struct{})
		r.rooms[room] = members
		log.Info().Str("module", "app.rooms").Str("room", string(room)).Msg("room created")
	}
	members[cid] = struct{}{}
}

// Leave removes the connection and reaps the room once it is empty,
// except the default room which survives with zero members.
func (r *RoomRegistry) Leave(cid core.ConnID, room domain.RoomName) {
	members, ok := r.rooms[room]
	if !ok {
		return
	}
	delete(members, cid)
	if len(members) == 0 && room != domain.DefaultRoom {
		delete(r.rooms, room)
		log.Info().Str("module", "app.rooms").Str("room", string(room)).Msg("room reaped")
	}
}

func (r *RoomRegistry) MemberCount(room domain.RoomName) int {
	return len(r.rooms[room])
}

// MemberUsernames resolves the roster through the directory. Sorted so
// rosters come out the same way for every observer.
func (r *RoomRegistry) MemberUsernames(room domain.RoomName, d *Directory) []string {
	members, ok := r.rooms[room]
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(members))
	for cid := range members {
		if u, ok := d.Lookup(cid); ok {
			out = append(out, u.Username)
		}
	}
	sort.Strings(out)
	return out
}

// ListRooms snapshots every existing room with its member count,
// sorted by name.
func (r *RoomRegistry) ListRooms() []RoomInfo {
	out := make([]RoomInfo, 0, len(r.rooms))
	for name, members := range r.rooms {
		out = append(out, RoomInfo{Name: name, UserCount: len(members)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
