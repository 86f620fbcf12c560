package app

import (
	"fmt"
	"sync"

	"github.com/parlorchat/parlor/internal/core"
	"github.com/parlorchat/parlor/internal/domain"
	"github.com/parlorchat/parlor/internal/metrics"
	"github.com/rs/zerolog/log"
)

// Orchestrator drives the per-connection state machine. It owns the
// only lock in the system: directory and room registry are mutated
// together under it, so an observer can never see them disagree. For
// each inbound intent, every mutation lands before the first
// notification goes out, and notifications keep a fixed order.
type Orchestrator struct {
	mu        sync.Mutex
	Directory *Directory
	Rooms     *RoomRegistry
	Delivery  core.Delivery
}

func NewOrchestrator(delivery core.Delivery) *Orchestrator {
	return &Orchestrator{
		Directory: NewDirectory(),
		Rooms:     NewRoomRegistry(),
		Delivery:  delivery,
	}
}

// Connect registers the connection with a default identity, lands it in
// the default room and plays the welcome sequence: own user info, room
// confirmation plus roster, a joined notice to the rest of the room,
// then the room list.
func (o *Orchestrator) Connect(cid core.ConnID) {
	o.mu.Lock()
	defer o.mu.Unlock()

	user, err := o.Directory.Register(cid)
	if err != nil {
		// Transport handed us the same connection twice; nothing a
		// client can fix.
		log.Error().Err(err).Str("module", "app.orch").Str("cid", string(cid)).Msg("register refused")
		return
	}
	o.Rooms.Join(cid, domain.DefaultRoom)
	o.Delivery.JoinChannel(cid, domain.DefaultRoom)

	count := o.Rooms.MemberCount(domain.DefaultRoom)
	roster := o.Rooms.MemberUsernames(domain.DefaultRoom, o.Directory)

	o.Delivery.Unicast(cid, EvUserInfo, UserInfo{Username: user.Username, Room: user.Room})
	o.Delivery.Unicast(cid, EvRoomJoined, RoomJoined{Room: domain.DefaultRoom, UserCount: count})
	o.Delivery.Unicast(cid, EvRoomUsers, RoomUsers{Room: domain.DefaultRoom, Users: roster})
	o.Delivery.Broadcast(domain.DefaultRoom, EvUserJoined, UserJoined{
		Username:  user.Username,
		Room:      domain.DefaultRoom,
		UserCount: count,
	}, cid)
	o.Delivery.Unicast(cid, EvAvailableRooms, o.Rooms.ListRooms())

	metrics.Incr("connections.total", 1)
	metrics.Incr("connections.open", 1)
}

// SendMessage fans a chat line out to the sender's current room,
// sender included. A connection that raced with its own disconnect is
// dropped silently.
func (o *Orchestrator) SendMessage(cid core.ConnID, text string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	user, ok := o.Directory.Lookup(cid)
	if !ok {
		return
	}
	o.Delivery.Broadcast(user.Room, EvChatMessage, ChatMessage{
		Room:     user.Room,
		Username: user.Username,
		Text:     text,
		SenderID: cid,
	}, "")
	metrics.Incr("messages.chat", 1)
}

// UpdateUser applies an optional rename and an optional room move as
// one request. A rename conflict aborts the whole request before any
// room mutation, so a failed rename can never half-apply a move. All
// surviving mutations complete before the first notification.
func (o *Orchestrator) UpdateUser(cid core.ConnID, req UpdateUserRequest) {
	o.mu.Lock()
	defer o.mu.Unlock()

	user, ok := o.Directory.Lookup(cid)
	if !ok {
		return
	}
	oldName := user.Username
	oldRoom := user.Room

	nameChanged := req.Username != "" && req.Username != oldName
	roomChanged := req.Room != "" && domain.RoomName(req.Room) != oldRoom

	if nameChanged {
		if err := domain.ValidateUsername(req.Username); err != nil {
			o.Delivery.Unicast(cid, EvUsernameError, UsernameError{Message: err.Error()})
			return
		}
		if err := o.Directory.Rename(cid, req.Username); err != nil {
			o.Delivery.Unicast(cid, EvUsernameError, UsernameError{
				Message: fmt.Sprintf("'%s' is already in use.", req.Username),
			})
			metrics.Incr("renames.conflict", 1)
			return
		}
		metrics.Incr("renames", 1)
	}

	var oldCount, newCount int
	var roster []string
	newRoom := domain.RoomName(req.Room)
	if roomChanged {
		o.Rooms.Leave(cid, oldRoom)
		o.Delivery.LeaveChannel(cid, oldRoom)
		oldCount = o.Rooms.MemberCount(oldRoom)

		o.Rooms.Join(cid, newRoom)
		o.Delivery.JoinChannel(cid, newRoom)
		user.Room = newRoom
		newCount = o.Rooms.MemberCount(newRoom)
		roster = o.Rooms.MemberUsernames(newRoom, o.Directory)
		metrics.Incr("rooms.moves", 1)
	}

	if nameChanged {
		o.Delivery.Unicast(cid, EvUsernameChanged, UsernameChanged{Username: user.Username})
		o.Delivery.Broadcast(oldRoom, EvUserRenamed, UserRenamed{
			OldUsername: oldName,
			NewUsername: user.Username,
		}, cid)
	}
	if roomChanged {
		o.Delivery.Broadcast(oldRoom, EvUserLeft, UserLeft{
			Username:  user.Username,
			Room:      oldRoom,
			UserCount: oldCount,
		}, cid)
		o.Delivery.Unicast(cid, EvRoomJoined, RoomJoined{Room: newRoom, UserCount: newCount})
		o.Delivery.Unicast(cid, EvRoomUsers, RoomUsers{Room: newRoom, Users: roster})
		o.Delivery.Broadcast(newRoom, EvUserJoined, UserJoined{
			Username:  user.Username,
			Room:      newRoom,
			UserCount: newCount,
		}, cid)
	}
	if nameChanged || roomChanged {
		o.Delivery.Unicast(cid, EvUserInfo, UserInfo{Username: user.Username, Room: user.Room})
	}
}

// Disconnect tears the connection down: membership first, then the
// departure notice, then the presence record. Idempotent, so an event
// queued behind a disconnect is harmless.
func (o *Orchestrator) Disconnect(cid core.ConnID) {
	o.mu.Lock()
	defer o.mu.Unlock()

	user, ok := o.Directory.Lookup(cid)
	if !ok {
		return
	}
	username, room := user.Username, user.Room

	o.Rooms.Leave(cid, room)
	o.Delivery.LeaveChannel(cid, room)
	count := o.Rooms.MemberCount(room)
	o.Directory.Unregister(cid)

	o.Delivery.Broadcast(room, EvUserLeft, UserLeft{
		Username:  username,
		Room:      room,
		UserCount: count,
	}, cid)
	metrics.Decr("connections.open", 1)
}

// ListRooms is the read-only snapshot handed to the HTTP surface.
func (o *Orchestrator) ListRooms() []RoomInfo {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.Rooms.ListRooms()
}
