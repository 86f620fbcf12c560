package app

import (
	"github.com/parlorchat/parlor/internal/core"
	"github.com/parlorchat/parlor/internal/domain"
)

// Outbound event names. Kept as spoken phrases to stay wire-compatible
// with the original socket.io protocol.
const (
	EvUserInfo        = "user info"
	EvRoomJoined      = "room joined"
	EvRoomUsers       = "room users"
	EvAvailableRooms  = "available rooms"
	EvUserJoined      = "user joined"
	EvUserLeft        = "user left"
	EvUsernameChanged = "username changed"
	EvUserRenamed     = "user renamed"
	EvUsernameError   = "username error"
	EvChatMessage     = "chat message"
)

type UserInfo struct {
	Username string          `json:"username"`
	Room     domain.RoomName `json:"room"`
}

type RoomJoined struct {
	Room      domain.RoomName `json:"room"`
	UserCount int             `json:"userCount"`
}

type RoomUsers struct {
	Room  domain.RoomName `json:"room"`
	Users []string        `json:"users"`
}

// UserJoined and UserLeft carry the member count as it stands after the
// transition they announce.
type UserJoined struct {
	Username  string          `json:"username"`
	Room      domain.RoomName `json:"room"`
	UserCount int             `json:"userCount"`
}

type UserLeft struct {
	Username  string          `json:"username"`
	Room      domain.RoomName `json:"room"`
	UserCount int             `json:"userCount"`
}

type UsernameChanged struct {
	Username string `json:"username"`
}

type UserRenamed struct {
	OldUsername string `json:"oldUsername"`
	NewUsername string `json:"newUsername"`
}

type UsernameError struct {
	Message string `json:"message"`
}

type ChatMessage struct {
	Room     domain.RoomName `json:"room"`
	Username string          `json:"username"`
	Text     string          `json:"text"`
	SenderID core.ConnID     `json:"senderId"`
}

// UpdateUserRequest is the inbound shape of an "update user" intent.
// Both fields are optional and independently applicable.
type UpdateUserRequest struct {
	Username string `json:"username"`
	Room     string `json:"room"`
}
