package core

import "github.com/parlorchat/parlor/internal/domain"

// ConnID is the opaque transport identity of one live connection.
// The core never inspects it, only keys on it.
type ConnID string

// Delivery abstracts the outbound side of the transport.
// Owned by the adapter; implementations must not block and must not
// call back into the orchestrator.
type Delivery interface {
	// Unicast delivers one event to one connection.
	Unicast(to ConnID, event string, payload any)

	// Broadcast delivers one event to every connection subscribed to
	// room, skipping exclude when it is non-empty.
	Broadcast(room domain.RoomName, event string, payload any, exclude ConnID)

	// JoinChannel and LeaveChannel keep the transport-level subscription
	// in step with room membership.
	JoinChannel(c ConnID, room domain.RoomName)
	LeaveChannel(c ConnID, room domain.RoomName)
}
