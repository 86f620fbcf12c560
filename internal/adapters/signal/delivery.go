package signal

import (
	"encoding/json"

	"github.com/parlorchat/parlor/internal/core"
	"github.com/parlorchat/parlor/internal/domain"
	"github.com/rs/zerolog/log"
)

// Wire envelope, both directions: {"type": ..., "data": ...}.
type envelope struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

func encode(event string, payload any) ([]byte, bool) {
	b, err := json.Marshal(envelope{Type: event, Data: payload})
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Str("event", event).Msg("encode event")
		return nil, false
	}
	return b, true
}

func (ctl *Controller) Unicast(to core.ConnID, event string, payload any) {
	ctl.mu.RLock()
	conn, ok := ctl.conns[to]
	ctl.mu.RUnlock()
	if !ok {
		return
	}
	frame, ok := encode(event, payload)
	if !ok {
		return
	}
	if err := conn.TrySend(frame); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("cid", string(to)).Str("event", event).Msg("unicast dropped")
	}
}

func (ctl *Controller) Broadcast(room domain.RoomName, event string, payload any, exclude core.ConnID) {
	frame, ok := encode(event, payload)
	if !ok {
		return
	}

	ctl.mu.RLock()
	targets := make([]*WsConn, 0, len(ctl.channels[room]))
	for cid := range ctl.channels[room] {
		if cid == exclude {
			continue
		}
		if conn, ok := ctl.conns[cid]; ok {
			targets = append(targets, conn)
		}
	}
	ctl.mu.RUnlock()

	sent := 0
	for _, conn := range targets {
		if err := conn.TrySend(frame); err == nil {
			sent++
		}
	}
	log.Debug().Str("module", "signal").Str("room", string(room)).Str("event", event).Int("sent_to", sent).Int("dropped", len(targets)-sent).Msg("broadcast result")
}

func (ctl *Controller) JoinChannel(cid core.ConnID, room domain.RoomName) {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	subs, ok := ctl.channels[room]
	if !ok {
		subs = make(map[core.ConnID]struct{})
		ctl.channels[room] = subs
	}
	subs[cid] = struct{}{}
}

func (ctl *Controller) LeaveChannel(cid core.ConnID, room domain.RoomName) {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	subs, ok := ctl.channels[room]
	if !ok {
		return
	}
	delete(subs, cid)
	if len(subs) == 0 {
		delete(ctl.channels, room)
	}
}
