package app

import (
	"errors"
	"fmt"

	"github.com/parlorchat/parlor/internal/core"
	"github.com/parlorchat/parlor/internal/domain"
	"github.com/rs/zerolog/log"
)

var (
	ErrUsernameTaken     = errors.New("username already in use")
	ErrAlreadyRegistered = errors.New("connection already registered")
)

// Directory maps live connections to their presence record. Not safe
// for concurrent use on its own: the orchestrator serializes every
// access behind one lock, which is also what keeps the directory and
// the room registry from drifting apart.
type Directory struct {
	users map[core.ConnID]*domain.User
	seq   uint64
}

func NewDirectory() *Directory {
	return &Directory{users: make(map[core.ConnID]*domain.User)}
}

// Register creates a presence record with a fresh default username in
// the default room. The sequence behind default usernames is never
// reused and never resets for the process lifetime. A second call for
// the same connection is a transport contract violation, not a
// user-facing error.
func (d *Directory) Register(cid core.ConnID) (*domain.User, error) {
	if _, ok := d.users[cid]; ok {
		return nil, ErrAlreadyRegistered
	}
	d.seq++
	u := &domain.User{
		Username: fmt.Sprintf("user%03d", d.seq),
		Room:     domain.DefaultRoom,
	}
	d.users[cid] = u
	log.Info().Str("module", "app.directory").Str("cid", string(cid)).Str("username", u.Username).Msg("registered user")
	return u, nil
}

func (d *Directory) Lookup(cid core.ConnID) (*domain.User, bool) {
	u, ok := d.users[cid]
	return u, ok
}

// Rename swaps the username in place, leaving room membership alone.
// The uniqueness check is exact and case-sensitive against every other
// live user. A connection that vanished mid-request is a no-op.
func (d *Directory) Rename(cid core.ConnID, name string) error {
	u, ok := d.users[cid]
	if !ok {
		return nil
	}
	for other, ou := range d.users {
		if other != cid && ou.Username == name {
			return ErrUsernameTaken
		}
	}
	old := u.Username
	u.Username = name
	log.Info().Str("module", "app.directory").Str("cid", string(cid)).Str("old", old).Str("username", name).Msg("renamed user")
	return nil
}

// Unregister removes the record. Idempotent.
func (d *Directory) Unregister(cid core.ConnID) {
	if _, ok := d.users[cid]; !ok {
		return
	}
	delete(d.users, cid)
	log.Info().Str("module", "app.directory").Str("cid", string(cid)).Msg("unregistered user")
}
