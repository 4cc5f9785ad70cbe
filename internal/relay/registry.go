package relay

import (
	"strings"

	"github.com/google/uuid"
)

// connMeta is the per-connection record the registry owns.
type connMeta struct {
	id   string
	room string
}

// registry maps each live connection to its metadata. It is the only
// authoritative record of which room a connection is in. All access happens
// under the relay's mutex.
type registry struct {
	entries map[Sender]*connMeta
}

func newRegistry() *registry {
	return &registry{entries: make(map[Sender]*connMeta)}
}

// register allocates a fresh short id and stores the connection with the
// default room.
func (r *registry) register(conn Sender) *connMeta {
	meta := &connMeta{id: newConnID(), room: DefaultRoom}
	r.entries[conn] = meta
	return meta
}

// lookup returns the metadata for a known connection, or nil. Events for
// unknown connections (races with disconnect) are handled by callers as
// no-ops.
func (r *registry) lookup(conn Sender) *connMeta {
	return r.entries[conn]
}

// setRoom records the connection's new room. Called only after room
// membership has been moved, so the record never disagrees with the tables.
func (r *registry) setRoom(conn Sender, room string) {
	if meta, ok := r.entries[conn]; ok {
		meta.room = room
	}
}

// remove deletes the record. Idempotent.
func (r *registry) remove(conn Sender) {
	delete(r.entries, conn)
}

// newConnID returns a short opaque identifier. Uniqueness is probabilistic,
// which is enough for a LAN relay.
func newConnID() string {
	return strings.SplitN(uuid.NewString(), "-", 2)[0]
}
