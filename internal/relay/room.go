package relay

import (
	"strings"

	"github.com/marjorv/lanrelay/internal/protocol"
)

// DefaultRoom is where fresh connections start and where blank join targets
// resolve.
const DefaultRoom = "default"

const maxPlayers = 2

// room holds one named game session: up to two players in join order, any
// number of spectators, and the role each player holds.
type room struct {
	name       string
	players    []Sender
	spectators map[Sender]struct{}
	roles      map[Sender]string
}

// roomTable maps room names to rooms. Rooms are created lazily on first join
// and retained after they empty out; see DESIGN.md.
type roomTable struct {
	rooms map[string]*room
}

func newRoomTable() *roomTable {
	return &roomTable{rooms: make(map[string]*room)}
}

// ensure returns the named room, creating it if needed.
func (t *roomTable) ensure(name string) *room {
	r, ok := t.rooms[name]
	if !ok {
		r = &room{
			name:       name,
			spectators: make(map[Sender]struct{}),
			roles:      make(map[Sender]string),
		}
		t.rooms[name] = r
	}
	return r
}

// get returns the named room or nil.
func (t *roomTable) get(name string) *room {
	return t.rooms[name]
}

// resolveRoomName trims the requested name and falls back to the default
// room when nothing is left.
func resolveRoomName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultRoom
	}
	return name
}

// admit places the connection into the room and returns its label. Roles are
// a function of current occupancy, not of identity: an empty room hands out
// X, a room with one player hands out whichever of X/O that player does not
// hold, and a full room admits a spectator. If X leaves mid-game, the next
// joiner therefore fills the vacated X slot while the remaining player keeps
// O.
func (r *room) admit(conn Sender) string {
	if len(r.players) < maxPlayers {
		role := protocol.RoleX
		if len(r.players) == 1 && r.roles[r.players[0]] == protocol.RoleX {
			role = protocol.RoleO
		}
		r.players = append(r.players, conn)
		r.roles[conn] = role
		return role
	}
	r.spectators[conn] = struct{}{}
	return protocol.RoleSpectator
}

// evict removes the connection from every member set. No-op if it was not a
// member. The room itself is never torn down.
func (r *room) evict(conn Sender) {
	for i, p := range r.players {
		if p == conn {
			r.players = append(r.players[:i], r.players[i+1:]...)
			break
		}
	}
	delete(r.spectators, conn)
	delete(r.roles, conn)
}

// members returns players followed by spectators.
func (r *room) members() []Sender {
	all := make([]Sender, 0, len(r.players)+len(r.spectators))
	all = append(all, r.players...)
	for s := range r.spectators {
		all = append(all, s)
	}
	return all
}

// roster derives the current membership snapshot: player labels in join
// order plus a spectator count.
func (r *room) roster() protocol.Roster {
	labels := make([]string, 0, len(r.players))
	for _, p := range r.players {
		labels = append(labels, r.roles[p])
	}
	return protocol.Roster{
		T:          protocol.KindRoster,
		Room:       r.name,
		Players:    labels,
		Spectators: len(r.spectators),
	}
}
