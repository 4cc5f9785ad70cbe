// Package relay implements the room and role state machine of the LAN game
// relay: it tracks live connections, groups them into named rooms, assigns
// the first two occupants of a room the opposing player roles, and fans
// chat and game frames out to a room's membership.
package relay

import (
	"log"
	"sync"
	"time"

	"github.com/marjorv/lanrelay/internal/protocol"
)

// Sender is the transport handle for one live connection. The relay never
// blocks on it; implementations are expected to queue or drop.
type Sender interface {
	// Send delivers one serialized packet. Failures are connection-local
	// and never affect room state.
	Send(payload []byte) error
	// Open reports whether the connection is still in a deliverable state.
	Open() bool
}

// Relay owns the connection registry and the room table and orchestrates
// every join, leave, message, and disconnect event against them. All state
// transitions run under one mutex, so each event is handled atomically with
// respect to every other.
type Relay struct {
	mu    sync.Mutex
	conns *registry
	rooms *roomTable

	lanAddrs func() []string
	now      func() time.Time
}

// New constructs a relay. lanAddrs supplies the host addresses announced in
// hello packets; nil disables the announcement.
func New(lanAddrs func() []string) *Relay {
	if lanAddrs == nil {
		lanAddrs = func() []string { return nil }
	}
	return &Relay{
		conns:    newRegistry(),
		rooms:    newRoomTable(),
		lanAddrs: lanAddrs,
		now:      time.Now,
	}
}

// Connect registers a fresh connection and greets it with its assigned id
// and the host's LAN addresses. The connection starts in the default room
// but is not a member of any room until it joins one.
func (rl *Relay) Connect(conn Sender) string {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	meta := rl.conns.register(conn)
	rl.sendTo(conn, protocol.Hello{T: protocol.KindHello, ID: meta.id, IPs: rl.lanAddrs()})
	log.Printf("relay: conn %s connected", meta.id)
	return meta.id
}

// HandleFrame processes one inbound transport frame. Malformed or
// unrecognized frames are dropped silently; frames for connections that
// already disconnected are ignored.
func (rl *Relay) HandleFrame(conn Sender, data []byte) {
	frame, err := protocol.DecodeFrame(data)
	if err != nil {
		return
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	meta := rl.conns.lookup(conn)
	if meta == nil {
		return
	}

	switch frame.Kind {
	case protocol.KindJoin:
		rl.join(conn, meta, frame.Join.Room)
	case protocol.KindSay:
		rl.say(meta, frame.Say.Text)
	case protocol.KindGame:
		rl.game(meta, frame.Game)
	}
}

// Disconnect removes the connection from its room, tells the remaining
// members, and drops the registry entry. Safe to call more than once.
func (rl *Relay) Disconnect(conn Sender) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	meta := rl.conns.lookup(conn)
	if meta != nil {
		if r := rl.rooms.get(meta.room); r != nil {
			r.evict(conn)
			rl.broadcast(r, r.roster())
		}
		log.Printf("relay: conn %s disconnected", meta.id)
	}
	rl.conns.remove(conn)
}

// RosterSnapshot reports the current player labels and spectator count for a
// room, or false if the room has never been joined.
func (rl *Relay) RosterSnapshot(roomName string) (protocol.Roster, bool) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	r := rl.rooms.get(roomName)
	if r == nil {
		return protocol.Roster{}, false
	}
	return r.roster(), true
}

// join moves the connection into the target room. Re-joining the current
// room is allowed and re-runs the full leave+join sequence, which may hand
// the connection a different label if a player slot opened in between.
func (rl *Relay) join(conn Sender, meta *connMeta, target string) {
	if old := rl.rooms.get(meta.room); old != nil {
		old.evict(conn)
		rl.broadcast(old, old.roster())
	}

	name := resolveRoomName(target)
	r := rl.rooms.ensure(name)
	role := r.admit(conn)
	rl.conns.setRoom(conn, name)

	rl.sendTo(conn, protocol.Role{T: protocol.KindRole, Role: role, Room: name})
	rl.broadcast(r, r.roster())
	log.Printf("relay: conn %s joined room %q as %s", meta.id, name, role)
}

// say relays a chat line to the sender's room, sender included.
func (rl *Relay) say(meta *connMeta, text string) {
	r := rl.rooms.get(meta.room)
	if r == nil {
		return
	}
	rl.broadcast(r, protocol.Msg{
		T:    protocol.KindMsg,
		From: meta.id,
		Room: meta.room,
		Text: text,
		At:   rl.now().UnixMilli(),
	})
}

// game stamps a timestamp onto an opaque game frame and forwards it
// verbatim to the sender's room, sender included. Payload contents are
// never inspected.
func (rl *Relay) game(meta *connMeta, payload map[string]any) {
	r := rl.rooms.get(meta.room)
	if r == nil {
		return
	}
	payload["at"] = rl.now().UnixMilli()
	rl.broadcast(r, payload)
}

// broadcast attempts delivery to every current member of the room. Members
// whose transport is not deliverable are skipped, and per-recipient send
// failures never abort the remaining deliveries or touch membership.
func (rl *Relay) broadcast(r *room, packet any) {
	raw, err := protocol.Encode(packet)
	if err != nil {
		return
	}
	for _, member := range r.members() {
		if !member.Open() {
			continue
		}
		_ = member.Send(raw)
	}
}

// sendTo delivers a direct packet to one connection, best effort.
func (rl *Relay) sendTo(conn Sender, packet any) {
	raw, err := protocol.Encode(packet)
	if err != nil {
		return
	}
	_ = conn.Send(raw)
}
