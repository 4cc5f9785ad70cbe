package protocol

// Kind discriminates wire packets via the "t" field.
type Kind string

const (
	KindHello  Kind = "hello"
	KindJoin   Kind = "join"
	KindRole   Kind = "role"
	KindRoster Kind = "roster"
	KindSay    Kind = "say"
	KindMsg    Kind = "msg"
	KindGame   Kind = "game"
)

// Role labels assigned on join. The first two occupants of a room play,
// everybody else watches.
const (
	RoleX         = "X"
	RoleO         = "O"
	RoleSpectator = "S"
)

// Hello is sent once per connection immediately after connect.
type Hello struct {
	T   Kind     `json:"t"`
	ID  string   `json:"id"`
	IPs []string `json:"ips"`
}

// Join asks the relay to move the connection into a room.
type Join struct {
	T    Kind   `json:"t"`
	Room string `json:"room"`
}

// Role tells the joiner which slot it was assigned.
type Role struct {
	T    Kind   `json:"t"`
	Role string `json:"role"`
	Room string `json:"room"`
}

// Roster is broadcast to a room on any membership change.
type Roster struct {
	T          Kind     `json:"t"`
	Room       string   `json:"room"`
	Players    []string `json:"players"`
	Spectators int      `json:"spectators"`
}

// Say carries an inbound chat line.
type Say struct {
	T    Kind   `json:"t"`
	Text string `json:"text"`
}

// Msg is the relayed form of Say.
type Msg struct {
	T    Kind   `json:"t"`
	From string `json:"from"`
	Room string `json:"room"`
	Text string `json:"text"`
	At   int64  `json:"at"`
}
