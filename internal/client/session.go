package client

import (
	"context"
	"net/url"
	"sync"

	"github.com/gorilla/websocket"
)

// Session manages the WebSocket link to a relay server. Inbound frames are
// pumped onto a channel the tea program drains; the channel closes when the
// link drops.
type Session struct {
	conn      *websocket.Conn
	frames    chan []byte
	writeMu   sync.Mutex
	closeOnce sync.Once
}

// Dial connects to the relay's /ws endpoint and starts the read pump.
func Dial(ctx context.Context, addr string) (*Session, error) {
	u := url.URL{Scheme: "ws", Host: addr, Path: "/ws"}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, err
	}
	s := &Session{
		conn:   conn,
		frames: make(chan []byte, 32),
	}
	go s.readLoop()
	return s, nil
}

// Frames exposes the inbound frame stream.
func (s *Session) Frames() <-chan []byte {
	return s.frames
}

// Send writes one packet to the relay.
func (s *Session) Send(v any) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteJSON(v)
}

// Close tears the link down. Safe to call more than once.
func (s *Session) Close() error {
	var err error
	s.closeOnce.Do(func() {
		err = s.conn.Close()
	})
	return err
}

func (s *Session) readLoop() {
	defer close(s.frames)
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			return
		}
		s.frames <- data
	}
}
