package server

import (
	"errors"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/marjorv/lanrelay/internal/config"
	"github.com/marjorv/lanrelay/internal/relay"
)

var errSendBufferFull = errors.New("send buffer full")

// session adapts one WebSocket connection to the relay's Sender interface
// and owns its outbound queue.
type session struct {
	conn      *websocket.Conn
	sendCh    chan []byte
	closed    chan struct{}
	closeOnce sync.Once
}

func newSession(conn *websocket.Conn, bufferSize int) *session {
	return &session{
		conn:   conn,
		sendCh: make(chan []byte, bufferSize),
		closed: make(chan struct{}),
	}
}

// Send queues one packet for delivery. It never blocks: a full buffer or a
// closed session reports an error the relay is free to ignore.
func (s *session) Send(payload []byte) error {
	select {
	case <-s.closed:
		return net.ErrClosed
	default:
	}
	select {
	case s.sendCh <- payload:
		return nil
	default:
		return errSendBufferFull
	}
}

// Open reports whether the session can still accept packets.
func (s *session) Open() bool {
	select {
	case <-s.closed:
		return false
	default:
		return true
	}
}

func (s *session) close() {
	s.closeOnce.Do(func() {
		close(s.closed)
		_ = s.conn.Close()
	})
}

// writePump drains the send queue onto the socket with write deadlines and
// keeps the connection alive with periodic pings.
func (s *session) writePump(cfg config.ServerConfig) {
	ticker := time.NewTicker(cfg.PingInterval())
	defer func() {
		ticker.Stop()
		s.close()
	}()

	for {
		select {
		case <-s.closed:
			return
		case payload := <-s.sendCh:
			_ = s.conn.SetWriteDeadline(time.Now().Add(cfg.WriteTimeout))
			if err := s.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(cfg.WriteTimeout))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readLoop feeds inbound frames to the relay until the peer goes away.
func (s *session) readLoop(rl *relay.Relay, cfg config.ServerConfig) {
	s.conn.SetReadLimit(cfg.MaxFrameBytes)
	_ = s.conn.SetReadDeadline(time.Now().Add(cfg.PongTimeout))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(cfg.PongTimeout))
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			return
		}
		rl.HandleFrame(s, data)
	}
}
