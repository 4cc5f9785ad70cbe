// Package server exposes the relay over WebSocket alongside a small plain
// HTTP surface.
package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/marjorv/lanrelay/internal/config"
	"github.com/marjorv/lanrelay/internal/netinfo"
	"github.com/marjorv/lanrelay/internal/relay"
)

// Peers on the LAN connect from arbitrary origins (file://, app shells), so
// the handshake accepts all of them.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// App coordinates the HTTP listener and per-connection session lifecycle.
type App struct {
	cfg   config.ServerConfig
	relay *relay.Relay
}

// NewApp constructs a server instance around an existing relay.
func NewApp(cfg config.ServerConfig, rl *relay.Relay) *App {
	return &App{cfg: cfg, relay: rl}
}

// Run serves until the context is canceled, then drains with the configured
// shutdown timeout.
func (a *App) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", handleInfo)
	mux.HandleFunc("/health", handleHealth)
	mux.HandleFunc("/ws", a.handleSocket)

	srv := &http.Server{Addr: a.cfg.ListenAddr, Handler: mux}

	errCh := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		errCh <- err
	}()

	log.Printf("relay listening on ws://%s/ws", a.cfg.ListenAddr)
	if addrs := netinfo.LANAddrs(); len(addrs) > 0 {
		log.Printf("LAN addresses: %s", strings.Join(addrs, ", "))
	}

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return <-errCh
	}
}

func (a *App) handleSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed for %s: %v", r.RemoteAddr, err)
		return
	}

	sess := newSession(ws, a.cfg.SendBufferSize)
	go sess.writePump(a.cfg)

	a.relay.Connect(sess)
	defer func() {
		a.relay.Disconnect(sess)
		sess.close()
	}()

	sess.readLoop(a.relay, a.cfg)
}

func handleInfo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte("LAN relay running.\n"))
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
