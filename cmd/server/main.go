package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/marjorv/lanrelay/internal/config"
	"github.com/marjorv/lanrelay/internal/netinfo"
	"github.com/marjorv/lanrelay/internal/relay"
	"github.com/marjorv/lanrelay/internal/server"
)

func main() {
	cfg := config.LoadServerConfig()

	rl := relay.New(netinfo.LANAddrs)
	app := server.NewApp(cfg, rl)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("server shutdown: %v", err)
	}
}
