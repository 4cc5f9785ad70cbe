package config

import (
	"os"
	"strconv"
	"time"
)

// ServerConfig holds settings for the relay server runtime.
type ServerConfig struct {
	ListenAddr      string
	WriteTimeout    time.Duration
	PongTimeout     time.Duration
	MaxFrameBytes   int64
	SendBufferSize  int
	ShutdownTimeout time.Duration
}

// ClientConfig holds settings for the terminal client.
type ClientConfig struct {
	ServerAddr    string
	CommandPrefix rune
}

// PingInterval derives the keepalive cadence from the pong timeout so pings
// always land before the peer's read deadline expires.
func (c ServerConfig) PingInterval() time.Duration {
	return c.PongTimeout * 9 / 10
}

// LoadServerConfig builds the server configuration from environment
// variables with sensible defaults.
func LoadServerConfig() ServerConfig {
	return ServerConfig{
		ListenAddr:      envOrDefault("LANRELAY_LISTEN_ADDR", ":8080"),
		WriteTimeout:    envDuration("LANRELAY_WRITE_TIMEOUT", 10*time.Second),
		PongTimeout:     envDuration("LANRELAY_PONG_TIMEOUT", 60*time.Second),
		MaxFrameBytes:   int64(envInt("LANRELAY_MAX_FRAME_BYTES", 1<<16)),
		SendBufferSize:  envInt("LANRELAY_SEND_BUFFER", 64),
		ShutdownTimeout: envDuration("LANRELAY_SHUTDOWN_TIMEOUT", 5*time.Second),
	}
}

// LoadClientConfig builds the client configuration from environment
// variables.
func LoadClientConfig() ClientConfig {
	prefix := envOrDefault("LANRELAY_COMMAND_PREFIX", "/")
	runes := []rune(prefix)
	commandPrefix := '/'
	if len(runes) > 0 {
		commandPrefix = runes[0]
	}
	return ClientConfig{
		ServerAddr:    envOrDefault("LANRELAY_SERVER_ADDR", "localhost:8080"),
		CommandPrefix: commandPrefix,
	}
}

func envOrDefault(key, value string) string {
	if env, ok := os.LookupEnv(key); ok {
		return env
	}
	return value
}

func envDuration(key string, def time.Duration) time.Duration {
	if env, ok := os.LookupEnv(key); ok {
		if parsed, err := time.ParseDuration(env); err == nil {
			return parsed
		}
	}
	return def
}

func envInt(key string, def int) int {
	if env, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(env); err == nil {
			return parsed
		}
	}
	return def
}
