package config

import (
	"testing"
	"time"
)

func TestLoadServerConfigDefaults(t *testing.T) {
	cfg := LoadServerConfig()
	if cfg.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q", cfg.ListenAddr)
	}
	if cfg.PongTimeout != 60*time.Second {
		t.Errorf("PongTimeout = %v", cfg.PongTimeout)
	}
	if cfg.SendBufferSize != 64 {
		t.Errorf("SendBufferSize = %d", cfg.SendBufferSize)
	}
}

func TestLoadServerConfigOverrides(t *testing.T) {
	t.Setenv("LANRELAY_LISTEN_ADDR", "0.0.0.0:9999")
	t.Setenv("LANRELAY_PONG_TIMEOUT", "30s")
	t.Setenv("LANRELAY_SEND_BUFFER", "16")

	cfg := LoadServerConfig()
	if cfg.ListenAddr != "0.0.0.0:9999" {
		t.Errorf("ListenAddr = %q", cfg.ListenAddr)
	}
	if cfg.PongTimeout != 30*time.Second {
		t.Errorf("PongTimeout = %v", cfg.PongTimeout)
	}
	if cfg.SendBufferSize != 16 {
		t.Errorf("SendBufferSize = %d", cfg.SendBufferSize)
	}
}

func TestPingIntervalStaysUnderPongTimeout(t *testing.T) {
	cfg := ServerConfig{PongTimeout: 60 * time.Second}
	if got := cfg.PingInterval(); got >= cfg.PongTimeout {
		t.Errorf("PingInterval() = %v, must undercut %v", got, cfg.PongTimeout)
	}
}

func TestLoadClientConfigPrefix(t *testing.T) {
	t.Setenv("LANRELAY_COMMAND_PREFIX", ":")
	cfg := LoadClientConfig()
	if cfg.CommandPrefix != ':' {
		t.Errorf("CommandPrefix = %q", cfg.CommandPrefix)
	}
}

func TestInvalidDurationFallsBack(t *testing.T) {
	t.Setenv("LANRELAY_WRITE_TIMEOUT", "soon")
	cfg := LoadServerConfig()
	if cfg.WriteTimeout != 10*time.Second {
		t.Errorf("WriteTimeout = %v, want default", cfg.WriteTimeout)
	}
}
