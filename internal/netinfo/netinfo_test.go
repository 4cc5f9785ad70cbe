package netinfo

import (
	"net"
	"testing"
)

func TestLANAddrsWellFormed(t *testing.T) {
	for _, addr := range LANAddrs() {
		ip := net.ParseIP(addr)
		if ip == nil {
			t.Errorf("LANAddrs returned %q, not an IP", addr)
			continue
		}
		if ip.To4() == nil {
			t.Errorf("LANAddrs returned %q, not IPv4", addr)
		}
		if ip.IsLoopback() {
			t.Errorf("LANAddrs returned loopback %q", addr)
		}
	}
}
