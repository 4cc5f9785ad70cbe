// Package netinfo discovers the host addresses a LAN peer can reach.
package netinfo

import "net"

// LANAddrs returns the non-loopback IPv4 addresses of all up interfaces.
// Errors enumerating interfaces yield an empty list; the hello packet is
// still useful without addresses.
func LANAddrs() []string {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil
	}

	var addrs []string
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		ifaceAddrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range ifaceAddrs {
			ipNet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			ip := ipNet.IP.To4()
			if ip == nil || ip.IsLoopback() {
				continue
			}
			addrs = append(addrs, ip.String())
		}
	}
	return addrs
}
