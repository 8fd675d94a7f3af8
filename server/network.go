package server

import (
	"net"
)

// GetLANIPs returns all local IPv4 addresses (non-loopback).
func GetLANIPs() ([]string, error) {
	var ips []string

	interfaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}

	for _, iface := range interfaces {
		// Skip down or loopback interfaces
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			var ip net.IP
			switch v := addr.(type) {
			case *net.IPNet:
				ip = v.IP
			case *net.IPAddr:
				ip = v.IP
			}

			if ip != nil && ip.To4() != nil && !ip.IsLoopback() {
				ips = append(ips, ip.String())
			}
		}
	}

	return ips, nil
}

// reachableHost returns a host clients can dial for a server bound to host.
// Wildcard binds resolve to the first LAN address, falling back to localhost.
func reachableHost(host string) string {
	if host != "" {
		if ip := net.ParseIP(host); ip == nil || !ip.IsUnspecified() {
			return host
		}
	}

	if ips, err := GetLANIPs(); err == nil && len(ips) > 0 {
		return ips[0]
	}
	return "localhost"
}
