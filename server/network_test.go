package server

import (
	"net"
	"testing"
)

func TestGetLANIPs(t *testing.T) {
	ips, err := GetLANIPs()
	if err != nil {
		t.Fatalf("GetLANIPs failed: %v", err)
	}

	t.Logf("Found LAN IPs: %v", ips)

	for _, ip := range ips {
		parsed := net.ParseIP(ip)
		if parsed == nil || parsed.To4() == nil {
			t.Errorf("Expected IPv4 address, got %q", ip)
		}
		if parsed != nil && parsed.IsLoopback() {
			t.Errorf("Expected loopback addresses to be skipped, got %q", ip)
		}
	}
}

func TestReachableHost(t *testing.T) {
	if got := reachableHost("127.0.0.1"); got != "127.0.0.1" {
		t.Errorf("reachableHost(127.0.0.1) = %q", got)
	}
	if got := reachableHost("nfc.local"); got != "nfc.local" {
		t.Errorf("reachableHost(nfc.local) = %q", got)
	}

	for _, wildcard := range []string{"", "0.0.0.0", "::"} {
		got := reachableHost(wildcard)
		if got == "" || got == "0.0.0.0" || got == "::" {
			t.Errorf("reachableHost(%q) = %q, want a dialable host", wildcard, got)
		}
	}
}
