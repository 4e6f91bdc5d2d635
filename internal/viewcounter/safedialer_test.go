package viewcounter

import (
	"errors"
	"net/netip"
	"testing"
)

func TestIsBlockedIP(t *testing.T) {
	tests := []struct {
		ip      string
		blocked bool
	}{
		{ip: "127.0.0.1", blocked: true},
		{ip: "::1", blocked: true},
		{ip: "10.0.0.1", blocked: true},
		{ip: "172.16.0.1", blocked: true},
		{ip: "192.168.1.1", blocked: true},
		{ip: "169.254.169.254", blocked: true},
		{ip: "fe80::1", blocked: true},
		{ip: "100.64.0.1", blocked: true},
		{ip: "192.0.2.1", blocked: true},
		{ip: "198.18.0.1", blocked: true},
		{ip: "0.0.0.0", blocked: true},
		{ip: "::ffff:127.0.0.1", blocked: true},
		{ip: "::ffff:8.8.8.8", blocked: false},
		{ip: "8.8.8.8", blocked: false},
		{ip: "1.1.1.1", blocked: false},
		{ip: "2606:4700:4700::1111", blocked: false},
	}

	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			if got := isBlockedIP(netip.MustParseAddr(tt.ip)); got != tt.blocked {
				t.Errorf("isBlockedIP(%s) = %v, want %v", tt.ip, got, tt.blocked)
			}
		})
	}
}

func TestBlockPrivateAddresses(t *testing.T) {
	tests := []struct {
		address string
		wantErr bool
	}{
		{address: "8.8.8.8:443", wantErr: false},
		{address: "127.0.0.1:8080", wantErr: true},
		{address: "[::1]:80", wantErr: true},
		{address: "not-an-address", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.address, func(t *testing.T) {
			err := blockPrivateAddresses("tcp", tt.address, nil)
			if (err != nil) != tt.wantErr {
				t.Fatalf("blockPrivateAddresses(%q) error = %v, wantErr %v", tt.address, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errBlockedAddress) {
				t.Errorf("error = %v, want wrapping %v", err, errBlockedAddress)
			}
		})
	}
}
