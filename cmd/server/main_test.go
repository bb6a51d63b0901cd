package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTrustedOrigins(t *testing.T) {
	tests := []struct {
		addr string
		want []string
	}{
		{":8080", []string{"localhost:8080", "127.0.0.1:8080"}},
		{"0.0.0.0:9000", []string{"localhost:9000", "127.0.0.1:9000"}},
		{"planner.lan:8080", []string{"planner.lan:8080"}},
		{"not-an-addr", nil},
	}
	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			require.Equal(t, tt.want, trustedOrigins(tt.addr))
		})
	}
}
