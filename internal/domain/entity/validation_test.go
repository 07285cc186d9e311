package entity

import (
	"errors"
	"net"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateURL(t *testing.T) {
	lookupIP = func(host string) ([]net.IP, error) {
		switch host {
		case "internal.example":
			return []net.IP{net.ParseIP("10.1.2.3")}, nil
		case "public.example":
			return []net.IP{net.ParseIP("93.184.216.34")}, nil
		}
		return nil, errors.New("no such host")
	}
	t.Cleanup(func() { lookupIP = net.LookupIP })

	tests := []struct {
		name        string
		url         string
		denyPrivate bool
		wantErr     bool
	}{
		{"valid https", "https://public.example/feed.xml", true, false},
		{"empty", "", false, true},
		{"ftp scheme", "ftp://public.example/feed", false, true},
		{"missing host", "https:///feed", false, true},
		{"too long", "https://public.example/" + strings.Repeat("a", maxURLLength), false, true},
		{"loopback literal denied", "http://127.0.0.1/rss", true, true},
		{"loopback literal allowed", "http://127.0.0.1/rss", false, false},
		{"metadata endpoint", "http://169.254.169.254/latest", true, true},
		{"resolves private", "https://internal.example/rss", true, true},
		{"unresolvable host passes", "https://unknown.example/rss", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.url, tt.denyPrivate)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var vErr *ValidationError
			assert.True(t, errors.As(err, &vErr))
		})
	}
}

func TestIsPrivateIP(t *testing.T) {
	assert.True(t, IsPrivateIP(net.ParseIP("192.168.1.1")))
	assert.True(t, IsPrivateIP(net.ParseIP("172.20.0.1")))
	assert.True(t, IsPrivateIP(net.ParseIP("::1")))
	assert.True(t, IsPrivateIP(net.ParseIP("fd00::1")))
	assert.False(t, IsPrivateIP(net.ParseIP("8.8.8.8")))
}
