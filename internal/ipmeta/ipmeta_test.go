package ipmeta_test

import (
	"testing"

	"github.com/craigderington/m3data-api/internal/ipmeta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIPv4(t *testing.T) {
	t.Run("accepts dotted quads", func(t *testing.T) {
		for _, good := range []string{"1.2.3.4", "10.0.0.1", "255.255.255.255", "0.0.0.0"} {
			addr, err := ipmeta.ParseIPv4(good)
			require.NoError(t, err, "input %q", good)
			assert.Equal(t, good, addr.String())
		}
	})

	t.Run("rejects everything else", func(t *testing.T) {
		for _, bad := range []string{"999.1.2.3", "1.2.3", "1.2.3.4.5", "::1", "2001:db8::1", "example.com", ""} {
			_, err := ipmeta.ParseIPv4(bad)
			assert.Error(t, err, "input %q", bad)
		}
	})
}

func TestDescribe(t *testing.T) {
	cases := []struct {
		ip        string
		multicast bool
		private   bool
		global    bool
		loopback  bool
		reverse   string
	}{
		{"8.8.8.8", false, false, true, false, "8.8.8.8.in-addr.arpa"},
		{"1.2.3.4", false, false, true, false, "4.3.2.1.in-addr.arpa"},
		{"10.0.0.1", false, true, false, false, "1.0.0.10.in-addr.arpa"},
		{"192.168.1.20", false, true, false, false, "20.1.168.192.in-addr.arpa"},
		{"127.0.0.1", false, false, false, true, "1.0.0.127.in-addr.arpa"},
		{"224.0.0.1", true, false, false, false, "1.0.0.224.in-addr.arpa"},
		{"169.254.0.5", false, false, false, false, "5.0.254.169.in-addr.arpa"},
	}

	for _, tc := range cases {
		t.Run(tc.ip, func(t *testing.T) {
			addr, err := ipmeta.ParseIPv4(tc.ip)
			require.NoError(t, err)

			info := ipmeta.Describe(addr)
			assert.Equal(t, tc.ip, info.IPAddress)
			assert.Equal(t, 4, info.IPVersion)
			assert.Equal(t, tc.ip, info.Compressed)
			assert.Equal(t, tc.ip, info.Exploded)
			assert.Equal(t, tc.reverse, info.Reverse)
			assert.Equal(t, tc.multicast, info.Multicast)
			assert.Equal(t, tc.private, info.Private)
			assert.Equal(t, tc.global, info.Global)
			assert.Equal(t, tc.loopback, info.Loopback)
		})
	}
}
