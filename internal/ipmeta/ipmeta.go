// Package ipmeta derives network classification metadata from a parsed
// IPv4 address. Nothing here touches the record store; every field is
// recomputed from the address itself on each request.
package ipmeta

import (
	"fmt"
	"net/netip"
)

// NetworkInfo mirrors the network block of an IP lookup response.
type NetworkInfo struct {
	IPAddress  string `json:"ip_address"`
	IPVersion  int    `json:"ip_version"`
	Compressed string `json:"compressed"`
	Exploded   string `json:"exploded"`
	Reverse    string `json:"reverse"`
	Multicast  bool   `json:"multicast"`
	Private    bool   `json:"private"`
	Global     bool   `json:"global"`
	Loopback   bool   `json:"loopback"`
}

// ParseIPv4 parses a dotted-quad string, rejecting anything that is not
// a plain IPv4 address (IPv6, zones, 4-in-6 forms).
func ParseIPv4(s string) (netip.Addr, error) {
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, err
	}
	if !addr.Is4() {
		return netip.Addr{}, fmt.Errorf("not an IPv4 address: %s", s)
	}
	return addr, nil
}

// Describe computes the classification metadata for an IPv4 address.
func Describe(addr netip.Addr) NetworkInfo {
	return NetworkInfo{
		IPAddress:  addr.String(),
		IPVersion:  4,
		Compressed: addr.String(),
		Exploded:   addr.String(),
		Reverse:    reversePointer(addr),
		Multicast:  addr.IsMulticast(),
		Private:    addr.IsPrivate(),
		Global:     isGlobal(addr),
		Loopback:   addr.IsLoopback(),
	}
}

// isGlobal reports whether the address is publicly routable: not in any
// of the private, loopback, link-local, multicast, or unspecified
// ranges.
func isGlobal(addr netip.Addr) bool {
	switch {
	case addr.IsPrivate(),
		addr.IsLoopback(),
		addr.IsLinkLocalUnicast(),
		addr.IsLinkLocalMulticast(),
		addr.IsMulticast(),
		addr.IsUnspecified():
		return false
	}
	return true
}

// reversePointer builds the in-addr.arpa name for an IPv4 address.
func reversePointer(addr netip.Addr) string {
	b := addr.As4()
	return fmt.Sprintf("%d.%d.%d.%d.in-addr.arpa", b[3], b[2], b[1], b[0])
}
