package services

import (
	"fmt"
	"net/netip"

	"github.com/carlosrabelo/swgen/internal/domain/entities"
)

// DeriveIdentity names switch index (1-based) and places its management
// address index hosts above ManagementSubnetBase, inside the base's /24.
func DeriveIdentity(index int, params entities.TopologyParams) (entities.SwitchIdentity, error) {
	params = params.WithDefaults()
	if index < 1 {
		return entities.SwitchIdentity{}, entities.NewValidationError("index", index, "must be at least 1")
	}

	base, err := parseSubnetBase(params.ManagementSubnetBase)
	if err != nil {
		return entities.SwitchIdentity{}, err
	}

	octets := base.As4()
	host := int(octets[3]) + index
	if host > 254 {
		return entities.SwitchIdentity{}, entities.NewValidationError("switchCount", index,
			fmt.Sprintf("management address for switch %d leaves %s/24", index, params.ManagementSubnetBase))
	}
	octets[3] = byte(host)

	return entities.SwitchIdentity{
		Index:        index,
		Hostname:     fmt.Sprintf("%s%d", params.HostnamePrefix, index),
		ManagementIP: netip.AddrFrom4(octets).String(),
	}, nil
}

// ManagementCapacity returns how many switches get an address between base
// and the last host (.254) of its /24.
func ManagementCapacity(base string) (int, error) {
	addr, err := parseSubnetBase(base)
	if err != nil {
		return 0, err
	}
	return max(254-int(addr.As4()[3]), 0), nil
}

func parseSubnetBase(base string) (netip.Addr, error) {
	addr, err := netip.ParseAddr(base)
	if err != nil || !addr.Is4() {
		return netip.Addr{}, entities.NewValidationError("managementSubnetBase", base, "must be an IPv4 address")
	}
	return addr, nil
}
