package services

import (
	"fmt"
	"net/netip"
	"strings"

	"github.com/carlosrabelo/swgen/internal/domain/entities"
)

// ValidateTopology checks every generation constraint and returns the first
// violation as a *entities.ValidationError. Values are never adjusted.
func ValidateTopology(p entities.TopologyParams) error {
	if p.AccessPortCount < 0 {
		return entities.NewValidationError("accessPortCount", p.AccessPortCount, "must not be negative")
	}
	if p.TrunkPortCount < 0 {
		return entities.NewValidationError("trunkPortCount", p.TrunkPortCount, "must not be negative")
	}
	if p.StartVlan < entities.MinStartVlan || p.StartVlan > entities.MaxVlanID {
		return entities.NewValidationError("startVlan", p.StartVlan,
			fmt.Sprintf("must be between %d and %d", entities.MinStartVlan, entities.MaxVlanID))
	}
	// compared before adding so a huge count cannot wrap past the check
	if room := entities.MaxVlanID - p.StartVlan + 1; p.AccessPortCount > room {
		return entities.NewValidationError("accessPortCount", p.AccessPortCount,
			fmt.Sprintf("only %d VLANs fit between %d and %d", room, p.StartVlan, entities.MaxVlanID))
	}
	if room := entities.MaxSwitchPorts - p.AccessPortCount; p.TrunkPortCount > room {
		return entities.NewValidationError("trunkPortCount", p.TrunkPortCount,
			fmt.Sprintf("%d access + %d trunk ports exceed the %d interfaces a switch can number", p.AccessPortCount, p.TrunkPortCount, entities.MaxSwitchPorts))
	}
	if p.ManagementVlan < entities.MinVlanID || p.ManagementVlan > entities.MaxVlanID {
		return entities.NewValidationError("managementVlan", p.ManagementVlan,
			fmt.Sprintf("must be between %d and %d", entities.MinVlanID, entities.MaxVlanID))
	}
	if p.InAccessRange(p.ManagementVlan) && !p.ReuseManagementVlan {
		return entities.NewValidationError("managementVlan", p.ManagementVlan,
			fmt.Sprintf("falls inside access range %d-%d", p.StartVlan, p.LastAccessVlan()))
	}
	if !p.TrunkAllowed.IsValid() {
		return entities.NewValidationError("trunkAllowed", p.TrunkAllowed, "must be 'all' or 'explicit'")
	}
	// a trunk carrying every VLAN would also carry the reused VLAN tagged while it is native
	if p.InAccessRange(p.ManagementVlan) && p.TrunkPortCount > 0 && p.TrunkAllowed == entities.TrunkAllowAll {
		return entities.NewValidationError("trunkAllowed", p.TrunkAllowed,
			fmt.Sprintf("must be 'explicit' when management VLAN %d is reused as an access VLAN", p.ManagementVlan))
	}
	if p.MaxPorts < 0 {
		return entities.NewValidationError("maxPorts", p.MaxPorts, "must not be negative")
	}
	if total := p.AccessPortCount + p.TrunkPortCount; p.MaxPorts > 0 && total > p.MaxPorts {
		return entities.NewValidationError("trunkPortCount", p.TrunkPortCount,
			fmt.Sprintf("%d access + %d trunk ports exceed the %d ports of the switch", p.AccessPortCount, p.TrunkPortCount, p.MaxPorts))
	}
	if strings.TrimSpace(p.InterfacePrefix) == "" {
		return entities.NewValidationError("interfacePrefix", p.InterfacePrefix, "must not be empty")
	}
	return nil
}

// ValidateIdentity checks the per-switch values the generator emits verbatim.
func ValidateIdentity(id entities.SwitchIdentity) error {
	if id.Hostname == "" {
		return entities.NewValidationError("hostname", id.Hostname, "must not be empty")
	}
	if strings.ContainsAny(id.Hostname, " \t\r\n") {
		return entities.NewValidationError("hostname", id.Hostname, "must not contain whitespace")
	}
	addr, err := netip.ParseAddr(id.ManagementIP)
	if err != nil || !addr.Is4() {
		return entities.NewValidationError("managementIp", id.ManagementIP, "must be an IPv4 address")
	}
	return nil
}

// ValidateFleet checks the fleet-wide parameters that do not affect a single document:
// the switch count must fit in the management /24 above ManagementSubnetBase.
func ValidateFleet(p entities.TopologyParams) error {
	p = p.WithDefaults()
	if p.SwitchCount < 1 {
		return entities.NewValidationError("switchCount", p.SwitchCount, "must be at least 1")
	}
	capacity, err := ManagementCapacity(p.ManagementSubnetBase)
	if err != nil {
		return err
	}
	if p.SwitchCount > capacity {
		return entities.NewValidationError("switchCount", p.SwitchCount,
			fmt.Sprintf("only %d management addresses are left in %s/24", capacity, p.ManagementSubnetBase))
	}
	return ValidateTopology(p)
}
