package ios

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/carlosrabelo/swgen/internal/domain/entities"
	"github.com/carlosrabelo/swgen/internal/domain/ports"
)

const driverName = "ios"

// Port-security policy attached to every access port.
const (
	PortSecurityMaximum   = 2
	PortSecurityViolation = "restrict"
)

// ManagementACLNumber is the extended access list guarding the management interface.
const ManagementACLNumber = 110

const managementMask = "255.255.255.0"

// Driver implements the SwitchDriver behaviour for Cisco IOS switches.
type Driver struct{}

// New creates a new IOS driver instance.
func New() *Driver {
	return &Driver{}
}

// Name returns the canonical platform identifier.
func (d *Driver) Name() string {
	return driverName
}

// Detect inspects the device to determine whether it is running IOS.
func (d *Driver) Detect(repo ports.SwitchRepository) (bool, error) {
	if !repo.IsConnected() {
		if err := repo.Connect(); err != nil {
			return false, err
		}
	}
	output, err := repo.ExecuteCommand("show version")
	if err != nil {
		return false, err
	}
	return strings.Contains(strings.ToLower(output), "cisco ios"), nil
}

// GetAuthenticationSequence returns the username/password/enable prompts of an IOS login.
func (d *Driver) GetAuthenticationSequence(username, password, enablePassword string) []entities.AuthPrompt {
	return []entities.AuthPrompt{
		{WaitFor: "Username:", SendCmd: username + "\n"},
		{WaitFor: "Password:", SendCmd: password + "\n"},
		{WaitFor: ">", SendCmd: "enable\n"},
		{WaitFor: "Password:", SendCmd: enablePassword + "\n"},
		{WaitFor: "#", SendCmd: "terminal length 0\n"},
		{WaitFor: "#", SendCmd: ""},
	}
}

// IdentityCommands names the device.
func (d *Driver) IdentityCommands(hostname string, ipRouting bool) []string {
	cmds := []string{fmt.Sprintf("hostname %s", hostname)}
	if ipRouting {
		cmds = append(cmds, "ip routing")
	}
	return append(cmds, "no ip domain-lookup")
}

// ManagementCommands defines the management VLAN and its addressed SVI.
func (d *Driver) ManagementCommands(vlan int, ip string) []string {
	return []string{
		fmt.Sprintf("vlan %d", vlan),
		" name Management",
		"exit",
		fmt.Sprintf("interface vlan %d", vlan),
		fmt.Sprintf(" ip address %s %s", ip, managementMask),
		" no shutdown",
		"exit",
	}
}

// VLANCommands defines a single VLAN.
func (d *Driver) VLANCommands(vlan int, name string) []string {
	return []string{
		fmt.Sprintf("vlan %d", vlan),
		fmt.Sprintf(" name %s", name),
		"exit",
	}
}

// AccessPortCommands binds an interface to its access VLAN with port security and portfast.
func (d *Driver) AccessPortCommands(port entities.PortAssignment) []string {
	return []string{
		fmt.Sprintf("interface %s", port.InterfaceName),
		fmt.Sprintf(" description elev%d", port.VlanID),
		" switchport mode access",
		fmt.Sprintf(" switchport access vlan %d", port.VlanID),
		" switchport port-security",
		fmt.Sprintf(" switchport port-security maximum %d", PortSecurityMaximum),
		fmt.Sprintf(" switchport port-security violation %s", PortSecurityViolation),
		" spanning-tree portfast",
		"exit",
	}
}

// TrunkPortCommands configures an 802.1Q trunk. Encapsulation precedes the
// mode change, which IOS rejects on ISL-capable hardware otherwise.
func (d *Driver) TrunkPortCommands(port entities.PortAssignment) []string {
	return []string{
		fmt.Sprintf("interface %s", port.InterfaceName),
		" switchport trunk encapsulation dot1q",
		" switchport mode trunk",
		fmt.Sprintf(" switchport trunk native vlan %d", port.NativeVlan),
		fmt.Sprintf(" switchport trunk allowed vlan %s", allowedList(port)),
		"exit",
	}
}

// ManagementACLCommands limits the management SVI to traffic for its own address.
func (d *Driver) ManagementACLCommands(vlan int, ip string) []string {
	return []string{
		fmt.Sprintf("access-list %d permit ip any host %s", ManagementACLNumber, ip),
		fmt.Sprintf("access-list %d deny ip any any", ManagementACLNumber),
		fmt.Sprintf("interface vlan %d", vlan),
		fmt.Sprintf(" ip access-group %d in", ManagementACLNumber),
		"exit",
	}
}

// ConfigModeCommands enters global configuration mode.
func (d *Driver) ConfigModeCommands() []string {
	return []string{"configure terminal"}
}

// SaveCommands leaves configuration mode and persists the running configuration.
func (d *Driver) SaveCommands() []string {
	return []string{"end", "write memory"}
}

func allowedList(port entities.PortAssignment) string {
	if port.AllowAll {
		return "all"
	}
	if len(port.AllowedVlans) == 0 {
		return "none"
	}
	return CompactRange(port.AllowedVlans)
}

// CompactRange renders ascending VLAN ids in IOS range notation:
// [11 12 13 20] -> "11-13,20". The input must already be sorted and unique.
func CompactRange(vlans []int) string {
	if len(vlans) == 0 {
		return ""
	}
	var parts []string
	start, end := vlans[0], vlans[0]
	for _, v := range vlans[1:] {
		if v == end+1 {
			end = v
			continue
		}
		parts = append(parts, formatRange(start, end))
		start, end = v, v
	}
	parts = append(parts, formatRange(start, end))
	return strings.Join(parts, ",")
}

func formatRange(start, end int) string {
	if start == end {
		return strconv.Itoa(start)
	}
	return fmt.Sprintf("%d-%d", start, end)
}
