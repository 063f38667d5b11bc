package entities

import "fmt"

// PortRole is the switchport mode assigned to an interface
type PortRole string

const (
	RoleAccess PortRole = "access"
	RoleTrunk  PortRole = "trunk"
)

// PortAssignment is the computed role of one physical interface.
// VlanID is set for access ports; NativeVlan and AllowedVlans for trunks.
type PortAssignment struct {
	Number        int      `yaml:"number" json:"number"`
	InterfaceName string   `yaml:"interface" json:"interface"`
	Role          PortRole `yaml:"role" json:"role"`
	VlanID        int      `yaml:"vlan,omitempty" json:"vlan,omitempty"`
	NativeVlan    int      `yaml:"native_vlan,omitempty" json:"native_vlan,omitempty"`
	// AllowAll is true when the trunk carries every VLAN; AllowedVlans is then empty.
	AllowAll     bool  `yaml:"allow_all,omitempty" json:"allow_all,omitempty"`
	AllowedVlans []int `yaml:"allowed_vlans,omitempty" json:"allowed_vlans,omitempty"`
}

// InterfaceName joins the platform prefix and the port number.
func InterfaceName(prefix string, number int) string {
	return fmt.Sprintf("%s%d", prefix, number)
}
