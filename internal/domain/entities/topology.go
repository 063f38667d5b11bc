package entities

// Limits of the 802.1Q VLAN id space usable for configuration.
const (
	MinVlanID = 1
	MaxVlanID = 4094

	// MinStartVlan keeps VLAN 1 (the factory default VLAN) out of the access range.
	MinStartVlan = 2

	// MaxSwitchPorts bounds the interface numbers a document may use (access + trunk).
	MaxSwitchPorts = 4096
)

// Defaults applied when a value is left empty in the inventory or on the command line.
const (
	DefaultManagementVlan       = 10
	DefaultManagementSubnetBase = "10.0.10.1"
	DefaultHostnamePrefix       = "SW"
	DefaultInterfacePrefix      = "GigabitEthernet0/"
)

// TrunkAllowedMode selects how the allowed VLAN list of a trunk is rendered.
type TrunkAllowedMode string

const (
	// TrunkAllowAll carries every VLAN on the trunk ("allowed vlan all").
	TrunkAllowAll TrunkAllowedMode = "all"
	// TrunkAllowExplicit carries exactly the access VLAN range.
	TrunkAllowExplicit TrunkAllowedMode = "explicit"
)

// IsValid reports whether the mode is one of the known modes.
func (m TrunkAllowedMode) IsValid() bool {
	return m == TrunkAllowAll || m == TrunkAllowExplicit
}

// TopologyParams describes one fleet. It is built once and passed by value.
type TopologyParams struct {
	SwitchCount          int              `yaml:"switch_count" json:"switch_count"`
	StartVlan            int              `yaml:"start_vlan" json:"start_vlan"`
	AccessPortCount      int              `yaml:"access_ports" json:"access_ports"`
	TrunkPortCount       int              `yaml:"trunk_ports" json:"trunk_ports"`
	ManagementVlan       int              `yaml:"management_vlan" json:"management_vlan"`
	ManagementSubnetBase string           `yaml:"management_ip_base" json:"management_ip_base"`
	TrunkAllowed         TrunkAllowedMode `yaml:"trunk_allowed" json:"trunk_allowed"`
	HostnamePrefix       string           `yaml:"hostname_prefix" json:"hostname_prefix"`
	InterfacePrefix      string           `yaml:"interface_prefix" json:"interface_prefix"`
	ManagementACL        bool             `yaml:"management_acl" json:"management_acl"`
	IPRouting            bool             `yaml:"ip_routing" json:"ip_routing"`
	ReuseManagementVlan  bool             `yaml:"reuse_management_vlan" json:"reuse_management_vlan"`
	// MaxPorts bounds access+trunk ports; 0 disables the check.
	MaxPorts int `yaml:"max_ports" json:"max_ports"`
}

// WithDefaults returns a copy with empty optional fields filled in.
func (p TopologyParams) WithDefaults() TopologyParams {
	if p.ManagementVlan == 0 {
		p.ManagementVlan = DefaultManagementVlan
	}
	if p.ManagementSubnetBase == "" {
		p.ManagementSubnetBase = DefaultManagementSubnetBase
	}
	if p.TrunkAllowed == "" {
		p.TrunkAllowed = TrunkAllowAll
	}
	if p.HostnamePrefix == "" {
		p.HostnamePrefix = DefaultHostnamePrefix
	}
	if p.InterfacePrefix == "" {
		p.InterfacePrefix = DefaultInterfacePrefix
	}
	return p
}

// LastAccessVlan returns the highest VLAN id used by access ports.
// With no access ports it is StartVlan-1. Only meaningful once the access
// count has been checked against the VLAN space.
func (p TopologyParams) LastAccessVlan() int {
	return p.StartVlan + p.AccessPortCount - 1
}

// InAccessRange reports whether vlan is one of the access VLANs.
func (p TopologyParams) InAccessRange(vlan int) bool {
	return p.AccessPortCount > 0 && vlan >= p.StartVlan && vlan <= p.LastAccessVlan()
}

// AccessVlans returns the access VLAN ids in ascending order.
func (p TopologyParams) AccessVlans() []int {
	vlans := make([]int, 0, max(p.AccessPortCount, 0))
	for i := 0; i < p.AccessPortCount; i++ {
		vlans = append(vlans, p.StartVlan+i)
	}
	return vlans
}
