package entities

import "strings"

// BlockKind identifies a section of a generated configuration.
type BlockKind string

const (
	BlockIdentity   BlockKind = "identity"
	BlockManagement BlockKind = "management"
	BlockVlan       BlockKind = "vlan"
	BlockAccessPort BlockKind = "access-port"
	BlockTrunkPort  BlockKind = "trunk-port"
	BlockACL        BlockKind = "acl"
	BlockClosing    BlockKind = "closing"
)

// Block is a self-contained group of directives.
type Block struct {
	Kind  BlockKind `yaml:"kind" json:"kind"`
	Name  string    `yaml:"name" json:"name"`
	Lines []string  `yaml:"lines" json:"lines"`
}

// ConfigDocument is the complete configuration of one switch.
type ConfigDocument struct {
	Identity SwitchIdentity   `yaml:"identity" json:"identity"`
	Platform string           `yaml:"platform" json:"platform"`
	Blocks   []Block          `yaml:"blocks" json:"blocks"`
	Ports    []PortAssignment `yaml:"ports" json:"ports"`
}

// Lines flattens the blocks into the ordered directive sequence sent to a device.
func (d *ConfigDocument) Lines() []string {
	var n int
	for _, b := range d.Blocks {
		n += len(b.Lines)
	}
	lines := make([]string, 0, n)
	for _, b := range d.Blocks {
		lines = append(lines, b.Lines...)
	}
	return lines
}

// Text renders the document as newline terminated directives.
func (d *ConfigDocument) Text() string {
	lines := d.Lines()
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// BlocksOf returns the blocks of the given kind, in document order.
func (d *ConfigDocument) BlocksOf(kind BlockKind) []Block {
	var out []Block
	for _, b := range d.Blocks {
		if b.Kind == kind {
			out = append(out, b)
		}
	}
	return out
}

// PortsOf returns the port assignments with the given role, in interface order.
func (d *ConfigDocument) PortsOf(role PortRole) []PortAssignment {
	var out []PortAssignment
	for _, p := range d.Ports {
		if p.Role == role {
			out = append(out, p)
		}
	}
	return out
}
