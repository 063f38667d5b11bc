package services

import (
	"fmt"

	"github.com/carlosrabelo/swgen/internal/domain/entities"
	"github.com/carlosrabelo/swgen/internal/platform"
)

// Generator builds switch configurations in the dialect of one platform.
// It holds no mutable state and may be shared between goroutines.
type Generator struct {
	driver platform.SwitchDriver
}

// NewGenerator creates a generator for driver; nil selects the default platform.
func NewGenerator(driver platform.SwitchDriver) *Generator {
	if driver == nil {
		driver = platform.Default()
	}
	return &Generator{driver: driver}
}

// Generate validates params and identity and returns the complete document,
// or a *entities.ValidationError and no document.
func (g *Generator) Generate(identity entities.SwitchIdentity, params entities.TopologyParams) (*entities.ConfigDocument, error) {
	params = params.WithDefaults()
	if err := ValidateTopology(params); err != nil {
		return nil, err
	}
	if err := ValidateIdentity(identity); err != nil {
		return nil, err
	}

	ports := AssignPorts(params)
	blocks := make([]entities.Block, 0, 4+params.AccessPortCount*2+params.TrunkPortCount)

	blocks = append(blocks, entities.Block{
		Kind:  entities.BlockIdentity,
		Name:  identity.Hostname,
		Lines: g.driver.IdentityCommands(identity.Hostname, params.IPRouting),
	})
	blocks = append(blocks, entities.Block{
		Kind:  entities.BlockManagement,
		Name:  fmt.Sprintf("vlan %d", params.ManagementVlan),
		Lines: g.driver.ManagementCommands(params.ManagementVlan, identity.ManagementIP),
	})

	for _, vlan := range params.AccessVlans() {
		// a reused management VLAN keeps its "Management" definition
		if vlan == params.ManagementVlan {
			continue
		}
		blocks = append(blocks, entities.Block{
			Kind:  entities.BlockVlan,
			Name:  fmt.Sprintf("vlan %d", vlan),
			Lines: g.driver.VLANCommands(vlan, VlanName(vlan)),
		})
	}

	for _, port := range ports {
		switch port.Role {
		case entities.RoleAccess:
			blocks = append(blocks, entities.Block{
				Kind:  entities.BlockAccessPort,
				Name:  port.InterfaceName,
				Lines: g.driver.AccessPortCommands(port),
			})
		case entities.RoleTrunk:
			blocks = append(blocks, entities.Block{
				Kind:  entities.BlockTrunkPort,
				Name:  port.InterfaceName,
				Lines: g.driver.TrunkPortCommands(port),
			})
		}
	}

	if params.ManagementACL {
		blocks = append(blocks, entities.Block{
			Kind:  entities.BlockACL,
			Name:  "management-acl",
			Lines: g.driver.ManagementACLCommands(params.ManagementVlan, identity.ManagementIP),
		})
	}

	blocks = append(blocks, entities.Block{
		Kind:  entities.BlockClosing,
		Name:  "save",
		Lines: g.driver.SaveCommands(),
	})

	return &entities.ConfigDocument{
		Identity: identity,
		Platform: g.driver.Name(),
		Blocks:   blocks,
		Ports:    ports,
	}, nil
}

// AssignPorts computes the role of every port. Access ports take interfaces
// 1..access, bound one-to-one to startVlan..; trunks follow immediately.
// params must already be valid.
func AssignPorts(params entities.TopologyParams) []entities.PortAssignment {
	params = params.WithDefaults()
	ports := make([]entities.PortAssignment, 0, params.AccessPortCount+params.TrunkPortCount)

	for p := 1; p <= params.AccessPortCount; p++ {
		ports = append(ports, entities.PortAssignment{
			Number:        p,
			InterfaceName: entities.InterfaceName(params.InterfacePrefix, p),
			Role:          entities.RoleAccess,
			VlanID:        params.StartVlan + p - 1,
		})
	}

	var allowed []int
	if params.TrunkAllowed == entities.TrunkAllowExplicit {
		allowed = make([]int, 0, params.AccessPortCount)
		for _, vlan := range params.AccessVlans() {
			// the native VLAN rides untagged and is never listed as carried
			if vlan != params.ManagementVlan {
				allowed = append(allowed, vlan)
			}
		}
	}

	first := params.AccessPortCount + 1
	for p := first; p < first+params.TrunkPortCount; p++ {
		port := entities.PortAssignment{
			Number:        p,
			InterfaceName: entities.InterfaceName(params.InterfacePrefix, p),
			Role:          entities.RoleTrunk,
			NativeVlan:    params.ManagementVlan,
			AllowAll:      params.TrunkAllowed == entities.TrunkAllowAll,
		}
		if !port.AllowAll {
			port.AllowedVlans = append([]int(nil), allowed...)
		}
		ports = append(ports, port)
	}

	return ports
}

// VlanName is the name given to an access VLAN.
func VlanName(vlan int) string {
	return fmt.Sprintf("elev%d", vlan)
}
