//go:generate mockgen -source=ports.go -destination=../../mock/ports.go -package=mock

package ports

import (
	"context"

	"github.com/carlosrabelo/swgen/internal/domain/entities"
)

// SwitchRepository defines the port for network switch interaction
type SwitchRepository interface {
	Connect() error
	Disconnect()
	ExecuteCommand(cmd string) (string, error)
	IsConnected() bool
}

// ConfigGenerator turns topology parameters into the configuration of one switch.
type ConfigGenerator interface {
	Generate(identity entities.SwitchIdentity, params entities.TopologyParams) (*entities.ConfigDocument, error)
}

// ConfigDeliverer hands a generated document to a device and returns its raw output.
type ConfigDeliverer interface {
	Deliver(ctx context.Context, identity entities.SwitchIdentity, doc *entities.ConfigDocument) (string, error)
}
