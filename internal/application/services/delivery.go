package services

import (
	"context"
	"fmt"

	"github.com/carlosrabelo/swgen/internal/domain/entities"
	"github.com/carlosrabelo/swgen/internal/infrastructure/transport"
	"github.com/carlosrabelo/swgen/internal/logging"
	"github.com/carlosrabelo/swgen/internal/platform"
)

// TargetResolver returns the connection settings of a switch by fleet index
type TargetResolver interface {
	TargetFor(index int) (entities.SwitchTarget, error)
}

// TargetResolverFunc adapts a function to TargetResolver
type TargetResolverFunc func(index int) (entities.SwitchTarget, error)

// TargetFor calls f(index)
func (f TargetResolverFunc) TargetFor(index int) (entities.SwitchTarget, error) {
	return f(index)
}

// ClientProvider returns the transport session for a target
type ClientProvider func(entities.SwitchTarget) transport.Client

// DeliveryOption configures a DeliveryService
type DeliveryOption func(*DeliveryService)

// WithClientProvider replaces the cached transport clients
func WithClientProvider(p ClientProvider) DeliveryOption {
	return func(d *DeliveryService) {
		d.clients = p
	}
}

// WithPlatformCheck makes delivery refuse devices that do not identify as the configured platform
func WithPlatformCheck(enabled bool) DeliveryOption {
	return func(d *DeliveryService) {
		d.verifyPlatform = enabled
	}
}

// DeliveryService pushes generated documents to switches over their configured transport
type DeliveryService struct {
	targets        TargetResolver
	clients        ClientProvider
	verifyPlatform bool
}

// NewDeliveryService creates a delivery service resolving switches through targets
func NewDeliveryService(targets TargetResolver, opts ...DeliveryOption) *DeliveryService {
	d := &DeliveryService{
		targets: targets,
		clients: transport.Get,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Deliver sends doc to the switch of identity and returns the collected device output.
// In sandbox mode nothing is sent and the rendered document is returned instead.
// A switch whose platform is "auto" is identified after login and refused when
// it is not the platform the document was rendered for.
func (d *DeliveryService) Deliver(ctx context.Context, identity entities.SwitchIdentity, doc *entities.ConfigDocument) (string, error) {
	target, err := d.targets.TargetFor(identity.Index)
	if err != nil {
		return "", entities.NewTransportError(identity.Hostname, "", "resolve", err)
	}
	detect := platform.IsAuto(target.PlatformID())
	name := target.PlatformID()
	if detect && doc.Platform != "" {
		name = doc.Platform
	}
	driver, err := platform.Resolve(name)
	if err != nil {
		return "", entities.NewTransportError(identity.Hostname, target.Target, "resolve", err)
	}

	log := logging.WithComponentAndSwitch("delivery", identity.Hostname).WithField("target", target.Target)

	if target.Sandbox {
		log.WithField("lines", len(doc.Lines())).Info("Sandbox mode: configuration not pushed")
		return doc.Text(), nil
	}

	if err := ctx.Err(); err != nil {
		return "", entities.NewTransportError(identity.Hostname, target.Target, "connect", err)
	}

	client := d.clients(target)
	if ac, ok := client.(transport.AuthConfigurable); ok {
		ac.SetAuthSequence(driver.GetAuthenticationSequence(target.Username, target.Password, target.EnablePassword))
	}
	repo := transport.NewSwitchAdapter(client).WithLogger(log)

	log.WithField("transport", target.TransportID()).Debug("Connecting")
	if err := repo.Connect(); err != nil {
		return "", entities.NewTransportError(identity.Hostname, target.Target, "connect", err)
	}
	defer repo.Disconnect()

	switch {
	case detect:
		detected, err := platform.Detect(repo)
		if err != nil {
			return "", entities.NewTransportError(identity.Hostname, target.Target, "detect", err)
		}
		if detected.Name() != driver.Name() {
			return "", entities.NewTransportError(identity.Hostname, target.Target, "detect",
				fmt.Errorf("device identifies as %s, configuration is for %s", detected.Name(), driver.Name()))
		}
		log.WithField("platform", detected.Name()).Debug("Platform detected")
	case d.verifyPlatform:
		ok, err := driver.Detect(repo)
		if err != nil {
			return "", entities.NewTransportError(identity.Hostname, target.Target, "detect", err)
		}
		if !ok {
			return "", entities.NewTransportError(identity.Hostname, target.Target, "detect",
				fmt.Errorf("device does not identify as %s", driver.Name()))
		}
	}

	commands := append(driver.ConfigModeCommands(), doc.Lines()...)
	output, err := repo.SendConfig(ctx, commands)
	if err != nil {
		return output, entities.NewTransportError(identity.Hostname, target.Target, "send", err)
	}

	log.WithField("commands", len(commands)).Info("Configuration pushed")
	return output, nil
}
