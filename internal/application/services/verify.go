package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/carlosrabelo/swgen/internal/domain/entities"
	"github.com/carlosrabelo/swgen/internal/logging"
)

// ErrHostnameMismatch is returned when a switch answers with another hostname.
var ErrHostnameMismatch = errors.New("hostname mismatch")

// NameProber reads the hostname a device reports at a management address
type NameProber interface {
	SysName(ctx context.Context, target string) (string, error)
}

// VerifyService checks that each switch answers on its management address
// with the hostname it was generated with. It plugs into the fleet run as a
// deliverer, so nothing is ever sent to the devices.
type VerifyService struct {
	prober NameProber
}

// NewVerifyService creates a verifier polling through prober
func NewVerifyService(prober NameProber) *VerifyService {
	return &VerifyService{prober: prober}
}

// Deliver polls the management IP of identity and returns the name it reported.
func (v *VerifyService) Deliver(ctx context.Context, identity entities.SwitchIdentity, _ *entities.ConfigDocument) (string, error) {
	log := logging.WithComponentAndSwitch("verify", identity.Hostname).WithField("target", identity.ManagementIP)

	if err := ctx.Err(); err != nil {
		return "", entities.NewTransportError(identity.Hostname, identity.ManagementIP, "verify", err)
	}
	name, err := v.prober.SysName(ctx, identity.ManagementIP)
	if err != nil {
		log.WithError(err).Debug("Management address did not answer")
		return "", entities.NewTransportError(identity.Hostname, identity.ManagementIP, "verify", err)
	}
	if !SameHostname(name, identity.Hostname) {
		return name, fmt.Errorf("%w: %s reports %q, want %q", ErrHostnameMismatch, identity.ManagementIP, name, identity.Hostname)
	}
	log.Debugf("Reports %s", name)
	return name, nil
}

// SameHostname compares a reported sysName with an expected hostname.
// IOS appends the domain name to sysName when one is configured.
func SameHostname(reported, want string) bool {
	host, _, _ := strings.Cut(strings.TrimSpace(reported), ".")
	return strings.EqualFold(host, want)
}
