package platform

import (
	"fmt"
	"strings"

	"github.com/carlosrabelo/swgen/internal/domain/entities"
	"github.com/carlosrabelo/swgen/internal/domain/ports"
	"github.com/carlosrabelo/swgen/internal/platform/ios"
)

// SwitchDriver defines the command dialect and login behaviour of a switching platform.
type SwitchDriver interface {
	Name() string
	Detect(repo ports.SwitchRepository) (bool, error)

	// GetAuthenticationSequence returns the login sequence for this platform
	GetAuthenticationSequence(username, password, enablePassword string) []entities.AuthPrompt

	IdentityCommands(hostname string, ipRouting bool) []string
	ManagementCommands(vlan int, ip string) []string
	VLANCommands(vlan int, name string) []string
	AccessPortCommands(port entities.PortAssignment) []string
	TrunkPortCommands(port entities.PortAssignment) []string
	ManagementACLCommands(vlan int, ip string) []string

	ConfigModeCommands() []string
	SaveCommands() []string
}

// Auto is the platform name that makes delivery identify each device with Detect.
const Auto = "auto"

var registry = []SwitchDriver{
	ios.New(),
}

// Get returns a driver by normalized platform name.
func Get(name string) (SwitchDriver, error) {
	normalized := normalizeName(name)
	for _, driver := range registry {
		if driver.Name() == normalized {
			return driver, nil
		}
	}
	return nil, fmt.Errorf("unknown switch platform: %s", name)
}

// Default returns the driver used when no platform is configured.
func Default() SwitchDriver {
	return registry[0]
}

// IsAuto reports whether name asks for detection instead of a fixed driver.
func IsAuto(name string) bool {
	return normalizeName(name) == Auto
}

// Resolve is Get with Auto mapped to the default driver, used where a
// configuration must be rendered before any device has been seen.
func Resolve(name string) (SwitchDriver, error) {
	if IsAuto(name) {
		return Default(), nil
	}
	return Get(name)
}

// Names lists the registered platform identifiers.
func Names() []string {
	names := make([]string, 0, len(registry))
	for _, driver := range registry {
		names = append(names, driver.Name())
	}
	return names
}

// Detect tries all registered drivers until one matches.
func Detect(repo ports.SwitchRepository) (SwitchDriver, error) {
	var lastErr error
	for _, driver := range registry {
		matched, err := driver.Detect(repo)
		if err != nil {
			lastErr = err
			continue
		}
		if matched {
			return driver, nil
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, fmt.Errorf("unable to detect switch platform")
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
