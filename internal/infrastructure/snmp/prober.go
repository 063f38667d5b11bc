// Package snmp reads device identification over SNMP v2c.
package snmp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gosnmp/gosnmp"

	"github.com/carlosrabelo/swgen/internal/logging"
)

// SNMPv2-MIB system group
const (
	OIDSysDescr = ".1.3.6.1.2.1.1.1.0"
	OIDSysName  = ".1.3.6.1.2.1.1.5.0"
)

// ErrNoSuchObject is returned when the agent does not expose the requested object.
var ErrNoSuchObject = errors.New("no such object")

// Prober queries switches with SNMP v2c GET requests
type Prober struct {
	Community string
	Port      uint16
	Timeout   time.Duration
	Retries   int
}

// NewProber creates a prober for community on port
func NewProber(community string, port int, timeout time.Duration, retries int) *Prober {
	return &Prober{
		Community: community,
		Port:      uint16(port),
		Timeout:   timeout,
		Retries:   retries,
	}
}

// SysName returns the sysName.0 reported by target.
func (p *Prober) SysName(ctx context.Context, target string) (string, error) {
	return p.getString(ctx, target, OIDSysName)
}

// SysDescr returns the sysDescr.0 reported by target.
func (p *Prober) SysDescr(ctx context.Context, target string) (string, error) {
	return p.getString(ctx, target, OIDSysDescr)
}

func (p *Prober) getString(ctx context.Context, target, oid string) (string, error) {
	log := logging.WithComponent("snmp").WithField("target", target)

	g := &gosnmp.GoSNMP{
		Target:    target,
		Port:      p.Port,
		Community: p.Community,
		Version:   gosnmp.Version2c,
		Timeout:   p.Timeout,
		Retries:   p.Retries,
		Transport: "udp",
		Context:   ctx,
	}
	if err := g.Connect(); err != nil {
		return "", fmt.Errorf("failed to open SNMP socket to %s: %w", target, err)
	}
	defer g.Conn.Close()

	log.Debugf("GET %s", oid)
	packet, err := g.Get([]string{oid})
	if err != nil {
		return "", fmt.Errorf("SNMP get %s from %s: %w", oid, target, err)
	}
	if packet.Error != gosnmp.NoError {
		return "", fmt.Errorf("SNMP get %s from %s: agent returned %v", oid, target, packet.Error)
	}
	for _, variable := range packet.Variables {
		if strings.TrimPrefix(variable.Name, ".") != strings.TrimPrefix(oid, ".") {
			continue
		}
		switch variable.Type {
		case gosnmp.OctetString:
			value, ok := variable.Value.([]byte)
			if !ok {
				return "", fmt.Errorf("SNMP get %s from %s: unexpected value %T", oid, target, variable.Value)
			}
			log.Debugf("%s = %q", oid, value)
			return string(value), nil
		case gosnmp.NoSuchObject, gosnmp.NoSuchInstance:
			return "", fmt.Errorf("%s on %s: %w", oid, target, ErrNoSuchObject)
		default:
			return "", fmt.Errorf("SNMP get %s from %s: unexpected type %v", oid, target, variable.Type)
		}
	}
	return "", fmt.Errorf("%s on %s: %w", oid, target, ErrNoSuchObject)
}
