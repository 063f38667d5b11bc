package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/oarkflow/bcl"
	"gopkg.in/yaml.v3"

	"github.com/carlosrabelo/swgen/internal/domain/entities"
	"github.com/carlosrabelo/swgen/internal/logging"
	"github.com/carlosrabelo/swgen/internal/platform"
)

// ErrNoConfig is returned by FindConfigFile when no inventory exists in the search path.
var ErrNoConfig = errors.New("no configuration file found")

// Config is the fleet inventory: global connection defaults, the topology and the switches.
type Config struct {
	Logging        logging.LogConfig       `yaml:"logging" json:"logging"`
	Platform       string                  `yaml:"platform" json:"platform"`
	Transport      string                  `yaml:"transport" json:"transport"`
	Username       string                  `yaml:"username" json:"username"`
	Password       string                  `yaml:"password" json:"password"`
	EnablePassword string                  `yaml:"enable_password" json:"enable_password"`
	Port           int                     `yaml:"port" json:"port"`
	Timeout        string                  `yaml:"timeout" json:"timeout"`
	Topology       entities.TopologyParams `yaml:"topology" json:"topology"`
	Switches       []SwitchEntry           `yaml:"switches" json:"switches"`
	SNMP           SNMPConfig              `yaml:"snmp" json:"snmp"`

	targets map[int]entities.SwitchTarget
}

// SwitchEntry is one switches[] item. Empty fields inherit the global values.
type SwitchEntry struct {
	Index          int    `yaml:"index" json:"index"`
	Target         string `yaml:"target" json:"target"`
	Port           int    `yaml:"port" json:"port"`
	Transport      string `yaml:"transport" json:"transport"`
	Platform       string `yaml:"platform" json:"platform"`
	Username       string `yaml:"username" json:"username"`
	Password       string `yaml:"password" json:"password"`
	EnablePassword string `yaml:"enable_password" json:"enable_password"`
	Timeout        string `yaml:"timeout" json:"timeout"`
}

// SNMPConfig holds the read-only SNMP settings used by verify.
type SNMPConfig struct {
	Community string `yaml:"community" json:"community"`
	Port      int    `yaml:"port" json:"port"`
	Timeout   string `yaml:"timeout" json:"timeout"`
	Retries   int    `yaml:"retries" json:"retries"`

	timeout time.Duration
}

// Default SNMP settings
const (
	DefaultSNMPCommunity = "public"
	DefaultSNMPPort      = 161
	DefaultSNMPTimeout   = 5 * time.Second
)

// TimeoutDuration returns the parsed SNMP timeout.
func (s SNMPConfig) TimeoutDuration() time.Duration {
	if s.timeout == 0 {
		return DefaultSNMPTimeout
	}
	return s.timeout
}

func (s *SNMPConfig) normalize() error {
	if s.Community == "" {
		s.Community = DefaultSNMPCommunity
	}
	if s.Port == 0 {
		s.Port = DefaultSNMPPort
	}
	if s.Port < 0 || s.Port > 65535 {
		return fmt.Errorf("snmp port %d is invalid", s.Port)
	}
	if s.Retries < 0 {
		return fmt.Errorf("snmp retries %d must not be negative", s.Retries)
	}
	timeout, err := parseTimeout(s.Timeout)
	if err != nil {
		return fmt.Errorf("snmp: %w", err)
	}
	if timeout == 0 {
		timeout = DefaultSNMPTimeout
	}
	s.timeout = timeout
	return nil
}

// Default returns an empty inventory with every default applied.
func Default() *Config {
	cfg := &Config{}
	// an empty inventory always normalizes
	_ = cfg.normalize()
	return cfg
}

// Load reads an inventory file. Files ending in .bcl are decoded as BCL, anything else as YAML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	cfg, err := Parse(data, strings.EqualFold(filepath.Ext(path), ".bcl"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logging.WithComponent("config").WithField("path", path).WithField("switches", len(cfg.Switches)).Debug("Configuration loaded")
	return cfg, nil
}

// Parse decodes and normalizes an inventory held in memory.
func Parse(data []byte, isBCL bool) (*Config, error) {
	var cfg Config
	if isBCL {
		if _, err := bcl.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse BCL: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validatePlatform(name string) error {
	if _, err := platform.Resolve(name); err != nil {
		return fmt.Errorf("platform %s is invalid, must be %s or one of %s", name, platform.Auto, strings.Join(platform.Names(), ", "))
	}
	return nil
}

func validateTransport(transport string) error {
	switch transport {
	case "ssh", "telnet":
		return nil
	default:
		return fmt.Errorf("transport %s is invalid, must be 'ssh' or 'telnet'", transport)
	}
}

func parseTimeout(raw string) (time.Duration, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("timeout %q is invalid: %w", raw, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("timeout %q must not be negative", raw)
	}
	return d, nil
}

func (c *Config) normalize() error {
	log := logging.WithComponent("config")

	c.Platform = strings.ToLower(strings.TrimSpace(c.Platform))
	if c.Platform == "" {
		c.Platform = platform.Default().Name()
	}
	if err := validatePlatform(c.Platform); err != nil {
		return err
	}

	c.Transport = strings.ToLower(strings.TrimSpace(c.Transport))
	if c.Transport == "" {
		c.Transport = "ssh"
	}
	if err := validateTransport(c.Transport); err != nil {
		return err
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d is invalid", c.Port)
	}
	timeout, err := parseTimeout(c.Timeout)
	if err != nil {
		return err
	}

	if err := c.SNMP.normalize(); err != nil {
		return err
	}

	log.Debugf("Global values: Platform=%s, Transport=%s, Port=%d, Timeout=%v", c.Platform, c.Transport, c.Port, timeout)

	c.targets = make(map[int]entities.SwitchTarget, len(c.Switches))
	addrs := make(map[string]int, len(c.Switches))
	for i, sw := range c.Switches {
		if sw.Index == 0 {
			sw.Index = i + 1
		}
		if sw.Index < 1 {
			return fmt.Errorf("index %d is invalid for switch entry %d", sw.Index, i)
		}
		if _, exists := c.targets[sw.Index]; exists {
			return fmt.Errorf("switch index %d is defined more than once", sw.Index)
		}

		sw.Target = strings.TrimSpace(sw.Target)
		if sw.Target == "" {
			return fmt.Errorf("target is required for switch %d", sw.Index)
		}

		sw.Transport = strings.ToLower(strings.TrimSpace(sw.Transport))
		if sw.Transport == "" {
			sw.Transport = c.Transport
			log.Debugf("No transport defined for switch %s, using global %s", sw.Target, c.Transport)
		}
		if err := validateTransport(sw.Transport); err != nil {
			return fmt.Errorf("invalid transport for switch %s: %w", sw.Target, err)
		}

		sw.Platform = strings.ToLower(strings.TrimSpace(sw.Platform))
		if sw.Platform == "" {
			sw.Platform = c.Platform
			log.Debugf("No platform defined for switch %s, using global %s", sw.Target, c.Platform)
		}
		if err := validatePlatform(sw.Platform); err != nil {
			return fmt.Errorf("invalid platform for switch %s: %w", sw.Target, err)
		}

		if sw.Port == 0 {
			sw.Port = c.Port
		}
		if sw.Port < 0 || sw.Port > 65535 {
			return fmt.Errorf("port %d is invalid for switch %s", sw.Port, sw.Target)
		}

		swTimeout := timeout
		if sw.Timeout != "" {
			if swTimeout, err = parseTimeout(sw.Timeout); err != nil {
				return fmt.Errorf("switch %s: %w", sw.Target, err)
			}
		}

		if sw.Username == "" {
			sw.Username = c.Username
			log.Debugf("No username defined for switch %s, using global %s", sw.Target, c.Username)
		}
		if sw.Password == "" {
			sw.Password = c.Password
		}
		if sw.EnablePassword == "" {
			sw.EnablePassword = c.EnablePassword
		}

		addr := fmt.Sprintf("%s:%d:%s", sw.Target, sw.Port, sw.Transport)
		if other, exists := addrs[addr]; exists {
			return fmt.Errorf("switches %d and %d share target %s", other, sw.Index, sw.Target)
		}
		addrs[addr] = sw.Index

		c.Switches[i] = sw
		c.targets[sw.Index] = entities.SwitchTarget{
			Index:          sw.Index,
			Target:         sw.Target,
			Port:           sw.Port,
			Transport:      sw.Transport,
			Platform:       sw.Platform,
			Username:       sw.Username,
			Password:       sw.Password,
			EnablePassword: sw.EnablePassword,
			Timeout:        swTimeout,
		}
	}

	if c.Topology.SwitchCount == 0 && len(c.Switches) > 0 {
		c.Topology.SwitchCount = len(c.Switches)
	}
	c.Topology = c.Topology.WithDefaults()
	return nil
}

// AddSwitch registers switch index at addr with the global connection settings.
func (c *Config) AddSwitch(index int, addr string) error {
	c.Switches = append(c.Switches, SwitchEntry{Index: index, Target: addr})
	if err := c.normalize(); err != nil {
		c.Switches = c.Switches[:len(c.Switches)-1]
		_ = c.normalize()
		return err
	}
	return nil
}

// SetRunFlags applies the per-run delivery flags to every switch.
// Without write the run is a sandbox and nothing reaches the devices.
func (c *Config) SetRunFlags(write bool, verbosityLevel int) {
	for index, target := range c.targets {
		target.Sandbox = !write
		target.VerbosityLevel = verbosityLevel
		c.targets[index] = target
	}
}

// SetCredentials fills the global credentials into every switch that has none.
func (c *Config) SetCredentials(username, password, enablePassword string) {
	c.Username, c.Password, c.EnablePassword = username, password, enablePassword
	for index, target := range c.targets {
		if target.Username == "" {
			target.Username = username
		}
		if target.Password == "" {
			target.Password = password
		}
		if target.EnablePassword == "" {
			target.EnablePassword = enablePassword
		}
		c.targets[index] = target
	}
}

// TargetFor returns the connection settings of switch index.
func (c *Config) TargetFor(index int) (entities.SwitchTarget, error) {
	target, ok := c.targets[index]
	if !ok {
		return entities.SwitchTarget{}, fmt.Errorf("switch %d is not defined in the inventory", index)
	}
	return target, nil
}

// MissingCredentials reports whether any switch lacks a username, password or enable password.
func (c *Config) MissingCredentials() bool {
	for _, target := range c.targets {
		if target.Username == "" || target.Password == "" || target.EnablePassword == "" {
			return true
		}
	}
	return false
}

// CheckDelivery verifies that switches 1..count can all be reached.
func (c *Config) CheckDelivery(count int) error {
	var errs []error
	for index := 1; index <= count; index++ {
		target, err := c.TargetFor(index)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if target.Username == "" {
			errs = append(errs, fmt.Errorf("username is required for switch %d (%s)", index, target.Target))
		}
		if target.Password == "" {
			errs = append(errs, fmt.Errorf("password is required for switch %d (%s)", index, target.Target))
		}
		if target.EnablePassword == "" {
			errs = append(errs, fmt.Errorf("enable_password is required for switch %d (%s)", index, target.Target))
		}
	}
	return errors.Join(errs...)
}

// SearchPaths lists the locations tried when no configuration file is given.
func SearchPaths() []string {
	paths := []string{
		filepath.Join(".", "swgen.yaml"),
		filepath.Join(".", "swgen.yml"),
		filepath.Join(".", "swgen.bcl"),
	}
	if runtime.GOOS == "windows" {
		if appDataDir := os.Getenv("APPDATA"); appDataDir != "" {
			paths = append(paths, filepath.Join(appDataDir, "swgen", "config.yaml"))
		}
		if programDataDir := os.Getenv("ProgramData"); programDataDir != "" {
			paths = append(paths, filepath.Join(programDataDir, "swgen", "config.yaml"))
		}
		return paths
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(userConfigDir, "swgen", "config.yaml"))
	}
	return append(paths, "/etc/swgen/config.yaml")
}

// FindConfigFile returns explicit when set, otherwise the first existing file of SearchPaths.
func FindConfigFile(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	for _, path := range SearchPaths() {
		if _, err := os.Stat(path); err == nil {
			logging.WithComponent("config").WithField("path", path).Debug("Configuration file found")
			return path, nil
		}
	}
	return "", ErrNoConfig
}
