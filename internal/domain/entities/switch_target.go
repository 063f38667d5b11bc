package entities

import (
	"strings"
	"time"
)

// SwitchTarget holds the connection settings used to reach one switch.
// Credentials live here and never reach the generator.
type SwitchTarget struct {
	Index          int           `yaml:"index" json:"index"`
	Target         string        `yaml:"target" json:"target"`
	Port           int           `yaml:"port" json:"port"`
	Transport      string        `yaml:"transport" json:"transport"`
	Platform       string        `yaml:"platform" json:"platform"`
	Username       string        `yaml:"username" json:"username"`
	Password       string        `yaml:"password" json:"password"`
	EnablePassword string        `yaml:"enable_password" json:"enable_password"`
	Timeout        time.Duration `yaml:"timeout" json:"timeout"`
	Sandbox        bool          `yaml:"-" json:"-"`
	VerbosityLevel int           `yaml:"-" json:"-"`
}

// AuthPrompt represents a prompt-response pair during login
type AuthPrompt struct {
	WaitFor string // prompt to wait for
	SendCmd string // command to send (empty means just wait)
}

// IsDebugEnabled returns true if debug logs are enabled
func (t SwitchTarget) IsDebugEnabled() bool {
	return t.VerbosityLevel == 1 || t.VerbosityLevel == 3
}

// IsRawOutputEnabled returns true if raw switch output is enabled
func (t SwitchTarget) IsRawOutputEnabled() bool {
	return t.VerbosityLevel == 2 || t.VerbosityLevel == 3
}

// PlatformID returns the normalized platform name, "ios" when unset.
func (t SwitchTarget) PlatformID() string {
	p := strings.ToLower(strings.TrimSpace(t.Platform))
	if p == "" {
		return "ios"
	}
	return p
}

// TransportID returns the normalized transport name, "ssh" when unset.
func (t SwitchTarget) TransportID() string {
	tr := strings.ToLower(strings.TrimSpace(t.Transport))
	if tr == "" {
		return "ssh"
	}
	return tr
}
