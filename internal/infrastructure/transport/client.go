package transport

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/carlosrabelo/swgen/internal/domain/entities"
)

const (
	DefaultTimeout    = 30 * time.Second
	DefaultSSHPort    = 22
	DefaultTelnetPort = 23
	BufferSize        = 4096
	PromptUsername    = "Username:"
	PromptPassword    = "Password:"
	PromptEnable      = ">"
	PromptPrivileged  = "#"
	TerminalLengthCmd = "terminal length 0\n"
)

var (
	clientCache   = make(map[string]Client)
	clientCacheMu sync.Mutex
	// factory builds the client on a cache miss
	factory = newClient
)

func cacheKey(target entities.SwitchTarget) string {
	keyData := struct {
		Transport      string
		Target         string
		Port           int
		Username       string
		Password       string
		EnablePassword string
	}{
		Transport:      target.TransportID(),
		Target:         target.Target,
		Port:           target.Port,
		Username:       target.Username,
		Password:       target.Password,
		EnablePassword: target.EnablePassword,
	}
	bytes, _ := json.Marshal(keyData)
	hash := sha256.Sum256(bytes)
	return hex.EncodeToString(hash[:])
}

// Get returns a cached client for the provided target or creates a new one
func Get(target entities.SwitchTarget) Client {
	clientCacheMu.Lock()
	defer clientCacheMu.Unlock()
	key := cacheKey(target)
	if client, exists := clientCache[key]; exists {
		return client
	}
	client := factory(target)
	clientCache[key] = client
	return client
}

// CloseAll releases every cached client session
func CloseAll() {
	clientCacheMu.Lock()
	defer clientCacheMu.Unlock()
	for key, client := range clientCache {
		client.Disconnect()
		delete(clientCache, key)
	}
}

func newClient(target entities.SwitchTarget) Client {
	if target.TransportID() == "telnet" {
		return NewTelnetClient(target)
	}
	return NewSSHClient(target)
}

func timeoutFor(target entities.SwitchTarget) time.Duration {
	if target.Timeout > 0 {
		return target.Timeout
	}
	return DefaultTimeout
}

func portFor(target entities.SwitchTarget, fallback int) int {
	if target.Port > 0 {
		return target.Port
	}
	return fallback
}

// commandOutput drops the echoed command line and the trailing prompt.
func commandOutput(raw string) string {
	lines := strings.Split(strings.ReplaceAll(raw, "\r", ""), "\n")
	if len(lines) <= 2 {
		return ""
	}
	return strings.Join(lines[1:len(lines)-1], "\n")
}

func containsAny(text string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.Contains(text, pattern) {
			return true
		}
	}
	return false
}
