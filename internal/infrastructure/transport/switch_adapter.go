package transport

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/carlosrabelo/swgen/internal/domain/entities"
	"github.com/carlosrabelo/swgen/internal/logging"
)

// Client is a line-oriented session with one switch
type Client interface {
	Connect() error
	Disconnect()
	ExecuteCommand(cmd string) (string, error)
	IsConnected() bool
}

// AuthConfigurable allows setting authentication prompts after client creation
type AuthConfigurable interface {
	SetAuthSequence(prompts []entities.AuthPrompt)
}

// SwitchAdapter exposes a Client as ports.SwitchRepository and pushes
// configuration batches over it.
type SwitchAdapter struct {
	client Client
	log    *logrus.Entry
}

// NewSwitchAdapter wraps client
func NewSwitchAdapter(client Client) *SwitchAdapter {
	return &SwitchAdapter{
		client: client,
		log:    logging.WithComponent("session"),
	}
}

// WithLogger returns the adapter logging through entry
func (s *SwitchAdapter) WithLogger(entry *logrus.Entry) *SwitchAdapter {
	s.log = entry
	return s
}

// Connect opens the session unless it is already open.
func (s *SwitchAdapter) Connect() error {
	if s.client.IsConnected() {
		return nil
	}
	return s.client.Connect()
}

func (s *SwitchAdapter) Disconnect() {
	s.client.Disconnect()
}

func (s *SwitchAdapter) ExecuteCommand(cmd string) (string, error) {
	return s.client.ExecuteCommand(cmd)
}

func (s *SwitchAdapter) IsConnected() bool {
	return s.client.IsConnected()
}

// SendConfig sends commands in order and returns the device output of every
// command that answered, one per line. It stops at the first rejected
// command and, between commands, when ctx is done; the output collected so
// far is returned with the error.
func (s *SwitchAdapter) SendConfig(ctx context.Context, commands []string) (string, error) {
	var output strings.Builder
	for i, cmd := range commands {
		if err := ctx.Err(); err != nil {
			return output.String(), fmt.Errorf("stopped after %d of %d commands: %w", i, len(commands), err)
		}
		s.log.WithField("cmd", cmd).Debug("Sending")
		out, err := s.client.ExecuteCommand(cmd)
		if out != "" {
			output.WriteString(out)
			output.WriteString("\n")
		}
		if err != nil {
			return output.String(), fmt.Errorf("%q: %w", cmd, err)
		}
	}
	return output.String(), nil
}
