package transport

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/ziutek/telnet"

	"github.com/carlosrabelo/swgen/internal/domain/entities"
	"github.com/carlosrabelo/swgen/internal/logging"
)

// TelnetClient manages a Telnet connection to a switch
type TelnetClient struct {
	conn         *telnet.Conn
	target       entities.SwitchTarget
	authSequence []entities.AuthPrompt
	log          *logrus.Entry
}

// NewTelnetClient creates a new Telnet client for target
func NewTelnetClient(target entities.SwitchTarget) *TelnetClient {
	return &TelnetClient{
		target: target,
		log:    logging.WithComponentAndSwitch("telnet", target.Target),
	}
}

// SetAuthSequence configures the authentication sequence for this client
func (tc *TelnetClient) SetAuthSequence(prompts []entities.AuthPrompt) {
	tc.authSequence = prompts
}

func (tc *TelnetClient) prompts() []entities.AuthPrompt {
	if len(tc.authSequence) > 0 {
		return tc.authSequence
	}
	return []entities.AuthPrompt{
		{WaitFor: PromptUsername, SendCmd: tc.target.Username + "\n"},
		{WaitFor: PromptPassword, SendCmd: tc.target.Password + "\n"},
		{WaitFor: PromptEnable, SendCmd: "enable\n"},
		{WaitFor: PromptPassword, SendCmd: tc.target.EnablePassword + "\n"},
		{WaitFor: PromptPrivileged, SendCmd: TerminalLengthCmd},
		{WaitFor: PromptPrivileged, SendCmd: ""},
	}
}

// Connect establishes a Telnet connection and walks the login prompts
func (tc *TelnetClient) Connect() error {
	if tc.conn != nil {
		return nil
	}
	timeout := timeoutFor(tc.target)
	addr := net.JoinHostPort(tc.target.Target, strconv.Itoa(portFor(tc.target, DefaultTelnetPort)))
	conn, err := telnet.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	tc.conn = conn
	tc.log.WithField("addr", addr).Debug("Connected")

	for _, p := range tc.prompts() {
		output, err := tc.readUntil(p.WaitFor, timeout)
		if err != nil {
			tc.Disconnect()
			return fmt.Errorf("failed to wait for %s: %w, output: %s", p.WaitFor, err, output)
		}
		if p.SendCmd == "" {
			continue
		}
		if err := tc.send(p.SendCmd, timeout); err != nil {
			tc.Disconnect()
			return fmt.Errorf("failed to answer %s: %w", p.WaitFor, err)
		}
		tc.log.WithField("prompt", p.WaitFor).Debug("Answered login prompt")
	}
	return nil
}

func (tc *TelnetClient) send(data string, timeout time.Duration) error {
	_ = tc.conn.SetWriteDeadline(time.Now().Add(timeout))
	_, err := tc.conn.Write([]byte(data))
	return err
}

// readUntil reads from the Telnet connection until the specified pattern is found
func (tc *TelnetClient) readUntil(pattern string, timeout time.Duration) (string, error) {
	buffer := make([]byte, BufferSize)
	var output strings.Builder
	output.Grow(BufferSize)
	_ = tc.conn.SetReadDeadline(time.Now().Add(timeout))
	for {
		n, err := tc.conn.Read(buffer)
		if n > 0 {
			output.Write(buffer[:n])
			if tc.target.IsRawOutputEnabled() {
				tc.log.Infof("Switch output: Read: %s", string(buffer[:n]))
			}
			if strings.Contains(output.String(), pattern) {
				return output.String(), nil
			}
		}
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				return output.String(), fmt.Errorf("timeout waiting for %s", pattern)
			}
			return output.String(), fmt.Errorf("read error: %w", err)
		}
	}
}

// Disconnect closes the Telnet connection
func (tc *TelnetClient) Disconnect() {
	if tc.conn != nil {
		tc.conn.Close()
		tc.conn = nil
		tc.log.Debug("Disconnected")
	}
}

func (tc *TelnetClient) IsConnected() bool {
	return tc.conn != nil
}

// ExecuteCommand sends a command to the switch and returns its output
func (tc *TelnetClient) ExecuteCommand(cmd string) (string, error) {
	if tc.conn == nil {
		return "", fmt.Errorf("not connected to %s", tc.target.Target)
	}
	timeout := timeoutFor(tc.target)
	tc.log.WithField("cmd", cmd).Debug("Executing")
	if err := tc.send(cmd+"\n", timeout); err != nil {
		return "", fmt.Errorf("failed to send command %s: %w", cmd, err)
	}
	output, err := tc.readUntil(PromptPrivileged, timeout)
	if err != nil {
		return "", fmt.Errorf("error executing %s: %w", cmd, err)
	}
	output = commandOutput(output)
	if tc.target.IsRawOutputEnabled() {
		tc.log.Infof("Switch output for '%s':\n%s", cmd, output)
	}
	return output, nil
}
