package transport

import (
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/ssh"

	"github.com/carlosrabelo/swgen/internal/domain/entities"
	"github.com/carlosrabelo/swgen/internal/logging"
)

// SSHClient manages an interactive SSH shell on a switch
type SSHClient struct {
	target  entities.SwitchTarget
	client  *ssh.Client
	session *ssh.Session
	stdin   io.WriteCloser
	output  chan []byte
	done    chan struct{}
	log     *logrus.Entry
}

// NewSSHClient creates a new SSH client for target
func NewSSHClient(target entities.SwitchTarget) *SSHClient {
	return &SSHClient{
		target: target,
		log:    logging.WithComponentAndSwitch("ssh", target.Target),
	}
}

func (sc *SSHClient) clientConfig() *ssh.ClientConfig {
	password := sc.target.Password
	return &ssh.ClientConfig{
		User: sc.target.Username,
		Auth: []ssh.AuthMethod{
			ssh.Password(password),
			ssh.KeyboardInteractive(func(_, _ string, questions []string, _ []bool) ([]string, error) {
				answers := make([]string, len(questions))
				for i := range answers {
					answers[i] = password
				}
				return answers, nil
			}),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         timeoutFor(sc.target),
	}
}

// Connect opens the shell, elevates to privileged mode and disables paging
func (sc *SSHClient) Connect() error {
	if sc.IsConnected() {
		return nil
	}
	timeout := timeoutFor(sc.target)
	addr := net.JoinHostPort(sc.target.Target, strconv.Itoa(portFor(sc.target, DefaultSSHPort)))

	client, err := ssh.Dial("tcp", addr, sc.clientConfig())
	if err != nil {
		return fmt.Errorf("failed to connect to %s via SSH: %w", addr, err)
	}

	session, err := client.NewSession()
	if err != nil {
		client.Close()
		return fmt.Errorf("failed to create SSH session for %s: %w", addr, err)
	}

	modes := ssh.TerminalModes{
		ssh.ECHO:          0,
		ssh.TTY_OP_ISPEED: 9600,
		ssh.TTY_OP_OSPEED: 9600,
	}
	if err := session.RequestPty("vt100", 80, 40, modes); err != nil {
		session.Close()
		client.Close()
		return fmt.Errorf("failed to request PTY for %s: %w", addr, err)
	}

	stdin, err := session.StdinPipe()
	if err != nil {
		session.Close()
		client.Close()
		return fmt.Errorf("failed to get stdin pipe for %s: %w", addr, err)
	}

	stdout, err := session.StdoutPipe()
	if err != nil {
		session.Close()
		client.Close()
		return fmt.Errorf("failed to get stdout pipe for %s: %w", addr, err)
	}

	if err := session.Shell(); err != nil {
		session.Close()
		client.Close()
		return fmt.Errorf("failed to start shell for %s: %w", addr, err)
	}

	sc.client = client
	sc.session = session
	sc.stdin = stdin
	sc.output = make(chan []byte, 64)
	sc.done = make(chan struct{})
	go pump(stdout, sc.output, sc.done)

	sc.log.WithField("addr", addr).Debug("Connected")

	initial, err := sc.readUntilAny([]string{PromptPrivileged, PromptEnable}, timeout)
	if err != nil {
		sc.Disconnect()
		return err
	}

	if !strings.Contains(initial, PromptPrivileged) {
		sc.log.Debug("Elevating to privileged mode")
		if err := sc.send("enable\n"); err != nil {
			sc.Disconnect()
			return fmt.Errorf("failed to send enable command to %s: %w", addr, err)
		}
		if _, err := sc.readUntilAny([]string{PromptPassword}, timeout); err != nil {
			sc.Disconnect()
			return err
		}
		if err := sc.send(sc.target.EnablePassword + "\n"); err != nil {
			sc.Disconnect()
			return fmt.Errorf("failed to send enable password to %s: %w", addr, err)
		}
		if _, err := sc.readUntilAny([]string{PromptPrivileged}, timeout); err != nil {
			sc.Disconnect()
			return err
		}
	}

	if err := sc.send(TerminalLengthCmd); err != nil {
		sc.Disconnect()
		return fmt.Errorf("failed to send terminal length command to %s: %w", addr, err)
	}
	if _, err := sc.readUntilAny([]string{PromptPrivileged}, timeout); err != nil {
		sc.Disconnect()
		return err
	}
	return nil
}

// pump copies the shell output into out until the reader fails or done closes.
func pump(r io.Reader, out chan<- []byte, done <-chan struct{}) {
	defer close(out)
	buffer := make([]byte, BufferSize)
	for {
		n, err := r.Read(buffer)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buffer[:n])
			select {
			case out <- chunk:
			case <-done:
				return
			}
		}
		if err != nil {
			return
		}
	}
}

// Disconnect closes the session and the underlying connection
func (sc *SSHClient) Disconnect() {
	if sc.done != nil {
		close(sc.done)
		sc.done = nil
	}
	if sc.session != nil {
		sc.session.Close()
		sc.session = nil
	}
	if sc.client != nil {
		sc.client.Close()
		sc.client = nil
		sc.log.Debug("Disconnected")
	}
	sc.stdin = nil
}

func (sc *SSHClient) IsConnected() bool {
	return sc.session != nil && sc.client != nil
}

// ExecuteCommand sends a command to the switch and returns its output
func (sc *SSHClient) ExecuteCommand(cmd string) (string, error) {
	if !sc.IsConnected() {
		return "", fmt.Errorf("not connected to %s", sc.target.Target)
	}
	sc.log.WithField("cmd", cmd).Debug("Executing")
	if err := sc.send(cmd + "\n"); err != nil {
		return "", fmt.Errorf("failed to send command %s: %w", cmd, err)
	}

	output, err := sc.readUntilAny([]string{PromptPrivileged}, timeoutFor(sc.target))
	if err != nil {
		return "", fmt.Errorf("error executing %s: %w", cmd, err)
	}
	output = commandOutput(output)
	if sc.target.IsRawOutputEnabled() {
		sc.log.Infof("Switch output for '%s':\n%s", cmd, output)
	}
	return output, nil
}

func (sc *SSHClient) send(data string) error {
	_, err := sc.stdin.Write([]byte(data))
	return err
}

func (sc *SSHClient) readUntilAny(patterns []string, timeout time.Duration) (string, error) {
	return readUntilAny(sc.output, patterns, timeout, func(chunk []byte) {
		if sc.target.IsRawOutputEnabled() {
			sc.log.Infof("Switch output: Read: %s", string(chunk))
		}
	})
}

// readUntilAny accumulates chunks from in until one of patterns appears.
func readUntilAny(in <-chan []byte, patterns []string, timeout time.Duration, onChunk func([]byte)) (string, error) {
	var output strings.Builder
	output.Grow(BufferSize)
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case chunk, ok := <-in:
			if !ok {
				return output.String(), fmt.Errorf("connection closed while waiting for %s", strings.Join(patterns, ", "))
			}
			output.Write(chunk)
			if onChunk != nil {
				onChunk(chunk)
			}
			if containsAny(output.String(), patterns) {
				return output.String(), nil
			}
		case <-timer.C:
			return output.String(), fmt.Errorf("timeout waiting for prompts %s", strings.Join(patterns, ", "))
		}
	}
}
