package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/carlosrabelo/swgen/internal/domain/entities"
	"github.com/carlosrabelo/swgen/internal/infrastructure/config"
)

// prompter asks for values on out and reads the answers from in.
type prompter struct {
	in     *bufio.Reader
	out    io.Writer
	secret func() (string, error)
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	p := &prompter{in: bufio.NewReader(in), out: out}
	p.secret = p.line
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd := int(f.Fd())
		p.secret = func() (string, error) {
			b, err := term.ReadPassword(fd)
			fmt.Fprintln(out)
			if err != nil {
				return "", err
			}
			return strings.TrimSpace(string(b)), nil
		}
	}
	return p
}

func (p *prompter) line() (string, error) {
	s, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && s != "") {
		return "", fmt.Errorf("reading answer: %w", err)
	}
	return strings.TrimSpace(s), nil
}

// Text asks for a value; an empty answer keeps def.
func (p *prompter) Text(label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(p.out, "%s: ", label)
	}
	s, err := p.line()
	if err != nil {
		return "", err
	}
	if s == "" {
		return def, nil
	}
	return s, nil
}

// Int asks until the answer is a number.
func (p *prompter) Int(label string, def int) (int, error) {
	for {
		s, err := p.Text(label, strconv.Itoa(def))
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(s)
		if err == nil {
			return n, nil
		}
		fmt.Fprintf(p.out, "%q is not a number\n", s)
	}
}

// Secret asks for a value without echoing it when reading from a terminal.
func (p *prompter) Secret(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	return p.secret()
}

// promptRun collects credentials, the fleet topology and the address of every
// switch the inventory does not list.
func promptRun(p *prompter, cfg *config.Config, params entities.TopologyParams) (entities.TopologyParams, error) {
	username, err := p.Text("Username for the switch connections", cfg.Username)
	if err != nil {
		return params, err
	}
	password := cfg.Password
	if password == "" {
		if password, err = p.Secret("Password for the switch connections"); err != nil {
			return params, err
		}
	}
	enable := cfg.EnablePassword
	if enable == "" {
		if enable, err = p.Secret("Enable password (empty: same as password)"); err != nil {
			return params, err
		}
		if enable == "" {
			enable = password
		}
	}
	cfg.SetCredentials(username, password, enable)

	if params.SwitchCount, err = p.Int("How many switches to configure", max(params.SwitchCount, 1)); err != nil {
		return params, err
	}
	if params.StartVlan, err = p.Int("First VLAN for access ports", max(params.StartVlan, 11)); err != nil {
		return params, err
	}
	if params.AccessPortCount, err = p.Int("Number of access ports", params.AccessPortCount); err != nil {
		return params, err
	}
	if params.TrunkPortCount, err = p.Int("Number of trunk ports", params.TrunkPortCount); err != nil {
		return params, err
	}

	for i := 1; i <= params.SwitchCount; i++ {
		if _, err := cfg.TargetFor(i); err == nil {
			continue
		}
		hostname := fmt.Sprintf("%s%d", params.HostnamePrefix, i)
		addr, err := p.Text(fmt.Sprintf("Address to reach switch %d (hostname %s)", i, hostname), "")
		if err != nil {
			return params, err
		}
		if addr == "" {
			continue
		}
		if err := cfg.AddSwitch(i, addr); err != nil {
			return params, err
		}
	}
	return params, nil
}
