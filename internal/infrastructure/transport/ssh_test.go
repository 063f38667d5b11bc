package transport

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/carlosrabelo/swgen/internal/domain/entities"
)

func TestReadUntilAny(t *testing.T) {
	in := make(chan []byte, 4)
	in <- []byte("Cisco IOS\r\n")
	in <- []byte("SW1>")

	var chunks int
	out, err := readUntilAny(in, []string{"#", ">"}, time.Second, func([]byte) { chunks++ })
	if err != nil {
		t.Fatalf("readUntilAny() error = %v", err)
	}
	if out != "Cisco IOS\r\nSW1>" {
		t.Errorf("readUntilAny() = %q", out)
	}
	if chunks != 2 {
		t.Errorf("onChunk called %d times, want 2", chunks)
	}
}

func TestReadUntilAny_Timeout(t *testing.T) {
	in := make(chan []byte)
	_, err := readUntilAny(in, []string{"#"}, 20*time.Millisecond, nil)
	if err == nil || !strings.Contains(err.Error(), "timeout") {
		t.Errorf("readUntilAny() error = %v, want timeout", err)
	}
}

func TestReadUntilAny_Closed(t *testing.T) {
	in := make(chan []byte, 1)
	in <- []byte("partial")
	close(in)
	out, err := readUntilAny(in, []string{"#"}, time.Second, nil)
	if err == nil || !strings.Contains(err.Error(), "closed") {
		t.Errorf("readUntilAny() error = %v, want closed", err)
	}
	if out != "partial" {
		t.Errorf("readUntilAny() = %q, want partial", out)
	}
}

func TestPump(t *testing.T) {
	out := make(chan []byte, 8)
	done := make(chan struct{})
	pump(strings.NewReader("SW1#"), out, done)

	var got strings.Builder
	for chunk := range out {
		got.Write(chunk)
	}
	if got.String() != "SW1#" {
		t.Errorf("pump() forwarded %q", got.String())
	}
}

func TestPump_StopsOnDone(t *testing.T) {
	r, w := io.Pipe()
	out := make(chan []byte)
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		pump(r, out, done)
		close(finished)
	}()

	go w.Write([]byte("unread"))
	time.Sleep(20 * time.Millisecond)
	close(done)

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("pump() did not stop after done was closed")
	}
	w.Close()
}

func TestSSHClient_NotConnected(t *testing.T) {
	client := NewSSHClient(entities.SwitchTarget{Target: "192.168.1.1"})
	if client.IsConnected() {
		t.Error("new client should not be connected")
	}
	if _, err := client.ExecuteCommand("show version"); err == nil {
		t.Error("ExecuteCommand() expected error when not connected")
	}
	client.Disconnect()
}

func TestSSHClient_ClientConfig(t *testing.T) {
	client := NewSSHClient(entities.SwitchTarget{Target: "10.0.0.1", Username: "admin", Password: "pw", Timeout: 3 * time.Second})
	cfg := client.clientConfig()
	if cfg.User != "admin" {
		t.Errorf("User = %q, want admin", cfg.User)
	}
	if len(cfg.Auth) != 2 {
		t.Errorf("expected password and keyboard-interactive auth, got %d methods", len(cfg.Auth))
	}
	if cfg.Timeout != 3*time.Second {
		t.Errorf("Timeout = %v, want 3s", cfg.Timeout)
	}
}
