package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlosrabelo/swgen/internal/domain/entities"
	domain "github.com/carlosrabelo/swgen/internal/domain/services"
	"github.com/carlosrabelo/swgen/internal/infrastructure/transport"
)

// recordingClient implements transport.Client and AuthConfigurable for testing
type recordingClient struct {
	connected  bool
	connectErr error
	failOn     string
	responses  map[string]string
	sent       []string
	auth       []entities.AuthPrompt
	onCommand  func(cmd string)
}

func (c *recordingClient) Connect() error {
	if c.connectErr != nil {
		return c.connectErr
	}
	c.connected = true
	return nil
}

func (c *recordingClient) Disconnect() { c.connected = false }

func (c *recordingClient) IsConnected() bool { return c.connected }

func (c *recordingClient) ExecuteCommand(cmd string) (string, error) {
	c.sent = append(c.sent, cmd)
	if c.onCommand != nil {
		c.onCommand(cmd)
	}
	if cmd == c.failOn {
		return "% Invalid input detected", errors.New("rejected")
	}
	return c.responses[cmd], nil
}

func (c *recordingClient) SetAuthSequence(prompts []entities.AuthPrompt) { c.auth = prompts }

func generated(t *testing.T) (entities.SwitchIdentity, *entities.ConfigDocument) {
	t.Helper()
	params := entities.TopologyParams{SwitchCount: 1, StartVlan: 11, AccessPortCount: 2, TrunkPortCount: 1}
	identity, err := domain.DeriveIdentity(1, params)
	require.NoError(t, err)
	doc, err := domain.NewGenerator(nil).Generate(identity, params)
	require.NoError(t, err)
	return identity, doc
}

func staticTarget(target entities.SwitchTarget) TargetResolver {
	return TargetResolverFunc(func(index int) (entities.SwitchTarget, error) {
		target.Index = index
		return target, nil
	})
}

func providerFor(c *recordingClient) ClientProvider {
	return func(entities.SwitchTarget) transport.Client { return c }
}

func TestDeliver_SendsDocumentInOrder(t *testing.T) {
	identity, doc := generated(t)
	client := &recordingClient{responses: map[string]string{"write memory": "[OK]"}}
	svc := NewDeliveryService(
		staticTarget(entities.SwitchTarget{Target: "10.1.1.1", Username: "admin", Password: "pw", EnablePassword: "en"}),
		WithClientProvider(providerFor(client)),
	)

	out, err := svc.Deliver(context.Background(), identity, doc)
	require.NoError(t, err)

	assert.Equal(t, append([]string{"configure terminal"}, doc.Lines()...), client.sent)
	assert.Equal(t, "[OK]\n", out)
	assert.False(t, client.connected, "session should be closed after delivery")

	require.NotEmpty(t, client.auth)
	assert.Equal(t, "admin\n", client.auth[0].SendCmd)
	assert.Equal(t, "en\n", client.auth[3].SendCmd)
}

func TestDeliver_Sandbox(t *testing.T) {
	identity, doc := generated(t)
	client := &recordingClient{}
	svc := NewDeliveryService(
		staticTarget(entities.SwitchTarget{Target: "10.1.1.1", Sandbox: true}),
		WithClientProvider(providerFor(client)),
	)

	out, err := svc.Deliver(context.Background(), identity, doc)
	require.NoError(t, err)
	assert.Equal(t, doc.Text(), out)
	assert.Empty(t, client.sent)
	assert.False(t, client.connected)
}

func TestDeliver_ConnectFailure(t *testing.T) {
	identity, doc := generated(t)
	client := &recordingClient{connectErr: errors.New("connection refused")}
	svc := NewDeliveryService(staticTarget(entities.SwitchTarget{Target: "10.1.1.1"}), WithClientProvider(providerFor(client)))

	_, err := svc.Deliver(context.Background(), identity, doc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, entities.ErrTransport))

	var terr *entities.TransportError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, "connect", terr.Op)
	assert.Equal(t, "SW1", terr.Switch)
	assert.Equal(t, "10.1.1.1", terr.Target)
	assert.Empty(t, client.sent)
}

func TestDeliver_CommandRejected(t *testing.T) {
	identity, doc := generated(t)
	client := &recordingClient{failOn: "vlan 12"}
	svc := NewDeliveryService(staticTarget(entities.SwitchTarget{Target: "10.1.1.1"}), WithClientProvider(providerFor(client)))

	out, err := svc.Deliver(context.Background(), identity, doc)
	var terr *entities.TransportError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, "send", terr.Op)
	assert.Contains(t, err.Error(), "vlan 12")
	assert.Contains(t, out, "% Invalid input detected")
	assert.Equal(t, "vlan 12", client.sent[len(client.sent)-1])
	assert.False(t, client.connected)
}

func TestDeliver_CancelledMidway(t *testing.T) {
	identity, doc := generated(t)
	ctx, cancel := context.WithCancel(context.Background())
	client := &recordingClient{onCommand: func(cmd string) {
		if cmd == "vlan 10" {
			cancel()
		}
	}}
	svc := NewDeliveryService(staticTarget(entities.SwitchTarget{Target: "10.1.1.1"}), WithClientProvider(providerFor(client)))

	_, err := svc.Deliver(ctx, identity, doc)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, err, entities.ErrTransport)
	assert.Equal(t, []string{"configure terminal", "hostname SW1", "no ip domain-lookup", "vlan 10"}, client.sent)
}

func TestDeliver_CancelledBeforeConnect(t *testing.T) {
	identity, doc := generated(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	client := &recordingClient{}
	svc := NewDeliveryService(staticTarget(entities.SwitchTarget{Target: "10.1.1.1"}), WithClientProvider(providerFor(client)))

	_, err := svc.Deliver(ctx, identity, doc)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, client.connected)
	assert.Empty(t, client.sent)
}

func TestDeliver_PlatformCheck(t *testing.T) {
	tests := []struct {
		name    string
		version string
		wantErr bool
	}{
		{name: "ios device", version: "Cisco IOS Software, C2960 Software (C2960-LANBASEK9-M)"},
		{name: "other device", version: "DmOS 5.2", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, doc := generated(t)
			client := &recordingClient{responses: map[string]string{"show version": tt.version}}
			svc := NewDeliveryService(
				staticTarget(entities.SwitchTarget{Target: "10.1.1.1"}),
				WithClientProvider(providerFor(client)),
				WithPlatformCheck(true),
			)

			_, err := svc.Deliver(context.Background(), identity, doc)
			require.NotEmpty(t, client.sent)
			assert.Equal(t, "show version", client.sent[0])
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, "configure terminal", client.sent[1])
				return
			}
			var terr *entities.TransportError
			require.True(t, errors.As(err, &terr))
			assert.Equal(t, "detect", terr.Op)
			assert.Len(t, client.sent, 1)
		})
	}
}

func TestDeliver_AutoPlatform(t *testing.T) {
	tests := []struct {
		name    string
		version string
		errText string
	}{
		{name: "detected ios", version: "Cisco IOS Software, C3750 Software"},
		{name: "unknown device", version: "DmOS 5.2", errText: "unable to detect switch platform"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, doc := generated(t)
			client := &recordingClient{responses: map[string]string{"show version": tt.version}}
			svc := NewDeliveryService(
				staticTarget(entities.SwitchTarget{Target: "10.1.1.1", Platform: "auto", Username: "admin"}),
				WithClientProvider(providerFor(client)),
			)

			_, err := svc.Deliver(context.Background(), identity, doc)
			require.NotEmpty(t, client.sent)
			assert.Equal(t, "show version", client.sent[0])
			require.NotEmpty(t, client.auth, "login follows the document's platform")
			if tt.errText == "" {
				require.NoError(t, err)
				assert.Equal(t, append([]string{"show version", "configure terminal"}, doc.Lines()...), client.sent)
				return
			}
			var terr *entities.TransportError
			require.ErrorAs(t, err, &terr)
			assert.Equal(t, "detect", terr.Op)
			assert.Contains(t, err.Error(), tt.errText)
			assert.Len(t, client.sent, 1)
		})
	}
}

func TestDeliver_AutoPlatformUnknownDocumentPlatform(t *testing.T) {
	identity, doc := generated(t)
	doc.Platform = "dmos"
	client := &recordingClient{}
	svc := NewDeliveryService(
		staticTarget(entities.SwitchTarget{Target: "10.1.1.1", Platform: "auto"}),
		WithClientProvider(providerFor(client)),
	)

	_, err := svc.Deliver(context.Background(), identity, doc)
	var terr *entities.TransportError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "resolve", terr.Op)
	assert.Empty(t, client.sent)
}

func TestDeliver_ResolveErrors(t *testing.T) {
	identity, doc := generated(t)

	svc := NewDeliveryService(TargetResolverFunc(func(int) (entities.SwitchTarget, error) {
		return entities.SwitchTarget{}, errors.New("no switch 1 in inventory")
	}))
	_, err := svc.Deliver(context.Background(), identity, doc)
	var terr *entities.TransportError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, "resolve", terr.Op)

	svc = NewDeliveryService(staticTarget(entities.SwitchTarget{Target: "10.1.1.1", Platform: "junos"}))
	_, err = svc.Deliver(context.Background(), identity, doc)
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, "resolve", terr.Op)
}

func TestDeliver_WithFleet(t *testing.T) {
	clients := map[int]*recordingClient{
		1: {},
		2: {connectErr: errors.New("timeout")},
		3: {},
	}
	resolver := TargetResolverFunc(func(index int) (entities.SwitchTarget, error) {
		return entities.SwitchTarget{Index: index, Target: "10.1.1." + string(rune('0'+index))}, nil
	})
	svc := NewDeliveryService(resolver, WithClientProvider(func(target entities.SwitchTarget) transport.Client {
		return clients[target.Index]
	}))

	fleet := domain.NewFleetOrchestrator(domain.NewGenerator(nil), domain.WithDeliverer(svc))
	results, err := fleet.Run(context.Background(), entities.TopologyParams{SwitchCount: 3, StartVlan: 11, AccessPortCount: 2, TrunkPortCount: 1})
	require.NoError(t, err)

	assert.True(t, results[0].OK())
	assert.True(t, results[2].OK())
	assert.ErrorIs(t, results[1].Err, entities.ErrTransport)
	assert.NotEmpty(t, clients[1].sent)
	assert.Empty(t, clients[2].sent)
	assert.NotEmpty(t, clients[3].sent)
	assert.Equal(t, "hostname SW3", clients[3].sent[1])
}
