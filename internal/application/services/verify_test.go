package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlosrabelo/swgen/internal/domain/entities"
	domain "github.com/carlosrabelo/swgen/internal/domain/services"
)

type fakeProber struct {
	names  map[string]string
	failed map[string]error
}

func (f *fakeProber) SysName(_ context.Context, target string) (string, error) {
	if err, ok := f.failed[target]; ok {
		return "", err
	}
	return f.names[target], nil
}

func TestSameHostname(t *testing.T) {
	tests := []struct {
		reported, want string
		same           bool
	}{
		{"SW1", "SW1", true},
		{"sw1", "SW1", true},
		{"SW1.lab.local", "SW1", true},
		{" SW1 \n", "SW1", true},
		{"SW10", "SW1", false},
		{"", "SW1", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.same, SameHostname(tt.reported, tt.want), "%q vs %q", tt.reported, tt.want)
	}
}

func TestVerifyServiceDeliver(t *testing.T) {
	prober := &fakeProber{
		names:  map[string]string{"10.0.10.2": "SW1.lab", "10.0.10.3": "SW7"},
		failed: map[string]error{"10.0.10.4": errors.New("request timeout")},
	}
	v := NewVerifyService(prober)

	out, err := v.Deliver(context.Background(), entities.SwitchIdentity{Index: 1, Hostname: "SW1", ManagementIP: "10.0.10.2"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "SW1.lab", out)

	out, err = v.Deliver(context.Background(), entities.SwitchIdentity{Index: 2, Hostname: "SW2", ManagementIP: "10.0.10.3"}, nil)
	assert.ErrorIs(t, err, ErrHostnameMismatch)
	assert.False(t, errors.Is(err, entities.ErrTransport))
	assert.Equal(t, "SW7", out)

	_, err = v.Deliver(context.Background(), entities.SwitchIdentity{Index: 3, Hostname: "SW3", ManagementIP: "10.0.10.4"}, nil)
	var te *entities.TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "verify", te.Op)
	assert.Equal(t, "10.0.10.4", te.Target)
}

func TestVerifyServiceCancelled(t *testing.T) {
	v := NewVerifyService(&fakeProber{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := v.Deliver(ctx, entities.SwitchIdentity{Index: 1, Hostname: "SW1", ManagementIP: "10.0.10.2"}, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, err, entities.ErrTransport)
}

func TestVerifyServiceWithFleet(t *testing.T) {
	prober := &fakeProber{names: map[string]string{
		"10.0.10.2": "SW1",
		"10.0.10.3": "SW2",
		"10.0.10.4": "switch",
	}}
	fleet := domain.NewFleetOrchestrator(domain.NewGenerator(nil),
		domain.WithDeliverer(NewVerifyService(prober)),
		domain.WithParallel(2),
	)
	params := entities.TopologyParams{SwitchCount: 3, StartVlan: 11, AccessPortCount: 2, TrunkPortCount: 1}.WithDefaults()

	results, err := fleet.Run(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.True(t, results[0].OK())
	assert.True(t, results[1].OK())
	assert.ErrorIs(t, results[2].Err, ErrHostnameMismatch)

	summary := domain.Summarize(results)
	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
}
