package services

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carlosrabelo/swgen/internal/domain/entities"
	"github.com/carlosrabelo/swgen/internal/mock"
)

func fleetParams(count int) entities.TopologyParams {
	p := baseParams()
	p.SwitchCount = count
	return p
}

func TestFleetOrchestrator_GenerateOnly(t *testing.T) {
	results, err := NewFleetOrchestrator(NewGenerator(nil)).Run(context.Background(), fleetParams(3))
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, r := range results {
		require.True(t, r.OK())
		assert.Equal(t, i+1, r.Identity.Index)
		assert.Equal(t, []string{"SW1", "SW2", "SW3"}[i], r.Identity.Hostname)
		assert.Equal(t, []string{"10.0.10.2", "10.0.10.3", "10.0.10.4"}[i], r.Identity.ManagementIP)
		require.NotNil(t, r.Document)
		assert.Equal(t, "hostname "+r.Identity.Hostname, r.Document.Lines()[0])
		assert.Empty(t, r.Output)
	}
}

func TestFleetOrchestrator_PartialDeliveryFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	deliverer := mock.NewMockConfigDeliverer(ctrl)

	deliverer.EXPECT().
		Deliver(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id entities.SwitchIdentity, doc *entities.ConfigDocument) (string, error) {
			if id.Index == 2 {
				return "% partial", entities.NewTransportError(id.Hostname, "10.0.0.2", "connect", errors.New("connection refused"))
			}
			return "ok " + doc.Identity.Hostname, nil
		}).
		Times(3)

	results, err := NewFleetOrchestrator(NewGenerator(nil), WithDeliverer(deliverer)).Run(context.Background(), fleetParams(3))
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.True(t, results[0].OK())
	assert.Equal(t, "ok SW1", results[0].Output)
	assert.True(t, results[2].OK())
	assert.Equal(t, "ok SW3", results[2].Output)

	failed := results[1]
	require.Error(t, failed.Err)
	assert.True(t, errors.Is(failed.Err, entities.ErrTransport))
	assert.Equal(t, "SW2", failed.Identity.Hostname)
	assert.NotNil(t, failed.Document)
	assert.Equal(t, "% partial", failed.Output)

	summary := Summarize(results)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
	require.Len(t, summary.Failures, 1)
	assert.Equal(t, 2, summary.Failures[0].Identity.Index)
}

func TestFleetOrchestrator_InvalidParams(t *testing.T) {
	ctrl := gomock.NewController(t)
	generator := mock.NewMockConfigGenerator(ctrl)

	params := fleetParams(2)
	params.StartVlan = 4094
	params.AccessPortCount = 2

	results, err := NewFleetOrchestrator(generator).Run(context.Background(), params)
	require.Error(t, err)
	assert.Nil(t, results)
	assert.True(t, errors.Is(err, entities.ErrValidation))

	_, err = NewFleetOrchestrator(generator).Run(context.Background(), fleetParams(0))
	var verr *entities.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "switchCount", verr.Field)
}

func TestFleetOrchestrator_FleetLargerThanSubnet(t *testing.T) {
	params := fleetParams(2)
	params.ManagementSubnetBase = "10.0.10.253"

	results, err := NewFleetOrchestrator(NewGenerator(nil)).Run(context.Background(), params)
	var verr *entities.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "switchCount", verr.Field)
	assert.Nil(t, results)

	params.SwitchCount = 1
	results, err = NewFleetOrchestrator(NewGenerator(nil)).Run(context.Background(), params)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].OK())
	assert.Equal(t, "10.0.10.254", results[0].Identity.ManagementIP)
}

func TestFleetOrchestrator_HugeSwitchCount(t *testing.T) {
	results, err := NewFleetOrchestrator(NewGenerator(nil)).Run(context.Background(), fleetParams(math.MaxInt/2))
	require.ErrorIs(t, err, entities.ErrValidation)
	assert.Nil(t, results)
}

func TestFleetOrchestrator_GeneratorError(t *testing.T) {
	ctrl := gomock.NewController(t)
	generator := mock.NewMockConfigGenerator(ctrl)

	boom := errors.New("boom")
	generator.EXPECT().Generate(gomock.Any(), gomock.Any()).Return(nil, boom)
	generator.EXPECT().Generate(gomock.Any(), gomock.Any()).Return(&entities.ConfigDocument{}, nil)

	results, err := NewFleetOrchestrator(generator).Run(context.Background(), fleetParams(2))
	require.NoError(t, err)
	assert.ErrorIs(t, results[0].Err, boom)
	assert.True(t, results[1].OK())
}

func TestFleetOrchestrator_ParallelKeepsOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	deliverer := mock.NewMockConfigDeliverer(ctrl)

	var inFlight, peak int32
	deliverer.EXPECT().
		Deliver(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id entities.SwitchIdentity, _ *entities.ConfigDocument) (string, error) {
			n := atomic.AddInt32(&inFlight, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			// later switches finish first
			time.Sleep(time.Duration(10-id.Index) * time.Millisecond)
			atomic.AddInt32(&inFlight, -1)
			return id.Hostname, nil
		}).
		Times(8)

	results, err := NewFleetOrchestrator(NewGenerator(nil), WithDeliverer(deliverer), WithParallel(3)).
		Run(context.Background(), fleetParams(8))
	require.NoError(t, err)
	require.Len(t, results, 8)

	for i, r := range results {
		require.True(t, r.OK())
		assert.Equal(t, i+1, r.Identity.Index)
		assert.Equal(t, r.Identity.Hostname, r.Output)
	}
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(3))
}

func TestFleetOrchestrator_CancelledContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	deliverer := mock.NewMockConfigDeliverer(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := NewFleetOrchestrator(NewGenerator(nil), WithDeliverer(deliverer)).Run(ctx, fleetParams(3))
	require.NoError(t, err)
	require.Len(t, results, 3)
	for _, r := range results {
		assert.ErrorIs(t, r.Err, context.Canceled)
		assert.Nil(t, r.Document)
	}
	assert.Equal(t, 3, Summarize(results).Failed)
}

func TestWithParallel_IgnoresNonPositive(t *testing.T) {
	f := NewFleetOrchestrator(NewGenerator(nil), WithParallel(0), WithParallel(-4))
	assert.Equal(t, 1, f.parallel)
	f = NewFleetOrchestrator(NewGenerator(nil), WithParallel(4))
	assert.Equal(t, 4, f.parallel)
}
