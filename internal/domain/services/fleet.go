package services

import (
	"context"
	"errors"
	"sync"

	"github.com/carlosrabelo/swgen/internal/domain/entities"
	"github.com/carlosrabelo/swgen/internal/domain/ports"
	"github.com/carlosrabelo/swgen/internal/logging"
)

// SwitchResult is the outcome of one switch in a fleet run.
type SwitchResult struct {
	Identity entities.SwitchIdentity
	Document *entities.ConfigDocument
	Output   string
	Err      error
}

// OK reports whether the switch was generated and, if requested, delivered.
func (r SwitchResult) OK() bool {
	return r.Err == nil
}

// FleetSummary aggregates the results of a run.
type FleetSummary struct {
	Total     int
	Succeeded int
	Failed    int
	Failures  []SwitchResult
}

// Summarize counts successes and collects failures in switch order.
func Summarize(results []SwitchResult) FleetSummary {
	s := FleetSummary{Total: len(results)}
	for _, r := range results {
		if r.OK() {
			s.Succeeded++
			continue
		}
		s.Failed++
		s.Failures = append(s.Failures, r)
	}
	return s
}

// FleetOption configures a FleetOrchestrator.
type FleetOption func(*FleetOrchestrator)

// WithParallel processes up to n switches at a time.
func WithParallel(n int) FleetOption {
	return func(f *FleetOrchestrator) {
		if n > 0 {
			f.parallel = n
		}
	}
}

// WithDeliverer hands every generated document to d.
func WithDeliverer(d ports.ConfigDeliverer) FleetOption {
	return func(f *FleetOrchestrator) {
		f.deliverer = d
	}
}

// FleetOrchestrator generates, and optionally delivers, the configuration of
// every switch of a fleet. Failures stay attached to their switch.
type FleetOrchestrator struct {
	generator ports.ConfigGenerator
	deliverer ports.ConfigDeliverer
	parallel  int
}

// NewFleetOrchestrator creates an orchestrator around generator.
func NewFleetOrchestrator(generator ports.ConfigGenerator, opts ...FleetOption) *FleetOrchestrator {
	f := &FleetOrchestrator{generator: generator, parallel: 1}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Run processes switches 1..SwitchCount and returns one result per switch in
// index order. The error is non-nil only when the fleet parameters themselves
// are invalid, in which case nothing is generated.
func (f *FleetOrchestrator) Run(ctx context.Context, params entities.TopologyParams) ([]SwitchResult, error) {
	params = params.WithDefaults()
	if err := ValidateFleet(params); err != nil {
		return nil, err
	}

	log := logging.WithComponent("fleet")
	log.WithField("switches", params.SwitchCount).WithField("parallel", f.parallel).Debug("Starting fleet run")

	results := make([]SwitchResult, params.SwitchCount)
	indices := make(chan int)

	var wg sync.WaitGroup
	workers := min(f.parallel, params.SwitchCount)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				results[i-1] = f.runOne(ctx, i, params)
			}
		}()
	}

	for i := 1; i <= params.SwitchCount; i++ {
		indices <- i
	}
	close(indices)
	wg.Wait()

	summary := Summarize(results)
	log.WithField("succeeded", summary.Succeeded).WithField("failed", summary.Failed).Info("Fleet run finished")
	return results, nil
}

func (f *FleetOrchestrator) runOne(ctx context.Context, index int, params entities.TopologyParams) SwitchResult {
	identity, err := DeriveIdentity(index, params)
	if err != nil {
		return f.fail(SwitchResult{Identity: entities.SwitchIdentity{Index: index}}, err)
	}
	result := SwitchResult{Identity: identity}

	if err := ctx.Err(); err != nil {
		return f.fail(result, err)
	}

	doc, err := f.generator.Generate(identity, params)
	if err != nil {
		return f.fail(result, err)
	}
	result.Document = doc

	log := logging.WithComponentAndSwitch("fleet", identity.Hostname)
	log.WithField("lines", len(doc.Lines())).Debug("Generated configuration")

	if f.deliverer == nil {
		return result
	}

	output, err := f.deliverer.Deliver(ctx, identity, doc)
	result.Output = output
	if err != nil {
		return f.fail(result, err)
	}
	log.Info("Configuration delivered")
	return result
}

func (f *FleetOrchestrator) fail(result SwitchResult, err error) SwitchResult {
	result.Err = err
	entry := logging.WithComponent("fleet").WithError(err).WithField("index", result.Identity.Index)
	if result.Identity.Hostname != "" {
		entry = entry.WithField("switch", result.Identity.Hostname)
	}
	var verr *entities.ValidationError
	switch {
	case errors.As(err, &verr):
		entry.Error("Configuration rejected")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		entry.Warn("Switch skipped")
	default:
		entry.Error("Configuration delivery failed")
	}
	return result
}
