package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	appservices "github.com/carlosrabelo/swgen/internal/application/services"
	"github.com/carlosrabelo/swgen/internal/domain/entities"
	"github.com/carlosrabelo/swgen/internal/domain/services"
	"github.com/carlosrabelo/swgen/internal/infrastructure/config"
	"github.com/carlosrabelo/swgen/internal/infrastructure/transport"
	"github.com/carlosrabelo/swgen/internal/logging"
	"github.com/carlosrabelo/swgen/internal/platform"
)

type applyOptions struct {
	write          bool
	parallel       int
	interactive    bool
	verifyPlatform bool
}

func newApplyCmd(g *globalOptions) *cobra.Command {
	opts := &applyOptions{}
	var topo *topologyFlags

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Generate the configuration of every switch and push it",
		Long: `Generate the fleet configuration and send it to every switch of the inventory.

Without --write nothing is sent: each switch's configuration is printed as it
would be pushed (sandbox mode). A failing switch does not stop the others; the
command exits non-zero when any switch failed.

Examples:
  swgen apply -c swgen.yaml
  swgen apply -c swgen.yaml --write --parallel 4
  swgen apply --interactive --write`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.parallel < 1 {
				return fmt.Errorf("--parallel must be at least 1")
			}
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			params := topo.apply(cfg.Topology)

			if opts.interactive {
				p := newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
				if params, err = promptRun(p, cfg, params); err != nil {
					return err
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runApply(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, params, opts, g.verbosity)
		},
	}
	topo = addTopologyFlags(cmd)
	cmd.Flags().BoolVarP(&opts.write, "write", "w", false, "Push the configuration (disables sandbox mode)")
	cmd.Flags().IntVarP(&opts.parallel, "parallel", "p", 1, "Switches configured at the same time")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "Prompt for credentials, topology and missing switch addresses")
	cmd.Flags().BoolVar(&opts.verifyPlatform, "verify-platform", false, "Refuse switches whose 'show version' does not match the platform")
	return cmd
}

func runApply(ctx context.Context, out, errOut io.Writer, cfg *config.Config, params entities.TopologyParams, opts *applyOptions, verbosity int) error {
	if err := services.ValidateFleet(params); err != nil {
		return err
	}
	if opts.write {
		if err := cfg.CheckDelivery(params.SwitchCount); err != nil {
			return fmt.Errorf("inventory is not ready for delivery:\n%w", err)
		}
	}
	cfg.SetRunFlags(opts.write, verbosity)

	driver, err := platform.Resolve(cfg.Platform)
	if err != nil {
		return err
	}

	// switches missing from the inventory are still rendered in a sandbox run
	resolver := appservices.TargetResolverFunc(func(index int) (entities.SwitchTarget, error) {
		target, err := cfg.TargetFor(index)
		if err != nil && !opts.write {
			return entities.SwitchTarget{Index: index, Platform: cfg.Platform, Sandbox: true}, nil
		}
		return target, err
	})

	defer transport.CloseAll()
	deliverer := appservices.NewDeliveryService(resolver, appservices.WithPlatformCheck(opts.verifyPlatform))
	fleet := services.NewFleetOrchestrator(services.NewGenerator(driver),
		services.WithDeliverer(deliverer),
		services.WithParallel(opts.parallel),
	)

	log := logging.WithComponent("cli")
	if !opts.write {
		log.Info("Sandbox mode: nothing will be sent, use --write to push")
	}

	results, err := fleet.Run(ctx, params)
	if err != nil {
		return err
	}

	for _, r := range results {
		target, _ := resolver.TargetFor(r.Identity.Index)
		label := switchLabel(r.Identity)
		if target.Target != "" {
			label = fmt.Sprintf("%s (%s)", label, target.Target)
		}
		switch {
		case !r.OK():
			fmt.Fprintf(errOut, "FAILED %s: %v\n", label, r.Err)
		case !opts.write:
			fmt.Fprintf(out, "! %s, sandbox: not sent\n%s\n", label, r.Output)
		default:
			fmt.Fprintf(out, "OK %s\n", label)
			if target.IsRawOutputEnabled() && r.Output != "" {
				fmt.Fprintln(out, r.Output)
			}
		}
	}

	summary := services.Summarize(results)
	fmt.Fprintf(out, "Fleet: %d switches, %d succeeded, %d failed\n", summary.Total, summary.Succeeded, summary.Failed)
	return failedErr(summary)
}
