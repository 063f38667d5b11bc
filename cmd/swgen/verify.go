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
	"github.com/carlosrabelo/swgen/internal/infrastructure/snmp"
)

// newProber builds the SNMP client used by verify; tests replace it.
var newProber = func(cfg config.SNMPConfig) appservices.NameProber {
	return snmp.NewProber(cfg.Community, cfg.Port, cfg.TimeoutDuration(), cfg.Retries)
}

type verifyOptions struct {
	community string
	parallel  int
}

func newVerifyCmd(g *globalOptions) *cobra.Command {
	opts := &verifyOptions{}
	var topo *topologyFlags

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check that every switch answers on its management address",
		Long: `Poll sysName over SNMP v2c on the management address of every switch and
compare it with the hostname swgen generated for it. Nothing is sent to the
switches; SNMP must already be enabled on them.

Examples:
  swgen verify -c swgen.yaml
  swgen verify --community monitor --parallel 8`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.parallel < 1 {
				return fmt.Errorf("--parallel must be at least 1")
			}
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			if opts.community != "" {
				cfg.SNMP.Community = opts.community
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runVerify(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), newProber(cfg.SNMP), topo.apply(cfg.Topology), opts)
		},
	}
	topo = addTopologyFlags(cmd)
	cmd.Flags().StringVar(&opts.community, "community", "", "SNMP community, overrides snmp.community of the inventory")
	cmd.Flags().IntVarP(&opts.parallel, "parallel", "p", 4, "Switches polled at the same time")
	return cmd
}

func runVerify(ctx context.Context, out, errOut io.Writer, prober appservices.NameProber, params entities.TopologyParams, opts *verifyOptions) error {
	if err := services.ValidateFleet(params); err != nil {
		return err
	}
	fleet := services.NewFleetOrchestrator(services.NewGenerator(nil),
		services.WithDeliverer(appservices.NewVerifyService(prober)),
		services.WithParallel(opts.parallel),
	)
	results, err := fleet.Run(ctx, params)
	if err != nil {
		return err
	}
	for _, r := range results {
		label := fmt.Sprintf("%s (%s)", switchLabel(r.Identity), r.Identity.ManagementIP)
		if !r.OK() {
			fmt.Fprintf(errOut, "FAILED %s: %v\n", label, r.Err)
			continue
		}
		fmt.Fprintf(out, "OK %s: %s\n", label, r.Output)
	}
	summary := services.Summarize(results)
	fmt.Fprintf(out, "Verified: %d switches, %d answered, %d failed\n", summary.Total, summary.Succeeded, summary.Failed)
	return failedErr(summary)
}
