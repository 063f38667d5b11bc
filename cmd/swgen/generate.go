package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/carlosrabelo/swgen/internal/domain/entities"
	"github.com/carlosrabelo/swgen/internal/domain/services"
	"github.com/carlosrabelo/swgen/internal/platform"
)

type generateOptions struct {
	format      string
	switchIndex int
}

func newGenerateCmd(g *globalOptions) *cobra.Command {
	opts := &generateOptions{}
	var topo *topologyFlags

	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Print the configuration of every switch without connecting to any",
		Long: `Print the generated configuration of the fleet.

Examples:
  swgen generate -n 3 --start-vlan 11 --access-ports 20 --trunk-ports 4
  swgen generate -c swgen.yaml --switch 2
  swgen generate -c swgen.yaml --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			driver, err := platform.Resolve(cfg.Platform)
			if err != nil {
				return err
			}
			return runGenerate(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(),
				services.NewGenerator(driver), topo.apply(cfg.Topology), opts)
		},
	}
	topo = addTopologyFlags(cmd)
	cmd.Flags().StringVarP(&opts.format, "format", "o", formatText, "Output format: text, yaml or json")
	cmd.Flags().IntVar(&opts.switchIndex, "switch", 0, "Only print switch N (1-based)")
	return cmd
}

func runGenerate(ctx context.Context, out, errOut io.Writer, generator *services.Generator, params entities.TopologyParams, opts *generateOptions) error {
	if err := checkFormat(opts.format); err != nil {
		return err
	}
	if opts.switchIndex < 0 {
		return fmt.Errorf("--switch must be a switch number starting at 1")
	}

	results, err := services.NewFleetOrchestrator(generator).Run(ctx, params)
	if err != nil {
		return err
	}
	if opts.switchIndex > 0 {
		if opts.switchIndex > len(results) {
			return fmt.Errorf("--switch %d is outside the fleet of %d switches", opts.switchIndex, len(results))
		}
		results = results[opts.switchIndex-1 : opts.switchIndex]
	}

	docs := make([]*entities.ConfigDocument, 0, len(results))
	for _, r := range results {
		if r.OK() {
			docs = append(docs, r.Document)
			continue
		}
		fmt.Fprintf(errOut, "%s: %v\n", switchLabel(r.Identity), r.Err)
	}

	if err := render(out, opts.format, docs); err != nil {
		return err
	}
	return failedErr(services.Summarize(results))
}

func switchLabel(id entities.SwitchIdentity) string {
	if id.Hostname != "" {
		return id.Hostname
	}
	return fmt.Sprintf("switch %d", id.Index)
}

func failedErr(summary services.FleetSummary) error {
	if summary.Failed == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d switches failed", summary.Failed, summary.Total)
}
