package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/carlosrabelo/swgen/internal/domain/entities"
	"github.com/carlosrabelo/swgen/internal/infrastructure/config"
	"github.com/carlosrabelo/swgen/internal/logging"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	verbosity  int
	logFormat  string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	cmd := &cobra.Command{
		Use:               "swgen",
		Short:             "Generate and deploy switch fleet configuration",
		SilenceUsage:      true,
		SilenceErrors:     true,
		CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
		Long: `swgen derives the complete Cisco IOS configuration of every switch in a
fleet from a handful of topology parameters: hostname, management SVI,
one access VLAN per access port, 802.1Q trunks and an optional management ACL.

Topology values come from the inventory file and can be overridden by flags.
apply runs as a sandbox unless --write is given.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.verbosity < 0 || opts.verbosity > 3 {
				return fmt.Errorf("--verbose must be given at most 3 times")
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Inventory file (YAML or .bcl); searched in ./, the user config dir and /etc/swgen/ when empty")
	cmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", "Verbosity: -v debug logs, -vv raw switch output, -vvv both")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "Log format: text, json, simple or compact")

	cmd.AddCommand(newGenerateCmd(opts))
	cmd.AddCommand(newApplyCmd(opts))
	cmd.AddCommand(newVerifyCmd(opts))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// loadConfig finds and loads the inventory and initializes logging from it.
// Without an explicit --config a missing inventory is not an error.
func (o *globalOptions) loadConfig() (*config.Config, error) {
	cfg := config.Default()
	path, err := config.FindConfigFile(o.configPath)
	switch {
	case errors.Is(err, config.ErrNoConfig):
	case err != nil:
		return nil, err
	default:
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}

	logCfg := cfg.Logging
	if o.verbosity > 0 {
		logCfg.Level = logging.LevelForVerbosity(o.verbosity)
	}
	if o.logFormat != "" {
		logCfg.Format = o.logFormat
	}
	if logCfg.Format == "" {
		logCfg.Format = "simple"
	}
	logging.InitLogger(logCfg)
	if path != "" {
		logging.WithComponent("cli").WithField("path", path).Debug("Using inventory")
	}
	return cfg, nil
}

// topologyFlags binds the topology overrides of a command.
type topologyFlags struct {
	cmd    *cobra.Command
	values entities.TopologyParams
	trunk  string
}

func addTopologyFlags(cmd *cobra.Command) *topologyFlags {
	t := &topologyFlags{cmd: cmd}
	f := cmd.Flags()
	f.IntVarP(&t.values.SwitchCount, "switches", "n", 0, "Number of switches in the fleet")
	f.IntVar(&t.values.StartVlan, "start-vlan", 0, "First access VLAN")
	f.IntVar(&t.values.AccessPortCount, "access-ports", 0, "Access ports per switch")
	f.IntVar(&t.values.TrunkPortCount, "trunk-ports", 0, "Trunk ports per switch")
	f.IntVar(&t.values.ManagementVlan, "management-vlan", entities.DefaultManagementVlan, "Management VLAN, native VLAN of every trunk")
	f.StringVar(&t.values.ManagementSubnetBase, "management-ip-base", entities.DefaultManagementSubnetBase, "Base address; switch i gets base+i")
	f.StringVar(&t.trunk, "trunk-allowed", string(entities.TrunkAllowAll), "Trunk allowed VLANs: all or explicit")
	f.StringVar(&t.values.HostnamePrefix, "hostname-prefix", entities.DefaultHostnamePrefix, "Hostname prefix; switch i is <prefix><i>")
	f.StringVar(&t.values.InterfacePrefix, "interface-prefix", entities.DefaultInterfacePrefix, "Interface name prefix; port p is <prefix><p>")
	f.BoolVar(&t.values.ManagementACL, "acl", false, "Restrict the management SVI with an access list")
	f.BoolVar(&t.values.IPRouting, "ip-routing", false, "Enable ip routing")
	f.BoolVar(&t.values.ReuseManagementVlan, "reuse-management-vlan", false, "Allow the management VLAN inside the access range")
	f.IntVar(&t.values.MaxPorts, "max-ports", 0, "Physical ports per switch; 0 disables the check")
	return t
}

// apply overrides the inventory topology with every flag set on the command line.
func (t *topologyFlags) apply(p entities.TopologyParams) entities.TopologyParams {
	changed := t.cmd.Flags().Changed
	if changed("switches") {
		p.SwitchCount = t.values.SwitchCount
	}
	if changed("start-vlan") {
		p.StartVlan = t.values.StartVlan
	}
	if changed("access-ports") {
		p.AccessPortCount = t.values.AccessPortCount
	}
	if changed("trunk-ports") {
		p.TrunkPortCount = t.values.TrunkPortCount
	}
	if changed("management-vlan") {
		p.ManagementVlan = t.values.ManagementVlan
	}
	if changed("management-ip-base") {
		p.ManagementSubnetBase = t.values.ManagementSubnetBase
	}
	if changed("trunk-allowed") {
		p.TrunkAllowed = entities.TrunkAllowedMode(t.trunk)
	}
	if changed("hostname-prefix") {
		p.HostnamePrefix = t.values.HostnamePrefix
	}
	if changed("interface-prefix") {
		p.InterfacePrefix = t.values.InterfacePrefix
	}
	if changed("acl") {
		p.ManagementACL = t.values.ManagementACL
	}
	if changed("ip-routing") {
		p.IPRouting = t.values.IPRouting
	}
	if changed("reuse-management-vlan") {
		p.ReuseManagementVlan = t.values.ReuseManagementVlan
	}
	if changed("max-ports") {
		p.MaxPorts = t.values.MaxPorts
	}
	return p.WithDefaults()
}
