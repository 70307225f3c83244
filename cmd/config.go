package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/user/contract-audit/pkg/config"
)

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration (slither binary, solc version, defaults)",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := effectiveConfig()
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			path, _ := config.GetConfigPath()
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", path, data)
			return nil
		},
	}

	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Persist configuration values",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("error loading config: %w", err)
			}

			flags := cmd.Flags()
			changed := false
			for name, field := range map[string]*string{
				"slither-bin": &cfg.SlitherBinary,
				"solc":        &cfg.SolcVersion,
				"contract":    &cfg.ContractPath,
				"fail-on":     &cfg.FailOn,
			} {
				if flags.Changed(name) {
					*field, _ = flags.GetString(name)
					changed = true
				}
			}
			if !changed {
				return fmt.Errorf("nothing to set: pass at least one of --slither-bin, --solc, --contract, --fail-on")
			}

			cfg.Normalize()
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := config.SaveConfig(cfg); err != nil {
				return fmt.Errorf("error saving config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration updated: slither=%s solc=%s contract=%s fail-on=%s\n",
				cfg.SlitherBinary, cfg.SolcVersion, cfg.ContractPath, cfg.FailOn)
			return nil
		},
	}
	setCmd.Flags().String("slither-bin", "", "Path or name of the slither executable")
	setCmd.Flags().String("solc", "", "solc version passed to --solc-solcs-select")
	setCmd.Flags().String("contract", "", "Default contract to analyze")
	setCmd.Flags().String("fail-on", "", "Default --fail-on threshold")

	configCmd.AddCommand(showCmd)
	configCmd.AddCommand(setCmd)
	return configCmd
}
