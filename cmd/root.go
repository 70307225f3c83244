package cmd

import (
	"github.com/spf13/cobra"
)

// NewRootCommand builds the contract-audit command tree.
func NewRootCommand() *cobra.Command {
	var debugMode bool

	rootCmd := &cobra.Command{
		Use:   "contract-audit",
		Short: "Smart contract vulnerability report powered by Slither",
		Long: `contract-audit runs the Slither static analyzer against a Solidity
contract and prints its findings as a report ordered by impact.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(newAnalyzeCmd(&debugMode))
	rootCmd.AddCommand(newConfigCmd())
	return rootCmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	cobra.CheckErr(NewRootCommand().Execute())
}
