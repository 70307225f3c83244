package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/user/contract-audit/pkg/config"
	"github.com/user/contract-audit/pkg/engine"
	"github.com/user/contract-audit/pkg/logging"
	"github.com/user/contract-audit/pkg/report"
	"github.com/user/contract-audit/pkg/wrappers"
)

var errAnalysisFailed = errors.New("slither analysis did not produce a usable report")

func newAnalyzeCmd(debugMode *bool) *cobra.Command {
	analyzeCmd := &cobra.Command{
		Use:   "analyze [contract]",
		Short: "Run Slither on a contract and print the vulnerability report",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args, *debugMode)
		},
	}

	analyzeCmd.Flags().String("solc", "", "solc version selected through solc-select (default from config, 0.5.0)")
	analyzeCmd.Flags().String("slither-bin", "", "Path or name of the slither executable")
	analyzeCmd.Flags().String("fail-on", "", "Exit non-zero when a finding has at least this impact (none|informational|low|medium|high)")
	analyzeCmd.Flags().Bool("strict", false, "Exit non-zero when the analysis itself fails")
	analyzeCmd.Flags().Bool("no-color", false, "Disable colored output")
	analyzeCmd.Flags().Bool("force-color", false, "Color output even when stdout is not a terminal")
	return analyzeCmd
}

func runAnalyze(cmd *cobra.Command, args []string, debug bool) error {
	cfg, err := effectiveConfig()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("solc") {
		cfg.SolcVersion, _ = flags.GetString("solc")
	}
	if flags.Changed("slither-bin") {
		cfg.SlitherBinary, _ = flags.GetString("slither-bin")
	}
	if flags.Changed("fail-on") {
		cfg.FailOn, _ = flags.GetString("fail-on")
	}
	if len(args) == 1 {
		cfg.ContractPath = args[0]
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return err
	}

	strict, _ := flags.GetBool("strict")
	noColor, _ := flags.GetBool("no-color")
	forceColor, _ := flags.GetBool("force-color")
	colorMode := report.ColorAuto
	switch {
	case noColor:
		colorMode = report.ColorNever
	case forceColor:
		colorMode = report.ColorAlways
	}

	out := cmd.OutOrStdout()
	logger := logging.New(cmd.ErrOrStderr(), debug).With().Str("run_id", uuid.NewString()).Logger()
	logger.Debug().
		Str("contract", cfg.ContractPath).
		Str("solc", cfg.SolcVersion).
		Str("fail_on", cfg.FailOn).
		Msg("starting analysis")

	slither := wrappers.NewSlitherWrapper(cfg.SlitherBinary, cfg.SolcVersion, out, &logger)
	result := slither.RunAnalysis(cmd.Context(), cfg.ContractPath)
	report.New(out, colorMode).Render(result)

	if result == nil || !result.Success {
		if strict {
			return errAnalysisFailed
		}
		return nil
	}
	return checkThreshold(result, cfg.FailOn)
}

func checkThreshold(result *engine.AnalysisResult, failOn string) error {
	if failOn == "" || failOn == config.DefaultFailOn {
		return nil
	}
	threshold, err := engine.ParseImpact(failOn)
	if err != nil {
		return err
	}
	if n := result.CountAtOrAbove(threshold); n > 0 {
		return fmt.Errorf("%d finding(s) at or above %s impact", n, threshold)
	}
	return nil
}

func effectiveConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	cfg.ApplyEnv(os.LookupEnv)
	return cfg, nil
}
