package wrappers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"

	"github.com/user/contract-audit/pkg/engine"
	"github.com/user/contract-audit/pkg/logging"
)

const (
	DefaultBinary      = "slither"
	DefaultSolcVersion = "0.5.0"
)

// SlitherWrapper runs Slither against a single contract and decodes its JSON report.
type SlitherWrapper struct {
	Binary      string
	SolcVersion string
	Runner      Runner
	// Out receives the user-facing diagnostics.
	Out    io.Writer
	Logger *zerolog.Logger
}

// NewSlitherWrapper returns a wrapper that executes binary with os/exec.
func NewSlitherWrapper(binary, solcVersion string, out io.Writer, logger *zerolog.Logger) *SlitherWrapper {
	if binary == "" {
		binary = DefaultBinary
	}
	if solcVersion == "" {
		solcVersion = DefaultSolcVersion
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &SlitherWrapper{
		Binary:      binary,
		SolcVersion: solcVersion,
		Runner:      ExecRunner{},
		Out:         out,
		Logger:      logger,
	}
}

// Args builds the slither argument list for contractPath.
func (s *SlitherWrapper) Args(contractPath string) []string {
	return []string{
		contractPath,
		"--solc-solcs-select", s.SolcVersion,
		"--json", "-",
	}
}

// Invoke runs slither once and returns the decoded report.
//
// Slither exits non-zero whenever a detector fires, so the exit code is only
// used for diagnostics: any non-empty stdout is treated as the report.
func (s *SlitherWrapper) Invoke(ctx context.Context, contractPath string) (*engine.AnalysisResult, error) {
	if _, err := os.Stat(contractPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrContractNotFound, contractPath)
		}
		return nil, &InvocationError{Err: err}
	}

	args := s.Args(contractPath)
	s.Logger.Debug().Str("binary", s.Binary).Strs("args", args).Msg("invoking slither")

	exe, err := s.Runner.Run(ctx, s.Binary, args...)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrToolNotFound, s.Binary)
		}
		return nil, &InvocationError{Err: err}
	}

	s.Logger.Debug().
		Int("exit_code", exe.ExitCode).
		Int("stdout_bytes", len(exe.Stdout)).
		Int("stderr_bytes", len(exe.Stderr)).
		Msg("slither finished")

	if len(exe.Stdout) == 0 {
		return nil, &EmptyOutputError{ExitCode: exe.ExitCode, Stderr: string(exe.Stderr)}
	}

	result, err := engine.Decode(exe.Stdout)
	if err != nil {
		return nil, &DecodeError{Raw: exe.Stdout, Err: err}
	}
	return result, nil
}

// RunAnalysis wraps Invoke, printing a diagnostic for every failure.
// A nil result means the analysis did not produce a usable report.
func (s *SlitherWrapper) RunAnalysis(ctx context.Context, contractPath string) *engine.AnalysisResult {
	fmt.Fprintf(s.Out, "[*] Starting Slither analysis for: %s\n", contractPath)

	result, err := s.Invoke(ctx, contractPath)
	if err == nil {
		return result
	}

	s.Logger.Debug().Err(err).Msg("slither analysis failed")

	var (
		decodeErr *DecodeError
		emptyErr  *EmptyOutputError
	)
	switch {
	case errors.Is(err, ErrContractNotFound):
		fmt.Fprintf(s.Out, "[!] ERROR: File not found: %s\n", contractPath)
	case errors.Is(err, ErrToolNotFound):
		fmt.Fprintf(s.Out, "[!] Error: the '%s' command was not found. Make sure Slither is installed and its virtualenv is active.\n", s.Binary)
	case errors.As(err, &decodeErr):
		fmt.Fprintln(s.Out, "[!] Error: Slither output was not valid JSON.")
		fmt.Fprintf(s.Out, "--- Output received from Slither ---\n%s\n", decodeErr.Raw)
	case errors.As(err, &emptyErr):
		fmt.Fprintf(s.Out, "[!] Slither exited with code %d and produced no JSON output.\n", emptyErr.ExitCode)
		if strings.TrimSpace(emptyErr.Stderr) != "" {
			fmt.Fprintf(s.Out, "--- Error output (stderr) ---\n%s\n", emptyErr.Stderr)
		}
	default:
		fmt.Fprintf(s.Out, "[!] An unexpected error occurred: %v\n", err)
	}
	return nil
}
