package report

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/user/contract-audit/pkg/engine"
)

// ColorMode selects whether ANSI colours are emitted.
type ColorMode int

const (
	// ColorAuto colours output only when the writer is a terminal.
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// Styles holds the per-severity text styles used by the report.
type Styles struct {
	High          lipgloss.Style
	Medium        lipgloss.Style
	Low           lipgloss.Style
	Informational lipgloss.Style
	Success       lipgloss.Style
	Alert         lipgloss.Style
}

// NewStyles builds styles bound to a renderer for w.
func NewStyles(w io.Writer, mode ColorMode) Styles {
	r := lipgloss.NewRenderer(w)
	switch mode {
	case ColorAlways:
		r.SetColorProfile(termenv.ANSI)
	case ColorNever:
		r.SetColorProfile(termenv.Ascii)
	}

	high := r.NewStyle().Foreground(lipgloss.Color("9"))
	return Styles{
		High:          high,
		Medium:        r.NewStyle().Foreground(lipgloss.Color("11")),
		Low:           r.NewStyle().Foreground(lipgloss.Color("12")),
		Informational: r.NewStyle().Foreground(lipgloss.Color("8")),
		Success:       r.NewStyle().Foreground(lipgloss.Color("10")),
		Alert:         high,
	}
}

// ForImpact picks the style of a severity tier; unknown impacts use the
// informational style.
func (s Styles) ForImpact(impact engine.Impact) lipgloss.Style {
	switch impact {
	case engine.ImpactHigh:
		return s.High
	case engine.ImpactMedium:
		return s.Medium
	case engine.ImpactLow:
		return s.Low
	default:
		return s.Informational
	}
}
