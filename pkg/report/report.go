package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/user/contract-audit/pkg/engine"
)

const (
	bannerWidth    = 60
	separatorWidth = 40
	notAvailable   = "N/A"
)

// Reporter prints Slither results as a severity-ordered text report.
type Reporter struct {
	w      io.Writer
	styles Styles
}

func New(w io.Writer, mode ColorMode) *Reporter {
	return &Reporter{w: w, styles: NewStyles(w, mode)}
}

// Render writes the report for result. A nil or unsuccessful result prints a
// failure notice followed by whatever payload was received.
func (r *Reporter) Render(result *engine.AnalysisResult) {
	if result == nil || !result.Success {
		r.renderFailure(result)
		return
	}

	banner := strings.Repeat("=", bannerWidth)
	fmt.Fprintln(r.w, "\n"+banner)
	fmt.Fprintln(r.w, "     SMART CONTRACT AUDIT REPORT")
	fmt.Fprintln(r.w, banner)

	detectors := result.Detectors()
	if len(detectors) == 0 {
		fmt.Fprintln(r.w, "\n"+r.styles.Success.Render("[✓] No vulnerabilities found by Slither!"))
	} else {
		fmt.Fprintf(r.w, "\n%s\n\n", r.styles.Alert.Render(fmt.Sprintf("[!] Found %d potential vulnerabilities.", len(detectors))))
		for _, f := range engine.SortBySeverity(detectors) {
			r.renderFinding(f)
		}
	}

	fmt.Fprintln(r.w, "\n"+banner)
}

func (r *Reporter) renderFinding(f engine.Finding) {
	label := strings.ToUpper(orNA(string(f.Impact)))
	fmt.Fprintln(r.w, r.styles.ForImpact(f.Impact).Render("IMPACT: "+label))
	fmt.Fprintf(r.w, "  Detector: %s\n", orNA(f.Check))
	fmt.Fprintf(r.w, "  Description: %s\n", strings.TrimSpace(orNA(f.Description)))
	fmt.Fprintln(r.w, strings.Repeat("-", separatorWidth))
}

func (r *Reporter) renderFailure(result *engine.AnalysisResult) {
	fmt.Fprintln(r.w, "[!] Slither analysis failed or returned no valid results.")
	if result == nil {
		return
	}
	if result.Error != "" {
		fmt.Fprintf(r.w, "[!] Slither reported: %s\n", strings.TrimSpace(result.Error))
	}
	fmt.Fprintf(r.w, "--- Raw data received ---\n%s\n", rawDump(result))
}

func rawDump(result *engine.AnalysisResult) string {
	if len(result.Raw) > 0 {
		var buf bytes.Buffer
		if err := json.Indent(&buf, result.Raw, "", "  "); err == nil {
			return buf.String()
		}
		return string(result.Raw)
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Sprintf("%+v", *result)
	}
	return string(data)
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}
