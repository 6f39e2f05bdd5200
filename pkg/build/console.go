package build

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Color palette for the per-step console output.
var (
	colorGreen   = lipgloss.Color("82")
	colorBoldRed = lipgloss.Color("204")
	colorCyan    = lipgloss.Color("14")
	colorDimGray = lipgloss.Color("240")
)

var (
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleFailed  = lipgloss.NewStyle().Bold(true).Foreground(colorBoldRed)
	styleStep    = lipgloss.NewStyle().Foreground(colorCyan)
	styleDim     = lipgloss.NewStyle().Faint(true)
	styleBanner  = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDimGray)
)

// minStepColumnWidth keeps the outcome column aligned across step lines.
const minStepColumnWidth = 24

// Console renders progress notifications, per-step lines, and the final
// banner to a terminal.
type Console struct {
	Out io.Writer
}

// Report writes the current activity and status as a dim one-liner.
func (c *Console) Report(activity, status string) {
	fmt.Fprintln(c.Out, styleDim.Render(activity+" | "+status))
}

// WriteStep writes the one-line human-readable record for a finished step.
func (c *Console) WriteStep(res StepResult) {
	name := res.Name
	for len(name) < minStepColumnWidth {
		name += " "
	}

	outcome := styleSuccess.Render("✔ " + string(res.Outcome))
	if res.Outcome != Success {
		outcome = styleFailed.Render("✘ " + string(res.Outcome))
	}

	fmt.Fprintf(c.Out, "%s %s %s\n",
		styleStep.Render(name),
		outcome,
		styleDim.Render(fmt.Sprintf("started %s, took %s",
			res.StartTime.Format("15:04:05"), res.Duration.Round(time.Millisecond))),
	)
}

// Banner writes the final success or failure banner. The causing error is
// included on failure.
func (c *Console) Banner(report *RunReport, cause error) {
	if report != nil && report.ExitStatus == ExitSuccess {
		fmt.Fprintln(c.Out, styleBanner.BorderForeground(colorGreen).Render(
			styleSuccess.Render("BUILD SUCCEEDED")))
		return
	}
	msg := styleFailed.Render("BUILD FAILED")
	if cause != nil {
		msg += "\n" + cause.Error()
	}
	fmt.Fprintln(c.Out, styleBanner.BorderForeground(colorBoldRed).Render(msg))
}
