// Package report renders finished negotiations for the terminal:
// per-session deal lines and a styled batch summary.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/talgya/bazaar/internal/session"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dealStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	noDealStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	summaryStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
	faintStyle = lipgloss.NewStyle().Faint(true)
)

// Line renders a single-session result line.
func Line(label string, o session.Outcome) string {
	if o.DealMade {
		return dealStyle.Render(fmt.Sprintf(
			"DEAL   %-28s ₹%s in %d rounds (savings ₹%s, %.1f%%; %.1f%% below market)",
			label, humanize.Comma(int64(o.FinalPrice)), o.Rounds,
			humanize.Comma(int64(o.Savings)), o.SavingsPct, o.BelowMarketPct))
	}
	return noDealStyle.Render(fmt.Sprintf(
		"NO DEAL %-27s after %d rounds (%s)", label, o.Rounds, o.Status))
}

// Transcript renders the role-tagged conversation of one session.
func Transcript(o session.Outcome) string {
	var b strings.Builder
	for _, m := range o.Transcript {
		b.WriteString(faintStyle.Render(fmt.Sprintf("%-6s", m.Role)))
		b.WriteString(" ")
		b.WriteString(m.Text)
		b.WriteString("\n")
	}
	return b.String()
}

// Summary renders the batch summary block: deals closed, total buyer
// savings, and success rate.
func Summary(outcomes []session.Outcome) string {
	deals := 0
	totalSavings := 0
	for _, o := range outcomes {
		if o.DealMade {
			deals++
			totalSavings += o.Savings
		}
	}
	rate := 0.0
	if len(outcomes) > 0 {
		rate = float64(deals) / float64(len(outcomes)) * 100
	}

	body := fmt.Sprintf("%s\nDeals completed: %d/%d\nTotal savings:   ₹%s\nSuccess rate:    %.1f%%",
		titleStyle.Render("NEGOTIATION SUMMARY"),
		deals, len(outcomes),
		humanize.Comma(int64(totalSavings)), rate)
	return summaryStyle.Render(body)
}
