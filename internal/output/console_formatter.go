package output

import (
	"fmt"
	"math"
	"sort"
	"strings"

	gomoney "github.com/Rhymond/go-money"

	"github.com/compass/financial-planner/internal/domain"
)

// ConsoleFormatter renders a human-readable plan report.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(plan *domain.ProfileProjection) ([]byte, error) {
	var b strings.Builder

	b.WriteString("FINANCIAL PLAN PROJECTION\n")
	b.WriteString("=========================\n\n")

	if plan.Portfolio != nil {
		c.writeProjection(&b, "PORTFOLIO (inflation-adjusted)", plan.Portfolio)
	}

	if len(plan.Goals) > 0 {
		b.WriteString("GOALS\n")
		b.WriteString("-----\n")
		for _, name := range sortedGoalNames(plan.Goals) {
			outlook := plan.Goals[name]
			fmt.Fprintf(&b, "%s (target %s by %d): %.1f%% chance of success\n",
				name, usd(outlook.Target), outlook.TargetYear, outlook.SuccessRate)
			if outlook.Projection != nil {
				fmt.Fprintf(&b, "  median outcome: %s (p10 %s, p90 %s)\n",
					usd(outlook.Projection.MedianFinal),
					usd(last(outlook.Projection.P10)),
					usd(last(outlook.Projection.P90)))
			}
		}
		b.WriteString("\n")
	}

	if plan.DebtPayoff != nil {
		b.WriteString("DEBT PAYOFF COMPARISON\n")
		b.WriteString("----------------------\n")
		c.writePayoff(&b, plan.DebtPayoff.Avalanche)
		c.writePayoff(&b, plan.DebtPayoff.Snowball)
		fmt.Fprintf(&b, "Avalanche saves %s in interest vs snowball\n\n", usd(plan.DebtPayoff.AvalancheSavings))
	}

	return []byte(b.String()), nil
}

func (c ConsoleFormatter) writeProjection(b *strings.Builder, title string, p *domain.ProjectionResult) {
	fmt.Fprintf(b, "%s\n%s\n", title, strings.Repeat("-", len(title)))
	fmt.Fprintf(b, "%-6s %14s %14s %14s\n", "Year", "P10", "Median", "P90")
	for i, year := range p.Years {
		fmt.Fprintf(b, "%-6d %14s %14s %14s\n", year, usd(p.P10[i]), usd(p.Median[i]), usd(p.P90[i]))
	}
	fmt.Fprintf(b, "Median final balance: %s\n", usd(p.MedianFinal))
	if p.Target > 0 {
		fmt.Fprintf(b, "Success rate vs target %s: %.1f%%\n", usd(p.Target), p.SuccessRate)
	}
	b.WriteString("\n")
}

func (c ConsoleFormatter) writePayoff(b *strings.Builder, r *domain.DebtPayoffResult) {
	if r == nil {
		return
	}
	fmt.Fprintf(b, "%s: debt-free in %d months, %s interest, %s paid total",
		strings.ToUpper(string(r.Strategy)), r.MonthsToFree, usd(r.TotalInterest), usd(r.TotalPaid))
	if r.ReachedCap {
		b.WriteString(" (hit 50-year cap with balances outstanding)")
	}
	b.WriteString("\n")
	for _, d := range r.Debts {
		fmt.Fprintf(b, "  %-20s %s balance, %s interest, paid off month %d\n",
			d.Name, usd(d.OriginalBalance), usd(d.InterestPaid), d.MonthsToPayoff)
	}
}

// usd formats a monetary value as US dollars.
func usd(v float64) string {
	return gomoney.New(int64(math.Round(v*100)), gomoney.USD).Display()
}

func sortedGoalNames(goals map[string]domain.GoalOutlook) []string {
	names := make([]string, 0, len(goals))
	for name := range goals {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func last(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return values[len(values)-1]
}
