package cli

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/funnelcast/funnelcast/internal/kpi"
	"github.com/funnelcast/funnelcast/internal/model"
	"github.com/funnelcast/funnelcast/internal/pacing"
	"github.com/funnelcast/funnelcast/internal/service"
)

// RenderReport writes the full report to w in a terminal-friendly layout.
func RenderReport(w io.Writer, r *model.Report) {
	title := "KPI Report"
	if r.Closer != "" {
		title = fmt.Sprintf("KPI Report · %s", r.Closer)
	}
	fmt.Fprintln(w, TitleStyle.Render(fmt.Sprintf("%s %s", ChartIcon, title)))
	fmt.Fprintln(w, SubtitleStyle.Render(fmt.Sprintf("%s to %s",
		r.Range.Start.Format("2006-01-02"), r.Range.End.Format("2006-01-02"))))

	if r.NoData {
		fmt.Fprintln(w, WarningStyle.Render("No records in the selected period."))
		renderWarnings(w, r.Warnings)
		return
	}

	summary := strings.Join([]string{
		fmt.Sprintf("%s Revenue   %s", MoneyIcon, BoldStyle.Render(money(r.Totals.Revenue))),
		fmt.Sprintf("   Ad Spend  %s", money(r.Totals.Spend)),
		fmt.Sprintf("   Profit    %s", signedMoney(r.Totals.Profit)),
		fmt.Sprintf("   Net       %s", signedMoney(r.Totals.NetProfit)),
		fmt.Sprintf("   ROAS      %.2f", r.Rates.ROAS),
	}, "\n")
	fmt.Fprintln(w, BoxStyle.Render(summary))

	fmt.Fprintln(w, BoldStyle.Render("Funnel"))
	for _, stage := range r.Funnel {
		fmt.Fprintf(w, "  %-12s %10.0f  %s\n",
			stage.Name, stage.Value, SubtleStyle.Render(fmt.Sprintf("%.1f%%", stage.PctPrevious)))
	}
	fmt.Fprintln(w)

	if len(r.Closers) > 0 {
		fmt.Fprintln(w, BoldStyle.Render("Closers"))
		header := fmt.Sprintf("  %-16s %12s %8s %9s %6s %10s %10s",
			"Closer", "Revenue", "Booked", "Attended", "Sales", "Show", "Close")
		fmt.Fprintln(w, TableHeaderStyle.Render(header))
		for _, st := range r.Closers {
			fmt.Fprintf(w, "  %-16s %12s %8d %9d %6d %9.1f%% %9.1f%%\n",
				st.Closer, money(st.Revenue), st.Booked, st.Attended, st.Sales,
				st.ShowRate*100, st.CloseRate*100)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, BoldStyle.Render(fmt.Sprintf("%s Pacing", TargetIcon)))
	renderPacing(w, r.Revenue)
	renderBudget(w, r.Budget)

	renderWarnings(w, r.Warnings)
}

func renderPacing(w io.Writer, p model.Pacing) {
	status := ErrorStyle.Render("behind pace")
	if p.OnPace {
		status = SuccessStyle.Render("on pace")
	}
	fmt.Fprintf(w, "  Revenue %s / %s (%.0f%%)  %s\n",
		money(p.Actual), money(p.Target), p.Progress*100, status)
	fmt.Fprintf(w, "  Projected close %s  (band %s to %s)\n",
		money(p.RunRate), money(p.Pessimistic), money(p.Optimistic))
	fmt.Fprintf(w, "  Required daily pace %s\n", money(p.RequiredDaily))
}

func renderBudget(w io.Writer, b model.BudgetPacing) {
	fmt.Fprintf(w, "  Budget  %s / %s (%.0f%% consumed)\n",
		money(b.Spent), money(b.Budget), b.Consumed*100)
	if b.Overspending {
		fmt.Fprintln(w, "  "+WarningStyle.Render(fmt.Sprintf(
			"%s spending %s/day against an ideal %s/day", WarningIcon, money(b.ActualDaily), money(b.IdealDaily))))
	} else {
		fmt.Fprintf(w, "  Ideal daily %s, actual %s\n", money(b.IdealDaily), money(b.ActualDaily))
	}
}

func renderWarnings(w io.Writer, warnings []model.Warning) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, WarningStyle.Render(fmt.Sprintf("%s %d source warning(s)", WarningIcon, len(warnings))))
	for _, warn := range warnings {
		fmt.Fprintf(w, "  %s: %s\n", warn.SourceID, warn.Message)
	}
}

// RenderPlan writes the investment simulation to w.
func RenderPlan(w io.Writer, out pacing.PlanResult) {
	fmt.Fprintln(w, TitleStyle.Render(fmt.Sprintf("%s Investment Plan", MoneyIcon)))
	fmt.Fprintf(w, "  Daily spend         %s\n", money(out.DailySpend))
	fmt.Fprintf(w, "  Projected revenue   %s\n", money(out.ProjectedRevenue))
	fmt.Fprintf(w, "  Projected profit    %s (%.1f%% margin)\n", signedMoney(out.ProjectedProfit), out.MarginPct)
	fmt.Fprintf(w, "  Sales needed        %d\n", out.ProjectedSales)

	if len(out.Channels) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, BoldStyle.Render("Channel split"))
		for _, ch := range out.Channels {
			fmt.Fprintf(w, "  %-10s %3.0f%%  total %s  daily %s\n",
				ch.Name, ch.Pct, money(ch.Total), money(ch.Daily))
		}
		if !out.FullyAllocated {
			fmt.Fprintln(w, WarningStyle.Render(fmt.Sprintf(
				"%s allocation adds up to %.0f%%, not 100%%", WarningIcon, out.AllocatedPct)))
		}
	}
}

// RenderRuns writes the run history table to w.
func RenderRuns(w io.Writer, runs []service.RunSummary) {
	fmt.Fprintln(w, TitleStyle.Render("Run History"))
	if len(runs) == 0 {
		fmt.Fprintln(w, SubtleStyle.Render("No recorded runs."))
		return
	}
	header := fmt.Sprintf("  %-20s %-23s %12s %12s %6s",
		"Ran At", "Period", "Revenue", "Spend", "Sales")
	fmt.Fprintln(w, TableHeaderStyle.Render(header))
	for _, run := range runs {
		period := fmt.Sprintf("%s to %s", run.Start.Format("2006-01-02"), run.End.Format("2006-01-02"))
		fmt.Fprintf(w, "  %-20s %-23s %12s %12s %6d\n",
			run.RanAt.Format("2006-01-02 15:04"), period, money(run.Revenue), money(run.Spend), run.Sales)
	}
}

// RenderJourney writes a lead's cross-source timeline to w.
func RenderJourney(w io.Writer, j kpi.Journey) {
	fmt.Fprintln(w, TitleStyle.Render(fmt.Sprintf("%s Lead History", SearchIcon)))
	if !j.Found() {
		fmt.Fprintln(w, WarningStyle.Render(fmt.Sprintf("No record of %s in any source.", j.Email)))
		return
	}

	name := j.Name
	if name == "" {
		name = "Unknown"
	}
	fmt.Fprintln(w, BoldStyle.Render(fmt.Sprintf("%s <%s>", name, j.Email)))
	fmt.Fprintln(w)

	fmt.Fprintln(w, BoldStyle.Render("1. Intake"))
	if j.Intake != nil {
		fmt.Fprintf(w, "  Registered %s  campaign %s\n",
			j.Intake.Date.Format("2006-01-02"), j.Intake.Campaign)
	} else {
		fmt.Fprintln(w, SubtleStyle.Render("  Not in the volume sheet (old or manual lead)."))
	}

	fmt.Fprintln(w, BoldStyle.Render("2. Qualification"))
	if j.Qualified != nil {
		fmt.Fprintf(w, "  %s Qualified on %s\n", SuccessIcon, j.Qualified.Date.Format("2006-01-02"))
	} else {
		fmt.Fprintf(w, "  %s Not in the qualified list\n", ErrorIcon)
	}

	fmt.Fprintln(w, BoldStyle.Render("3. Calls"))
	if len(j.Calls) == 0 {
		fmt.Fprintln(w, SubtleStyle.Render("  No call recorded by a closer yet."))
	}
	for _, c := range j.Calls {
		icon := "·"
		switch c.Outcome {
		case model.OutcomeSale:
			icon = MoneyIcon
		case model.OutcomeNoShow, model.OutcomeDisqualified:
			icon = ErrorIcon
		}
		fmt.Fprintf(w, "  %s %s  %s  closer %s  %s  %s\n",
			icon, c.Date.Format("2006-01-02"), c.OutcomeRaw, c.Closer, money(c.Amount),
			SubtleStyle.Render(c.Campaign))
	}
	if j.TotalPaid > 0 {
		fmt.Fprintf(w, "  Total paid %s\n", BoldStyle.Render(money(j.TotalPaid)))
	}
}

// RenderCustomers writes the customer revenue ranking to w.
func RenderCustomers(w io.Writer, ranking []kpi.CustomerStanding) {
	fmt.Fprintln(w, TitleStyle.Render("🏆 Top Customers"))
	if len(ranking) == 0 {
		fmt.Fprintln(w, SubtleStyle.Render("No sales recorded yet."))
		return
	}
	header := fmt.Sprintf("  %3s %-22s %-26s %12s %-12s", "#", "Customer", "Email", "Total", "Last")
	fmt.Fprintln(w, TableHeaderStyle.Render(header))
	for i, c := range ranking {
		name := c.Name
		if name == "" {
			name = "Unknown"
		}
		fmt.Fprintf(w, "  %3d %-22s %-26s %12s %-12s\n",
			i+1, name, c.Email, money(c.Revenue), c.LastPurchase.Format("2006-01-02"))
	}
}

// RenderGoals writes the configured targets to w.
func RenderGoals(w io.Writer, goals model.GoalConfig) {
	fmt.Fprintln(w, TitleStyle.Render(fmt.Sprintf("%s Monthly Targets", TargetIcon)))
	fmt.Fprintf(w, "  Revenue target   %s\n", money(goals.RevenueTarget))
	fmt.Fprintf(w, "  Ad budget        %s\n", money(goals.AdBudgetTarget))
	if !goals.UpdatedAt.IsZero() {
		fmt.Fprintln(w, SubtleStyle.Render(fmt.Sprintf("  updated %s", goals.UpdatedAt.Format("2006-01-02 15:04"))))
	}
}

func money(v float64) string {
	neg := v < 0
	s := fmt.Sprintf("%.2f", math.Abs(v))
	dot := strings.IndexByte(s, '.')
	intPart, frac := s[:dot], s[dot:]
	var b strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	if neg {
		return "-$" + b.String() + frac
	}
	return "$" + b.String() + frac
}

func signedMoney(v float64) string {
	if v < 0 {
		return ErrorStyle.Render(money(v))
	}
	return SuccessStyle.Render(money(v))
}
