// Package kpi turns reconciled record streams into the report the rendering
// layers consume. Every rate here guards its denominator; the renderers only
// format, they never compute.
package kpi

import (
	"sort"
	"time"

	"github.com/funnelcast/funnelcast/internal/model"
	"github.com/funnelcast/funnelcast/internal/normalize"
	"github.com/funnelcast/funnelcast/internal/reconcile"
)

// LeadCountPolicy selects how booked calls are counted. The sheets disagree
// among themselves, so the choice is explicit config, never inferred.
type LeadCountPolicy string

const (
	// CountRows counts every sales row.
	CountRows LeadCountPolicy = "rows"
	// CountUniqueEmail deduplicates by normalized email; rows with no email
	// still count once each.
	CountUniqueEmail LeadCountPolicy = "unique_email"
	// CountAuto deduplicates only when at least one row carries an email.
	CountAuto LeadCountPolicy = "auto"
)

// ParseLeadCountPolicy maps a config string to a policy, defaulting to CountAuto.
func ParseLeadCountPolicy(s string) LeadCountPolicy {
	switch LeadCountPolicy(s) {
	case CountRows, CountUniqueEmail:
		return LeadCountPolicy(s)
	default:
		return CountAuto
	}
}

// Params scope one aggregation run.
type Params struct {
	Range         model.DateRange
	Closer        string // non-empty scopes sales to one closer and zeroes spend
	OperatingCost float64
	LeadCount     LeadCountPolicy
}

// Aggregate filters the dataset to p.Range and computes the full report.
// Empty inputs degrade to zero values, never to an error.
func Aggregate(ds *reconcile.Dataset, p Params) *model.Report {
	sales := FilterSales(ds.Sales, p.Range)
	spend := FilterSpend(ds.Spend, p.Range)
	leads := FilterLeads(ds.Leads, p.Range)
	qualified := FilterLeads(ds.Qualified, p.Range)

	closerScoped := p.Closer != ""
	if closerScoped {
		scoped := sales[:0:0]
		for _, s := range sales {
			if s.Closer == p.Closer {
				scoped = append(scoped, s)
			}
		}
		sales = scoped
	}

	r := &model.Report{
		Range:    p.Range,
		Closer:   p.Closer,
		Warnings: ds.Warnings,
	}

	for _, s := range sales {
		r.Totals.Revenue += s.Amount
		if s.Attended {
			r.Totals.Attended++
		}
		if s.Outcome == model.OutcomeSale {
			r.Totals.Sales++
		}
	}
	r.Totals.Booked = countLeads(sales, p.LeadCount)

	// Ad spend cannot be attributed to an individual closer, so a
	// closer-scoped report deliberately shows zero spend.
	if !closerScoped {
		for _, s := range spend {
			r.Totals.Spend += s.Spend
			r.Totals.Clicks += s.Clicks
			r.Totals.LandingVisits += s.LandingVisits
		}
	}

	r.Totals.Leads = len(leads)
	r.Totals.Qualified = len(qualified)
	r.Totals.OperatingCost = p.OperatingCost
	r.Totals.Profit = r.Totals.Revenue - r.Totals.Spend
	r.Totals.NetProfit = r.Totals.Profit - p.OperatingCost

	r.Rates = rates(r.Totals)
	r.Closers = closerStandings(sales)
	r.Campaigns = campaignStandings(sales, leads)
	r.Daily = dailySeries(sales, spend, leads)
	r.Funnel = Funnel(r.Totals)
	r.NoData = len(sales) == 0 && len(spend) == 0 && len(leads) == 0

	return r
}

// SafeDiv returns a/b, or 0 when b is 0.
func SafeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

func rates(t model.Totals) model.Rates {
	return model.Rates{
		ROAS:             SafeDiv(t.Revenue, t.Spend),
		ROI:              SafeDiv(t.Profit, t.Spend) * 100,
		NetMarginPct:     SafeDiv(t.NetProfit, t.Revenue) * 100,
		AttendanceRate:   SafeDiv(float64(t.Attended), float64(t.Booked)),
		CloseRate:        SafeDiv(float64(t.Sales), float64(t.Attended)),
		GlobalConversion: SafeDiv(float64(t.Sales), float64(t.Booked)),
		QualifiedRate:    SafeDiv(float64(t.Qualified), float64(t.Leads)),
		AverageOrder:     SafeDiv(t.Revenue, float64(t.Sales)),
		CPL:              SafeDiv(t.Spend, float64(t.Leads)),
		CPQL:             SafeDiv(t.Spend, float64(t.Qualified)),
		CPA:              SafeDiv(t.Spend, float64(t.Sales)),
	}
}

func countLeads(sales []model.SalesRecord, policy LeadCountPolicy) int {
	if policy == CountAuto {
		policy = CountRows
		for _, s := range sales {
			if s.Email != "" {
				policy = CountUniqueEmail
				break
			}
		}
	}
	if policy == CountRows {
		return len(sales)
	}
	seen := make(map[string]struct{}, len(sales))
	for i := range sales {
		seen[sales[i].IdentityKey(i)] = struct{}{}
	}
	return len(seen)
}

// closerStandings ranks closers by revenue descending. Equal-revenue closers
// keep the order they first appeared in the record stream.
func closerStandings(sales []model.SalesRecord) []model.CloserStanding {
	byCloser := make(map[string]*model.CloserStanding)
	var order []string
	for _, s := range sales {
		st, ok := byCloser[s.Closer]
		if !ok {
			st = &model.CloserStanding{Closer: s.Closer}
			byCloser[s.Closer] = st
			order = append(order, s.Closer)
		}
		st.Revenue += s.Amount
		st.Booked++
		if s.Attended {
			st.Attended++
		}
		if s.Outcome == model.OutcomeSale {
			st.Sales++
		}
	}

	out := make([]model.CloserStanding, 0, len(order))
	for _, name := range order {
		st := byCloser[name]
		st.ShowRate = SafeDiv(float64(st.Attended), float64(st.Booked))
		st.CloseRate = SafeDiv(float64(st.Sales), float64(st.Attended))
		out = append(out, *st)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Revenue > out[j].Revenue })
	return out
}

func campaignStandings(sales []model.SalesRecord, leads []model.LeadRecord) []model.CampaignStanding {
	byCampaign := make(map[string]*model.CampaignStanding)
	var order []string
	get := func(name string) *model.CampaignStanding {
		if name == "" {
			name = model.UnknownCampaign
		}
		st, ok := byCampaign[name]
		if !ok {
			st = &model.CampaignStanding{Campaign: name}
			byCampaign[name] = st
			order = append(order, name)
		}
		return st
	}

	for _, s := range sales {
		st := get(s.Campaign)
		st.Revenue += s.Amount
		if s.Outcome == model.OutcomeSale {
			st.Sales++
		}
	}
	for _, l := range leads {
		get(l.Campaign).Leads++
	}

	out := make([]model.CampaignStanding, 0, len(order))
	for _, name := range order {
		out = append(out, *byCampaign[name])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Revenue > out[j].Revenue })
	return out
}

// dailySeries outer-joins the three record streams on calendar date, filling
// gaps with zero so every chart row is complete.
func dailySeries(sales []model.SalesRecord, spend []model.SpendRecord, leads []model.LeadRecord) []model.DailyPoint {
	byDay := make(map[time.Time]*model.DailyPoint)
	get := func(t time.Time) *model.DailyPoint {
		day := normalize.Day(t)
		p, ok := byDay[day]
		if !ok {
			p = &model.DailyPoint{Date: day}
			byDay[day] = p
		}
		return p
	}

	for _, s := range sales {
		p := get(s.Date)
		p.Revenue += s.Amount
		if s.Outcome == model.OutcomeSale {
			p.Sales++
		}
	}
	for _, s := range spend {
		get(s.Date).Spend += s.Spend
	}
	for _, l := range leads {
		get(l.Date).Leads++
	}

	out := make([]model.DailyPoint, 0, len(byDay))
	for _, p := range byDay {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
