package model

import "time"

// DateRange is an inclusive calendar-date window.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Days returns the number of calendar days covered, both endpoints included.
func (r DateRange) Days() int {
	d := int(r.End.Sub(r.Start).Hours()/24) + 1
	if d < 0 {
		return 0
	}
	return d
}

// Totals are the headline sums for a filtered period.
type Totals struct {
	Revenue       float64 `json:"revenue"`
	Spend         float64 `json:"spend"`
	OperatingCost float64 `json:"operating_cost"`
	Profit        float64 `json:"profit"`
	NetProfit     float64 `json:"net_profit"`
	Clicks        int     `json:"clicks"`
	LandingVisits int     `json:"landing_visits"`
	Leads         int     `json:"leads"`
	Qualified     int     `json:"qualified"`
	Booked        int     `json:"booked"`
	Attended      int     `json:"attended"`
	Sales         int     `json:"sales"`
}

// Rates are the guarded-division conversion metrics. All values are 0 when
// their denominator is 0.
type Rates struct {
	ROAS             float64 `json:"roas"`
	ROI              float64 `json:"roi"`
	NetMarginPct     float64 `json:"net_margin_pct"`
	AttendanceRate   float64 `json:"attendance_rate"`
	CloseRate        float64 `json:"close_rate"`
	GlobalConversion float64 `json:"global_conversion"`
	QualifiedRate    float64 `json:"qualified_rate"`
	AverageOrder     float64 `json:"average_order"`
	CPL              float64 `json:"cpl"`
	CPQL             float64 `json:"cpql"`
	CPA              float64 `json:"cpa"`
}

// CloserStanding is one leaderboard row. Standings are sorted by revenue
// descending; ties keep first-seen order.
type CloserStanding struct {
	Closer    string  `json:"closer"`
	Revenue   float64 `json:"revenue"`
	Booked    int     `json:"booked"`
	Attended  int     `json:"attended"`
	Sales     int     `json:"sales"`
	ShowRate  float64 `json:"show_rate"`
	CloseRate float64 `json:"close_rate"`
}

// CampaignStanding aggregates sales attribution per campaign source.
type CampaignStanding struct {
	Campaign string  `json:"campaign"`
	Revenue  float64 `json:"revenue"`
	Leads    int     `json:"leads"`
	Sales    int     `json:"sales"`
}

// DailyPoint is one row of the charting series: the outer join of sales and
// spend dates with zero-filled gaps.
type DailyPoint struct {
	Date    time.Time `json:"date"`
	Revenue float64   `json:"revenue"`
	Spend   float64   `json:"spend"`
	Leads   int       `json:"leads"`
	Sales   int       `json:"sales"`
}

// FunnelStage is a named stage count with its percent-of-previous-stage.
// The first stage is 100 by convention.
type FunnelStage struct {
	Name        string  `json:"name"`
	Value       float64 `json:"value"`
	PctPrevious float64 `json:"pct_previous"`
}

// Pacing is a linear run-rate projection of a partial period against a target.
type Pacing struct {
	Target        float64 `json:"target"`
	Actual        float64 `json:"actual"`
	Progress      float64 `json:"progress"` // clamped to [0, 1]
	Remaining     float64 `json:"remaining"`
	RunRate       float64 `json:"run_rate"`
	RequiredDaily float64 `json:"required_daily"`
	ActualDaily   float64 `json:"actual_daily"`
	Pessimistic   float64 `json:"pessimistic"`
	Optimistic    float64 `json:"optimistic"`
	OnPace        bool    `json:"on_pace"`
}

// BudgetPacing tracks ad spend against the configured budget.
type BudgetPacing struct {
	Budget       float64 `json:"budget"`
	Spent        float64 `json:"spent"`
	Consumed     float64 `json:"consumed"` // clamped to [0, 1]
	Remaining    float64 `json:"remaining"`
	IdealDaily   float64 `json:"ideal_daily"`
	ActualDaily  float64 `json:"actual_daily"`
	ProjectedEnd float64 `json:"projected_end"`
	Overspending bool    `json:"overspending"`
}

// Warning describes a degraded source the caller should surface to the user.
type Warning struct {
	SourceID string `json:"source_id"`
	Message  string `json:"message"`
}

// Report is the complete aggregate result for one pipeline run. The rendering
// layer formats these values; it never recomputes them.
type Report struct {
	Range     DateRange          `json:"range"`
	Closer    string             `json:"closer,omitempty"` // empty means all closers
	Totals    Totals             `json:"totals"`
	Rates     Rates              `json:"rates"`
	Closers   []CloserStanding   `json:"closers"`
	Campaigns []CampaignStanding `json:"campaigns"`
	Daily     []DailyPoint       `json:"daily"`
	Funnel    []FunnelStage      `json:"funnel"`
	Revenue   Pacing             `json:"revenue_pacing"`
	Budget    BudgetPacing       `json:"budget_pacing"`
	Warnings  []Warning          `json:"warnings,omitempty"`
	NoData    bool               `json:"no_data"`
}
