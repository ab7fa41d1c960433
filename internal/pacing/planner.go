package pacing

import (
	"math"

	"github.com/funnelcast/funnelcast/internal/kpi"
)

// PlanInput describes a campaign investment scenario before launch.
type PlanInput struct {
	Budget       float64        `json:"budget"`
	Days         int            `json:"days"`
	ProductPrice float64        `json:"product_price"`
	TargetROAS   float64        `json:"target_roas"`
	Channels     []ChannelSplit `json:"channels,omitempty"`
}

// ChannelSplit assigns a percentage of the budget to one traffic source.
type ChannelSplit struct {
	Name string  `json:"name"`
	Pct  float64 `json:"pct"`
}

// ChannelAllocation is the money a split resolves to.
type ChannelAllocation struct {
	Name  string  `json:"name"`
	Pct   float64 `json:"pct"`
	Total float64 `json:"total"`
	Daily float64 `json:"daily"`
}

// PlanResult projects what the budget buys if the target ROAS holds.
type PlanResult struct {
	DailySpend       float64             `json:"daily_spend"`
	ProjectedRevenue float64             `json:"projected_revenue"`
	ProjectedSales   int                 `json:"projected_sales"`
	ProjectedProfit  float64             `json:"projected_profit"`
	MarginPct        float64             `json:"margin_pct"`
	Channels         []ChannelAllocation `json:"channels,omitempty"`
	AllocatedPct     float64             `json:"allocated_pct"`
	FullyAllocated   bool                `json:"fully_allocated"`
}

// Plan runs the investment simulator. Zero budget or zero days yields an
// all-zero result rather than an error.
func Plan(in PlanInput) PlanResult {
	var out PlanResult
	if in.Budget <= 0 || in.Days <= 0 {
		return out
	}

	out.DailySpend = in.Budget / float64(in.Days)
	out.ProjectedRevenue = in.Budget * in.TargetROAS
	out.ProjectedSales = int(math.Floor(kpi.SafeDiv(out.ProjectedRevenue, in.ProductPrice)))
	out.ProjectedProfit = out.ProjectedRevenue - in.Budget
	out.MarginPct = kpi.SafeDiv(out.ProjectedProfit, in.Budget) * 100

	for _, ch := range in.Channels {
		out.AllocatedPct += ch.Pct
		out.Channels = append(out.Channels, ChannelAllocation{
			Name:  ch.Name,
			Pct:   ch.Pct,
			Total: in.Budget * ch.Pct / 100,
			Daily: out.DailySpend * ch.Pct / 100,
		})
	}
	out.FullyAllocated = len(in.Channels) == 0 || out.AllocatedPct == 100
	return out
}

// DefaultChannels is the suggested starting split across traffic sources.
func DefaultChannels() []ChannelSplit {
	return []ChannelSplit{
		{Name: "Meta", Pct: 50},
		{Name: "TikTok", Pct: 30},
		{Name: "YouTube", Pct: 10},
		{Name: "Otros", Pct: 10},
	}
}
