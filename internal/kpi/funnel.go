package kpi

import "github.com/funnelcast/funnelcast/internal/model"

// Funnel builds the ordered stage list from the period totals. Each stage
// carries its percent of the previous stage; the first stage is 100 by
// convention and a zero-valued previous stage yields 0 for the next.
func Funnel(t model.Totals) []model.FunnelStage {
	stages := []model.FunnelStage{
		{Name: "Clics", Value: float64(t.Clicks)},
		{Name: "Visitas", Value: float64(t.LandingVisits)},
		{Name: "Leads", Value: float64(t.Leads)},
		{Name: "Calificados", Value: float64(t.Qualified)},
		{Name: "Agendas", Value: float64(t.Booked)},
		{Name: "Asistencias", Value: float64(t.Attended)},
		{Name: "Ventas", Value: float64(t.Sales)},
	}
	for i := range stages {
		if i == 0 {
			stages[i].PctPrevious = 100
			continue
		}
		stages[i].PctPrevious = SafeDiv(stages[i].Value, stages[i-1].Value) * 100
	}
	return stages
}
