package kpi

import (
	"sort"
	"time"

	"github.com/funnelcast/funnelcast/internal/model"
	"github.com/funnelcast/funnelcast/internal/reconcile"
)

// Journey is the cross-source history of one lead, keyed by normalized email:
// when the form was filled, whether the lead passed qualification, and every
// call a closer logged. A lead that paid in installments carries one call
// entry per payment row.
type Journey struct {
	Email     string              `json:"email"`
	Name      string              `json:"name,omitempty"`
	Intake    *model.LeadRecord   `json:"intake,omitempty"`
	Qualified *model.LeadRecord   `json:"qualified,omitempty"`
	Calls     []model.SalesRecord `json:"calls,omitempty"`
	TotalPaid float64             `json:"total_paid"`
}

// Found reports whether any stream knows this email.
func (j *Journey) Found() bool {
	return j.Intake != nil || j.Qualified != nil || len(j.Calls) > 0
}

// LeadJourney looks one email up across the volume, qualified and sales
// streams. The intake and qualification stages keep their first matching row;
// calls keep every row. Name resolution prefers the closer sheet over the
// volume sheet, since closers correct form typos.
func LeadJourney(ds *reconcile.Dataset, email string) Journey {
	key := model.NormalizeEmail(email)
	j := Journey{Email: key}
	if key == "" {
		return j
	}

	for i := range ds.Leads {
		if ds.Leads[i].Email == key {
			j.Intake = &ds.Leads[i]
			break
		}
	}
	for i := range ds.Qualified {
		if ds.Qualified[i].Email == key {
			j.Qualified = &ds.Qualified[i]
			break
		}
	}
	for _, s := range ds.Sales {
		if s.Email != key {
			continue
		}
		j.Calls = append(j.Calls, s)
		if s.Outcome == model.OutcomeSale {
			j.TotalPaid += s.Amount
		}
	}

	for _, c := range j.Calls {
		if c.Name != "" {
			j.Name = c.Name
			break
		}
	}
	if j.Name == "" && j.Intake != nil {
		j.Name = j.Intake.Name
	}
	if j.Name == "" && j.Qualified != nil {
		j.Name = j.Qualified.Name
	}
	return j
}

// CustomerStanding is one row of the customer revenue ranking. Sale rows
// sharing an email are summed, so installment payments surface as one
// customer with their lifetime total.
type CustomerStanding struct {
	Email        string    `json:"email,omitempty"`
	Name         string    `json:"name,omitempty"`
	Revenue      float64   `json:"revenue"`
	Campaign     string    `json:"campaign"`
	LastPurchase time.Time `json:"last_purchase"`
}

// CustomerRanking ranks customers by summed sale revenue descending; ties
// keep first-seen order. Only rows classified as sales participate, and rows
// without an email rank individually. The campaign is the first one recorded
// for the customer.
func CustomerRanking(sales []model.SalesRecord) []CustomerStanding {
	index := make(map[string]int)
	var out []CustomerStanding

	for i, s := range sales {
		if s.Outcome != model.OutcomeSale {
			continue
		}
		key := s.IdentityKey(i)
		pos, seen := index[key]
		if !seen {
			pos = len(out)
			index[key] = pos
			out = append(out, CustomerStanding{
				Email:    s.Email,
				Name:     s.Name,
				Campaign: s.Campaign,
			})
		}
		c := &out[pos]
		c.Revenue += s.Amount
		if s.Date.After(c.LastPurchase) {
			c.LastPurchase = s.Date
		}
		if c.Name == "" {
			c.Name = s.Name
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Revenue > out[j].Revenue })
	return out
}
