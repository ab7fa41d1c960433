// Package classify derives categorical fields from the free-text outcome of a
// sales call.
package classify

import (
	"strings"

	"github.com/funnelcast/funnelcast/internal/model"
)

// outcomeRules are checked in order; the first matching substring wins. Order
// matters: a cell like "Venta tras no show previo" is still a sale.
var outcomeRules = []struct {
	substr   string
	category model.OutcomeCategory
}{
	{"venta", model.OutcomeSale},
	{"no show", model.OutcomeNoShow},
	{"descalificado", model.OutcomeDisqualified},
	{"seguimiento", model.OutcomeFollowUp},
	{"re-agendado", model.OutcomeRescheduled},
	{"reagendado", model.OutcomeRescheduled},
}

// Outcome maps the raw result text to its category. Total: anything
// unrecognized is OutcomeOther.
func Outcome(raw string) model.OutcomeCategory {
	text := strings.ToLower(raw)
	for _, rule := range outcomeRules {
		if strings.Contains(text, rule.substr) {
			return rule.category
		}
	}
	return model.OutcomeOther
}
