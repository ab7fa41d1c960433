package classify

import (
	"strings"

	"github.com/funnelcast/funnelcast/internal/model"
)

// AttendancePolicy decides whether a lead counts as having shown up to the
// call. The dashboards this replaces disagreed on the rule, so both variants
// are first-class and the caller picks one.
type AttendancePolicy string

const (
	// PolicyByCategory counts everything except no-shows and reschedules as
	// attended. This is the default.
	PolicyByCategory AttendancePolicy = "by_category"
	// PolicyInclusive counts sales, follow-ups and in-call disqualifications,
	// plus rows whose raw text explicitly says the lead attended.
	PolicyInclusive AttendancePolicy = "inclusive"
)

// ParseAttendancePolicy maps a config string to a policy, defaulting to
// PolicyByCategory for anything unrecognized.
func ParseAttendancePolicy(s string) AttendancePolicy {
	if AttendancePolicy(strings.ToLower(strings.TrimSpace(s))) == PolicyInclusive {
		return PolicyInclusive
	}
	return PolicyByCategory
}

// Attended applies the policy to a classified outcome.
func Attended(policy AttendancePolicy, category model.OutcomeCategory, raw string) bool {
	switch policy {
	case PolicyInclusive:
		switch category {
		case model.OutcomeSale, model.OutcomeFollowUp, model.OutcomeDisqualified:
			return true
		}
		text := strings.ToLower(raw)
		return strings.Contains(text, "asistió") && !strings.Contains(text, "no show")
	default:
		return category != model.OutcomeNoShow && category != model.OutcomeRescheduled
	}
}
