// Package model defines the core record and report types shared across the pipeline.
package model

import (
	"fmt"
	"strings"
	"time"
)

// OutcomeCategory is the normalized result of a sales call.
type OutcomeCategory string

// Outcome categories derived from the free-text result field.
const (
	OutcomeSale         OutcomeCategory = "sale"
	OutcomeNoShow       OutcomeCategory = "no_show"
	OutcomeDisqualified OutcomeCategory = "disqualified"
	OutcomeFollowUp     OutcomeCategory = "follow_up"
	OutcomeRescheduled  OutcomeCategory = "rescheduled"
	OutcomeOther        OutcomeCategory = "other"
)

// Sentinel values applied when a source leaves a field blank.
const (
	UnassignedCloser = "Sin Asignar"
	UnknownCampaign  = "General / Orgánico"
	PendingOutcome   = "Pendiente"
)

// SalesRecord is one row from a sales (closer) sheet: a booked call and its result.
type SalesRecord struct {
	Date       time.Time
	Closer     string
	Name       string // the lead's name as the closer recorded it
	OutcomeRaw string
	Outcome    OutcomeCategory
	Campaign   string
	Email      string // normalized; empty if the source has no email column
	Amount     float64
	Attended   bool
}

// IdentityKey returns the deduplication key used for unique-lead counting.
// Records without an email fall back to their row index so they always count once.
func (r *SalesRecord) IdentityKey(rowIndex int) string {
	if r.Email != "" {
		return r.Email
	}
	return fmt.Sprintf("row:%d", rowIndex)
}

// SpendRecord is one ad-spend-by-day row. Sources that predate click tracking
// carry zero Clicks and LandingVisits.
type SpendRecord struct {
	Date          time.Time
	Spend         float64
	Clicks        int
	LandingVisits int
}

// LeadRecord is one row from a lead-volume sheet. Qualified leads share the
// schema and arrive from a separate tab of the same spreadsheet.
type LeadRecord struct {
	Date     time.Time
	Email    string
	Name     string
	Campaign string
}

// NormalizeEmail lower-cases and trims an email for identity matching.
func NormalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
