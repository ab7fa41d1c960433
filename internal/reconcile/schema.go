// Package reconcile loads heterogeneous sheet sources and unions them into
// canonical record streams.
package reconcile

import (
	"sort"
	"strings"

	"github.com/funnelcast/funnelcast/internal/normalize"
)

// Kind identifies which canonical record stream a source feeds.
type Kind string

// Source kinds.
const (
	KindSales     Kind = "sales"
	KindSpend     Kind = "spend"
	KindLeads     Kind = "leads"
	KindQualified Kind = "leads_qualified"
)

// Canonical field names used in column maps.
const (
	FieldDate     = "date"
	FieldAmount   = "amount"
	FieldCloser   = "closer"
	FieldOutcome  = "outcome"
	FieldEmail    = "email"
	FieldCampaign = "campaign"
	FieldName     = "name"
	FieldSpend    = "spend"
	FieldClicks   = "clicks"
	FieldVisits   = "visits"
)

// ColumnMap maps a canonical field to the header names a source may use for
// it. Matching is case-insensitive: exact match first, then substring, so
// "Email" also claims a "Email Address" header.
type ColumnMap map[string][]string

// Source describes one configured sheet. Decimal convention, date order and
// the repair knobs are properties of the source, set in config, never guessed
// from the data.
type Source struct {
	ID       string
	URL      string
	Kind     Kind
	Decimal  normalize.Convention
	DayFirst bool
	Repair   *normalize.RepairConfig
	Columns  ColumnMap
}

// ApplyDefaults fills the pieces of a configured source the operator left
// out: the per-kind column aliases and the dot-decimal convention.
func (s *Source) ApplyDefaults() {
	if s.Decimal == "" {
		s.Decimal = normalize.DotDecimal
	}
	if s.Columns == nil {
		s.Columns = DefaultColumns(s.Kind)
	} else {
		defaults := DefaultColumns(s.Kind)
		for field, aliases := range defaults {
			if _, ok := s.Columns[field]; !ok {
				s.Columns[field] = aliases
			}
		}
	}
}

// DefaultColumns returns the header aliases observed across the known sheet
// exports for each source kind.
func DefaultColumns(kind Kind) ColumnMap {
	switch kind {
	case KindSpend:
		return ColumnMap{
			FieldDate:   {"Fecha", "Day", "Date"},
			FieldSpend:  {"Gasto", "Amount spent", "Spent"},
			FieldClicks: {"Clics", "Link clicks", "Clicks"},
			FieldVisits: {"Visitas", "Landing page views", "Visitas LP"},
		}
	case KindLeads, KindQualified:
		return ColumnMap{
			FieldDate:     {"Fecha Creación", "Fecha", "Date"},
			FieldEmail:    {"Email", "Correo"},
			FieldName:     {"Nombre", "Lead Name", "Name"},
			FieldCampaign: {"Origen Campaña", "Campaña", "Campaign", "utm_campaign", "Fuente"},
		}
	default: // sales
		return ColumnMap{
			FieldDate:     {"Fecha", "Date"},
			FieldAmount:   {"Monto ($)", "Monto", "Amount"},
			FieldCloser:   {"Closer"},
			FieldName:     {"Lead Name", "Nombre", "Name"},
			FieldOutcome:  {"Resultado", "Estado"},
			FieldEmail:    {"Email", "Correo"},
			FieldCampaign: {"Origen Campaña", "Campaña", "Campaign", "utm_campaign", "Fuente"},
		}
	}
}

// columnIndex is a resolved view of one source's header: canonical field to
// column position, -1 when the source lacks the column.
type columnIndex map[string]int

// resolveColumns matches the column map against a trimmed header once, at
// load time. It returns the resolved index plus the canonical fields that
// found no home.
func resolveColumns(header []string, columns ColumnMap) (columnIndex, []string) {
	lower := make([]string, len(header))
	for i, h := range header {
		lower[i] = strings.ToLower(strings.TrimSpace(h))
	}

	idx := make(columnIndex, len(columns))
	var missing []string
	for field, aliases := range columns {
		idx[field] = matchColumn(lower, aliases)
		if idx[field] < 0 {
			missing = append(missing, field)
		}
	}
	sort.Strings(missing)
	return idx, missing
}

func matchColumn(lowerHeader []string, aliases []string) int {
	for _, alias := range aliases {
		a := strings.ToLower(strings.TrimSpace(alias))
		for i, h := range lowerHeader {
			if h == a {
				return i
			}
		}
	}
	for _, alias := range aliases {
		a := strings.ToLower(strings.TrimSpace(alias))
		for i, h := range lowerHeader {
			if a != "" && strings.Contains(h, a) {
				return i
			}
		}
	}
	return -1
}

// cell returns the value at a resolved column, tolerating ragged rows and
// unresolved columns.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
