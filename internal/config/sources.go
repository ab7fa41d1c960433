package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/funnelcast/funnelcast/internal/classify"
	"github.com/funnelcast/funnelcast/internal/common"
	"github.com/funnelcast/funnelcast/internal/kpi"
	"github.com/funnelcast/funnelcast/internal/normalize"
	"github.com/funnelcast/funnelcast/internal/reconcile"
)

// sourceSpec is the config-file shape of one sheet source.
type sourceSpec struct {
	ID           string              `mapstructure:"id"`
	URL          string              `mapstructure:"url"`
	Kind         string              `mapstructure:"kind"`
	Decimal      string              `mapstructure:"decimal"`
	DayFirst     bool                `mapstructure:"day_first"`
	Repair       bool                `mapstructure:"repair"`
	RepairOffset int                 `mapstructure:"repair_offset"`
	MinColumns   int                 `mapstructure:"repair_min_columns"`
	Columns      map[string][]string `mapstructure:"columns"`
}

// LoadSources reads the configured sheet sources. At least one source must be
// configured for a report run to mean anything.
func LoadSources() ([]reconcile.Source, error) {
	var specs []sourceSpec
	if err := viper.UnmarshalKey("sources", &specs); err != nil {
		return nil, fmt.Errorf("failed to parse sources: %w", err)
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("%w: no sources configured", common.ErrMissingConfig)
	}

	out := make([]reconcile.Source, 0, len(specs))
	for i, spec := range specs {
		if spec.ID == "" {
			return nil, fmt.Errorf("%w: source %d has no id", common.ErrInvalidConfig, i)
		}
		if spec.URL == "" {
			return nil, fmt.Errorf("%w: source %q has no url", common.ErrInvalidConfig, spec.ID)
		}

		src := reconcile.Source{
			ID:       spec.ID,
			URL:      spec.URL,
			DayFirst: spec.DayFirst,
		}

		switch reconcile.Kind(spec.Kind) {
		case reconcile.KindSales, reconcile.KindSpend, reconcile.KindLeads, reconcile.KindQualified:
			src.Kind = reconcile.Kind(spec.Kind)
		case "":
			src.Kind = reconcile.KindSales
		default:
			return nil, fmt.Errorf("%w: source %q has unknown kind %q", common.ErrInvalidConfig, spec.ID, spec.Kind)
		}

		switch normalize.Convention(spec.Decimal) {
		case normalize.DotDecimal, normalize.CommaDecimal:
			src.Decimal = normalize.Convention(spec.Decimal)
		case "":
			// ApplyDefaults picks dot-decimal
		default:
			return nil, fmt.Errorf("%w: source %q has unknown decimal convention %q", common.ErrInvalidConfig, spec.ID, spec.Decimal)
		}

		if spec.Repair {
			repair := normalize.DefaultRepair()
			if spec.RepairOffset > 0 {
				repair.Offset = spec.RepairOffset
			}
			if spec.MinColumns > 0 {
				repair.MinColumns = spec.MinColumns
			}
			src.Repair = &repair
		}

		if len(spec.Columns) > 0 {
			src.Columns = reconcile.ColumnMap(spec.Columns)
		}

		out = append(out, src)
	}
	return out, nil
}

// LoadPolicies reads the attendance and lead-count policy selections.
func LoadPolicies() (classify.AttendancePolicy, kpi.LeadCountPolicy) {
	attendance := classify.ParseAttendancePolicy(viper.GetString("policies.attendance"))
	leadCount := kpi.ParseLeadCountPolicy(viper.GetString("policies.lead_count"))
	return attendance, leadCount
}
