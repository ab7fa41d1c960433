package normalize

import "strings"

// RepairConfig describes the column-shift defect of a source. The exporter
// behind the closer sheets occasionally emits rows with the leading columns
// blank and every value displaced; the observed displacement is 8 columns on
// tables at least 9 columns wide. Both numbers are per-source knobs because
// the defect is tied to one exporter's schema.
type RepairConfig struct {
	AnchorColumn int
	Offset       int
	MinColumns   int
}

// DefaultRepair matches the known exporter defect.
func DefaultRepair() RepairConfig {
	return RepairConfig{AnchorColumn: 0, Offset: 8, MinColumns: 9}
}

// RepairShift returns a copy of rows with the shift defect corrected. A row is
// repaired only when its anchor cell is blank and it has at least MinColumns
// cells: its values rotate left by Offset (wrapping) and the trailing Offset
// cells are cleared. Every other row passes through untouched.
func RepairShift(rows [][]string, cfg RepairConfig) [][]string {
	if cfg.Offset <= 0 {
		return rows
	}
	out := make([][]string, len(rows))
	for i, row := range rows {
		if !needsRepair(row, cfg) {
			out[i] = row
			continue
		}
		out[i] = rotateLeft(row, cfg.Offset)
	}
	return out
}

func needsRepair(row []string, cfg RepairConfig) bool {
	if len(row) < cfg.MinColumns || cfg.AnchorColumn >= len(row) {
		return false
	}
	return strings.TrimSpace(row[cfg.AnchorColumn]) == ""
}

func rotateLeft(row []string, offset int) []string {
	n := len(row)
	fixed := make([]string, n)
	shift := offset % n
	for j := range row {
		fixed[j] = row[(j+shift)%n]
	}
	blank := offset
	if blank > n {
		blank = n
	}
	for j := n - blank; j < n; j++ {
		fixed[j] = ""
	}
	return fixed
}
