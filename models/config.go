// Package models defines configuration and wire-format types for layout analysis.
package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds every tunable threshold of the analysis pipeline. Callers start
// from DefaultConfig and override per call; there is no process-wide mutable
// default beyond the documented fallback values.
type Config struct {
	// AvailableHeightPerColumn is the usable height budget per column in
	// pixels. All utilization percentages are normalized against it.
	AvailableHeightPerColumn float64 `yaml:"available_height_per_column"`

	// BalanceTolerancePct drives the is_balanced flag:
	// diffPx <= budget * BalanceTolerancePct / 100.
	// Deliberately looser than ActionThresholdPct; the two signals can
	// disagree and both are reported.
	BalanceTolerancePct float64 `yaml:"balance_tolerance_pct"`

	// ActionThresholdPct is the tighter tier below which the suggestion
	// generator considers the layout settled.
	ActionThresholdPct float64 `yaml:"action_threshold_pct"`

	// Escalation cut points for the overall status and action wording,
	// in height-difference percent of the budget.
	ModerateDiffPct float64 `yaml:"moderate_diff_pct"`
	SevereDiffPct   float64 `yaml:"severe_diff_pct"`
	CriticalDiffPct float64 `yaml:"critical_diff_pct"`

	// Per-column utilization tiers, in percent of the budget.
	FarUnderusedPct float64 `yaml:"far_underused_pct"`
	UnderusedPct    float64 `yaml:"underused_pct"`
	GoodPct         float64 `yaml:"good_pct"`
	SaturatedPct    float64 `yaml:"saturated_pct"`

	// Balance-tip trigger levels.
	SaturationTipPct float64 `yaml:"saturation_tip_pct"`
	UnderuseTipPct   float64 `yaml:"underuse_tip_pct"`
	BufferLowPct     float64 `yaml:"buffer_low_pct"`
	BufferHighPct    float64 `yaml:"buffer_high_pct"`

	// Discovery geometry. Elements whose left edges differ by less than
	// ClusterTolerancePx always land in the same column cluster.
	ClusterTolerancePx         float64 `yaml:"cluster_tolerance_px"`
	MinColumnWidthPx           float64 `yaml:"min_column_width_px"`
	MaxColumnWidthPx           float64 `yaml:"max_column_width_px"`
	MinElementSizePx           float64 `yaml:"min_element_size_px"`
	ContainerSearchTolerancePx float64 `yaml:"container_search_tolerance_px"`

	// DefaultGapPx substitutes for an unreadable inter-section gap.
	DefaultGapPx float64 `yaml:"default_gap_px"`
}

// DefaultConfig returns the documented fallback thresholds.
func DefaultConfig() Config {
	return Config{
		AvailableHeightPerColumn:   1000,
		BalanceTolerancePct:        20,
		ActionThresholdPct:         5,
		ModerateDiffPct:            10,
		SevereDiffPct:              20,
		CriticalDiffPct:            30,
		FarUnderusedPct:            60,
		UnderusedPct:               75,
		GoodPct:                    90,
		SaturatedPct:               100,
		SaturationTipPct:           95,
		UnderuseTipPct:             65,
		BufferLowPct:               75,
		BufferHighPct:              85,
		ClusterTolerancePx:         10,
		MinColumnWidthPx:           200,
		MaxColumnWidthPx:           800,
		MinElementSizePx:           50,
		ContainerSearchTolerancePx: 50,
		DefaultGapPx:               25,
	}
}

// LoadConfig reads a YAML threshold file and overlays it on the defaults, so
// a partial file only overrides the keys it names.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
