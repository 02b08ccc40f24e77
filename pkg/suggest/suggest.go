// Package suggest turns balance statistics into a tiered remediation report.
//
// Generation is pure and deterministic: identical inputs always produce an
// identical report, so the output can be diffed across re-layout iterations.
package suggest

import (
	"fmt"
	"strings"

	"github.com/posterlab/colbalance/models"
	"github.com/posterlab/colbalance/pkg/balance"
)

// Generate builds the full suggestion report from one classification result.
// It performs no I/O.
func Generate(res balance.Result, cfg models.Config) *models.SuggestionReport {
	rep := &models.SuggestionReport{
		OverallStatus:  overallStatus(res, cfg),
		ColumnAnalysis: make(map[string]models.ColumnAnalysis, 3),
	}
	for i := 0; i < 3; i++ {
		rep.ColumnAnalysis[fmt.Sprintf("Column %d", i+1)] = analyzeColumn(res.HeightsPct[i], cfg)
	}
	rep.RecommendedActions = recommendedActions(res, cfg)
	rep.BalanceTips = balanceTips(res, cfg)
	return rep
}

func overallStatus(res balance.Result, cfg models.Config) string {
	switch {
	case res.DiffPct <= cfg.ActionThresholdPct:
		return fmt.Sprintf("✓ Three columns well balanced, difference only %.1f%% (%.0fpx), no adjustment needed",
			res.DiffPct, res.DiffPx)
	case res.DiffPct <= cfg.SevereDiffPct:
		return fmt.Sprintf("🔴 Column height difference %.1f%% (%.0fpx), **must adjust content distribution**",
			res.DiffPct, res.DiffPx)
	default:
		return fmt.Sprintf("🔴🔴 Severe imbalance in column heights, difference %.1f%% (%.0fpx), **mandatory re-layout required**",
			res.DiffPct, res.DiffPx)
	}
}

// analyzeColumn maps one column's utilization onto the five-tier table.
func analyzeColumn(pct float64, cfg models.Config) models.ColumnAnalysis {
	budget := cfg.AvailableHeightPerColumn
	pixels := pct / 100 * budget
	remaining := budget - pixels

	a := models.ColumnAnalysis{
		HeightUsage:    fmt.Sprintf("%.1f%%", pct),
		PixelsUsed:     fmt.Sprintf("%.0fpx", pixels),
		RemainingSpace: fmt.Sprintf("%.0fpx", remaining),
	}

	switch {
	case pct < cfg.FarUnderusedPct:
		a.Status = "❌ Space utilization too low"
		a.Suggestion = fmt.Sprintf("%.0fpx space remaining, suggest adding content:\n"+
			"  - Move content from other columns (e.g., images, conclusion paragraphs)\n"+
			"  - Add more experimental results or case studies\n"+
			"  - Add visualization charts or example images", remaining)
	case pct < cfg.UnderusedPct:
		a.Status = "⚠ Insufficient space utilization"
		a.Suggestion = fmt.Sprintf("%.0fpx space remaining, suggest adding:\n"+
			"  - Move some content from highest column\n"+
			"  - Add related work or background introduction\n"+
			"  - Expand detailed description of existing sections", remaining)
	case pct < cfg.GoodPct:
		a.Status = "✓ Good space utilization"
		a.Suggestion = fmt.Sprintf("%.0fpx space remaining, basically reasonable, can fine-tune:\n"+
			"  - Can receive content if other columns are too full\n"+
			"  - Maintain current content density", remaining)
	case pct < cfg.SaturatedPct:
		a.Status = "⚠ Space near saturation"
		a.Suggestion = fmt.Sprintf("Only %.0fpx space remaining, suggest:\n"+
			"  - Consider moving some content to columns with more space\n"+
			"  - Streamline current content, keep core information\n"+
			"  - Check for redundant content that can be removed", remaining)
	default:
		a.Status = "❌ Space overloaded"
		a.Suggestion = fmt.Sprintf("Exceeded available space by %.0fpx, must adjust:\n"+
			"  - Move some content to other columns\n"+
			"  - Remove secondary content or reduce font size\n"+
			"  - Compress image sizes or reduce number of images", pixels-budget)
	}
	return a
}

func recommendedActions(res balance.Result, cfg models.Config) []string {
	actions := []string{}

	if res.DiffPct <= cfg.ActionThresholdPct {
		if res.DiffPct > 0 {
			actions = append(actions, fmt.Sprintf(
				"💡 Minor difference (%.1f%%), optional adjustment: Fine-tune image size or font spacing", res.DiffPct))
		}
		return actions
	}

	moveAmount := res.DiffPx / 2
	maxPct := res.HeightsPct[res.MaxColumn-1]
	minPct := res.HeightsPct[res.MinColumn-1]

	actions = append(actions,
		fmt.Sprintf("🔴 **Must do**: Move %.0fpx content out from [Column %d] (%.1f%%)", moveAmount, res.MaxColumn, maxPct),
		fmt.Sprintf("🔴 **Must do**: Add %.0fpx content to [Column %d] (%.1f%%)", moveAmount, res.MinColumn, minPct),
	)

	switch {
	case res.DiffPct > cfg.CriticalDiffPct:
		actions = append(actions,
			"‼️ **Mandatory**: Must move entire sections (e.g., Methods, Results, Related Work, etc.)",
			fmt.Sprintf("‼️ **Specific action**: Reorganize three-column content distribution, move at least 1 complete section from Column %d to Column %d", res.MaxColumn, res.MinColumn))
	case res.DiffPct > cfg.SevereDiffPct:
		actions = append(actions,
			"‼️ **Mandatory**: Must move 1-2 complete paragraphs or one medium-sized image",
			fmt.Sprintf("‼️ **Specific action**: Select content block of approximately %.0fpx from Column %d and move to Column %d", moveAmount, res.MaxColumn, res.MinColumn))
	case res.DiffPct > cfg.ModerateDiffPct:
		actions = append(actions,
			"‼️ **Mandatory**: Must move at least 1 paragraph or adjust image size",
			fmt.Sprintf("‼️ **Specific action**: Reduce image in Column %d or move a text paragraph to Column %d", res.MaxColumn, res.MinColumn))
	default:
		actions = append(actions,
			"⚠️ **Adjustment required**: Move small text or slightly adjust image size",
			fmt.Sprintf("⚠️ **Specific action**: Adjust image height in Column %d to reduce %.0fpx, or move small amount of text to Column %d", res.MaxColumn, moveAmount, res.MinColumn))
	}
	return actions
}

// balanceTips emits every applicable independent signal; the signals are not
// mutually exclusive.
func balanceTips(res balance.Result, cfg models.Config) string {
	var tips []string

	maxPct := res.HeightsPct[res.MaxColumn-1]
	minPct := res.HeightsPct[res.MinColumn-1]

	if maxPct > cfg.SaturationTipPct {
		tips = append(tips, fmt.Sprintf("🔴 **Serious issue**: Highest column near saturation (>%.0f%%), must remove content immediately!", cfg.SaturationTipPct))
	}
	if minPct < cfg.UnderuseTipPct {
		tips = append(tips, fmt.Sprintf("🔴 **Serious issue**: Lowest column utilization too low (<%.0f%%), must add substantial content!", cfg.UnderuseTipPct))
	}

	// Column indexes sum to 1+2+3 = 6.
	middle := 6 - res.MaxColumn - res.MinColumn
	middlePct := res.HeightsPct[middle-1]
	if middlePct >= cfg.BufferLowPct && middlePct <= cfg.BufferHighPct {
		tips = append(tips, fmt.Sprintf("✓ Column %d height moderate (%.1f%%), can serve as buffer zone for balance adjustment", middle, middlePct))
	}

	switch {
	case res.DiffPct <= cfg.ActionThresholdPct:
		tips = append(tips, fmt.Sprintf("✅ Perfect balance: difference only %.1f%%, no adjustment needed", res.DiffPct))
	case res.DiffPct < cfg.ModerateDiffPct:
		tips = append(tips, fmt.Sprintf("⚠️ Needs adjustment: difference %.1f%%, fine-tuning can achieve balance", res.DiffPct))
	case res.DiffPct < cfg.SevereDiffPct:
		tips = append(tips, fmt.Sprintf("🔴 **Must adjust**: difference %.1f%%, must move 1-2 elements", res.DiffPct))
	case res.DiffPct < cfg.CriticalDiffPct:
		tips = append(tips, fmt.Sprintf("🔴🔴 **Mandatory**: difference %.1f%%, must move entire paragraph or large image", res.DiffPct))
	default:
		tips = append(tips, fmt.Sprintf("🔴🔴🔴 **Urgent adjustment**: difference as high as %.1f%%, must reorganize overall layout!", res.DiffPct))
	}

	if res.DiffPct > cfg.ActionThresholdPct {
		tips = append(tips,
			"\n**Execution steps**:",
			fmt.Sprintf("1️⃣ Check movable content in Column %d (paragraphs, images, tables)", res.MaxColumn),
			fmt.Sprintf("2️⃣ Select content block of approximately %.0fpx", res.DiffPx/2),
			fmt.Sprintf("3️⃣ Move it to appropriate position in Column %d", res.MinColumn),
			fmt.Sprintf("4️⃣ Re-detect height, ensure difference reduced to within %.0f%%", cfg.ActionThresholdPct))
	}

	if len(tips) == 0 {
		return "✅ All columns perfectly balanced"
	}
	return strings.Join(tips, "\n")
}
