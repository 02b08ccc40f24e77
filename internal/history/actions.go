package history

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	dbpkg "github.com/posterlab/colbalance/pkg/db"
)

func Action(c *cli.Context) error {
	database, err := openHistory(c)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	runs, err := database.ListRuns(c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs found")
		return nil
	}

	// Print table header
	fmt.Printf("%-6s %-20s %-9s %-8s %-8s %-8s %-12s %-30s\n",
		"ID", "Created", "Detected", "Col1", "Col2", "Col3", "Diff", "Source")
	fmt.Println(strings.Repeat("-", 110))

	for _, r := range runs {
		fmt.Printf("%-6d %-20s %-9s %-8s %-8s %-8s %-12s %-30s\n",
			r.RunID,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			detectedLabel(r),
			pct(r.Column1Pct.Float64, r.Column1Pct.Valid),
			pct(r.Column2Pct.Float64, r.Column2Pct.Valid),
			pct(r.Column3Pct.Float64, r.Column3Pct.Valid),
			diffLabel(r),
			r.Source,
		)
	}

	fmt.Printf("\nTotal: %d runs\n", len(runs))
	return nil
}

func openHistory(c *cli.Context) (*dbpkg.DB, error) {
	if path := c.String("db"); path != "" {
		return dbpkg.OpenAt(path)
	}
	return dbpkg.Open()
}

func detectedLabel(r dbpkg.Run) string {
	if r.Detected {
		return "yes"
	}
	if r.ErrorType.Valid {
		return r.ErrorType.String
	}
	return "no"
}

func pct(v float64, ok bool) string {
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", v)
}

func diffLabel(r dbpkg.Run) string {
	if !r.DiffPx.Valid {
		return "-"
	}
	return fmt.Sprintf("%.0fpx (%.1f%%)", r.DiffPx.Float64, r.DiffPct.Float64)
}
