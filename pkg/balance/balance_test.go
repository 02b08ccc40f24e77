package balance

import (
	"math"
	"testing"

	"github.com/posterlab/colbalance/models"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestClassify(t *testing.T) {
	cfg := models.DefaultConfig()

	tests := []struct {
		name        string
		heights     [3]float64
		wantPct     [3]float64
		wantMax     int
		wantMin     int
		wantDiffPx  float64
		wantDiffPct float64
		wantBal     bool
	}{
		{
			name:        "staircase",
			heights:     [3]float64{950, 900, 850},
			wantPct:     [3]float64{95, 90, 85},
			wantMax:     1,
			wantMin:     3,
			wantDiffPx:  100,
			wantDiffPct: 10,
			wantBal:     true,
		},
		{
			name:        "middle starved",
			heights:     [3]float64{990, 600, 990},
			wantPct:     [3]float64{99, 60, 99},
			wantMax:     1, // tie goes to the leftmost
			wantMin:     2,
			wantDiffPx:  390,
			wantDiffPct: 39,
			wantBal:     false,
		},
		{
			name:        "diff exactly at tolerance",
			heights:     [3]float64{900, 700, 800},
			wantPct:     [3]float64{90, 70, 80},
			wantMax:     1,
			wantMin:     2,
			wantDiffPx:  200,
			wantDiffPct: 20,
			wantBal:     true,
		},
		{
			name:        "diff past tolerance",
			heights:     [3]float64{901, 700, 800},
			wantPct:     [3]float64{90.1, 70, 80},
			wantMax:     1,
			wantMin:     2,
			wantDiffPx:  201,
			wantDiffPct: 20.1,
			wantBal:     false,
		},
		{
			name:        "min tie goes to leftmost",
			heights:     [3]float64{850, 900, 850},
			wantPct:     [3]float64{85, 90, 85},
			wantMax:     2,
			wantMin:     1,
			wantDiffPx:  50,
			wantDiffPct: 5,
			wantBal:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.heights, cfg)
			for i := range got.HeightsPct {
				if !almostEqual(got.HeightsPct[i], tt.wantPct[i]) {
					t.Errorf("HeightsPct[%d] = %v, want %v", i, got.HeightsPct[i], tt.wantPct[i])
				}
			}
			if got.MaxColumn != tt.wantMax || got.MinColumn != tt.wantMin {
				t.Errorf("max/min = %d/%d, want %d/%d", got.MaxColumn, got.MinColumn, tt.wantMax, tt.wantMin)
			}
			if !almostEqual(got.DiffPx, tt.wantDiffPx) {
				t.Errorf("DiffPx = %v, want %v", got.DiffPx, tt.wantDiffPx)
			}
			if !almostEqual(got.DiffPct, tt.wantDiffPct) {
				t.Errorf("DiffPct = %v, want %v", got.DiffPct, tt.wantDiffPct)
			}
			if got.IsBalanced != tt.wantBal {
				t.Errorf("IsBalanced = %v, want %v", got.IsBalanced, tt.wantBal)
			}
		})
	}
}

func TestClassify_AllEqual(t *testing.T) {
	got := Classify([3]float64{800, 800, 800}, models.DefaultConfig())

	if got.DiffPx != 0 || !got.IsBalanced {
		t.Errorf("equal heights: DiffPx = %v, IsBalanced = %v", got.DiffPx, got.IsBalanced)
	}
	// Max and min must never name the same column even when all heights agree.
	if got.MaxColumn == got.MinColumn {
		t.Errorf("MaxColumn == MinColumn == %d", got.MaxColumn)
	}
	if got.MaxColumn != 1 || got.MinColumn != 2 {
		t.Errorf("max/min = %d/%d, want 1/2", got.MaxColumn, got.MinColumn)
	}
}

func TestClassify_PercentageMonotonic(t *testing.T) {
	cfg := models.DefaultConfig()
	prev := Classify([3]float64{700, 800, 750}, cfg)

	for _, h := range []float64{710, 750, 900, 1100} {
		got := Classify([3]float64{h, 800, 750}, cfg)
		if got.HeightsPct[0] <= prev.HeightsPct[0] {
			t.Errorf("HeightsPct[0] = %v for height %v, not above %v", got.HeightsPct[0], h, prev.HeightsPct[0])
		}
		prev = got
	}
}

func TestClassify_RespectsBudget(t *testing.T) {
	cfg := models.DefaultConfig()
	cfg.AvailableHeightPerColumn = 500

	got := Classify([3]float64{500, 400, 450}, cfg)
	for i, want := range []float64{100, 80, 90} {
		if !almostEqual(got.HeightsPct[i], want) {
			t.Errorf("HeightsPct[%d] = %v, want %v", i, got.HeightsPct[i], want)
		}
	}
	// 100px against a 500px budget is exactly the 20% tolerance.
	if !got.IsBalanced {
		t.Error("IsBalanced = false, want true at exact tolerance")
	}
}
