package models

// ColumnAnalysis is the per-column block of the suggestion report.
type ColumnAnalysis struct {
	HeightUsage    string `json:"height_usage" yaml:"height_usage"`
	PixelsUsed     string `json:"pixels_used" yaml:"pixels_used"`
	RemainingSpace string `json:"remaining_space" yaml:"remaining_space"`
	Status         string `json:"status" yaml:"status"`
	Suggestion     string `json:"suggestion" yaml:"suggestion"`
}

// SuggestionReport is the tiered remediation report. It is a pure function of
// the balance statistics and the configured budget, recomputed on every call.
type SuggestionReport struct {
	OverallStatus      string                    `json:"overall_status" yaml:"overall_status"`
	ColumnAnalysis     map[string]ColumnAnalysis `json:"column_analysis" yaml:"column_analysis"`
	RecommendedActions []string                  `json:"recommended_actions" yaml:"recommended_actions"`
	BalanceTips        string                    `json:"balance_tips" yaml:"balance_tips"`
}

// Report is the serialized outcome of one successful analysis call.
type Report struct {
	Column1     string            `json:"column_1" yaml:"column_1"`
	Column2     string            `json:"column_2" yaml:"column_2"`
	Column3     string            `json:"column_3" yaml:"column_3"`
	IsBalanced  bool              `json:"is_balanced" yaml:"is_balanced"`
	MaxHeight   string            `json:"max_height" yaml:"max_height"`
	MinHeight   string            `json:"min_height" yaml:"min_height"`
	HeightDiff  string            `json:"height_diff" yaml:"height_diff"`
	Suggestions *SuggestionReport `json:"suggestions" yaml:"suggestions"`
}

// Failure is the structured no-report outcome. Every analysis call yields
// either a complete Report or exactly one Failure.
type Failure struct {
	Status    string `json:"status" yaml:"status"`
	ErrorType string `json:"error_type" yaml:"error_type"`
	Error     string `json:"error" yaml:"error"`
}
