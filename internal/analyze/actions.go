package analyze

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/posterlab/colbalance/models"
	dbpkg "github.com/posterlab/colbalance/pkg/db"
	"github.com/posterlab/colbalance/pkg/engine"
	"github.com/posterlab/colbalance/pkg/inspector"
)

// exitInfra is used for failures outside the analysis semantics (bad input
// path, browser breakage, bad flags). A document without a three-column
// structure exits 1 instead: that outcome is expected and machine-readable.
const (
	exitNoColumns = 1
	exitInfra     = 2
)

func Action(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	cfg, err := loadConfig(c)
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to load config: %v", err), exitInfra)
	}

	input := c.String("input")
	source, err := resolveSource(input)
	if err != nil {
		logger.Error("input unavailable", "input", input, "error", err)
		emitFailure(c, engine.CodeInputUnavailable, err)
		return cli.Exit("", exitInfra)
	}

	ctx, cancel := context.WithTimeout(c.Context, c.Duration("timeout"))
	defer cancel()

	insp, cleanup, err := buildInspector(ctx, c.String("inspector"), input, source)
	if err != nil {
		logger.Error("inspector setup failed", "error", err)
		emitFailure(c, engine.CodeInputUnavailable, err)
		return cli.Exit("", exitInfra)
	}
	defer cleanup()

	logger.Info("analyzing layout", "source", source, "available_height", cfg.AvailableHeightPerColumn)

	outcome, err := engine.New(insp, cfg, logger).Analyze(ctx)
	if err != nil {
		code := engine.CodeOf(err)
		logger.Error("analysis failed", "error_type", string(code), "error", err)
		emitFailure(c, code, err)
		recordRun(c, logger, cfg, input, nil, code)
		if errors.Is(err, engine.ErrNoColumnStructure) {
			return cli.Exit("", exitNoColumns)
		}
		return cli.Exit("", exitInfra)
	}

	if err := emit(c, outcome.Report); err != nil {
		return cli.Exit(fmt.Sprintf("failed to encode report: %v", err), exitInfra)
	}
	recordRun(c, logger, cfg, input, outcome, "")
	return nil
}

func loadConfig(c *cli.Context) (models.Config, error) {
	cfg := models.DefaultConfig()
	if path := c.String("config"); path != "" {
		var err error
		cfg, err = models.LoadConfig(path)
		if err != nil {
			return models.Config{}, err
		}
	}
	if c.IsSet("available-height") {
		cfg.AvailableHeightPerColumn = c.Float64("available-height")
	}
	return cfg, nil
}

// resolveSource turns the input flag into a browser-loadable URL. File paths
// must exist; URLs pass through untouched.
func resolveSource(input string) (string, error) {
	if u, err := url.Parse(input); err == nil && (u.Scheme == "http" || u.Scheme == "https" || u.Scheme == "file") {
		return input, nil
	}
	if _, err := os.Stat(input); err != nil {
		return "", fmt.Errorf("input not found: %w", err)
	}
	abs, err := filepath.Abs(input)
	if err != nil {
		return "", fmt.Errorf("cannot resolve input path: %w", err)
	}
	return "file://" + abs, nil
}

func buildInspector(ctx context.Context, kind, input, source string) (inspector.LayoutInspector, func(), error) {
	switch kind {
	case "chrome":
		chrome, err := inspector.NewChrome(ctx, source)
		if err != nil {
			return nil, nil, err
		}
		return chrome, chrome.Close, nil
	case "static":
		if strings.HasPrefix(source, "http") {
			return nil, nil, fmt.Errorf("static inspector reads local files only, got %s", source)
		}
		f, err := os.Open(input)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open input: %w", err)
		}
		defer f.Close()
		static, err := inspector.NewStatic(f)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot parse input document: %w", err)
		}
		return static, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown inspector %q (want chrome or static)", kind)
	}
}

func emit(c *cli.Context, v any) error {
	if c.String("format") == "yaml" {
		data, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// emitFailure writes the failure envelope to stdout so callers always get a
// parseable result. Encoding errors here are swallowed: the exit code and the
// log line already carry the failure.
func emitFailure(c *cli.Context, code engine.FailureCode, err error) {
	_ = emit(c, models.Failure{
		Status:    "error",
		ErrorType: string(code),
		Error:     err.Error(),
	})
}

// recordRun appends the outcome to the run history. History failures are
// logged and otherwise ignored; they never change the analysis result.
func recordRun(c *cli.Context, logger *slog.Logger, cfg models.Config, input string, outcome *engine.Outcome, code engine.FailureCode) {
	if c.Bool("no-history") {
		return
	}
	database, err := openHistory(c)
	if err != nil {
		logger.Warn("run history unavailable", "error", err)
		return
	}
	defer database.Close()

	run := dbpkg.Run{
		Source:          input,
		AvailableHeight: cfg.AvailableHeightPerColumn,
		Detected:        outcome != nil,
	}
	if outcome != nil {
		res := outcome.Stats
		run.IsBalanced = sql.NullBool{Bool: res.IsBalanced, Valid: true}
		run.Column1Pct = sql.NullFloat64{Float64: res.HeightsPct[0], Valid: true}
		run.Column2Pct = sql.NullFloat64{Float64: res.HeightsPct[1], Valid: true}
		run.Column3Pct = sql.NullFloat64{Float64: res.HeightsPct[2], Valid: true}
		run.MaxHeightPx = sql.NullFloat64{Float64: res.MaxHeightPx, Valid: true}
		run.MinHeightPx = sql.NullFloat64{Float64: res.MinHeightPx, Valid: true}
		run.DiffPx = sql.NullFloat64{Float64: res.DiffPx, Valid: true}
		run.DiffPct = sql.NullFloat64{Float64: res.DiffPct, Valid: true}
		if s := outcome.Report.Suggestions; s != nil {
			run.OverallStatus = sql.NullString{String: s.OverallStatus, Valid: true}
		}
	} else {
		run.ErrorType = sql.NullString{String: string(code), Valid: true}
	}

	if _, err := database.InsertRun(run); err != nil {
		logger.Warn("failed to record run", "error", err)
	}
}

func openHistory(c *cli.Context) (*dbpkg.DB, error) {
	if path := c.String("db"); path != "" {
		return dbpkg.OpenAt(path)
	}
	return dbpkg.Open()
}
