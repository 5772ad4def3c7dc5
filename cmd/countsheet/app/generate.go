package app

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/otterlog/countsheet/internal/workbook"
	"github.com/otterlog/countsheet/pkg/aggregate"
	"github.com/otterlog/countsheet/pkg/errors"
	"github.com/otterlog/countsheet/pkg/reconcile"
)

// NewGenerateCommand creates the generate command, the main operation of
// the tool: run the reconciliation pipeline for one survey year.
func (a *App) NewGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [year]",
		Short: "Generate the countsheet template for a survey year",
		Long: `Generate loads the site registry and the selected year's log summary,
collapses multi-pass log entries, reconciles every registry site against
the log, and writes the countsheet template workbook plus a flagged-sites
report. The year is given as an argument or asked for interactively.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := resolveYear(cmd, args)
			if err != nil {
				return err
			}
			return a.runGenerate(cmd, year)
		},
	}

	cmd.Flags().String("input-dir", "", "directory holding SITES.xlsx and the log summaries")
	cmd.Flags().String("output-dir", "", "directory the countsheet template is written to")
	cmd.Flags().String("aliases", "", "column alias table (YAML); default is embedded")

	return cmd
}

// runGenerate executes the pipeline: load, cleanse, aggregate, reconcile,
// sort, verify, assemble, summarize.
func (a *App) runGenerate(cmd *cobra.Command, year int) error {
	config := a.pathsFromFlags(cmd)
	logger := a.logger

	sitesPath := filepath.Join(config.InputDir, config.SitesFile)
	logPath := filepath.Join(config.InputDir, fmt.Sprintf("%d_LOGSummary.xlsx", year))
	outPath := filepath.Join(config.OutputDir, fmt.Sprintf("COUNTSHEET_TEMPLATE_%d.xlsx", year))

	aliases, err := workbook.LoadAliases(config.AliasFile)
	if err != nil {
		return err
	}

	loader := workbook.NewLoader(aliases, logger)
	sites, err := loader.Sites(sitesPath)
	if err != nil {
		return err
	}
	entries, err := loader.Log(logPath)
	if err != nil {
		return err
	}

	cleansed := aggregate.DropDoNotUse(entries)
	if dropped := len(entries) - len(cleansed); dropped > 0 {
		logger.Info().Int("dropped", dropped).Msg("Discarded do-not-use log rows")
	}

	aggregates, consumed := aggregate.Aggregate(cleansed)
	logger.Info().
		Int("entries", len(cleansed)).
		Int("subsites", len(aggregates)).
		Int("consumed_ids", len(consumed)).
		Msg("Aggregated log passes")

	result := reconcile.NewResult(year)
	rows := reconcile.Reconcile(sites, aggregates, consumed)
	reconcile.Sort(rows)

	warnings, err := reconcile.Verify(rows)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		logger.Warn().Msg(w)
	}

	result.Collect(rows)
	result.Warnings = warnings
	result.ColumnCount = workbook.ColumnCount
	result.OutputFile = outPath

	if err := os.MkdirAll(config.OutputDir, 0o755); err != nil {
		return errors.WrapIO("create", config.OutputDir, err)
	}
	assembler := workbook.NewAssembler(logger)
	if err := assembler.Write(outPath, rows, result.Flagged()); err != nil {
		return err
	}

	result.Finalize()
	logger.Info().Dur("duration", result.Duration).Msg("Countsheet generation complete")
	fmt.Fprintln(cmd.OutOrStdout(), result.Summary())
	return nil
}

// pathsFromFlags overlays generate's path flags onto the loaded config.
func (a *App) pathsFromFlags(cmd *cobra.Command) Config {
	config := *a.config
	if v, err := cmd.Flags().GetString("input-dir"); err == nil && v != "" {
		config.InputDir = v
	}
	if v, err := cmd.Flags().GetString("output-dir"); err == nil && v != "" {
		config.OutputDir = v
	}
	if v, err := cmd.Flags().GetString("aliases"); err == nil && v != "" {
		config.AliasFile = v
	}
	return config
}

// resolveYear takes the year from the argument, or prompts for it when
// the command runs interactively without one.
func resolveYear(cmd *cobra.Command, args []string) (int, error) {
	if len(args) == 1 {
		return parseYear(args[0])
	}
	fmt.Fprint(cmd.OutOrStdout(), "Survey year: ")
	return readYear(cmd.InOrStdin())
}

func readYear(r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		return 0, errors.NewValidationError("year", nil, "no year provided")
	}
	return parseYear(scanner.Text())
}

// parseYear validates a four-digit survey year.
func parseYear(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if len(s) != 4 {
		return 0, errors.NewValidationError("year", raw, "survey year must be four digits")
	}
	year, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.NewValidationError("year", raw, "survey year must be numeric")
	}
	return year, nil
}
