package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/confluentinc/data-tools/internal/config"
	"github.com/confluentinc/data-tools/internal/files/filesystem"
	"github.com/confluentinc/data-tools/internal/logging"
	"github.com/confluentinc/data-tools/internal/pipeline"
	"github.com/confluentinc/data-tools/internal/sanitize"
	"github.com/confluentinc/data-tools/internal/transform"
	"github.com/confluentinc/data-tools/pkg/datatools"
)

var usageMetricsCmd = &cobra.Command{
	Use:   "usage-metrics",
	Short: "Transform usage-metrics data files for analytics loading",
	Long: `Transform usage-metrics JSON Lines files so they can be loaded into
BigQuery.

For every record the command:
1. Drops the @timestamp field (less accurate than timestamp)
2. Rounds timestamp and metric._deltaSeconds to the nearest minute
3. Adds datetime_pt and date_pt in Pacific time for partitioning
4. Replaces invalid characters in keys with underscore
   (e.g. "pod-name" becomes "pod_name")

Files are processed in parallel; one malformed file is reported and skipped
without aborting the rest of the run. Output files mirror the input layout,
and a file is only published once it transformed completely.

Configuration sources, in order of precedence:
  flags > TRANSFORM_* environment variables > transform.yaml > defaults
A .env file in the working directory is loaded if present.

Examples:
  # Transform ./data into ./transformed-data with 5 workers
  transform usage-metrics

  # Restrict to one partition directory and keep only some fields
  transform usage-metrics --path-contains 2019-07 \
    --field timestamp --field metric --field metric.tenant

  # Drop an internal field and re-run over an existing output dir
  transform usage-metrics --field -metric._internal_debug --skip-existing`,
	Args: cobra.NoArgs,
	RunE: runUsageMetrics,
}

type usageMetricsFlagValues struct {
	inputDir     string
	outputDir    string
	processes    int
	pathContains string
	fields       []string
	skipExisting bool
	manifest     bool
}

var usageMetricsFlags usageMetricsFlagValues

func init() {
	rootCmd.AddCommand(usageMetricsCmd)

	usageMetricsCmd.Flags().StringVar(&usageMetricsFlags.inputDir, "input-dir", datatools.DefaultInputDir,
		"Directory to read data files from\n"+
			"Precedence: --input-dir > $TRANSFORM_INPUT_DIR > transform.yaml > \""+datatools.DefaultInputDir+"\"")
	usageMetricsCmd.Flags().StringVar(&usageMetricsFlags.outputDir, "output-dir", datatools.DefaultOutputDir,
		"Directory to write transformed files to (created if absent)\n"+
			"Precedence: --output-dir > $TRANSFORM_OUTPUT_DIR > transform.yaml > \""+datatools.DefaultOutputDir+"\"")
	usageMetricsCmd.Flags().IntVar(&usageMetricsFlags.processes, "processes", datatools.DefaultProcesses,
		"Number of files to transform in parallel\n"+
			"Precedence: --processes > $TRANSFORM_PROCESSES > transform.yaml > 5")
	usageMetricsCmd.Flags().StringVar(&usageMetricsFlags.pathContains, "path-contains", "",
		"Only process files whose directory path contains the given value\n"+
			"Example: --path-contains 2019-07 for daily partition directories")
	usageMetricsCmd.Flags().StringSliceVar(&usageMetricsFlags.fields, "field", nil,
		"Field to extract from data files (can be specified multiple times)\n"+
			"Use a dot for nested fields; prefix with \"-\" to exclude a field\n"+
			"Example: --field metric.tenant --field -metric._internal_debug")
	usageMetricsCmd.Flags().BoolVar(&usageMetricsFlags.skipExisting, "skip-existing", false,
		"Skip files whose output already exists instead of overwriting them")
	usageMetricsCmd.Flags().BoolVar(&usageMetricsFlags.manifest, "manifest", false,
		"Write manifest.json to the output directory with per-file record\n"+
			"counts and checksums for downstream load verification")
}

// buildTransformConfig resolves the effective configuration from flags,
// environment variables, transform.yaml, and built-in defaults.
// This function is extracted for testability and separation of concerns.
func buildTransformConfig(cmd *cobra.Command, verbose bool) (datatools.TransformConfig, error) {
	_ = godotenv.Load()

	fileCfg, err := config.Load(".")
	if err != nil {
		if !errors.Is(err, config.ErrConfigNotFound) {
			return datatools.TransformConfig{}, fmt.Errorf("%w: %v", datatools.ErrInvalidConfig, err)
		}
		fileCfg = &config.FileConfig{}
	}

	processes, err := resolveInt(cmd, "processes", usageMetricsFlags.processes,
		"TRANSFORM_PROCESSES", fileCfg.Processes, datatools.DefaultProcesses)
	if err != nil {
		return datatools.TransformConfig{}, err
	}

	fields := usageMetricsFlags.fields
	if !cmd.Flags().Changed("field") && len(fileCfg.Fields) > 0 {
		fields = fileCfg.Fields
	}

	pathContains := usageMetricsFlags.pathContains
	if !cmd.Flags().Changed("path-contains") && fileCfg.PathContains != "" {
		pathContains = fileCfg.PathContains
	}

	cfg := datatools.TransformConfig{
		InputDir: resolveString(cmd, "input-dir", usageMetricsFlags.inputDir,
			"TRANSFORM_INPUT_DIR", fileCfg.InputDir, datatools.DefaultInputDir),
		OutputDir: resolveString(cmd, "output-dir", usageMetricsFlags.outputDir,
			"TRANSFORM_OUTPUT_DIR", fileCfg.OutputDir, datatools.DefaultOutputDir),
		Processes:    processes,
		PathContains: pathContains,
		Fields:       fields,
		SkipExisting: usageMetricsFlags.skipExisting,
		Manifest:     usageMetricsFlags.manifest,
		Verbose:      verbose,
	}

	if err := cfg.Validate(); err != nil {
		return datatools.TransformConfig{}, err
	}

	return cfg, nil
}

// resolveString applies the flag > env > file > default precedence chain.
func resolveString(cmd *cobra.Command, flagName, flagValue, envVar, fileValue, defaultValue string) string {
	if cmd.Flags().Changed(flagName) {
		return flagValue
	}
	if v := os.Getenv(envVar); v != "" {
		return v
	}
	if fileValue != "" {
		return fileValue
	}
	return defaultValue
}

// resolveInt applies the flag > env > file > default precedence chain.
func resolveInt(cmd *cobra.Command, flagName string, flagValue int, envVar string, fileValue, defaultValue int) (int, error) {
	if cmd.Flags().Changed(flagName) {
		return flagValue, nil
	}
	if v := os.Getenv(envVar); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("%w: invalid %s value %q", datatools.ErrInvalidConfig, envVar, v)
		}
		return n, nil
	}
	if fileValue != 0 {
		return fileValue, nil
	}
	return defaultValue, nil
}

func runUsageMetrics(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)

	cfg, err := buildTransformConfig(cmd, verbose)
	if err != nil {
		return err
	}

	logger := logging.NewConsoleLogger(verbose)
	policy := sanitize.NewPolicy(cfg.Fields)

	logger.Info("Transforming data files from %q and writing them to %q using %d parallel processes",
		cfg.InputDir, cfg.OutputDir, cfg.Processes)
	if selects := policy.SelectFields(); len(selects) > 0 {
		logger.Info("Only extracting these fields: %s", strings.Join(selects, ", "))
	}
	if excludes := policy.ExcludeFields(); len(excludes) > 0 {
		logger.Info("Excluding these fields: %s", strings.Join(excludes, ", "))
	}

	pipe := pipeline.New(filesystem.NewOSFileSystem(), logger, policy, transform.UsageMetricsRecord)

	summary, err := pipe.Run(cfg)
	if err != nil {
		return err
	}

	return reportSummary(logger, &summary)
}

// reportSummary prints the final run report and converts per-file failures
// into the process-level ErrTasksFailed.
func reportSummary(logger datatools.Logger, summary *datatools.RunSummary) error {
	if summary.Total() == 0 {
		return nil
	}

	logger.Info(strings.Repeat("-", 80))
	logger.Info("Transformed %d data file(s)", summary.Succeeded())
	if skipped := summary.Skipped(); skipped > 0 {
		logger.Info("Skipped %d data file(s) with existing output", skipped)
	}

	failures := summary.Failures()
	if len(failures) == 0 {
		return nil
	}

	logger.Error("Could not transform %d data file(s):", len(failures))
	for _, f := range failures {
		logger.Error("  %s: %v", f.RelativePath, f.Err)
	}

	return fmt.Errorf("%w: %d of %d", datatools.ErrTasksFailed, len(failures), summary.Total())
}
