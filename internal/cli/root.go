package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "transform",
	Short: "Data transformation tools",
	Long: `transform rewrites structured data files so they can be loaded into
analytics systems with strict column-naming rules.

Each subcommand reads JSON Lines files (optionally gzip-compressed) from an
input directory, transforms every record, and writes the results to an
output directory that mirrors the input layout. Files are processed in
parallel and each file either publishes completely or not at all.

Exit Codes:
  0  - Success
  1  - General error, or one or more files failed to transform
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or parameters
  20 - Input directory missing or unreadable
  21 - Output directory could not be created`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("help", false, "Help for transform")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
