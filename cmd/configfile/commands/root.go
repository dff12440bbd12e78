// Package commands provides the CLI commands for configfile.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wjaoss/configfile/internal/logging"
)

var (
	// Version information set at build time
	Version   = "0.1.0"
	BuildTime = "dev"
)

// Global flags
var (
	logLevel      string
	logJSON       bool
	configKey     string
	sourceFiles   []string
	caseSensitive bool
	flat          bool
	inherit       bool
	interpolate   bool
)

var rootCmd = &cobra.Command{
	Use:   "configfile",
	Short: "Read, merge and rewrite hierarchical INI-style configuration files",
	Long: `configfile merges configuration files of several formats into one tree of
sections and writes it back into INI-style files, keeping their comments and
line order.

Sources given with -f are imported in order, each one upgrading the previous
ones. The format is chosen from the file extension: .yaml/.yml, .json/.jsonc,
.toml and .env; anything else is read as an INI-style file.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logging.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		logging.Init(logging.Config{Level: level, Console: !logJSON})
		return nil
	},
}

func init() {
	// Global flags available to all commands
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "WARN", "Log level (DEBUG|INFO|WARN|ERROR|OFF)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Write logs as JSON lines")
	rootCmd.PersistentFlags().StringVar(&configKey, "key", "", "Hex encoded key to decrypt encrypted source files")
	rootCmd.PersistentFlags().StringSliceVarP(&sourceFiles, "file", "f", nil, "Source file, may be repeated")
	rootCmd.PersistentFlags().BoolVar(&caseSensitive, "case-sensitive", false, "Compare section and option names with case")
	rootCmd.PersistentFlags().BoolVar(&flat, "flat", false, "Do not treat dotted section names as subsections")
	rootCmd.PersistentFlags().BoolVar(&inherit, "inherit", false, "Look up missing options in parent sections")
	rootCmd.PersistentFlags().BoolVar(&interpolate, "interpolate", false, "Substitute ${section$:option$} references")

	// Version template
	rootCmd.SetVersionTemplate(fmt.Sprintf("configfile %s (%s)\n", Version, BuildTime))

	// Add subcommands
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(encryptCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
