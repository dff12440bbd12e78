package commands

import (
	"github.com/spf13/cobra"

	"github.com/wjaoss/configfile"
)

var mergeMode string

var mergeCmd = &cobra.Command{
	Use:   "merge TARGET",
	Short: "Merge the sources into a configuration file",
	Long: `Import the -f sources into the INI-style TARGET with the given mode and
write the result back into TARGET, keeping its comments and line order.

  upgrade  overwrite existing options and add missing ones
  update   only overwrite existing options
  add      only add missing options
  reset    replace the content of TARGET with the sources`,
	Args: cobra.ExactArgs(1),
	RunE: runMerge,
}

func init() {
	mergeCmd.Flags().StringVarP(&mergeMode, "mode", "m", "upgrade", "Merge mode (upgrade|update|add|reset)")
}

func runMerge(cmd *cobra.Command, args []string) error {
	target := args[0]

	mode, err := configfile.ParseMode(mergeMode)
	if err != nil {
		return err
	}

	c, err := openTarget(target)
	if err != nil {
		return err
	}

	srcs, err := sources(sourceFiles)
	if err != nil {
		return err
	}

	if err := c.Import(mode, interpolate, srcs...); err != nil {
		return err
	}

	return c.Export(mode, true, target)
}
