package commands

import (
	"github.com/spf13/cobra"

	"github.com/wjaoss/configfile"
)

var (
	exportMode     string
	exportSection  string
	exportRelative bool
)

var exportCmd = &cobra.Command{
	Use:   "export TARGET...",
	Short: "Write the merged sources into configuration files",
	Long: `Merge the -f sources and write them, or one of their sections, into every
TARGET. Lines already present in a target keep their order and comments.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExport,
}

func init() {
	addExportFlags(exportCmd)
}

func addExportFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&exportMode, "mode", "m", "upgrade", "Export mode (upgrade|update|add|reset)")
	cmd.Flags().StringVarP(&exportSection, "section", "s", "", "Dotted path of the section to export")
	cmd.Flags().BoolVar(&exportRelative, "relative", false, "Write section headers relative to the exported section")
}

// exportTarget returns the section to export and the export mode.
func exportTarget() (*configfile.Section, configfile.Mode, error) {
	mode, err := configfile.ParseMode(exportMode)
	if err != nil {
		return nil, 0, err
	}

	c, err := openStore()
	if err != nil {
		return nil, 0, err
	}

	s, err := c.Sub(splitSection(exportSection)...)
	if err != nil {
		return nil, 0, err
	}

	return s, mode, nil
}

func runExport(cmd *cobra.Command, args []string) error {
	s, mode, err := exportTarget()
	if err != nil {
		return err
	}

	return s.Export(mode, !exportRelative, args...)
}
