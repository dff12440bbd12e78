package commands

import (
	"strings"

	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:   "set TARGET SECTION.OPTION VALUE",
	Short: "Set an option in a configuration file",
	Long: `Set an option in an INI-style file, creating the file and the section
when needed. The rest of the file is left as it is.`,
	Args: cobra.ExactArgs(3),
	RunE: runSet,
}

func runSet(cmd *cobra.Command, args []string) error {
	target, value := args[0], args[2]

	c, err := openTarget(target)
	if err != nil {
		return err
	}

	path, name := splitOption(args[1])
	s := c.Section
	if len(path) > 0 {
		if s, err = c.MakeSubsection(strings.Join(path, ".")); err != nil {
			return err
		}
	}

	if err := s.Set(name, value); err != nil {
		return err
	}

	return c.ExportUpgrade(target)
}
