package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wjaoss/configfile"
)

var (
	dumpFormat  string
	dumpSection string
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the merged sources",
	Args:  cobra.NoArgs,
	RunE:  runDump,
}

func init() {
	dumpCmd.Flags().StringVarP(&dumpFormat, "format", "o", "ini", "Output format (ini|json|yaml)")
	dumpCmd.Flags().StringVarP(&dumpSection, "section", "s", "", "Dotted path of the section to print")
}

func runDump(cmd *cobra.Command, args []string) error {
	c, err := openStore()
	if err != nil {
		return err
	}

	s, err := c.Sub(splitSection(dumpSection)...)
	if err != nil {
		return err
	}

	var out []byte
	switch dumpFormat {
	case "ini":
		out, err = s.Render(nil, configfile.ModeUpgrade, false)
	case "json":
		out, err = configfile.JSONEncoder.Encode(s.Tree(false))
	case "yaml":
		out, err = configfile.YAMLEncoder.Encode(s.Tree(false))
	default:
		err = fmt.Errorf("unknown format: %s", dumpFormat)
	}
	if err != nil {
		return err
	}

	_, err = cmd.OutOrStdout().Write(out)
	return err
}
