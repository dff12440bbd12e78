package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wjaoss/configfile"
)

var getFallback string

var getCmd = &cobra.Command{
	Use:   "get SECTION.OPTION",
	Short: "Print the value of an option",
	Long: `Print the value of an option of the merged sources. The last element of
the dotted path is the option name, the others the section path.`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func init() {
	getCmd.Flags().StringVar(&getFallback, "default", "", "Value printed when the option is missing")
}

func runGet(cmd *cobra.Command, args []string) error {
	c, err := openStore()
	if err != nil {
		return err
	}

	path, name := splitOption(args[0])
	s, err := c.Sub(path...)
	if err != nil {
		return err
	}

	var opts []configfile.GetOption
	if cmd.Flags().Changed("default") {
		opts = append(opts, configfile.Fallback(getFallback))
	}

	v, err := s.Get(name, opts...)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), v)
	return nil
}
