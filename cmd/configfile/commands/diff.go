package commands

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"
)

var diffCmd = &cobra.Command{
	Use:   "diff TARGET",
	Short: "Show what export would change in a configuration file",
	Long: `Print, as a patch, the changes an export of the -f sources would make to
TARGET. TARGET is not modified.`,
	Args: cobra.ExactArgs(1),
	RunE: runDiff,
}

func init() {
	addExportFlags(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	target := args[0]

	s, mode, err := exportTarget()
	if err != nil {
		return err
	}

	before, err := readExisting(target)
	if err != nil {
		return err
	}

	after, err := s.Render(before, mode, !exportRelative)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), buildDiff(target, string(before), string(after)))
	return nil
}

// buildDiff returns a patch between before and after with file headers,
// empty when they are equal.
func buildDiff(path, before, after string) string {
	if before == after {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	patches := dmp.PatchMake(before, diffs)
	diffText := dmp.PatchToText(patches)
	if diffText == "" {
		return ""
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("--- %s\n", path))
	builder.WriteString(fmt.Sprintf("+++ %s\n", path))
	builder.WriteString(diffText)

	return builder.String()
}
