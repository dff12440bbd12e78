package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wjaoss/configfile/internal/logging"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reload the sources whenever they change",
	Long: `Watch the -f sources and print the checksum of the merged configuration
each time a change is loaded, until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	c, err := openStore()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	changed, err := c.Watch(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, c.Checksum())

	for range changed {
		ok, err := c.Reload()
		if err != nil {
			logging.Error().Err(err).Msg("reload configuration")
			continue
		}
		if ok {
			fmt.Fprintln(out, c.Checksum())
		}
	}

	return nil
}
