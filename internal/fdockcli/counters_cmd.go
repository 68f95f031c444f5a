package fdockcli

import (
	"fmt"

	"github.com/spf13/cobra"

	"folderdock/internal/fdockd"
)

func newCountersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "counters",
		Short: "Show the running launcher's watch counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			if isTestMode(cmd) {
				return nil
			}

			opts := optionsFrom(cmd)
			if opts == nil {
				return fmt.Errorf("options missing")
			}

			c, err := fdockd.Dial(opts.ControlAddr)
			if err != nil {
				return err
			}
			defer c.Close()

			snap, err := c.CountersGet()
			if err != nil {
				return err
			}

			if opts.Jsonl {
				_, _ = fmt.Fprint(cmd.OutOrStdout(), RenderCountersJSONL(snap))
				return nil
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), RenderCounters(snap))
			return nil
		},
	}
}
