package fdockcli

import (
	"fmt"

	"github.com/spf13/cobra"

	"folderdock/internal/fdockd"
)

func newOpenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "open <path>",
		Short: "Ask the running launcher to open one of its entries",
		Args:  cobra.ExactArgs(1),
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

			return c.EntryOpen(args[0])
		},
	}
}
