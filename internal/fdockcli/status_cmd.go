package fdockcli

import (
	"fmt"

	"github.com/spf13/cobra"

	"folderdock/internal/fdockd"
)

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the running launcher's folder and state",
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

			info, err := c.FolderInfo()
			if err != nil {
				return err
			}
			entries, err := c.StateList()
			if err != nil {
				return err
			}

			if opts.Jsonl {
				_, _ = fmt.Fprint(cmd.OutOrStdout(), RenderStateJSONL(info, entries))
				return nil
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), RenderState(info, entries))
			return nil
		},
	}
}
