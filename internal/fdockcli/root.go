package fdockcli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"folderdock/internal/launch"
	"folderdock/internal/version"
)

func NewRootCommand() *cobra.Command {
	opts := newDefaultOptions()
	cmd := &cobra.Command{
		Use:   "fdock [folder] [file]",
		Short: "Folder-backed launcher",
		Long: `fdock turns a folder under the per-user data root into a small launcher.
Name a folder to open it; add a file path to move that file in first.
Without arguments it lists the folders that already exist.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if isTestMode(cmd) {
				return nil
			}

			opts := optionsFrom(cmd)
			if opts == nil {
				return fmt.Errorf("options missing")
			}

			if len(args) == 0 {
				return listFolders(cmd, opts)
			}
			movePath := ""
			if len(args) > 1 {
				movePath = args[1]
			}
			return runFolder(cmd, opts, args[0], movePath)
		},
	}
	cmd.SetVersionTemplate("{{.Version}}\n")
	cmd.Version = version.String()
	cmd.InitDefaultVersionFlag()
	if f := cmd.Flags().Lookup("version"); f != nil {
		f.Shorthand = "v"
	}

	withOptionsContext(cmd, opts)
	bindFlags(cmd, opts)

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if opts := optionsFrom(cmd); opts != nil {
			return opts.Prepare()
		}
		return nil
	}

	cmd.AddCommand(newStatusCommand())
	cmd.AddCommand(newCountersCommand())
	cmd.AddCommand(newOpenCommand())
	return cmd
}

func listFolders(cmd *cobra.Command, opts *Options) error {
	names, err := launch.Folders(opts.DataDir)
	if err != nil {
		return err
	}
	sort.Strings(names)
	for _, name := range names {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}
