package fdockcli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"folderdock/internal/core/icon"
	"folderdock/internal/core/state"
	"folderdock/internal/core/watch"
	"folderdock/internal/fdockd"
	"folderdock/internal/launch"
	"folderdock/internal/metrics"
	"folderdock/internal/model"
	"folderdock/internal/tui"
)

// runFolder wires one launcher session: folder setup, optional move-in,
// watcher, state engine, control server, and finally the UI. The engine
// goroutine is the only state writer; everything else observes snapshots.
func runFolder(cmd *cobra.Command, opts *Options, folderName, movePath string) error {
	dir, err := launch.FolderPath(opts.DataDir, folderName)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	var moveErr error
	if movePath != "" {
		if _, err := launch.MoveIntoFolder(movePath, dir); err != nil {
			moveErr = err
		}
	}

	if opts.Plain {
		return runPlain(cmd, opts, dir, moveErr)
	}

	w, err := watch.New(dir, watch.Options{
		QueueSize: opts.QueueSize,
		Overflow:  opts.overflowPolicy(),
	})
	if err != nil {
		// The session still opens; it just never sees live changes.
		log.Printf("watch: %v (live updates disabled)", err)
		w = nil
	} else {
		defer w.Close()
	}

	h := fdockd.NewHandlers(folderName, dir, w.Counters().Snapshot)
	bridge := tui.NewBridge()

	engine, err := state.New(dir, icon.New(), state.Options{
		OnUpdate: func(entries []model.Entry) {
			h.SetEntries(entries)
			bridge.Publish(entries)
		},
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if w != nil {
		go func() {
			if err := w.Run(ctx); err != nil {
				log.Printf("watch: %v", err)
			}
		}()
	}
	go func() {
		if moveErr != nil {
			engine.Fail(moveErr.Error())
		} else {
			engine.Scan()
		}
		if w != nil {
			_ = engine.Run(ctx, w.Events())
		}
	}()

	srv := fdockd.NewServer(fdockd.Options{Listen: opts.ControlAddr}, h)
	go func() {
		if err := srv.Run(); err != nil {
			log.Printf("control: %v", err)
		}
	}()
	defer srv.Close()

	if opts.MetricsAddr != "" {
		col := metrics.NewCollector(w.Counters().Snapshot, h.EntryCount)
		msrv := metrics.StartServer(opts.MetricsAddr, col)
		defer msrv.Close()
	}

	if opts.LogFile != "" {
		f, err := tea.LogToFile(opts.LogFile, "fdock")
		if err != nil {
			return err
		}
		defer f.Close()
	} else {
		// Anything logged mid-session would smear the alternate screen.
		log.SetOutput(io.Discard)
	}

	p := tea.NewProgram(
		tui.NewModel(folderName, dir, bridge, launch.Open),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	return nil
}

// runPlain scans once and prints the listing, no watcher and no UI.
func runPlain(cmd *cobra.Command, opts *Options, dir string, moveErr error) error {
	engine, err := state.New(dir, icon.New(), state.Options{})
	if err != nil {
		return err
	}
	if moveErr != nil {
		engine.Fail(moveErr.Error())
	} else {
		engine.Scan()
	}

	entries := engine.Snapshot()
	if opts.Jsonl {
		_, _ = fmt.Fprint(cmd.OutOrStdout(), RenderEntriesJSONL(entries))
		return nil
	}
	_, _ = fmt.Fprint(cmd.OutOrStdout(), RenderEntries(entries))
	return nil
}
