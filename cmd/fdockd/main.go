package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"syscall"

	"folderdock/internal/config"
	"folderdock/internal/core/icon"
	"folderdock/internal/core/state"
	"folderdock/internal/core/watch"
	"folderdock/internal/fdockd"
	"folderdock/internal/launch"
	"folderdock/internal/metrics"
	"folderdock/internal/model"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	folder := flag.String("folder", "", "folder name under the data root (required)")
	listen := flag.String("listen", cfg.ControlAddr, "listen address (tcp)")
	dataDir := flag.String("data-dir", cfg.DataDir, "data root holding the launcher folders")
	queueSize := flag.Int("queue-size", cfg.QueueSize, "watch event channel capacity")
	overflow := flag.String("overflow", cfg.Overflow, "policy when the event channel is full: block, drop-oldest or drop-newest")
	metricsAddr := flag.String("metrics", cfg.MetricsAddr, "prometheus listen address, empty disables metrics")
	flag.Parse()

	if *folder == "" {
		_, _ = fmt.Fprintln(os.Stderr, "missing -folder")
		flag.Usage()
		os.Exit(2)
	}
	policy, err := watch.ParseOverflow(*overflow)
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	dir, err := launch.FolderPath(*dataDir, *folder)
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	w, err := watch.New(dir, watch.Options{QueueSize: *queueSize, Overflow: policy})
	if err != nil {
		log.Printf("watch: %v (live updates disabled)", err)
		w = nil
	}

	h := fdockd.NewHandlers(*folder, dir, w.Counters().Snapshot)
	engine, err := state.New(dir, icon.New(), state.Options{
		OnUpdate: func(entries []model.Entry) { h.SetEntries(entries) },
	})
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx := context.Background()
	if w != nil {
		go func() {
			if err := w.Run(ctx); err != nil {
				log.Printf("watch: %v", err)
			}
		}()
	}
	go func() {
		engine.Scan()
		if w != nil {
			_ = engine.Run(ctx, w.Events())
		}
	}()

	if *metricsAddr != "" {
		_ = metrics.StartServer(*metricsAddr, metrics.NewCollector(w.Counters().Snapshot, h.EntryCount))
	}

	s := fdockd.NewServer(fdockd.Options{Listen: *listen}, h)
	if err := s.Run(); err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			_, _ = fmt.Fprintf(os.Stderr, "listen address in use: %s\nTry: -listen 127.0.0.1:7344\n", *listen)
		} else {
			_, _ = fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
