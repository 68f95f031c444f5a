package fdockcli

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"folderdock/internal/config"
	"folderdock/internal/core/watch"
)

type Options struct {
	DataDir     string
	ControlAddr string
	MetricsAddr string
	QueueSize   int
	Overflow    string
	LogFile     string
	Plain       bool
	Jsonl       bool

	loadErr error
}

func (o *Options) Prepare() error {
	if o.loadErr != nil {
		return o.loadErr
	}
	o.normalize()

	if o.QueueSize <= 0 {
		return fmt.Errorf("queue size must be > 0")
	}
	if _, err := watch.ParseOverflow(o.Overflow); err != nil {
		return err
	}
	if o.ControlAddr == "" {
		return fmt.Errorf("control address is required")
	}

	return nil
}

func (o *Options) normalize() {
	o.Overflow = strings.TrimSpace(o.Overflow)
	if o.Overflow == "" {
		o.Overflow = watch.Block.String()
	}
	o.ControlAddr = strings.TrimSpace(o.ControlAddr)
	o.DataDir = strings.TrimSpace(o.DataDir)
}

// overflowPolicy assumes Prepare validated the name.
func (o *Options) overflowPolicy() watch.Overflow {
	p, err := watch.ParseOverflow(o.Overflow)
	if err != nil {
		return watch.Block
	}
	return p
}

type optionsKey struct{}

func optionsFrom(cmd *cobra.Command) *Options {
	if cmd == nil {
		return nil
	}
	root := cmd.Root()
	if root == nil {
		root = cmd
	}
	v := root.Context().Value(optionsKey{})
	opts, _ := v.(*Options)
	return opts
}

type testModeKey struct{}

// isTestMode reports whether the command runs under ExecuteForTest, where
// flag parsing is exercised but nothing may touch the terminal or network.
func isTestMode(cmd *cobra.Command) bool {
	if cmd == nil {
		return false
	}
	root := cmd.Root()
	if root == nil {
		root = cmd
	}
	on, _ := root.Context().Value(testModeKey{}).(bool)
	return on
}

func bindFlags(cmd *cobra.Command, opts *Options) {
	cmd.PersistentFlags().StringVarP(&opts.DataDir, "data-dir", "D", opts.DataDir, "data root holding launcher folders (FDOCK_DATA_DIR)")
	cmd.PersistentFlags().StringVar(&opts.ControlAddr, "control", opts.ControlAddr, "control socket address (FDOCK_CONTROL_ADDR)")
	cmd.PersistentFlags().StringVar(&opts.MetricsAddr, "metrics", opts.MetricsAddr, "prometheus listen address, empty disables it (FDOCK_METRICS_ADDR)")
	cmd.PersistentFlags().IntVar(&opts.QueueSize, "queue-size", opts.QueueSize, "event channel capacity (FDOCK_QUEUE_SIZE)")
	cmd.PersistentFlags().StringVar(&opts.Overflow, "overflow", opts.Overflow, "full channel policy: block|drop-oldest|drop-newest (FDOCK_OVERFLOW)")
	cmd.PersistentFlags().StringVar(&opts.LogFile, "log-file", opts.LogFile, "append logs to this file instead of discarding them while the UI runs")

	cmd.PersistentFlags().BoolVarP(&opts.Plain, "plain", "p", opts.Plain, "print the folder listing and exit instead of opening the UI")
	cmd.PersistentFlags().BoolVar(&opts.Jsonl, "jsonl", opts.Jsonl, "output as JSONL")
}

func ExecuteForTest(cmd *cobra.Command) (string, Options, error) {
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetContext(context.WithValue(cmd.Context(), testModeKey{}, true))

	err := cmd.Execute()

	opts := optionsFrom(cmd)
	if opts == nil {
		return out.String(), Options{}, err
	}
	opts.normalize()

	return out.String(), *opts, err
}

func newDefaultOptions() *Options {
	opts := &Options{
		ControlAddr: config.DefaultControlAddr,
		QueueSize:   watch.DefaultQueueSize,
		Overflow:    watch.Block.String(),
	}

	cfg, err := config.Load()
	if err != nil {
		opts.loadErr = err
		return opts
	}
	opts.DataDir = cfg.DataDir
	opts.ControlAddr = cfg.ControlAddr
	opts.MetricsAddr = cfg.MetricsAddr
	opts.QueueSize = cfg.QueueSize
	opts.Overflow = cfg.Overflow
	return opts
}

func withOptionsContext(cmd *cobra.Command, opts *Options) {
	cmd.SetContext(context.WithValue(context.Background(), optionsKey{}, opts))
}
