package fdockcli

import (
	"testing"

	"folderdock/internal/config"
	"folderdock/internal/core/watch"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"FDOCK_DATA_DIR", "FDOCK_CONTROL_ADDR", "FDOCK_METRICS_ADDR", "FDOCK_QUEUE_SIZE", "FDOCK_OVERFLOW"} {
		t.Setenv(key, "")
	}
}

func TestParseDefaults(t *testing.T) {
	clearEnv(t)

	cmd := NewRootCommand()
	cmd.SetArgs([]string{"status"})
	_, opts, err := ExecuteForTest(cmd)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if opts.ControlAddr != config.DefaultControlAddr {
		t.Fatalf("ControlAddr=%q", opts.ControlAddr)
	}
	if opts.QueueSize != watch.DefaultQueueSize {
		t.Fatalf("QueueSize=%d", opts.QueueSize)
	}
	if opts.Overflow != "block" {
		t.Fatalf("Overflow=%q", opts.Overflow)
	}
	if opts.Plain || opts.Jsonl {
		t.Fatalf("output flags set by default: %+v", opts)
	}
}

func TestParseOverrides(t *testing.T) {
	clearEnv(t)

	cmd := NewRootCommand()
	cmd.SetArgs([]string{"status", "--control", "127.0.0.1:9000", "--queue-size", "64", "--overflow", "drop-newest", "--jsonl"})
	_, opts, err := ExecuteForTest(cmd)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if opts.ControlAddr != "127.0.0.1:9000" {
		t.Fatalf("ControlAddr=%q", opts.ControlAddr)
	}
	if opts.QueueSize != 64 {
		t.Fatalf("QueueSize=%d", opts.QueueSize)
	}
	if opts.overflowPolicy() != watch.DropNewest {
		t.Fatalf("Overflow=%q", opts.Overflow)
	}
	if !opts.Jsonl {
		t.Fatal("Jsonl not set")
	}
}

func TestEnvFeedsDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("FDOCK_CONTROL_ADDR", "127.0.0.1:7999")
	t.Setenv("FDOCK_OVERFLOW", "drop-oldest")

	cmd := NewRootCommand()
	cmd.SetArgs([]string{"counters"})
	_, opts, err := ExecuteForTest(cmd)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if opts.ControlAddr != "127.0.0.1:7999" {
		t.Fatalf("ControlAddr=%q", opts.ControlAddr)
	}
	if opts.Overflow != "drop-oldest" {
		t.Fatalf("Overflow=%q", opts.Overflow)
	}
}

func TestOverflowInvalidIsError(t *testing.T) {
	clearEnv(t)

	cmd := NewRootCommand()
	cmd.SetArgs([]string{"status", "--overflow", "wat"})
	if _, _, err := ExecuteForTest(cmd); err == nil {
		t.Fatal("expected error")
	}
}

func TestQueueSizeInvalidIsError(t *testing.T) {
	clearEnv(t)

	cmd := NewRootCommand()
	cmd.SetArgs([]string{"status", "--queue-size", "0"})
	if _, _, err := ExecuteForTest(cmd); err == nil {
		t.Fatal("expected error")
	}
}

func TestBadEnvSurfacesOnRun(t *testing.T) {
	clearEnv(t)
	t.Setenv("FDOCK_QUEUE_SIZE", "lots")

	cmd := NewRootCommand()
	cmd.SetArgs([]string{"status"})
	if _, _, err := ExecuteForTest(cmd); err == nil {
		t.Fatal("expected error from invalid environment")
	}
}
