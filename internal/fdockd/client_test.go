package fdockd

import (
	"testing"

	"folderdock/internal/core/watch"
	"folderdock/internal/model"
)

func TestClient_MinLoop(t *testing.T) {
	counters := &watch.Counters{}
	h := NewHandlers("apps", "/data/folderdock/apps", counters.Snapshot)
	h.SetEntries([]model.Entry{model.Item{Path: "/data/folderdock/apps/a.txt"}})
	h.opener = func(string) error { return nil }

	c := dialTest(t, startTestServer(t, h))

	if err := c.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
	if v, err := c.Version(); err != nil || v == "" {
		t.Fatalf("version=%q err=%v", v, err)
	}

	info, err := c.FolderInfo()
	if err != nil || info.Name != "apps" {
		t.Fatalf("folder.info=%+v err=%v", info, err)
	}

	entries, err := c.StateList()
	if err != nil || len(entries) != 1 {
		t.Fatalf("state.list=%+v err=%v", entries, err)
	}

	if _, err := c.CountersGet(); err != nil {
		t.Fatalf("counters.get: %v", err)
	}

	if err := c.EntryOpen("/data/folderdock/apps/a.txt"); err != nil {
		t.Fatalf("entry.open: %v", err)
	}
}
