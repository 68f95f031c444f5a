package fdockcli

import (
	"strings"
	"testing"

	"folderdock/internal/core/icon"
	"folderdock/internal/core/watch"
	"folderdock/internal/fdockd"
	"folderdock/internal/model"
)

func TestRenderEntries(t *testing.T) {
	entries := []model.Entry{
		model.Item{Path: "/f/a.txt", Icon: icon.Bitmap{Width: 48, Height: 48, Pix: make([]byte, 48*48*4)}},
		model.ReadError{Message: "access denied"},
		model.Item{Path: "/f/b.exe", Icon: icon.Bitmap{Width: 32, Height: 32, Pix: make([]byte, 32*32*4)}},
	}

	got := RenderEntries(entries)
	want := "/f/a.txt [48x48]\n! access denied\n/f/b.exe [32x32]\n"
	if got != want {
		t.Fatalf("RenderEntries = %q, want %q", got, want)
	}
}

func TestRenderEntriesJSONLOneObjectPerLine(t *testing.T) {
	entries := []model.Entry{
		model.Item{Path: "/f/a.txt"},
		model.ReadError{Message: "boom"},
	}

	got := RenderEntriesJSONL(entries)
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("JSONL lines = %d, want 2: %q", len(lines), got)
	}
	if !strings.Contains(lines[0], `"kind":"item"`) || !strings.Contains(lines[1], `"kind":"error"`) {
		t.Fatalf("JSONL content = %q", got)
	}
}

func TestRenderState(t *testing.T) {
	info := fdockd.FolderInfoResult{Name: "apps", Root: "/data/folderdock/apps", InstanceID: "id-1", StartedAt: "2026-01-01T00:00:00Z", Entries: 1}
	entries := []fdockd.EntryInfo{{Kind: "item", Path: "/data/folderdock/apps/a.txt", IconW: 48, IconH: 48}}

	got := RenderState(info, entries)
	for _, want := range []string{"apps (/data/folderdock/apps)", "instance id-1", "/data/folderdock/apps/a.txt [48x48]"} {
		if !strings.Contains(got, want) {
			t.Fatalf("RenderState missing %q: %q", want, got)
		}
	}
}

func TestRenderCounters(t *testing.T) {
	got := RenderCounters(watch.CounterSnapshot{Published: 5, Created: 3, Removed: 1, Modified: 1, Stalls: 2, DroppedOldest: 4})
	for _, want := range []string{"published: 5", "created 3", "stalls: 2", "4 oldest"} {
		if !strings.Contains(got, want) {
			t.Fatalf("RenderCounters missing %q: %q", want, got)
		}
	}
}
