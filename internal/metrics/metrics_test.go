package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"

	"folderdock/internal/core/watch"
)

func TestCollectorScrape(t *testing.T) {
	snap := watch.CounterSnapshot{Published: 7, Created: 4, Removed: 2, Modified: 1, Stalls: 3}
	col := NewCollector(func() watch.CounterSnapshot { return snap }, func() int { return 5 })

	rec := httptest.NewRecorder()
	Handler(col).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	if rec.Code != 200 {
		t.Fatalf("scrape status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"folderdock_watch_events_published_total 7",
		"folderdock_watch_created_total 4",
		"folderdock_watch_removed_total 2",
		"folderdock_watch_modified_total 1",
		"folderdock_watch_publish_stalls_total 3",
		"folderdock_watch_dropped_oldest_total 0",
		"folderdock_entries 5",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("scrape output missing %q", want)
		}
	}
}

func TestCollectorWithoutEntrySource(t *testing.T) {
	col := NewCollector(func() watch.CounterSnapshot { return watch.CounterSnapshot{} }, nil)

	rec := httptest.NewRecorder()
	Handler(col).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	if strings.Contains(rec.Body.String(), "folderdock_entries") {
		t.Error("scrape output reports entries with no source attached")
	}
}
