package fdockcli

import (
	"encoding/json"
	"fmt"
	"strings"

	"folderdock/internal/core/watch"
	"folderdock/internal/fdockd"
	"folderdock/internal/model"
)

func RenderEntries(entries []model.Entry) string {
	return renderInfos(fdockd.EntryInfos(entries))
}

func RenderEntriesJSONL(entries []model.Entry) string {
	var b strings.Builder
	enc := json.NewEncoder(&b)
	for _, info := range fdockd.EntryInfos(entries) {
		_ = enc.Encode(info)
	}
	return b.String()
}

func RenderState(info fdockd.FolderInfoResult, entries []fdockd.EntryInfo) string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "%s (%s)\n", info.Name, info.Root)
	_, _ = fmt.Fprintf(&b, "instance %s, up since %s\n", info.InstanceID, info.StartedAt)
	b.WriteString(renderInfos(entries))
	return b.String()
}

func RenderStateJSONL(info fdockd.FolderInfoResult, entries []fdockd.EntryInfo) string {
	var b strings.Builder
	enc := json.NewEncoder(&b)
	_ = enc.Encode(info)
	for _, e := range entries {
		_ = enc.Encode(e)
	}
	return b.String()
}

func RenderCounters(snap watch.CounterSnapshot) string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "published: %d (created %d, removed %d, modified %d)\n",
		snap.Published, snap.Created, snap.Removed, snap.Modified)
	_, _ = fmt.Fprintf(&b, "stalls: %d\n", snap.Stalls)
	_, _ = fmt.Fprintf(&b, "dropped: %d oldest, %d newest\n", snap.DroppedOldest, snap.DroppedNewest)
	return b.String()
}

func RenderCountersJSONL(snap watch.CounterSnapshot) string {
	var b strings.Builder
	_ = json.NewEncoder(&b).Encode(snap)
	return b.String()
}

func renderInfos(entries []fdockd.EntryInfo) string {
	var b strings.Builder
	for _, e := range entries {
		switch e.Kind {
		case "item":
			_, _ = fmt.Fprintf(&b, "%s [%dx%d]\n", e.Path, e.IconW, e.IconH)
		case "error":
			_, _ = fmt.Fprintf(&b, "! %s\n", e.Message)
		}
	}
	return b.String()
}
