package fdockd

import (
	"encoding/json"

	"folderdock/internal/model"
)

type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Result  any             `json:"result,omitempty"`
	Error   *ErrorObject    `json:"error,omitempty"`
}

type ErrorObject struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type FolderInfoResult struct {
	Name       string `json:"name"`
	Root       string `json:"root"`
	InstanceID string `json:"instance_id"`
	StartedAt  string `json:"started_at"`
	Entries    int    `json:"entries"`
}

// EntryInfo is the wire form of one state entry. Icon pixels stay on the
// daemon side; only the dimensions cross the socket.
type EntryInfo struct {
	Kind    string `json:"kind"`
	Path    string `json:"path,omitempty"`
	Message string `json:"message,omitempty"`
	IconW   uint   `json:"icon_w,omitempty"`
	IconH   uint   `json:"icon_h,omitempty"`
}

// EntryInfos converts state entries to their wire form, preserving order.
func EntryInfos(entries []model.Entry) []EntryInfo {
	out := make([]EntryInfo, 0, len(entries))
	for _, e := range entries {
		switch v := e.(type) {
		case model.Item:
			out = append(out, EntryInfo{
				Kind:  "item",
				Path:  v.Path,
				IconW: v.Icon.Width,
				IconH: v.Icon.Height,
			})
		case model.ReadError:
			out = append(out, EntryInfo{Kind: "error", Message: v.Message})
		}
	}
	return out
}

type EntryOpenParams struct {
	Path string `json:"path"`
}
