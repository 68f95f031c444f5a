package fdockd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"strconv"
	"sync/atomic"
	"time"

	"folderdock/internal/core/watch"
)

type RPCError struct {
	Code    int
	Message string
}

func (e *RPCError) Error() string { return fmt.Sprintf("rpc error (%d): %s", e.Code, e.Message) }

const dialTimeout = 2 * time.Second

// Client is a blocking control-socket client. One request is in flight at a
// time; methods are not safe for concurrent use.
type Client struct {
	conn net.Conn
	r    *bufio.Reader
	w    *bufio.Writer
	seq  atomic.Int64
}

func Dial(addr string) (*Client, error) {
	conn, err := net.DialTimeout("tcp", addr, dialTimeout)
	if err != nil {
		return nil, err
	}
	return &Client{
		conn: conn,
		r:    bufio.NewReader(conn),
		w:    bufio.NewWriter(conn),
	}, nil
}

func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

func (c *Client) call(method string, params any, out any) error {
	if c == nil || c.conn == nil {
		return fmt.Errorf("client is not connected")
	}

	req := Request{
		JSONRPC: "2.0",
		ID:      json.RawMessage(strconv.FormatInt(c.seq.Add(1), 10)),
		Method:  method,
	}
	if params != nil {
		b, err := json.Marshal(params)
		if err != nil {
			return err
		}
		req.Params = b
	}
	if err := WriteOneLine(c.w, req); err != nil {
		return err
	}
	if err := c.w.Flush(); err != nil {
		return err
	}

	line, err := ReadOneLine(c.r)
	if err != nil {
		return err
	}
	var resp struct {
		Result json.RawMessage `json:"result"`
		Error  *ErrorObject    `json:"error"`
	}
	if err := json.Unmarshal(line, &resp); err != nil {
		return err
	}
	if resp.Error != nil {
		return &RPCError{Code: resp.Error.Code, Message: resp.Error.Message}
	}
	if out == nil || len(resp.Result) == 0 {
		return nil
	}
	return json.Unmarshal(resp.Result, out)
}

func (c *Client) Ping() error {
	var out string
	if err := c.call("ping", nil, &out); err != nil {
		return err
	}
	if out != "pong" {
		return fmt.Errorf("unexpected ping result: %q", out)
	}
	return nil
}

func (c *Client) Version() (string, error) {
	var out string
	if err := c.call("version", nil, &out); err != nil {
		return "", err
	}
	return out, nil
}

func (c *Client) FolderInfo() (FolderInfoResult, error) {
	var out FolderInfoResult
	if err := c.call("folder.info", nil, &out); err != nil {
		return FolderInfoResult{}, err
	}
	return out, nil
}

func (c *Client) StateList() ([]EntryInfo, error) {
	var out []EntryInfo
	if err := c.call("state.list", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CountersGet() (watch.CounterSnapshot, error) {
	var out watch.CounterSnapshot
	if err := c.call("counters.get", nil, &out); err != nil {
		return watch.CounterSnapshot{}, err
	}
	return out, nil
}

func (c *Client) EntryOpen(path string) error {
	var out bool
	if err := c.call("entry.open", EntryOpenParams{Path: path}, &out); err != nil {
		return err
	}
	if !out {
		return fmt.Errorf("entry.open returned %v", out)
	}
	return nil
}
