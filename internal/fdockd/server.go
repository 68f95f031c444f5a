// Package fdockd is the control surface of a running launcher: a JSON-RPC
// 2.0 server speaking JSON Lines over a loopback TCP socket.
package fdockd

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"

	"folderdock/internal/version"
)

type Options struct {
	Listen string
}

type Server struct {
	opts Options
	h    *Handlers

	mu        sync.Mutex
	listener  net.Listener
	closeOnce sync.Once
	closed    chan struct{}
}

func NewServer(opts Options, h *Handlers) *Server {
	if opts.Listen == "" {
		opts.Listen = "127.0.0.1:7343"
	}
	return &Server{
		opts:   opts,
		h:      h,
		closed: make(chan struct{}),
	}
}

func (s *Server) Addr() string {
	if s == nil {
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *Server) Run() error {
	if s == nil {
		return fmt.Errorf("server is nil")
	}

	ln, err := net.Listen("tcp", s.opts.Listen)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.isClosed() {
		s.mu.Unlock()
		return ln.Close()
	}
	s.listener = ln
	s.mu.Unlock()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if s.isClosed() {
				return nil
			}
			return err
		}
		go s.handleConn(conn)
	}
}

func (s *Server) Close() error {
	if s == nil {
		return nil
	}

	s.closeOnce.Do(func() { close(s.closed) })

	s.mu.Lock()
	ln := s.listener
	s.listener = nil
	s.mu.Unlock()

	if ln == nil {
		return nil
	}
	return ln.Close()
}

func (s *Server) isClosed() bool {
	select {
	case <-s.closed:
		return true
	default:
		return false
	}
}

func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	r := bufio.NewReader(conn)
	w := bufio.NewWriter(conn)

	for {
		line, err := ReadOneLine(r)
		if err != nil {
			// EOF or a broken peer; either way the conversation is over.
			return
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			s.reply(w, Response{
				JSONRPC: "2.0",
				ID:      json.RawMessage("null"),
				Error:   &ErrorObject{Code: -32700, Message: "parse error"},
			})
			continue
		}

		resp := s.dispatch(req)
		if len(req.ID) == 0 {
			// Notification: dispatched, but no response goes back.
			continue
		}
		s.reply(w, resp)
	}
}

func (s *Server) reply(w *bufio.Writer, resp Response) {
	_ = WriteOneLine(w, resp)
	_ = w.Flush()
}

// rpcFailure carries a protocol-level error code. Handler errors without one
// surface as the generic server error -32000.
type rpcFailure struct {
	code int
	msg  string
}

func (e *rpcFailure) Error() string { return e.msg }

func invalidParams(msg string) error { return &rpcFailure{code: -32602, msg: msg} }

func toErrorObject(err error) *ErrorObject {
	var f *rpcFailure
	if errors.As(err, &f) {
		return &ErrorObject{Code: f.code, Message: f.msg}
	}
	return &ErrorObject{Code: -32000, Message: err.Error()}
}

func (s *Server) dispatch(req Request) Response {
	resp := Response{JSONRPC: "2.0", ID: req.ID}

	if req.JSONRPC != "" && req.JSONRPC != "2.0" {
		resp.Error = &ErrorObject{Code: -32600, Message: "invalid jsonrpc version"}
		return resp
	}

	result, err := s.handle(req)
	if err != nil {
		resp.Error = toErrorObject(err)
		return resp
	}
	resp.Result = result
	return resp
}

func (s *Server) handle(req Request) (any, error) {
	switch req.Method {
	case "ping":
		return "pong", nil
	case "version":
		return version.String(), nil
	case "folder.info":
		info, err := s.h.FolderInfo()
		if err != nil {
			return nil, err
		}
		return info, nil
	case "state.list":
		entries, err := s.h.StateList()
		if err != nil {
			return nil, err
		}
		return entries, nil
	case "counters.get":
		snap, err := s.h.CountersGet()
		if err != nil {
			return nil, err
		}
		return snap, nil
	case "entry.open":
		var p EntryOpenParams
		if len(req.Params) > 0 {
			if err := json.Unmarshal(req.Params, &p); err != nil {
				return nil, invalidParams("invalid params")
			}
		}
		if strings.TrimSpace(p.Path) == "" {
			return nil, invalidParams("path is required")
		}
		ok, err := s.h.EntryOpen(p)
		if err != nil {
			return nil, err
		}
		return ok, nil
	default:
		return nil, &rpcFailure{code: -32601, msg: "method not found"}
	}
}
