// Package lsp provides a Language Server Protocol implementation for .dod files.
package lsp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dodlang/dod/pkg/lsp/log"
)

// ErrMalformedHeader is returned by Run when a message header cannot be framed.
var ErrMalformedHeader = errors.New("malformed message header")

// Server represents the dod LSP server.
type Server struct {
	// Input/output for JSON-RPC communication
	reader *bufio.Reader
	writer io.Writer

	log    *log.Logger
	config Config
	router *Router

	// doc is the last document opened or changed.
	doc *Document
}

// NewServer creates a new LSP server that communicates over the given reader/writer.
// A nil logger discards log output.
func NewServer(reader io.Reader, writer io.Writer, logger *log.Logger, cfg Config) *Server {
	s := &Server{
		reader: bufio.NewReader(reader),
		writer: writer,
		log:    logger,
		config: cfg,
	}
	s.router = NewRouter(s)
	return s
}

// Document returns the current document, or nil if none has been opened.
func (s *Server) Document() *Document {
	return s.doc
}

// Run starts the LSP server main loop. It returns nil when the input is
// exhausted and ErrMalformedHeader when a frame cannot be read.
func (s *Server) Run(ctx context.Context) error {
	s.log.Server("LSP server starting")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		msg, err := s.readMessage()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.log.Server("Connection closed")
				return nil
			}
			s.log.Server("Error reading message: %v", err)
			return fmt.Errorf("reading message: %w", err)
		}

		s.log.Server("Received: %s", msg)

		if err := s.handleMessage(msg); err != nil {
			s.log.Server("Error writing message: %v", err)
			return fmt.Errorf("writing message: %w", err)
		}
	}
}

// readMessage reads a JSON-RPC message from the input.
// Messages are formatted as HTTP-like headers followed by content:
// Content-Length: <length>\r\n
// \r\n
// <content>
func (s *Server) readMessage() ([]byte, error) {
	contentLength := -1
	sawHeader := false
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) && (sawHeader || strings.TrimSpace(line) != "") {
				return nil, fmt.Errorf("%w: unexpected end of input", ErrMalformedHeader)
			}
			return nil, err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			if !sawHeader {
				// Stray blank lines between frames.
				continue
			}
			break
		}
		sawHeader = true

		name, value, ok := strings.Cut(line, ": ")
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMalformedHeader, line)
		}
		if strings.EqualFold(name, "Content-Length") {
			n, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil || n < 0 {
				return nil, fmt.Errorf("%w: invalid Content-Length %q", ErrMalformedHeader, value)
			}
			contentLength = n
		}
	}

	if contentLength < 0 {
		return nil, fmt.Errorf("%w: missing Content-Length", ErrMalformedHeader)
	}

	content := make([]byte, contentLength)
	if _, err := io.ReadFull(s.reader, content); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("reading content: %w", err)
	}

	return bytes.TrimSpace(content), nil
}

// writeMessage writes a JSON-RPC message to the output.
func (s *Server) writeMessage(msg []byte) error {
	header := fmt.Sprintf("Content-Length: %d\r\n\r\n", len(msg))
	if _, err := io.WriteString(s.writer, header); err != nil {
		return err
	}
	if _, err := s.writer.Write(msg); err != nil {
		return err
	}

	s.log.Server("Sent: %s", msg)
	return nil
}

// sendNotification sends a notification (no response expected).
func (s *Server) sendNotification(method string, params any) error {
	data, err := json.Marshal(Notification{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return err
	}
	return s.writeMessage(data)
}

// Request represents a JSON-RPC request or notification.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"` // number or string, echoed verbatim
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// IsNotification reports whether the client expects no response.
func (r Request) IsNotification() bool {
	return len(r.ID) == 0 || string(r.ID) == "null"
}

// Response represents a JSON-RPC response.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result"`
}

// ErrorResponse represents a failed JSON-RPC response.
type ErrorResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Error   *Error          `json:"error"`
}

// Notification represents an outbound JSON-RPC notification.
type Notification struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
}

// Error represents a JSON-RPC error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("jsonrpc error %d: %s", e.Code, e.Message)
}

// CodeInvalidParams is the JSON-RPC error code for unreadable params.
const CodeInvalidParams = -32602

// decodeFailure is the result of a message body that is not a JSON-RPC envelope.
type decodeFailure struct {
	raw string
	err error
}

func (f *decodeFailure) Error() string {
	return fmt.Sprintf("decoding message %q: %v", f.raw, f.err)
}

func (f *decodeFailure) Unwrap() error {
	return f.err
}

// decodeRequest parses a message body into a Request.
func decodeRequest(msg []byte) (Request, error) {
	var req Request
	if err := json.Unmarshal(msg, &req); err != nil {
		return Request{}, &decodeFailure{raw: string(msg), err: err}
	}
	return req, nil
}

// handleMessage processes a single JSON-RPC message. Only failures to write
// to the client are returned.
func (s *Server) handleMessage(msg []byte) error {
	req, err := decodeRequest(msg)
	if err != nil {
		var df *decodeFailure
		if errors.As(err, &df) {
			s.log.Server("Dropping undecodable message: %v", df)
			return nil
		}
		return err
	}

	s.log.Server("Handling method: %s", req.Method)

	result, handled, err := s.router.Route(req)
	if !handled {
		s.log.Server("Ignoring method: %s", req.Method)
		return nil
	}
	var rpcErr *Error
	if err != nil && !errors.As(err, &rpcErr) {
		return err
	}

	// Notifications don't get responses
	if req.IsNotification() {
		if rpcErr != nil {
			s.log.Server("Error handling %s: %s", req.Method, rpcErr.Message)
		}
		return nil
	}

	var resp any = Response{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  result,
	}
	if rpcErr != nil {
		resp = ErrorResponse{JSONRPC: "2.0", ID: req.ID, Error: rpcErr}
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return s.writeMessage(data)
}
