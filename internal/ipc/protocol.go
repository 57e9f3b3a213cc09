package ipc

import (
	"encoding/json"
	"fmt"

	"github.com/1broseidon/tilecore/internal/engine"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandExecute   CommandType = "EXECUTE"
	CommandGetStatus CommandType = "GET_STATUS"
	CommandGetLayout CommandType = "GET_LAYOUT"
	CommandReload    CommandType = "RELOAD"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
	// Code is engine.ErrorCode of the failure so clients can rebuild it.
	Code string `json:"code,omitempty"`
}

// DaemonError is an error reported by the daemon. It unwraps to the engine
// sentinel named by Code, if any.
type DaemonError struct {
	Message string
	Code    string
}

func (e *DaemonError) Error() string {
	return fmt.Sprintf("daemon error: %s", e.Message)
}

func (e *DaemonError) Unwrap() error {
	return engine.CodeError(e.Code)
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// NewEngineErrorResponse creates an error response classified by ErrorCode.
func NewEngineErrorResponse(err error) *Response {
	resp := NewErrorResponse(err.Error())
	resp.Code = engine.ErrorCode(err)
	return resp
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
