package folio

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a tool failure.
type ErrorCode string

const (
	// InvalidInput is a bad tool argument, like an unsupported range.
	InvalidInput ErrorCode = "invalid_input"
	// UnknownTool is a routed tool identifier missing from the registry.
	UnknownTool ErrorCode = "unknown_tool"
	// ToolExecutionFailed is any other failure during a tool call.
	ToolExecutionFailed ErrorCode = "tool_execution_failed"
	// NotFound is a requested account that does not exist.
	NotFound ErrorCode = "not_found"
)

// ToolError is a coded tool failure. It implements error.
type ToolError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func (e *ToolError) Error() string { return e.Message }

// Errorf returns a ToolError with a formatted message.
func Errorf(code ErrorCode, format string, args ...any) *ToolError {
	return &ToolError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// AsToolError converts err into a ToolError, keeping the code of any
// ToolError in its chain and defaulting to ToolExecutionFailed.
func AsToolError(err error) *ToolError {
	if err == nil {
		return nil
	}
	var te *ToolError
	if errors.As(err, &te) {
		return te
	}
	return &ToolError{Code: ToolExecutionFailed, Message: err.Error()}
}

// ToolResult is the outcome of one tool invocation.
type ToolResult struct {
	Success bool       `json:"success"`
	Data    Payload    `json:"data,omitempty"`
	Err     *ToolError `json:"error,omitempty"`
}

// Ok returns a successful result.
func Ok(p Payload) ToolResult { return ToolResult{Success: true, Data: p} }

// Fail returns a failed result.
func Fail(err *ToolError) ToolResult { return ToolResult{Err: err} }

// ErrorMessage returns the failure message, or a generic one.
func (r ToolResult) ErrorMessage() string {
	if r.Err == nil {
		return "Unknown tool error"
	}
	return r.Err.Message
}
