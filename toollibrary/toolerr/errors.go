/*
 * Copyright (c) 2021 VMware, Inc.
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy of this software and
 * associated documentation files (the "Software"), to deal in the Software without restriction, including
 * without limitation the rights to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is furnished to do
 * so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all copies or substantial
 * portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR IMPLIED, INCLUDING BUT
 * NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.
 * IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY,
 * WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN CONNECTION WITH THE
 * SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
 */

// Package toolerr defines the structured error contract every tool call
// returns to the agent. Errors produced locally (validation, authorization)
// never reach Kinesis; errors produced remotely carry the service fault code.
package toolerr

import (
	"errors"
	"fmt"
)

// Kind discriminates the error taxonomy surfaced to the agent.
type Kind string

const (
	// Validation covers bad, missing or conflicting arguments.
	Validation Kind = "ValidationError"
	// ReadOnlyMode marks a mutating tool blocked by policy.
	ReadOnlyMode Kind = "ReadOnlyModeError"
	// MissingIdentifier marks a call where neither stream name nor ARN resolved.
	MissingIdentifier Kind = "MissingIdentifierError"
	// Service marks a remote rejection, carrying the service fault code.
	Service Kind = "ServiceError"
	// ServiceTimeout marks a call that exceeded its deadline after retries.
	ServiceTimeout Kind = "ServiceTimeoutError"
	// Cancelled marks a call abandoned because the host cancelled it.
	Cancelled Kind = "CancelledError"
)

// ToolError is the structured error returned across the tool boundary.
// Kind and Message are always set; Field is set for validation failures,
// Code and Retryable for service faults.
type ToolError struct {
	Kind      Kind   `json:"kind"`
	Message   string `json:"message"`
	Field     string `json:"field,omitempty"`
	Code      string `json:"code,omitempty"`
	Retryable bool   `json:"retryable,omitempty"`
}

func (e *ToolError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Message)
	}
	if e.Code != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewValidationError reports a per-field argument violation.
func NewValidationError(field, format string, args ...interface{}) *ToolError {
	return &ToolError{
		Kind:    Validation,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewMissingIdentifierError reports that neither stream_name nor stream_arn
// was supplied where one is required.
func NewMissingIdentifierError(tool string) *ToolError {
	return &ToolError{
		Kind:    MissingIdentifier,
		Message: fmt.Sprintf("%s requires either stream_name or stream_arn", tool),
	}
}

// NewReadOnlyModeError reports a mutating tool blocked by the safety gate.
func NewReadOnlyModeError(tool string) *ToolError {
	return &ToolError{
		Kind: ReadOnlyMode,
		Message: fmt.Sprintf("%s is a mutating operation and the server is running in read-only mode; "+
			"restart with KINESIS_TOOL_READ_ONLY=false to enable it", tool),
	}
}

// NewServiceError wraps a remote fault with its service code.
func NewServiceError(code, message string, retryable bool) *ToolError {
	return &ToolError{
		Kind:      Service,
		Code:      code,
		Message:   message,
		Retryable: retryable,
	}
}

// NewServiceTimeoutError reports a call that ran out of its deadline
// after the retry budget was spent.
func NewServiceTimeoutError(message string) *ToolError {
	return &ToolError{
		Kind:    ServiceTimeout,
		Message: message,
	}
}

// NewCancelledError reports a call abandoned on host cancellation.
func NewCancelledError(message string) *ToolError {
	return &ToolError{
		Kind:    Cancelled,
		Message: message,
	}
}

// As unwraps err into a *ToolError when it carries one.
func As(err error) (*ToolError, bool) {
	var te *ToolError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}

// IsKind reports whether err is a ToolError of the given kind.
func IsKind(err error, kind Kind) bool {
	te, ok := As(err)
	return ok && te.Kind == kind
}
