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
package toolerr

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrorCarriesField(t *testing.T) {
	err := NewValidationError("shard_count", "must be between 1 and %d", 10000)

	assert.Equal(t, Validation, err.Kind)
	assert.Equal(t, "shard_count", err.Field)
	assert.Equal(t, "must be between 1 and 10000", err.Message)
	assert.Equal(t, "ValidationError: shard_count: must be between 1 and 10000", err.Error())
}

func TestServiceErrorCarriesCodeAndRetryable(t *testing.T) {
	err := NewServiceError("ProvisionedThroughputExceededException", "slow down", true)

	assert.Equal(t, Service, err.Kind)
	assert.Equal(t, "ProvisionedThroughputExceededException", err.Code)
	assert.True(t, err.Retryable)
	assert.Equal(t, "ServiceError: ProvisionedThroughputExceededException: slow down", err.Error())
}

func TestReadOnlyModeErrorNamesTheTool(t *testing.T) {
	err := NewReadOnlyModeError("create_stream")

	assert.Equal(t, ReadOnlyMode, err.Kind)
	assert.Contains(t, err.Message, "create_stream")
	assert.Contains(t, err.Message, "KINESIS_TOOL_READ_ONLY=false")
}

func TestMissingIdentifierErrorNamesTheTool(t *testing.T) {
	err := NewMissingIdentifierError("put_records")

	assert.Equal(t, MissingIdentifier, err.Kind)
	assert.Contains(t, err.Message, "put_records")
	assert.Contains(t, err.Message, "stream_name")
	assert.Contains(t, err.Message, "stream_arn")
}

func TestAsUnwrapsWrappedToolError(t *testing.T) {
	inner := NewServiceTimeoutError("request timed out after 3 attempts")
	wrapped := fmt.Errorf("dispatch failed: %w", inner)

	te, ok := As(wrapped)
	assert.True(t, ok)
	assert.Equal(t, ServiceTimeout, te.Kind)

	assert.True(t, IsKind(wrapped, ServiceTimeout))
	assert.False(t, IsKind(wrapped, Cancelled))
}

func TestAsRejectsPlainErrors(t *testing.T) {
	_, ok := As(fmt.Errorf("not a tool error"))
	assert.False(t, ok)
	assert.False(t, IsKind(nil, Validation))
}

func TestToolErrorJSONShape(t *testing.T) {
	payload, err := json.Marshal(NewValidationError("stream_name", "is required"))
	assert.NoError(t, err)
	assert.JSONEq(t, `{"kind":"ValidationError","field":"stream_name","message":"is required"}`, string(payload))

	payload, err = json.Marshal(NewCancelledError("call cancelled by host"))
	assert.NoError(t, err)
	assert.JSONEq(t, `{"kind":"CancelledError","message":"call cancelled by host"}`, string(payload))
}
