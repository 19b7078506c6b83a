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
package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vmware/vmware-go-kinesis-tools/toollibrary/config"
	"github.com/vmware/vmware-go-kinesis-tools/toollibrary/toolerr"
)

func TestIsMutatingClassification(t *testing.T) {
	assert.True(t, IsMutating(ToolCreateStream))
	assert.True(t, IsMutating(ToolPutRecords))
	assert.True(t, IsMutating(ToolAddTagsToStream))

	assert.False(t, IsMutating(ToolListStreams))
	assert.False(t, IsMutating(ToolDescribeStreamSummary))
	assert.False(t, IsMutating(ToolDescribeStream))
	assert.False(t, IsMutating(ToolGetShardIterator))
	assert.False(t, IsMutating(ToolGetRecords))
	assert.False(t, IsMutating(ToolListShards))
	assert.False(t, IsMutating(ToolListTagsForStream))
}

func TestReadOnlyGateBlocksMutatingTools(t *testing.T) {
	gate := NewSafetyGate(config.READ_ONLY)

	for _, tool := range []string{ToolCreateStream, ToolPutRecords, ToolAddTagsToStream} {
		err := gate.Authorize(tool)
		assert.Error(t, err, tool)
		assert.True(t, toolerr.IsKind(err, toolerr.ReadOnlyMode), tool)
	}
}

func TestReadOnlyGateAllowsReadTools(t *testing.T) {
	gate := NewSafetyGate(config.READ_ONLY)

	for _, tool := range []string{
		ToolListStreams, ToolDescribeStreamSummary, ToolDescribeStream,
		ToolGetShardIterator, ToolGetRecords, ToolListShards,
		ToolListTagsForStream,
	} {
		assert.NoError(t, gate.Authorize(tool), tool)
	}
}

func TestReadWriteGateAllowsEverything(t *testing.T) {
	gate := NewSafetyGate(config.READ_WRITE)
	assert.Equal(t, config.READ_WRITE, gate.Mode())

	for _, tool := range []string{
		ToolCreateStream, ToolListStreams, ToolDescribeStreamSummary,
		ToolDescribeStream, ToolGetShardIterator, ToolGetRecords,
		ToolPutRecords, ToolListShards, ToolAddTagsToStream,
		ToolListTagsForStream,
	} {
		assert.NoError(t, gate.Authorize(tool), tool)
	}
}
