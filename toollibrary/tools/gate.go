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
	"github.com/vmware/vmware-go-kinesis-tools/toollibrary/config"
	"github.com/vmware/vmware-go-kinesis-tools/toollibrary/toolerr"
)

// Tool names exposed on the dispatch surface.
const (
	ToolCreateStream          = "create_stream"
	ToolListStreams           = "list_streams"
	ToolDescribeStreamSummary = "describe_stream_summary"
	ToolDescribeStream        = "describe_stream"
	ToolGetShardIterator      = "get_shard_iterator"
	ToolGetRecords            = "get_records"
	ToolPutRecords            = "put_records"
	ToolListShards            = "list_shards"
	ToolAddTagsToStream       = "add_tags_to_stream"
	ToolListTagsForStream     = "list_tags_for_stream"
)

// mutatingTools statically classifies the tools that write to the service.
// Everything else is a read.
var mutatingTools = map[string]bool{
	ToolCreateStream:    true,
	ToolPutRecords:      true,
	ToolAddTagsToStream: true,
}

// IsMutating reports whether the named tool writes to the service.
func IsMutating(tool string) bool {
	return mutatingTools[tool]
}

// SafetyGate is the process-wide write policy check. The mode is fixed at
// construction and the gate holds no other state, so Authorize is a pure
// function of (tool, mode) and safe for concurrent use.
type SafetyGate struct {
	mode config.SafetyMode
}

// NewSafetyGate creates a gate enforcing the given mode.
func NewSafetyGate(mode config.SafetyMode) *SafetyGate {
	return &SafetyGate{mode: mode}
}

// Mode returns the write policy the gate enforces.
func (g *SafetyGate) Mode() config.SafetyMode {
	return g.mode
}

// Authorize denies mutating tools in READ_ONLY mode. Read tools are always
// authorized.
func (g *SafetyGate) Authorize(tool string) error {
	if g.mode == config.READ_ONLY && IsMutating(tool) {
		return toolerr.NewReadOnlyModeError(tool)
	}
	return nil
}
