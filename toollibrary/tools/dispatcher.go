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

// Package tools is the tool-dispatch and safety layer: it validates and
// normalizes per-tool arguments, enforces the read-only gate, routes the call
// to the stream service and shapes the raw response. Every call runs
// validate -> authorize -> execute -> shape, strictly in that order.
package tools

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vmware/vmware-go-kinesis-tools/logger"
	"github.com/vmware/vmware-go-kinesis-tools/toollibrary/config"
	"github.com/vmware/vmware-go-kinesis-tools/toollibrary/metrics"
	"github.com/vmware/vmware-go-kinesis-tools/toollibrary/toolerr"
)

// ToolDispatcher routes (tool name, arguments) to the matching handler.
// It is stateless per call and safe to invoke concurrently; the only shared
// state is the immutable safety mode captured at construction.
type ToolDispatcher struct {
	svc      StreamService
	gate     *SafetyGate
	logger   logger.Logger
	mService metrics.MonitoringService
}

// NewToolDispatcher constructs a dispatcher over the given stream service.
func NewToolDispatcher(svc StreamService, cfg *config.ToolServerConfiguration) *ToolDispatcher {
	mService := cfg.MonitoringService
	if mService == nil {
		// Replaces nil with noop monitoring service (not emitting any metrics).
		mService = metrics.NoopMonitoringService{}
	}

	return &ToolDispatcher{
		svc:      svc,
		gate:     NewSafetyGate(cfg.SafetyMode),
		logger:   cfg.Logger,
		mService: mService,
	}
}

// Tools lists the dispatchable tool names.
func (d *ToolDispatcher) Tools() []string {
	return []string{
		ToolCreateStream,
		ToolListStreams,
		ToolDescribeStreamSummary,
		ToolDescribeStream,
		ToolGetShardIterator,
		ToolGetRecords,
		ToolPutRecords,
		ToolListShards,
		ToolAddTagsToStream,
		ToolListTagsForStream,
	}
}

// Dispatch runs one tool call to completion and returns the shaped result or
// a structured error from the toolerr taxonomy. Validation and authorization
// failures short-circuit before any remote call.
func (d *ToolDispatcher) Dispatch(ctx context.Context, tool string, raw map[string]interface{}) (interface{}, error) {
	callID := uuid.New().String()
	log := d.logger.WithFields(logger.Fields{"tool": tool, "callId": callID})

	d.mService.IncrToolCalls(tool)
	start := time.Now()

	result, err := d.dispatch(ctx, tool, raw)
	d.mService.RecordDispatchTime(tool, float64(time.Since(start).Milliseconds()))

	if err != nil {
		if te, ok := toolerr.As(err); ok {
			if te.Kind == toolerr.ReadOnlyMode {
				d.mService.IncrToolDenied(tool)
			}
			d.mService.IncrToolErrors(tool, string(te.Kind))
		} else {
			d.mService.IncrToolErrors(tool, "InternalError")
		}
		log.Errorf("Tool call failed: %v", err)
		return nil, err
	}

	log.Debugf("Tool call completed in %v", time.Since(start))
	return result, nil
}

func (d *ToolDispatcher) dispatch(ctx context.Context, tool string, raw map[string]interface{}) (interface{}, error) {
	switch tool {
	case ToolCreateStream:
		return d.createStream(ctx, raw)
	case ToolListStreams:
		return d.listStreams(ctx, raw)
	case ToolDescribeStreamSummary:
		return d.describeStreamSummary(ctx, raw)
	case ToolDescribeStream:
		return d.describeStream(ctx, raw)
	case ToolGetShardIterator:
		return d.getShardIterator(ctx, raw)
	case ToolGetRecords:
		return d.getRecords(ctx, raw)
	case ToolPutRecords:
		return d.putRecords(ctx, raw)
	case ToolListShards:
		return d.listShards(ctx, raw)
	case ToolAddTagsToStream:
		return d.addTagsToStream(ctx, raw)
	case ToolListTagsForStream:
		return d.listTagsForStream(ctx, raw)
	default:
		return nil, toolerr.NewValidationError("tool", "unknown tool %q", tool)
	}
}

func (d *ToolDispatcher) createStream(ctx context.Context, raw map[string]interface{}) (interface{}, error) {
	args, err := decodeCreateStreamArgs(raw)
	if err != nil {
		return nil, err
	}
	if err := d.gate.Authorize(ToolCreateStream); err != nil {
		return nil, err
	}
	if _, err := d.svc.CreateStream(ctx, args); err != nil {
		return nil, err
	}
	return shapeCreateStream(args), nil
}

func (d *ToolDispatcher) listStreams(ctx context.Context, raw map[string]interface{}) (interface{}, error) {
	args, err := decodeListStreamsArgs(raw)
	if err != nil {
		return nil, err
	}
	if err := d.gate.Authorize(ToolListStreams); err != nil {
		return nil, err
	}
	out, err := d.svc.ListStreams(ctx, args)
	if err != nil {
		return nil, err
	}
	return shapeListStreams(out), nil
}

func (d *ToolDispatcher) describeStreamSummary(ctx context.Context, raw map[string]interface{}) (interface{}, error) {
	args, err := decodeDescribeStreamSummaryArgs(raw)
	if err != nil {
		return nil, err
	}
	if err := d.gate.Authorize(ToolDescribeStreamSummary); err != nil {
		return nil, err
	}
	out, err := d.svc.DescribeStreamSummary(ctx, args)
	if err != nil {
		return nil, err
	}
	return shapeDescribeStreamSummary(out), nil
}

func (d *ToolDispatcher) describeStream(ctx context.Context, raw map[string]interface{}) (interface{}, error) {
	args, err := decodeDescribeStreamArgs(raw)
	if err != nil {
		return nil, err
	}
	if err := d.gate.Authorize(ToolDescribeStream); err != nil {
		return nil, err
	}
	out, err := d.svc.DescribeStream(ctx, args)
	if err != nil {
		return nil, err
	}
	return shapeDescribeStream(out), nil
}

func (d *ToolDispatcher) getShardIterator(ctx context.Context, raw map[string]interface{}) (interface{}, error) {
	args, err := decodeGetShardIteratorArgs(raw)
	if err != nil {
		return nil, err
	}
	if err := d.gate.Authorize(ToolGetShardIterator); err != nil {
		return nil, err
	}
	out, err := d.svc.GetShardIterator(ctx, args)
	if err != nil {
		return nil, err
	}
	return shapeGetShardIterator(out), nil
}

func (d *ToolDispatcher) getRecords(ctx context.Context, raw map[string]interface{}) (interface{}, error) {
	args, err := decodeGetRecordsArgs(raw)
	if err != nil {
		return nil, err
	}
	if err := d.gate.Authorize(ToolGetRecords); err != nil {
		return nil, err
	}
	out, err := d.svc.GetRecords(ctx, args)
	if err != nil {
		return nil, err
	}
	return shapeGetRecords(out), nil
}

func (d *ToolDispatcher) putRecords(ctx context.Context, raw map[string]interface{}) (interface{}, error) {
	args, err := decodePutRecordsArgs(raw)
	if err != nil {
		return nil, err
	}
	if err := d.gate.Authorize(ToolPutRecords); err != nil {
		return nil, err
	}
	out, err := d.svc.PutRecords(ctx, args)
	if err != nil {
		return nil, err
	}
	return shapePutRecords(out), nil
}

func (d *ToolDispatcher) listShards(ctx context.Context, raw map[string]interface{}) (interface{}, error) {
	args, err := decodeListShardsArgs(raw)
	if err != nil {
		return nil, err
	}
	if err := d.gate.Authorize(ToolListShards); err != nil {
		return nil, err
	}
	out, err := d.svc.ListShards(ctx, args)
	if err != nil {
		return nil, err
	}
	return shapeListShards(out), nil
}

func (d *ToolDispatcher) addTagsToStream(ctx context.Context, raw map[string]interface{}) (interface{}, error) {
	args, err := decodeAddTagsToStreamArgs(raw)
	if err != nil {
		return nil, err
	}
	if err := d.gate.Authorize(ToolAddTagsToStream); err != nil {
		return nil, err
	}
	if _, err := d.svc.AddTagsToStream(ctx, args); err != nil {
		return nil, err
	}
	return shapeAddTagsToStream(args), nil
}

func (d *ToolDispatcher) listTagsForStream(ctx context.Context, raw map[string]interface{}) (interface{}, error) {
	args, err := decodeListTagsForStreamArgs(raw)
	if err != nil {
		return nil, err
	}
	if err := d.gate.Authorize(ToolListTagsForStream); err != nil {
		return nil, err
	}
	out, err := d.svc.ListTagsForStream(ctx, args)
	if err != nil {
		return nil, err
	}
	return shapeListTagsForStream(out), nil
}
