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
	"context"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/kinesis"
	"github.com/stretchr/testify/assert"

	"github.com/vmware/vmware-go-kinesis-tools/toollibrary/config"
	"github.com/vmware/vmware-go-kinesis-tools/toollibrary/toolerr"
)

// fakeStreamService counts calls per method and replays canned outputs, so
// tests can assert that validation and authorization short-circuit before the
// service is reached.
type fakeStreamService struct {
	calls map[string]int

	lastCreateStream *CreateStreamArgs
	lastPutRecords   *PutRecordsArgs

	listStreamsOut *kinesis.ListStreamsOutput
	getRecordsOut  *kinesis.GetRecordsOutput
	putRecordsOut  *kinesis.PutRecordsOutput
	err            error
}

func newFakeStreamService() *fakeStreamService {
	return &fakeStreamService{calls: map[string]int{}}
}

func (f *fakeStreamService) totalCalls() int {
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

func (f *fakeStreamService) CreateStream(_ context.Context, args *CreateStreamArgs) (*kinesis.CreateStreamOutput, error) {
	f.calls[ToolCreateStream]++
	f.lastCreateStream = args
	return &kinesis.CreateStreamOutput{}, f.err
}

func (f *fakeStreamService) ListStreams(_ context.Context, _ *ListStreamsArgs) (*kinesis.ListStreamsOutput, error) {
	f.calls[ToolListStreams]++
	out := f.listStreamsOut
	if out == nil {
		out = &kinesis.ListStreamsOutput{}
	}
	return out, f.err
}

func (f *fakeStreamService) DescribeStreamSummary(_ context.Context, _ *DescribeStreamSummaryArgs) (*kinesis.DescribeStreamSummaryOutput, error) {
	f.calls[ToolDescribeStreamSummary]++
	return &kinesis.DescribeStreamSummaryOutput{}, f.err
}

func (f *fakeStreamService) DescribeStream(_ context.Context, _ *DescribeStreamArgs) (*kinesis.DescribeStreamOutput, error) {
	f.calls[ToolDescribeStream]++
	return &kinesis.DescribeStreamOutput{
		StreamDescription: &kinesis.StreamDescription{HasMoreShards: aws.Bool(false)},
	}, f.err
}

func (f *fakeStreamService) GetShardIterator(_ context.Context, _ *GetShardIteratorArgs) (*kinesis.GetShardIteratorOutput, error) {
	f.calls[ToolGetShardIterator]++
	return &kinesis.GetShardIteratorOutput{ShardIterator: aws.String("iter-1")}, f.err
}

func (f *fakeStreamService) GetRecords(_ context.Context, _ *GetRecordsArgs) (*kinesis.GetRecordsOutput, error) {
	f.calls[ToolGetRecords]++
	out := f.getRecordsOut
	if out == nil {
		out = &kinesis.GetRecordsOutput{}
	}
	return out, f.err
}

func (f *fakeStreamService) PutRecords(_ context.Context, args *PutRecordsArgs) (*kinesis.PutRecordsOutput, error) {
	f.calls[ToolPutRecords]++
	f.lastPutRecords = args
	out := f.putRecordsOut
	if out == nil {
		out = &kinesis.PutRecordsOutput{FailedRecordCount: aws.Int64(0)}
	}
	return out, f.err
}

func (f *fakeStreamService) ListShards(_ context.Context, _ *ListShardsArgs) (*kinesis.ListShardsOutput, error) {
	f.calls[ToolListShards]++
	return &kinesis.ListShardsOutput{}, f.err
}

func (f *fakeStreamService) AddTagsToStream(_ context.Context, _ *AddTagsToStreamArgs) (*kinesis.AddTagsToStreamOutput, error) {
	f.calls[ToolAddTagsToStream]++
	return &kinesis.AddTagsToStreamOutput{}, f.err
}

func (f *fakeStreamService) ListTagsForStream(_ context.Context, _ *ListTagsForStreamArgs) (*kinesis.ListTagsForStreamOutput, error) {
	f.calls[ToolListTagsForStream]++
	return &kinesis.ListTagsForStreamOutput{
		Tags:        []*kinesis.Tag{{Key: aws.String("team"), Value: aws.String("data")}},
		HasMoreTags: aws.Bool(false),
	}, f.err
}

func newTestDispatcher(svc StreamService, mode config.SafetyMode) *ToolDispatcher {
	cfg := config.NewToolServerConfig("kinesis_tool_server_test", "us-west-2").WithSafetyMode(mode)
	return NewToolDispatcher(svc, cfg)
}

func TestDispatchValidationFailureSkipsService(t *testing.T) {
	svc := newFakeStreamService()
	d := newTestDispatcher(svc, config.READ_WRITE)

	badCalls := map[string]map[string]interface{}{
		ToolCreateStream:          {"stream_name": "has spaces"},
		ToolListStreams:           {"limit": float64(-1)},
		ToolDescribeStreamSummary: {},
		ToolDescribeStream:        {},
		ToolGetShardIterator:      {"shard_id": "shardId-0", "shard_iterator_type": "BOGUS"},
		ToolGetRecords:            {},
		ToolPutRecords:            {"stream_name": "orders", "records": []interface{}{}},
		ToolListShards:            {},
		ToolAddTagsToStream:       {"stream_name": "orders"},
		ToolListTagsForStream:     {},
	}

	for tool, raw := range badCalls {
		result, err := d.Dispatch(context.Background(), tool, raw)
		assert.Error(t, err, tool)
		assert.Nil(t, result, tool)
	}
	assert.Zero(t, svc.totalCalls(), "invalid arguments must never reach the service")
}

func TestDispatchReadOnlyModeBlocksMutatingTools(t *testing.T) {
	svc := newFakeStreamService()
	d := newTestDispatcher(svc, config.READ_ONLY)

	mutatingCalls := map[string]map[string]interface{}{
		ToolCreateStream: {"stream_name": "orders"},
		ToolPutRecords: {
			"stream_name": "orders",
			"records":     []interface{}{map[string]interface{}{"data": "x", "partition_key": "k"}},
		},
		ToolAddTagsToStream: {
			"stream_name": "orders",
			"tags":        map[string]interface{}{"team": "data"},
		},
	}

	for tool, raw := range mutatingCalls {
		_, err := d.Dispatch(context.Background(), tool, raw)
		assert.True(t, toolerr.IsKind(err, toolerr.ReadOnlyMode), tool)
	}
	assert.Zero(t, svc.totalCalls(), "denied calls must never reach the service")
}

func TestDispatchReadOnlyModeAllowsReads(t *testing.T) {
	svc := newFakeStreamService()
	d := newTestDispatcher(svc, config.READ_ONLY)

	_, err := d.Dispatch(context.Background(), ToolListStreams, map[string]interface{}{})
	assert.NoError(t, err)
	assert.Equal(t, 1, svc.calls[ToolListStreams])

	result, err := d.Dispatch(context.Background(), ToolDescribeStream, map[string]interface{}{
		"stream_name": "orders",
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, svc.calls[ToolDescribeStream])
	_, ok := result.(*StreamDetailResult)
	assert.True(t, ok)

	result, err = d.Dispatch(context.Background(), ToolListTagsForStream, map[string]interface{}{
		"stream_name": "orders",
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, svc.calls[ToolListTagsForStream])
	tags, ok := result.(*StreamTagsResult)
	assert.True(t, ok)
	assert.Equal(t, map[string]string{"team": "data"}, tags.Tags)
}

func TestDispatchCreateStreamEchoesNormalizedArgs(t *testing.T) {
	svc := newFakeStreamService()
	d := newTestDispatcher(svc, config.READ_WRITE)

	result, err := d.Dispatch(context.Background(), ToolCreateStream, map[string]interface{}{
		"stream_name": "orders",
		"shard_count": float64(2),
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, svc.calls[ToolCreateStream])
	assert.Equal(t, "orders", svc.lastCreateStream.StreamName)
	assert.Equal(t, int64(2), svc.lastCreateStream.ShardCount)

	created, ok := result.(*CreateStreamResult)
	assert.True(t, ok)
	assert.Equal(t, "orders", created.StreamName)
	assert.Equal(t, int64(2), created.ShardCount)
	assert.Equal(t, kinesis.StreamStatusCreating, created.Status)
}

func TestDispatchGetRecordsEmptyPageIsSuccess(t *testing.T) {
	svc := newFakeStreamService()
	svc.getRecordsOut = &kinesis.GetRecordsOutput{
		NextShardIterator:  aws.String("next-iter"),
		MillisBehindLatest: aws.Int64(0),
	}
	d := newTestDispatcher(svc, config.READ_ONLY)

	result, err := d.Dispatch(context.Background(), ToolGetRecords, map[string]interface{}{
		"shard_iterator": "iter-1",
	})

	assert.NoError(t, err)
	records, ok := result.(*GetRecordsResult)
	assert.True(t, ok)
	assert.Empty(t, records.Records)
	assert.Equal(t, ShardIterator("next-iter"), records.NextShardIterator)
}

func TestDispatchListStreamsRepeatableWithSameToken(t *testing.T) {
	svc := newFakeStreamService()
	svc.listStreamsOut = &kinesis.ListStreamsOutput{
		StreamNames: aws.StringSlice([]string{"orders", "clicks"}),
		NextToken:   aws.String("page-2"),
	}
	d := newTestDispatcher(svc, config.READ_ONLY)

	raw := map[string]interface{}{"next_token": "page-1"}
	first, err := d.Dispatch(context.Background(), ToolListStreams, raw)
	assert.NoError(t, err)
	second, err := d.Dispatch(context.Background(), ToolListStreams, raw)
	assert.NoError(t, err)

	assert.Equal(t, first, second, "same token must shape to the same page")
	assert.Equal(t, 2, svc.calls[ToolListStreams])
}

func TestDispatchPutRecordsPartialFailureIsData(t *testing.T) {
	svc := newFakeStreamService()
	svc.putRecordsOut = &kinesis.PutRecordsOutput{
		FailedRecordCount: aws.Int64(1),
		Records: []*kinesis.PutRecordsResultEntry{
			{SequenceNumber: aws.String("seq-0"), ShardId: aws.String("shardId-000000000000")},
			{ErrorCode: aws.String("InternalFailure"), ErrorMessage: aws.String("try again")},
		},
	}
	d := newTestDispatcher(svc, config.READ_WRITE)

	result, err := d.Dispatch(context.Background(), ToolPutRecords, map[string]interface{}{
		"stream_name": "orders",
		"records": []interface{}{
			map[string]interface{}{"data": "first", "partition_key": "k0"},
			map[string]interface{}{"data": "second", "partition_key": "k1"},
		},
	})

	assert.NoError(t, err, "partial failure is reported as data, not as an error")
	put, ok := result.(*PutRecordsResult)
	assert.True(t, ok)
	assert.Equal(t, int64(1), put.FailedRecordCount)
	assert.Len(t, put.Results, 2)
	assert.Len(t, svc.lastPutRecords.Records, 2)
}

func TestDispatchServiceErrorPassesThrough(t *testing.T) {
	svc := newFakeStreamService()
	svc.err = toolerr.NewServiceError("ResourceNotFoundException", "stream not found", false)
	d := newTestDispatcher(svc, config.READ_ONLY)

	_, err := d.Dispatch(context.Background(), ToolDescribeStreamSummary, map[string]interface{}{
		"stream_name": "orders",
	})

	te, ok := toolerr.As(err)
	assert.True(t, ok)
	assert.Equal(t, toolerr.Service, te.Kind)
	assert.Equal(t, "ResourceNotFoundException", te.Code)
	assert.False(t, te.Retryable)
}

func TestDispatchUnknownTool(t *testing.T) {
	svc := newFakeStreamService()
	d := newTestDispatcher(svc, config.READ_WRITE)

	_, err := d.Dispatch(context.Background(), "delete_stream", map[string]interface{}{})

	te, ok := toolerr.As(err)
	assert.True(t, ok)
	assert.Equal(t, toolerr.Validation, te.Kind)
	assert.Equal(t, "tool", te.Field)
	assert.Zero(t, svc.totalCalls())
}

func TestDispatcherToolsListsTheFullSurface(t *testing.T) {
	d := newTestDispatcher(newFakeStreamService(), config.READ_ONLY)

	names := d.Tools()
	assert.Len(t, names, 10)
	assert.Contains(t, names, ToolCreateStream)
	assert.Contains(t, names, ToolGetRecords)
	assert.Contains(t, names, ToolDescribeStream)
	assert.Contains(t, names, ToolAddTagsToStream)
	assert.Contains(t, names, ToolListTagsForStream)
}
