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

	"github.com/aws/aws-sdk-go/service/kinesis"
)

// StreamService is the typed facade over the streaming service, one method
// per tool. Implementations own region and credential resolution, retry of
// transient faults and translation of remote fault codes into the toolerr
// taxonomy. Methods take normalized arguments and return the raw service
// response for the shaper.
type StreamService interface {
	CreateStream(ctx context.Context, args *CreateStreamArgs) (*kinesis.CreateStreamOutput, error)
	ListStreams(ctx context.Context, args *ListStreamsArgs) (*kinesis.ListStreamsOutput, error)
	DescribeStreamSummary(ctx context.Context, args *DescribeStreamSummaryArgs) (*kinesis.DescribeStreamSummaryOutput, error)
	DescribeStream(ctx context.Context, args *DescribeStreamArgs) (*kinesis.DescribeStreamOutput, error)
	GetShardIterator(ctx context.Context, args *GetShardIteratorArgs) (*kinesis.GetShardIteratorOutput, error)
	GetRecords(ctx context.Context, args *GetRecordsArgs) (*kinesis.GetRecordsOutput, error)
	PutRecords(ctx context.Context, args *PutRecordsArgs) (*kinesis.PutRecordsOutput, error)
	ListShards(ctx context.Context, args *ListShardsArgs) (*kinesis.ListShardsOutput, error)
	AddTagsToStream(ctx context.Context, args *AddTagsToStreamArgs) (*kinesis.AddTagsToStreamOutput, error)
	ListTagsForStream(ctx context.Context, args *ListTagsForStreamArgs) (*kinesis.ListTagsForStreamOutput, error)
}
