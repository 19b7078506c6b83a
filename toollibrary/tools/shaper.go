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
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/kinesis"
)

// Shaped results returned across the tool boundary. Field names are the
// documented wire shape; pagination and iterator tokens stay opaque.
type (
	CreateStreamResult struct {
		StreamName string            `json:"stream_name"`
		ShardCount int64             `json:"shard_count,omitempty"`
		StreamMode string            `json:"stream_mode,omitempty"`
		Tags       map[string]string `json:"tags,omitempty"`
		// Status is always CREATING: stream creation is asynchronous on the
		// service side and this layer does not poll for ACTIVE.
		Status string `json:"status"`
	}

	ListStreamsResult struct {
		StreamNames  []string        `json:"stream_names"`
		HasMorePages bool            `json:"has_more_pages"`
		NextToken    PaginationToken `json:"next_token,omitempty"`
	}

	StreamSummaryResult struct {
		StreamName             string `json:"stream_name"`
		StreamARN              string `json:"stream_arn"`
		StreamStatus           string `json:"stream_status"`
		StreamMode             string `json:"stream_mode,omitempty"`
		OpenShardCount         int64  `json:"open_shard_count"`
		RetentionPeriodHours   int64  `json:"retention_period_hours"`
		StreamCreationTime     string `json:"stream_creation_timestamp,omitempty"`
		EncryptionType         string `json:"encryption_type,omitempty"`
		ConsumerCount          int64  `json:"consumer_count"`
		EnhancedMonitoringOpen bool   `json:"enhanced_monitoring,omitempty"`
	}

	// StreamDetailResult is the shard-level view returned by describe_stream.
	// Shard pages continue from the last returned shard id via
	// exclusive_start_shard_id when HasMoreShards is set.
	StreamDetailResult struct {
		StreamName           string        `json:"stream_name"`
		StreamARN            string        `json:"stream_arn"`
		StreamStatus         string        `json:"stream_status"`
		StreamMode           string        `json:"stream_mode,omitempty"`
		Shards               []ShardResult `json:"shards"`
		HasMoreShards        bool          `json:"has_more_shards"`
		RetentionPeriodHours int64         `json:"retention_period_hours"`
		StreamCreationTime   string        `json:"stream_creation_timestamp,omitempty"`
		EncryptionType       string        `json:"encryption_type,omitempty"`
	}

	GetShardIteratorResult struct {
		ShardIterator ShardIterator `json:"shard_iterator"`
	}

	RecordResult struct {
		SequenceNumber              string `json:"sequence_number"`
		PartitionKey                string `json:"partition_key"`
		Data                        string `json:"data"`
		ApproximateArrivalTimestamp string `json:"approximate_arrival_timestamp,omitempty"`
	}

	// GetRecordsResult with an empty Records slice and a present
	// NextShardIterator is a valid "no new data yet" success.
	GetRecordsResult struct {
		Records            []RecordResult `json:"records"`
		NextShardIterator  ShardIterator  `json:"next_shard_iterator,omitempty"`
		MillisBehindLatest int64          `json:"millis_behind_latest"`
	}

	PutRecordResult struct {
		SequenceNumber string `json:"sequence_number,omitempty"`
		ShardID        string `json:"shard_id,omitempty"`
		ErrorCode      string `json:"error_code,omitempty"`
		ErrorMessage   string `json:"error_message,omitempty"`
	}

	// PutRecordsResult reports partial failure as data: Results is index
	// aligned with the submitted batch and FailedRecordCount tells the caller
	// how many entries to retry.
	PutRecordsResult struct {
		Results           []PutRecordResult `json:"results"`
		FailedRecordCount int64             `json:"failed_record_count"`
	}

	ShardResult struct {
		ShardID                string `json:"shard_id"`
		ParentShardID          string `json:"parent_shard_id,omitempty"`
		StartingHashKey        string `json:"starting_hash_key,omitempty"`
		EndingHashKey          string `json:"ending_hash_key,omitempty"`
		StartingSequenceNumber string `json:"starting_sequence_number,omitempty"`
		EndingSequenceNumber   string `json:"ending_sequence_number,omitempty"`
	}

	ListShardsResult struct {
		Shards       []ShardResult   `json:"shards"`
		HasMorePages bool            `json:"has_more_pages"`
		NextToken    PaginationToken `json:"next_token,omitempty"`
	}

	AddTagsToStreamResult struct {
		StreamName string `json:"stream_name,omitempty"`
		StreamARN  string `json:"stream_arn,omitempty"`
		TagCount   int    `json:"tag_count"`
		Status     string `json:"status"`
	}

	// StreamTagsResult lists a stream's tags. When HasMoreTags is set the
	// next page starts after the lexically greatest key via
	// exclusive_start_tag_key.
	StreamTagsResult struct {
		Tags        map[string]string `json:"tags"`
		HasMoreTags bool              `json:"has_more_tags"`
	}
)

func shapeCreateStream(args *CreateStreamArgs) *CreateStreamResult {
	result := &CreateStreamResult{
		StreamName: args.StreamName,
		StreamMode: args.StreamMode,
		Tags:       args.Tags,
		Status:     kinesis.StreamStatusCreating,
	}
	if args.StreamMode != STREAM_MODE_ON_DEMAND {
		result.ShardCount = args.ShardCount
	}
	return result
}

func shapeListStreams(out *kinesis.ListStreamsOutput) *ListStreamsResult {
	token := aws.StringValue(out.NextToken)
	return &ListStreamsResult{
		StreamNames:  aws.StringValueSlice(out.StreamNames),
		HasMorePages: token != "",
		NextToken:    PaginationToken(token),
	}
}

func shapeDescribeStreamSummary(out *kinesis.DescribeStreamSummaryOutput) *StreamSummaryResult {
	summary := out.StreamDescriptionSummary
	if summary == nil {
		return &StreamSummaryResult{}
	}
	result := &StreamSummaryResult{
		StreamName:           aws.StringValue(summary.StreamName),
		StreamARN:            aws.StringValue(summary.StreamARN),
		StreamStatus:         aws.StringValue(summary.StreamStatus),
		OpenShardCount:       aws.Int64Value(summary.OpenShardCount),
		RetentionPeriodHours: aws.Int64Value(summary.RetentionPeriodHours),
		EncryptionType:       aws.StringValue(summary.EncryptionType),
		ConsumerCount:        aws.Int64Value(summary.ConsumerCount),
	}
	if summary.StreamModeDetails != nil {
		result.StreamMode = aws.StringValue(summary.StreamModeDetails.StreamMode)
	}
	if summary.StreamCreationTimestamp != nil {
		result.StreamCreationTime = summary.StreamCreationTimestamp.UTC().Format(time.RFC3339)
	}
	result.EnhancedMonitoringOpen = len(summary.EnhancedMonitoring) > 0
	return result
}

func shapeDescribeStream(out *kinesis.DescribeStreamOutput) *StreamDetailResult {
	description := out.StreamDescription
	if description == nil {
		return &StreamDetailResult{Shards: []ShardResult{}}
	}
	result := &StreamDetailResult{
		StreamName:           aws.StringValue(description.StreamName),
		StreamARN:            aws.StringValue(description.StreamARN),
		StreamStatus:         aws.StringValue(description.StreamStatus),
		Shards:               shapeShards(description.Shards),
		HasMoreShards:        aws.BoolValue(description.HasMoreShards),
		RetentionPeriodHours: aws.Int64Value(description.RetentionPeriodHours),
		EncryptionType:       aws.StringValue(description.EncryptionType),
	}
	if description.StreamModeDetails != nil {
		result.StreamMode = aws.StringValue(description.StreamModeDetails.StreamMode)
	}
	if description.StreamCreationTimestamp != nil {
		result.StreamCreationTime = description.StreamCreationTimestamp.UTC().Format(time.RFC3339)
	}
	return result
}

func shapeGetShardIterator(out *kinesis.GetShardIteratorOutput) *GetShardIteratorResult {
	return &GetShardIteratorResult{
		ShardIterator: ShardIterator(aws.StringValue(out.ShardIterator)),
	}
}

func shapeGetRecords(out *kinesis.GetRecordsOutput) *GetRecordsResult {
	records := make([]RecordResult, 0, len(out.Records))
	for _, r := range out.Records {
		record := RecordResult{
			SequenceNumber: aws.StringValue(r.SequenceNumber),
			PartitionKey:   aws.StringValue(r.PartitionKey),
			Data:           string(r.Data),
		}
		if r.ApproximateArrivalTimestamp != nil {
			record.ApproximateArrivalTimestamp = r.ApproximateArrivalTimestamp.UTC().Format(time.RFC3339)
		}
		records = append(records, record)
	}
	return &GetRecordsResult{
		Records:            records,
		NextShardIterator:  ShardIterator(aws.StringValue(out.NextShardIterator)),
		MillisBehindLatest: aws.Int64Value(out.MillisBehindLatest),
	}
}

func shapePutRecords(out *kinesis.PutRecordsOutput) *PutRecordsResult {
	results := make([]PutRecordResult, 0, len(out.Records))
	for _, r := range out.Records {
		results = append(results, PutRecordResult{
			SequenceNumber: aws.StringValue(r.SequenceNumber),
			ShardID:        aws.StringValue(r.ShardId),
			ErrorCode:      aws.StringValue(r.ErrorCode),
			ErrorMessage:   aws.StringValue(r.ErrorMessage),
		})
	}
	return &PutRecordsResult{
		Results:           results,
		FailedRecordCount: aws.Int64Value(out.FailedRecordCount),
	}
}

func shapeShards(in []*kinesis.Shard) []ShardResult {
	shards := make([]ShardResult, 0, len(in))
	for _, s := range in {
		shard := ShardResult{
			ShardID:       aws.StringValue(s.ShardId),
			ParentShardID: aws.StringValue(s.ParentShardId),
		}
		if s.HashKeyRange != nil {
			shard.StartingHashKey = aws.StringValue(s.HashKeyRange.StartingHashKey)
			shard.EndingHashKey = aws.StringValue(s.HashKeyRange.EndingHashKey)
		}
		if s.SequenceNumberRange != nil {
			shard.StartingSequenceNumber = aws.StringValue(s.SequenceNumberRange.StartingSequenceNumber)
			shard.EndingSequenceNumber = aws.StringValue(s.SequenceNumberRange.EndingSequenceNumber)
		}
		shards = append(shards, shard)
	}
	return shards
}

func shapeListShards(out *kinesis.ListShardsOutput) *ListShardsResult {
	token := aws.StringValue(out.NextToken)
	return &ListShardsResult{
		Shards:       shapeShards(out.Shards),
		HasMorePages: token != "",
		NextToken:    PaginationToken(token),
	}
}

func shapeAddTagsToStream(args *AddTagsToStreamArgs) *AddTagsToStreamResult {
	return &AddTagsToStreamResult{
		StreamName: args.StreamName,
		StreamARN:  args.StreamARN,
		TagCount:   len(args.Tags),
		Status:     "OK",
	}
}

func shapeListTagsForStream(out *kinesis.ListTagsForStreamOutput) *StreamTagsResult {
	tags := make(map[string]string, len(out.Tags))
	for _, tag := range out.Tags {
		tags[aws.StringValue(tag.Key)] = aws.StringValue(tag.Value)
	}
	return &StreamTagsResult{
		Tags:        tags,
		HasMoreTags: aws.BoolValue(out.HasMoreTags),
	}
}
