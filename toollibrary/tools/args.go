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
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/vmware/vmware-go-kinesis-tools/toollibrary/config"
	"github.com/vmware/vmware-go-kinesis-tools/toollibrary/toolerr"
)

const (
	// Shard iterator types accepted by get_shard_iterator.
	AT_SEQUENCE_NUMBER    = "AT_SEQUENCE_NUMBER"
	AFTER_SEQUENCE_NUMBER = "AFTER_SEQUENCE_NUMBER"
	TRIM_HORIZON          = "TRIM_HORIZON"
	LATEST                = "LATEST"
	AT_TIMESTAMP          = "AT_TIMESTAMP"

	// Stream capacity modes accepted in stream_mode_details.
	STREAM_MODE_PROVISIONED = "PROVISIONED"
	STREAM_MODE_ON_DEMAND   = "ON_DEMAND"
)

type (
	// ShardIterator is an opaque, short-lived read position handed out by the
	// service. It is passed through verbatim and never parsed or constructed
	// by this layer.
	ShardIterator string

	// PaginationToken is an opaque continuation marker for multi-page list
	// results, passed back verbatim to continue a listing.
	PaginationToken string
)

var (
	streamNamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)
	shardIDPattern    = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

	shardIteratorTypes = map[string]bool{
		AT_SEQUENCE_NUMBER:    true,
		AFTER_SEQUENCE_NUMBER: true,
		TRIM_HORIZON:          true,
		LATEST:                true,
		AT_TIMESTAMP:          true,
	}
)

// StreamIdentifier names a stream by name or by ARN. When both are present
// the ARN takes precedence at the service adapter.
type StreamIdentifier struct {
	StreamName string
	StreamARN  string
}

// Resolvable reports whether at least one identifier is present.
func (id StreamIdentifier) Resolvable() bool {
	return id.StreamName != "" || id.StreamARN != ""
}

type (
	// CreateStreamArgs are the normalized arguments of create_stream.
	CreateStreamArgs struct {
		StreamName string
		ShardCount int64
		StreamMode string // empty when the caller supplied no stream_mode_details
		Tags       map[string]string
		RegionName string
	}

	// ListStreamsArgs are the normalized arguments of list_streams.
	ListStreamsArgs struct {
		ExclusiveStartStreamName string
		Limit                    int64
		NextToken                PaginationToken
		RegionName               string
	}

	// DescribeStreamSummaryArgs are the normalized arguments of describe_stream_summary.
	DescribeStreamSummaryArgs struct {
		StreamIdentifier
		RegionName string
	}

	// DescribeStreamArgs are the normalized arguments of describe_stream.
	DescribeStreamArgs struct {
		StreamIdentifier
		Limit                 int64 // max shards per page, 0 means service default
		ExclusiveStartShardID string
		RegionName            string
	}

	// GetShardIteratorArgs are the normalized arguments of get_shard_iterator.
	GetShardIteratorArgs struct {
		StreamIdentifier
		ShardID                string
		ShardIteratorType      string
		StartingSequenceNumber string
		Timestamp              *time.Time
		RegionName             string
	}

	// GetRecordsArgs are the normalized arguments of get_records.
	GetRecordsArgs struct {
		ShardIterator ShardIterator
		Limit         int64 // 0 means service default
		StreamARN     string
		RegionName    string
	}

	// PutRecordEntry is one record of a put_records batch. Order is preserved
	// and each service result item stays aligned with its input index.
	PutRecordEntry struct {
		Data            string
		PartitionKey    string
		ExplicitHashKey string
	}

	// PutRecordsArgs are the normalized arguments of put_records.
	PutRecordsArgs struct {
		StreamIdentifier
		Records    []PutRecordEntry
		RegionName string
	}

	// ListShardsArgs are the normalized arguments of list_shards.
	ListShardsArgs struct {
		StreamIdentifier
		ExclusiveStartShardID string
		MaxResults            int64
		NextToken             PaginationToken
		RegionName            string
	}

	// AddTagsToStreamArgs are the normalized arguments of add_tags_to_stream.
	AddTagsToStreamArgs struct {
		StreamIdentifier
		Tags       map[string]string
		RegionName string
	}

	// ListTagsForStreamArgs are the normalized arguments of list_tags_for_stream.
	ListTagsForStreamArgs struct {
		StreamIdentifier
		ExclusiveStartTagKey string
		Limit                int64 // 0 means service default
		RegionName           string
	}
)

// ---------------------------------------------------------------------------
// raw argument extraction
//
// Tool calls arrive as a flat map of JSON values, so integers show up as
// float64. The helpers below reject wrong types with the offending field name
// and leave range checks to the per-tool validate functions.

func stringArg(raw map[string]interface{}, key string) (string, bool, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return "", false, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", false, toolerr.NewValidationError(key, "must be a string")
	}
	return s, true, nil
}

func intArg(raw map[string]interface{}, key string) (int64, bool, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return 0, false, nil
	}
	switch n := v.(type) {
	case int:
		return int64(n), true, nil
	case int64:
		return n, true, nil
	case float64:
		if n != float64(int64(n)) {
			return 0, false, toolerr.NewValidationError(key, "must be an integer")
		}
		return int64(n), true, nil
	default:
		return 0, false, toolerr.NewValidationError(key, "must be an integer")
	}
}

func stringMapArg(raw map[string]interface{}, key string) (map[string]string, bool, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return nil, false, nil
	}
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, false, toolerr.NewValidationError(key, "must be a map of string to string")
	}
	out := make(map[string]string, len(m))
	for k, mv := range m {
		s, ok := mv.(string)
		if !ok {
			return nil, false, toolerr.NewValidationError(key, "value for key %q must be a string", k)
		}
		out[k] = s
	}
	return out, true, nil
}

// timeArg accepts an RFC3339 string or a numeric Unix epoch in seconds.
func timeArg(raw map[string]interface{}, key string) (*time.Time, bool, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return nil, false, nil
	}
	switch t := v.(type) {
	case string:
		parsed, err := time.Parse(time.RFC3339, t)
		if err != nil {
			return nil, false, toolerr.NewValidationError(key, "must be an RFC3339 timestamp or Unix epoch seconds")
		}
		return &parsed, true, nil
	case float64:
		parsed := time.Unix(int64(t), 0).UTC()
		return &parsed, true, nil
	default:
		return nil, false, toolerr.NewValidationError(key, "must be an RFC3339 timestamp or Unix epoch seconds")
	}
}

// ---------------------------------------------------------------------------
// shared field validators

func validateStreamName(field, name string) error {
	if len(name) < 1 || len(name) > config.MaxStreamNameLength {
		return toolerr.NewValidationError(field, "length must be between 1 and %d characters", config.MaxStreamNameLength)
	}
	if !streamNamePattern.MatchString(name) {
		return toolerr.NewValidationError(field, "can only contain alphanumeric characters, hyphens, underscores, and periods")
	}
	if strings.HasPrefix(strings.ToLower(name), "aws:") {
		return toolerr.NewValidationError(field, `cannot start with "aws:"`)
	}
	return nil
}

func validateStreamARN(field, arn string) error {
	if len(arn) < 1 || len(arn) > config.MaxStreamARNLength {
		return toolerr.NewValidationError(field, "length must be between 1 and %d characters", config.MaxStreamARNLength)
	}
	return nil
}

func validateIdentifier(id StreamIdentifier) error {
	if id.StreamName != "" {
		if err := validateStreamName("stream_name", id.StreamName); err != nil {
			return err
		}
	}
	if id.StreamARN != "" {
		if err := validateStreamARN("stream_arn", id.StreamARN); err != nil {
			return err
		}
	}
	return nil
}

func validateTags(tags map[string]string) error {
	if len(tags) > config.MaxTagsCount {
		return toolerr.NewValidationError("tags", "number of tags cannot exceed %d", config.MaxTagsCount)
	}
	for key, value := range tags {
		if len(key) < 1 || len(key) > config.MaxTagKeyLength {
			return toolerr.NewValidationError("tags", "tag key length must be between 1 and %d characters", config.MaxTagKeyLength)
		}
		if len(value) > config.MaxTagValueLength {
			return toolerr.NewValidationError("tags", "tag value length cannot exceed %d characters", config.MaxTagValueLength)
		}
	}
	return nil
}

func decodeIdentifier(raw map[string]interface{}) (StreamIdentifier, error) {
	var id StreamIdentifier
	name, _, err := stringArg(raw, "stream_name")
	if err != nil {
		return id, err
	}
	arn, _, err := stringArg(raw, "stream_arn")
	if err != nil {
		return id, err
	}
	id.StreamName = name
	id.StreamARN = arn
	return id, validateIdentifier(id)
}

// ---------------------------------------------------------------------------
// per-tool decoding

func decodeCreateStreamArgs(raw map[string]interface{}) (*CreateStreamArgs, error) {
	a := &CreateStreamArgs{ShardCount: config.DefaultShardCount}

	name, ok, err := stringArg(raw, "stream_name")
	if err != nil {
		return nil, err
	}
	if !ok || name == "" {
		return nil, toolerr.NewValidationError("stream_name", "is required")
	}
	if err := validateStreamName("stream_name", name); err != nil {
		return nil, err
	}
	a.StreamName = name

	if count, ok, err := intArg(raw, "shard_count"); err != nil {
		return nil, err
	} else if ok {
		if count < 1 || count > config.MaxShardCount {
			return nil, toolerr.NewValidationError("shard_count", "must be between 1 and %d", config.MaxShardCount)
		}
		a.ShardCount = count
	}

	if details, ok := raw["stream_mode_details"]; ok && details != nil {
		mode, err := decodeStreamMode(details)
		if err != nil {
			return nil, err
		}
		a.StreamMode = mode
	}

	if tags, ok, err := stringMapArg(raw, "tags"); err != nil {
		return nil, err
	} else if ok {
		if err := validateTags(tags); err != nil {
			return nil, err
		}
		a.Tags = tags
	}

	a.RegionName, _, err = stringArg(raw, "region_name")
	return a, err
}

// decodeStreamMode accepts the service shape {"StreamMode": "..."} as well as
// the snake_case spelling used by the rest of the tool surface.
func decodeStreamMode(v interface{}) (string, error) {
	m, ok := v.(map[string]interface{})
	if !ok {
		return "", toolerr.NewValidationError("stream_mode_details", "must be a map")
	}
	raw, ok := m["StreamMode"]
	if !ok {
		raw, ok = m["stream_mode"]
	}
	if !ok {
		return "", toolerr.NewValidationError("stream_mode_details", "must contain StreamMode")
	}
	mode, ok := raw.(string)
	if !ok {
		return "", toolerr.NewValidationError("stream_mode_details", "StreamMode must be a string")
	}
	if mode != STREAM_MODE_PROVISIONED && mode != STREAM_MODE_ON_DEMAND {
		return "", toolerr.NewValidationError("stream_mode_details",
			"StreamMode must be %s or %s", STREAM_MODE_PROVISIONED, STREAM_MODE_ON_DEMAND)
	}
	return mode, nil
}

func decodeListStreamsArgs(raw map[string]interface{}) (*ListStreamsArgs, error) {
	a := &ListStreamsArgs{Limit: config.DefaultListStreamsLimit}

	start, ok, err := stringArg(raw, "exclusive_start_stream_name")
	if err != nil {
		return nil, err
	}
	if ok && start != "" {
		if err := validateStreamName("exclusive_start_stream_name", start); err != nil {
			return nil, err
		}
		a.ExclusiveStartStreamName = start
	}

	if limit, ok, err := intArg(raw, "limit"); err != nil {
		return nil, err
	} else if ok {
		if limit < 1 || limit > config.MaxListStreamsLimit {
			return nil, toolerr.NewValidationError("limit", "must be between 1 and %d", config.MaxListStreamsLimit)
		}
		a.Limit = limit
	}

	// The service decides precedence between exclusive_start_stream_name and
	// next_token; this layer only type-checks them.
	token, _, err := stringArg(raw, "next_token")
	if err != nil {
		return nil, err
	}
	a.NextToken = PaginationToken(token)

	a.RegionName, _, err = stringArg(raw, "region_name")
	return a, err
}

func decodeDescribeStreamSummaryArgs(raw map[string]interface{}) (*DescribeStreamSummaryArgs, error) {
	id, err := decodeIdentifier(raw)
	if err != nil {
		return nil, err
	}
	if !id.Resolvable() {
		return nil, toolerr.NewMissingIdentifierError(ToolDescribeStreamSummary)
	}

	a := &DescribeStreamSummaryArgs{StreamIdentifier: id}
	a.RegionName, _, err = stringArg(raw, "region_name")
	return a, err
}

func decodeDescribeStreamArgs(raw map[string]interface{}) (*DescribeStreamArgs, error) {
	id, err := decodeIdentifier(raw)
	if err != nil {
		return nil, err
	}
	if !id.Resolvable() {
		return nil, toolerr.NewMissingIdentifierError(ToolDescribeStream)
	}
	a := &DescribeStreamArgs{StreamIdentifier: id}

	if limit, ok, err := intArg(raw, "limit"); err != nil {
		return nil, err
	} else if ok {
		if limit < 1 || limit > config.MaxDescribeStreamLimit {
			return nil, toolerr.NewValidationError("limit", "must be between 1 and %d", config.MaxDescribeStreamLimit)
		}
		a.Limit = limit
	}

	startShard, ok, err := stringArg(raw, "exclusive_start_shard_id")
	if err != nil {
		return nil, err
	}
	if ok && startShard != "" {
		if len(startShard) > config.MaxShardIDLength || !shardIDPattern.MatchString(startShard) {
			return nil, toolerr.NewValidationError("exclusive_start_shard_id", "is not a valid shard id")
		}
		a.ExclusiveStartShardID = startShard
	}

	a.RegionName, _, err = stringArg(raw, "region_name")
	return a, err
}

func decodeGetShardIteratorArgs(raw map[string]interface{}) (*GetShardIteratorArgs, error) {
	a := &GetShardIteratorArgs{}

	shardID, ok, err := stringArg(raw, "shard_id")
	if err != nil {
		return nil, err
	}
	if !ok || shardID == "" {
		return nil, toolerr.NewValidationError("shard_id", "is required")
	}
	if len(shardID) > config.MaxShardIDLength {
		return nil, toolerr.NewValidationError("shard_id", "length must be between 1 and %d characters", config.MaxShardIDLength)
	}
	if !shardIDPattern.MatchString(shardID) {
		return nil, toolerr.NewValidationError("shard_id", "can only contain alphanumeric characters, underscores, periods, and hyphens")
	}
	a.ShardID = shardID

	iterType, ok, err := stringArg(raw, "shard_iterator_type")
	if err != nil {
		return nil, err
	}
	if !ok || iterType == "" {
		return nil, toolerr.NewValidationError("shard_iterator_type", "is required")
	}
	if !shardIteratorTypes[iterType] {
		return nil, toolerr.NewValidationError("shard_iterator_type",
			"must be one of %s", strings.Join(shardIteratorTypeNames(), ", "))
	}
	a.ShardIteratorType = iterType

	// Stream identifier is optional here: when absent the service applies its
	// own default resolution and this layer passes the call through.
	id, err := decodeIdentifier(raw)
	if err != nil {
		return nil, err
	}
	a.StreamIdentifier = id

	seq, hasSeq, err := stringArg(raw, "starting_sequence_number")
	if err != nil {
		return nil, err
	}
	if (iterType == AT_SEQUENCE_NUMBER || iterType == AFTER_SEQUENCE_NUMBER) && (!hasSeq || seq == "") {
		return nil, toolerr.NewValidationError("starting_sequence_number",
			"is required for %s and %s shard iterator types", AT_SEQUENCE_NUMBER, AFTER_SEQUENCE_NUMBER)
	}
	a.StartingSequenceNumber = seq

	ts, hasTS, err := timeArg(raw, "timestamp")
	if err != nil {
		return nil, err
	}
	if iterType == AT_TIMESTAMP && !hasTS {
		return nil, toolerr.NewValidationError("timestamp", "is required for %s shard iterator type", AT_TIMESTAMP)
	}
	a.Timestamp = ts

	a.RegionName, _, err = stringArg(raw, "region_name")
	return a, err
}

func decodeGetRecordsArgs(raw map[string]interface{}) (*GetRecordsArgs, error) {
	a := &GetRecordsArgs{}

	iter, ok, err := stringArg(raw, "shard_iterator")
	if err != nil {
		return nil, err
	}
	if !ok || iter == "" {
		return nil, toolerr.NewValidationError("shard_iterator", "is required")
	}
	if len(iter) > config.MaxShardIteratorLength {
		return nil, toolerr.NewValidationError("shard_iterator", "length must be between 1 and %d characters", config.MaxShardIteratorLength)
	}
	a.ShardIterator = ShardIterator(iter)

	if limit, ok, err := intArg(raw, "limit"); err != nil {
		return nil, err
	} else if ok {
		if limit < 1 || limit > config.MaxGetRecordsLimit {
			return nil, toolerr.NewValidationError("limit", "must be between 1 and %d", config.MaxGetRecordsLimit)
		}
		a.Limit = limit
	}

	arn, ok, err := stringArg(raw, "stream_arn")
	if err != nil {
		return nil, err
	}
	if ok && arn != "" {
		if err := validateStreamARN("stream_arn", arn); err != nil {
			return nil, err
		}
		a.StreamARN = arn
	}

	a.RegionName, _, err = stringArg(raw, "region_name")
	return a, err
}

func decodePutRecordsArgs(raw map[string]interface{}) (*PutRecordsArgs, error) {
	id, err := decodeIdentifier(raw)
	if err != nil {
		return nil, err
	}
	if !id.Resolvable() {
		return nil, toolerr.NewMissingIdentifierError(ToolPutRecords)
	}
	a := &PutRecordsArgs{StreamIdentifier: id}

	rawRecords, ok := raw["records"]
	if !ok || rawRecords == nil {
		return nil, toolerr.NewValidationError("records", "is required")
	}
	list, ok := rawRecords.([]interface{})
	if !ok {
		return nil, toolerr.NewValidationError("records", "must be a list")
	}
	if len(list) == 0 {
		return nil, toolerr.NewValidationError("records", "must not be empty")
	}
	if len(list) > config.MaxPutRecordsCount {
		return nil, toolerr.NewValidationError("records", "number of records must be between 1 and %d", config.MaxPutRecordsCount)
	}

	a.Records = make([]PutRecordEntry, 0, len(list))
	for i, item := range list {
		entry, ok := item.(map[string]interface{})
		if !ok {
			return nil, toolerr.NewValidationError(recordField(i, ""), "must be a map")
		}
		data, hasData, err := stringArg(entry, "data")
		if err != nil {
			return nil, toolerr.NewValidationError(recordField(i, "data"), "must be a string")
		}
		if !hasData || data == "" {
			return nil, toolerr.NewValidationError(recordField(i, "data"), "is required")
		}
		pk, hasPK, err := stringArg(entry, "partition_key")
		if err != nil {
			return nil, toolerr.NewValidationError(recordField(i, "partition_key"), "must be a string")
		}
		if !hasPK || pk == "" {
			return nil, toolerr.NewValidationError(recordField(i, "partition_key"), "is required")
		}
		ehk, _, err := stringArg(entry, "explicit_hash_key")
		if err != nil {
			return nil, err
		}
		a.Records = append(a.Records, PutRecordEntry{
			Data:            data,
			PartitionKey:    pk,
			ExplicitHashKey: ehk,
		})
	}

	a.RegionName, _, err = stringArg(raw, "region_name")
	return a, err
}

func decodeListShardsArgs(raw map[string]interface{}) (*ListShardsArgs, error) {
	id, err := decodeIdentifier(raw)
	if err != nil {
		return nil, err
	}
	a := &ListShardsArgs{StreamIdentifier: id}

	token, _, err := stringArg(raw, "next_token")
	if err != nil {
		return nil, err
	}
	a.NextToken = PaginationToken(token)

	// A continuation token already encodes the stream, so the identifier is
	// only mandatory on the first page.
	if !id.Resolvable() && a.NextToken == "" {
		return nil, toolerr.NewMissingIdentifierError(ToolListShards)
	}

	startShard, ok, err := stringArg(raw, "exclusive_start_shard_id")
	if err != nil {
		return nil, err
	}
	if ok && startShard != "" {
		if len(startShard) > config.MaxShardIDLength || !shardIDPattern.MatchString(startShard) {
			return nil, toolerr.NewValidationError("exclusive_start_shard_id", "is not a valid shard id")
		}
		a.ExclusiveStartShardID = startShard
	}

	if max, ok, err := intArg(raw, "max_results"); err != nil {
		return nil, err
	} else if ok {
		if max < 1 || max > config.MaxListShardsResults {
			return nil, toolerr.NewValidationError("max_results", "must be between 1 and %d", config.MaxListShardsResults)
		}
		a.MaxResults = max
	}

	a.RegionName, _, err = stringArg(raw, "region_name")
	return a, err
}

func decodeAddTagsToStreamArgs(raw map[string]interface{}) (*AddTagsToStreamArgs, error) {
	id, err := decodeIdentifier(raw)
	if err != nil {
		return nil, err
	}
	if !id.Resolvable() {
		return nil, toolerr.NewMissingIdentifierError(ToolAddTagsToStream)
	}
	a := &AddTagsToStreamArgs{StreamIdentifier: id}

	tags, ok, err := stringMapArg(raw, "tags")
	if err != nil {
		return nil, err
	}
	if !ok || len(tags) == 0 {
		return nil, toolerr.NewValidationError("tags", "is required")
	}
	if err := validateTags(tags); err != nil {
		return nil, err
	}
	a.Tags = tags

	a.RegionName, _, err = stringArg(raw, "region_name")
	return a, err
}

func decodeListTagsForStreamArgs(raw map[string]interface{}) (*ListTagsForStreamArgs, error) {
	id, err := decodeIdentifier(raw)
	if err != nil {
		return nil, err
	}
	if !id.Resolvable() {
		return nil, toolerr.NewMissingIdentifierError(ToolListTagsForStream)
	}
	a := &ListTagsForStreamArgs{StreamIdentifier: id}

	startKey, ok, err := stringArg(raw, "exclusive_start_tag_key")
	if err != nil {
		return nil, err
	}
	if ok && startKey != "" {
		if len(startKey) > config.MaxTagKeyLength {
			return nil, toolerr.NewValidationError("exclusive_start_tag_key",
				"length must be between 1 and %d characters", config.MaxTagKeyLength)
		}
		a.ExclusiveStartTagKey = startKey
	}

	if limit, ok, err := intArg(raw, "limit"); err != nil {
		return nil, err
	} else if ok {
		if limit < 1 || limit > config.MaxListTagsLimit {
			return nil, toolerr.NewValidationError("limit", "must be between 1 and %d", config.MaxListTagsLimit)
		}
		a.Limit = limit
	}

	a.RegionName, _, err = stringArg(raw, "region_name")
	return a, err
}

func shardIteratorTypeNames() []string {
	return []string{AT_SEQUENCE_NUMBER, AFTER_SEQUENCE_NUMBER, TRIM_HORIZON, LATEST, AT_TIMESTAMP}
}

func recordField(index int, sub string) string {
	if sub == "" {
		return fmt.Sprintf("records[%d]", index)
	}
	return fmt.Sprintf("records[%d].%s", index, sub)
}
