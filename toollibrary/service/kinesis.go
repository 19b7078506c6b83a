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

// Package service implements the typed Kinesis facade behind the tool
// dispatcher. It owns region resolution, bounded retry of transient faults
// and translation of AWS fault codes into the toolerr taxonomy. Credentials
// come exclusively from the ambient SDK provider chain and are never stored
// or logged here.
package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/kinesis"
	"github.com/aws/aws-sdk-go/service/kinesis/kinesisiface"
	"github.com/matryer/try"

	"github.com/vmware/vmware-go-kinesis-tools/logger"
	"github.com/vmware/vmware-go-kinesis-tools/toollibrary/config"
	"github.com/vmware/vmware-go-kinesis-tools/toollibrary/toolerr"
	"github.com/vmware/vmware-go-kinesis-tools/toollibrary/tools"
)

// KinesisService implements tools.StreamService over the AWS SDK. It is
// stateless aside from the shared session and resolved defaults, which are
// immutable after construction, so concurrent tool calls never serialize on
// adapter state.
type KinesisService struct {
	defaultRegion  string
	endpoint       string
	maxRetries     int
	retryBackoff   time.Duration
	requestTimeout time.Duration
	logger         logger.Logger

	sess *session.Session
	kc   kinesisiface.KinesisAPI
}

// NewKinesisService creates the adapter from the tool server configuration.
// The session picks up credentials from the standard provider chain.
func NewKinesisService(cfg *config.ToolServerConfiguration) (*KinesisService, error) {
	awsConfig := aws.NewConfig().
		WithRegion(cfg.RegionName).
		WithMaxRetries(0) // retry policy lives in this adapter, not the SDK
	if cfg.KinesisEndpoint != "" {
		awsConfig = awsConfig.WithEndpoint(cfg.KinesisEndpoint)
	}

	sess, err := session.NewSessionWithOptions(session.Options{
		Config:            *awsConfig,
		SharedConfigState: session.SharedConfigEnable,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	// try.Do caps attempts globally; keep it above our own bound so the
	// original error is the one that surfaces.
	if try.MaxRetries < cfg.MaxRetries+1 {
		try.MaxRetries = cfg.MaxRetries + 1
	}

	return &KinesisService{
		defaultRegion:  cfg.RegionName,
		endpoint:       cfg.KinesisEndpoint,
		maxRetries:     cfg.MaxRetries,
		retryBackoff:   time.Duration(cfg.RetryBackoffMillis) * time.Millisecond,
		requestTimeout: time.Duration(cfg.RequestTimeoutMillis) * time.Millisecond,
		logger:         cfg.Logger,
		sess:           sess,
	}, nil
}

// WithKinesis is used to provide a Kinesis service for either custom
// implementation or unit testing. The override is used for every region.
func (s *KinesisService) WithKinesis(svc kinesisiface.KinesisAPI) *KinesisService {
	s.kc = svc
	return s
}

// resolveRegion applies the documented precedence: per-call argument, then
// the environment, then the configured default.
func (s *KinesisService) resolveRegion(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if region := os.Getenv("AWS_REGION"); region != "" {
		return region
	}
	if region := os.Getenv("AWS_DEFAULT_REGION"); region != "" {
		return region
	}
	return s.defaultRegion
}

func (s *KinesisService) clientFor(region string) kinesisiface.KinesisAPI {
	if s.kc != nil {
		return s.kc
	}
	return kinesis.New(s.sess, aws.NewConfig().WithRegion(region))
}

func (s *KinesisService) CreateStream(ctx context.Context, args *tools.CreateStreamArgs) (*kinesis.CreateStreamOutput, error) {
	kc := s.clientFor(s.resolveRegion(args.RegionName))

	input := &kinesis.CreateStreamInput{
		StreamName: aws.String(args.StreamName),
	}
	if args.StreamMode != "" {
		input.StreamModeDetails = &kinesis.StreamModeDetails{StreamMode: aws.String(args.StreamMode)}
	}
	// On-demand streams scale themselves; a shard count is only meaningful
	// for provisioned capacity.
	if args.StreamMode != tools.STREAM_MODE_ON_DEMAND {
		input.ShardCount = aws.Int64(args.ShardCount)
	}

	var out *kinesis.CreateStreamOutput
	err := s.doCall(ctx, "CreateStream", func(callCtx aws.Context) error {
		var cerr error
		out, cerr = kc.CreateStreamWithContext(callCtx, input)
		return cerr
	})
	if err != nil {
		return nil, err
	}

	if len(args.Tags) > 0 {
		tagInput := &kinesis.AddTagsToStreamInput{
			StreamName: aws.String(args.StreamName),
			Tags:       aws.StringMap(args.Tags),
		}
		err = s.doCall(ctx, "AddTagsToStream", func(callCtx aws.Context) error {
			_, cerr := kc.AddTagsToStreamWithContext(callCtx, tagInput)
			return cerr
		})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *KinesisService) ListStreams(ctx context.Context, args *tools.ListStreamsArgs) (*kinesis.ListStreamsOutput, error) {
	kc := s.clientFor(s.resolveRegion(args.RegionName))

	input := &kinesis.ListStreamsInput{
		Limit: aws.Int64(args.Limit),
	}
	if args.ExclusiveStartStreamName != "" {
		input.ExclusiveStartStreamName = aws.String(args.ExclusiveStartStreamName)
	}
	if args.NextToken != "" {
		input.NextToken = aws.String(string(args.NextToken))
	}

	var out *kinesis.ListStreamsOutput
	err := s.doCall(ctx, "ListStreams", func(callCtx aws.Context) error {
		var cerr error
		out, cerr = kc.ListStreamsWithContext(callCtx, input)
		return cerr
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *KinesisService) DescribeStreamSummary(ctx context.Context, args *tools.DescribeStreamSummaryArgs) (*kinesis.DescribeStreamSummaryOutput, error) {
	kc := s.clientFor(s.resolveRegion(args.RegionName))

	input := &kinesis.DescribeStreamSummaryInput{}
	applyIdentifier(args.StreamIdentifier, &input.StreamName, &input.StreamARN)

	var out *kinesis.DescribeStreamSummaryOutput
	err := s.doCall(ctx, "DescribeStreamSummary", func(callCtx aws.Context) error {
		var cerr error
		out, cerr = kc.DescribeStreamSummaryWithContext(callCtx, input)
		return cerr
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *KinesisService) DescribeStream(ctx context.Context, args *tools.DescribeStreamArgs) (*kinesis.DescribeStreamOutput, error) {
	kc := s.clientFor(s.resolveRegion(args.RegionName))

	input := &kinesis.DescribeStreamInput{}
	applyIdentifier(args.StreamIdentifier, &input.StreamName, &input.StreamARN)
	if args.Limit > 0 {
		input.Limit = aws.Int64(args.Limit)
	}
	if args.ExclusiveStartShardID != "" {
		input.ExclusiveStartShardId = aws.String(args.ExclusiveStartShardID)
	}

	var out *kinesis.DescribeStreamOutput
	err := s.doCall(ctx, "DescribeStream", func(callCtx aws.Context) error {
		var cerr error
		out, cerr = kc.DescribeStreamWithContext(callCtx, input)
		return cerr
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *KinesisService) GetShardIterator(ctx context.Context, args *tools.GetShardIteratorArgs) (*kinesis.GetShardIteratorOutput, error) {
	kc := s.clientFor(s.resolveRegion(args.RegionName))

	input := &kinesis.GetShardIteratorInput{
		ShardId:           aws.String(args.ShardID),
		ShardIteratorType: aws.String(args.ShardIteratorType),
	}
	applyIdentifier(args.StreamIdentifier, &input.StreamName, &input.StreamARN)
	if args.StartingSequenceNumber != "" {
		input.StartingSequenceNumber = aws.String(args.StartingSequenceNumber)
	}
	if args.Timestamp != nil {
		input.Timestamp = args.Timestamp
	}

	var out *kinesis.GetShardIteratorOutput
	err := s.doCall(ctx, "GetShardIterator", func(callCtx aws.Context) error {
		var cerr error
		out, cerr = kc.GetShardIteratorWithContext(callCtx, input)
		return cerr
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *KinesisService) GetRecords(ctx context.Context, args *tools.GetRecordsArgs) (*kinesis.GetRecordsOutput, error) {
	kc := s.clientFor(s.resolveRegion(args.RegionName))

	input := &kinesis.GetRecordsInput{
		ShardIterator: aws.String(string(args.ShardIterator)),
	}
	if args.Limit > 0 {
		input.Limit = aws.Int64(args.Limit)
	}
	if args.StreamARN != "" {
		input.StreamARN = aws.String(args.StreamARN)
	}

	var out *kinesis.GetRecordsOutput
	err := s.doCall(ctx, "GetRecords", func(callCtx aws.Context) error {
		var cerr error
		out, cerr = kc.GetRecordsWithContext(callCtx, input)
		return cerr
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *KinesisService) PutRecords(ctx context.Context, args *tools.PutRecordsArgs) (*kinesis.PutRecordsOutput, error) {
	kc := s.clientFor(s.resolveRegion(args.RegionName))

	entries := make([]*kinesis.PutRecordsRequestEntry, 0, len(args.Records))
	for _, record := range args.Records {
		entry := &kinesis.PutRecordsRequestEntry{
			Data:         []byte(record.Data),
			PartitionKey: aws.String(record.PartitionKey),
		}
		if record.ExplicitHashKey != "" {
			entry.ExplicitHashKey = aws.String(record.ExplicitHashKey)
		}
		entries = append(entries, entry)
	}

	input := &kinesis.PutRecordsInput{Records: entries}
	applyIdentifier(args.StreamIdentifier, &input.StreamName, &input.StreamARN)

	var out *kinesis.PutRecordsOutput
	err := s.doCall(ctx, "PutRecords", func(callCtx aws.Context) error {
		var cerr error
		out, cerr = kc.PutRecordsWithContext(callCtx, input)
		return cerr
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *KinesisService) ListShards(ctx context.Context, args *tools.ListShardsArgs) (*kinesis.ListShardsOutput, error) {
	kc := s.clientFor(s.resolveRegion(args.RegionName))

	input := &kinesis.ListShardsInput{}
	if args.NextToken != "" {
		// The token already encodes the stream; sending an identifier next to
		// it is rejected by the service.
		input.NextToken = aws.String(string(args.NextToken))
	} else {
		applyIdentifier(args.StreamIdentifier, &input.StreamName, &input.StreamARN)
	}
	if args.ExclusiveStartShardID != "" {
		input.ExclusiveStartShardId = aws.String(args.ExclusiveStartShardID)
	}
	if args.MaxResults > 0 {
		input.MaxResults = aws.Int64(args.MaxResults)
	}

	var out *kinesis.ListShardsOutput
	err := s.doCall(ctx, "ListShards", func(callCtx aws.Context) error {
		var cerr error
		out, cerr = kc.ListShardsWithContext(callCtx, input)
		return cerr
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *KinesisService) AddTagsToStream(ctx context.Context, args *tools.AddTagsToStreamArgs) (*kinesis.AddTagsToStreamOutput, error) {
	kc := s.clientFor(s.resolveRegion(args.RegionName))

	input := &kinesis.AddTagsToStreamInput{
		Tags: aws.StringMap(args.Tags),
	}
	applyIdentifier(args.StreamIdentifier, &input.StreamName, &input.StreamARN)

	var out *kinesis.AddTagsToStreamOutput
	err := s.doCall(ctx, "AddTagsToStream", func(callCtx aws.Context) error {
		var cerr error
		out, cerr = kc.AddTagsToStreamWithContext(callCtx, input)
		return cerr
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *KinesisService) ListTagsForStream(ctx context.Context, args *tools.ListTagsForStreamArgs) (*kinesis.ListTagsForStreamOutput, error) {
	kc := s.clientFor(s.resolveRegion(args.RegionName))

	input := &kinesis.ListTagsForStreamInput{}
	applyIdentifier(args.StreamIdentifier, &input.StreamName, &input.StreamARN)
	if args.ExclusiveStartTagKey != "" {
		input.ExclusiveStartTagKey = aws.String(args.ExclusiveStartTagKey)
	}
	if args.Limit > 0 {
		input.Limit = aws.Int64(args.Limit)
	}

	var out *kinesis.ListTagsForStreamOutput
	err := s.doCall(ctx, "ListTagsForStream", func(callCtx aws.Context) error {
		var cerr error
		out, cerr = kc.ListTagsForStreamWithContext(callCtx, input)
		return cerr
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// applyIdentifier copies the stream identifier into the request. The ARN
// takes precedence when both are present.
func applyIdentifier(id tools.StreamIdentifier, name, arn **string) {
	if id.StreamARN != "" {
		*arn = aws.String(id.StreamARN)
		return
	}
	if id.StreamName != "" {
		*name = aws.String(id.StreamName)
	}
}

// doCall runs one remote operation with the per-call deadline and the bounded
// exponential backoff retry loop, then translates the terminal error.
func (s *KinesisService) doCall(ctx context.Context, op string, call func(aws.Context) error) error {
	timedOut := false

	err := try.Do(func(attempt int) (bool, error) {
		callCtx, cancel := context.WithTimeout(ctx, s.requestTimeout)
		defer cancel()

		cerr := call(callCtx)
		if cerr == nil {
			timedOut = false
			return false, nil
		}

		// A deadline on the per-call context is a transient fault; a cancel
		// on the parent context is the host giving up and must not retry.
		timedOut = callCtx.Err() == context.DeadlineExceeded && ctx.Err() == nil
		if (timedOut || isThrottleErr(cerr)) && attempt < s.maxRetries && ctx.Err() == nil {
			s.logger.Warnf("Retrying %s after transient failure (attempt %d): %v", op, attempt, cerr)
			// exponential backoff
			// https://docs.aws.amazon.com/amazondynamodb/latest/developerguide/Programming.Errors.html#Programming.Errors.RetryAndBackoff
			backoff := time.NewTimer(time.Duration(math.Exp2(float64(attempt))) * s.retryBackoff)
			select {
			case <-backoff.C:
				return true, cerr
			case <-ctx.Done():
				// Host gave up mid-backoff; surface the cancellation instead
				// of burning another attempt.
				backoff.Stop()
				timedOut = false
				return false, ctx.Err()
			}
		}
		return false, cerr
	})
	if err == nil {
		return nil
	}
	if timedOut {
		return toolerr.NewServiceTimeoutError(fmt.Sprintf("%s did not complete within %v", op, s.requestTimeout))
	}
	return s.translateError(ctx, err)
}

func (s *KinesisService) translateError(ctx context.Context, err error) error {
	if aerr, ok := err.(awserr.Error); ok {
		code := aerr.Code()
		if code == request.CanceledErrorCode {
			if ctx.Err() == context.DeadlineExceeded {
				return toolerr.NewServiceTimeoutError(aerr.Message())
			}
			return toolerr.NewCancelledError("call cancelled by host")
		}
		return toolerr.NewServiceError(code, aerr.Message(), isThrottleCode(code))
	}
	if errors.Is(err, context.Canceled) {
		return toolerr.NewCancelledError("call cancelled by host")
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return toolerr.NewServiceTimeoutError(err.Error())
	}
	// Transport-level failure without an AWS fault code.
	return toolerr.NewServiceError("TransportError", err.Error(), true)
}

func isThrottleErr(err error) bool {
	if aerr, ok := err.(awserr.Error); ok {
		return isThrottleCode(aerr.Code())
	}
	return false
}

func isThrottleCode(code string) bool {
	switch code {
	case kinesis.ErrCodeProvisionedThroughputExceededException,
		kinesis.ErrCodeLimitExceededException,
		kinesis.ErrCodeKMSThrottlingException,
		"ThrottlingException":
		return true
	}
	return false
}
