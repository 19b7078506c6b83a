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
package config

import (
	"log"
	"strings"

	"github.com/vmware/vmware-go-kinesis-tools/logger"
	"github.com/vmware/vmware-go-kinesis-tools/toollibrary/metrics"
)

const (
	// READ_ONLY blocks every mutating tool. This is the startup default.
	READ_ONLY SafetyMode = iota + 1
	// READ_WRITE allows mutating tools (create_stream, put_records, add_tags_to_stream).
	READ_WRITE

	// The region used when neither the tool call nor the environment names one.
	DefaultRegionName = "us-west-2"

	// Default number of shards for create_stream in provisioned mode.
	DefaultShardCount = 1

	// Default page size for list_streams.
	DefaultListStreamsLimit = 100

	// Max records to fetch from Kinesis in a single get_records call.
	DefaultGetRecordsLimit = 10000

	// Number of attempts for transient service faults before giving up.
	DefaultMaxRetries = 3

	// Base backoff between retry attempts. Grows exponentially per attempt.
	DefaultRetryBackoffMillis = 100

	// Upper bound on a single remote call including retries of the transport.
	DefaultRequestTimeoutMillis = 30000

	// Service-side limits enforced before dispatch. Values mirror the
	// published Kinesis quotas so that bad calls fail locally.
	MaxStreamNameLength    = 128
	MaxStreamARNLength     = 2048
	MaxShardIDLength       = 128
	MaxShardIteratorLength = 512
	MaxListStreamsLimit    = 10000
	MaxGetRecordsLimit     = 10000
	MaxListShardsResults   = 10000
	MaxDescribeStreamLimit = 10000
	MaxListTagsLimit       = 10000
	MaxPutRecordsCount     = 500
	MaxShardCount          = 500
	MaxTagsCount           = 50
	MaxTagKeyLength        = 128
	MaxTagValueLength      = 256
)

type (
	// SafetyMode is the process-wide write policy. It is fixed at
	// construction time and never toggled at runtime.
	SafetyMode int

	// ToolServerConfiguration carries everything the dispatcher and the
	// Kinesis service adapter need. Construct it with NewToolServerConfig
	// and refine it with the With* setters before wiring components.
	ToolServerConfiguration struct {
		// ServerName identifies this tool server in logs and metrics.
		ServerName string

		// RegionName is the fallback region when a tool call carries no
		// region_name and the environment declares none.
		RegionName string

		// SafetyMode gates mutating tools. Defaults to READ_ONLY.
		SafetyMode SafetyMode

		// KinesisEndpoint is an optional endpoint URL that overrides the default
		// generated endpoint for a Kinesis client. If this is empty, the default
		// generated endpoint will be used.
		KinesisEndpoint string

		// MaxRetries bounds the retry loop for transient service faults.
		MaxRetries int

		// RetryBackoffMillis is the base delay between retry attempts.
		RetryBackoffMillis int

		// RequestTimeoutMillis bounds each remote call.
		RequestTimeoutMillis int

		// Logger used to log messages.
		Logger logger.Logger

		// MonitoringService publishes per tool-call metrics.
		MonitoringService metrics.MonitoringService
	}
)

func (m SafetyMode) String() string {
	switch m {
	case READ_ONLY:
		return "READ_ONLY"
	case READ_WRITE:
		return "READ_WRITE"
	default:
		return "UNKNOWN"
	}
}

func empty(s string) bool {
	return len(strings.TrimSpace(s)) == 0
}

// checkIsValueNotEmpty makes sure the value is not empty.
func checkIsValueNotEmpty(key string, value string) {
	if empty(value) {
		// There is no point to continue for incorrect configuration. Fail fast!
		log.Panicf("Non-empty value expected for %v, actual: %v", key, value)
	}
}

// checkIsValuePositive makes sure the value is positive.
func checkIsValuePositive(key string, value int) {
	if value <= 0 {
		// There is no point to continue for incorrect configuration. Fail fast!
		log.Panicf("Positive value expected for %v, actual: %v", key, value)
	}
}
