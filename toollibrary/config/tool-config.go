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

	"github.com/vmware/vmware-go-kinesis-tools/logger"
	"github.com/vmware/vmware-go-kinesis-tools/toollibrary/metrics"
)

// NewToolServerConfig creates a default ToolServerConfiguration based on the required fields.
// The server starts in READ_ONLY mode; opt into writes with WithSafetyMode(READ_WRITE).
func NewToolServerConfig(serverName, regionName string) *ToolServerConfiguration {
	checkIsValueNotEmpty("ServerName", serverName)

	if empty(regionName) {
		regionName = DefaultRegionName
	}

	// populate the tool server configuration with default values
	return &ToolServerConfiguration{
		ServerName:           serverName,
		RegionName:           regionName,
		SafetyMode:           READ_ONLY,
		MaxRetries:           DefaultMaxRetries,
		RetryBackoffMillis:   DefaultRetryBackoffMillis,
		RequestTimeoutMillis: DefaultRequestTimeoutMillis,
		Logger:               logger.GetDefaultLogger(),
	}
}

// WithSafetyMode sets the write policy for the lifetime of the process.
func (c *ToolServerConfiguration) WithSafetyMode(mode SafetyMode) *ToolServerConfiguration {
	if mode != READ_ONLY && mode != READ_WRITE {
		// Misconfigured write policy must not silently enable writes.
		mode = READ_ONLY
	}
	c.SafetyMode = mode
	return c
}

// WithKinesisEndpoint is used to provide an alternative Kinesis endpoint
func (c *ToolServerConfiguration) WithKinesisEndpoint(kinesisEndpoint string) *ToolServerConfiguration {
	c.KinesisEndpoint = kinesisEndpoint
	return c
}

// WithMaxRetries overrides the retry budget for transient service faults.
func (c *ToolServerConfiguration) WithMaxRetries(maxRetries int) *ToolServerConfiguration {
	checkIsValuePositive("MaxRetries", maxRetries)
	c.MaxRetries = maxRetries
	return c
}

// WithRetryBackoffMillis overrides the base backoff between retry attempts.
func (c *ToolServerConfiguration) WithRetryBackoffMillis(backoffMillis int) *ToolServerConfiguration {
	checkIsValuePositive("RetryBackoffMillis", backoffMillis)
	c.RetryBackoffMillis = backoffMillis
	return c
}

// WithRequestTimeoutMillis overrides the per-call deadline.
func (c *ToolServerConfiguration) WithRequestTimeoutMillis(timeoutMillis int) *ToolServerConfiguration {
	checkIsValuePositive("RequestTimeoutMillis", timeoutMillis)
	c.RequestTimeoutMillis = timeoutMillis
	return c
}

// WithLogger sets the logger for the tool server.
func (c *ToolServerConfiguration) WithLogger(logger logger.Logger) *ToolServerConfiguration {
	if logger == nil {
		log.Panicf("Logger cannot be null")
	}
	c.Logger = logger
	return c
}

// WithMonitoringService sets the monitoring service publishing per tool-call metrics.
func (c *ToolServerConfiguration) WithMonitoringService(mService metrics.MonitoringService) *ToolServerConfiguration {
	// Nil monitoring service is replaced with noop service by the dispatcher.
	c.MonitoringService = mService
	return c
}
