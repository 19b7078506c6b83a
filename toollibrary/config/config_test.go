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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig(t *testing.T) {
	cfg := NewToolServerConfig("kinesis_tool_server", "us-west-2").
		WithSafetyMode(READ_WRITE).
		WithMaxRetries(5).
		WithRetryBackoffMillis(50).
		WithRequestTimeoutMillis(10000).
		WithKinesisEndpoint("http://localhost:4566")

	assert.Equal(t, "kinesis_tool_server", cfg.ServerName)
	assert.Equal(t, "us-west-2", cfg.RegionName)
	assert.Equal(t, READ_WRITE, cfg.SafetyMode)
	assert.Equal(t, 5, cfg.MaxRetries)
	assert.Equal(t, 50, cfg.RetryBackoffMillis)
	assert.Equal(t, 10000, cfg.RequestTimeoutMillis)
	assert.Equal(t, "http://localhost:4566", cfg.KinesisEndpoint)
	assert.NotNil(t, cfg.Logger)
}

func TestConfigDefaults(t *testing.T) {
	cfg := NewToolServerConfig("kinesis_tool_server", "")

	assert.Equal(t, DefaultRegionName, cfg.RegionName)
	assert.Equal(t, READ_ONLY, cfg.SafetyMode, "server must start read-only unless told otherwise")
	assert.Equal(t, DefaultMaxRetries, cfg.MaxRetries)
	assert.Equal(t, DefaultRetryBackoffMillis, cfg.RetryBackoffMillis)
	assert.Equal(t, DefaultRequestTimeoutMillis, cfg.RequestTimeoutMillis)
}

func TestConfigInvalidSafetyModeFallsBackToReadOnly(t *testing.T) {
	cfg := NewToolServerConfig("kinesis_tool_server", "us-west-2").WithSafetyMode(SafetyMode(42))

	assert.Equal(t, READ_ONLY, cfg.SafetyMode)
}

func TestSafetyModeString(t *testing.T) {
	assert.Equal(t, "READ_ONLY", READ_ONLY.String())
	assert.Equal(t, "READ_WRITE", READ_WRITE.String())
	assert.Equal(t, "UNKNOWN", SafetyMode(0).String())
}
