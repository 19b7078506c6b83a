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

// kinesis-tool-server exposes the Kinesis tool surface to an agent host over
// newline-delimited JSON on stdin/stdout. Each request carries a tool name
// and a flat argument map; the reply carries a shaped result or a structured
// error. Logs go to stderr so stdout stays a clean protocol channel.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/vmware/vmware-go-kinesis-tools/logger"
	"github.com/vmware/vmware-go-kinesis-tools/toollibrary/config"
	"github.com/vmware/vmware-go-kinesis-tools/toollibrary/metrics/prometheus"
	"github.com/vmware/vmware-go-kinesis-tools/toollibrary/service"
	"github.com/vmware/vmware-go-kinesis-tools/toollibrary/toolerr"
	"github.com/vmware/vmware-go-kinesis-tools/toollibrary/tools"
)

const serverName = "kinesis_tool_server"

// maxRequestBytes bounds a single request line; put_records batches carry
// payload data inline.
const maxRequestBytes = 8 * 1024 * 1024

type request struct {
	ID        interface{}            `json:"id"`
	Tool      string                 `json:"tool"`
	Arguments map[string]interface{} `json:"arguments"`
}

type response struct {
	ID     interface{}        `json:"id,omitempty"`
	Result interface{}        `json:"result,omitempty"`
	Error  *toolerr.ToolError `json:"error,omitempty"`
}

func main() {
	lr := logrus.New()
	lr.SetOutput(os.Stderr)
	lr.SetFormatter(&logrus.JSONFormatter{})
	if level, err := logrus.ParseLevel(envOr("KINESIS_TOOL_LOG_LEVEL", logger.Info)); err == nil {
		lr.SetLevel(level)
	}
	log := logger.NewLogrusLogger(lr)
	logger.SetDefaultLogger(log)

	cfg := config.NewToolServerConfig(serverName, os.Getenv("AWS_REGION")).
		WithSafetyMode(safetyModeFromEnv()).
		WithLogger(log)

	if endpoint := os.Getenv("KINESIS_TOOL_ENDPOINT"); endpoint != "" {
		cfg = cfg.WithKinesisEndpoint(endpoint)
	}

	if addr := os.Getenv("KINESIS_TOOL_METRICS_ADDR"); addr != "" {
		mService := prometheus.NewMonitoringService(addr, log)
		if err := mService.Init(serverName, cfg.RegionName); err != nil {
			log.Fatalf("Failed to initialize monitoring service: %+v", err)
		}
		if err := mService.Start(); err != nil {
			log.Fatalf("Failed to start monitoring service: %+v", err)
		}
		cfg = cfg.WithMonitoringService(mService)
	}

	svc, err := service.NewKinesisService(cfg)
	if err != nil {
		log.Fatalf("Failed to create Kinesis service: %+v", err)
	}
	dispatcher := tools.NewToolDispatcher(svc, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Infof("Starting %s in %s mode, default region %s, tools: %s",
		serverName, cfg.SafetyMode, cfg.RegionName, strings.Join(dispatcher.Tools(), ", "))

	serve(ctx, dispatcher, log)
	log.Infof("Shutting down %s", serverName)
}

func serve(ctx context.Context, dispatcher *tools.ToolDispatcher, log logger.Logger) {
	encoder := json.NewEncoder(os.Stdout)
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64*1024), maxRequestBytes)

	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var req request
		if err := json.Unmarshal([]byte(line), &req); err != nil {
			writeResponse(encoder, log, response{
				Error: toolerr.NewValidationError("request", "malformed JSON request: %v", err),
			})
			continue
		}

		result, err := dispatcher.Dispatch(ctx, req.Tool, req.Arguments)
		resp := response{ID: req.ID}
		if err != nil {
			if te, ok := toolerr.As(err); ok {
				resp.Error = te
			} else {
				resp.Error = toolerr.NewServiceError("InternalError", err.Error(), false)
			}
		} else {
			resp.Result = result
		}
		writeResponse(encoder, log, resp)
	}

	if err := scanner.Err(); err != nil {
		log.Errorf("Error reading requests: %+v", err)
	}
}

func writeResponse(encoder *json.Encoder, log logger.Logger, resp response) {
	if err := encoder.Encode(resp); err != nil {
		log.Errorf("Failed to write response: %+v", err)
	}
}

func safetyModeFromEnv() config.SafetyMode {
	switch strings.ToLower(os.Getenv("KINESIS_TOOL_READ_ONLY")) {
	case "false", "0", "no":
		return config.READ_WRITE
	default:
		return config.READ_ONLY
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
