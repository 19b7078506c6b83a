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
package prometheus

import (
	"net/http"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vmware/vmware-go-kinesis-tools/logger"
)

// MonitoringService publishes tool server metrics to Prometheus.
type MonitoringService struct {
	listenAddress string
	namespace     string
	region        string
	logger        logger.Logger

	toolCalls    *prom.CounterVec
	toolErrors   *prom.CounterVec
	toolDenied   *prom.CounterVec
	dispatchTime *prom.HistogramVec
}

// NewMonitoringService returns a monitoring service publishing metrics to Prometheus.
func NewMonitoringService(listenAddress string, logger logger.Logger) *MonitoringService {
	return &MonitoringService{
		listenAddress: listenAddress,
		logger:        logger,
	}
}

func (p *MonitoringService) Init(serverName, region string) error {
	p.namespace = serverName
	p.region = region

	p.toolCalls = prom.NewCounterVec(prom.CounterOpts{
		Name: p.namespace + `_tool_calls`,
		Help: "Number of tool calls dispatched",
	}, []string{"tool"})
	p.toolErrors = prom.NewCounterVec(prom.CounterOpts{
		Name: p.namespace + `_tool_errors`,
		Help: "Number of tool calls that ended in an error, by error kind",
	}, []string{"tool", "kind"})
	p.toolDenied = prom.NewCounterVec(prom.CounterOpts{
		Name: p.namespace + `_tool_denied`,
		Help: "Number of mutating tool calls blocked by the read-only gate",
	}, []string{"tool"})
	p.dispatchTime = prom.NewHistogramVec(prom.HistogramOpts{
		Name: p.namespace + `_dispatch_duration_seconds`,
		Help: "The time taken to validate, authorize, execute and shape a tool call",
	}, []string{"tool"})

	metrics := []prom.Collector{
		p.toolCalls,
		p.toolErrors,
		p.toolDenied,
		p.dispatchTime,
	}
	for _, metric := range metrics {
		err := prom.Register(metric)
		if err != nil {
			return err
		}
	}

	return nil
}

func (p *MonitoringService) Start() error {
	http.Handle("/metrics", promhttp.Handler())
	go func() {
		p.logger.Infof("Starting Prometheus listener on %s", p.listenAddress)
		err := http.ListenAndServe(p.listenAddress, nil)
		if err != nil {
			p.logger.Errorf("Error starting Prometheus metrics endpoint. %+v", err)
		}
		p.logger.Infof("Stopped metrics server")
	}()

	return nil
}

func (p *MonitoringService) Shutdown() {}

func (p *MonitoringService) IncrToolCalls(tool string) {
	p.toolCalls.With(prom.Labels{"tool": tool}).Inc()
}

func (p *MonitoringService) IncrToolErrors(tool string, kind string) {
	p.toolErrors.With(prom.Labels{"tool": tool, "kind": kind}).Inc()
}

func (p *MonitoringService) IncrToolDenied(tool string) {
	p.toolDenied.With(prom.Labels{"tool": tool}).Inc()
}

func (p *MonitoringService) RecordDispatchTime(tool string, millis float64) {
	p.dispatchTime.With(prom.Labels{"tool": tool}).Observe(millis / 1000)
}
