/*
Copyright IBM Corp All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package operations

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	kitstatsd "github.com/go-kit/kit/metrics/statsd"
	"github.com/gmsuite/gmsuite/bccsp"
	"github.com/gmsuite/gmsuite/bccsp/factory"
	"github.com/gmsuite/gmsuite/common/flogging"
	logmetrics "github.com/gmsuite/gmsuite/common/flogging/metrics"
	"github.com/gmsuite/gmsuite/common/metadata"
	"github.com/gmsuite/gmsuite/common/metrics"
	"github.com/gmsuite/gmsuite/common/metrics/disabled"
	"github.com/gmsuite/gmsuite/common/metrics/goruntime"
	"github.com/gmsuite/gmsuite/common/metrics/prometheus"
	"github.com/gmsuite/gmsuite/common/metrics/statsd"
	"github.com/pkg/errors"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Logger interface {
	Warn(args ...interface{})
	Warnf(template string, args ...interface{})
}

type Statsd struct {
	Network       string
	Address       string
	WriteInterval time.Duration
	Prefix        string
}

type MetricsOptions struct {
	Provider string
	Statsd   *Statsd
}

type Options struct {
	Logger  Logger
	Metrics MetricsOptions
	Version string

	// Registry collects the prometheus metrics. The prometheus default
	// registry is used when nil.
	Registry *prom.Registry
}

// System owns the metrics provider of the process and the handlers that
// expose it. The BCCSP factories are initialized with its provider so that
// provider operations are counted.
type System struct {
	metrics.Provider

	logger          Logger
	options         Options
	mux             *http.ServeMux
	statsd          *kitstatsd.Statsd
	collectorTicker *time.Ticker
	sendTicker      *time.Ticker
	versionGauge    metrics.Gauge
	prevObserver    flogging.Observer
}

func NewSystem(o Options) *System {
	logger := o.Logger
	if logger == nil {
		logger = flogging.MustGetLogger("operations.runner")
	}
	if o.Version == "" {
		o.Version = metadata.Version
	}

	system := &System{
		logger:  logger,
		options: o,
		mux:     http.NewServeMux(),
	}

	system.initializeLoggingHandler()
	system.initializeMetricsProvider()
	system.initializeVersionInfoHandler()

	return system
}

// Handler serves /logspec, /version and, with the prometheus provider,
// /metrics.
func (s *System) Handler() http.Handler {
	return s.mux
}

func (s *System) Start() error {
	err := s.startMetricsTickers()
	if err != nil {
		return err
	}

	s.versionGauge.With("version", s.options.Version).Set(1)
	s.prevObserver = flogging.SetObserver(logmetrics.NewObserver(s.Provider))

	return nil
}

func (s *System) Stop() error {
	if s.collectorTicker != nil {
		s.collectorTicker.Stop()
		s.collectorTicker = nil
	}
	if s.sendTicker != nil {
		s.sendTicker.Stop()
		s.sendTicker = nil
	}
	flogging.SetObserver(s.prevObserver)
	s.prevObserver = nil
	return nil
}

// InitFactories initializes the BCCSP factories with the metrics provider
// of the system.
func (s *System) InitFactories(opts *factory.FactoryOpts) (bccsp.BCCSP, error) {
	if err := factory.InitFactoriesWithMetrics(opts, s.Provider); err != nil {
		return nil, errors.WithMessage(err, "failed initializing BCCSP factories")
	}
	return factory.GetDefault(), nil
}

// Log satisfies the go-kit logger consumed by the statsd client.
func (s *System) Log(keyvals ...interface{}) error {
	s.logger.Warn(keyvals...)
	return nil
}

func (s *System) initializeMetricsProvider() {
	m := s.options.Metrics
	providerType := m.Provider
	switch providerType {
	case "statsd":
		prefix := ""
		if m.Statsd != nil {
			prefix = m.Statsd.Prefix
		}
		if prefix != "" && !strings.HasSuffix(prefix, ".") {
			prefix = prefix + "."
		}

		ks := kitstatsd.New(prefix, s)
		s.Provider = &statsd.Provider{Statsd: ks}
		s.statsd = ks

	case "prometheus":
		var registerer prom.Registerer = prom.DefaultRegisterer
		var gatherer prom.Gatherer = prom.DefaultGatherer
		if s.options.Registry != nil {
			registerer, gatherer = s.options.Registry, s.options.Registry
		}
		s.Provider = &prometheus.Provider{Registerer: registerer}
		s.mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	default:
		if providerType != "disabled" {
			s.logger.Warnf("Unknown provider type: %s; metrics disabled", providerType)
		}

		s.Provider = &disabled.Provider{}
	}

	s.versionGauge = s.Provider.NewGauge(versionGaugeOpts)
}

func (s *System) initializeLoggingHandler() {
	s.mux.Handle("/logspec", &LogSpecHandler{Logger: s.logger})
}

func (s *System) initializeVersionInfoHandler() {
	s.mux.Handle("/version", &VersionInfoHandler{
		Logger:    s.logger,
		CommitSHA: metadata.CommitSHA,
		Version:   s.options.Version,
	})
}

func (s *System) startMetricsTickers() error {
	m := s.options.Metrics
	if s.statsd == nil {
		return nil
	}
	if m.Statsd == nil {
		return errors.New("statsd metrics need a Statsd configuration")
	}

	network := m.Statsd.Network
	address := m.Statsd.Address
	c, err := net.Dial(network, address)
	if err != nil {
		return err
	}
	c.Close()

	writeInterval := m.Statsd.WriteInterval
	if writeInterval <= 0 {
		return errors.Errorf("invalid statsd write interval: %s", writeInterval)
	}

	s.collectorTicker = time.NewTicker(writeInterval / 2)
	goCollector := goruntime.NewCollector(s.Provider)
	go goCollector.CollectAndPublish(s.collectorTicker.C)

	s.sendTicker = time.NewTicker(writeInterval)
	go s.statsd.SendLoop(context.TODO(), s.sendTicker.C, network, address)

	return nil
}
