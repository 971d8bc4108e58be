package monitoring

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/giongto35/gfxstate/pkg/config"
	"github.com/giongto35/gfxstate/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Monitoring struct {
	conf     config.Monitoring
	registry *prometheus.Registry
	server   *http.Server
	listener net.Listener
	log      *logger.Logger
}

// New creates new monitoring service serving the collectors of reg.
func New(conf config.Monitoring, reg *prometheus.Registry, log *logger.Logger) *Monitoring {
	m := &Monitoring{conf: conf, registry: reg, log: log.Module("monitoring")}
	m.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", conf.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}
	m.server.Handler = m.handler()
	return m
}

// NewRegistry returns a registry with the Go runtime collectors and c.
func NewRegistry(c prometheus.Collector) (*prometheus.Registry, error) {
	reg := prometheus.NewRegistry()
	for _, x := range []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c,
	} {
		if err := reg.Register(x); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func (m *Monitoring) handler() http.Handler {
	h := http.NewServeMux()
	if m.conf.ProfilingEnabled {
		prefix := fmt.Sprintf("%s/debug/pprof", m.conf.URLPrefix)
		m.log.Info().Msgf("Profiling is enabled at %v", m.server.Addr+prefix)
		h.HandleFunc(prefix+"/", pprof.Index)
		h.HandleFunc(prefix+"/cmdline", pprof.Cmdline)
		h.HandleFunc(prefix+"/profile", pprof.Profile)
		h.HandleFunc(prefix+"/symbol", pprof.Symbol)
		h.HandleFunc(prefix+"/trace", pprof.Trace)
		// named profiles are not reachable through Index under a custom prefix
		for _, name := range []string{"allocs", "block", "goroutine", "heap", "mutex", "threadcreate"} {
			h.Handle(prefix+"/"+name, pprof.Handler(name))
		}
	}
	if m.conf.MetricEnabled {
		path := m.MetricsPath()
		m.log.Info().Msgf("Prometheus metric is enabled at %v", m.server.Addr+path)
		h.Handle(path, promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	}
	return h
}

func (m *Monitoring) MetricsPath() string { return m.conf.URLPrefix + "/metrics" }

// Run starts listening and serves in the background.
func (m *Monitoring) Run() error {
	l, err := net.Listen("tcp", m.server.Addr)
	if err != nil {
		return fmt.Errorf("monitoring listen: %w", err)
	}
	m.listener = l
	m.log.Info().Msgf("Starting monitoring server at %v", l.Addr())
	go func() {
		if err := m.server.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			m.log.Error().Err(err).Msg("monitoring server")
		}
	}()
	return nil
}

// Addr returns the address listened on, empty before Run.
func (m *Monitoring) Addr() string {
	if m.listener == nil {
		return ""
	}
	return m.listener.Addr().String()
}

func (m *Monitoring) Shutdown(ctx context.Context) error {
	m.log.Info().Msg("Shutting down monitoring server")
	return m.server.Shutdown(ctx)
}

func (m *Monitoring) String() string {
	return fmt.Sprintf("monitoring::%s:%d", m.conf.URLPrefix, m.conf.Port)
}
