package monitoring

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"

	"github.com/giongto35/gfxstate/pkg/config"
	"github.com/giongto35/gfxstate/pkg/logger"
)

func TestMetricsEndpoint(t *testing.T) {
	reg, err := NewRegistry(NewCollector(stats{Uploads: 12}, "gfx"))
	if err != nil {
		t.Fatal(err)
	}
	m := New(config.Monitoring{Port: 0, URLPrefix: "/gfx", MetricEnabled: true}, reg, logger.Nop())
	if err := m.Run(); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = m.Shutdown(context.Background()) }()

	_, port, err := net.SplitHostPort(m.Addr())
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%s%s", port, m.MetricsPath()))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(body), "gfx_uploads_total 12") {
		t.Errorf("no upload counter in\n%s", body)
	}
	if !strings.Contains(string(body), "go_goroutines") {
		t.Error("no runtime metrics")
	}
}

func TestProfilingDisabled(t *testing.T) {
	reg, _ := NewRegistry(NewCollector(stats{}, "gfx"))
	m := New(config.Monitoring{Port: 0, MetricEnabled: true}, reg, logger.Nop())
	if err := m.Run(); err != nil {
		t.Fatal(err)
	}
	defer func() { _ = m.Shutdown(context.Background()) }()

	_, port, _ := net.SplitHostPort(m.Addr())
	resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%s/debug/pprof/", port))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("pprof answered %d", resp.StatusCode)
	}
}
