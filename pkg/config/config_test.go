package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

func TestDefaults(t *testing.T) {
	var conf Config
	if err := LoadConfigEnv(&conf); err != nil {
		t.Fatal(err)
	}
	if conf.Driver != "fake" || conf.Probe.Iterations != 100 || conf.State.TextureUnits != 48 {
		t.Errorf("got %+v", conf)
	}
	if conf.Monitoring.Port != 6601 || conf.Monitoring.IsEnabled() {
		t.Errorf("got %+v", conf.Monitoring)
	}
	if err := conf.Validate(); err != nil {
		t.Error(err)
	}
}

func TestConfigEnv(t *testing.T) {
	t.Setenv("GFX_PROBE_ITERATIONS", "7")
	t.Setenv("GFX_MONITORING_URL_PREFIX", "/gfx")

	conf, err := NewConfig(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if conf.Probe.Iterations != 7 {
		t.Errorf("iterations %d is not 7", conf.Probe.Iterations)
	}
	if conf.Monitoring.URLPrefix != "/gfx" {
		t.Errorf("prefix %q is not /gfx", conf.Monitoring.URLPrefix)
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	data := []byte("driver: gl33\nprobe:\n  width: 320\nstate:\n  thread_check: true\n")
	if err := os.WriteFile(filepath.Join(dir, FileName), data, 0o644); err != nil {
		t.Fatal(err)
	}

	conf, err := NewConfig(dir)
	if err != nil {
		t.Fatal(err)
	}
	if conf.Driver != "gl33" || conf.Probe.Width != 320 || !conf.State.ThreadCheck {
		t.Errorf("got %+v", conf)
	}
	// untouched values keep their defaults
	if conf.Probe.Height != 64 {
		t.Errorf("height %d is not 64", conf.Probe.Height)
	}
}

func TestFlags(t *testing.T) {
	conf := Config{Driver: "gl33", Probe: Probe{Iterations: 5, Width: 1, Height: 1}}
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	conf.WithFlags(fs)
	if err := fs.Parse([]string{"--iterations", "9", "--monitoring.metric", "-c", "somewhere"}); err != nil {
		t.Fatal(err)
	}
	if conf.Driver != "gl33" {
		t.Errorf("unset flag changed driver to %q", conf.Driver)
	}
	if conf.Probe.Iterations != 9 || !conf.Monitoring.MetricEnabled {
		t.Errorf("got %+v", conf)
	}
}

func TestConfPath(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{args: nil, want: ""},
		{args: []string{"--driver", "gl33"}, want: ""},
		{args: []string{"--conf", "/etc/gfx", "--debug"}, want: "/etc/gfx"},
		{args: []string{"--debug", "-c", "here"}, want: "here"},
	}
	for _, test := range tests {
		if got := ConfPath(test.args); got != test.want {
			t.Errorf("%v: got %q, want %q", test.args, got, test.want)
		}
	}
}

func TestValidate(t *testing.T) {
	ok := Config{Driver: "fake", Probe: Probe{Iterations: 1, Width: 1, Height: 1}}
	tests := []struct {
		name string
		mod  func(*Config)
		bad  bool
	}{
		{name: "ok", mod: func(*Config) {}},
		{name: "driver", mod: func(c *Config) { c.Driver = "vulkan" }, bad: true},
		{name: "iterations", mod: func(c *Config) { c.Probe.Iterations = 0 }, bad: true},
		{name: "size", mod: func(c *Config) { c.Probe.Width = 0 }, bad: true},
		{name: "units", mod: func(c *Config) { c.State.TextureUnits = -1 }, bad: true},
	}
	for _, test := range tests {
		c := ok
		test.mod(&c)
		if err := c.Validate(); (err != nil) != test.bad {
			t.Errorf("%s: got %v", test.name, err)
		}
	}
}
