package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

type Config struct {
	Driver string `default:"fake"`
	Debug  bool
	Probe  Probe
	State  State
	Log    Log
	// Monitoring of the state counters, the metrics stay served while
	// Hold is set.
	Monitoring Monitoring
	Hold       bool
}

type Probe struct {
	Iterations int   `default:"100"`
	Width      int32 `default:"64"`
	Height     int32 `default:"64"`
}

type State struct {
	TextureUnits int  `fig:"texture_units" default:"48"`
	ThreadCheck  bool `fig:"thread_check"`
}

type Log struct {
	// JSON switches from the console writer to plain JSON lines.
	JSON    bool `fig:"json"`
	NoColor bool `fig:"no_color"`
}

type Monitoring struct {
	Port             int    `default:"6601"`
	URLPrefix        string `fig:"url_prefix"`
	MetricEnabled    bool   `fig:"metric_enabled"`
	ProfilingEnabled bool   `fig:"profiling_enabled"`
}

func (c *Monitoring) IsEnabled() bool { return c.MetricEnabled || c.ProfilingEnabled }

// drivers are the accepted values of Driver.
var drivers = map[string]bool{"fake": true, "gl33": true}

// NewConfig loads the configuration from the dir of path or the default dirs.
func NewConfig(path string) (*Config, error) {
	var conf Config
	if err := LoadConfig(&conf, path); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &conf, nil
}

// WithFlags binds the flags over the loaded values: a flag left unset
// keeps what was loaded.
func (c *Config) WithFlags(fs *pflag.FlagSet) *Config {
	fs.StringP("conf", "c", "", "Set custom configuration file dir")
	fs.StringVar(&c.Driver, "driver", c.Driver, "Driver to probe: [fake, gl33]")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "Debug logs")
	fs.IntVar(&c.Probe.Iterations, "iterations", c.Probe.Iterations, "Cached rebinds per probe")
	fs.BoolVar(&c.State.ThreadCheck, "thread-check", c.State.ThreadCheck, "Check the calling thread on every state call")
	fs.BoolVar(&c.Monitoring.MetricEnabled, "monitoring.metric", c.Monitoring.MetricEnabled, "Serve prometheus metrics")
	fs.IntVar(&c.Monitoring.Port, "monitoring.port", c.Monitoring.Port, "Monitoring server port")
	fs.StringVar(&c.Monitoring.URLPrefix, "monitoring.prefix", c.Monitoring.URLPrefix, "Monitoring URL prefix")
	fs.BoolVar(&c.Hold, "hold", c.Hold, "Keep serving metrics until interrupted")
	return c
}

// Validate checks the values no default could fix.
func (c *Config) Validate() error {
	if !drivers[c.Driver] {
		return fmt.Errorf("unknown driver %q", c.Driver)
	}
	if c.Probe.Iterations < 1 {
		return fmt.Errorf("iterations must be positive, got %d", c.Probe.Iterations)
	}
	if c.Probe.Width < 1 || c.Probe.Height < 1 {
		return fmt.Errorf("bad probe size %dx%d", c.Probe.Width, c.Probe.Height)
	}
	if c.State.TextureUnits < 0 {
		return fmt.Errorf("texture units must not be negative, got %d", c.State.TextureUnits)
	}
	return nil
}

// ConfPath returns the --conf flag value without touching the other flags.
func ConfPath(args []string) string {
	var path string
	fs := pflag.NewFlagSet("conf", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.Usage = func() {}
	fs.StringVarP(&path, "conf", "c", "", "Set custom configuration file dir")
	_ = fs.Parse(args)
	return path
}
