package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/giongto35/gfxstate/pkg/config"
	"github.com/giongto35/gfxstate/pkg/driver"
	"github.com/giongto35/gfxstate/pkg/driver/fake"
	"github.com/giongto35/gfxstate/pkg/driver/gl33"
	"github.com/giongto35/gfxstate/pkg/graphics"
	"github.com/giongto35/gfxstate/pkg/logger"
	"github.com/giongto35/gfxstate/pkg/monitoring"
	"github.com/giongto35/gfxstate/pkg/probe"
	"github.com/giongto35/gfxstate/pkg/state"
	"github.com/giongto35/gfxstate/pkg/thread"
	flag "github.com/spf13/pflag"
)

var Version = "?"

func run() int {
	conf, err := config.NewConfig(config.ConfPath(os.Args[1:]))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	conf.WithFlags(flag.CommandLine)
	flag.Parse()
	if err := conf.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 2
	}

	log := logger.NewConsole(conf.Debug, "probe", conf.Log.NoColor)
	if conf.Log.JSON {
		log = logger.New(conf.Debug)
	}
	log.Info().Msgf("version %s", Version)
	log.Debug().Msgf("conf: %+v", conf)

	drv, done, err := open(conf)
	if err != nil {
		log.Error().Err(err).Str("driver", conf.Driver).Msg("driver")
		return 1
	}
	defer done()
	if gl, ok := drv.(*gl33.Driver); ok {
		version, vendor, renderer := gl.Info()
		log.Info().Str("vendor", vendor).Str("renderer", renderer).Msgf("OpenGL %s", version)
	}

	opts := []state.Option{state.WithLogger(log), state.WithTextureUnits(conf.State.TextureUnits)}
	if conf.State.ThreadCheck {
		opts = append(opts, state.WithThreadCheck())
	}
	st, err := state.Acquire(drv, opts...)
	if err != nil {
		log.Error().Err(err).Msg("acquire")
		return 1
	}
	defer st.Release()

	if conf.Monitoring.IsEnabled() {
		reg, err := monitoring.NewRegistry(monitoring.NewCollector(st, "gfx"))
		if err != nil {
			log.Error().Err(err).Msg("metrics")
			return 1
		}
		mon := monitoring.New(conf.Monitoring, reg, log)
		if err := mon.Run(); err != nil {
			log.Error().Err(err).Msg("monitoring")
			return 1
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := mon.Shutdown(ctx); err != nil {
				log.Error().Err(err).Msg("monitoring shutdown")
			}
		}()
	}

	report, err := probe.Run(st, conf.Probe, log)
	s := report.Stats
	log.Info().
		Uint64("binds", s.BindsIssued).Uint64("binds_elided", s.BindsElided).
		Uint64("toggles", s.TogglesIssued).Uint64("toggles_elided", s.TogglesElided).
		Uint64("uploads", s.Uploads).Uint64("scrubs", s.Scrubs).
		Msgf("%d probes, %d failed", len(report.Results), report.Failed())

	if conf.Hold {
		signals := make(chan os.Signal, 1)
		signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
		log.Info().Msg("holding, interrupt to exit")
		sig := <-signals
		log.Info().Msgf("shutting down [os:%v]", sig)
	}

	if err != nil {
		return 1
	}
	return 0
}

// open returns the configured driver and its cleanup.
func open(conf *config.Config) (driver.Driver, func(), error) {
	switch conf.Driver {
	case "gl33":
		ctx, err := graphics.NewSDLContext(graphics.Config{
			W:              conf.Probe.Width,
			H:              conf.Probe.Height,
			GLVersionMajor: 3,
			GLVersionMinor: 3,
			GLHasDepth:     true,
		})
		if err != nil {
			return nil, nil, err
		}
		drv, err := gl33.New(graphics.GlProcAddress)
		if err != nil {
			_ = ctx.Deinit()
			return nil, nil, err
		}
		return drv, func() { _ = ctx.Deinit() }, nil
	default:
		return fake.NewMapping(), func() {}, nil
	}
}

func main() {
	code := 0
	// the context must stay current on one thread from creation to teardown
	thread.MainWrapMaybe(func() { thread.Pinned(func() { code = run() }) })
	os.Exit(code)
}
