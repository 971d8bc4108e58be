// Package probe runs self-checks of the state cache against a live driver.
package probe

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/giongto35/gfxstate/pkg/buffer"
	"github.com/giongto35/gfxstate/pkg/config"
	"github.com/giongto35/gfxstate/pkg/driver"
	"github.com/giongto35/gfxstate/pkg/framebuffer"
	"github.com/giongto35/gfxstate/pkg/logger"
	"github.com/giongto35/gfxstate/pkg/state"
)

var ErrFailed = errors.New("probe failed")

type Result struct {
	Name     string
	Err      error
	Detail   string
	Duration time.Duration
}

func (r Result) Passed() bool { return r.Err == nil }

type Report struct {
	Results []Result
	Stats   state.Stats
}

func (r Report) Failed() int {
	n := 0
	for _, x := range r.Results {
		if !x.Passed() {
			n++
		}
	}
	return n
}

type scenario struct {
	name string
	run  func(st *state.State, conf config.Probe) (string, error)
}

var scenarios = []scenario{
	{name: "end-to-end", run: endToEnd},
	{name: "map round-trip", run: mapRoundTrip},
	{name: "cached rebinds", run: cachedRebinds},
	{name: "handle reuse", run: handleReuse},
	{name: "toggles", run: toggles},
	{name: "framebuffer recreate", run: framebufferRecreate},
}

// Run runs every scenario on st. It fails with ErrFailed when any of
// them did not pass; the report is complete either way.
func Run(st *state.State, conf config.Probe, log *logger.Logger) (Report, error) {
	log = log.Module("probe")
	var r Report
	for _, sc := range scenarios {
		start := time.Now()
		detail, err := protect(st, conf, sc.run)
		res := Result{Name: sc.name, Err: err, Detail: detail, Duration: time.Since(start)}
		r.Results = append(r.Results, res)

		ev := log.Info()
		if err != nil {
			ev = log.Error().Err(err)
		}
		ev.Str("probe", sc.name).Dur("took", res.Duration).Str("detail", detail).Msg("")
	}
	r.Stats = st.Stats()
	if n := r.Failed(); n > 0 {
		return r, fmt.Errorf("%d of %d: %w", n, len(r.Results), ErrFailed)
	}
	return r, nil
}

// protect turns a panic of a scenario into its error.
func protect(st *state.State, conf config.Probe, fn func(*state.State, config.Probe) (string, error)) (detail string, err error) {
	defer func() {
		if x := recover(); x != nil {
			err = fmt.Errorf("panic: %v", x)
		}
	}()
	return fn(st, conf)
}

func expect[T any](what string, got, want T) error {
	if !reflect.DeepEqual(got, want) {
		return fmt.Errorf("%s: got %v, want %v", what, got, want)
	}
	return nil
}

func endToEnd(st *state.State, _ config.Probe) (string, error) {
	buf, err := buffer.New[uint32](st, 4)
	if err != nil {
		return "", err
	}
	defer buf.Destroy()

	if err := buf.Set(2, 42); err != nil {
		return "", err
	}
	if err := expect("after set", buf.Whole(), []uint32{0, 0, 42, 0}); err != nil {
		return "", err
	}
	if err := buf.WriteWhole([]uint32{1, 2, 3, 4}); err != nil {
		return "", err
	}
	if err := expect("after write", buf.Whole(), []uint32{1, 2, 3, 4}); err != nil {
		return "", err
	}
	var few *buffer.TooFewValuesError
	if err := buf.WriteWhole([]uint32{1, 2, 3}); !errors.As(err, &few) {
		return "", fmt.Errorf("short write: got %v, want too few values", err)
	}
	if err := buf.Set(4, 1); err == nil {
		return "", errors.New("write past the end accepted")
	}
	return fmt.Sprintf("buffer %d", buf.Handle()), expect("after failed write", buf.Whole(), []uint32{1, 2, 3, 4})
}

func mapRoundTrip(st *state.State, _ config.Probe) (string, error) {
	buf, err := buffer.New[uint32](st, 4)
	if err != nil {
		return "", err
	}
	defer buf.Destroy()

	err = buf.Update(func(s []uint32) error {
		s[2] = 42
		return nil
	})
	if err != nil {
		return "", err
	}
	detail := "mirrored"
	if st.CanMap() {
		detail = "mapped"
	}
	return detail, expect("after release", buf.Whole(), []uint32{0, 0, 42, 0})
}

func cachedRebinds(st *state.State, conf config.Probe) (string, error) {
	buf, err := buffer.New[float32](st, 16)
	if err != nil {
		return "", err
	}
	defer buf.Destroy()

	st.InvalidateArrayBuffer()
	issued := 0
	for i := 0; i < conf.Iterations; i++ {
		if st.BindArrayBuffer(buf.Handle(), state.Cached) {
			issued++
		}
	}
	return fmt.Sprintf("%d binds, %d elided", conf.Iterations, conf.Iterations-issued),
		expect("issued binds", issued, 1)
}

func handleReuse(st *state.State, _ config.Probe) (string, error) {
	first, err := buffer.New[uint32](st, 1)
	if err != nil {
		return "", err
	}
	old := first.Handle()
	st.BindArrayBuffer(old, state.Cached)
	first.Destroy()

	// a bare handle, nothing bound it yet
	h, err := st.CreateBuffer()
	if err != nil {
		return "", err
	}
	defer st.DestroyBuffer(h)

	detail := fmt.Sprintf("handle %d not reused, got %d", old, h)
	if h == old {
		detail = fmt.Sprintf("handle %d reused", old)
	}
	return detail, expect("bind of the new buffer issued", st.BindArrayBuffer(h, state.Cached), true)
}

func toggles(st *state.State, _ config.Probe) (string, error) {
	alpha := driver.Blend(driver.Add, driver.SrcAlpha, driver.SrcAlphaComplement)
	depth := driver.DepthTest{Enabled: true, Comparison: driver.Less}
	set := func() {
		st.SetBlending(alpha)
		st.SetDepthTest(depth)
		st.SetDepthWrite(true)
	}

	set()
	before := st.Stats()
	set()
	after := st.Stats()
	st.SetBlending(driver.Blending{})
	st.SetDepthTest(driver.DepthTest{})

	return fmt.Sprintf("%d toggles elided", after.TogglesElided-before.TogglesElided),
		expect("toggles issued on repeat", after.TogglesIssued-before.TogglesIssued, uint64(0))
}

func framebufferRecreate(st *state.State, conf config.Probe) (string, error) {
	first, err := framebuffer.New(st, conf.Width, conf.Height)
	if err != nil {
		return "", err
	}
	old := first.Handle()
	first.Destroy()
	st.BindDrawFramebuffer(driver.DefaultFramebuffer, state.Cached)

	second, err := framebuffer.New(st, conf.Width, conf.Height)
	if err != nil {
		return "", err
	}
	defer second.Destroy()
	st.BindDrawFramebuffer(driver.DefaultFramebuffer, state.Cached)
	defer st.BindDrawFramebuffer(driver.DefaultFramebuffer, state.Cached)

	detail := fmt.Sprintf("%dx%d, handle %d then %d", conf.Width, conf.Height, old, second.Handle())
	if err := expect("bind of the recreated framebuffer issued", second.Bind(), true); err != nil {
		return detail, err
	}
	return detail, expect("second bind issued", second.Bind(), false)
}
