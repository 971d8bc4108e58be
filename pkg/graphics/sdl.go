// Package graphics creates a hidden window owning an OpenGL 3.3 core
// context, enough to drive the GL state without showing anything.
package graphics

import (
	"fmt"
	"unsafe"

	"github.com/giongto35/gfxstate/pkg/thread"
	"github.com/veandco/go-sdl2/sdl"
)

type SDL struct {
	w   *sdl.Window
	ctx sdl.GLContext
}

type Config struct {
	W, H           int32
	GLVersionMajor int
	GLVersionMinor int
	GLHasDepth     bool
	GLHasStencil   bool
}

// NewSDLContext creates the window and makes its context current on the
// calling thread. The caller must keep the goroutine locked to its thread.
func NewSDLContext(cfg Config) (*SDL, error) {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("sdl: %w", err)
	}
	if err := setGLAttrs(cfg); err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("gl attributes: %w", err)
	}

	var (
		w   *sdl.Window
		ctx sdl.GLContext
		err error
	)
	// window and context creation must happen in the main thread on macOS
	thread.MainMaybe(func() {
		w, err = sdl.CreateWindow("gfxprobe", sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
			cfg.W, cfg.H, sdl.WINDOW_OPENGL|sdl.WINDOW_HIDDEN)
		if err != nil {
			err = fmt.Errorf("window: %w", err)
			return
		}
		if ctx, err = w.GLCreateContext(); err != nil {
			err1 := w.Destroy()
			err = fmt.Errorf("gl context: %w, destroy err: %v", err, err1)
		}
	})
	if err != nil {
		sdl.Quit()
		return nil, err
	}

	s := &SDL{w: w, ctx: ctx}
	if err = s.BindContext(); err != nil {
		_ = s.Deinit()
		return nil, fmt.Errorf("gl bind: %w", err)
	}
	return s, nil
}

func setGLAttrs(cfg Config) error {
	major, minor := cfg.GLVersionMajor, cfg.GLVersionMinor
	if major == 0 {
		major, minor = 3, 3
	}
	attrs := [][2]int{
		{sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE},
		{sdl.GL_CONTEXT_MAJOR_VERSION, major},
		{sdl.GL_CONTEXT_MINOR_VERSION, minor},
	}
	if cfg.GLHasDepth {
		attrs = append(attrs, [2]int{sdl.GL_DEPTH_SIZE, 24})
	}
	if cfg.GLHasStencil {
		attrs = append(attrs, [2]int{sdl.GL_STENCIL_SIZE, 8})
	}
	for _, a := range attrs {
		if err := sdl.GLSetAttribute(sdl.GLattr(a[0]), a[1]); err != nil {
			return err
		}
	}
	return nil
}

func (s *SDL) Deinit() error {
	var err error
	thread.MainMaybe(func() {
		sdl.GLDeleteContext(s.ctx)
		err = s.w.Destroy()
	})
	sdl.Quit()
	return err
}

func (s *SDL) BindContext() error { return s.w.GLMakeCurrent(s.ctx) }

func GlProcAddress(proc string) unsafe.Pointer { return sdl.GLGetProcAddress(proc) }
