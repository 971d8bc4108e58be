// Package state keeps a shadow copy of the bindings and fixed-function
// values of one graphics context, so that requests the driver already
// satisfies are never issued again.
//
// A State is thread-affine: Acquire pins the calling goroutine to its OS
// thread, and at most one State may be acquired per thread. Every object
// created under a State shares it; none of them may be used from another
// goroutine.
package state

import (
	"fmt"
	"runtime"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/giongto35/gfxstate/pkg/driver"
	"github.com/giongto35/gfxstate/pkg/logger"
	"github.com/giongto35/gfxstate/pkg/thread"
)

// MinTextureUnits is the number of combined texture units every
// OpenGL 3.3 implementation provides.
const MinTextureUnits = 48

// MinUniformBuffers is the number of uniform buffer bindings every WebGL2
// and OpenGL 3.3 implementation provides.
const MinUniformBuffers = 24

// acquired holds the ids of the threads owning a State.
var acquired = mapset.NewSet[int]()

type boundTexture struct {
	target driver.TextureTarget
	tex    driver.Texture
}

type stencilFunc struct {
	cmp  driver.Comparison
	ref  int32
	mask uint32
}

type State struct {
	drv    driver.Driver
	mapper driver.Mapper
	log    *logger.Logger

	tid      int
	strict   bool
	released bool
	units0   int
	// driver limits of texture units and uniform buffer bindings
	maxUnits    int
	maxUniforms int

	arrayBuffer        Slot[driver.Buffer]
	elementArrayBuffer Slot[driver.Buffer]
	uniformBuffers     []Slot[driver.Buffer]
	drawFramebuffer Slot[driver.Framebuffer]
	renderbuffer    Slot[driver.Renderbuffer]
	textureUnit     Slot[uint32]
	textureUnits    []Slot[boundTexture]

	blend        Slot[bool]
	blendEq      Slot[driver.BlendEquations]
	blendFactors Slot[driver.BlendFactors]
	depthTest    Slot[bool]
	depthCmp     Slot[driver.Comparison]
	depthWrite   Slot[bool]
	stencilTest  Slot[bool]
	stencilFunc  Slot[stencilFunc]
	stencilOps   Slot[driver.StencilOps]
	cullFace     Slot[bool]
	cullOrder    Slot[driver.Winding]
	cullMode     Slot[driver.Face]
	srgb         Slot[bool]
	restart      Slot[bool]
	viewport     Slot[[4]int32]
	clearColor   Slot[[4]float32]

	pool  []driver.Texture
	stats counters
}

type Option func(*State)

func WithLogger(l *logger.Logger) Option {
	return func(s *State) {
		if l != nil {
			s.log = l.Module("state")
		}
	}
}

// WithTextureUnits sets how many texture unit slots exist up front, at
// most the driver limit.
func WithTextureUnits(n int) Option { return func(s *State) { s.units0 = n } }

// WithThreadCheck makes every call verify it runs on the acquiring thread.
// It costs a syscall per call.
func WithThreadCheck() Option { return func(s *State) { s.strict = true } }

// Acquire creates the State of the context current on the calling thread.
//
// The calling goroutine stays locked to its OS thread until Release.
// A second Acquire on the same thread fails with *AcquisitionError.
// Outside of Linux and Windows there is no thread id to tell threads
// apart (see thread.ID), so there at most one State exists per process.
func Acquire(drv driver.Driver, opts ...Option) (*State, error) {
	runtime.LockOSThread()
	tid := thread.ID()
	if !acquired.Add(tid) {
		runtime.UnlockOSThread()
		return nil, &AcquisitionError{Thread: tid}
	}

	snap, err := drv.QueryState()
	if err != nil {
		acquired.Remove(tid)
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("query driver state: %w", err)
	}

	s := &State{drv: drv, tid: tid, log: logger.Nop(), units0: MinTextureUnits}
	if m, ok := drv.(driver.Mapper); ok {
		s.mapper = m
	}
	for _, opt := range opts {
		opt(s)
	}
	s.seed(snap)
	s.maxUnits, s.maxUniforms = limit(snap.MaxTextureUnits, MinTextureUnits), limit(snap.MaxUniformBuffers, MinUniformBuffers)
	s.ReserveTextureUnits(s.units0)

	s.log.Debug().
		Int("thread", tid).
		Bool("mapping", s.mapper != nil).
		Uint32("array_buffer", uint32(snap.ArrayBuffer)).
		Uint32("draw_framebuffer", uint32(snap.DrawFramebuffer)).
		Uint32("texture_unit", snap.TextureUnit).
		Int("max_texture_units", s.maxUnits).
		Bool("blend", snap.Blending.Enabled).
		Bool("depth_test", snap.DepthTest.Enabled).
		Bool("cull_face", snap.FaceCulling.Enabled).
		Msg("acquired")
	return s, nil
}

// seed records what the driver reported. Object bindings stay unknown:
// the first bind of any object always reaches the driver.
func (s *State) seed(snap driver.Snapshot) {
	s.textureUnit = Known(snap.TextureUnit)
	s.blend = Known(snap.Blending.Enabled)
	s.blendEq = Known(snap.Blending.Equation)
	s.blendFactors = Known(snap.Blending.Factors)
	s.depthTest = Known(snap.DepthTest.Enabled)
	s.depthCmp = Known(snap.DepthTest.Comparison)
	s.depthWrite = Known(snap.DepthWrite)
	st := snap.StencilTest
	s.stencilTest = Known(st.Enabled)
	s.stencilFunc = Known(stencilFunc{cmp: st.Comparison, ref: st.Ref, mask: st.Mask})
	s.stencilOps = Known(snap.StencilOps)
	s.cullFace = Known(snap.FaceCulling.Enabled)
	s.cullOrder = Known(snap.FaceCulling.Order)
	s.cullMode = Known(snap.FaceCulling.Mode)
	s.srgb = Known(snap.SRGBFramebuffer)
	s.restart = Known(snap.VertexRestart)
	s.viewport = Known(snap.Viewport)
	s.clearColor = Known(snap.ClearColor)
}

// limit returns the reported driver limit, or the guaranteed minimum when
// there is no report.
func limit(reported uint32, floor int) int {
	if reported == 0 {
		return floor
	}
	return int(reported)
}

// Release gives the thread back: pooled textures are deleted, the thread
// may acquire again and is unlocked. Objects still alive afterwards
// belong to a dead context; destroying them is a no-op.
func (s *State) Release() {
	if s.released {
		return
	}
	s.check()
	for _, t := range s.pool {
		s.drv.DeleteTexture(t)
		s.stats.deletes.Add(1)
	}
	s.pool = nil
	s.released = true
	acquired.Remove(s.tid)
	runtime.UnlockOSThread()
	s.log.Debug().Int("thread", s.tid).Msg("released")
}

// Released reports whether Release was called.
func (s *State) Released() bool { return s.released }

// Thread returns the id of the owning OS thread.
func (s *State) Thread() int { return s.tid }

// Stats returns the counters. Safe to call from any goroutine.
func (s *State) Stats() Stats { return s.stats.snapshot() }

// CanMap reports whether the driver exposes buffer memory.
func (s *State) CanMap() bool { return s.mapper != nil }

// Logger returns the logger of the state.
func (s *State) Logger() *logger.Logger { return s.log }

func (s *State) check() {
	if s.released {
		panic("state: used after release")
	}
	if s.strict {
		if id := thread.ID(); id != s.tid {
			panic(fmt.Sprintf("state: used on thread %d, acquired on %d", id, s.tid))
		}
	}
}
