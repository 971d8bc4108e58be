// Package gl33 is the OpenGL 3.3 core driver.
//
// A context must be current on the calling thread for every call.
package gl33

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/giongto35/gfxstate/pkg/driver"
	"github.com/go-gl/gl/v3.3-core/gl"
)

type Driver struct{}

// New loads the GL entry points with getProcAddr.
func New(getProcAddr func(name string) unsafe.Pointer) (*Driver, error) {
	if err := gl.InitWithProcAddrFunc(getProcAddr); err != nil {
		return nil, fmt.Errorf("gl init: %w", err)
	}
	return &Driver{}, nil
}

// Info returns the version, vendor and renderer strings of the context.
func (*Driver) Info() (version, vendor, renderer string) {
	return get(gl.VERSION), get(gl.VENDOR), get(gl.RENDERER)
}

func get(name uint32) string { return gl.GoStr(gl.GetString(name)) }

// Error returns the pending GL error, 0 when there is none.
func (*Driver) Error() uint32 { return gl.GetError() }

func (*Driver) CreateBuffer() (driver.Buffer, bool) {
	var id uint32
	gl.GenBuffers(1, &id)
	return driver.Buffer(id), id != 0
}

func (*Driver) DeleteBuffer(b driver.Buffer) {
	id := uint32(b)
	gl.DeleteBuffers(1, &id)
}

func (*Driver) CreateTexture() (driver.Texture, bool) {
	var id uint32
	gl.GenTextures(1, &id)
	return driver.Texture(id), id != 0
}

func (*Driver) DeleteTexture(t driver.Texture) {
	id := uint32(t)
	gl.DeleteTextures(1, &id)
}

func (*Driver) CreateFramebuffer() (driver.Framebuffer, bool) {
	var id uint32
	gl.GenFramebuffers(1, &id)
	return driver.Framebuffer(id), id != 0
}

func (*Driver) DeleteFramebuffer(f driver.Framebuffer) {
	id := uint32(f)
	gl.DeleteFramebuffers(1, &id)
}

func (*Driver) CreateRenderbuffer() (driver.Renderbuffer, bool) {
	var id uint32
	gl.GenRenderbuffers(1, &id)
	return driver.Renderbuffer(id), id != 0
}

func (*Driver) DeleteRenderbuffer(r driver.Renderbuffer) {
	id := uint32(r)
	gl.DeleteRenderbuffers(1, &id)
}

func (*Driver) BindArrayBuffer(b driver.Buffer) { gl.BindBuffer(gl.ARRAY_BUFFER, uint32(b)) }

func (*Driver) BindElementArrayBuffer(b driver.Buffer) {
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, uint32(b))
}

func (*Driver) BindUniformBuffer(binding uint32, b driver.Buffer) {
	gl.BindBufferBase(gl.UNIFORM_BUFFER, binding, uint32(b))
}

func (*Driver) BindDrawFramebuffer(f driver.Framebuffer) {
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, uint32(f))
}

func (*Driver) BindRenderbuffer(r driver.Renderbuffer) {
	gl.BindRenderbuffer(gl.RENDERBUFFER, uint32(r))
}

func (*Driver) ActiveTexture(unit uint32) { gl.ActiveTexture(gl.TEXTURE0 + unit) }

func (*Driver) BindTexture(target driver.TextureTarget, t driver.Texture) {
	gl.BindTexture(textureTargets[target], uint32(t))
}

func (*Driver) BufferData(data []byte) {
	gl.BufferData(gl.ARRAY_BUFFER, len(data), ptr(data), gl.STREAM_DRAW)
}

func (*Driver) BufferSubData(offset int, data []byte) {
	if len(data) == 0 {
		return
	}
	gl.BufferSubData(gl.ARRAY_BUFFER, offset, len(data), gl.Ptr(data))
}

// MapBuffer maps the bound array buffer with glMapBufferRange.
func (*Driver) MapBuffer(size int, access driver.Access) []byte {
	var bits uint32
	switch access {
	case driver.ReadOnly:
		bits = gl.MAP_READ_BIT
	case driver.WriteOnly:
		bits = gl.MAP_WRITE_BIT
	default:
		bits = gl.MAP_READ_BIT | gl.MAP_WRITE_BIT
	}
	p := gl.MapBufferRange(gl.ARRAY_BUFFER, 0, size, bits)
	if p == nil {
		return nil
	}
	return unsafe.Slice((*byte)(p), size)
}

func (*Driver) UnmapBuffer() bool { return gl.UnmapBuffer(gl.ARRAY_BUFFER) }

func (*Driver) TexImage2D(target driver.TextureTarget, w, h int32) {
	switch target {
	case driver.Texture1D:
		gl.TexImage1D(gl.TEXTURE_1D, 0, gl.RGBA8, w, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	case driver.Texture3D, driver.Texture2DArray:
		gl.TexImage3D(textureTargets[target], 0, gl.RGBA8, w, h, 1, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	case driver.TextureCubeMap:
		for face := uint32(0); face < 6; face++ {
			gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+face, 0, gl.RGBA8, w, h, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
		}
	default:
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, w, h, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	}
	gl.TexParameteri(textureTargets[target], gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(textureTargets[target], gl.TEXTURE_MAG_FILTER, gl.NEAREST)
}

func (*Driver) RenderbufferStorage(w, h int32) {
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, w, h)
}

func (*Driver) FramebufferTexture(target driver.TextureTarget, t driver.Texture) {
	gl.FramebufferTexture2D(gl.DRAW_FRAMEBUFFER, gl.COLOR_ATTACHMENT0, textureTargets[target], uint32(t), 0)
}

func (*Driver) FramebufferRenderbuffer(r driver.Renderbuffer) {
	gl.FramebufferRenderbuffer(gl.DRAW_FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, uint32(r))
}

func (*Driver) CheckFramebuffer() error {
	status := gl.CheckFramebufferStatus(gl.DRAW_FRAMEBUFFER)
	if status == gl.FRAMEBUFFER_COMPLETE {
		return nil
	}
	if e := gl.GetError(); e != gl.NO_ERROR {
		return fmt.Errorf("gl error: 0x%X, frame status: 0x%X", e, status)
	}
	return fmt.Errorf("frame status: 0x%X", status)
}

func (*Driver) Enable(c driver.Capability) {
	// 3.3 has no fixed restart index, use the one of WebGL2 and GL 4.3
	if c == driver.CapPrimitiveRestart {
		gl.PrimitiveRestartIndex(math.MaxUint32)
	}
	gl.Enable(capabilities[c])
}

func (*Driver) Disable(c driver.Capability) { gl.Disable(capabilities[c]) }

func (*Driver) BlendEquation(e driver.BlendEquations) {
	gl.BlendEquationSeparate(equations[e.RGB], equations[e.Alpha])
}

func (*Driver) BlendFunc(f driver.BlendFactors) {
	gl.BlendFuncSeparate(factors[f.SrcRGB], factors[f.DstRGB], factors[f.SrcAlpha], factors[f.DstAlpha])
}

func (*Driver) DepthFunc(c driver.Comparison) { gl.DepthFunc(comparisons[c]) }
func (*Driver) DepthMask(on bool)             { gl.DepthMask(on) }

func (*Driver) StencilFunc(c driver.Comparison, ref int32, mask uint32) {
	gl.StencilFunc(comparisons[c], ref, mask)
}

func (*Driver) StencilOp(o driver.StencilOps) {
	gl.StencilOp(stencilOps[o.StencilFail], stencilOps[o.DepthFail], stencilOps[o.DepthPass])
}

func (*Driver) FrontFace(w driver.Winding) {
	if w == driver.CW {
		gl.FrontFace(gl.CW)
	} else {
		gl.FrontFace(gl.CCW)
	}
}

func (*Driver) CullFace(f driver.Face) { gl.CullFace(faces[f]) }

func (*Driver) Viewport(v [4]int32) { gl.Viewport(v[0], v[1], v[2], v[3]) }

func (*Driver) ClearColor(c [4]float32) { gl.ClearColor(c[0], c[1], c[2], c[3]) }

func ptr(data []byte) unsafe.Pointer {
	if len(data) == 0 {
		return nil
	}
	return gl.Ptr(data)
}
