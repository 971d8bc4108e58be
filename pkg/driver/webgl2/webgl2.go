//go:build js && wasm

// Package webgl2 is the WebGL2 driver. WebGL2 cannot map buffers, so
// this driver does not implement driver.Mapper.
package webgl2

import (
	"errors"
	"fmt"
	"syscall/js"

	"github.com/giongto35/gfxstate/pkg/driver"
)

// objects gives WebGL objects numeric names. Freed names are reused
// most recent first.
type objects struct {
	vals []js.Value
	free []uint32
}

func (o *objects) add(v js.Value) uint32 {
	if l := len(o.free); l > 0 {
		id := o.free[l-1]
		o.free = o.free[:l-1]
		o.vals[id-1] = v
		return id
	}
	o.vals = append(o.vals, v)
	return uint32(len(o.vals))
}

func (o *objects) get(id uint32) js.Value {
	if id == 0 || int(id) > len(o.vals) {
		return js.Null()
	}
	return o.vals[id-1]
}

func (o *objects) remove(id uint32) js.Value {
	v := o.get(id)
	if !v.IsNull() {
		o.vals[id-1] = js.Null()
		o.free = append(o.free, id)
	}
	return v
}

// find returns the name of v, 0 if unknown.
func (o *objects) find(v js.Value) uint32 {
	if v.IsNull() || v.IsUndefined() {
		return 0
	}
	for i, x := range o.vals {
		if x.Equal(v) {
			return uint32(i + 1)
		}
	}
	return 0
}

type Driver struct {
	gl    js.Value
	enums map[string]int

	buffers, textures, framebuffers, renderbuffers objects
}

// New wraps the WebGL2 context of the canvas.
func New(canvas js.Value) (*Driver, error) {
	gl := canvas.Call("getContext", "webgl2")
	if gl.IsNull() || gl.IsUndefined() {
		return nil, errors.New("webgl2 is not supported")
	}
	return &Driver{gl: gl, enums: map[string]int{}}, nil
}

// enum returns the value of a WebGL constant.
func (d *Driver) enum(name string) int {
	v, ok := d.enums[name]
	if !ok {
		v = d.gl.Get(name).Int()
		d.enums[name] = v
	}
	return v
}

func (d *Driver) create(o *objects, fn string) (uint32, bool) {
	v := d.gl.Call(fn)
	if v.IsNull() {
		return 0, false
	}
	return o.add(v), true
}

func (d *Driver) CreateBuffer() (driver.Buffer, bool) {
	id, ok := d.create(&d.buffers, "createBuffer")
	return driver.Buffer(id), ok
}

func (d *Driver) DeleteBuffer(b driver.Buffer) {
	d.gl.Call("deleteBuffer", d.buffers.remove(uint32(b)))
}

func (d *Driver) CreateTexture() (driver.Texture, bool) {
	id, ok := d.create(&d.textures, "createTexture")
	return driver.Texture(id), ok
}

func (d *Driver) DeleteTexture(t driver.Texture) {
	d.gl.Call("deleteTexture", d.textures.remove(uint32(t)))
}

func (d *Driver) CreateFramebuffer() (driver.Framebuffer, bool) {
	id, ok := d.create(&d.framebuffers, "createFramebuffer")
	return driver.Framebuffer(id), ok
}

func (d *Driver) DeleteFramebuffer(f driver.Framebuffer) {
	d.gl.Call("deleteFramebuffer", d.framebuffers.remove(uint32(f)))
}

func (d *Driver) CreateRenderbuffer() (driver.Renderbuffer, bool) {
	id, ok := d.create(&d.renderbuffers, "createRenderbuffer")
	return driver.Renderbuffer(id), ok
}

func (d *Driver) DeleteRenderbuffer(r driver.Renderbuffer) {
	d.gl.Call("deleteRenderbuffer", d.renderbuffers.remove(uint32(r)))
}

func (d *Driver) BindArrayBuffer(b driver.Buffer) {
	d.gl.Call("bindBuffer", d.enum("ARRAY_BUFFER"), d.buffers.get(uint32(b)))
}

func (d *Driver) BindElementArrayBuffer(b driver.Buffer) {
	d.gl.Call("bindBuffer", d.enum("ELEMENT_ARRAY_BUFFER"), d.buffers.get(uint32(b)))
}

func (d *Driver) BindUniformBuffer(binding uint32, b driver.Buffer) {
	d.gl.Call("bindBufferBase", d.enum("UNIFORM_BUFFER"), binding, d.buffers.get(uint32(b)))
}

func (d *Driver) BindDrawFramebuffer(f driver.Framebuffer) {
	d.gl.Call("bindFramebuffer", d.enum("DRAW_FRAMEBUFFER"), d.framebuffers.get(uint32(f)))
}

func (d *Driver) BindRenderbuffer(r driver.Renderbuffer) {
	d.gl.Call("bindRenderbuffer", d.enum("RENDERBUFFER"), d.renderbuffers.get(uint32(r)))
}

func (d *Driver) ActiveTexture(unit uint32) {
	d.gl.Call("activeTexture", d.enum("TEXTURE0")+int(unit))
}

func (d *Driver) BindTexture(target driver.TextureTarget, t driver.Texture) {
	d.gl.Call("bindTexture", d.target(target), d.textures.get(uint32(t)))
}

func (d *Driver) target(t driver.TextureTarget) int {
	switch t {
	case driver.TextureCubeMap:
		return d.enum("TEXTURE_CUBE_MAP")
	case driver.Texture3D:
		return d.enum("TEXTURE_3D")
	case driver.Texture2DArray:
		return d.enum("TEXTURE_2D_ARRAY")
	}
	// WebGL has no 1D textures
	return d.enum("TEXTURE_2D")
}

func bytes(data []byte) js.Value {
	a := js.Global().Get("Uint8Array").New(len(data))
	js.CopyBytesToJS(a, data)
	return a
}

func (d *Driver) BufferData(data []byte) {
	d.gl.Call("bufferData", d.enum("ARRAY_BUFFER"), bytes(data), d.enum("STREAM_DRAW"))
}

func (d *Driver) BufferSubData(offset int, data []byte) {
	d.gl.Call("bufferSubData", d.enum("ARRAY_BUFFER"), offset, bytes(data))
}

func (d *Driver) TexImage2D(target driver.TextureTarget, w, h int32) {
	rgba8, rgba, ub := d.enum("RGBA8"), d.enum("RGBA"), d.enum("UNSIGNED_BYTE")
	switch target {
	case driver.Texture3D, driver.Texture2DArray:
		d.gl.Call("texImage3D", d.target(target), 0, rgba8, w, h, 1, 0, rgba, ub, js.Null())
	case driver.TextureCubeMap:
		face := d.enum("TEXTURE_CUBE_MAP_POSITIVE_X")
		for i := 0; i < 6; i++ {
			d.gl.Call("texImage2D", face+i, 0, rgba8, w, h, 0, rgba, ub, js.Null())
		}
	default:
		d.gl.Call("texImage2D", d.enum("TEXTURE_2D"), 0, rgba8, w, h, 0, rgba, ub, js.Null())
	}
	d.gl.Call("texParameteri", d.target(target), d.enum("TEXTURE_MIN_FILTER"), d.enum("NEAREST"))
	d.gl.Call("texParameteri", d.target(target), d.enum("TEXTURE_MAG_FILTER"), d.enum("NEAREST"))
}

func (d *Driver) RenderbufferStorage(w, h int32) {
	d.gl.Call("renderbufferStorage", d.enum("RENDERBUFFER"), d.enum("DEPTH_COMPONENT24"), w, h)
}

func (d *Driver) FramebufferTexture(target driver.TextureTarget, t driver.Texture) {
	d.gl.Call("framebufferTexture2D", d.enum("DRAW_FRAMEBUFFER"), d.enum("COLOR_ATTACHMENT0"),
		d.target(target), d.textures.get(uint32(t)), 0)
}

func (d *Driver) FramebufferRenderbuffer(r driver.Renderbuffer) {
	d.gl.Call("framebufferRenderbuffer", d.enum("DRAW_FRAMEBUFFER"), d.enum("DEPTH_ATTACHMENT"),
		d.enum("RENDERBUFFER"), d.renderbuffers.get(uint32(r)))
}

func (d *Driver) CheckFramebuffer() error {
	status := d.gl.Call("checkFramebufferStatus", d.enum("DRAW_FRAMEBUFFER")).Int()
	if status == d.enum("FRAMEBUFFER_COMPLETE") {
		return nil
	}
	return fmt.Errorf("frame status: 0x%X", status)
}

// WebGL2 has neither switch: sRGB conversion follows the attachment format
// and primitive restart at the all-ones index is always on. Both are
// reported by QueryState as such and enabling them is a no-op.
var capabilities = [...]string{
	driver.CapBlend:       "BLEND",
	driver.CapDepthTest:   "DEPTH_TEST",
	driver.CapStencilTest: "STENCIL_TEST",
	driver.CapCullFace:    "CULL_FACE",
}

func (d *Driver) Enable(c driver.Capability) {
	if int(c) < len(capabilities) {
		d.gl.Call("enable", d.enum(capabilities[c]))
	}
}

func (d *Driver) Disable(c driver.Capability) {
	if int(c) < len(capabilities) {
		d.gl.Call("disable", d.enum(capabilities[c]))
	}
}

func (d *Driver) BlendEquation(e driver.BlendEquations) {
	d.gl.Call("blendEquationSeparate", d.enum(equations[e.RGB]), d.enum(equations[e.Alpha]))
}

func (d *Driver) BlendFunc(f driver.BlendFactors) {
	d.gl.Call("blendFuncSeparate", d.enum(factors[f.SrcRGB]), d.enum(factors[f.DstRGB]),
		d.enum(factors[f.SrcAlpha]), d.enum(factors[f.DstAlpha]))
}

func (d *Driver) DepthFunc(c driver.Comparison) { d.gl.Call("depthFunc", d.enum(comparisons[c])) }
func (d *Driver) DepthMask(on bool)             { d.gl.Call("depthMask", on) }

func (d *Driver) StencilFunc(c driver.Comparison, ref int32, mask uint32) {
	d.gl.Call("stencilFunc", d.enum(comparisons[c]), ref, mask)
}

func (d *Driver) StencilOp(o driver.StencilOps) {
	d.gl.Call("stencilOp", d.enum(stencilOps[o.StencilFail]), d.enum(stencilOps[o.DepthFail]),
		d.enum(stencilOps[o.DepthPass]))
}

func (d *Driver) FrontFace(w driver.Winding) {
	if w == driver.CW {
		d.gl.Call("frontFace", d.enum("CW"))
	} else {
		d.gl.Call("frontFace", d.enum("CCW"))
	}
}

func (d *Driver) CullFace(f driver.Face) { d.gl.Call("cullFace", d.enum(faces[f])) }

func (d *Driver) Viewport(v [4]int32) { d.gl.Call("viewport", v[0], v[1], v[2], v[3]) }

func (d *Driver) ClearColor(c [4]float32) { d.gl.Call("clearColor", c[0], c[1], c[2], c[3]) }
