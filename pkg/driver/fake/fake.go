// Package fake provides an in-memory driver that records the calls it
// receives. Deleted handles are handed out again, most recent first, the
// same way real drivers recycle object names.
package fake

import (
	"errors"
	"fmt"

	"github.com/giongto35/gfxstate/pkg/driver"
)

type boundTexture struct {
	target driver.TextureTarget
	tex    driver.Texture
}

type names struct {
	next  uint32
	free  []uint32
	alive map[uint32]bool
	limit int
}

func newNames() names { return names{next: 1, alive: map[uint32]bool{}} }

func (n *names) gen() (uint32, bool) {
	if n.limit > 0 && len(n.alive) >= n.limit {
		return 0, false
	}
	var id uint32
	if l := len(n.free); l > 0 {
		id, n.free = n.free[l-1], n.free[:l-1]
	} else {
		id = n.next
		n.next++
	}
	n.alive[id] = true
	return id, true
}

func (n *names) del(id uint32) bool {
	if id == 0 || !n.alive[id] {
		return false
	}
	delete(n.alive, id)
	n.free = append(n.free, id)
	return true
}

func (n *names) ok(id uint32) bool { return id == 0 || n.alive[id] }

// Driver is a recording driver without a mapping primitive.
type Driver struct {
	// Truth is the state the driver holds; QueryState reports it.
	Truth driver.Snapshot
	// RefuseCreate makes every Create* call fail.
	RefuseCreate bool

	buffers       names
	textures      names
	framebuffers  names
	renderbuffers names

	data     map[driver.Buffer][]byte
	units    map[uint32]boundTexture
	uniforms map[uint32]driver.Buffer
	attached map[driver.Framebuffer]int
	calls    map[string]int
	log      []string
	errs     []error
}

// New returns a driver with the limits of a common desktop GL 3.3 context.
func New() *Driver {
	return &Driver{
		Truth:         driver.Snapshot{MaxTextureUnits: 80, MaxUniformBuffers: 36},
		buffers:       newNames(),
		textures:      newNames(),
		framebuffers:  newNames(),
		renderbuffers: newNames(),
		data:          map[driver.Buffer][]byte{},
		units:         map[uint32]boundTexture{},
		uniforms:      map[uint32]driver.Buffer{},
		attached:      map[driver.Framebuffer]int{},
		calls:         map[string]int{},
	}
}

// Limit caps the number of live objects of every kind, 0 means no limit.
func (d *Driver) Limit(n int) {
	d.buffers.limit, d.textures.limit = n, n
	d.framebuffers.limit, d.renderbuffers.limit = n, n
}

// Calls returns how many times the named call was issued.
func (d *Driver) Calls(name string) int { return d.calls[name] }

// Log returns the issued calls in order.
func (d *Driver) Log() []string { return append([]string(nil), d.log...) }

// Errors returns the invalid operations recorded so far, the way
// glGetError would report them.
func (d *Driver) Errors() []error { return append([]error(nil), d.errs...) }

// Reset forgets the recorded calls and errors.
func (d *Driver) Reset() {
	d.calls = map[string]int{}
	d.log = nil
	d.errs = nil
}

// Contents returns a copy of the driver-side bytes of the buffer.
func (d *Driver) Contents(b driver.Buffer) []byte {
	return append([]byte(nil), d.data[b]...)
}

// BoundTexture returns what the given unit holds.
func (d *Driver) BoundTexture(unit uint32) (driver.TextureTarget, driver.Texture) {
	t := d.units[unit]
	return t.target, t.tex
}

// Alive reports whether the buffer handle is a live object.
func (d *Driver) Alive(b driver.Buffer) bool { return b != 0 && d.buffers.alive[uint32(b)] }

func (d *Driver) call(name string, args ...any) {
	d.calls[name]++
	if len(args) > 0 {
		name = fmt.Sprintf("%s%v", name, args)
	}
	d.log = append(d.log, name)
}

func (d *Driver) fail(format string, args ...any) {
	d.errs = append(d.errs, fmt.Errorf(format, args...))
}

func (d *Driver) CreateBuffer() (driver.Buffer, bool) {
	d.call("CreateBuffer")
	if d.RefuseCreate {
		return 0, false
	}
	id, ok := d.buffers.gen()
	if ok {
		d.data[driver.Buffer(id)] = nil
	}
	return driver.Buffer(id), ok
}

func (d *Driver) DeleteBuffer(b driver.Buffer) {
	d.call("DeleteBuffer", b)
	if !d.buffers.del(uint32(b)) {
		d.fail("delete of unknown buffer %d", b)
		return
	}
	delete(d.data, b)
	// deleting a bound object reverts the binding to zero
	if d.Truth.ArrayBuffer == b {
		d.Truth.ArrayBuffer = 0
	}
	if d.Truth.ElementArrayBuffer == b {
		d.Truth.ElementArrayBuffer = 0
	}
	for i, u := range d.uniforms {
		if u == b {
			delete(d.uniforms, i)
		}
	}
}

func (d *Driver) CreateTexture() (driver.Texture, bool) {
	d.call("CreateTexture")
	if d.RefuseCreate {
		return 0, false
	}
	id, ok := d.textures.gen()
	return driver.Texture(id), ok
}

func (d *Driver) DeleteTexture(t driver.Texture) {
	d.call("DeleteTexture", t)
	if !d.textures.del(uint32(t)) {
		d.fail("delete of unknown texture %d", t)
		return
	}
	for u, b := range d.units {
		if b.tex == t {
			d.units[u] = boundTexture{target: b.target}
		}
	}
}

func (d *Driver) CreateFramebuffer() (driver.Framebuffer, bool) {
	d.call("CreateFramebuffer")
	if d.RefuseCreate {
		return 0, false
	}
	id, ok := d.framebuffers.gen()
	return driver.Framebuffer(id), ok
}

func (d *Driver) DeleteFramebuffer(f driver.Framebuffer) {
	d.call("DeleteFramebuffer", f)
	if !d.framebuffers.del(uint32(f)) {
		d.fail("delete of unknown framebuffer %d", f)
		return
	}
	delete(d.attached, f)
	if d.Truth.DrawFramebuffer == f {
		d.Truth.DrawFramebuffer = driver.DefaultFramebuffer
	}
}

func (d *Driver) CreateRenderbuffer() (driver.Renderbuffer, bool) {
	d.call("CreateRenderbuffer")
	if d.RefuseCreate {
		return 0, false
	}
	id, ok := d.renderbuffers.gen()
	return driver.Renderbuffer(id), ok
}

func (d *Driver) DeleteRenderbuffer(r driver.Renderbuffer) {
	d.call("DeleteRenderbuffer", r)
	if !d.renderbuffers.del(uint32(r)) {
		d.fail("delete of unknown renderbuffer %d", r)
		return
	}
	if d.Truth.Renderbuffer == r {
		d.Truth.Renderbuffer = 0
	}
}

func (d *Driver) BindArrayBuffer(b driver.Buffer) {
	d.call("BindArrayBuffer", b)
	if !d.buffers.ok(uint32(b)) {
		d.fail("bind of unknown buffer %d", b)
	}
	d.Truth.ArrayBuffer = b
}

func (d *Driver) BindElementArrayBuffer(b driver.Buffer) {
	d.call("BindElementArrayBuffer", b)
	if !d.buffers.ok(uint32(b)) {
		d.fail("bind of unknown buffer %d", b)
	}
	d.Truth.ElementArrayBuffer = b
}

func (d *Driver) BindUniformBuffer(binding uint32, b driver.Buffer) {
	d.call("BindUniformBuffer", binding, b)
	if !d.buffers.ok(uint32(b)) {
		d.fail("bind of unknown buffer %d", b)
	}
	if binding >= d.Truth.MaxUniformBuffers {
		d.fail("uniform binding %d out of range", binding)
		return
	}
	d.uniforms[binding] = b
}

// UniformBuffer returns what the indexed uniform binding holds.
func (d *Driver) UniformBuffer(binding uint32) driver.Buffer { return d.uniforms[binding] }

func (d *Driver) BindDrawFramebuffer(f driver.Framebuffer) {
	d.call("BindDrawFramebuffer", f)
	if !d.framebuffers.ok(uint32(f)) {
		d.fail("bind of unknown framebuffer %d", f)
	}
	d.Truth.DrawFramebuffer = f
}

func (d *Driver) BindRenderbuffer(r driver.Renderbuffer) {
	d.call("BindRenderbuffer", r)
	if !d.renderbuffers.ok(uint32(r)) {
		d.fail("bind of unknown renderbuffer %d", r)
	}
	d.Truth.Renderbuffer = r
}

func (d *Driver) ActiveTexture(unit uint32) {
	d.call("ActiveTexture", unit)
	if unit >= d.Truth.MaxTextureUnits {
		d.fail("texture unit %d out of range", unit)
		return
	}
	d.Truth.TextureUnit = unit
}

func (d *Driver) BindTexture(target driver.TextureTarget, t driver.Texture) {
	d.call("BindTexture", target, t)
	if !d.textures.ok(uint32(t)) {
		d.fail("bind of unknown texture %d", t)
	}
	d.units[d.Truth.TextureUnit] = boundTexture{target: target, tex: t}
}

var errNoBuffer = errors.New("no buffer bound")

func (d *Driver) BufferData(data []byte) {
	d.call("BufferData", len(data))
	b := d.Truth.ArrayBuffer
	if b == 0 {
		d.errs = append(d.errs, errNoBuffer)
		return
	}
	d.data[b] = append(make([]byte, 0, len(data)), data...)
}

func (d *Driver) BufferSubData(offset int, data []byte) {
	d.call("BufferSubData", offset, len(data))
	b := d.Truth.ArrayBuffer
	if b == 0 {
		d.errs = append(d.errs, errNoBuffer)
		return
	}
	dst := d.data[b]
	if offset < 0 || offset+len(data) > len(dst) {
		d.fail("sub data [%d:%d] out of buffer %d of %d bytes", offset, offset+len(data), b, len(dst))
		return
	}
	copy(dst[offset:], data)
}

func (d *Driver) TexImage2D(target driver.TextureTarget, w, h int32) {
	d.call("TexImage2D", target, w, h)
	if d.units[d.Truth.TextureUnit].tex == 0 {
		d.fail("tex image on unit %d without a texture", d.Truth.TextureUnit)
	}
}

func (d *Driver) RenderbufferStorage(w, h int32) {
	d.call("RenderbufferStorage", w, h)
	if d.Truth.Renderbuffer == 0 {
		d.fail("renderbuffer storage without a renderbuffer")
	}
}

func (d *Driver) FramebufferTexture(target driver.TextureTarget, t driver.Texture) {
	d.call("FramebufferTexture", target, t)
	d.attach()
}

func (d *Driver) FramebufferRenderbuffer(r driver.Renderbuffer) {
	d.call("FramebufferRenderbuffer", r)
	d.attach()
}

func (d *Driver) attach() {
	if f := d.Truth.DrawFramebuffer; f == driver.DefaultFramebuffer {
		d.fail("attachment to the default framebuffer")
	} else {
		d.attached[f]++
	}
}

func (d *Driver) CheckFramebuffer() error {
	d.call("CheckFramebuffer")
	f := d.Truth.DrawFramebuffer
	if f != driver.DefaultFramebuffer && d.attached[f] == 0 {
		return fmt.Errorf("framebuffer %d: missing attachment", f)
	}
	return nil
}

func (d *Driver) Enable(c driver.Capability) {
	d.call("Enable", c)
	d.capability(c, true)
}

func (d *Driver) Disable(c driver.Capability) {
	d.call("Disable", c)
	d.capability(c, false)
}

func (d *Driver) capability(c driver.Capability, on bool) {
	switch c {
	case driver.CapBlend:
		d.Truth.Blending.Enabled = on
	case driver.CapDepthTest:
		d.Truth.DepthTest.Enabled = on
	case driver.CapStencilTest:
		d.Truth.StencilTest.Enabled = on
	case driver.CapCullFace:
		d.Truth.FaceCulling.Enabled = on
	case driver.CapFramebufferSRGB:
		d.Truth.SRGBFramebuffer = on
	case driver.CapPrimitiveRestart:
		d.Truth.VertexRestart = on
	}
}

func (d *Driver) BlendEquation(e driver.BlendEquations) {
	d.call("BlendEquation", e.RGB, e.Alpha)
	d.Truth.Blending.Equation = e
}

func (d *Driver) BlendFunc(f driver.BlendFactors) {
	d.call("BlendFunc", f.SrcRGB, f.DstRGB, f.SrcAlpha, f.DstAlpha)
	d.Truth.Blending.Factors = f
}

func (d *Driver) DepthFunc(c driver.Comparison) {
	d.call("DepthFunc", c)
	d.Truth.DepthTest.Comparison = c
}

func (d *Driver) DepthMask(on bool) {
	d.call("DepthMask", on)
	d.Truth.DepthWrite = on
}

func (d *Driver) StencilFunc(c driver.Comparison, ref int32, mask uint32) {
	d.call("StencilFunc", c, ref, mask)
	d.Truth.StencilTest.Comparison, d.Truth.StencilTest.Ref, d.Truth.StencilTest.Mask = c, ref, mask
}

func (d *Driver) StencilOp(o driver.StencilOps) {
	d.call("StencilOp", o.StencilFail, o.DepthFail, o.DepthPass)
	d.Truth.StencilOps = o
}

func (d *Driver) FrontFace(w driver.Winding) {
	d.call("FrontFace", w)
	d.Truth.FaceCulling.Order = w
}

func (d *Driver) CullFace(f driver.Face) {
	d.call("CullFace", f)
	d.Truth.FaceCulling.Mode = f
}

func (d *Driver) Viewport(v [4]int32) {
	d.call("Viewport", v)
	d.Truth.Viewport = v
}

func (d *Driver) ClearColor(c [4]float32) {
	d.call("ClearColor", c)
	d.Truth.ClearColor = c
}

func (d *Driver) QueryState() (driver.Snapshot, error) {
	d.call("QueryState")
	return d.Truth, nil
}

// MappingDriver is a recording driver with a mapping primitive.
// Mapped memory aliases the driver-side buffer bytes.
type MappingDriver struct {
	*Driver
	// RefuseMap makes MapBuffer fail.
	RefuseMap bool
	// CorruptUnmap makes UnmapBuffer report lost contents.
	CorruptUnmap bool

	mapped map[driver.Buffer]bool
}

func NewMapping() *MappingDriver {
	return &MappingDriver{Driver: New(), mapped: map[driver.Buffer]bool{}}
}

// Mapped reports whether the buffer is currently mapped.
func (d *MappingDriver) Mapped(b driver.Buffer) bool { return d.mapped[b] }

func (d *MappingDriver) MapBuffer(size int, access driver.Access) []byte {
	d.call("MapBuffer", size, access)
	b := d.Truth.ArrayBuffer
	switch {
	case d.RefuseMap:
		return nil
	case b == 0:
		d.errs = append(d.errs, errNoBuffer)
		return nil
	case d.mapped[b]:
		d.fail("buffer %d is already mapped", b)
		return nil
	case size > len(d.data[b]):
		d.fail("map of %d bytes over buffer %d of %d bytes", size, b, len(d.data[b]))
		return nil
	}
	d.mapped[b] = true
	return d.data[b][:size:size]
}

func (d *MappingDriver) UnmapBuffer() bool {
	d.call("UnmapBuffer")
	b := d.Truth.ArrayBuffer
	if !d.mapped[b] {
		d.fail("unmap of buffer %d which is not mapped", b)
		return false
	}
	delete(d.mapped, b)
	return !d.CorruptUnmap
}

// BufferSubData on a mapped buffer is an invalid operation.
func (d *MappingDriver) BufferSubData(offset int, data []byte) {
	if d.mapped[d.Truth.ArrayBuffer] {
		d.call("BufferSubData", offset, len(data))
		d.fail("sub data on mapped buffer %d", d.Truth.ArrayBuffer)
		return
	}
	d.Driver.BufferSubData(offset, data)
}

// DeleteBuffer drops the mapping of a mapped buffer along with it.
func (d *MappingDriver) DeleteBuffer(b driver.Buffer) {
	delete(d.mapped, b)
	d.Driver.DeleteBuffer(b)
}
