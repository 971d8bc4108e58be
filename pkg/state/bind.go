package state

import (
	"fmt"

	"github.com/giongto35/gfxstate/pkg/driver"
)

// BindArrayBuffer makes b the target of buffer uploads and mappings.
// It reports whether the driver was called.
func (s *State) BindArrayBuffer(b driver.Buffer, p Policy) bool {
	s.check()
	return bind(s, &s.arrayBuffer, b, p, s.drv.BindArrayBuffer)
}

// BindElementArrayBuffer makes b the source of draw indices.
func (s *State) BindElementArrayBuffer(b driver.Buffer, p Policy) bool {
	s.check()
	return bind(s, &s.elementArrayBuffer, b, p, s.drv.BindElementArrayBuffer)
}

// BindUniformBuffer binds b to the indexed uniform binding point. Binding
// points at or past the driver limit panic.
func (s *State) BindUniformBuffer(binding uint32, b driver.Buffer, p Policy) bool {
	s.check()
	if int(binding) >= s.maxUniforms {
		panic(fmt.Sprintf("state: uniform binding %d out of range, %d available", binding, s.maxUniforms))
	}
	if n := int(binding) + 1; n > len(s.uniformBuffers) {
		s.uniformBuffers = append(s.uniformBuffers, make([]Slot[driver.Buffer], n-len(s.uniformBuffers))...)
	}
	return bind(s, &s.uniformBuffers[binding], b, p, func(b driver.Buffer) { s.drv.BindUniformBuffer(binding, b) })
}

func (s *State) BindDrawFramebuffer(f driver.Framebuffer, p Policy) bool {
	s.check()
	return bind(s, &s.drawFramebuffer, f, p, s.drv.BindDrawFramebuffer)
}

func (s *State) BindRenderbuffer(r driver.Renderbuffer, p Policy) bool {
	s.check()
	return bind(s, &s.renderbuffer, r, p, s.drv.BindRenderbuffer)
}

// SetTextureUnit selects the unit later texture binds apply to. Units at
// or past the driver limit panic.
func (s *State) SetTextureUnit(unit uint32) bool {
	s.check()
	s.checkUnit(unit)
	return bind(s, &s.textureUnit, unit, Cached, s.drv.ActiveTexture)
}

func (s *State) checkUnit(unit uint32) {
	if int(unit) >= s.maxUnits {
		panic(fmt.Sprintf("state: texture unit %d out of range, %d available", unit, s.maxUnits))
	}
}

// ReserveTextureUnits grows the unit slots to at least n, capped at the
// driver limit. New units start unknown, so the first bind on them is
// never elided.
func (s *State) ReserveTextureUnits(n int) {
	n = min(n, s.maxUnits)
	if n > len(s.textureUnits) {
		s.textureUnits = append(s.textureUnits, make([]Slot[boundTexture], n-len(s.textureUnits))...)
	}
}

// TextureUnits returns how many unit slots are tracked.
func (s *State) TextureUnits() int { return len(s.textureUnits) }

// BindTexture binds t to target on the given unit, activating the unit first.
// It reports whether the texture bind reached the driver.
func (s *State) BindTexture(unit uint32, target driver.TextureTarget, t driver.Texture, p Policy) bool {
	s.check()
	s.checkUnit(unit)
	s.ReserveTextureUnits(int(unit) + 1)
	slot := &s.textureUnits[unit]
	want := boundTexture{target: target, tex: t}
	if p == Cached && slot.Is(want) {
		s.stats.bindsElided.Add(1)
		return false
	}
	s.SetTextureUnit(unit)
	return bind(s, slot, want, Forced, func(b boundTexture) { s.drv.BindTexture(b.target, b.tex) })
}

// BoundArrayBuffer returns the cached array buffer binding.
func (s *State) BoundArrayBuffer() Slot[driver.Buffer] { return s.arrayBuffer }

func (s *State) BoundElementArrayBuffer() Slot[driver.Buffer] { return s.elementArrayBuffer }

// BoundUniformBuffer returns the cached buffer of a uniform binding point,
// unknown if it was never bound.
func (s *State) BoundUniformBuffer(binding uint32) Slot[driver.Buffer] {
	if int(binding) >= len(s.uniformBuffers) {
		return Slot[driver.Buffer]{}
	}
	return s.uniformBuffers[binding]
}

// MaxTextureUnits returns the number of units the driver provides.
func (s *State) MaxTextureUnits() int { return s.maxUnits }

func (s *State) BoundDrawFramebuffer() Slot[driver.Framebuffer] { return s.drawFramebuffer }

func (s *State) BoundRenderbuffer() Slot[driver.Renderbuffer] { return s.renderbuffer }

func (s *State) ActiveTextureUnit() Slot[uint32] { return s.textureUnit }

// BoundTexture returns the cached texture of a unit, unknown if the unit
// was never reserved.
func (s *State) BoundTexture(unit uint32) (driver.TextureTarget, Slot[driver.Texture]) {
	if int(unit) >= len(s.textureUnits) {
		return 0, Slot[driver.Texture]{}
	}
	b, ok := s.textureUnits[unit].Get()
	if !ok {
		return 0, Slot[driver.Texture]{}
	}
	return b.target, Known(b.tex)
}

func (s *State) InvalidateArrayBuffer()        { s.arrayBuffer.Invalidate() }
func (s *State) InvalidateElementArrayBuffer() { s.elementArrayBuffer.Invalidate() }
func (s *State) InvalidateDrawFramebuffer()    { s.drawFramebuffer.Invalidate() }
func (s *State) InvalidateRenderbuffer()       { s.renderbuffer.Invalidate() }
func (s *State) InvalidateTextureUnit()        { s.textureUnit.Invalidate() }

func (s *State) InvalidateUniformBuffers() {
	for i := range s.uniformBuffers {
		s.uniformBuffers[i].Invalidate()
	}
}

func (s *State) InvalidateTextures() {
	for i := range s.textureUnits {
		s.textureUnits[i].Invalidate()
	}
}

// Invalidate forgets everything the cache knows. Use it after code outside
// of the state touched the driver.
func (s *State) Invalidate() {
	s.InvalidateArrayBuffer()
	s.InvalidateElementArrayBuffer()
	s.InvalidateUniformBuffers()
	s.InvalidateDrawFramebuffer()
	s.InvalidateRenderbuffer()
	s.InvalidateTextureUnit()
	s.InvalidateTextures()
	s.invalidateToggles()
	s.log.Debug().Msg("invalidated")
}
