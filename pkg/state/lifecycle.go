package state

import "github.com/giongto35/gfxstate/pkg/driver"

// Drivers hand deleted names out again. A slot still holding a deleted
// name would make the next Cached bind of the new object a no-op, so
// every destroy scrubs first.

// dead reports whether the owning context is gone, in which case the
// driver objects went with it.
func (s *State) dead(kind string, h uint32) bool {
	if !s.released {
		return false
	}
	s.log.Debug().Str("kind", kind).Uint32("handle", h).Msg("destroy after release ignored")
	return true
}

func (s *State) scrubbed(kind string, h uint32, n int) {
	if n == 0 {
		return
	}
	s.stats.scrubs.Add(uint64(n))
	s.log.Debug().Str("kind", kind).Uint32("handle", h).Int("slots", n).Msg("scrub")
}

// DestroyBuffer scrubs every buffer binding point: array, element array
// and the uniform bindings.
func (s *State) DestroyBuffer(b driver.Buffer) {
	if b == 0 || s.dead("buffer", uint32(b)) {
		return
	}
	s.check()
	n := scrub(&s.arrayBuffer, b) + scrub(&s.elementArrayBuffer, b)
	for i := range s.uniformBuffers {
		n += scrub(&s.uniformBuffers[i], b)
	}
	s.scrubbed("buffer", uint32(b), n)
	s.drv.DeleteBuffer(b)
	s.stats.deletes.Add(1)
}

// scrub forgets slot if it holds h and reports how many slots it reset.
func scrub[H comparable](slot *Slot[H], h H) int {
	if !slot.Is(h) {
		return 0
	}
	slot.Invalidate()
	return 1
}

func (s *State) DestroyTexture(t driver.Texture) {
	if t == 0 || s.dead("texture", uint32(t)) {
		return
	}
	s.check()
	n := 0
	for i := range s.textureUnits {
		if b, ok := s.textureUnits[i].Get(); ok && b.tex == t {
			s.textureUnits[i].Invalidate()
			n++
		}
	}
	s.scrubbed("texture", uint32(t), n)
	s.drv.DeleteTexture(t)
	s.stats.deletes.Add(1)
}

// DestroyFramebuffer never deletes the default framebuffer.
func (s *State) DestroyFramebuffer(f driver.Framebuffer) {
	if f == driver.DefaultFramebuffer || s.dead("framebuffer", uint32(f)) {
		return
	}
	s.check()
	n := scrub(&s.drawFramebuffer, f)
	s.scrubbed("framebuffer", uint32(f), n)
	s.drv.DeleteFramebuffer(f)
	s.stats.deletes.Add(1)
}

func (s *State) DestroyRenderbuffer(r driver.Renderbuffer) {
	if r == 0 || s.dead("renderbuffer", uint32(r)) {
		return
	}
	s.check()
	n := scrub(&s.renderbuffer, r)
	s.scrubbed("renderbuffer", uint32(r), n)
	s.drv.DeleteRenderbuffer(r)
	s.stats.deletes.Add(1)
}
