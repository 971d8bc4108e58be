package state

import (
	"fmt"

	"github.com/giongto35/gfxstate/pkg/driver"
)

// TexImage2D allocates w by h storage for t, bound on unit.
func (s *State) TexImage2D(unit uint32, target driver.TextureTarget, t driver.Texture, w, h int32) {
	s.BindTexture(unit, target, t, Cached)
	s.SetTextureUnit(unit)
	s.drv.TexImage2D(target, w, h)
	s.stats.uploads.Add(1)
}

func (s *State) RenderbufferStorage(r driver.Renderbuffer, w, h int32) {
	s.BindRenderbuffer(r, Cached)
	s.drv.RenderbufferStorage(w, h)
}

func (s *State) AttachTexture(f driver.Framebuffer, target driver.TextureTarget, t driver.Texture) {
	s.BindDrawFramebuffer(f, Cached)
	s.drv.FramebufferTexture(target, t)
}

func (s *State) AttachRenderbuffer(f driver.Framebuffer, r driver.Renderbuffer) {
	s.BindDrawFramebuffer(f, Cached)
	s.drv.FramebufferRenderbuffer(r)
}

// CheckFramebuffer reports why f cannot be rendered to, if it cannot.
func (s *State) CheckFramebuffer(f driver.Framebuffer) error {
	s.BindDrawFramebuffer(f, Cached)
	if err := s.drv.CheckFramebuffer(); err != nil {
		return fmt.Errorf("framebuffer %d: %w", f, err)
	}
	return nil
}
