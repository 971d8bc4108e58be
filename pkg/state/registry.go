package state

import (
	"fmt"

	"github.com/giongto35/gfxstate/pkg/driver"
)

func (s *State) refused(kind string) error {
	s.log.Warn().Str("kind", kind).Msg("driver refused to create")
	return fmt.Errorf("%s: %w", kind, ErrCannotCreate)
}

func (s *State) CreateBuffer() (driver.Buffer, error) {
	s.check()
	b, ok := s.drv.CreateBuffer()
	if !ok {
		return 0, s.refused("buffer")
	}
	s.stats.creates.Add(1)
	return b, nil
}

// CreateTexture takes a texture from the reserve when there is one.
func (s *State) CreateTexture() (driver.Texture, error) {
	s.check()
	if l := len(s.pool); l > 0 {
		t := s.pool[l-1]
		s.pool = s.pool[:l-1]
		return t, nil
	}
	t, ok := s.drv.CreateTexture()
	if !ok {
		return 0, s.refused("texture")
	}
	s.stats.creates.Add(1)
	return t, nil
}

// ReserveTextures creates textures ahead of time so that a resource made of
// several textures does not fail halfway. Textures still in the reserve are
// deleted on Release.
func (s *State) ReserveTextures(n int) error {
	s.check()
	for len(s.pool) < n {
		t, ok := s.drv.CreateTexture()
		if !ok {
			return s.refused("texture")
		}
		s.stats.creates.Add(1)
		s.pool = append(s.pool, t)
	}
	return nil
}

// Reserved returns how many textures wait in the reserve.
func (s *State) Reserved() int { return len(s.pool) }

func (s *State) CreateFramebuffer() (driver.Framebuffer, error) {
	s.check()
	f, ok := s.drv.CreateFramebuffer()
	if !ok {
		return 0, s.refused("framebuffer")
	}
	s.stats.creates.Add(1)
	return f, nil
}

func (s *State) CreateRenderbuffer() (driver.Renderbuffer, error) {
	s.check()
	r, ok := s.drv.CreateRenderbuffer()
	if !ok {
		return 0, s.refused("renderbuffer")
	}
	s.stats.creates.Add(1)
	return r, nil
}
