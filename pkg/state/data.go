package state

import (
	"fmt"

	"github.com/giongto35/gfxstate/pkg/driver"
)

// AllocBuffer binds b unconditionally and replaces its storage with data.
func (s *State) AllocBuffer(b driver.Buffer, data []byte) {
	s.BindArrayBuffer(b, Forced)
	s.drv.BufferData(data)
	s.stats.uploads.Add(1)
}

// WriteBuffer uploads data at offset bytes into b.
func (s *State) WriteBuffer(b driver.Buffer, offset int, data []byte) {
	s.BindArrayBuffer(b, Cached)
	s.drv.BufferSubData(offset, data)
	s.stats.uploads.Add(1)
}

// MapBuffer exposes the first size bytes of b. The memory stays valid until
// UnmapBuffer of the same buffer.
func (s *State) MapBuffer(b driver.Buffer, size int, access driver.Access) ([]byte, error) {
	if s.mapper == nil {
		return nil, ErrNoMapping
	}
	s.BindArrayBuffer(b, Cached)
	mem := s.mapper.MapBuffer(size, access)
	if mem == nil {
		s.log.Warn().Uint32("buffer", uint32(b)).Int("size", size).Msg("map refused")
		return nil, fmt.Errorf("buffer %d: %w", b, ErrMapFailed)
	}
	return mem, nil
}

func (s *State) UnmapBuffer(b driver.Buffer) error {
	if s.mapper == nil {
		return ErrNoMapping
	}
	s.BindArrayBuffer(b, Cached)
	if !s.mapper.UnmapBuffer() {
		s.log.Warn().Uint32("buffer", uint32(b)).Msg("contents lost while mapped")
		return fmt.Errorf("buffer %d: %w", b, ErrUnmapFailed)
	}
	return nil
}
