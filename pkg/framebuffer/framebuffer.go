// Package framebuffer is an offscreen render target made of a color
// texture and a depth renderbuffer it owns.
package framebuffer

import (
	"github.com/giongto35/gfxstate/pkg/driver"
	"github.com/giongto35/gfxstate/pkg/state"
	"github.com/giongto35/gfxstate/pkg/texture"
)

type Framebuffer struct {
	st        *state.State
	h         driver.Framebuffer
	color     *texture.Texture
	depth     driver.Renderbuffer
	w, ht     int32
	destroyed bool
}

// New creates a w by h framebuffer. Nothing is left allocated on failure.
func New(st *state.State, w, h int32) (*Framebuffer, error) {
	// take the color texture up front so a refusal happens before anything
	// else is allocated
	if err := st.ReserveTextures(1); err != nil {
		return nil, err
	}
	id, err := st.CreateFramebuffer()
	if err != nil {
		return nil, err
	}
	fb := &Framebuffer{st: st, h: id, w: w, ht: h}
	st.BindDrawFramebuffer(id, state.Forced)

	if fb.color, err = texture.New2D(st, w, h); err != nil {
		fb.Destroy()
		return nil, err
	}
	st.AttachTexture(id, fb.color.Target(), fb.color.Handle())

	if fb.depth, err = st.CreateRenderbuffer(); err != nil {
		fb.Destroy()
		return nil, err
	}
	st.BindRenderbuffer(fb.depth, state.Forced)
	st.RenderbufferStorage(fb.depth, w, h)
	st.AttachRenderbuffer(id, fb.depth)

	if err := st.CheckFramebuffer(id); err != nil {
		fb.Destroy()
		return nil, err
	}
	st.Logger().Debug().Uint32("framebuffer", uint32(id)).Int32("w", w).Int32("h", h).Msg("framebuffer created")
	return fb, nil
}

func (f *Framebuffer) Handle() driver.Framebuffer { return f.h }

// Color returns the texture rendered into.
func (f *Framebuffer) Color() *texture.Texture { return f.color }

func (f *Framebuffer) Size() (w, h int32) { return f.w, f.ht }

// Bind makes the framebuffer the draw target and reports whether the
// driver was called.
func (f *Framebuffer) Bind() bool {
	return f.st.BindDrawFramebuffer(f.h, state.Cached)
}

// Destroy deletes the depth renderbuffer, the color texture and the
// framebuffer, in that order. Destroying twice is a no-op.
func (f *Framebuffer) Destroy() {
	if f.destroyed {
		return
	}
	f.destroyed = true
	f.st.DestroyRenderbuffer(f.depth)
	if f.color != nil {
		f.color.Destroy()
	}
	f.st.DestroyFramebuffer(f.h)
}
