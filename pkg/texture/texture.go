// Package texture is the texture resource: storage allocation, unit
// binding and teardown through the state cache.
package texture

import (
	"github.com/giongto35/gfxstate/pkg/driver"
	"github.com/giongto35/gfxstate/pkg/state"
)

// setupUnit is the unit textures are bound to while being set up.
const setupUnit = 0

type Texture struct {
	st        *state.State
	h         driver.Texture
	target    driver.TextureTarget
	w, ht     int32
	destroyed bool
}

// New2D creates a w by h 2D texture.
func New2D(st *state.State, w, h int32) (*Texture, error) {
	id, err := st.CreateTexture()
	if err != nil {
		return nil, err
	}
	st.BindTexture(setupUnit, driver.Texture2D, id, state.Forced)
	st.TexImage2D(setupUnit, driver.Texture2D, id, w, h)
	return &Texture{st: st, h: id, target: driver.Texture2D, w: w, ht: h}, nil
}

func (t *Texture) Handle() driver.Texture { return t.h }

func (t *Texture) Target() driver.TextureTarget { return t.target }

func (t *Texture) Size() (w, h int32) { return t.w, t.ht }

// Bind binds the texture on unit and reports whether the driver was called.
func (t *Texture) Bind(unit uint32) bool {
	return t.st.BindTexture(unit, t.target, t.h, state.Cached)
}

// Destroy deletes the texture. Destroying twice is a no-op.
func (t *Texture) Destroy() {
	if t.destroyed {
		return
	}
	t.destroyed = true
	t.st.DestroyTexture(t.h)
}
