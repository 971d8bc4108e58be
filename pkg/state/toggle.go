package state

import "github.com/giongto35/gfxstate/pkg/driver"

func (s *State) enable(c driver.Capability) func(bool) {
	return func(on bool) {
		if on {
			s.drv.Enable(c)
		} else {
			s.drv.Disable(c)
		}
	}
}

// SetBlending enables or disables blending. The equation and factors are
// only sent while blending is enabled.
func (s *State) SetBlending(b driver.Blending) {
	s.check()
	toggle(s, &s.blend, b.Enabled, s.enable(driver.CapBlend))
	if !b.Enabled {
		return
	}
	toggle(s, &s.blendEq, b.Equation, s.drv.BlendEquation)
	toggle(s, &s.blendFactors, b.Factors, s.drv.BlendFunc)
}

func (s *State) SetDepthTest(d driver.DepthTest) {
	s.check()
	toggle(s, &s.depthTest, d.Enabled, s.enable(driver.CapDepthTest))
	if d.Enabled {
		toggle(s, &s.depthCmp, d.Comparison, s.drv.DepthFunc)
	}
}

func (s *State) SetDepthWrite(on bool) {
	s.check()
	toggle(s, &s.depthWrite, on, s.drv.DepthMask)
}

func (s *State) SetStencilTest(t driver.StencilTest) {
	s.check()
	toggle(s, &s.stencilTest, t.Enabled, s.enable(driver.CapStencilTest))
	if !t.Enabled {
		return
	}
	fn := stencilFunc{cmp: t.Comparison, ref: t.Ref, mask: t.Mask}
	toggle(s, &s.stencilFunc, fn, func(f stencilFunc) { s.drv.StencilFunc(f.cmp, f.ref, f.mask) })
}

func (s *State) SetStencilOps(o driver.StencilOps) {
	s.check()
	toggle(s, &s.stencilOps, o, s.drv.StencilOp)
}

func (s *State) SetFaceCulling(c driver.FaceCulling) {
	s.check()
	toggle(s, &s.cullFace, c.Enabled, s.enable(driver.CapCullFace))
	if !c.Enabled {
		return
	}
	toggle(s, &s.cullOrder, c.Order, s.drv.FrontFace)
	toggle(s, &s.cullMode, c.Mode, s.drv.CullFace)
}

// SetSRGBFramebuffer switches the linear to sRGB conversion of writes to
// sRGB color attachments.
func (s *State) SetSRGBFramebuffer(on bool) {
	s.check()
	toggle(s, &s.srgb, on, s.enable(driver.CapFramebufferSRGB))
}

// SetVertexRestart switches primitive restart at the all-ones index.
func (s *State) SetVertexRestart(on bool) {
	s.check()
	toggle(s, &s.restart, on, s.enable(driver.CapPrimitiveRestart))
}

// SetViewport sets x, y, width and height of the viewport.
func (s *State) SetViewport(v [4]int32) {
	s.check()
	toggle(s, &s.viewport, v, s.drv.Viewport)
}

func (s *State) SetClearColor(c [4]float32) {
	s.check()
	toggle(s, &s.clearColor, c, s.drv.ClearColor)
}

func (s *State) InvalidateBlending() {
	s.blend.Invalidate()
	s.blendEq.Invalidate()
	s.blendFactors.Invalidate()
}

func (s *State) InvalidateDepthTest() {
	s.depthTest.Invalidate()
	s.depthCmp.Invalidate()
}

func (s *State) InvalidateDepthWrite() { s.depthWrite.Invalidate() }

func (s *State) InvalidateStencilTest() {
	s.stencilTest.Invalidate()
	s.stencilFunc.Invalidate()
}

func (s *State) InvalidateStencilOps() { s.stencilOps.Invalidate() }

func (s *State) InvalidateFaceCulling() {
	s.cullFace.Invalidate()
	s.cullOrder.Invalidate()
	s.cullMode.Invalidate()
}

func (s *State) InvalidateSRGBFramebuffer() { s.srgb.Invalidate() }
func (s *State) InvalidateVertexRestart()   { s.restart.Invalidate() }
func (s *State) InvalidateViewport()        { s.viewport.Invalidate() }
func (s *State) InvalidateClearColor()      { s.clearColor.Invalidate() }

func (s *State) invalidateToggles() {
	s.InvalidateBlending()
	s.InvalidateDepthTest()
	s.InvalidateDepthWrite()
	s.InvalidateStencilTest()
	s.InvalidateStencilOps()
	s.InvalidateFaceCulling()
	s.InvalidateSRGBFramebuffer()
	s.InvalidateVertexRestart()
	s.InvalidateViewport()
	s.InvalidateClearColor()
}
