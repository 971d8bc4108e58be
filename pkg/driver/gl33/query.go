package gl33

import (
	"github.com/giongto35/gfxstate/pkg/driver"
	"github.com/go-gl/gl/v3.3-core/gl"
)

func integer(pname uint32) int32 {
	var v int32
	gl.GetIntegerv(pname, &v)
	return v
}

// QueryState reads back every value the state cache tracks.
func (*Driver) QueryState() (driver.Snapshot, error) {
	var (
		s   driver.Snapshot
		err error
	)
	s.ArrayBuffer = driver.Buffer(integer(gl.ARRAY_BUFFER_BINDING))
	s.ElementArrayBuffer = driver.Buffer(integer(gl.ELEMENT_ARRAY_BUFFER_BINDING))
	s.DrawFramebuffer = driver.Framebuffer(integer(gl.DRAW_FRAMEBUFFER_BINDING))
	s.Renderbuffer = driver.Renderbuffer(integer(gl.RENDERBUFFER_BINDING))
	s.TextureUnit = uint32(integer(gl.ACTIVE_TEXTURE)) - gl.TEXTURE0

	b := &s.Blending
	b.Enabled = gl.IsEnabled(gl.BLEND)
	if b.Equation.RGB, err = lookup[driver.Equation](equations[:], "blend equation", integer(gl.BLEND_EQUATION_RGB)); err != nil {
		return s, err
	}
	if b.Equation.Alpha, err = lookup[driver.Equation](equations[:], "blend equation", integer(gl.BLEND_EQUATION_ALPHA)); err != nil {
		return s, err
	}
	for _, f := range []struct {
		dst   *driver.Factor
		pname uint32
	}{
		{&b.Factors.SrcRGB, gl.BLEND_SRC_RGB},
		{&b.Factors.DstRGB, gl.BLEND_DST_RGB},
		{&b.Factors.SrcAlpha, gl.BLEND_SRC_ALPHA},
		{&b.Factors.DstAlpha, gl.BLEND_DST_ALPHA},
	} {
		if *f.dst, err = lookup[driver.Factor](factors[:], "blend factor", integer(f.pname)); err != nil {
			return s, err
		}
	}

	s.DepthTest.Enabled = gl.IsEnabled(gl.DEPTH_TEST)
	if s.DepthTest.Comparison, err = lookup[driver.Comparison](comparisons[:], "depth func", integer(gl.DEPTH_FUNC)); err != nil {
		return s, err
	}
	var mask bool
	gl.GetBooleanv(gl.DEPTH_WRITEMASK, &mask)
	s.DepthWrite = mask

	st := &s.StencilTest
	st.Enabled = gl.IsEnabled(gl.STENCIL_TEST)
	if st.Comparison, err = lookup[driver.Comparison](comparisons[:], "stencil func", integer(gl.STENCIL_FUNC)); err != nil {
		return s, err
	}
	st.Ref = integer(gl.STENCIL_REF)
	st.Mask = uint32(integer(gl.STENCIL_VALUE_MASK))

	for _, o := range []struct {
		dst   *driver.StencilOp
		pname uint32
	}{
		{&s.StencilOps.StencilFail, gl.STENCIL_FAIL},
		{&s.StencilOps.DepthFail, gl.STENCIL_PASS_DEPTH_FAIL},
		{&s.StencilOps.DepthPass, gl.STENCIL_PASS_DEPTH_PASS},
	} {
		if *o.dst, err = lookup[driver.StencilOp](stencilOps[:], "stencil op", integer(o.pname)); err != nil {
			return s, err
		}
	}

	fc := &s.FaceCulling
	fc.Enabled = gl.IsEnabled(gl.CULL_FACE)
	if integer(gl.FRONT_FACE) == gl.CW {
		fc.Order = driver.CW
	}
	if fc.Mode, err = lookup[driver.Face](faces[:], "cull face", integer(gl.CULL_FACE_MODE)); err != nil {
		return s, err
	}

	s.SRGBFramebuffer = gl.IsEnabled(gl.FRAMEBUFFER_SRGB)
	s.VertexRestart = gl.IsEnabled(gl.PRIMITIVE_RESTART)
	s.MaxTextureUnits = uint32(integer(gl.MAX_COMBINED_TEXTURE_IMAGE_UNITS))
	s.MaxUniformBuffers = uint32(integer(gl.MAX_UNIFORM_BUFFER_BINDINGS))

	gl.GetIntegerv(gl.VIEWPORT, &s.Viewport[0])
	gl.GetFloatv(gl.COLOR_CLEAR_VALUE, &s.ClearColor[0])
	return s, nil
}
