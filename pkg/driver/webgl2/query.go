//go:build js && wasm

package webgl2

import (
	"syscall/js"

	"github.com/giongto35/gfxstate/pkg/driver"
)

var equations = [...]string{
	driver.Add:             "FUNC_ADD",
	driver.Subtract:        "FUNC_SUBTRACT",
	driver.ReverseSubtract: "FUNC_REVERSE_SUBTRACT",
	driver.Min:             "MIN",
	driver.Max:             "MAX",
}

var factors = [...]string{
	driver.One:                "ONE",
	driver.Zero:               "ZERO",
	driver.SrcColor:           "SRC_COLOR",
	driver.SrcColorComplement: "ONE_MINUS_SRC_COLOR",
	driver.DstColor:           "DST_COLOR",
	driver.DstColorComplement: "ONE_MINUS_DST_COLOR",
	driver.SrcAlpha:           "SRC_ALPHA",
	driver.SrcAlphaComplement: "ONE_MINUS_SRC_ALPHA",
	driver.DstAlpha:           "DST_ALPHA",
	driver.DstAlphaComplement: "ONE_MINUS_DST_ALPHA",
	driver.SrcAlphaSaturate:   "SRC_ALPHA_SATURATE",
}

var comparisons = [...]string{
	driver.Never:          "NEVER",
	driver.Less:           "LESS",
	driver.Equal:          "EQUAL",
	driver.LessOrEqual:    "LEQUAL",
	driver.Greater:        "GREATER",
	driver.NotEqual:       "NOTEQUAL",
	driver.GreaterOrEqual: "GEQUAL",
	driver.Always:         "ALWAYS",
}

var stencilOps = [...]string{
	driver.Keep:     "KEEP",
	driver.ZeroOp:   "ZERO",
	driver.Replace:  "REPLACE",
	driver.Incr:     "INCR",
	driver.IncrWrap: "INCR_WRAP",
	driver.Decr:     "DECR",
	driver.DecrWrap: "DECR_WRAP",
	driver.Invert:   "INVERT",
}

var faces = [...]string{
	driver.Back:  "BACK",
	driver.Front: "FRONT",
	driver.Both:  "FRONT_AND_BACK",
}

func lookup[T ~uint8](d *Driver, table []string, name string, v int) (T, error) {
	for i, e := range table {
		if d.enum(e) == v {
			return T(i), nil
		}
	}
	return 0, &driver.QueryError{Name: name, Value: uint32(v)}
}

func (d *Driver) param(name string) int { return d.gl.Call("getParameter", d.enum(name)).Int() }

func (d *Driver) enabled(name string) bool { return d.gl.Call("isEnabled", d.enum(name)).Bool() }

// QueryState reads back every value the state cache tracks. Bound objects
// created outside of this driver are reported as 0.
func (d *Driver) QueryState() (driver.Snapshot, error) {
	var (
		s   driver.Snapshot
		err error
	)
	get := func(name string) js.Value { return d.gl.Call("getParameter", d.enum(name)) }
	s.ArrayBuffer = driver.Buffer(d.buffers.find(get("ARRAY_BUFFER_BINDING")))
	s.ElementArrayBuffer = driver.Buffer(d.buffers.find(get("ELEMENT_ARRAY_BUFFER_BINDING")))
	s.DrawFramebuffer = driver.Framebuffer(d.framebuffers.find(get("DRAW_FRAMEBUFFER_BINDING")))
	s.Renderbuffer = driver.Renderbuffer(d.renderbuffers.find(get("RENDERBUFFER_BINDING")))
	s.TextureUnit = uint32(d.param("ACTIVE_TEXTURE") - d.enum("TEXTURE0"))

	b := &s.Blending
	b.Enabled = d.enabled("BLEND")
	if b.Equation.RGB, err = lookup[driver.Equation](d, equations[:], "blend equation", d.param("BLEND_EQUATION_RGB")); err != nil {
		return s, err
	}
	if b.Equation.Alpha, err = lookup[driver.Equation](d, equations[:], "blend equation", d.param("BLEND_EQUATION_ALPHA")); err != nil {
		return s, err
	}
	for _, f := range []struct {
		dst   *driver.Factor
		pname string
	}{
		{&b.Factors.SrcRGB, "BLEND_SRC_RGB"},
		{&b.Factors.DstRGB, "BLEND_DST_RGB"},
		{&b.Factors.SrcAlpha, "BLEND_SRC_ALPHA"},
		{&b.Factors.DstAlpha, "BLEND_DST_ALPHA"},
	} {
		if *f.dst, err = lookup[driver.Factor](d, factors[:], "blend factor", d.param(f.pname)); err != nil {
			return s, err
		}
	}

	s.DepthTest.Enabled = d.enabled("DEPTH_TEST")
	if s.DepthTest.Comparison, err = lookup[driver.Comparison](d, comparisons[:], "depth func", d.param("DEPTH_FUNC")); err != nil {
		return s, err
	}
	s.DepthWrite = get("DEPTH_WRITEMASK").Bool()

	st := &s.StencilTest
	st.Enabled = d.enabled("STENCIL_TEST")
	if st.Comparison, err = lookup[driver.Comparison](d, comparisons[:], "stencil func", d.param("STENCIL_FUNC")); err != nil {
		return s, err
	}
	st.Ref = int32(d.param("STENCIL_REF"))
	st.Mask = uint32(get("STENCIL_VALUE_MASK").Float())

	for _, o := range []struct {
		dst   *driver.StencilOp
		pname string
	}{
		{&s.StencilOps.StencilFail, "STENCIL_FAIL"},
		{&s.StencilOps.DepthFail, "STENCIL_PASS_DEPTH_FAIL"},
		{&s.StencilOps.DepthPass, "STENCIL_PASS_DEPTH_PASS"},
	} {
		if *o.dst, err = lookup[driver.StencilOp](d, stencilOps[:], "stencil op", d.param(o.pname)); err != nil {
			return s, err
		}
	}

	fc := &s.FaceCulling
	fc.Enabled = d.enabled("CULL_FACE")
	if d.param("FRONT_FACE") == d.enum("CW") {
		fc.Order = driver.CW
	}
	if fc.Mode, err = lookup[driver.Face](d, faces[:], "cull face", d.param("CULL_FACE_MODE")); err != nil {
		return s, err
	}

	s.VertexRestart = true
	s.MaxTextureUnits = uint32(d.param("MAX_COMBINED_TEXTURE_IMAGE_UNITS"))
	s.MaxUniformBuffers = uint32(d.param("MAX_UNIFORM_BUFFER_BINDINGS"))

	vp := get("VIEWPORT")
	for i := range s.Viewport {
		s.Viewport[i] = int32(vp.Index(i).Int())
	}
	cc := get("COLOR_CLEAR_VALUE")
	for i := range s.ClearColor {
		s.ClearColor[i] = float32(cc.Index(i).Float())
	}
	return s, nil
}
