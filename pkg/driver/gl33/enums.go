package gl33

import (
	"github.com/giongto35/gfxstate/pkg/driver"
	"github.com/go-gl/gl/v3.3-core/gl"
)

var textureTargets = [...]uint32{
	driver.Texture1D:      gl.TEXTURE_1D,
	driver.Texture2D:      gl.TEXTURE_2D,
	driver.Texture3D:      gl.TEXTURE_3D,
	driver.TextureCubeMap: gl.TEXTURE_CUBE_MAP,
	driver.Texture2DArray: gl.TEXTURE_2D_ARRAY,
}

var capabilities = [...]uint32{
	driver.CapBlend:            gl.BLEND,
	driver.CapDepthTest:        gl.DEPTH_TEST,
	driver.CapStencilTest:      gl.STENCIL_TEST,
	driver.CapCullFace:         gl.CULL_FACE,
	driver.CapFramebufferSRGB:  gl.FRAMEBUFFER_SRGB,
	driver.CapPrimitiveRestart: gl.PRIMITIVE_RESTART,
}

var equations = [...]uint32{
	driver.Add:             gl.FUNC_ADD,
	driver.Subtract:        gl.FUNC_SUBTRACT,
	driver.ReverseSubtract: gl.FUNC_REVERSE_SUBTRACT,
	driver.Min:             gl.MIN,
	driver.Max:             gl.MAX,
}

var factors = [...]uint32{
	driver.One:                gl.ONE,
	driver.Zero:               gl.ZERO,
	driver.SrcColor:           gl.SRC_COLOR,
	driver.SrcColorComplement: gl.ONE_MINUS_SRC_COLOR,
	driver.DstColor:           gl.DST_COLOR,
	driver.DstColorComplement: gl.ONE_MINUS_DST_COLOR,
	driver.SrcAlpha:           gl.SRC_ALPHA,
	driver.SrcAlphaComplement: gl.ONE_MINUS_SRC_ALPHA,
	driver.DstAlpha:           gl.DST_ALPHA,
	driver.DstAlphaComplement: gl.ONE_MINUS_DST_ALPHA,
	driver.SrcAlphaSaturate:   gl.SRC_ALPHA_SATURATE,
}

var comparisons = [...]uint32{
	driver.Never:          gl.NEVER,
	driver.Less:           gl.LESS,
	driver.Equal:          gl.EQUAL,
	driver.LessOrEqual:    gl.LEQUAL,
	driver.Greater:        gl.GREATER,
	driver.NotEqual:       gl.NOTEQUAL,
	driver.GreaterOrEqual: gl.GEQUAL,
	driver.Always:         gl.ALWAYS,
}

var stencilOps = [...]uint32{
	driver.Keep:     gl.KEEP,
	driver.ZeroOp:   gl.ZERO,
	driver.Replace:  gl.REPLACE,
	driver.Incr:     gl.INCR,
	driver.IncrWrap: gl.INCR_WRAP,
	driver.Decr:     gl.DECR,
	driver.DecrWrap: gl.DECR_WRAP,
	driver.Invert:   gl.INVERT,
}

var faces = [...]uint32{
	driver.Back:  gl.BACK,
	driver.Front: gl.FRONT,
	driver.Both:  gl.FRONT_AND_BACK,
}

// lookup finds the index of v in table.
func lookup[T ~uint8](table []uint32, name string, v int32) (T, error) {
	for i, e := range table {
		if e == uint32(v) {
			return T(i), nil
		}
	}
	return 0, &driver.QueryError{Name: name, Value: uint32(v)}
}
