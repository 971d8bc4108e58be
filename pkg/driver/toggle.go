package driver

import "fmt"

type Equation uint8

const (
	Add Equation = iota
	Subtract
	ReverseSubtract
	Min
	Max
)

type Factor uint8

const (
	One Factor = iota
	Zero
	SrcColor
	SrcColorComplement
	DstColor
	DstColorComplement
	SrcAlpha
	SrcAlphaComplement
	DstAlpha
	DstAlphaComplement
	SrcAlphaSaturate
)

type BlendEquations struct{ RGB, Alpha Equation }

type BlendFactors struct{ SrcRGB, DstRGB, SrcAlpha, DstAlpha Factor }

type Blending struct {
	Enabled  bool
	Equation BlendEquations
	Factors  BlendFactors
}

// Blend returns an enabled blending with the same equation and factors
// for color and alpha.
func Blend(eq Equation, src, dst Factor) Blending {
	return Blending{
		Enabled:  true,
		Equation: BlendEquations{RGB: eq, Alpha: eq},
		Factors:  BlendFactors{SrcRGB: src, DstRGB: dst, SrcAlpha: src, DstAlpha: dst},
	}
}

type Comparison uint8

const (
	Never Comparison = iota
	Less
	Equal
	LessOrEqual
	Greater
	NotEqual
	GreaterOrEqual
	Always
)

type DepthTest struct {
	Enabled    bool
	Comparison Comparison
}

type StencilTest struct {
	Enabled    bool
	Comparison Comparison
	Ref        int32
	Mask       uint32
}

type StencilOp uint8

const (
	Keep StencilOp = iota
	ZeroOp
	Replace
	Incr
	IncrWrap
	Decr
	DecrWrap
	Invert
)

type StencilOps struct{ StencilFail, DepthFail, DepthPass StencilOp }

type Winding uint8

const (
	CCW Winding = iota
	CW
)

type Face uint8

const (
	Back Face = iota
	Front
	Both
)

type FaceCulling struct {
	Enabled bool
	Order   Winding
	Mode    Face
}

func (e Equation) String() string {
	switch e {
	case Add:
		return "add"
	case Subtract:
		return "subtract"
	case ReverseSubtract:
		return "reverse-subtract"
	case Min:
		return "min"
	case Max:
		return "max"
	}
	return fmt.Sprintf("equation(%d)", uint8(e))
}

var factorNames = [...]string{
	One:                "one",
	Zero:               "zero",
	SrcColor:           "src-color",
	SrcColorComplement: "one-minus-src-color",
	DstColor:           "dst-color",
	DstColorComplement: "one-minus-dst-color",
	SrcAlpha:           "src-alpha",
	SrcAlphaComplement: "one-minus-src-alpha",
	DstAlpha:           "dst-alpha",
	DstAlphaComplement: "one-minus-dst-alpha",
	SrcAlphaSaturate:   "src-alpha-saturate",
}

func (f Factor) String() string {
	if int(f) < len(factorNames) {
		return factorNames[f]
	}
	return fmt.Sprintf("factor(%d)", uint8(f))
}

var comparisonNames = [...]string{
	Never:          "never",
	Less:           "less",
	Equal:          "equal",
	LessOrEqual:    "less-or-equal",
	Greater:        "greater",
	NotEqual:       "not-equal",
	GreaterOrEqual: "greater-or-equal",
	Always:         "always",
}

func (c Comparison) String() string {
	if int(c) < len(comparisonNames) {
		return comparisonNames[c]
	}
	return fmt.Sprintf("comparison(%d)", uint8(c))
}

var stencilOpNames = [...]string{
	Keep:     "keep",
	ZeroOp:   "zero",
	Replace:  "replace",
	Incr:     "incr",
	IncrWrap: "incr-wrap",
	Decr:     "decr",
	DecrWrap: "decr-wrap",
	Invert:   "invert",
}

func (o StencilOp) String() string {
	if int(o) < len(stencilOpNames) {
		return stencilOpNames[o]
	}
	return fmt.Sprintf("stencil-op(%d)", uint8(o))
}

func (w Winding) String() string {
	if w == CW {
		return "cw"
	}
	return "ccw"
}

func (f Face) String() string {
	switch f {
	case Front:
		return "front"
	case Both:
		return "front-and-back"
	}
	return "back"
}

func (c Capability) String() string {
	switch c {
	case CapBlend:
		return "blend"
	case CapDepthTest:
		return "depth-test"
	case CapStencilTest:
		return "stencil-test"
	case CapCullFace:
		return "cull-face"
	case CapFramebufferSRGB:
		return "framebuffer-srgb"
	case CapPrimitiveRestart:
		return "primitive-restart"
	}
	return fmt.Sprintf("capability(%d)", uint8(c))
}

func (t TextureTarget) String() string {
	switch t {
	case Texture1D:
		return "1d"
	case Texture2D:
		return "2d"
	case Texture3D:
		return "3d"
	case TextureCubeMap:
		return "cubemap"
	case Texture2DArray:
		return "2d-array"
	}
	return fmt.Sprintf("target(%d)", uint8(t))
}
