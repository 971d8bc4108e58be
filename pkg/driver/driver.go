// Package driver describes the primitive surface of a stateful, handle-based
// graphics API (OpenGL 3.3 core, WebGL2) as consumed by the state cache.
//
// Implementations issue the calls directly, with no caching of their own.
// All calls are expected on the thread that owns the current context.
package driver

type (
	Buffer       uint32
	Texture      uint32
	Framebuffer  uint32
	Renderbuffer uint32
)

// DefaultFramebuffer is the back buffer provided by the window system.
const DefaultFramebuffer Framebuffer = 0

type TextureTarget uint8

const (
	Texture1D TextureTarget = iota
	Texture2D
	Texture3D
	TextureCubeMap
	Texture2DArray
)

type Capability uint8

const (
	CapBlend Capability = iota
	CapDepthTest
	CapStencilTest
	CapCullFace
	CapFramebufferSRGB
	// CapPrimitiveRestart restarts primitives at the all-ones index.
	CapPrimitiveRestart
)

type Access uint8

const (
	ReadOnly Access = iota
	WriteOnly
	ReadWrite
)

// Driver is the set of calls the state cache needs from a graphics API.
//
// Create* return ok=false when the driver cannot allocate the object.
// Buffer uploads target the currently bound array buffer, attachments
// target the currently bound draw framebuffer.
type Driver interface {
	CreateBuffer() (Buffer, bool)
	DeleteBuffer(Buffer)
	CreateTexture() (Texture, bool)
	DeleteTexture(Texture)
	CreateFramebuffer() (Framebuffer, bool)
	DeleteFramebuffer(Framebuffer)
	CreateRenderbuffer() (Renderbuffer, bool)
	DeleteRenderbuffer(Renderbuffer)

	BindArrayBuffer(Buffer)
	BindElementArrayBuffer(Buffer)
	// BindUniformBuffer binds b to the indexed uniform buffer binding point.
	BindUniformBuffer(binding uint32, b Buffer)
	BindDrawFramebuffer(Framebuffer)
	BindRenderbuffer(Renderbuffer)
	ActiveTexture(unit uint32)
	BindTexture(TextureTarget, Texture)

	BufferData(data []byte)
	BufferSubData(offset int, data []byte)

	TexImage2D(target TextureTarget, w, h int32)
	RenderbufferStorage(w, h int32)
	FramebufferTexture(TextureTarget, Texture)
	FramebufferRenderbuffer(Renderbuffer)
	CheckFramebuffer() error

	Enable(Capability)
	Disable(Capability)
	BlendEquation(BlendEquations)
	BlendFunc(BlendFactors)
	DepthFunc(Comparison)
	DepthMask(bool)
	StencilFunc(cmp Comparison, ref int32, mask uint32)
	StencilOp(StencilOps)
	FrontFace(Winding)
	CullFace(Face)
	Viewport(v [4]int32)
	ClearColor(c [4]float32)

	// QueryState reads the values the driver currently holds.
	QueryState() (Snapshot, error)
}

// Mapper is implemented by drivers able to expose buffer memory to the CPU.
type Mapper interface {
	// MapBuffer maps size bytes of the bound array buffer.
	// It returns nil when the driver refuses access.
	MapBuffer(size int, access Access) []byte
	// UnmapBuffer releases the mapping of the bound array buffer.
	// It returns false if the buffer contents got corrupted while mapped.
	UnmapBuffer() bool
}

// Snapshot is the driver truth observed at context acquisition.
type Snapshot struct {
	ArrayBuffer        Buffer
	ElementArrayBuffer Buffer
	DrawFramebuffer    Framebuffer
	Renderbuffer       Renderbuffer
	TextureUnit        uint32
	Blending           Blending
	DepthTest          DepthTest
	DepthWrite         bool
	StencilTest        StencilTest
	StencilOps         StencilOps
	FaceCulling        FaceCulling
	SRGBFramebuffer    bool
	VertexRestart      bool
	Viewport           [4]int32
	ClearColor         [4]float32

	// Limits, zero when the driver does not report them.
	MaxTextureUnits   uint32
	MaxUniformBuffers uint32
}
