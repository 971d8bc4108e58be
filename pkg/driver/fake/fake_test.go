package fake

import (
	"reflect"
	"testing"

	"github.com/giongto35/gfxstate/pkg/driver"
)

var _ driver.Driver = (*Driver)(nil)
var _ driver.Mapper = (*MappingDriver)(nil)

func TestHandleReuse(t *testing.T) {
	d := New()
	a, _ := d.CreateBuffer()
	b, _ := d.CreateBuffer()
	c, _ := d.CreateBuffer()
	d.DeleteBuffer(a)
	d.DeleteBuffer(c)

	tests := []driver.Buffer{c, a, 4}
	for _, want := range tests {
		if got, ok := d.CreateBuffer(); !ok || got != want {
			t.Errorf("got %d %v, want %d", got, ok, want)
		}
	}
	if !d.Alive(b) {
		t.Errorf("buffer %d died", b)
	}
}

func TestLimit(t *testing.T) {
	d := New()
	d.Limit(1)
	if _, ok := d.CreateTexture(); !ok {
		t.Fatal("first texture refused")
	}
	if _, ok := d.CreateTexture(); ok {
		t.Error("texture over the limit created")
	}
}

func TestDeleteUnbinds(t *testing.T) {
	d := New()
	b, _ := d.CreateBuffer()
	d.BindArrayBuffer(b)
	d.BindElementArrayBuffer(b)
	d.BindUniformBuffer(3, b)
	d.DeleteBuffer(b)
	if d.Truth.ArrayBuffer != 0 || d.Truth.ElementArrayBuffer != 0 || d.UniformBuffer(3) != 0 {
		t.Errorf("buffer still bound: %d %d %d", d.Truth.ArrayBuffer, d.Truth.ElementArrayBuffer, d.UniformBuffer(3))
	}
	d.DeleteBuffer(b)
	if len(d.Errors()) != 1 {
		t.Errorf("double delete: %v", d.Errors())
	}
}

func TestBindingRange(t *testing.T) {
	d := New()
	b, _ := d.CreateBuffer()
	d.ActiveTexture(d.Truth.MaxTextureUnits)
	d.BindUniformBuffer(d.Truth.MaxUniformBuffers, b)
	if n := len(d.Errors()); n != 2 {
		t.Errorf("got %d errors, want 2: %v", n, d.Errors())
	}
	if d.Truth.TextureUnit != 0 {
		t.Errorf("active unit moved to %d", d.Truth.TextureUnit)
	}
}

func TestBufferData(t *testing.T) {
	d := New()
	b, _ := d.CreateBuffer()
	d.BufferData([]byte{1})
	if len(d.Errors()) != 1 {
		t.Fatalf("upload without a buffer: %v", d.Errors())
	}
	d.Reset()

	d.BindArrayBuffer(b)
	d.BufferData([]byte{1, 2, 3})
	d.BufferSubData(1, []byte{7, 8})
	d.BufferSubData(2, []byte{9, 9})
	if got := d.Contents(b); !reflect.DeepEqual(got, []byte{1, 7, 8}) {
		t.Errorf("contents %v", got)
	}
	if len(d.Errors()) != 1 {
		t.Errorf("out of range upload: %v", d.Errors())
	}
	want := []string{"BindArrayBuffer[1]", "BufferData[3]", "BufferSubData[1 2]", "BufferSubData[2 2]"}
	if got := d.Log(); !reflect.DeepEqual(got, want) {
		t.Errorf("log %v, want %v", got, want)
	}
}

func TestMapping(t *testing.T) {
	d := NewMapping()
	b, _ := d.CreateBuffer()
	d.BindArrayBuffer(b)
	d.BufferData([]byte{1, 2})

	mem := d.MapBuffer(2, driver.ReadWrite)
	if mem == nil {
		t.Fatal("map refused")
	}
	if d.MapBuffer(2, driver.ReadWrite) != nil {
		t.Error("mapped twice")
	}
	mem[1] = 5
	d.BufferSubData(0, []byte{0})
	if !d.UnmapBuffer() {
		t.Error("unmap failed")
	}
	if got := d.Contents(b); !reflect.DeepEqual(got, []byte{1, 5}) {
		t.Errorf("contents %v", got)
	}
	if n := len(d.Errors()); n != 2 {
		t.Errorf("got %d errors, want 2: %v", n, d.Errors())
	}

	d.RefuseMap = true
	if d.MapBuffer(2, driver.ReadOnly) != nil {
		t.Error("refused map returned memory")
	}
}

func TestFramebufferCompleteness(t *testing.T) {
	d := New()
	f, _ := d.CreateFramebuffer()
	r, _ := d.CreateRenderbuffer()
	if err := d.CheckFramebuffer(); err != nil {
		t.Errorf("default framebuffer: %v", err)
	}
	d.BindDrawFramebuffer(f)
	if err := d.CheckFramebuffer(); err == nil {
		t.Error("empty framebuffer is complete")
	}
	d.FramebufferRenderbuffer(r)
	if err := d.CheckFramebuffer(); err != nil {
		t.Error(err)
	}
	d.DeleteFramebuffer(f)
	if d.Truth.DrawFramebuffer != driver.DefaultFramebuffer {
		t.Error("deleted framebuffer still bound")
	}
}
