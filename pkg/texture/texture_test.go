package texture

import (
	"errors"
	"testing"

	"github.com/giongto35/gfxstate/pkg/driver"
	"github.com/giongto35/gfxstate/pkg/driver/fake"
	"github.com/giongto35/gfxstate/pkg/state"
)

func TestBind(t *testing.T) {
	drv := fake.New()
	st, err := state.Acquire(drv, state.WithThreadCheck())
	if err != nil {
		t.Fatal(err)
	}
	defer st.Release()

	tex, err := New2D(st, 64, 32)
	if err != nil {
		t.Fatal(err)
	}
	if w, h := tex.Size(); w != 64 || h != 32 {
		t.Errorf("size %dx%d", w, h)
	}
	if errs := drv.Errors(); len(errs) > 0 {
		t.Errorf("driver errors: %v", errs)
	}

	drv.Reset()
	if tex.Bind(0) {
		t.Error("bind on the setup unit reached the driver")
	}
	if !tex.Bind(7) {
		t.Error("bind on unit 7 was elided")
	}
	if tex.Bind(7) {
		t.Error("second bind on unit 7 reached the driver")
	}
	if target, h := drv.BoundTexture(7); target != driver.Texture2D || h != tex.Handle() {
		t.Errorf("unit 7 holds %v %d", target, h)
	}
}

func TestDestroyScrubsUnits(t *testing.T) {
	drv := fake.New()
	st, err := state.Acquire(drv, state.WithThreadCheck())
	if err != nil {
		t.Fatal(err)
	}
	defer st.Release()

	tex, _ := New2D(st, 1, 1)
	tex.Bind(2)
	old := tex.Handle()
	tex.Destroy()
	tex.Destroy()
	if n := drv.Calls("DeleteTexture"); n != 1 {
		t.Errorf("deleted %d times, want 1", n)
	}

	next, _ := New2D(st, 1, 1)
	if next.Handle() != old {
		t.Fatalf("handle %d not reused, got %d", old, next.Handle())
	}
	drv.Reset()
	if !next.Bind(2) {
		t.Error("bind of the reused handle was elided")
	}
}

func TestCreateRefused(t *testing.T) {
	drv := fake.New()
	st, err := state.Acquire(drv)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Release()
	drv.RefuseCreate = true
	if _, err := New2D(st, 1, 1); !errors.Is(err, state.ErrCannotCreate) {
		t.Errorf("got %v, want ErrCannotCreate", err)
	}
}
