package buffer

import (
	"encoding/binary"
	"errors"
	"reflect"
	"testing"

	"github.com/giongto35/gfxstate/pkg/driver"
	"github.com/giongto35/gfxstate/pkg/driver/fake"
	"github.com/giongto35/gfxstate/pkg/state"
)

type recorder interface {
	driver.Driver
	Contents(driver.Buffer) []byte
	Calls(string) int
	Errors() []error
	Reset()
}

var drivers = []struct {
	name string
	new  func() recorder
}{
	{name: "plain", new: func() recorder { return fake.New() }},
	{name: "mapping", new: func() recorder { return fake.NewMapping() }},
}

func acquire(t *testing.T, drv driver.Driver) *state.State {
	t.Helper()
	st, err := state.Acquire(drv, state.WithThreadCheck())
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	t.Cleanup(st.Release)
	return st
}

func words(b []byte) []uint32 {
	out := make([]uint32, len(b)/4)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	return out
}

func TestEndToEnd(t *testing.T) {
	for _, d := range drivers {
		t.Run(d.name, func(t *testing.T) {
			drv := d.new()
			st := acquire(t, drv)

			buf, err := New[uint32](st, 4)
			if err != nil {
				t.Fatal(err)
			}
			if got := buf.Whole(); !reflect.DeepEqual(got, []uint32{0, 0, 0, 0}) {
				t.Errorf("new buffer holds %v", got)
			}

			if err := buf.Set(2, 42); err != nil {
				t.Fatal(err)
			}
			if got := buf.Whole(); !reflect.DeepEqual(got, []uint32{0, 0, 42, 0}) {
				t.Errorf("after set: %v", got)
			}

			if err := buf.WriteWhole([]uint32{1, 2, 3, 4}); err != nil {
				t.Fatal(err)
			}
			if got := buf.Whole(); !reflect.DeepEqual(got, []uint32{1, 2, 3, 4}) {
				t.Errorf("after write whole: %v", got)
			}

			err = buf.WriteWhole([]uint32{1, 2, 3})
			var few *TooFewValuesError
			if !errors.As(err, &few) || few.Provided != 3 || few.Len != 4 {
				t.Fatalf("got %v, want too few values 3/4", err)
			}
			if got := buf.Whole(); !reflect.DeepEqual(got, []uint32{1, 2, 3, 4}) {
				t.Errorf("after failed write: %v", got)
			}
			if got := words(drv.Contents(buf.Handle())); !reflect.DeepEqual(got, []uint32{1, 2, 3, 4}) {
				t.Errorf("driver holds %v", got)
			}
			if errs := drv.Errors(); len(errs) > 0 {
				t.Errorf("driver errors: %v", errs)
			}
		})
	}
}

func TestWriteWholeLength(t *testing.T) {
	st := acquire(t, fake.New())
	buf, err := FromValues(st, []uint32{5, 6, 7, 8})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		values []uint32
		err    error
	}{
		{values: nil, err: &TooFewValuesError{Provided: 0, Len: 4}},
		{values: []uint32{1, 2, 3}, err: &TooFewValuesError{Provided: 3, Len: 4}},
		{values: []uint32{1, 2, 3, 4, 5}, err: &TooManyValuesError{Provided: 5, Len: 4}},
	}
	for _, test := range tests {
		if err := buf.WriteWhole(test.values); !reflect.DeepEqual(err, test.err) {
			t.Errorf("write %v: got %v, want %v", test.values, err, test.err)
		}
	}
	if got := buf.Whole(); !reflect.DeepEqual(got, []uint32{5, 6, 7, 8}) {
		t.Errorf("contents changed to %v", got)
	}
}

func TestSetOverflow(t *testing.T) {
	drv := fake.New()
	st := acquire(t, drv)
	buf, err := New[uint32](st, 4)
	if err != nil {
		t.Fatal(err)
	}
	drv.Reset()

	err = buf.Set(4, 9)
	var overflow *OverflowError
	if !errors.As(err, &overflow) || overflow.Index != 4 || overflow.Len != 4 {
		t.Fatalf("got %v, want overflow 4/4", err)
	}
	if n := len(drv.Log()); n != 0 {
		t.Errorf("failed set issued %v", drv.Log())
	}
	if got := buf.Whole(); !reflect.DeepEqual(got, []uint32{0, 0, 0, 0}) {
		t.Errorf("contents changed to %v", got)
	}
}

func TestSetWritesOneElement(t *testing.T) {
	drv := fake.New()
	st := acquire(t, drv)
	buf, _ := New[uint32](st, 4)
	drv.Reset()

	if err := buf.Set(1, 7); err != nil {
		t.Fatal(err)
	}
	want := []string{"BufferSubData[4 4]"}
	if got := drv.Log(); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestGet(t *testing.T) {
	st := acquire(t, fake.New())
	buf, _ := Repeat[int32](st, 3, -1)

	tests := []struct {
		i  int
		v  int32
		ok bool
	}{
		{i: 0, v: -1, ok: true},
		{i: 2, v: -1, ok: true},
		{i: 3, v: 0, ok: false},
		{i: -1, v: 0, ok: false},
	}
	for _, test := range tests {
		if v, ok := buf.Get(test.i); v != test.v || ok != test.ok {
			t.Errorf("get %d: got %v %v, want %v %v", test.i, v, ok, test.v, test.ok)
		}
	}
}

func TestClear(t *testing.T) {
	drv := fake.New()
	st := acquire(t, drv)
	buf, _ := FromValues(st, []uint32{1, 2, 3})
	buf.Clear(9)
	if got := words(drv.Contents(buf.Handle())); !reflect.DeepEqual(got, []uint32{9, 9, 9}) {
		t.Errorf("driver holds %v", got)
	}
}

func TestMapRoundTrip(t *testing.T) {
	for _, d := range drivers {
		t.Run(d.name, func(t *testing.T) {
			drv := d.new()
			st := acquire(t, drv)
			buf, err := New[uint32](st, 4)
			if err != nil {
				t.Fatal(err)
			}

			s, err := buf.MapMut()
			if err != nil {
				t.Fatal(err)
			}
			s.Slice()[2] = 42
			if got := words(drv.Contents(buf.Handle())); !reflect.DeepEqual(got, []uint32{0, 0, 0, 0}) {
				t.Errorf("driver saw %v before release", got)
			}
			s.Unmap()
			s.Unmap()

			if got := buf.Whole(); !reflect.DeepEqual(got, []uint32{0, 0, 42, 0}) {
				t.Errorf("after release: %v", got)
			}
			if got := words(drv.Contents(buf.Handle())); !reflect.DeepEqual(got, []uint32{0, 0, 42, 0}) {
				t.Errorf("driver holds %v", got)
			}
			if errs := drv.Errors(); len(errs) > 0 {
				t.Errorf("driver errors: %v", errs)
			}
		})
	}
}

func TestUpdateWritesBackOnError(t *testing.T) {
	for _, d := range drivers {
		t.Run(d.name, func(t *testing.T) {
			drv := d.new()
			st := acquire(t, drv)
			buf, _ := New[uint32](st, 2)

			boom := errors.New("boom")
			err := buf.Update(func(s []uint32) error {
				s[0] = 3
				return boom
			})
			if err != boom {
				t.Fatalf("got %v, want boom", err)
			}
			if got := words(drv.Contents(buf.Handle())); got[0] != 3 {
				t.Errorf("driver holds %v", got)
			}
			// the view is released, writes are allowed again
			if err := buf.Set(1, 4); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestView(t *testing.T) {
	drv := fake.NewMapping()
	st := acquire(t, drv)
	buf, _ := FromValues(st, []uint32{1, 2})

	var sum uint32
	err := buf.View(func(s []uint32) error {
		if !drv.Mapped(buf.Handle()) {
			t.Error("buffer not mapped during view")
		}
		for _, v := range s {
			sum += v
		}
		return nil
	})
	if err != nil || sum != 3 {
		t.Errorf("got %d %v", sum, err)
	}
	if drv.Mapped(buf.Handle()) {
		t.Error("buffer still mapped after view")
	}
}

func TestReadOnlyViewIsACopy(t *testing.T) {
	for _, d := range drivers {
		t.Run(d.name, func(t *testing.T) {
			drv := d.new()
			st := acquire(t, drv)
			buf, _ := New[uint32](st, 4)

			s, err := buf.Map()
			if err != nil {
				t.Fatal(err)
			}
			s.Slice()[2] = 42
			s.Unmap()

			want := []uint32{0, 0, 0, 0}
			if got := buf.Whole(); !reflect.DeepEqual(got, want) {
				t.Errorf("mirror %v, want %v", got, want)
			}
			if got := words(drv.Contents(buf.Handle())); !reflect.DeepEqual(got, want) {
				t.Errorf("driver holds %v", got)
			}
		})
	}
}

func TestSliceDetachedAfterUnmap(t *testing.T) {
	for _, d := range drivers {
		t.Run(d.name, func(t *testing.T) {
			drv := d.new()
			st := acquire(t, drv)
			buf, _ := New[uint32](st, 4)

			m, err := buf.MapMut()
			if err != nil {
				t.Fatal(err)
			}
			kept := m.Slice()
			kept[2] = 42
			m.Unmap()
			kept[1] = 7

			want := []uint32{0, 0, 42, 0}
			if got := buf.Whole(); !reflect.DeepEqual(got, want) {
				t.Errorf("mirror %v, want %v", got, want)
			}
			if got := words(drv.Contents(buf.Handle())); !reflect.DeepEqual(got, want) {
				t.Errorf("driver holds %v", got)
			}
		})
	}
}

func TestMapBindsBuffer(t *testing.T) {
	for _, d := range drivers {
		t.Run(d.name, func(t *testing.T) {
			drv := d.new()
			st := acquire(t, drv)
			a, _ := New[uint32](st, 2)
			b, _ := New[uint32](st, 2)
			if !st.BoundArrayBuffer().Is(b.Handle()) {
				t.Fatalf("slot %v, want %d", st.BoundArrayBuffer(), b.Handle())
			}
			drv.Reset()

			if err := a.View(func([]uint32) error { return nil }); err != nil {
				t.Fatal(err)
			}
			if n := drv.Calls("BindArrayBuffer"); n != 1 {
				t.Errorf("got %d binds, want 1", n)
			}
			if !st.BoundArrayBuffer().Is(a.Handle()) {
				t.Errorf("slot %v, want %d", st.BoundArrayBuffer(), a.Handle())
			}
		})
	}
}

func TestManyReaders(t *testing.T) {
	drv := fake.NewMapping()
	st := acquire(t, drv)
	buf, _ := New[uint32](st, 2)

	a, err := buf.Map()
	if err != nil {
		t.Fatal(err)
	}
	b, err := buf.Map()
	if err != nil {
		t.Fatal(err)
	}
	if n := drv.Calls("MapBuffer"); n != 1 {
		t.Errorf("mapped %d times, want 1", n)
	}
	a.Unmap()
	if !drv.Mapped(buf.Handle()) {
		t.Error("unmapped while a reader is out")
	}
	b.Unmap()
	if drv.Mapped(buf.Handle()) {
		t.Error("still mapped after the last reader")
	}
}

func TestMapFailed(t *testing.T) {
	drv := fake.NewMapping()
	st := acquire(t, drv)
	buf, _ := New[uint32](st, 4)
	drv.RefuseMap = true

	if _, err := buf.MapMut(); !errors.Is(err, ErrMapFailed) {
		t.Fatalf("got %v, want ErrMapFailed", err)
	}
	if _, err := buf.Map(); !errors.Is(err, ErrMapFailed) {
		t.Fatalf("got %v, want ErrMapFailed", err)
	}
	// no view is left behind
	if err := buf.Set(0, 1); err != nil {
		t.Fatal(err)
	}
}

func TestCorruptedMappingIsRestored(t *testing.T) {
	drv := fake.NewMapping()
	drv.CorruptUnmap = true
	st := acquire(t, drv)
	buf, _ := New[uint32](st, 2)

	err := buf.Update(func(s []uint32) error {
		s[1] = 8
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := words(drv.Contents(buf.Handle())); !reflect.DeepEqual(got, []uint32{0, 8}) {
		t.Errorf("driver holds %v", got)
	}
}

func TestBorrowConflicts(t *testing.T) {
	tests := []struct {
		name string
		run  func(buf *Buffer[uint32])
	}{
		{name: "set while read", run: func(buf *Buffer[uint32]) {
			buf.Map()
			buf.Set(0, 1)
		}},
		{name: "read while mutable", run: func(buf *Buffer[uint32]) {
			buf.MapMut()
			buf.Get(0)
		}},
		{name: "two mutable", run: func(buf *Buffer[uint32]) {
			buf.MapMut()
			buf.MapMut()
		}},
		{name: "mutable while read", run: func(buf *Buffer[uint32]) {
			buf.Map()
			buf.MapMut()
		}},
		{name: "clear while mutable", run: func(buf *Buffer[uint32]) {
			buf.MapMut()
			buf.Clear(0)
		}},
		{name: "destroy while mapped", run: func(buf *Buffer[uint32]) {
			buf.Map()
			buf.Destroy()
		}},
		{name: "slice after unmap", run: func(buf *Buffer[uint32]) {
			s, _ := buf.Map()
			s.Unmap()
			s.Slice()
		}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			st := acquire(t, fake.New())
			buf, _ := New[uint32](st, 2)
			defer func() {
				if recover() == nil {
					t.Error("no panic")
				}
			}()
			test.run(buf)
		})
	}
}

func TestDestroy(t *testing.T) {
	drv := fake.New()
	st := acquire(t, drv)
	buf, _ := New[uint32](st, 2)
	h := buf.Handle()
	st.BindArrayBuffer(h, state.Cached)

	buf.Destroy()
	buf.Destroy()
	if n := drv.Calls("DeleteBuffer"); n != 1 {
		t.Errorf("deleted %d times, want 1", n)
	}
	if _, ok := st.BoundArrayBuffer().Get(); ok {
		t.Error("binding not scrubbed")
	}

	next, _ := New[uint32](st, 2)
	if next.Handle() != h {
		t.Fatalf("handle %d not reused, got %d", h, next.Handle())
	}
	if got := words(drv.Contents(next.Handle())); !reflect.DeepEqual(got, []uint32{0, 0}) {
		t.Errorf("reused buffer holds %v", got)
	}
}

func TestCreateRefused(t *testing.T) {
	drv := fake.New()
	st := acquire(t, drv)
	drv.RefuseCreate = true
	if _, err := New[uint32](st, 4); !errors.Is(err, state.ErrCannotCreate) {
		t.Errorf("got %v, want ErrCannotCreate", err)
	}
}

func TestEmpty(t *testing.T) {
	drv := fake.NewMapping()
	st := acquire(t, drv)
	buf, err := New[uint32](st, 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := buf.Update(func(s []uint32) error { return nil }); err != nil {
		t.Fatal(err)
	}
	if n := drv.Calls("MapBuffer"); n != 0 {
		t.Errorf("empty buffer mapped %d times", n)
	}
}

type vertex struct {
	pos   [2]float32
	color [4]uint8
}

func TestStructElements(t *testing.T) {
	drv := fake.New()
	st := acquire(t, drv)
	buf, err := New[vertex](st, 3)
	if err != nil {
		t.Fatal(err)
	}
	if buf.ByteLen() != 36 {
		t.Errorf("byte len %d, want 36", buf.ByteLen())
	}
	drv.Reset()
	buf.Set(2, vertex{pos: [2]float32{1, 1}, color: [4]uint8{255, 0, 0, 255}})
	want := []string{"BufferSubData[24 12]"}
	if got := drv.Log(); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
