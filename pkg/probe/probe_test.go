package probe

import (
	"errors"
	"testing"

	"github.com/giongto35/gfxstate/pkg/config"
	"github.com/giongto35/gfxstate/pkg/driver"
	"github.com/giongto35/gfxstate/pkg/driver/fake"
	"github.com/giongto35/gfxstate/pkg/logger"
	"github.com/giongto35/gfxstate/pkg/state"
)

var conf = config.Probe{Iterations: 10, Width: 8, Height: 8}

type recorder interface {
	driver.Driver
	Errors() []error
}

func TestRun(t *testing.T) {
	tests := []struct {
		name string
		drv  recorder
	}{
		{name: "mirrored", drv: fake.New()},
		{name: "mapped", drv: fake.NewMapping()},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			st, err := state.Acquire(test.drv)
			if err != nil {
				t.Fatal(err)
			}
			defer st.Release()

			r, err := Run(st, conf, logger.Nop())
			if err != nil {
				for _, x := range r.Results {
					if !x.Passed() {
						t.Errorf("%s: %v", x.Name, x.Err)
					}
				}
				t.FailNow()
			}
			if len(r.Results) != len(scenarios) {
				t.Errorf("got %d results, want %d", len(r.Results), len(scenarios))
			}
			if errs := test.drv.Errors(); len(errs) > 0 {
				t.Errorf("driver errors: %v", errs)
			}
			if r.Stats.BindsElided < uint64(conf.Iterations-1) {
				t.Errorf("only %d binds elided", r.Stats.BindsElided)
			}
		})
	}
}

func TestRunReportsFailures(t *testing.T) {
	drv := fake.New()
	drv.RefuseCreate = true
	st, err := state.Acquire(drv)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Release()

	r, err := Run(st, conf, logger.Nop())
	if !errors.Is(err, ErrFailed) {
		t.Fatalf("got %v, want %v", err, ErrFailed)
	}
	if len(r.Results) != len(scenarios) {
		t.Fatalf("report is partial: %d results", len(r.Results))
	}
	// only the toggles need no objects
	if n := r.Failed(); n != len(scenarios)-1 {
		t.Errorf("%d failed, want %d", n, len(scenarios)-1)
	}
	for _, x := range r.Results {
		if x.Name == "toggles" && !x.Passed() {
			t.Errorf("toggles: %v", x.Err)
		}
	}
}

func TestProtect(t *testing.T) {
	_, err := protect(nil, conf, func(*state.State, config.Probe) (string, error) {
		panic("boom")
	})
	if err == nil || err.Error() != "panic: boom" {
		t.Errorf("got %v", err)
	}
}

func TestExpect(t *testing.T) {
	if err := expect("slice", []int{1, 2}, []int{1, 2}); err != nil {
		t.Error(err)
	}
	if err := expect("int", 1, 2); err == nil || err.Error() != "int: got 1, want 2" {
		t.Errorf("got %v", err)
	}
}
