package main

import (
	"testing"

	"github.com/gogpu/wgpu"
	"github.com/gogpu/wgpu/hal"
)

func TestRunRejectsBadFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"-bogus"}},
		{"zero width", []string{"-width", "0"}},
		{"bad log level", []string{"-log-level", "loud"}},
		{"negative headless", []string{"-headless", "-3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code := run(tt.args); code != 2 {
				t.Errorf("run(%v) = %d, want 2", tt.args, code)
			}
		})
	}
}

func TestPopulation(t *testing.T) {
	if got := population([]uint32{1, 0, 1, 1, 0}); got != 3 {
		t.Errorf("population() = %d, want 3", got)
	}
}

// fakeHostView stands in for the host's surface view.
type fakeHostView struct{ view hal.TextureView }

func (v *fakeHostView) HalTextureView() hal.TextureView { return v.view }

type fakeHALView struct{ hal.TextureView }

func TestHostView(t *testing.T) {
	if got := hostView[*wgpu.TextureView](nil); got != nil {
		t.Errorf("hostView(nil *wgpu.TextureView) = %v, want nil", got)
	}
	if got := hostView[*fakeHostView](nil); got != nil {
		t.Errorf("hostView(nil) = %v, want nil", got)
	}

	want := fakeHALView{}
	if got := hostView(&fakeHostView{view: want}); got != want {
		t.Errorf("hostView() = %v, want the wrapped HAL view", got)
	}
}

func TestSurfaceExtent(t *testing.T) {
	tests := []struct {
		w, h   int
		ok     bool
		ww, wh uint32
	}{
		{800, 600, true, 800, 600},
		{0, 600, false, 0, 0},
		{800, 0, false, 0, 0},
		{-1, -1, false, 0, 0},
	}
	for _, tt := range tests {
		w, h, ok := surfaceExtent(tt.w, tt.h)
		if ok != tt.ok || w != tt.ww || h != tt.wh {
			t.Errorf("surfaceExtent(%d, %d) = %d, %d, %v, want %d, %d, %v",
				tt.w, tt.h, w, h, ok, tt.ww, tt.wh, tt.ok)
		}
	}
}
