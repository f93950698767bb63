//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// OffscreenTarget is a single-sample color texture used in place of a
// window surface, for headless runs and tests.
type OffscreenTarget struct {
	device hal.Device
	format gputypes.TextureFormat
	tex    hal.Texture
	view   hal.TextureView
	width  uint32
	height uint32
}

// NewOffscreenTarget creates a w×h color target in the given format.
func NewOffscreenTarget(device hal.Device, w, h uint32, format gputypes.TextureFormat) (*OffscreenTarget, error) {
	t := &OffscreenTarget{device: device, format: format}
	if err := t.Resize(w, h); err != nil {
		return nil, err
	}
	return t, nil
}

// Resize recreates the texture if the size changed. Zero extents are
// ignored and keep the previous texture.
func (t *OffscreenTarget) Resize(w, h uint32) error {
	if w == 0 || h == 0 {
		return nil
	}
	if t.width == w && t.height == h && t.tex != nil {
		return nil
	}
	t.destroy()

	tex, err := t.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "life_offscreen_color",
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        t.format,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("create offscreen texture: %w", err)
	}
	view, err := t.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: "life_offscreen_color_view",
	})
	if err != nil {
		t.device.DestroyTexture(tex)
		return fmt.Errorf("create offscreen view: %w", err)
	}
	t.tex, t.view = tex, view
	t.width, t.height = w, h
	return nil
}

// View returns the color attachment view.
func (t *OffscreenTarget) View() hal.TextureView { return t.view }

// Size returns the target dimensions.
func (t *OffscreenTarget) Size() (uint32, uint32) { return t.width, t.height }

// Destroy releases the texture. Safe to call more than once.
func (t *OffscreenTarget) Destroy() { t.destroy() }

func (t *OffscreenTarget) destroy() {
	if t.view != nil {
		t.device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.tex != nil {
		t.device.DestroyTexture(t.tex)
		t.tex = nil
	}
	t.width, t.height = 0, 0
}
