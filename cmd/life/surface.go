package main

import "github.com/gogpu/wgpu/hal"

// halViewer is a host texture view that wraps a HAL view, such as the
// *wgpu.TextureView gogpu hands out for the current surface image.
type halViewer interface {
	comparable
	HalTextureView() hal.TextureView
}

// hostView unwraps the host's surface view. A nil view, meaning the host
// had no image this frame, maps to a nil HAL view.
func hostView[V halViewer](v V) hal.TextureView {
	var none V
	if v == none {
		return nil
	}
	return v.HalTextureView()
}

// size is any integer type a host reports window dimensions in.
type size interface {
	~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64
}

// surfaceExtent converts a host window size into a surface extent. It
// reports false for a minimized or not yet sized window.
func surfaceExtent[T size](w, h T) (uint32, uint32, bool) {
	if w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return uint32(w), uint32(h), true //nolint:gosec // checked positive
}
