//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// DefaultBackends is the backend preference order used by OpenDevice.
var DefaultBackends = []gputypes.Backend{gputypes.BackendVulkan}

// Context holds the device and queue every other component is built on.
//
// A Context either owns its device (OpenDevice) or borrows one from a host
// window (FromProvider). Borrowed devices are not destroyed by Close.
// Context implements HalDevice() any and HalQueue() any, the shape of
// gpucontext.HalProvider, so it can be handed to other gogpu libraries.
type Context struct {
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue
	adapter  string
	format   gputypes.TextureFormat
	external bool
}

// OpenDevice creates an instance on the first registered backend in
// backends (DefaultBackends when empty), selects an adapter with
// SelectAdapter and opens a device with default limits.
func OpenDevice(backends ...gputypes.Backend) (*Context, error) {
	if len(backends) == 0 {
		backends = DefaultBackends
	}

	instance, err := createInstance(backends)
	if err != nil {
		return nil, err
	}

	adapters := instance.EnumerateAdapters(nil)
	idx, err := SelectAdapter(adapters)
	if err != nil {
		instance.Destroy()
		return nil, err
	}
	selected := &adapters[idx]

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("%w: %s: %w", ErrDeviceOpen, selected.Info.Name, err)
	}

	slogger().Info("gpu: adapter selected",
		"name", selected.Info.Name,
		"type", selected.Info.DeviceType,
	)

	return &Context{
		instance: instance,
		device:   openDev.Device,
		queue:    openDev.Queue,
		adapter:  selected.Info.Name,
		format:   gputypes.TextureFormatBGRA8Unorm,
	}, nil
}

// createInstance creates an instance on the first registered backend.
func createInstance(backends []gputypes.Backend) (hal.Instance, error) {
	for _, b := range backends {
		backend, ok := hal.GetBackend(b)
		if !ok {
			continue
		}
		instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
		if err != nil {
			return nil, fmt.Errorf("create instance: %w", err)
		}
		return instance, nil
	}
	return nil, fmt.Errorf("%w: tried %v", ErrNoBackend, backends)
}

// SelectAdapter returns the index of the preferred adapter: the first
// discrete GPU, else the first integrated GPU, else the first adapter of
// any kind.
func SelectAdapter(adapters []hal.ExposedAdapter) (int, error) {
	if len(adapters) == 0 {
		return 0, ErrNoAdapter
	}
	best, bestRank := 0, adapterRank(&adapters[0])
	for i := 1; i < len(adapters); i++ {
		if r := adapterRank(&adapters[i]); r > bestRank {
			best, bestRank = i, r
		}
	}
	return best, nil
}

func adapterRank(a *hal.ExposedAdapter) int {
	switch a.Info.DeviceType {
	case gputypes.DeviceTypeDiscreteGPU:
		return 2
	case gputypes.DeviceTypeIntegratedGPU:
		return 1
	default:
		return 0
	}
}

// FromProvider adopts the device, queue and surface format of a host
// window. The provider must also expose HalDevice() any and HalQueue() any
// returning hal.Device and hal.Queue.
func FromProvider(provider gpucontext.DeviceProvider) (*Context, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNotHalProvider
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is %T", ErrNotHalProvider, hp.HalDevice())
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is %T", ErrNotHalProvider, hp.HalQueue())
	}
	format := provider.SurfaceFormat()
	if format == gputypes.TextureFormatUndefined {
		return nil, ErrNoSurfaceFormat
	}
	return &Context{
		device:   device,
		queue:    queue,
		adapter:  "host",
		format:   format,
		external: true,
	}, nil
}

// NewContext wraps an existing device and queue without taking ownership.
// Tests use it with the noop backend.
func NewContext(device hal.Device, queue hal.Queue, format gputypes.TextureFormat) *Context {
	return &Context{device: device, queue: queue, format: format, external: true}
}

// Device returns the HAL device.
func (c *Context) Device() hal.Device { return c.device }

// Queue returns the HAL queue.
func (c *Context) Queue() hal.Queue { return c.queue }

// HalDevice returns the device as any, for gpucontext.HalProvider consumers.
func (c *Context) HalDevice() any { return c.device }

// HalQueue returns the queue as any, for gpucontext.HalProvider consumers.
func (c *Context) HalQueue() any { return c.queue }

// Format returns the color format render targets use.
func (c *Context) Format() gputypes.TextureFormat { return c.format }

// AdapterName returns the selected adapter's name, or "host" for an
// adopted device.
func (c *Context) AdapterName() string { return c.adapter }

// External reports whether the device belongs to someone else.
func (c *Context) External() bool { return c.external }

// Close destroys the device and instance if the Context owns them.
// Safe to call more than once.
func (c *Context) Close() {
	if !c.external {
		if c.device != nil {
			c.device.Destroy()
		}
		if c.instance != nil {
			c.instance.Destroy()
		}
	}
	c.device = nil
	c.queue = nil
	c.instance = nil
}
