// Package fb drives the firmware framebuffer over the mailbox property
// channel.
//
// Setup negotiates a display mode with the firmware and maps the granted
// buffer into a drawable [Surface]:
//
//	f, err := fb.Setup(fb.Config{Width: 640, Height: 480, Depth: 32})
//	if err != nil {
//		...
//	}
//	draw.Draw(f, f.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
//	f.Flush()
package fb

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/bitkis/ruspiro-mailbox/vc/cpu"
	"github.com/bitkis/ruspiro-mailbox/vc/mbox"
	"github.com/bitkis/ruspiro-mailbox/vc/mbox/prop"
)

// Pixel order values of TagSetPixelOrder.
const (
	orderBGR = 0
	orderRGB = 1
)

// Alignment requested for the buffer allocation.
const bufferAlign = 4096

// A Config describes the framebuffer to request. The firmware treats it as
// a wish, Setup reports what was actually granted.
type Config struct {
	Width, Height int
	Depth         int // bits per pixel, 16 or 32
}

// A Framebuffer is the display surface granted by the firmware. It is valid
// until released.
type Framebuffer struct {
	Surface

	pitch int
	addr  cpu.Addr
	size  int
}

// Pitch returns the length of a pixel row in bytes.
func (f *Framebuffer) Pitch() int { return f.pitch }

// BusAddress returns the buffer's address as seen by the VideoCore.
func (f *Framebuffer) BusAddress() cpu.Addr { return f.addr }

// Size returns the buffer's size in bytes.
func (f *Framebuffer) Size() int { return f.size }

// Setup requests a framebuffer from the firmware and maps it. The firmware
// may adjust width, height and depth, check the returned bounds.
func Setup(cfg Config) (*Framebuffer, error) {
	b, err := setupBatch(cfg)
	if err != nil {
		return nil, err
	}
	err = mbox.Do(func(m *mbox.Mailbox) error { return m.Exchange(b) })
	if err != nil {
		return nil, err
	}
	mode, err := decode(b)
	if err != nil {
		return nil, err
	}
	return attach(mode), nil
}

// Release hands the buffer back to the firmware. The surface must not be
// used afterwards.
func (f *Framebuffer) Release() error {
	return mbox.Do(func(m *mbox.Mailbox) error {
		_, err := m.Query(prop.TagFBRelease, 0)
		return err
	})
}

// Blank switches the display's blanking state, keeping the buffer intact.
func (f *Framebuffer) Blank(on bool) error {
	state := uint32(0)
	if on {
		state = 1
	}
	return mbox.Do(func(m *mbox.Mailbox) error {
		_, err := m.Query(prop.TagFBBlank, 4, state)
		return err
	})
}

// setupBatch encodes the whole mode negotiation as a single message.
func setupBatch(cfg Config) (*mbox.Batch, error) {
	if cfg.Depth != 16 && cfg.Depth != 32 {
		return nil, fmt.Errorf("unsupported depth %v", cfg.Depth)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("invalid size %vx%v", cfg.Width, cfg.Height)
	}
	w, h := uint32(cfg.Width), uint32(cfg.Height)
	return mbox.NewBatch(
		mbox.Request{Tag: prop.TagSetPhysicalSize, Args: []uint32{w, h}, Resp: 8},
		mbox.Request{Tag: prop.TagSetVirtualSize, Args: []uint32{w, h}, Resp: 8},
		mbox.Request{Tag: prop.TagSetDepth, Args: []uint32{uint32(cfg.Depth)}, Resp: 4},
		mbox.Request{Tag: prop.TagSetPixelOrder, Args: []uint32{orderRGB}, Resp: 4},
		mbox.Request{Tag: prop.TagFBAllocate, Args: []uint32{bufferAlign}, Resp: 8},
		mbox.Request{Tag: prop.TagGetPitch, Resp: 4},
	)
}

// mode is the firmware's answer to a setupBatch.
type mode struct {
	width, height int
	depth         int
	order         uint32
	addr          cpu.Addr
	size          int
	pitch         int
}

func decode(b *mbox.Batch) (mode, error) {
	var m mode
	size := b.Value(0)
	m.width, m.height = int(size.Uint32(0)), int(size.Uint32(1))
	m.depth = int(b.Value(2).Uint32(0))
	m.order = b.Value(3).Uint32(0)
	alloc := b.Value(4)
	m.addr = cpu.Addr(alloc.Uint32(0))
	m.size = int(alloc.Uint32(1))
	m.pitch = int(b.Value(5).Uint32(0))

	switch {
	case m.width <= 0 || m.height <= 0,
		m.depth != 16 && m.depth != 32,
		m.pitch < m.width*m.depth/8,
		m.size < m.pitch*m.height,
		m.addr == 0:
		return m, fmt.Errorf("granted unusable mode %vx%vx%v pitch %v size %v at %#x",
			m.width, m.height, m.depth, m.pitch, m.size, m.addr)
	}
	return m, nil
}

// attach maps the granted buffer into a drawable surface.
func attach(m mode) *Framebuffer {
	rect := image.Rect(0, 0, m.width, m.height)
	pix := unsafe.Slice((*byte)(unsafe.Pointer(cpu.PhysicalAddress(m.addr))), m.size)

	f := &Framebuffer{pitch: m.pitch, addr: m.addr, size: m.size}
	switch {
	case m.depth == 32 && m.order == orderRGB:
		f.Surface = newRGBA32(pix, m.pitch, rect)
	case m.depth == 32:
		f.Surface = &BGRA32{Pix: pix, Stride: m.pitch, Rect: rect}
	default:
		f.Surface = &RGB565{Pix: pix, Stride: m.pitch, Rect: rect}
	}
	return f
}
