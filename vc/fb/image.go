package fb

import (
	"image"
	"image/color"
	"image/draw"
	"unsafe"

	"github.com/bitkis/ruspiro-mailbox/vc/cpu"
)

// A Surface is a drawable image backed by memory the VideoCore reads from.
// Flush makes all previous drawing visible to it.
type Surface interface {
	draw.Image
	Flush()
}

// RGBA32 stores pixels as 8:8:8:8 with red in the lowest byte, the layout
// the firmware uses for 32 bit depth with RGB pixel order. It embeds
// image.RGBA, which matches that layout byte for byte.
type RGBA32 struct {
	image.RGBA
}

// NewRGBA32 allocates an offscreen RGBA32 surface.
func NewRGBA32(r image.Rectangle) *RGBA32 {
	return newRGBA32(cpu.MakePaddedSlice[byte](r.Dx()*r.Dy()*4), 4*r.Dx(), r)
}

func newRGBA32(pix []byte, stride int, r image.Rectangle) *RGBA32 {
	return &RGBA32{image.RGBA{Pix: pix, Stride: stride, Rect: r}}
}

func (p *RGBA32) Flush() {
	cpu.Writeback(uintptr(unsafe.Pointer(unsafe.SliceData(p.Pix))), len(p.Pix))
}

// BGRA32 stores pixels as 8:8:8:8 with blue in the lowest byte, the layout
// the firmware uses for 32 bit depth with BGR pixel order.
type BGRA32 struct {
	Pix    []uint8
	Stride int
	Rect   image.Rectangle
}

// NewBGRA32 allocates an offscreen BGRA32 surface.
func NewBGRA32(r image.Rectangle) *BGRA32 {
	return &BGRA32{
		Pix:    cpu.MakePaddedSlice[byte](r.Dx() * r.Dy() * 4),
		Stride: 4 * r.Dx(),
		Rect:   r,
	}
}

func (p *BGRA32) ColorModel() color.Model { return color.RGBAModel }

func (p *BGRA32) Bounds() image.Rectangle { return p.Rect }

func (p *BGRA32) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(p.Rect)) {
		return color.RGBA{}
	}
	offset := p.PixOffset(x, y)
	return color.RGBA{
		B: p.Pix[offset],
		G: p.Pix[offset+1],
		R: p.Pix[offset+2],
		A: p.Pix[offset+3],
	}
}

func (p *BGRA32) Set(x, y int, c color.Color) {
	if !(image.Point{x, y}.In(p.Rect)) {
		return
	}
	offset := p.PixOffset(x, y)
	col := color.RGBAModel.Convert(c).(color.RGBA)
	p.Pix[offset] = col.B
	p.Pix[offset+1] = col.G
	p.Pix[offset+2] = col.R
	p.Pix[offset+3] = col.A
}

func (p *BGRA32) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*4
}

func (p *BGRA32) Flush() {
	cpu.Writeback(uintptr(unsafe.Pointer(unsafe.SliceData(p.Pix))), len(p.Pix))
}

// RGB565 stores pixels as little endian 5:6:5 words, the layout the firmware
// uses for 16 bit depth.
type RGB565 struct {
	Pix    []uint8
	Stride int
	Rect   image.Rectangle
}

// NewRGB565 allocates an offscreen RGB565 surface.
func NewRGB565(r image.Rectangle) *RGB565 {
	return &RGB565{
		Pix:    cpu.MakePaddedSlice[byte](r.Dx() * r.Dy() * 2),
		Stride: 2 * r.Dx(),
		Rect:   r,
	}
}

func (p *RGB565) ColorModel() color.Model { return RGB565Model }

func (p *RGB565) Bounds() image.Rectangle { return p.Rect }

func (p *RGB565) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(p.Rect)) {
		return color.RGBA{}
	}
	offset := p.PixOffset(x, y)
	return colorRGB565(uint16(p.Pix[offset]) | uint16(p.Pix[offset+1])<<8)
}

func (p *RGB565) Set(x, y int, c color.Color) {
	if !(image.Point{x, y}.In(p.Rect)) {
		return
	}
	offset := p.PixOffset(x, y)
	col, _ := rgb565Model(c).(colorRGB565)
	p.Pix[offset] = uint8(col & 0xff)
	p.Pix[offset+1] = uint8(col >> 8)
}

func (p *RGB565) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*2
}

func (p *RGB565) Flush() {
	cpu.Writeback(uintptr(unsafe.Pointer(unsafe.SliceData(p.Pix))), len(p.Pix))
}

type colorRGB565 uint16

func (c colorRGB565) RGBA() (r, g, b, a uint32) {
	return uint32(c & 0xf800), uint32(c<<5) & 0xfc00, uint32(c << 11), 0xffff
}

var RGB565Model color.Model = color.ModelFunc(rgb565Model)

func rgb565Model(c color.Color) color.Color {
	if _, ok := c.(colorRGB565); ok {
		return c
	}
	r, g, b, _ := c.RGBA()
	return colorRGB565(r&0xf800 | g>>5&0x07e0 | b>>11)
}
