package raster

import (
	"encoding/binary"
	"fmt"
)

// PixelFormat describes the bit layout of a single raw pixel value:
// how many bits each of the red, green, blue, and alpha channels occupy
// and where they sit inside the packed integer value.
//
// A standard packed RGBA8888 pixel looks like this:
//
//	| bit 31                 bit 0 |
//	|                              |
//	rrrrrrrrggggggggbbbbbbbbaaaaaaaa
//
//	red bits: 8,   red shift: 24
//	green bits: 8, green shift: 16
//	blue bits: 8,  blue shift: 8
//	alpha bits: 8, alpha shift: 0
//
// Raw pixel values are stored little-endian in surface memory. The
// indexed CLUT8 format is BytesPerPixel == 1 with all channel bits zero;
// raw values are then indices into a separate Palette.
//
// PixelFormat is an immutable value type; two formats are equal when all
// their fields are equal.
type PixelFormat struct {
	// BytesPerPixel is the storage width of one pixel: 1, 2, 3 or 4.
	BytesPerPixel byte

	RBits, RShift byte
	GBits, GShift byte
	BBits, BShift byte
	ABits, AShift byte
}

// NewPixelFormat creates a direct-color pixel format. It panics when the
// channel bits cannot fit in bytesPerPixel*8 bits; that is a
// construction-time programming error, not a runtime condition.
func NewPixelFormat(bytesPerPixel, rBits, gBits, bBits, aBits, rShift, gShift, bShift, aShift byte) PixelFormat {
	if total := int(rBits) + int(gBits) + int(bBits) + int(aBits); total > int(bytesPerPixel)*8 {
		panic(fmt.Sprintf("raster: pixel format with %d channel bits does not fit %d bytes", total, bytesPerPixel))
	}
	return PixelFormat{
		BytesPerPixel: bytesPerPixel,
		RBits:         rBits, RShift: rShift,
		GBits: gBits, GShift: gShift,
		BBits: bBits, BShift: bShift,
		ABits: aBits, AShift: aShift,
	}
}

// CLUT8Format returns the 8-bit palette-indexed format.
func CLUT8Format() PixelFormat {
	return PixelFormat{BytesPerPixel: 1}
}

// RGBA8888 returns the 32-bit packed-value RGBA format (alpha in the low
// byte of the packed value).
func RGBA8888() PixelFormat {
	return NewPixelFormat(4, 8, 8, 8, 8, 24, 16, 8, 0)
}

// ARGB8888 returns the 32-bit packed-value ARGB format (alpha in the
// high byte of the packed value).
func ARGB8888() PixelFormat {
	return NewPixelFormat(4, 8, 8, 8, 8, 16, 8, 0, 24)
}

// ABGR8888 returns the 32-bit packed-value ABGR format. Stored
// little-endian this is byte-order R, G, B, A, matching image.NRGBA.
func ABGR8888() PixelFormat {
	return NewPixelFormat(4, 8, 8, 8, 8, 0, 8, 16, 24)
}

// RGB888 returns the 24-bit packed RGB format with no alpha channel.
func RGB888() PixelFormat {
	return NewPixelFormat(3, 8, 8, 8, 0, 16, 8, 0, 0)
}

// RGB565 returns the 16-bit 5-6-5 RGB format with no alpha channel.
func RGB565() PixelFormat {
	return NewPixelFormat(2, 5, 6, 5, 0, 11, 5, 0, 0)
}

// RGB555 returns the 16-bit 5-5-5 RGB format with no alpha channel.
func RGB555() PixelFormat {
	return NewPixelFormat(2, 5, 5, 5, 0, 10, 5, 0, 0)
}

// ARGB1555 returns the 16-bit 1-5-5-5 ARGB format with a one-bit alpha
// channel.
func ARGB1555() PixelFormat {
	return NewPixelFormat(2, 5, 5, 5, 1, 10, 5, 0, 15)
}

// IsCLUT8 reports whether this is the palette-indexed format.
func (f PixelFormat) IsCLUT8() bool {
	return f.BytesPerPixel == 1 && f.RBits == 0 && f.GBits == 0 && f.BBits == 0 && f.ABits == 0
}

// HasAlpha reports whether the format carries an alpha channel.
func (f PixelFormat) HasAlpha() bool {
	return f.ABits != 0
}

// AlphaMask returns the mask selecting the alpha bits of a raw pixel
// value, or zero when the format has no alpha channel.
func (f PixelFormat) AlphaMask() uint32 {
	if f.ABits == 0 {
		return 0
	}
	return ((1<<f.ABits - 1) & 0xFFFFFFFF) << f.AShift
}

// String returns a human-readable description of the format.
func (f PixelFormat) String() string {
	if f.IsCLUT8() {
		return "CLUT8"
	}
	return fmt.Sprintf("%dBpp R%d/%d G%d/%d B%d/%d A%d/%d",
		f.BytesPerPixel, f.RBits, f.RShift, f.GBits, f.GShift,
		f.BBits, f.BShift, f.ABits, f.AShift)
}

// channel packs an 8-bit channel value into its bit width.
func channel(v byte, bits, shift byte) uint32 {
	if bits == 0 {
		return 0
	}
	return uint32(v>>(8-bits)) << shift
}

// expand widens a channel value to 8 bits, replicating the high bits
// into the low bits so the full output range is reachable (0x1F in a
// 5-bit channel decodes to 0xFF, not 0xF8).
func expand(col uint32, bits, shift byte) byte {
	if bits == 0 {
		return 0
	}
	v := (col >> shift) & (1<<bits - 1)
	if bits >= 8 {
		return byte(v)
	}
	v <<= 8 - bits
	filled := bits
	for filled < 8 {
		v |= v >> filled
		filled *= 2
	}
	return byte(v)
}

// RGBToColor packs 8-bit red, green, and blue values into a raw pixel
// value with a fully set alpha channel.
func (f PixelFormat) RGBToColor(r, g, b byte) uint32 {
	return f.ARGBToColor(0xFF, r, g, b)
}

// ARGBToColor packs 8-bit alpha, red, green, and blue values into a raw
// pixel value. Channel precision beyond the format's bit widths is
// discarded.
func (f PixelFormat) ARGBToColor(a, r, g, b byte) uint32 {
	return channel(a, f.ABits, f.AShift) |
		channel(r, f.RBits, f.RShift) |
		channel(g, f.GBits, f.GShift) |
		channel(b, f.BBits, f.BShift)
}

// ColorToRGB unpacks a raw pixel value into 8-bit red, green, and blue
// values.
func (f PixelFormat) ColorToRGB(col uint32) (r, g, b byte) {
	r = expand(col, f.RBits, f.RShift)
	g = expand(col, f.GBits, f.GShift)
	b = expand(col, f.BBits, f.BShift)
	return r, g, b
}

// ColorToARGB unpacks a raw pixel value into 8-bit alpha, red, green,
// and blue values. Formats without an alpha channel decode as fully
// opaque.
func (f PixelFormat) ColorToARGB(col uint32) (a, r, g, b byte) {
	if f.ABits == 0 {
		a = 0xFF
	} else {
		a = expand(col, f.ABits, f.AShift)
	}
	r, g, b = f.ColorToRGB(col)
	return a, r, g, b
}

// readColor loads a raw pixel value of the format's width from p.
func (f PixelFormat) readColor(p []byte) uint32 {
	switch f.BytesPerPixel {
	case 1:
		return uint32(p[0])
	case 2:
		return uint32(binary.LittleEndian.Uint16(p))
	case 3:
		return readUint24(p)
	default:
		return binary.LittleEndian.Uint32(p)
	}
}

// writeColor stores a raw pixel value of the format's width into p.
func (f PixelFormat) writeColor(p []byte, col uint32) {
	switch f.BytesPerPixel {
	case 1:
		p[0] = byte(col)
	case 2:
		binary.LittleEndian.PutUint16(p, uint16(col))
	case 3:
		writeUint24(p, col)
	default:
		binary.LittleEndian.PutUint32(p, col)
	}
}

// readUint24 loads a little-endian 24-bit value.
func readUint24(p []byte) uint32 {
	return uint32(p[0]) | uint32(p[1])<<8 | uint32(p[2])<<16
}

// writeUint24 stores a little-endian 24-bit value.
func writeUint24(p []byte, v uint32) {
	p[0] = byte(v)
	p[1] = byte(v >> 8)
	p[2] = byte(v >> 16)
}
